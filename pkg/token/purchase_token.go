package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Purchase tokens freeze a buyer's quantity and price between offer display
// and payment. They are short-lived and re-validated server-side before any
// gateway call.

var (
	// ErrExpired marks a structurally valid token past its expiry. Clients
	// regenerate the token instead of retrying blindly.
	ErrExpired = errors.New("purchase token expired")
	// ErrInvalid marks a token with a bad signature or shape.
	ErrInvalid = errors.New("purchase token invalid")
)

// PurchaseClaims is the signed payload of a purchase token
type PurchaseClaims struct {
	Amount   int     `json:"amount"`
	Price    float64 `json:"price"`
	RaffleID string  `json:"raffleId"`
	TenantID string  `json:"tenantId"`
	jwt.RegisteredClaims
}

// Service signs and validates purchase tokens
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a purchase token service
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a token freezing the offer's amount and price
func (s *Service) Issue(amount int, price float64, raffleID, tenantID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := PurchaseClaims{
		Amount:   amount,
		Price:    price,
		RaffleID: raffleID,
		TenantID: tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign purchase token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate parses and verifies a token. Expiry and invalidity are distinct
// errors so the handler can answer 410 vs 401.
func (s *Service) Validate(tokenString string) (*PurchaseClaims, error) {
	claims := &PurchaseClaims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	if !tok.Valid {
		return nil, ErrInvalid
	}
	return claims, nil
}

// Remaining returns how much validity the claims have left, never negative.
func (c *PurchaseClaims) Remaining(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	d := c.ExpiresAt.Time.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
