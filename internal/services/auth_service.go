package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/config"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/repositories"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceImpl implements admin registration and login
type AuthServiceImpl struct {
	userRepo repositories.AdminUserRepository
	cfg      *config.Config
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(userRepo repositories.AdminUserRepository, cfg *config.Config) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// Register creates a new admin user with a hashed password
func (s *AuthServiceImpl) Register(ctx context.Context, req *models.RegisterRequest) (*models.AdminUser, error) {
	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, errors.New("user with this email already exists")
	}

	tenantID, err := primitive.ObjectIDFromHex(req.TenantID)
	if err != nil {
		return nil, errors.New("invalid tenant id")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = "admin"
	}

	user := &models.AdminUser{
		TenantID: tenantID,
		Email:    req.Email,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.Password = ""
	return user, nil
}

// Login checks credentials and returns a signed admin JWT
func (s *AuthServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		// Same answer for unknown user and wrong password.
		return nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	expiresAt := time.Now().Add(time.Duration(s.cfg.JWT.ExpiresIn) * time.Second)
	claims := jwt.MapClaims{
		"sub":      user.ID.Hex(),
		"email":    user.Email,
		"role":     user.Role,
		"tenantId": user.TenantID.Hex(),
		"exp":      expiresAt.Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &models.LoginResponse{Token: signed, ExpiresAt: expiresAt}, nil
}
