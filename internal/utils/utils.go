package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewOrderNumber returns a fresh order number. Every checkout attempt gets
// its own; failed attempts never reuse an order number, so gateway
// idempotency keys and invoice rows cannot collide across retries.
func NewOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:12]
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}

// NormalizeDomain lowercases a host and strips the port and a leading www.
func NormalizeDomain(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if i := strings.Index(host, ":"); i >= 0 {
		host = host[:i]
	}
	return strings.TrimPrefix(host, "www.")
}
