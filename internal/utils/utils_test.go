package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewOrderNumber_Format(t *testing.T) {
	orderNumber := NewOrderNumber()

	parts := strings.Split(orderNumber, "-")
	assert.Len(t, parts, 3)
	assert.Equal(t, "ORD", parts[0])
	assert.Equal(t, time.Now().Format("20060102"), parts[1])
	assert.Len(t, parts[2], 12)
	assert.Equal(t, strings.ToUpper(parts[2]), parts[2])
}

func TestNewOrderNumber_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		n := NewOrderNumber()
		assert.False(t, seen[n], "duplicate order number %s", n)
		seen[n] = true
	}
}

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Example.COM", "example.com"},
		{"www.example.com", "example.com"},
		{"example.com:3000", "example.com"},
		{"WWW.Example.com:8080", "example.com"},
		{"  raffles.example.com  ", "raffles.example.com"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDomain(tt.in), "input %q", tt.in)
	}
}
