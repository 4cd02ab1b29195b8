package tests

import (
	"bytes"
	"encoding/base64"
	"testing"

	crypt "github.com/IvanChernomyrdin/go-contacts-api/internal/server/crypto"
)

// Токен — это 32 случайных байта в base64url
func TestNewRefreshToken_Format(t *testing.T) {
	token, err := crypt.NewRefreshToken()
	if err != nil {
		t.Fatalf("NewRefreshToken error: %v", err)
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("токен не base64url: %v", err)
	}
	if len(raw) != 32 {
		t.Fatalf("expected 32 bytes, got %d", len(raw))
	}
}

// Два вызова дают разные токены
func TestNewRefreshToken_Unique(t *testing.T) {
	first, err := crypt.NewRefreshToken()
	if err != nil {
		t.Fatalf("NewRefreshToken error: %v", err)
	}
	second, err := crypt.NewRefreshToken()
	if err != nil {
		t.Fatalf("NewRefreshToken error: %v", err)
	}

	if first == second {
		t.Fatal("expected unique tokens")
	}
}

// Хэш детерминирован и зависит от входа
func TestHashRefreshToken(t *testing.T) {
	first := crypt.HashRefreshToken("token-a")
	second := crypt.HashRefreshToken("token-a")
	other := crypt.HashRefreshToken("token-b")

	if !bytes.Equal(first, second) {
		t.Fatal("expected deterministic hash")
	}
	if bytes.Equal(first, other) {
		t.Fatal("expected different hashes for different tokens")
	}
	if len(first) != 32 {
		t.Fatalf("expected sha256 length 32, got %d", len(first))
	}
}
