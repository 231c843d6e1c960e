package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/assessly-hq/assessly-services/api/internal/config"
)

func testConfig() config.JWTConfig {
	return config.JWTConfig{Issuer: "assessly-api", Secret: []byte("test-secret")}
}

func TestGenerateAndParse(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	claims := Claims{
		Email:          "owner@example.com",
		Name:           "Owner",
		Role:           "owner",
		OrganizationID: "org1",
	}
	claims.Subject = "user1"

	token, err := GenerateToken(claims, cfg, "assessly-dashboard", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	parsed, err := ParseToken(token, []config.JWTConfig{cfg}, "assessly-dashboard")
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if parsed.Subject != "user1" || parsed.Email != "owner@example.com" || parsed.Role != "owner" || parsed.OrganizationID != "org1" {
		t.Fatalf("claims round-trip mismatch: %+v", parsed)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	claims := Claims{}
	claims.Subject = "user1"
	token, err := GenerateToken(claims, cfg, "", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	other := config.JWTConfig{Issuer: cfg.Issuer, Secret: []byte("different")}
	if _, err := ParseToken(token, []config.JWTConfig{other}, ""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	claims := Claims{}
	claims.Subject = "user1"
	token, err := GenerateToken(claims, cfg, "", -time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := ParseToken(token, []config.JWTConfig{cfg}, ""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseToken_SecondaryIssuerAccepted(t *testing.T) {
	t.Parallel()

	legacy := config.JWTConfig{Issuer: "assessly-legacy", Secret: []byte("old-secret")}
	claims := Claims{}
	claims.Subject = "user1"
	token, err := GenerateToken(claims, legacy, "", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	configs := []config.JWTConfig{testConfig(), legacy}
	parsed, err := ParseToken(token, configs, "")
	if err != nil {
		t.Fatalf("legacy issuer should verify: %v", err)
	}
	if parsed.Issuer != "assessly-legacy" {
		t.Fatalf("unexpected issuer %q", parsed.Issuer)
	}
}

func TestParseToken_AudienceMismatch(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	claims := Claims{}
	claims.Subject = "user1"
	token, err := GenerateToken(claims, cfg, "other-audience", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := ParseToken(token, []config.JWTConfig{cfg}, "assessly-dashboard"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for audience mismatch, got %v", err)
	}
}

func TestParseToken_MissingSubject(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	token, err := GenerateToken(Claims{Email: "nobody@example.com"}, cfg, "", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := ParseToken(token, []config.JWTConfig{cfg}, ""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for missing subject, got %v", err)
	}
}
