// ABOUTME: Unit tests for gateway JWT mint and verify.
// ABOUTME: Covers traveler subjects, session scoping, and issuer/audience checks.

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "concierge-test-signing-secret"

func TestJWTVerifier_TravelerToken(t *testing.T) {
	verifier := NewJWTVerifier([]byte(testSecret))

	token, err := verifier.Generate("traveler-42", "", time.Hour)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := verifier.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if claims.Subject != "traveler-42" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "traveler-42")
	}
	if claims.SessionID != "" {
		t.Errorf("SessionID = %q, want unscoped token", claims.SessionID)
	}
	if claims.Issuer != Issuer {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, Issuer)
	}
}

func TestJWTVerifier_SessionScopedToken(t *testing.T) {
	verifier := NewJWTVerifier([]byte(testSecret))

	token, err := verifier.Generate("traveler-42", "goa-trip-2026", time.Hour)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := verifier.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if claims.SessionID != "goa-trip-2026" {
		t.Errorf("SessionID = %q, want %q", claims.SessionID, "goa-trip-2026")
	}
}

func TestJWTVerifier_RejectsBadTokens(t *testing.T) {
	verifier := NewJWTVerifier([]byte(testSecret))

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "garbage token",
			token: "not-a-jwt-token",
		},
		{
			name:  "malformed JWT",
			token: "header.payload.signature",
		},
		{
			name: "wrong secret",
			token: func() string {
				other := NewJWTVerifier([]byte("some-other-secret"))
				token, _ := other.Generate("traveler-42", "", time.Hour)
				return token
			}(),
		},
		{
			name: "unsigned token",
			token: func() string {
				unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
					RegisteredClaims: jwt.RegisteredClaims{
						Subject:  "traveler-42",
						Issuer:   Issuer,
						Audience: jwt.ClaimStrings{Issuer},
					},
				})
				token, _ := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
				return token
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := verifier.Verify(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestJWTVerifier_RejectsExpiredToken(t *testing.T) {
	verifier := NewJWTVerifier([]byte(testSecret))

	token, err := verifier.Generate("traveler-42", "", -time.Hour)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Verify() error = %v, want ErrExpiredToken", err)
	}
}

// signFor builds an HS256 token with arbitrary claims, for tokens the
// gateway itself would never mint.
func signFor(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestJWTVerifier_RejectsForeignIssuer(t *testing.T) {
	verifier := NewJWTVerifier([]byte(testSecret))

	token := signFor(t, testSecret, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "traveler-42",
			Issuer:    "booking-portal",
			Audience:  jwt.ClaimStrings{Issuer},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestJWTVerifier_RejectsForeignAudience(t *testing.T) {
	verifier := NewJWTVerifier([]byte(testSecret))

	token := signFor(t, testSecret, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "traveler-42",
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{"billing-api"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestJWTVerifier_RejectsMissingSubject(t *testing.T) {
	verifier := NewJWTVerifier([]byte(testSecret))

	token := signFor(t, testSecret, Claims{
		SessionID: "goa-trip-2026",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{Issuer},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	if _, err := verifier.Verify(token); !errors.Is(err, ErrMissingSubject) {
		t.Errorf("Verify() error = %v, want ErrMissingSubject", err)
	}
}
