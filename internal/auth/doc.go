// Package auth provides JWT authentication for concierge-gateway.
//
// Clients authenticate WebSocket connections with HS256 tokens signed
// using the configured jwt_secret. Tokens carry the gateway's claims:
// the subject is the traveler's user ID, the issuer and audience are
// "concierge-gateway", and an optional "sid" claim scopes the token to
// a single chat session.
//
// # Usage
//
// Generate a token:
//
//	verifier := auth.NewJWTVerifier(secret)
//	token, err := verifier.Generate("traveler-42", "", 30*24*time.Hour)
//
// Verify a token:
//
//	claims, err := verifier.Verify(token)
//	userID := claims.Subject
//
// Verification failures are ErrInvalidToken, ErrExpiredToken, or
// ErrMissingSubject. Tokens minted for another issuer or audience are
// rejected as invalid.
package auth
