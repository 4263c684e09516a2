package auth

import "time"

// SessionClaims are the decrypted contents of a session token.
type SessionClaims struct {
	SessionID  string    `json:"jti"`
	UserID     string    `json:"sub"`
	Issuer     string    `json:"iss"`
	Audience   string    `json:"aud"`
	IssuedAt   time.Time `json:"iat"`
	NotBefore  time.Time `json:"nbf"`
	Expiration time.Time `json:"exp"`
	Role       string    `json:"role"`
}
