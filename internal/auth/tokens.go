package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/leadboard/leadboard-server/internal/domain"
)

const (
	tokenIssuer   = "leadboard-server"
	tokenAudience = "leadboard-dashboard"
)

// ErrInvalidToken is returned for tokens that fail decryption or claim checks.
var ErrInvalidToken = errors.New("invalid session token")

// TokenService issues and verifies PASETO v4.local session tokens.
// Tokens are encrypted, so clients cannot read the claims.
type TokenService struct {
	key paseto.V4SymmetricKey
	now func() time.Time
}

// NewTokenService creates a TokenService from a 32-byte key.
func NewTokenService(key []byte) (*TokenService, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("session token key must be %d bytes, got %d", KeySize, len(key))
	}
	k, err := paseto.V4SymmetricKeyFromBytes(key)
	if err != nil {
		return nil, fmt.Errorf("create symmetric key: %w", err)
	}
	return &TokenService{key: k, now: time.Now}, nil
}

// Issue creates a token for session, valid until the session expires.
func (s *TokenService) Issue(session *domain.Session, role domain.Role) string {
	now := s.now()

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetAudience(tokenAudience)
	token.SetSubject(session.UserID)
	token.SetJti(session.ID)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(session.ExpiresAt)
	token.SetString("role", string(role))

	return token.V4Encrypt(s.key, nil)
}

// Verify decrypts raw and checks issuer, audience and validity window.
func (s *TokenService) Verify(raw string) (*SessionClaims, error) {
	parser := paseto.NewParserWithoutExpiryCheck()
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.ValidAt(s.now()))

	token, err := parser.ParseV4Local(s.key, raw, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var claims SessionClaims
	if err := json.Unmarshal(token.ClaimsJSON(), &claims); err != nil {
		return nil, fmt.Errorf("%w: parse claims: %v", ErrInvalidToken, err)
	}
	if claims.SessionID == "" || claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing session or subject", ErrInvalidToken)
	}
	return &claims, nil
}
