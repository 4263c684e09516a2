package providers

import (
	"github.com/samber/do/v2"

	"github.com/leadboard/leadboard-server/internal/auth"
	"github.com/leadboard/leadboard-server/internal/config"
	"github.com/leadboard/leadboard-server/internal/logger"
)

// AuthKey wraps the authentication key bytes.
type AuthKey []byte

// ProvideAuthKey loads or generates the authentication key.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	key, err := auth.LoadOrGenerateKey(cfg.Storage.DataPath)
	if err != nil {
		return nil, err
	}

	// Update config with the loaded key
	cfg.Auth.TokenKey = key

	log.Info("Authentication key loaded",
		"session_duration", cfg.Auth.SessionDuration,
	)

	return AuthKey(key), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	authKey := do.MustInvoke[AuthKey](i)
	return auth.NewTokenService(authKey)
}
