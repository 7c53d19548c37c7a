package auth

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/chronicle/internal/common"
	"github.com/ternarybob/chronicle/internal/interfaces"
)

// Service resolves opaque API keys to client identities. The key map comes
// from configuration, is loaded once at startup and never mutated, so
// lookups need no synchronization.
type Service struct {
	keys   map[string]string
	logger arbor.ILogger
}

// NewService creates a key resolver from the configured key map
func NewService(config *common.AuthConfig, logger arbor.ILogger) interfaces.KeyResolver {
	keys := make(map[string]string, len(config.Keys))
	for k, v := range config.Keys {
		keys[k] = v
	}
	return &Service{
		keys:   keys,
		logger: logger,
	}
}

// Resolve returns the client ID for the key. Missing, empty and unknown keys
// all fail closed with ErrUnauthenticated.
func (s *Service) Resolve(apiKey string) (string, error) {
	if apiKey == "" {
		s.logger.Warn().Msg("Missing API key in request")
		return "", interfaces.ErrUnauthenticated
	}

	clientID, ok := s.keys[apiKey]
	if !ok {
		// Log only a short prefix, never the full credential
		s.logger.Warn().Str("key_prefix", keyPrefix(apiKey)).Msg("Invalid API key attempted")
		return "", interfaces.ErrUnauthenticated
	}

	s.logger.Debug().Str("client_id", clientID).Msg("Authenticated client")
	return clientID, nil
}

func keyPrefix(apiKey string) string {
	if len(apiKey) <= 8 {
		return apiKey
	}
	return apiKey[:8] + "..."
}
