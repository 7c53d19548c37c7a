package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/chronicle/internal/common"
	"github.com/ternarybob/chronicle/internal/interfaces"
)

func newTestResolver(keys map[string]string) interfaces.KeyResolver {
	return NewService(&common.AuthConfig{HeaderName: "X-API-Key", Keys: keys}, arbor.NewLogger())
}

func TestService_Resolve(t *testing.T) {
	resolver := newTestResolver(map[string]string{
		"key-acme":   "acme",
		"key-globex": "globex",
	})

	t.Run("Known key resolves to its client", func(t *testing.T) {
		clientID, err := resolver.Resolve("key-acme")
		require.NoError(t, err)
		assert.Equal(t, "acme", clientID)

		clientID, err = resolver.Resolve("key-globex")
		require.NoError(t, err)
		assert.Equal(t, "globex", clientID)
	})

	t.Run("Empty key fails closed", func(t *testing.T) {
		_, err := resolver.Resolve("")
		assert.ErrorIs(t, err, interfaces.ErrUnauthenticated)
	})

	t.Run("Unknown key fails closed", func(t *testing.T) {
		_, err := resolver.Resolve("key-unknown")
		assert.ErrorIs(t, err, interfaces.ErrUnauthenticated)
	})

	t.Run("No keys configured rejects everything", func(t *testing.T) {
		empty := newTestResolver(nil)
		_, err := empty.Resolve("key-acme")
		assert.ErrorIs(t, err, interfaces.ErrUnauthenticated)
	})
}

func TestKeyPrefix(t *testing.T) {
	assert.Equal(t, "short", keyPrefix("short"))
	assert.Equal(t, "12345678...", keyPrefix("1234567890abcdef"))
}
