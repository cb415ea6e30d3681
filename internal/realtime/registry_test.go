package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryConnectAndLookup(t *testing.T) {
	registry := NewRegistry()
	client := NewClient("user-1", nil)

	registry.Connect("user-1", client)

	sessionID, ok := registry.SessionFor("user-1")
	require.True(t, ok)
	assert.Equal(t, client.SessionID(), sessionID)

	got, ok := registry.ClientFor("user-1")
	require.True(t, ok)
	assert.Same(t, client, got)
}

func TestRegistryLastConnectedWins(t *testing.T) {
	registry := NewRegistry()
	first := NewClient("user-1", nil)
	second := NewClient("user-1", nil)

	registry.Connect("user-1", first)
	registry.Connect("user-1", second)

	got, ok := registry.ClientFor("user-1")
	require.True(t, ok)
	assert.Same(t, second, got)

	// The replaced client is closed and can no longer accept sends.
	assert.False(t, first.TrySend([]byte("late")))
	assert.True(t, second.TrySend([]byte("fresh")))
}

func TestRegistryDisconnect(t *testing.T) {
	registry := NewRegistry()
	client := NewClient("user-1", nil)
	registry.Connect("user-1", client)

	registry.Disconnect(client.SessionID())

	_, ok := registry.SessionFor("user-1")
	assert.False(t, ok)
	_, ok = registry.ClientFor("user-1")
	assert.False(t, ok)
}

func TestRegistryStaleDisconnectIgnored(t *testing.T) {
	registry := NewRegistry()
	first := NewClient("user-1", nil)
	second := NewClient("user-1", nil)

	registry.Connect("user-1", first)
	registry.Connect("user-1", second)

	// A slow teardown of the replaced session must not evict the newer one.
	registry.Disconnect(first.SessionID())

	got, ok := registry.ClientFor("user-1")
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestRegistryUnknownUser(t *testing.T) {
	registry := NewRegistry()

	_, ok := registry.SessionFor("nobody")
	assert.False(t, ok)
	_, ok = registry.ClientFor("nobody")
	assert.False(t, ok)

	// Disconnecting a session the registry has never seen is a no-op.
	registry.Disconnect("unknown-session")
}
