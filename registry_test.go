package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRoomID(t *testing.T) {
	seen := make(map[string]struct{})

	for range 100 {
		id, err := generateRoomID()
		require.NoError(t, err)
		require.Len(t, id, roomIDLength)

		for _, char := range id {
			assert.Contains(t, roomIDAlphabet, string(char))
		}

		seen[id] = struct{}{}
	}

	// Collisions across 100 draws from a 31^6 space would indicate a
	// broken generator.
	assert.Len(t, seen, 100)
}

func TestRegistryCreate(t *testing.T) {
	reg := newRegistry()
	now := time.Now()

	room, err := reg.create("conn-1", "alice", 180, now)
	require.NoError(t, err)
	require.NotNil(t, room)

	assert.Equal(t, 1, reg.count())
	assert.True(t, reg.exists(room.id))
	assert.Same(t, room, reg.get(room.id))
	assert.Equal(t, "conn-1", room.host)
}

func TestRegistryLookupsAreCaseInsensitive(t *testing.T) {
	reg := newRegistry()

	room, err := reg.create("conn-1", "alice", 180, time.Now())
	require.NoError(t, err)

	lower := strings.ToLower(room.id)
	assert.Same(t, room, reg.get(lower))
	assert.True(t, reg.exists(lower))

	reg.delete(lower)
	assert.Nil(t, reg.get(room.id))
	assert.Zero(t, reg.count())
}

func TestRegistryIdle(t *testing.T) {
	reg := newRegistry()
	now := time.Now()

	stale, err := reg.create("conn-1", "alice", 180, now.Add(-2*time.Hour))
	require.NoError(t, err)

	fresh, err := reg.create("conn-2", "bob", 180, now)
	require.NoError(t, err)

	idle := reg.idle(now.Add(-time.Hour))
	require.Len(t, idle, 1)
	assert.Same(t, stale, idle[0])
	assert.True(t, reg.exists(fresh.id))
}
