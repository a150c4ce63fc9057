package main

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// Room ID alphabet excludes visually ambiguous characters: 0, O, 1, I, L
const roomIDAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const roomIDLength = 6

func generateRoomID() (string, error) {
	id := make([]byte, roomIDLength)
	for i := range id {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(roomIDAlphabet))))
		if err != nil {
			return "", err
		}
		id[i] = roomIDAlphabet[n.Int64()]
	}
	return string(id), nil
}

// Registry is the lifecycle authority for live rooms. It is owned by the
// coordinator loop and must only be touched from there, so it carries no
// locking of its own.
type Registry struct {
	rooms map[string]*Room
}

func newRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
	}
}

// create registers a new room with the given player as host. Collisions on
// generated IDs are vanishingly rare but still re-checked, with a bounded
// number of retries.
func (reg *Registry) create(hostID, hostName string, raceTimeout int, now time.Time) (*Room, error) {
	for range 10 {
		id, err := generateRoomID()
		if err != nil {
			return nil, fmt.Errorf("generating room id: %w", err)
		}
		if reg.exists(id) {
			continue
		}

		room := newRoom(id, hostID, hostName, raceTimeout, now)
		reg.rooms[id] = room

		return room, nil
	}
	return nil, fmt.Errorf("failed to generate unique room id after 10 attempts")
}

// get normalizes the ID to uppercase before lookup, so ids typed by players
// are matched case-insensitively.
func (reg *Registry) get(id string) *Room {
	return reg.rooms[strings.ToUpper(id)]
}

func (reg *Registry) exists(id string) bool {
	_, ok := reg.rooms[strings.ToUpper(id)]
	return ok
}

func (reg *Registry) delete(id string) {
	delete(reg.rooms, strings.ToUpper(id))
}

func (reg *Registry) count() int {
	return len(reg.rooms)
}

// idle returns the rooms whose last activity predates the cutoff.
func (reg *Registry) idle(cutoff time.Time) []*Room {
	var stale []*Room
	for _, room := range reg.rooms {
		if room.lastActivity.Before(cutoff) {
			stale = append(stale, room)
		}
	}
	return stale
}
