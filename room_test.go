package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateWPM(t *testing.T) {
	assert.Equal(t, 50, calculateWPM(250, 60))
	assert.Equal(t, 120, calculateWPM(300, 30))
	assert.Equal(t, 0, calculateWPM(0, 60))
	assert.Equal(t, 0, calculateWPM(100, 0))
	assert.Equal(t, 0, calculateWPM(100, -5))
}

func TestCalculateAccuracy(t *testing.T) {
	assert.Equal(t, 91, calculateAccuracy(10, 110))
	assert.Equal(t, 100, calculateAccuracy(0, 100))
	assert.Equal(t, 100, calculateAccuracy(5, 0))
	assert.Equal(t, 50, calculateAccuracy(50, 100))
	assert.Equal(t, 0, calculateAccuracy(100, 100))
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "00:00", formatTime(0))
	assert.Equal(t, "00:09", formatTime(9))
	assert.Equal(t, "01:05", formatTime(65))
	assert.Equal(t, "10:00", formatTime(600))
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "hello world", normalizeText("  hello   world  "))
	assert.Equal(t, "one two three", normalizeText("one\ntwo\t three"))
	assert.Equal(t, "", normalizeText("   \n\t  "))
	assert.Equal(t, "unchanged", normalizeText("unchanged"))
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("same", "same"))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
	assert.Equal(t, 3, levenshteinDistance("", "abc"))
	assert.Equal(t, 3, levenshteinDistance("abc", ""))
	assert.Equal(t, 1, levenshteinDistance("café", "cafe"))
}

func TestWordErrors(t *testing.T) {
	assert.Equal(t, 0, wordErrors("hello", "hello"))
	assert.Equal(t, 1, wordErrors("helo", "hello"))
	assert.Equal(t, 2, wordErrors("wrold", "world"))
}

func TestNewRoomDefaults(t *testing.T) {
	now := time.Now()
	room := newRoom("ABC234", "conn-1", "alice", 180, now)

	assert.Equal(t, "quotes", room.category)
	assert.Equal(t, statusWaiting, room.status)
	assert.Equal(t, 180, room.raceTimeout)
	assert.False(t, room.locked)
	assert.Equal(t, now, room.createdAt)
	assert.Equal(t, now, room.lastActivity)

	require.Len(t, room.players, 1)
	host := room.players[0]
	assert.Equal(t, "conn-1", host.ID)
	assert.Equal(t, "alice", host.Username)
	assert.True(t, host.IsHost)
	assert.Equal(t, 100, host.Accuracy)
}

func TestRoomPlayerLookups(t *testing.T) {
	room := newRoom("ABC234", "conn-1", "alice", 180, time.Now())
	room.players = append(room.players, newPlayer("conn-2", "bob", false))

	assert.Equal(t, "bob", room.findPlayer("conn-2").Username)
	assert.Nil(t, room.findPlayer("conn-3"))

	assert.Equal(t, "conn-1", room.findPlayerByName("alice").ID)
	assert.Nil(t, room.findPlayerByName("carol"))

	removed := room.removePlayer("conn-1")
	require.NotNil(t, removed)
	assert.Equal(t, "alice", removed.Username)
	assert.Len(t, room.players, 1)
	assert.Nil(t, room.removePlayer("conn-1"))
}

func TestResetForNewRace(t *testing.T) {
	room := newRoom("ABC234", "conn-1", "alice", 180, time.Now())
	room.status = statusFinished
	room.text = "some race text"
	room.startTime = time.Now()

	p := room.players[0]
	p.Progress = 100
	p.WPM = 72
	p.Accuracy = 95
	p.IsReady = true
	p.Finished = true
	p.FinishTime = "01:23"
	p.IsTyping = true

	room.resetForNewRace()

	assert.Equal(t, statusWaiting, room.status)
	assert.Empty(t, room.text)
	assert.True(t, room.startTime.IsZero())

	assert.Zero(t, p.Progress)
	assert.Zero(t, p.WPM)
	assert.Equal(t, 100, p.Accuracy)
	assert.False(t, p.IsReady)
	assert.False(t, p.Finished)
	assert.Empty(t, p.FinishTime)
	assert.False(t, p.IsTyping)
}

func TestAllReadyAndAllFinished(t *testing.T) {
	room := newRoom("ABC234", "conn-1", "alice", 180, time.Now())
	room.players = append(room.players, newPlayer("conn-2", "bob", false))

	assert.False(t, room.allReady())
	assert.False(t, room.allFinished())

	for _, p := range room.players {
		p.IsReady = true
		p.Finished = true
	}

	assert.True(t, room.allReady())
	assert.True(t, room.allFinished())
}
