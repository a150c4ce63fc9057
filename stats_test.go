package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsRecord(t *testing.T) {
	stats := &Stats{}

	stats.Record([]*Player{
		{Username: "alice", WPM: 60},
		{Username: "bob", WPM: 40},
	})

	snap := stats.Snapshot()
	assert.Equal(t, 1, snap.TotalRaces)
	assert.Equal(t, 2, snap.TotalPlayers)
	assert.Equal(t, 50.0, snap.AverageWPM)
	assert.Equal(t, 60, snap.HighestWPM)
	assert.Equal(t, "alice", snap.FastestPlayer)

	stats.Record([]*Player{
		{Username: "carol", WPM: 80},
	})

	snap = stats.Snapshot()
	assert.Equal(t, 2, snap.TotalRaces)
	assert.Equal(t, 3, snap.TotalPlayers)
	assert.Equal(t, 65.0, snap.AverageWPM)
	assert.Equal(t, 80, snap.HighestWPM)
	assert.Equal(t, "carol", snap.FastestPlayer)
}

func TestStatsRecordEmptyRaceIsIgnored(t *testing.T) {
	stats := &Stats{}

	stats.Record(nil)
	stats.Record([]*Player{})

	snap := stats.Snapshot()
	assert.Zero(t, snap.TotalRaces)
	assert.Zero(t, snap.TotalPlayers)
}

func TestStatsRecordKeepsRecordHolder(t *testing.T) {
	stats := &Stats{}

	stats.Record([]*Player{{Username: "alice", WPM: 90}})
	stats.Record([]*Player{{Username: "bob", WPM: 90}})

	// Ties do not displace the current record holder.
	assert.Equal(t, "alice", stats.Snapshot().FastestPlayer)
}

func TestStatsSnapshotRoundsAverage(t *testing.T) {
	stats := &Stats{}

	stats.Record([]*Player{{Username: "alice", WPM: 50}})
	stats.Record([]*Player{{Username: "bob", WPM: 55}})
	stats.Record([]*Player{{Username: "carol", WPM: 61}})

	assert.Equal(t, 55.33, stats.Snapshot().AverageWPM)
}
