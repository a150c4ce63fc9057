package main

import (
	"math"
	"sync"
)

// Stats aggregates process-wide race statistics. Unlike room state it is
// read outside the coordinator loop (the stats endpoint), so it carries its
// own lock.
type Stats struct {
	mu            sync.Mutex
	totalRaces    int
	totalPlayers  int
	averageWPM    float64
	highestWPM    int
	fastestPlayer string
}

type StatsSnapshot struct {
	TotalRaces    int     `json:"totalRaces"`
	TotalPlayers  int     `json:"totalPlayers"`
	AverageWPM    float64 `json:"averageWpm"`
	HighestWPM    int     `json:"highestWpm"`
	FastestPlayer string  `json:"fastestPlayer"`
}

// Record folds one completed race into the running totals. The average is
// weighted by races, not players: each race contributes its own mean WPM.
func (s *Stats) Record(players []*Player) {
	if len(players) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalRaces++
	s.totalPlayers += len(players)

	sum := 0
	for _, p := range players {
		sum += p.WPM
	}
	raceAverage := float64(sum) / float64(len(players))

	s.averageWPM = ((s.averageWPM * float64(s.totalRaces-1)) + raceAverage) / float64(s.totalRaces)

	for _, p := range players {
		if p.WPM > s.highestWPM {
			s.highestWPM = p.WPM
			s.fastestPlayer = p.Username
		}
	}
}

func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return StatsSnapshot{
		TotalRaces:    s.totalRaces,
		TotalPlayers:  s.totalPlayers,
		AverageWPM:    math.Round(s.averageWPM*100) / 100,
		HighestWPM:    s.highestWPM,
		FastestPlayer: s.fastestPlayer,
	}
}
