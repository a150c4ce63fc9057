package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
)

type roomStatus string

const (
	statusWaiting   roomStatus = "waiting"
	statusCountdown roomStatus = "countdown"
	statusRacing    roomStatus = "racing"
	statusFinished  roomStatus = "finished"
)

const (
	minRaceTimeout     = 30
	maxRaceTimeout     = 600
	minCustomTextRunes = 20
	countdownSeconds   = 3
)

// Player holds the data we store server-side for one room member. The ID is
// the player's current connection id and is rebound on rejoin; identity
// across reconnects is the username.
type Player struct {
	ID         string
	Username   string
	IsHost     bool
	Progress   int
	WPM        int
	Accuracy   int
	IsReady    bool
	Finished   bool
	FinishTime string
	IsTyping   bool
}

func newPlayer(id, username string, isHost bool) *Player {
	return &Player{
		ID:       id,
		Username: username,
		IsHost:   isHost,
		Accuracy: 100,
	}
}

func (p *Player) info() PlayerInfo {
	return PlayerInfo{
		ID:         p.ID,
		Username:   p.Username,
		IsHost:     p.IsHost,
		Progress:   p.Progress,
		WPM:        p.WPM,
		Accuracy:   p.Accuracy,
		IsReady:    p.IsReady,
		Finished:   p.Finished,
		FinishTime: p.FinishTime,
		IsTyping:   p.IsTyping,
	}
}

// Room is one isolated race session. All fields are owned by the coordinator
// loop; timers post events back onto that loop rather than mutating the room
// directly, and are stopped whenever a transition supersedes them.
type Room struct {
	id           string
	host         string // connection id of the current host
	category     string
	text         string
	customText   string
	locked       bool
	raceTimeout  int // seconds; 0 disables the timeout timer
	status       roomStatus
	startTime    time.Time
	raceEndTime  time.Time
	createdAt    time.Time
	lastActivity time.Time
	gamesPlayed  int

	// Insertion order defines host succession.
	players []*Player

	countdown      int
	autoStartTimer clockwork.Timer
	countdownTimer clockwork.Timer
	raceTimer      clockwork.Timer
}

func newRoom(id, hostID, hostName string, raceTimeout int, now time.Time) *Room {
	return &Room{
		id:           id,
		host:         hostID,
		category:     "quotes",
		raceTimeout:  raceTimeout,
		status:       statusWaiting,
		createdAt:    now,
		lastActivity: now,
		players:      []*Player{newPlayer(hostID, hostName, true)},
	}
}

func (r *Room) findPlayer(connID string) *Player {
	for _, p := range r.players {
		if p.ID == connID {
			return p
		}
	}
	return nil
}

func (r *Room) findPlayerByName(username string) *Player {
	for _, p := range r.players {
		if p.Username == username {
			return p
		}
	}
	return nil
}

func (r *Room) removePlayer(connID string) *Player {
	for i, p := range r.players {
		if p.ID == connID {
			r.players = append(r.players[:i], r.players[i+1:]...)
			return p
		}
	}
	return nil
}

func (r *Room) allReady() bool {
	for _, p := range r.players {
		if !p.IsReady {
			return false
		}
	}
	return true
}

func (r *Room) allFinished() bool {
	for _, p := range r.players {
		if !p.Finished {
			return false
		}
	}
	return true
}

func (r *Room) roster() []PlayerInfo {
	roster := make([]PlayerInfo, 0, len(r.players))
	for _, p := range r.players {
		roster = append(roster, p.info())
	}
	return roster
}

func (r *Room) startTimeMillis() int64 {
	if r.startTime.IsZero() {
		return 0
	}
	return r.startTime.UnixMilli()
}

// resetForNewRace returns the room to the waiting state and clears every
// per-race player field.
func (r *Room) resetForNewRace() {
	r.status = statusWaiting
	r.text = ""
	r.startTime = time.Time{}

	for _, p := range r.players {
		p.Progress = 0
		p.WPM = 0
		p.Accuracy = 100
		p.IsReady = false
		p.Finished = false
		p.FinishTime = ""
		p.IsTyping = false
	}
}

func (r *Room) stopAutoStartTimer() {
	if r.autoStartTimer != nil {
		r.autoStartTimer.Stop()
		r.autoStartTimer = nil
	}
}

func (r *Room) stopCountdownTimer() {
	if r.countdownTimer != nil {
		r.countdownTimer.Stop()
		r.countdownTimer = nil
	}
}

func (r *Room) stopRaceTimer() {
	if r.raceTimer != nil {
		r.raceTimer.Stop()
		r.raceTimer = nil
	}
}

func (r *Room) stopAllTimers() {
	r.stopAutoStartTimer()
	r.stopCountdownTimer()
	r.stopRaceTimer()
}

// calculateWPM derives words per minute from typed characters and elapsed
// seconds, using the 5-characters-per-word convention.
func calculateWPM(charCount int, seconds float64) int {
	if seconds <= 0 {
		return 0
	}
	words := float64(charCount) / 5
	minutes := seconds / 60

	return int(math.Round(words / minutes))
}

// calculateAccuracy expects totalChars to already include the error count,
// matching how clients report it.
func calculateAccuracy(errors, totalChars int) int {
	if totalChars == 0 {
		return 100
	}
	return int(math.Round((1 - float64(errors)/float64(totalChars)) * 100))
}

// formatTime renders elapsed seconds as mm:ss.
func formatTime(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// normalizeText trims the input and collapses whitespace runs and line
// breaks into single spaces.
func normalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// levenshteinDistance is the edit distance between two strings, used to
// score completed words that do not exactly match the expected word.
func levenshteinDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for j := 0; j <= len(ra); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(rb); i++ {
		curr[0] = i
		for j := 1; j <= len(ra); j++ {
			if rb[i-1] == ra[j-1] {
				curr[j] = prev[j-1]
			} else {
				curr[j] = min(prev[j-1]+1, curr[j-1]+1, prev[j]+1)
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// wordErrors scores one completed word against the expected word.
func wordErrors(typed, expected string) int {
	if typed == expected {
		return 0
	}
	return levenshteinDistance(typed, expected)
}
