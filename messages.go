package main

// Messages coming from clients. A single tagged envelope covers every
// intent; unused fields stay at their zero value and are validated per
// intent before touching room state.
type ClientMessage struct {
	Type     string `json:"type"`               // intent name, e.g. "createRoom"
	Username string `json:"username,omitempty"` // createRoom / joinRoom / rejoinRoom
	RoomID   string `json:"roomId,omitempty"`   // joinRoom / rejoinRoom
	Category string `json:"category,omitempty"` // updateCategory / getRandomText
	Text     string `json:"text,omitempty"`     // submitCustomText
	Timeout  int    `json:"timeout,omitempty"`  // setRaceTimeout
	Locked   *bool  `json:"locked,omitempty"`   // toggleRoomLock
	Ready    *bool  `json:"ready,omitempty"`    // toggleReady
	PlayerID string `json:"playerId,omitempty"` // kickPlayer
	Progress int    `json:"progress,omitempty"` // updateProgress
	WPM      int    `json:"wpm,omitempty"`      // updateProgress / finishRace
	Accuracy int    `json:"accuracy,omitempty"` // updateProgress / finishRace
	Time     string `json:"time,omitempty"`     // finishRace, formatted mm:ss
	Platform string `json:"platform,omitempty"` // shareResults
}

// PlayerInfo is the wire representation of a player, included in roster
// broadcasts and room snapshots.
type PlayerInfo struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	IsHost     bool   `json:"isHost"`
	Progress   int    `json:"progress"`
	WPM        int    `json:"wpm"`
	Accuracy   int    `json:"accuracy"`
	IsReady    bool   `json:"isReady"`
	Finished   bool   `json:"finished"`
	FinishTime string `json:"finishTime,omitempty"`
	IsTyping   bool   `json:"isTyping"`
}

// Sent to a single client when an intent is rejected.
type ErrorMessage struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}

type RoomCreatedMessage struct {
	Type    string       `json:"type"` // "roomCreated"
	RoomID  string       `json:"roomId"`
	IsHost  bool         `json:"isHost"`
	Players []PlayerInfo `json:"players"`
}

type RoomJoinedMessage struct {
	Type     string       `json:"type"` // "roomJoined"
	RoomID   string       `json:"roomId"`
	IsHost   bool         `json:"isHost"`
	Players  []PlayerInfo `json:"players"`
	Category string       `json:"category"`
}

// RoomRejoinResultMessage carries the full room snapshot on success so the
// client can resume at the correct screen.
type RoomRejoinResultMessage struct {
	Type     string       `json:"type"` // "roomRejoinResult"
	Success  bool         `json:"success"`
	Message  string       `json:"message,omitempty"`
	RoomID   string       `json:"roomId,omitempty"`
	Players  []PlayerInfo `json:"players,omitempty"`
	Status   string       `json:"status,omitempty"`
	Category string       `json:"category,omitempty"`
	Text     string       `json:"text,omitempty"`

	// Zero values are meaningful on a successful rejoin (a non-host
	// player, a race not yet started), so neither field is omitempty.
	IsHost    bool  `json:"isHost"`
	StartTime int64 `json:"startTime"` // unix milliseconds
}

type PlayerJoinedMessage struct {
	Type     string       `json:"type"` // "playerJoined"
	Players  []PlayerInfo `json:"players"`
	Username string       `json:"username"`
}

type PlayerLeftMessage struct {
	Type     string       `json:"type"` // "playerLeft"
	Players  []PlayerInfo `json:"players"`
	PlayerID string       `json:"playerId"`
}

type PlayerRejoinedMessage struct {
	Type     string       `json:"type"` // "playerRejoined"
	Players  []PlayerInfo `json:"players"`
	Username string       `json:"username"`
}

type PlayerKickedMessage struct {
	Type           string       `json:"type"` // "playerKicked"
	Players        []PlayerInfo `json:"players"`
	KickedUsername string       `json:"kickedUsername"`
}

// Sent only to the player being removed.
type KickedFromRoomMessage struct {
	Type string `json:"type"` // "kickedFromRoom"
}

// Sent only to the player inheriting host privileges.
type HostChangedMessage struct {
	Type   string `json:"type"` // "hostChanged"
	IsHost bool   `json:"isHost"`
}

type CategoryUpdatedMessage struct {
	Type     string `json:"type"` // "categoryUpdated"
	Category string `json:"category"`
}

type CustomTextSubmittedMessage struct {
	Type        string `json:"type"` // "customTextSubmitted"
	Category    string `json:"category"`
	PreviewText string `json:"previewText"`
}

type RaceTimeoutSetMessage struct {
	Type    string `json:"type"` // "raceTimeoutSet"
	Timeout int    `json:"timeout"`
}

type RoomLockChangedMessage struct {
	Type   string `json:"type"` // "roomLockChanged"
	Locked bool   `json:"locked"`
}

type PlayerReadyChangedMessage struct {
	Type     string `json:"type"` // "playerReadyChanged"
	PlayerID string `json:"playerId"`
	Ready    bool   `json:"ready"`
}

// RaceCountdownMessage reveals the race text and starts the 3-2-1 sequence.
type RaceCountdownMessage struct {
	Type      string `json:"type"` // "raceCountdown"
	Countdown int    `json:"countdown"`
	Text      string `json:"text"`
}

type RaceCountdownUpdateMessage struct {
	Type      string `json:"type"` // "raceCountdownUpdate"
	Countdown int    `json:"countdown"`
}

type RaceStartedMessage struct {
	Type      string `json:"type"`      // "raceStarted"
	StartTime int64  `json:"startTime"` // unix milliseconds
}

type ProgressUpdatedMessage struct {
	Type     string `json:"type"` // "progressUpdated"
	PlayerID string `json:"playerId"`
	Progress int    `json:"progress"`
	WPM      int    `json:"wpm"`
	Accuracy int    `json:"accuracy"`
}

type PlayerFinishedMessage struct {
	Type     string `json:"type"` // "playerFinished"
	PlayerID string `json:"playerId"`
	WPM      int    `json:"wpm"`
	Accuracy int    `json:"accuracy"`
	Time     string `json:"time"`
}

// RaceCompletedMessage carries the final roster. At most one of the two
// cause flags is set; both stay absent on organic completion.
type RaceCompletedMessage struct {
	Type            string       `json:"type"` // "raceCompleted"
	Players         []PlayerInfo `json:"players"`
	ForcedByHost    bool         `json:"forcedByHost,omitempty"`
	ForcedByTimeout bool         `json:"forcedByTimeout,omitempty"`
}

type ResetRaceMessage struct {
	Type    string       `json:"type"` // "resetRace"
	Players []PlayerInfo `json:"players"`
}

type PlayerTypingMessage struct {
	Type     string `json:"type"` // "playerTyping"
	PlayerID string `json:"playerId"`
}

type PracticeTextMessage struct {
	Type string `json:"type"` // "practiceText"
	Text string `json:"text"`
}

type ShareResultsURLMessage struct {
	Type     string `json:"type"` // "shareResultsUrl"
	URL      string `json:"url"`
	Platform string `json:"platform"`
}
