package main

import (
	"strings"
	"time"
)

type raceCause int

const (
	finishedOrganically raceCause = iota
	finishedByHost
	finishedByTimeout
)

func (co *Coordinator) touch(room *Room) {
	room.lastActivity = co.clock.Now()
}

// roomFor resolves the caller's bound room, or nil. Passive intents treat
// nil as a silent no-op; active intents report it.
func (co *Coordinator) roomFor(c *client) *Room {
	if c.roomID == "" {
		return nil
	}
	return co.rooms.get(c.roomID)
}

func (co *Coordinator) activeRoomFor(c *client) *Room {
	room := co.roomFor(c)
	if room == nil {
		co.sendError(c, "Room not found")
	}
	return room
}

func (co *Coordinator) handleCreateRoom(c *client, msg ClientMessage) {
	username := strings.TrimSpace(msg.Username)
	if username == "" {
		co.sendError(c, "Username is required")
		return
	}

	// A connection holds at most one room binding at a time.
	if c.roomID != "" {
		co.handlePlayerLeave(c)
	}

	room, err := co.rooms.create(c.connID, username, co.cfg.raceTimeout, co.clock.Now())
	if err != nil {
		logf(co.cfg, "RACES: %v", err)
		co.sendError(c, "Failed to create room")
		return
	}

	c.roomID = room.id

	co.sendTo(c, RoomCreatedMessage{
		Type:    "roomCreated",
		RoomID:  room.id,
		IsHost:  true,
		Players: room.roster(),
	})

	logf(co.cfg, "RACES: Room %s created by %q", room.id, username)
}

func (co *Coordinator) handleJoinRoom(c *client, msg ClientMessage) {
	username := strings.TrimSpace(msg.Username)
	if username == "" {
		co.sendError(c, "Username is required")
		return
	}

	room := co.rooms.get(msg.RoomID)
	if room == nil {
		co.sendError(c, "Room not found")
		return
	}

	if room.locked {
		co.sendError(c, "This room is locked by the host")
		return
	}

	if room.status == statusRacing {
		co.sendError(c, "Race already in progress")
		return
	}

	if room.findPlayerByName(username) != nil {
		co.sendError(c, "Username already taken in this room")
		return
	}

	if c.roomID != "" {
		co.handlePlayerLeave(c)
	}

	room.players = append(room.players, newPlayer(c.connID, username, false))
	c.roomID = room.id

	co.sendTo(c, RoomJoinedMessage{
		Type:     "roomJoined",
		RoomID:   room.id,
		IsHost:   false,
		Players:  room.roster(),
		Category: room.category,
	})

	co.broadcastExcept(room, c.connID, PlayerJoinedMessage{
		Type:     "playerJoined",
		Players:  room.roster(),
		Username: username,
	})

	co.touch(room)

	logf(co.cfg, "RACES: Player %q joined room %s", username, room.id)
}

func (co *Coordinator) handleRejoinRoom(c *client, msg ClientMessage) {
	room := co.rooms.get(msg.RoomID)
	if room == nil {
		co.sendTo(c, RoomRejoinResultMessage{
			Type:    "roomRejoinResult",
			Success: false,
			Message: "Room no longer exists",
		})
		return
	}

	player := room.findPlayerByName(msg.Username)
	if player == nil {
		co.sendTo(c, RoomRejoinResultMessage{
			Type:    "roomRejoinResult",
			Success: false,
			Message: "Player not found in this room",
		})
		return
	}

	// Refuse to steal an identity whose connection is still live.
	if _, connected := co.clients[player.ID]; connected {
		co.sendTo(c, RoomRejoinResultMessage{
			Type:    "roomRejoinResult",
			Success: false,
			Message: "Player already connected in this room",
		})
		return
	}

	player.ID = c.connID
	if player.IsHost {
		room.host = c.connID
	}
	c.roomID = room.id

	co.sendTo(c, RoomRejoinResultMessage{
		Type:      "roomRejoinResult",
		Success:   true,
		RoomID:    room.id,
		IsHost:    player.IsHost,
		Players:   room.roster(),
		Status:    string(room.status),
		Category:  room.category,
		Text:      room.text,
		StartTime: room.startTimeMillis(),
	})

	co.broadcastExcept(room, c.connID, PlayerRejoinedMessage{
		Type:     "playerRejoined",
		Players:  room.roster(),
		Username: player.Username,
	})

	co.touch(room)

	logf(co.cfg, "RACES: Player %q rejoined room %s", player.Username, room.id)
}

func (co *Coordinator) handleUpdateCategory(c *client, msg ClientMessage) {
	room := co.activeRoomFor(c)
	if room == nil {
		return
	}

	if c.connID != room.host {
		co.sendError(c, "Only the host can change the category")
		return
	}

	if !validCategory(msg.Category) {
		co.sendError(c, "Unknown text category")
		return
	}

	room.category = msg.Category

	co.broadcast(room, CategoryUpdatedMessage{
		Type:     "categoryUpdated",
		Category: msg.Category,
	})

	co.touch(room)
}

func (co *Coordinator) handleSubmitCustomText(c *client, msg ClientMessage) {
	room := co.activeRoomFor(c)
	if room == nil {
		return
	}

	if c.connID != room.host {
		co.sendError(c, "Only the host can submit custom text")
		return
	}

	text := normalizeText(msg.Text)
	if len([]rune(text)) < minCustomTextRunes {
		co.sendError(c, "Custom text is too short (minimum 20 characters)")
		return
	}

	room.customText = text
	room.category = "custom"

	preview := text
	if runes := []rune(text); len(runes) > 50 {
		preview = string(runes[:50]) + "..."
	}

	co.broadcast(room, CustomTextSubmittedMessage{
		Type:        "customTextSubmitted",
		Category:    "custom",
		PreviewText: preview,
	})

	co.touch(room)

	logf(co.cfg, "RACES: Custom text submitted in room %s by host", room.id)
}

func (co *Coordinator) handleSetRaceTimeout(c *client, msg ClientMessage) {
	room := co.activeRoomFor(c)
	if room == nil {
		return
	}

	if c.connID != room.host {
		co.sendError(c, "Only the host can set race timeout")
		return
	}

	if msg.Timeout < minRaceTimeout || msg.Timeout > maxRaceTimeout {
		co.sendError(c, "Invalid timeout value (must be between 30 and 600 seconds)")
		return
	}

	room.raceTimeout = msg.Timeout

	co.broadcast(room, RaceTimeoutSetMessage{
		Type:    "raceTimeoutSet",
		Timeout: msg.Timeout,
	})

	co.touch(room)
}

func (co *Coordinator) handleToggleRoomLock(c *client, msg ClientMessage) {
	room := co.activeRoomFor(c)
	if room == nil {
		return
	}

	if c.connID != room.host {
		co.sendError(c, "Only the host can lock/unlock the room")
		return
	}

	locked := msg.Locked != nil && *msg.Locked
	room.locked = locked

	co.broadcast(room, RoomLockChangedMessage{
		Type:   "roomLockChanged",
		Locked: locked,
	})

	co.touch(room)
}

func (co *Coordinator) handleToggleReady(c *client, msg ClientMessage) {
	room := co.activeRoomFor(c)
	if room == nil {
		return
	}

	player := room.findPlayer(c.connID)
	if player == nil {
		co.sendError(c, "Player not found")
		return
	}

	ready := msg.Ready != nil && *msg.Ready
	player.IsReady = ready

	co.broadcast(room, PlayerReadyChangedMessage{
		Type:     "playerReadyChanged",
		PlayerID: c.connID,
		Ready:    ready,
	})

	// Auto-start when the host's toggle leaves everyone ready. The actual
	// start is deferred by a grace window and re-validated at fire time,
	// since the room may change in between.
	if player.IsHost && room.allReady() && room.status == statusWaiting && len(room.players) > 1 {
		roomID := room.id
		room.stopAutoStartTimer()
		room.autoStartTimer = co.clock.AfterFunc(co.cfg.autoStartDelay, func() {
			co.timers <- timerEvent{roomID: roomID, kind: timerAutoStart}
		})
	}

	co.touch(room)
}

func (co *Coordinator) handleKickPlayer(c *client, msg ClientMessage) {
	room := co.activeRoomFor(c)
	if room == nil {
		return
	}

	if c.connID != room.host {
		co.sendError(c, "Only the host can kick players")
		return
	}

	if msg.PlayerID == c.connID {
		co.sendError(c, "You cannot kick yourself")
		return
	}

	kicked := room.removePlayer(msg.PlayerID)
	if kicked == nil {
		co.sendError(c, "Player not found")
		return
	}

	if target, ok := co.clients[msg.PlayerID]; ok {
		co.sendTo(target, KickedFromRoomMessage{Type: "kickedFromRoom"})
		target.roomID = ""
	}

	co.broadcast(room, PlayerKickedMessage{
		Type:           "playerKicked",
		Players:        room.roster(),
		KickedUsername: kicked.Username,
	})

	// The kicked player may have been the only one still typing.
	if room.status == statusRacing && room.allFinished() {
		co.completeRace(room, finishedOrganically)
	}

	co.touch(room)

	logf(co.cfg, "RACES: Player %q kicked from room %s by host", kicked.Username, room.id)
}

func (co *Coordinator) handleStartRace(c *client) {
	room := co.activeRoomFor(c)
	if room == nil {
		return
	}

	if c.connID != room.host {
		co.sendError(c, "Only the host can start the race")
		return
	}

	if room.status != statusWaiting {
		co.sendError(c, "Race already starting or in progress")
		return
	}

	if len(room.players) < 1 {
		co.sendError(c, "Need at least one player to start a race")
		return
	}

	co.startCountdown(room)
	co.touch(room)
}

// startCountdown picks the race text, reveals it, and begins the 3-2-1
// sequence at one tick per second.
func (co *Coordinator) startCountdown(room *Room) {
	if room.category == "custom" && room.customText != "" {
		room.text = room.customText
	} else {
		room.text = randomText(room.category)
	}

	room.status = statusCountdown
	room.countdown = countdownSeconds

	co.broadcast(room, RaceCountdownMessage{
		Type:      "raceCountdown",
		Countdown: room.countdown,
		Text:      room.text,
	})

	co.armCountdownTick(room)

	logf(co.cfg, "RACES: Race countdown started in room %s", room.id)
}

func (co *Coordinator) armCountdownTick(room *Room) {
	roomID := room.id
	room.countdownTimer = co.clock.AfterFunc(time.Second, func() {
		co.timers <- timerEvent{roomID: roomID, kind: timerCountdownTick}
	})
}

// startRacing is the countdown-reaches-zero transition. The countdown
// handle is already cleared by the tick handler before this runs.
func (co *Coordinator) startRacing(room *Room) {
	room.status = statusRacing
	room.startTime = co.clock.Now()

	for _, p := range room.players {
		p.IsReady = false
	}

	co.broadcast(room, RaceStartedMessage{
		Type:      "raceStarted",
		StartTime: room.startTimeMillis(),
	})

	if room.raceTimeout > 0 {
		roomID := room.id
		room.raceTimer = co.clock.AfterFunc(time.Duration(room.raceTimeout)*time.Second, func() {
			co.timers <- timerEvent{roomID: roomID, kind: timerRaceTimeout}
		})
	}

	logf(co.cfg, "RACES: Race started in room %s", room.id)
}

// handleTimer processes a fired timer. The room is re-fetched and its state
// re-validated, because the world may have changed between scheduling and
// firing.
func (co *Coordinator) handleTimer(te timerEvent) {
	room := co.rooms.get(te.roomID)
	if room == nil {
		return
	}

	switch te.kind {
	case timerAutoStart:
		room.autoStartTimer = nil

		if room.status == statusWaiting && room.allReady() && len(room.players) > 1 {
			co.startCountdown(room)
		}

	case timerCountdownTick:
		if room.status != statusCountdown {
			return
		}

		room.countdown--
		if room.countdown > 0 {
			co.broadcast(room, RaceCountdownUpdateMessage{
				Type:      "raceCountdownUpdate",
				Countdown: room.countdown,
			})
			co.armCountdownTick(room)
			return
		}

		room.countdownTimer = nil
		co.startRacing(room)

	case timerRaceTimeout:
		room.raceTimer = nil

		if room.status == statusRacing {
			co.completeRace(room, finishedByTimeout)
			logf(co.cfg, "RACES: Race in room %s force finished due to timeout", room.id)
		}
	}
}

func (co *Coordinator) handleUpdateProgress(c *client, msg ClientMessage) {
	room := co.roomFor(c)
	if room == nil || room.status != statusRacing {
		return
	}

	player := room.findPlayer(c.connID)
	if player == nil {
		return
	}

	// Progress is monotonic non-decreasing within a race.
	progress := min(max(msg.Progress, 0), 100)
	if progress > player.Progress {
		player.Progress = progress
	}
	player.WPM = max(msg.WPM, 0)
	player.Accuracy = min(max(msg.Accuracy, 0), 100)
	player.IsTyping = false

	co.broadcast(room, ProgressUpdatedMessage{
		Type:     "progressUpdated",
		PlayerID: c.connID,
		Progress: player.Progress,
		WPM:      player.WPM,
		Accuracy: player.Accuracy,
	})

	co.touch(room)
}

func (co *Coordinator) handleFinishRace(c *client, msg ClientMessage) {
	room := co.roomFor(c)
	if room == nil || room.status != statusRacing {
		return
	}

	player := room.findPlayer(c.connID)
	if player == nil || player.Finished {
		return
	}

	elapsed := co.elapsedSeconds(room)

	finishTime := msg.Time
	if finishTime == "" {
		finishTime = formatTime(elapsed)
	}

	// Clients report their own score; derive one from the race text when
	// the report is missing.
	wpm := max(msg.WPM, 0)
	if wpm == 0 {
		wpm = calculateWPM(len([]rune(room.text)), float64(elapsed))
	}

	player.Finished = true
	player.FinishTime = finishTime
	player.Progress = 100
	player.WPM = wpm
	player.Accuracy = min(max(msg.Accuracy, 0), 100)

	co.broadcast(room, PlayerFinishedMessage{
		Type:     "playerFinished",
		PlayerID: c.connID,
		WPM:      player.WPM,
		Accuracy: player.Accuracy,
		Time:     player.FinishTime,
	})

	if room.allFinished() {
		co.completeRace(room, finishedOrganically)
		logf(co.cfg, "RACES: Race completed in room %s", room.id)
	}

	co.touch(room)

	logf(co.cfg, "RACES: Player %q finished race in room %s", player.Username, room.id)
}

func (co *Coordinator) handleForceFinishRace(c *client) {
	room := co.activeRoomFor(c)
	if room == nil {
		return
	}

	if c.connID != room.host {
		co.sendError(c, "Only the host can force finish the race")
		return
	}

	if room.status != statusRacing {
		co.sendError(c, "No race in progress")
		return
	}

	co.completeRace(room, finishedByHost)
	co.touch(room)

	logf(co.cfg, "RACES: Race in room %s force finished by host", room.id)
}

func (co *Coordinator) elapsedSeconds(room *Room) int {
	if room.startTime.IsZero() {
		return 0
	}
	return int(co.clock.Now().Sub(room.startTime) / time.Second)
}

// completeRace is the single finishing routine shared by organic, host-
// forced, and timeout-forced completion. It stops the timeout timer, marks
// any unfinished players finished at their current progress, broadcasts the
// final roster with the cause flag, and feeds the race into the stats
// aggregator.
func (co *Coordinator) completeRace(room *Room, cause raceCause) {
	room.status = statusFinished
	room.stopRaceTimer()

	elapsed := formatTime(co.elapsedSeconds(room))
	for _, p := range room.players {
		if !p.Finished {
			p.Finished = true
			p.FinishTime = elapsed
		}
	}

	co.broadcast(room, RaceCompletedMessage{
		Type:            "raceCompleted",
		Players:         room.roster(),
		ForcedByHost:    cause == finishedByHost,
		ForcedByTimeout: cause == finishedByTimeout,
	})

	co.stats.Record(room.players)
	room.raceEndTime = co.clock.Now()
	room.gamesPlayed++
}

func (co *Coordinator) handlePlayAgain(c *client) {
	room := co.activeRoomFor(c)
	if room == nil {
		return
	}

	if c.connID != room.host {
		co.sendError(c, "Only the host can start a new race")
		return
	}

	room.stopAllTimers()
	room.resetForNewRace()

	co.broadcast(room, ResetRaceMessage{
		Type:    "resetRace",
		Players: room.roster(),
	})

	co.touch(room)

	logf(co.cfg, "RACES: Room %s reset for a new race", room.id)
}

func (co *Coordinator) handlePlayerTyping(c *client) {
	room := co.roomFor(c)
	if room == nil {
		return
	}

	player := room.findPlayer(c.connID)
	if player == nil {
		return
	}
	player.IsTyping = true

	co.broadcastExcept(room, c.connID, PlayerTypingMessage{
		Type:     "playerTyping",
		PlayerID: c.connID,
	})

	co.touch(room)
}

func (co *Coordinator) handleGetRandomText(c *client, msg ClientMessage) {
	category := msg.Category
	if category == "" {
		category = "quotes"
	}

	co.sendTo(c, PracticeTextMessage{
		Type: "practiceText",
		Text: randomText(category),
	})
}

func (co *Coordinator) handleShareResults(c *client, msg ClientMessage) {
	room := co.roomFor(c)
	if room == nil {
		return
	}

	player := room.findPlayer(c.connID)
	if player == nil {
		return
	}

	co.sendTo(c, ShareResultsURLMessage{
		Type:     "shareResultsUrl",
		URL:      buildShareURL(c.origin, room.id, msg.Platform, player.WPM),
		Platform: msg.Platform,
	})
}

// handlePlayerLeave removes the caller from its room, on explicit leave or
// on disconnect. The last player out deletes the room; a departing host
// hands privileges to the next player in insertion order, and a departing
// host additionally cancels any countdown in flight.
func (co *Coordinator) handlePlayerLeave(c *client) {
	room := co.roomFor(c)
	c.roomID = ""
	if room == nil {
		return
	}

	player := room.removePlayer(c.connID)
	if player == nil {
		return
	}

	if len(room.players) == 0 {
		room.stopAllTimers()
		co.rooms.delete(room.id)
		logf(co.cfg, "RACES: Room %s deleted (no players left)", room.id)
		return
	}

	if player.IsHost {
		successor := room.players[0]
		successor.IsHost = true
		room.host = successor.ID

		co.sendToPlayer(successor.ID, HostChangedMessage{
			Type:   "hostChanged",
			IsHost: true,
		})

		// The countdown was driven by the departed host; cancel it and put
		// the room back in the lobby.
		if room.status == statusCountdown {
			room.stopCountdownTimer()
			room.resetForNewRace()

			co.broadcast(room, ResetRaceMessage{
				Type:    "resetRace",
				Players: room.roster(),
			})
		}
	}

	co.broadcast(room, PlayerLeftMessage{
		Type:     "playerLeft",
		Players:  room.roster(),
		PlayerID: player.ID,
	})

	// A race should not hang on a departed straggler; if everyone still in
	// the room has finished, close it out now rather than waiting for the
	// timeout timer.
	if room.status == statusRacing && room.allFinished() {
		co.completeRace(room, finishedOrganically)
	}

	co.touch(room)

	logf(co.cfg, "RACES: Player %q left room %s", player.Username, room.id)
}
