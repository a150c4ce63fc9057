package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// client is one websocket session. The connection id is its identity for
// the lifetime of the connection; roomID binds it to at most one room at a
// time. Both roomID and sendClosed are owned by the coordinator loop.
type client struct {
	conn       *websocket.Conn
	send       chan any
	connID     string
	origin     string // scheme://host+prefix, for share links
	roomID     string
	sendClosed bool
}

type intent struct {
	client *client
	msg    ClientMessage
}

type timerKind int

const (
	timerAutoStart timerKind = iota
	timerCountdownTick
	timerRaceTimeout
)

// timerEvent carries only the room id; the room is re-fetched from the
// registry when the event is handled, so a fired timer whose room has moved
// on or disappeared becomes a no-op.
type timerEvent struct {
	roomID string
	kind   timerKind
}

// Coordinator owns the registry and every room's state. A single goroutine
// (run) consumes client intents, timer events, disconnects, and reaper
// ticks, so intents are processed one at a time and room state needs no
// locking.
type Coordinator struct {
	cfg   *Config
	clock clockwork.Clock
	rooms *Registry
	stats *Stats

	clients map[string]*client

	register   chan *client
	unregister chan *client
	intents    chan intent
	timers     chan timerEvent
}

func newCoordinator(cfg *Config, clock clockwork.Clock) *Coordinator {
	// Lifecycle channels stay unbuffered so a connection's register and
	// unregister rendezvous with the loop in send order. Buffering would
	// let the select drain a short-lived connection's unregister first and
	// leak the client on the late register.
	return &Coordinator{
		cfg:        cfg,
		clock:      clock,
		rooms:      newRegistry(),
		stats:      &Stats{},
		clients:    make(map[string]*client),
		register:   make(chan *client),
		unregister: make(chan *client),
		intents:    make(chan intent, 256),
		timers:     make(chan timerEvent, 64),
	}
}

func (co *Coordinator) run(ctx context.Context) {
	var reap <-chan time.Time
	if co.cfg.sessionTimeout > 0 {
		ticker := co.clock.NewTicker(co.cfg.sessionTimeout / 2)
		defer ticker.Stop()
		reap = ticker.Chan()
	}

	for {
		select {
		case c := <-co.register:
			co.clients[c.connID] = c
			logf(co.cfg, "RACES: Connection %s established", c.connID)

		case c := <-co.unregister:
			co.dropClient(c)
			co.handlePlayerLeave(c)

		case in := <-co.intents:
			co.dispatch(in.client, in.msg)

		case te := <-co.timers:
			co.handleTimer(te)

		case <-reap:
			co.reapIdleRooms()

		case <-ctx.Done():
			return
		}
	}
}

// dispatch routes one inbound intent to its handler. Unknown types are
// ignored.
func (co *Coordinator) dispatch(c *client, msg ClientMessage) {
	switch msg.Type {
	case "createRoom":
		co.handleCreateRoom(c, msg)
	case "joinRoom":
		co.handleJoinRoom(c, msg)
	case "rejoinRoom":
		co.handleRejoinRoom(c, msg)
	case "updateCategory":
		co.handleUpdateCategory(c, msg)
	case "submitCustomText":
		co.handleSubmitCustomText(c, msg)
	case "setRaceTimeout":
		co.handleSetRaceTimeout(c, msg)
	case "toggleRoomLock":
		co.handleToggleRoomLock(c, msg)
	case "toggleReady":
		co.handleToggleReady(c, msg)
	case "kickPlayer":
		co.handleKickPlayer(c, msg)
	case "startRace":
		co.handleStartRace(c)
	case "updateProgress":
		co.handleUpdateProgress(c, msg)
	case "finishRace":
		co.handleFinishRace(c, msg)
	case "forceFinishRace":
		co.handleForceFinishRace(c)
	case "playAgain":
		co.handlePlayAgain(c)
	case "playerTyping":
		co.handlePlayerTyping(c)
	case "getRandomText":
		co.handleGetRandomText(c, msg)
	case "shareResults":
		co.handleShareResults(c, msg)
	case "leaveRoom":
		co.handlePlayerLeave(c)
	default:
		// ignore unknown types
	}
}

// sendTo queues a message for a single client, dropping it if the client's
// buffer is full.
func (co *Coordinator) sendTo(c *client, msg any) {
	if c == nil || c.sendClosed {
		return
	}

	select {
	case c.send <- msg:
	default:
		// Drop message if channel full
	}
}

func (co *Coordinator) sendToPlayer(connID string, msg any) {
	co.sendTo(co.clients[connID], msg)
}

// broadcast delivers a message to every player in the room, including the
// triggering one.
func (co *Coordinator) broadcast(room *Room, msg any) {
	for _, p := range room.players {
		co.sendToPlayer(p.ID, msg)
	}
}

// broadcastExcept delivers a message to every player in the room except the
// named connection.
func (co *Coordinator) broadcastExcept(room *Room, exceptID string, msg any) {
	for _, p := range room.players {
		if p.ID == exceptID {
			continue
		}
		co.sendToPlayer(p.ID, msg)
	}
}

func (co *Coordinator) sendError(c *client, message string) {
	co.sendTo(c, ErrorMessage{
		Type:    "error",
		Message: message,
	})
}

// dropClient removes a connection from the live set and closes its send
// channel exactly once, letting the write pump drain and close the socket.
func (co *Coordinator) dropClient(c *client) {
	delete(co.clients, c.connID)

	if !c.sendClosed {
		c.sendClosed = true
		close(c.send)
	}
}

// reapIdleRooms deletes rooms idle past the session timeout and disconnects
// their remaining players.
func (co *Coordinator) reapIdleRooms() {
	cutoff := co.clock.Now().Add(-co.cfg.sessionTimeout)

	for _, room := range co.rooms.idle(cutoff) {
		room.stopAllTimers()
		co.rooms.delete(room.id)

		for _, p := range room.players {
			if c, ok := co.clients[p.ID]; ok {
				c.roomID = ""
				co.dropClient(c)
			}
		}

		logf(co.cfg, "RACES: Room %s reaped after idle timeout", room.id)
	}
}

// serveWS upgrades the connection, assigns it a connection id, and hands it
// to the coordinator.
func serveWS(cfg *Config, co *Coordinator) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		scheme := cfg.scheme()
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}

		c := &client{
			conn:   conn,
			send:   make(chan any, 64),
			connID: uuid.New().String(),
			origin: scheme + "://" + r.Host + cfg.prefix,
		}

		co.register <- c

		go c.writePump()
		c.readPump(co)
	}
}

func (c *client) readPump(co *Coordinator) {
	defer func() {
		co.unregister <- c
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		co.intents <- intent{
			client: c,
			msg:    msg,
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
