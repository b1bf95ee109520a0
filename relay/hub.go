package relay

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jsphweid/chordex/chord"
	"github.com/jsphweid/chordex/constants"
	"github.com/jsphweid/chordex/logger"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/notes"
	"golang.org/x/exp/slices"
)

// Connection timing as in gorilla/websocket's chat example.
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

type room struct {
	name    string
	peers   map[*peer]bool
	tracker *notes.Tracker
	// keys each peer pressed and has not released yet
	held map[*peer]map[model.Pitch]bool
}

func (r *room) press(p *peer, note model.Pitch) {
	keys, ok := r.held[p]
	if !ok {
		keys = make(map[model.Pitch]bool)
		r.held[p] = keys
	}
	keys[note] = true
}

// release forgets p's keys and returns those no other peer is holding.
func (r *room) release(p *peer) []model.Pitch {
	keys := r.held[p]
	delete(r.held, p)

	var released []model.Pitch
	for note := range keys {
		shared := false
		for other, otherKeys := range r.held {
			if other != p && otherKeys[note] {
				shared = true
				break
			}
		}
		if !shared {
			released = append(released, note)
		}
	}
	slices.Sort(released)
	return released
}

// Hub relays piano messages between the peers of a room. Every room keeps its
// own held-note state and tells its peers which chords are sounding whenever
// that state changes.
type Hub struct {
	mu       sync.Mutex
	rooms    map[string]*room
	analyzer *chord.Analyzer
	upgrader websocket.Upgrader
}

func NewHub(analyzer *chord.Analyzer, checkOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		rooms:    make(map[string]*room),
		analyzer: analyzer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// AllowOrigins accepts requests whose Origin header is listed. "*" accepts
// everything.
func AllowOrigins(origins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(origins, "*") || slices.Contains(origins, origin)
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.GetLogger().Warn("relay: upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	p := &peer{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	logger.GetLogger().Info("relay: peer connected", "peer", p.id, "remote", r.RemoteAddr)

	go p.writePump()
	h.join(p, constants.DefaultRoom)
	p.readPump(h)
}

// Users returns how many peers are in the named room.
func (h *Hub) Users(name string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.rooms[name]; ok {
		return len(r.peers)
	}
	return 0
}

// Close drops every connection. Peers leave their rooms as their read loops
// fail.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, r := range h.rooms {
		for p := range r.peers {
			p.conn.Close()
		}
	}
}

func (h *Hub) handle(p *peer, data []byte) {
	log := logger.GetLogger()

	var env model.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Warn("relay: bad message", "peer", p.id, "err", err)
		return
	}

	switch env.Type {
	case model.MessageTypePiano:
		var msg model.PianoMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Warn("relay: bad piano message", "peer", p.id, "err", err)
			return
		}
		if !model.IsNoteCmd(msg.Cmd) || (msg.Cmd == model.CmdNoteOn && msg.Vel == 0) {
			log.Warn("relay: dropping piano message", "peer", p.id, "cmd", msg.Cmd, "vel", msg.Vel)
			return
		}
		h.piano(p, msg, data)
	case model.MessageTypeRoom:
		var msg model.RoomMessage
		if err := json.Unmarshal(data, &msg); err != nil || msg.Name == "" {
			log.Warn("relay: bad room message", "peer", p.id, "err", err)
			return
		}
		h.join(p, msg.Name)
	default:
		log.Warn("relay: unknown message type", "peer", p.id, "type", env.Type)
	}
}

// piano forwards the raw message to the rest of the room and updates the
// room's chord.
func (h *Hub) piano(p *peer, msg model.PianoMessage, raw []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r := p.room
	if p.closed || r == nil {
		return
	}
	for other := range r.peers {
		if other != p {
			h.deliverLocked(other, raw)
		}
	}

	switch msg.Cmd {
	case model.CmdNoteOn:
		if notes.OnKeyboard(msg.Note) {
			r.press(p, msg.Note)
		}
	case model.CmdNoteOff:
		delete(r.held[p], msg.Note)
	}

	before := r.tracker.Held()
	r.tracker.Handle(model.NoteEvent{
		Cmd:      msg.Cmd,
		Note:     msg.Note,
		Velocity: msg.Vel,
		Origin:   model.OriginSocket,
	})
	h.chordLocked(r, before)
}

// chordLocked tells the room which chords sound now, unless the held keys
// are still those in before.
func (h *Hub) chordLocked(r *room, before model.Notes) {
	after := r.tracker.Held()
	if slices.Equal(before, after) {
		return
	}

	data, err := json.Marshal(model.ChordMessage{
		Type:   model.MessageTypeChord,
		Room:   r.name,
		Notes:  after,
		Chords: h.analyzer.Analyze(after),
	})
	if err != nil {
		logger.GetLogger().Error("relay: encoding chord", "room", r.name, "err", err)
		return
	}
	h.broadcastLocked(r, data)
}

func (h *Hub) join(p *peer, name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if p.closed {
		return
	}
	if p.room != nil && p.room.name == name {
		h.announceLocked(p.room)
		return
	}

	h.detachLocked(p)
	r, ok := h.rooms[name]
	if !ok {
		r = &room{
			name:    name,
			peers:   make(map[*peer]bool),
			tracker: notes.NewTracker(),
			held:    make(map[*peer]map[model.Pitch]bool),
		}
		h.rooms[name] = r
	}
	r.peers[p] = true
	p.room = r
	logger.GetLogger().Debug("relay: joined room", "peer", p.id, "room", name, "users", len(r.peers))
	h.announceLocked(r)
}

func (h *Hub) leave(p *peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(p)
}

// detachLocked takes p out of its room, dropping the room once empty. Keys
// p still held are released for the peers that stay.
func (h *Hub) detachLocked(p *peer) {
	r := p.room
	if r == nil {
		return
	}
	delete(r.peers, p)
	p.room = nil
	released := r.release(p)
	if len(r.peers) == 0 {
		delete(h.rooms, r.name)
		return
	}

	before := r.tracker.Held()
	for _, note := range released {
		r.tracker.NoteOff(note, model.OriginSocket)
		data, err := json.Marshal(model.PianoMessage{
			Type:   model.MessageTypePiano,
			Cmd:    model.CmdNoteOff,
			Note:   note,
			Origin: model.OriginSocket,
		})
		if err != nil {
			logger.GetLogger().Error("relay: encoding note off", "room", r.name, "err", err)
			continue
		}
		h.broadcastLocked(r, data)
	}
	h.announceLocked(r)
	h.chordLocked(r, before)
}

// removeLocked detaches p for good and stops its writer.
func (h *Hub) removeLocked(p *peer) {
	if p.closed {
		return
	}
	h.detachLocked(p)
	p.closed = true
	close(p.send)
	logger.GetLogger().Info("relay: peer left", "peer", p.id)
}

func (h *Hub) announceLocked(r *room) {
	data, err := json.Marshal(model.RoomMessage{
		Type:  model.MessageTypeRoom,
		Name:  r.name,
		Users: len(r.peers),
	})
	if err != nil {
		logger.GetLogger().Error("relay: encoding room", "room", r.name, "err", err)
		return
	}
	h.broadcastLocked(r, data)
}

func (h *Hub) broadcastLocked(r *room, data []byte) {
	for p := range r.peers {
		h.deliverLocked(p, data)
	}
}

// deliverLocked queues data for p. Peers that cannot keep up are dropped.
func (h *Hub) deliverLocked(p *peer, data []byte) {
	select {
	case p.send <- data:
	default:
		logger.GetLogger().Warn("relay: dropping slow peer", "peer", p.id)
		h.removeLocked(p)
	}
}
