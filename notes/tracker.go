package notes

import (
	"context"
	"sync"

	"github.com/jsphweid/chordex/constants"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/util"
)

type Listener = func(model.NoteEvent)

type subscription struct {
	id int
	fn Listener
}

// Tracker keeps the set of keys currently held down, whatever their origin,
// and fans every note event out to its listeners. Listeners run on the
// goroutine that reported the event, after the held set was updated.
type Tracker struct {
	mu        sync.Mutex
	held      map[model.Pitch]uint8
	sustained bool
	listeners []subscription
	nextID    int
}

func NewTracker() *Tracker {
	return &Tracker{held: make(map[model.Pitch]uint8)}
}

func OnKeyboard(p model.Pitch) bool {
	return p >= constants.BottomNote && p <= constants.TopNote
}

// Subscribe registers fn for all future events. Calling the returned func
// removes it again.
func (t *Tracker) Subscribe(fn Listener) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	id := t.nextID
	t.listeners = append(t.listeners, subscription{id: id, fn: fn})

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		for i, sub := range t.listeners {
			if sub.id == id {
				t.listeners = append(t.listeners[:i:i], t.listeners[i+1:]...)
				return
			}
		}
	}
}

// SubscribeContext registers fn until ctx is done. Events reported after
// that, such as the note offs of a final Reset, no longer reach fn.
func (t *Tracker) SubscribeContext(ctx context.Context, fn Listener) {
	unsubscribe := t.Subscribe(func(e model.NoteEvent) {
		if ctx.Err() != nil {
			return
		}
		fn(e)
	})
	context.AfterFunc(ctx, unsubscribe)
}

// NoteOn presses a key. Keys off the keyboard are still reported to
// listeners but never held.
func (t *Tracker) NoteOn(p model.Pitch, vel uint8, origin model.Origin) {
	t.mu.Lock()
	if OnKeyboard(p) {
		t.held[p] = vel
	}
	t.mu.Unlock()
	t.emit(model.NoteEvent{Cmd: model.CmdNoteOn, Note: p, Velocity: vel, Origin: origin})
}

func (t *Tracker) NoteOff(p model.Pitch, origin model.Origin) {
	t.mu.Lock()
	delete(t.held, p)
	t.mu.Unlock()
	t.emit(model.NoteEvent{Cmd: model.CmdNoteOff, Note: p, Origin: origin})
}

func (t *Tracker) SustainOn(origin model.Origin) {
	t.setSustain(true)
	t.emit(model.NoteEvent{Cmd: model.CmdSustainOn, Origin: origin})
}

func (t *Tracker) SustainOff(origin model.Origin) {
	t.setSustain(false)
	t.emit(model.NoteEvent{Cmd: model.CmdSustainOff, Origin: origin})
}

// Handle applies an event that arrived already decoded, e.g. from the relay.
// Unknown commands are ignored.
func (t *Tracker) Handle(e model.NoteEvent) {
	switch e.Cmd {
	case model.CmdNoteOn:
		t.NoteOn(e.Note, e.Velocity, e.Origin)
	case model.CmdNoteOff:
		t.NoteOff(e.Note, e.Origin)
	case model.CmdSustainOn:
		t.SustainOn(e.Origin)
	case model.CmdSustainOff:
		t.SustainOff(e.Origin)
	}
}

// Reset releases every held key, reporting a note off for each.
func (t *Tracker) Reset(origin model.Origin) {
	for _, p := range t.Held() {
		t.NoteOff(p, origin)
	}
}

// Held returns the held pitches, lowest first.
func (t *Tracker) Held() model.Notes {
	t.mu.Lock()
	defer t.mu.Unlock()
	return util.SortedKeys(t.held)
}

func (t *Tracker) Velocity(p model.Pitch) (uint8, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	vel, ok := t.held[p]
	return vel, ok
}

func (t *Tracker) Sustained() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sustained
}

func (t *Tracker) setSustain(on bool) {
	t.mu.Lock()
	t.sustained = on
	t.mu.Unlock()
}

func (t *Tracker) emit(e model.NoteEvent) {
	t.mu.Lock()
	listeners := make([]subscription, len(t.listeners))
	copy(listeners, t.listeners)
	t.mu.Unlock()

	for _, sub := range listeners {
		sub.fn(e)
	}
}
