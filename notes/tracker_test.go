package notes

import (
	"context"
	"sync"
	"testing"

	"github.com/jsphweid/chordex/model"
	"github.com/stretchr/testify/assert"
)

func TestHeldIsSortedAndTracksOnOff(t *testing.T) {
	tr := NewTracker()
	tr.NoteOn(67, 90, model.OriginDevice)
	tr.NoteOn(60, 100, model.OriginMouse)
	tr.NoteOn(64, 80, model.OriginSocket)

	assert := assert.New(t)
	assert.Equal(model.Notes{60, 64, 67}, tr.Held())

	vel, ok := tr.Velocity(60)
	assert.True(ok)
	assert.Equal(uint8(100), vel)

	tr.NoteOff(64, model.OriginSocket)
	assert.Equal(model.Notes{60, 67}, tr.Held())

	// releasing a key that is not down is harmless
	tr.NoteOff(30, model.OriginDevice)
	assert.Equal(model.Notes{60, 67}, tr.Held())
}

func TestKeysOffTheKeyboardAreReportedButNotHeld(t *testing.T) {
	tr := NewTracker()
	var got []model.NoteEvent
	tr.Subscribe(func(e model.NoteEvent) { got = append(got, e) })

	tr.NoteOn(20, 100, model.OriginDevice)
	tr.NoteOn(109, 100, model.OriginDevice)
	tr.NoteOn(21, 100, model.OriginDevice)
	tr.NoteOn(108, 100, model.OriginDevice)

	assert := assert.New(t)
	assert.Equal(model.Notes{21, 108}, tr.Held())
	assert.Len(got, 4)
}

func TestListenersSeeUpdatedState(t *testing.T) {
	tr := NewTracker()
	var seen []model.Notes
	tr.Subscribe(func(e model.NoteEvent) { seen = append(seen, tr.Held()) })

	tr.NoteOn(60, 100, model.OriginApp)
	tr.NoteOn(64, 100, model.OriginApp)
	tr.NoteOff(60, model.OriginApp)

	assert.Equal(t, []model.Notes{{60}, {60, 64}, {64}}, seen)
}

func TestUnsubscribe(t *testing.T) {
	tr := NewTracker()
	var a, b int
	unsubA := tr.Subscribe(func(model.NoteEvent) { a++ })
	tr.Subscribe(func(model.NoteEvent) { b++ })

	tr.NoteOn(60, 100, model.OriginApp)
	unsubA()
	unsubA()
	tr.NoteOn(62, 100, model.OriginApp)

	assert := assert.New(t)
	assert.Equal(1, a)
	assert.Equal(2, b)
}

func TestSustainDoesNotChangeHeldNotes(t *testing.T) {
	tr := NewTracker()
	var cmds []model.NoteCmd
	tr.Subscribe(func(e model.NoteEvent) { cmds = append(cmds, e.Cmd) })

	tr.NoteOn(60, 100, model.OriginDevice)
	tr.SustainOn(model.OriginDevice)
	tr.NoteOff(60, model.OriginDevice)

	assert := assert.New(t)
	assert.True(tr.Sustained())
	assert.Empty(tr.Held())

	tr.SustainOff(model.OriginDevice)
	assert.False(tr.Sustained())
	assert.Equal([]model.NoteCmd{
		model.CmdNoteOn, model.CmdSustainOn, model.CmdNoteOff, model.CmdSustainOff,
	}, cmds)
}

func TestHandleDispatchesByCmd(t *testing.T) {
	tr := NewTracker()
	tr.Handle(model.NoteEvent{Cmd: model.CmdNoteOn, Note: 60, Velocity: 70, Origin: model.OriginSocket})
	tr.Handle(model.NoteEvent{Cmd: model.CmdSustainOn, Origin: model.OriginSocket})
	tr.Handle(model.NoteEvent{Cmd: "bogus", Note: 62})

	assert := assert.New(t)
	assert.Equal(model.Notes{60}, tr.Held())
	assert.True(tr.Sustained())
}

func TestResetReleasesEverything(t *testing.T) {
	tr := NewTracker()
	tr.NoteOn(60, 100, model.OriginDevice)
	tr.NoteOn(64, 100, model.OriginDevice)

	var released []model.Pitch
	tr.Subscribe(func(e model.NoteEvent) {
		if e.Cmd == model.CmdNoteOff {
			released = append(released, e.Note)
		}
	})
	tr.Reset(model.OriginApp)

	assert := assert.New(t)
	assert.Empty(tr.Held())
	assert.Equal([]model.Pitch{60, 64}, released)
}

func TestConcurrentSources(t *testing.T) {
	tr := NewTracker()
	var mu sync.Mutex
	count := 0
	tr.Subscribe(func(model.NoteEvent) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for p := 0; p < 10; p++ {
				tr.NoteOn(25+base*10+p, 100, model.OriginSocket)
				tr.Held()
			}
		}(i)
	}
	wg.Wait()

	assert := assert.New(t)
	assert.Len(tr.Held(), 80)
	assert.Equal(80, count)
}

func TestSubscribeContextGoesQuietOnceDone(t *testing.T) {
	tr := NewTracker()
	ctx, cancel := context.WithCancel(context.Background())
	var mu sync.Mutex
	var got []model.NoteEvent
	tr.SubscribeContext(ctx, func(e model.NoteEvent) {
		mu.Lock()
		got = append(got, e)
		mu.Unlock()
	})

	tr.NoteOn(60, 100, model.OriginDevice)
	tr.NoteOn(64, 100, model.OriginDevice)
	cancel()
	tr.Reset(model.OriginDevice)

	mu.Lock()
	defer mu.Unlock()
	assert := assert.New(t)
	assert.Len(got, 2)
	assert.Empty(tr.Held())
}
