package midi

import (
	"testing"

	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/notes"
	"github.com/stretchr/testify/assert"
	gomidi "gitlab.com/gomidi/midi/v2"
)

func TestHandleMessage(t *testing.T) {
	tracker := notes.NewTracker()
	var origins []model.Origin
	tracker.Subscribe(func(e model.NoteEvent) { origins = append(origins, e.Origin) })

	assert := assert.New(t)
	assert.True(HandleMessage(gomidi.NoteOn(0, 60, 100), tracker))
	assert.True(HandleMessage(gomidi.NoteOn(3, 64, 90), tracker))
	assert.Equal(model.Notes{60, 64}, tracker.Held())

	// a zero velocity note on releases the key
	assert.True(HandleMessage(gomidi.NoteOn(0, 60, 0), tracker))
	assert.True(HandleMessage(gomidi.NoteOff(3, 64), tracker))
	assert.Empty(tracker.Held())

	assert.True(HandleMessage(gomidi.ControlChange(0, 64, 127), tracker))
	assert.True(tracker.Sustained())
	assert.True(HandleMessage(gomidi.ControlChange(0, 64, 10), tracker))
	assert.False(tracker.Sustained())

	assert.False(HandleMessage(gomidi.ControlChange(0, 7, 100), tracker))
	assert.False(HandleMessage(gomidi.ProgramChange(0, 5), tracker))

	for _, o := range origins {
		assert.Equal(model.OriginDevice, o)
	}
	assert.Len(origins, 6)
}
