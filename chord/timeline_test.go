package chord

import (
	"bytes"
	"testing"

	"github.com/jsphweid/chordex/model"
	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func addNotes(tr *smf.Track, delta uint32, on bool, keys ...uint8) {
	for i, key := range keys {
		var d uint32
		if i == 0 {
			d = delta
		}
		if on {
			tr.Add(d, midi.NoteOn(0, key, 100))
		} else {
			tr.Add(d, midi.NoteOff(0, key))
		}
	}
}

// C major for a beat, then D F A C for a beat, at 120bpm
func twoChordFile(t *testing.T) *smf.SMF {
	var tr smf.Track
	tr.Add(0, smf.MetaTempo(120))
	addNotes(&tr, 0, true, 60, 64, 67)
	addNotes(&tr, 960, false, 60, 64, 67)
	addNotes(&tr, 0, true, 62, 65, 69, 72)
	addNotes(&tr, 960, false, 62, 65, 69, 72)
	tr.Close(0)
	return roundTrip(t, tr)
}

func roundTrip(t *testing.T, tr smf.Track) *smf.SMF {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(960)
	assert.NoError(t, s.Add(tr))

	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	assert.NoError(t, err)

	parsed, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)
	return parsed
}

func TestGetTimeline(t *testing.T) {
	timeline := GetTimeline(twoChordFile(t))

	assert := assert.New(t)
	if !assert.Len(timeline, 2) {
		return
	}

	assert.Equal(uint32(0), timeline[0].Offset)
	assert.Equal(model.Notes{60, 64, 67}, timeline[0].Notes)
	assert.Equal("Cmaj", timeline[0].Matches[0].Chord)

	assert.Equal(uint32(500), timeline[1].Offset)
	assert.Equal(model.Notes{62, 65, 69, 72}, timeline[1].Notes)
	assert.Equal("Dm7", timeline[1].Matches[0].Chord)
}

func TestGetTimelineSkipsSingleNotes(t *testing.T) {
	var tr smf.Track
	tr.Add(0, midi.NoteOn(0, 60, 100))
	tr.Add(480, midi.NoteOff(0, 60))
	tr.Close(0)

	assert.Empty(t, GetTimeline(roundTrip(t, tr)))
}
