package chord

import (
	"sort"

	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/util"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type reducedEvent struct {
	offset    int64 // micros
	isNoteOff bool
	note      model.Pitch
}

func reduceEvents(s *smf.SMF) []reducedEvent {
	var reducedEvents []reducedEvent
	for _, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			msg := midi.Message(event.Message)
			switch {
			case msg.GetNoteStart(&channel, &key, &velocity):
				reducedEvents = append(reducedEvents, reducedEvent{
					offset: s.TimeAt(absTicks),
					note:   model.Pitch(key),
				})
			case msg.GetNoteEnd(&channel, &key):
				reducedEvents = append(reducedEvents, reducedEvent{
					offset:    s.TimeAt(absTicks),
					isNoteOff: true,
					note:      model.Pitch(key),
				})
			}
		}
	}

	// prioritize smaller offset values then note off
	sort.SliceStable(reducedEvents, func(i, j int) bool {
		if reducedEvents[i].offset != reducedEvents[j].offset {
			return reducedEvents[i].offset < reducedEvents[j].offset
		}
		return reducedEvents[i].isNoteOff && !reducedEvents[j].isNoteOff
	})
	return reducedEvents
}

// Timeline plays through every track of s and returns the chord held after
// each moment where notes change. Moments with fewer than two notes held are
// skipped.
func (a *Analyzer) Timeline(s *smf.SMF) []model.TimedChord {
	timestampToNotes := make(map[int64]model.Notes)
	pressed := make(map[model.Pitch]bool)
	for _, evt := range reduceEvents(s) {
		if evt.isNoteOff {
			delete(pressed, evt.note)
		} else {
			pressed[evt.note] = true
		}
		timestampToNotes[evt.offset] = util.SortedKeys(pressed)
	}

	var res []model.TimedChord
	for _, offset := range util.SortedKeys(timestampToNotes) {
		notes := timestampToNotes[offset]
		if len(notes) < 2 {
			continue
		}
		res = append(res, model.TimedChord{
			// millis is accurate enough and 32 bits of it covers any file
			Offset:  uint32(offset / 1000),
			Notes:   notes,
			Matches: a.Analyze(notes),
		})
	}
	return res
}

func GetTimeline(s *smf.SMF) []model.TimedChord {
	return defaultAnalyzer.Timeline(s)
}
