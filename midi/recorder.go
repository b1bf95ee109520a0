package midi

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/jsphweid/chordex/constants"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/util"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

var ErrNoTake = errors.New("nothing recorded")
var ErrRecording = errors.New("recording in progress")

const resolution = smf.MetricTicks(constants.RecorderResolution)

// Recorder turns note events into a single track midi file. Subscribe Handle
// to a notes.Tracker and bracket the take with Start and Stop.
type Recorder struct {
	mu        sync.Mutex
	now       func() time.Time
	recording bool
	started   time.Time
	lastTicks uint32
	track     smf.Track
	open      map[model.Pitch]bool
	take      *smf.SMF
}

func NewRecorder() *Recorder {
	return NewRecorderWithClock(time.Now)
}

func NewRecorderWithClock(now func() time.Time) *Recorder {
	return &Recorder{now: now}
}

// Start begins a new take, dropping any previous one.
func (r *Recorder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recording = true
	r.started = r.now()
	r.lastTicks = 0
	r.open = make(map[model.Pitch]bool)
	r.take = nil
	r.track = smf.Track{}
	r.track.Add(0, smf.MetaTempo(constants.RecorderTempo))
}

// Stop ends the take. Notes still sounding are released at the stop time.
func (r *Recorder) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return nil
	}
	for _, p := range util.SortedKeys(r.open) {
		r.add(gomidi.NoteOff(0, uint8(p)))
	}
	r.track.Close(0)

	s := smf.New()
	s.TimeFormat = resolution
	r.recording = false
	r.open = nil
	if err := s.Add(r.track); err != nil {
		return fmt.Errorf("finishing take: %w", err)
	}
	r.take = s
	return nil
}

func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Handle records e if a take is running.
func (r *Recorder) Handle(e model.NoteEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return
	}

	switch e.Cmd {
	case model.CmdNoteOn:
		if e.Note < 0 || e.Note > 127 || r.open[e.Note] {
			return
		}
		// a zero velocity note on reads back as a note off
		r.add(gomidi.NoteOn(0, uint8(e.Note), util.Max(e.Velocity, 1)))
		r.open[e.Note] = true
	case model.CmdNoteOff:
		if !r.open[e.Note] {
			return
		}
		r.add(gomidi.NoteOff(0, uint8(e.Note)))
		delete(r.open, e.Note)
	case model.CmdSustainOn:
		r.add(gomidi.ControlChange(0, sustainController, 127))
	case model.CmdSustainOff:
		r.add(gomidi.ControlChange(0, sustainController, 0))
	}
}

func (r *Recorder) add(msg gomidi.Message) {
	ticks := resolution.Ticks(constants.RecorderTempo, r.now().Sub(r.started))
	var delta uint32
	if ticks > r.lastTicks {
		delta = ticks - r.lastTicks
		r.lastTicks = ticks
	}
	r.track.Add(delta, msg)
}

// WriteTo writes the last finished take as a standard midi file.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		return 0, ErrRecording
	}
	if r.take == nil {
		return 0, ErrNoTake
	}
	return r.take.WriteTo(w)
}

func (r *Recorder) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if _, err := r.WriteTo(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
