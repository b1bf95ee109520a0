package chord

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jsphweid/chordex/model"
)

var ErrBadPitch = errors.New("not a pitch")

var noteNames = [12]model.NoteName{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName returns the pitch class name. Negative pitches wrap instead of
// panicking, the name is meaningless for them though.
func NoteName(p model.Pitch) model.NoteName {
	return noteNames[mod12(p)]
}

// PitchName returns the name with octave, 60 being "C4".
func PitchName(p model.Pitch) string {
	octave := p / 12
	if p < 0 && p%12 != 0 {
		octave--
	}
	return fmt.Sprintf("%s%d", NoteName(p), octave-1)
}

// ParsePitch accepts MIDI numbers ("60") or names with an octave ("C4",
// "f#3", "Bb2", "A-1").
func ParsePitch(s string) (model.Pitch, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	if len(s) < 2 {
		return 0, fmt.Errorf("%q: %w", s, ErrBadPitch)
	}

	pc := strings.Index("C D EF G A B", strings.ToUpper(s[:1]))
	if pc < 0 {
		return 0, fmt.Errorf("%q: %w", s, ErrBadPitch)
	}
	rest := s[1:]
	switch rest[0] {
	case '#':
		pc++
		rest = rest[1:]
	case 'b':
		pc--
		rest = rest[1:]
	}

	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrBadPitch)
	}
	return (octave+1)*12 + pc, nil
}

func ParsePitches(args []string) ([]model.Pitch, error) {
	res := make([]model.Pitch, 0, len(args))
	for _, arg := range args {
		p, err := ParsePitch(arg)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, nil
}
