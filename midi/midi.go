package midi

import (
	"bytes"
	"fmt"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"
)

// ReadMidiFile parses a standard midi file. The smf reader panics on some
// corrupt files (https://github.com/gomidi/midi/issues/20), those come back as
// errors.
func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = fmt.Errorf("parsing midi file %s: %v", filepath, r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading midi file: %w", err)
	}

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("parsing midi file %s: %w", filepath, err)
	}
	return res, nil
}
