package model

// Pitch is a MIDI note number, 60 being middle C. Values outside 0..127 are
// not rejected anywhere.
type Pitch = int

type Notes = []Pitch

type NoteName = string

type ChordShape struct {
	Name      string `json:"name"`
	Notation  string `json:"notation"`
	Intervals []int  `json:"intervals"`
}

type ChordMatch struct {
	Shape     string   `json:"shape"`
	Notation  string   `json:"notation"`
	Chord     string   `json:"chord"`
	Root      NoteName `json:"root"`
	Bass      NoteName `json:"bass"`
	Inversion int      `json:"inversion"`
}

// TimedChord is a snapshot of held notes at an offset (millis) into a file.
type TimedChord struct {
	Offset  uint32
	Notes   Notes
	Matches []ChordMatch
}
