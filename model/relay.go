package model

const (
	MessageTypePiano = "piano"
	MessageTypeRoom  = "room"
	MessageTypeChord = "chord"
)

// Envelope is decoded first to find out which message a frame carries.
type Envelope struct {
	Type string `json:"type"`
}

type PianoMessage struct {
	Type   string  `json:"type"`
	Cmd    NoteCmd `json:"cmd"`
	Note   Pitch   `json:"note,omitempty"`
	Vel    uint8   `json:"vel,omitempty"`
	Origin Origin  `json:"origin"`
}

type RoomMessage struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Users int    `json:"users,omitempty"`
}

type ChordMessage struct {
	Type   string       `json:"type"`
	Room   string       `json:"room"`
	Notes  Notes        `json:"notes"`
	Chords []ChordMatch `json:"chords"`
}
