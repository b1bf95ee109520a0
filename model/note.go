package model

type NoteCmd = string

const (
	CmdNoteOn     NoteCmd = "note:on"
	CmdNoteOff    NoteCmd = "note:off"
	CmdSustainOn  NoteCmd = "sustain:on"
	CmdSustainOff NoteCmd = "sustain:off"
)

func IsNoteCmd(cmd string) bool {
	switch cmd {
	case CmdNoteOn, CmdNoteOff, CmdSustainOn, CmdSustainOff:
		return true
	}
	return false
}

type Origin int

const (
	OriginDevice Origin = iota
	OriginMouse
	OriginApp
	OriginSocket
)

func (o Origin) String() string {
	switch o {
	case OriginDevice:
		return "device"
	case OriginMouse:
		return "mouse"
	case OriginApp:
		return "app"
	case OriginSocket:
		return "socket"
	}
	return "unknown"
}

type NoteEvent struct {
	Cmd      NoteCmd
	Note     Pitch
	Velocity uint8
	Origin   Origin
}
