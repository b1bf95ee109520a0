package constants

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func GetPort() int {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil || port <= 0 {
		return 8080
	}
	return port
}

func GetLogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level != "" {
		return level
	}
	return "info"
}

// GetMidiInPort returns the input port to listen on. Empty means the first
// port the driver reports.
func GetMidiInPort() string {
	return os.Getenv("MIDI_IN")
}

func GetAllowedOrigins() []string {
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		return []string{"*"}
	}
	var res []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			res = append(res, o)
		}
	}
	return res
}

// playable range of an 88 key piano, A0 to C8
const BottomNote = 21
const TopNote = 108

const DefaultRoom = "piano"

const RecorderResolution = 960
const RecorderTempo = 120.0

const ChordDisplayDebounce = 50 * time.Millisecond
