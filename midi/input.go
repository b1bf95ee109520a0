package midi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jsphweid/chordex/logger"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/notes"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

var ErrNoInputPort = errors.New("no midi input port")

const sustainController = 64

// ListInPorts returns the names of the input ports of the registered driver.
func ListInPorts() []string {
	var res []string
	for _, in := range gomidi.GetInPorts() {
		res = append(res, in.String())
	}
	return res
}

// OpenInPort finds an input port whose name contains name, ignoring case. An
// empty name picks the first port.
func OpenInPort(name string) (drivers.In, error) {
	if name == "" {
		in, err := gomidi.InPort(0)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoInputPort, err)
		}
		return in, nil
	}

	for _, in := range gomidi.GetInPorts() {
		if strings.Contains(strings.ToLower(in.String()), strings.ToLower(name)) {
			return in, nil
		}
	}
	return nil, fmt.Errorf("%w matching %q", ErrNoInputPort, name)
}

// Listen feeds everything played on in to tracker until ctx is done.
func Listen(ctx context.Context, in drivers.In, tracker *notes.Tracker) error {
	log := logger.GetLogger()
	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		if !HandleMessage(msg, tracker) {
			log.Debug("midi: ignored message", "msg", msg.String())
		}
	})
	if err != nil {
		return fmt.Errorf("listening to %s: %w", in.String(), err)
	}
	log.Info("midi: listening", "port", in.String())

	<-ctx.Done()
	stop()
	tracker.Reset(model.OriginDevice)
	return nil
}

// HandleMessage applies a single device message to tracker and reports
// whether it meant anything to it.
func HandleMessage(msg gomidi.Message, tracker *notes.Tracker) bool {
	var ch, key, vel, controller, value uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		tracker.NoteOn(model.Pitch(key), vel, model.OriginDevice)
	case msg.GetNoteEnd(&ch, &key):
		tracker.NoteOff(model.Pitch(key), model.OriginDevice)
	case msg.GetControlChange(&ch, &controller, &value) && controller == sustainController:
		if value >= 64 {
			tracker.SustainOn(model.OriginDevice)
		} else {
			tracker.SustainOff(model.OriginDevice)
		}
	default:
		return false
	}
	return true
}
