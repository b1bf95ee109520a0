package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bep/debounce"
	"github.com/jsphweid/chordex/chord"
	"github.com/jsphweid/chordex/constants"
	"github.com/jsphweid/chordex/logger"
	"github.com/jsphweid/chordex/midi"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/notes"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

var listenPort string
var recordPath string

func init() {
	listenCmd.Flags().StringVar(&listenPort, "port", constants.GetMidiInPort(), "input port name, or part of it (default first port)")
	listenCmd.Flags().StringVar(&recordPath, "record", "", "also record what is played to this midi file")
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Names chords played on a midi device",
	Long:  `Names chords played on a midi device until interrupted.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer gomidi.CloseDriver()

		in, err := midi.OpenInPort(listenPort)
		if err != nil {
			return err
		}

		tracker := notes.NewTracker()
		out := cmd.OutOrStdout()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// chords are struck a few millis apart, only show where they settle
		debounced := debounce.New(constants.ChordDisplayDebounce)
		tracker.SubscribeContext(ctx, func(e model.NoteEvent) {
			if e.Cmd != model.CmdNoteOn && e.Cmd != model.CmdNoteOff {
				return
			}
			debounced(func() {
				if ctx.Err() != nil {
					return
				}
				held := tracker.Held()
				printHeld(out, held, chord.Analyze(held))
			})
		})

		var rec *midi.Recorder
		if recordPath != "" {
			rec = midi.NewRecorder()
			tracker.Subscribe(rec.Handle)
			rec.Start()
		}

		if err := midi.Listen(ctx, in, tracker); err != nil {
			return err
		}

		if rec == nil {
			return nil
		}
		if err := rec.Stop(); err != nil {
			return err
		}
		if err := rec.WriteFile(recordPath); err != nil {
			return err
		}
		logger.GetLogger().Info("listen: recording saved", "file", recordPath)
		return nil
	},
}
