package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/chordex/chord"
	"github.com/jsphweid/chordex/model"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <note>...",
	Short: "Names the chords formed by some notes",
	Long:  `Names the chords formed by some notes. Notes are midi numbers (60) or names (C4, F#3, Bb2).`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pitches, err := chord.ParsePitches(args)
		if err != nil {
			return err
		}
		printHeld(cmd.OutOrStdout(), pitches, chord.Analyze(pitches))
		return nil
	},
}

func pitchNames(pitches model.Notes) string {
	names := make([]string, len(pitches))
	for i, p := range pitches {
		names[i] = chord.PitchName(p)
	}
	return strings.Join(names, " ")
}

func describeAll(matches []model.ChordMatch) string {
	if len(matches) == 0 {
		return "-"
	}
	labels := make([]string, len(matches))
	for i, m := range matches {
		labels[i] = chord.Describe(m)
	}
	return strings.Join(labels, ", ")
}

func printHeld(w io.Writer, pitches model.Notes, matches []model.ChordMatch) {
	fmt.Fprintf(w, "%-24s %s\n", pitchNames(pitches), describeAll(matches))
}
