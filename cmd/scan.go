package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jsphweid/chordex/chord"
	"github.com/jsphweid/chordex/logger"
	"github.com/jsphweid/chordex/midi"
	"github.com/jsphweid/chordex/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan <file|dir> [max]",
	Short: "Prints the chords in midi files",
	Long: `Prints the chords in a midi file, or in every midi file below a directory.
max limits how many files are read from a directory.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var maxNum int
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("max must be a number: %w", err)
			}
			maxNum = n
		}

		paths, err := scanPaths(args[0], maxNum)
		if err != nil {
			return err
		}
		for i, path := range paths {
			logger.GetLogger().Debug("scan: reading", "file", path, "n", i+1, "of", len(paths))
			scanFile(cmd.OutOrStdout(), path)
		}
		return nil
	},
}

func scanPaths(path string, maxNum int) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return util.GatherAllMidiPaths(path, maxNum)
}

func scanFile(w io.Writer, path string) {
	parsed, err := midi.ReadMidiFile(path)
	if err != nil {
		logger.GetLogger().Warn("scan: skipping file", "file", path, "err", err)
		return
	}

	fmt.Fprintf(w, "%s\n", path)
	for _, tc := range chord.GetTimeline(parsed) {
		fmt.Fprintf(w, "%9.3fs  ", float64(tc.Offset)/1000)
		printHeld(w, tc.Notes, tc.Matches)
	}
}
