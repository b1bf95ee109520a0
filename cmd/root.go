package cmd

import (
	"github.com/jsphweid/chordex/constants"
	"github.com/jsphweid/chordex/logger"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "chordex",
	Short: "Names the chords you play",
	Long: `Names the chords you play, from the command line, a midi device, midi files,
or the browsers connected to its websocket relay.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.InitLogger(logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", constants.GetLogLevel(), "debug, info, warn or error")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
