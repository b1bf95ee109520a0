package cmd

import (
	"fmt"

	"github.com/jsphweid/chordex/midi"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
)

func init() {
	rootCmd.AddCommand(portsCmd)
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "Lists midi input ports",
	Long:  `Lists midi input ports`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer gomidi.CloseDriver()

		ports := midi.ListInPorts()
		if len(ports) == 0 {
			return midi.ErrNoInputPort
		}
		for i, name := range ports {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", i, name)
		}
		return nil
	},
}
