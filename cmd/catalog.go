package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/jsphweid/chordex/chord"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Lists the chords that can be recognized",
	Long:  `Lists the chords that can be recognized`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tNOTATION\tINTERVALS")
		for _, shape := range chord.DefaultCatalog() {
			fmt.Fprintf(w, "%s\t%s\t%v\n", shape.Name, shape.Notation, shape.Intervals)
		}
		return w.Flush()
	},
}
