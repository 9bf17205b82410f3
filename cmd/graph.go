package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriBug/internal/graph"
)

var (
	graphRaw   bool
	graphClean bool
	graphIDs   bool
)

var graphCmd = &cobra.Command{
	Use:   "graph [file]",
	Short: "Print the screens and transitions of a graph file",
	Long: `Parse a transition graph and print its screens followed by the
transitions in the short S#/T# form. By default transitions are shown as
action/component summaries; --raw prints the simplified lines the report
prompt uses, and --ids maps the short ids back to graph hashes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := graph.LoadFile(args[0])
		if err != nil {
			return err
		}

		lines := g.Lines()
		if graphClean {
			lines = graph.Clean(lines)
		}
		if !graphRaw {
			lines = graph.Extract(lines)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Screens:")
		fmt.Fprintln(out, g.Screens())
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Transitions (%d):\n", len(lines))
		fmt.Fprintln(out, strings.Join(lines, "\n"))

		if graphIDs {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "IDs:")
			printIDs(out, "S", g.ScreenHash)
			printIDs(out, "T", g.TransitionHash)
		}
		return nil
	},
}

// printIDs lists prefix1, prefix2, ... until lookup no longer knows the ID.
func printIDs(w io.Writer, prefix string, lookup func(string) (string, bool)) {
	for i := 1; ; i++ {
		id := prefix + strconv.Itoa(i)
		hash, ok := lookup(id)
		if !ok {
			return
		}
		fmt.Fprintf(w, "%s = %s\n", id, hash)
	}
}

func init() {
	graphCmd.Flags().BoolVar(&graphRaw, "raw", false, "print simplified transition lines")
	graphCmd.Flags().BoolVar(&graphClean, "clean", false, "drop weight information")
	graphCmd.Flags().BoolVar(&graphIDs, "ids", false, "print the hash behind every S# and T# id")

	rootCmd.AddCommand(graphCmd)
}
