// mdu sums disk usage across a list of directory trees using a worker pool,
// the way OU3/mdu.c's original did, reimplemented on internal/traversal.
// The root command is the traversal driver itself — `mdu [-j N] PATH...` —
// matching the course program's invocation and output format exactly.
// Everything else (browse/query/info/watch) is an ambient subcommand layered
// on top for persistence and browsing and does not change that contract.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}

// exitCode is set by runRoot before Execute returns, since cobra's RunE
// contract has no channel for a process exit status that isn't also a
// reported error.
var exitCode int

var rootCmd = &cobra.Command{
	Use:   "mdu [-j N] PATH...",
	Short: "Sum disk usage across directory trees with a worker pool",
	Long: `mdu walks one or more directory trees concurrently, summing the
filesystem block count of every entry, and prints one "<blocks>\t<path>"
line per root on completion. It never follows symlinks, never caches
stat results between runs, and never reports progress mid-scan.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRoot,
}

func init() {
	rootCmd.Version = version
	bindRootFlags(rootCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(watchCmd)
}
