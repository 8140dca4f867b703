// Command mmake is a minimal recursive build tool: given a YAML manifest of
// targets, prerequisites, and recipes, it rebuilds whatever is stale.
package main

import (
	"fmt"
	"os"

	"github.com/coursework/mdu/internal/build"
	"github.com/coursework/mdu/internal/makefile"

	"github.com/spf13/cobra"
)

var (
	flagManifest string
	flagForce    bool
	flagSilent   bool
)

var rootCmd = &cobra.Command{
	Use:   "mmake [-f MANIFEST] [-B] [-s] [TARGET ...]",
	Short: "A minimal recursive build tool",
	Long: `mmake rebuilds targets described in a YAML manifest: for each target it
recurses into prerequisites first, then rebuilds the target itself if it is
missing, older than any prerequisite, or -B forces it.`,
	RunE: runBuild,
}

func init() {
	rootCmd.Flags().StringVarP(&flagManifest, "file", "f", "mmakefile.yaml", "Path to the build manifest")
	rootCmd.Flags().BoolVarP(&flagForce, "force", "B", false, "Rebuild every visited target unconditionally")
	rootCmd.Flags().BoolVarP(&flagSilent, "silent", "s", false, "Suppress echoing recipe lines before they run")
}

func runBuild(cmd *cobra.Command, args []string) error {
	mf, err := makefile.Load(flagManifest)
	if err != nil {
		return err
	}

	b := build.New(mf, flagForce, flagSilent)

	targets := args
	if len(targets) == 0 {
		targets = []string{mf.DefaultTarget()}
	}

	for _, target := range targets {
		if err := b.Build(target); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
