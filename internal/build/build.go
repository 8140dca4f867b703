// Package build implements the recursive target-build algorithm of
// OU2/build.c: stat a target, recurse into its prerequisites, compare
// modification times, and shell out to the recipe only when something is
// stale (or a rebuild is forced). It is deliberately shallow — no
// parallelism, no caching beyond a single os.Stat per path — per spec.md's
// framing of the build tool as an out-of-scope external collaborator next
// to the traversal engine.
package build

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/coursework/mdu/internal/makefile"
)

// Builder walks a Makefile's rule graph, rebuilding targets as needed.
type Builder struct {
	mf     *makefile.Makefile
	force  bool
	silent bool
	stdout io.Writer
	stderr io.Writer
}

// New creates a Builder over mf. force rebuilds every visited target
// regardless of staleness; silent suppresses the printed recipe lines.
func New(mf *makefile.Makefile, force, silent bool) *Builder {
	return &Builder{
		mf:     mf,
		force:  force,
		silent: silent,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// SetOutput redirects the recipe echo and command output, used by tests to
// capture what would otherwise go to the real stdout/stderr.
func (b *Builder) SetOutput(stdout, stderr io.Writer) {
	b.stdout = stdout
	b.stderr = stderr
}

// Build recursively builds target: every prerequisite first, then target
// itself if it is missing, older than any prerequisite, or force is set. A
// target with no rule is not an error as long as it already exists on disk.
func (b *Builder) Build(target string) error {
	rule, ok := b.mf.Rule(target)
	if !ok {
		if _, err := os.Stat(target); err == nil {
			return nil
		}
		return fmt.Errorf("mmake: no rule to make target %q", target)
	}

	for _, prereq := range rule.Prereqs {
		if err := b.Build(prereq); err != nil {
			return err
		}
	}

	rebuild := b.force
	if !rebuild {
		var err error
		rebuild, err = b.isStale(target, rule.Prereqs)
		if err != nil {
			return err
		}
	}

	if rebuild {
		if err := b.runRecipe(rule.Cmds, target); err != nil {
			return err
		}
	}
	return nil
}

// isStale reports whether target is missing or older than any prerequisite.
func (b *Builder) isStale(target string, prereqs []string) (bool, error) {
	targetInfo, err := os.Stat(target)
	if err != nil {
		return true, nil
	}
	for _, prereq := range prereqs {
		prereqInfo, err := os.Stat(prereq)
		if err != nil {
			continue
		}
		if prereqInfo.ModTime().After(targetInfo.ModTime()) {
			return true, nil
		}
	}
	return false, nil
}

// runRecipe executes each recipe line in order via the shell, matching
// make's multi-line recipe convention rather than build.c's single execvp
// call — the YAML manifest format carries a list of lines instead of one
// fixed argv.
func (b *Builder) runRecipe(cmds []string, target string) error {
	for _, line := range cmds {
		if !b.silent {
			fmt.Fprintln(b.stdout, line)
		}
		cmd := exec.Command("sh", "-c", line)
		cmd.Stdout = b.stdout
		cmd.Stderr = b.stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("mmake: command failed for target %q: %w", target, err)
		}
	}
	return nil
}
