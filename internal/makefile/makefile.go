// Package makefile reads the YAML build manifest mmake operates on. It
// stands in for OU2/build.c's external "parser" collaborator: mmake's build
// logic never inspects manifest syntax, only the Rule values this package
// hands back, the same separation ditto's config loader keeps between
// "parse YAML" and "apply it."
package makefile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rule is one target's build recipe: what it depends on and how to build it.
type Rule struct {
	Prereqs []string `yaml:"prereqs"`
	Cmds    []string `yaml:"cmds"`
}

// Makefile is a parsed build manifest: a default target plus a set of named
// rules.
type Makefile struct {
	Default string          `yaml:"default"`
	Rules   map[string]Rule `yaml:"rules"`
}

// Load reads and parses the YAML manifest at path.
func Load(path string) (*Makefile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %q: %w", path, err)
	}

	var mf Makefile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parse manifest %q: %w", path, err)
	}
	if mf.Rules == nil {
		mf.Rules = map[string]Rule{}
	}
	if mf.Default == "" {
		return nil, fmt.Errorf("manifest %q: missing default target", path)
	}
	return &mf, nil
}

// Rule looks up the rule for target, reporting whether one exists. A target
// with no rule is not necessarily an error: build_target falls back to
// checking whether it already exists as a plain file.
func (mf *Makefile) Rule(target string) (Rule, bool) {
	r, ok := mf.Rules[target]
	return r, ok
}

// DefaultTarget returns the manifest's default build target.
func (mf *Makefile) DefaultTarget() string {
	return mf.Default
}
