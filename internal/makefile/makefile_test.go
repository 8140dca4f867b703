package makefile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "mmakefile.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadParsesRulesAndDefault(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
default: all
rules:
  all:
    prereqs: [foo.o]
    cmds: ["echo linking"]
  foo.o:
    prereqs: [foo.c]
    cmds: ["cc -c foo.c -o foo.o"]
`)

	mf, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if mf.DefaultTarget() != "all" {
		t.Fatalf("default target = %q, want all", mf.DefaultTarget())
	}

	rule, ok := mf.Rule("foo.o")
	if !ok {
		t.Fatalf("expected rule for foo.o")
	}
	if len(rule.Prereqs) != 1 || rule.Prereqs[0] != "foo.c" {
		t.Fatalf("unexpected prereqs: %v", rule.Prereqs)
	}
}

func TestLoadRejectsMissingDefault(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
rules:
  all:
    cmds: ["echo hi"]
`)

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for manifest with no default target")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml")); err == nil {
		t.Fatalf("expected error for missing manifest file")
	}
}

func TestRuleReportsUnknownTarget(t *testing.T) {
	mf := &Makefile{Default: "all", Rules: map[string]Rule{}}
	if _, ok := mf.Rule("nope"); ok {
		t.Fatalf("expected no rule for unknown target")
	}
}
