package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewTextHandler(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "info", "text")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Warn("cannot read directory", "path", "/x")
	if !strings.Contains(buf.String(), "path=/x") {
		t.Fatalf("expected structured attribute in output, got %q", buf.String())
	}
}

func TestNewJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "debug", "json")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Info("scan started", "root", "/tmp")
	if !strings.Contains(buf.String(), `"root":"/tmp"`) {
		t.Fatalf("expected JSON attribute, got %q", buf.String())
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "chatty", "text"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "info", "xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
