package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevelsAndCaller(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stdout)

	Infof("loaded %d", 3)
	Warning("careful")
	Errorf("failed: %s", "boom")

	out := buf.String()
	for _, want := range []string{"INFO: ", "loaded 3", "WARNING: ", "careful", "ERROR: ", "failed: boom", "log_test.go:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %q missing %q", out, want)
		}
	}
}

func TestDebugGated(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stdout)
	defer SetDebug(false)

	SetDebug(false)
	Debugf("hidden %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("debug output while disabled: %q", buf.String())
	}
	SetDebug(true)
	Debug("shown")
	if !strings.Contains(buf.String(), "DEBUG: ") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected debug line, got %q", buf.String())
	}
}

func TestDebugfWhen(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stdout)
	defer SetDebug(false)

	SetDebug(false)
	DebugfWhen(false, "off")
	if buf.Len() != 0 {
		t.Fatalf("unexpected output %q", buf.String())
	}
	DebugfWhen(true, "scoped %s", "on")
	if !strings.Contains(buf.String(), "DEBUG: ") || !strings.Contains(buf.String(), "scoped on") || !strings.Contains(buf.String(), "log_test.go:") {
		t.Fatalf("expected scoped debug line, got %q", buf.String())
	}
	buf.Reset()
	SetDebug(true)
	DebugfWhen(false, "global")
	if !strings.Contains(buf.String(), "global") {
		t.Fatalf("expected debug line, got %q", buf.String())
	}
}
