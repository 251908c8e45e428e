package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestVerboseGating(t *testing.T) {
	verbose := false
	var buf bytes.Buffer
	log := NewWithCallback("client", func() bool { return verbose })
	log.SetOutput(&buf)

	log.Debug("hidden %d", 1)
	log.Info("hidden too")
	if buf.Len() != 0 {
		t.Fatalf("expected no output when not verbose, got %q", buf.String())
	}

	log.Warn("shown %s", "always")
	if !strings.Contains(buf.String(), "WARN [client] shown always") {
		t.Errorf("unexpected warn line: %q", buf.String())
	}

	verbose = true
	buf.Reset()
	log.Debug("now visible")
	if !strings.Contains(buf.String(), "DEBUG [client] now visible") {
		t.Errorf("unexpected debug line: %q", buf.String())
	}
}

func TestFieldsAndComponents(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithCallback("", func() bool { return true })
	base.SetOutput(&buf)

	child := base.WithComponent("coordinator")
	child.InfoWithFields("request finished", []Field{
		F("kind", "text"),
		Count(3),
		Duration(2 * time.Second),
		Error(errors.New("boom")),
	})

	line := buf.String()
	for _, want := range []string{"INFO [coordinator] request finished", "kind=text", "count=3", "duration=2s", "error=boom"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}

	buf.Reset()
	base.Error("plain")
	if !strings.Contains(buf.String(), "ERROR [main] plain") {
		t.Errorf("derived logger should share output, got %q", buf.String())
	}
}
