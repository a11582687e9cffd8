package logging

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})
	return &buf
}

func TestDebugf_Disabled(t *testing.T) {
	t.Setenv("CLIENTDESK_DEBUG", "")
	buf := captureLog(t)

	Debugf("hidden %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("expected no output when debug is disabled, got %q", buf.String())
	}
}

func TestDebugf_Enabled(t *testing.T) {
	t.Setenv("CLIENTDESK_DEBUG", "1")
	buf := captureLog(t)

	Debugf("visible %d", 2)
	if !strings.Contains(buf.String(), "[DEBUG] visible 2") {
		t.Fatalf("expected debug line, got %q", buf.String())
	}
}
