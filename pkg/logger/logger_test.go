package logger

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prevOutput, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	t.Cleanup(func() {
		log.SetOutput(prevOutput)
		log.SetFlags(prevFlags)
		minLevel.Store(levelInfo)
	})

	return &buf
}

func TestInit_FiltersBelowLevel(t *testing.T) {
	buf := captureLog(t)
	Init("warn")

	Debugf("debug %d", 1)
	Infof("info %d", 2)
	Warnf("warn %d", 3)
	Errorf("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "[DEBUG]") || strings.Contains(out, "[INFO]") {
		t.Fatalf("expected debug and info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "[WARN] warn 3") || !strings.Contains(out, "[ERROR] error 4") {
		t.Fatalf("expected warn and error lines, got %q", out)
	}
}

func TestInit_UnknownLevelDefaultsToInfo(t *testing.T) {
	buf := captureLog(t)
	Init("chatty")

	Debugf("hidden")
	Infof("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected debug to be filtered at default level, got %q", out)
	}
	if !strings.Contains(out, "[INFO] shown") {
		t.Fatalf("expected info line, got %q", out)
	}
}
