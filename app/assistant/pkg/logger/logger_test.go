package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestCustomFormatter(t *testing.T) {
	entry := &logrus.Entry{
		Time:    time.Date(2026, 1, 30, 8, 0, 0, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "remote failed",
		Data:    logrus.Fields{"session": "s1", "model": "gemini-2.0-flash"},
	}

	b, err := (&CustomFormatter{}).Format(entry)
	if err != nil {
		t.Fatal(err)
	}
	got := string(b)
	want := "[2026-01-30 08:00:00] [WARN] [] remote failed model=gemini-2.0-flash session=s1\n"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestInitLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "assistant.log")
	if err := InitLogger("not-a-level", path); err != nil {
		t.Fatalf("InitLogger() error = %v", err)
	}
	if Log.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v, want info", Log.GetLevel())
	}

	Log.Info("hello file")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello file") {
		t.Errorf("log file = %q", data)
	}
}
