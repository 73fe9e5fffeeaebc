package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order-service.log")
	log, err := New("production", path)
	if err != nil {
		t.Fatal(err)
	}
	log.Info("hello file")
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"msg":"hello file"`) {
		t.Fatalf("file=%s", raw)
	}
}

func TestNew_ConsoleOnly(t *testing.T) {
	log, err := New("development", "")
	if err != nil {
		t.Fatal(err)
	}
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("development logger should log debug")
	}
}
