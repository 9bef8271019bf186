package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveLogFilePathDefaultDir(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	got, err := resolveLogFilePath(Options{})
	if err != nil {
		t.Fatalf("resolve default log path failed: %v", err)
	}
	if filepath.Base(got) != defaultLogFilename {
		t.Fatalf("unexpected log filename: %s", filepath.Base(got))
	}
	if filepath.Base(filepath.Dir(got)) != defaultLogDirName {
		t.Fatalf("unexpected log dir: %s", filepath.Dir(got))
	}
	if _, err := os.Stat(got); err != nil {
		t.Fatalf("expected log file to be created: %v", err)
	}
}

func TestNewReleaseWritesServiceField(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("release", Options{Dir: tmpDir, Filename: "release.log", Service: "qingjiang-api"})
	log.Info("submission_appended")
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "release.log"))
	if err != nil {
		t.Fatalf("read release log failed: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, "submission_appended") {
		t.Fatalf("expected log content to contain message, got=%s", text)
	}
	if !strings.Contains(text, `"service":"qingjiang-api"`) {
		t.Fatalf("expected service field in log line, got=%s", text)
	}
}

func TestNewDebugDoesNotWriteFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New(" DEBUG ", Options{Dir: tmpDir, Filename: "debug.log"})
	log.Info("debug-log-test")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create log file")
	}
}

func TestZFallsBackWhenUninitialised(t *testing.T) {
	saved := L
	L = nil
	t.Cleanup(func() { L = saved })

	if Z() == nil {
		t.Fatalf("Z should return fallback logger")
	}
	if SW() == nil || SW("request_id", "abc") == nil {
		t.Fatalf("SW should never return nil")
	}
}
