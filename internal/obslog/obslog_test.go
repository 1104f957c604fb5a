package obslog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetFileWritesToFixedName(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	defer os.Chdir(cwd)

	logger := New()
	if err := logger.SetFile(LevelInfo); err != nil {
		t.Fatalf("SetFile() error = %v", err)
	}
	logger.Info("hello", "key", "value")

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if len(data) == 0 {
		t.Error("log file is empty after Info()")
	}
}

func TestSetLevelOffSuppressesOutput(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	_ = os.Chdir(dir)
	defer os.Chdir(cwd)

	logger := New()
	if err := logger.SetFile(LevelOff); err != nil {
		t.Fatalf("SetFile() error = %v", err)
	}
	logger.Info("should not appear")

	if _, err := os.Stat(filepath.Join(dir, LogFileName)); !os.IsNotExist(err) {
		t.Errorf("log file exists after LevelOff, stat err = %v", err)
	}
}

func TestSetFileRotatesOversizeLog(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	defer os.Chdir(cwd)

	if err := os.WriteFile(LogFileName, make([]byte, maxLogFileSize+1), 0o644); err != nil {
		t.Fatalf("seeding oversize log: %v", err)
	}

	logger := New()
	if err := logger.SetFile(LevelInfo); err != nil {
		t.Fatalf("SetFile() error = %v", err)
	}

	info, err := os.Stat(LogFileName)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() >= maxLogFileSize {
		t.Errorf("log file size = %d, want rotated below %d", info.Size(), maxLogFileSize)
	}
}

func TestUnrecognizedLevelTreatedAsOff(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	_ = os.Chdir(dir)
	defer os.Chdir(cwd)

	logger := New()
	if err := logger.SetFile(LevelTrace); err != nil {
		t.Fatalf("SetFile() error = %v", err)
	}
	logger.SetLevel(99)
	logger.Info("should not appear once level is reset to an unknown value")

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("log file has content %q after SetLevel(99), want empty", data)
	}
}
