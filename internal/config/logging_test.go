package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetupLogFile_CreatesTimestampedFile(t *testing.T) {
	dir := t.TempDir()

	f, err := SetupLogFile(dir, 5)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	name := filepath.Base(f.Name())
	if matched, _ := filepath.Match("server-*.log", name); !matched {
		t.Errorf("log file name = %q, want server-*.log", name)
	}
	if _, err := f.WriteString("line\n"); err != nil {
		t.Errorf("log file not writable: %v", err)
	}
}

func TestSetupLogFile_RotatesByCount(t *testing.T) {
	dir := t.TempDir()

	// Pre-seed old logs; the timestamp format makes names sort chronologically.
	old := []string{
		"server-2020-01-01T00-00-00.log",
		"server-2020-01-02T00-00-00.log",
		"server-2020-01-03T00-00-00.log",
	}
	for _, name := range old {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	f, err := SetupLogFile(dir, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	files, err := filepath.Glob(filepath.Join(dir, "server-*.log"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("kept %d files, want 2: %v", len(files), files)
	}
	if _, err := os.Stat(filepath.Join(dir, old[0])); !os.IsNotExist(err) {
		t.Errorf("%s should have been removed", old[0])
	}
}
