package deps

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs need a unix shell")
	}
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	if err := os.WriteFile(present, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available || results[0].Path != present || results[0].Detail != "" {
		t.Errorf("present binary: %#v", results[0])
	}
	if results[1].Available || results[1].Detail == "" {
		t.Errorf("missing binary: %#v", results[1])
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Errorf("unexpected command recorded: %s", results[1].Command)
	}
	if results[2].Available || results[2].Detail != "command not configured" {
		t.Errorf("blank command: %#v", results[2])
	}
}

func TestMissing(t *testing.T) {
	statuses := CheckBinaries(Requirements("clearly-not-present-exiftool"))
	missing := Missing(statuses)
	if len(missing) != 1 || missing[0].Name != "exiftool" {
		t.Errorf("Missing() = %#v; want only exiftool", missing)
	}
}
