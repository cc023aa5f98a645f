package ui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mydehq/mediafilename/internal/types"
)

func TestRenderTable(t *testing.T) {
	out := RenderTable([]string{"Code", "Offset"}, [][]string{{"UTC+5:45", "+0545"}, {"UTC"}}, []Align{AlignLeft, AlignRight})
	for _, want := range []string{"Code", "Offset", "UTC+5:45", "+0545", "╭"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if RenderTable(nil, nil, nil) != "" {
		t.Error("table without headers should be empty")
	}
}

func TestResultsAndSkipsTable(t *testing.T) {
	res := ResultsTable([]types.RenameResult{
		{OriginalPath: "/m/a.xmp", NewFilename: "N.xmp", Pass: types.PassCompanion},
	})
	if !strings.Contains(res, "/m/a.xmp") || !strings.Contains(res, "companion") {
		t.Errorf("ResultsTable() =\n%s", res)
	}

	sk := SkipsTable([]types.Skip{
		{Path: "/m/notes.txt", Reason: types.SkipNoMatch, Err: types.ErrNoMatch{Path: "/m/notes.txt", Root: "notes"}},
	})
	if !strings.Contains(sk, string(types.SkipNoMatch)) || !strings.Contains(sk, "notes") {
		t.Errorf("SkipsTable() =\n%s", sk)
	}
}

func TestRunLog(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "run.log")
	errPath := filepath.Join(dir, "run_errors.log")

	l, err := OpenRunLog(logPath, errPath)
	if err != nil {
		t.Fatalf("OpenRunLog() error = %v", err)
	}
	l.Start("/m/rome", "/m", "+0200", 3)
	l.Resolved(types.RenameResult{OriginalPath: "/m/rome/a.jpg", NewFilename: "N.jpg", Pass: types.PassPrimary})
	l.Skipped(types.Skip{Path: "/m/rome/b.txt", Reason: types.SkipNoMatch, Err: errors.New("no master")})
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	all, _ := os.ReadFile(logPath)
	errs, _ := os.ReadFile(errPath)
	for _, want := range []string{"path=/m/rome/a.jpg", "name=N.jpg", "pass=primary", "path=/m/rome/b.txt"} {
		if !strings.Contains(string(all), want) {
			t.Errorf("log missing %q:\n%s", want, all)
		}
	}
	if strings.Contains(string(errs), "a.jpg") || !strings.Contains(string(errs), "b.txt") {
		t.Errorf("error log should hold only skips:\n%s", errs)
	}
}

func TestRunLog_Nil(t *testing.T) {
	var l *RunLog
	l.Start("t", "w", "+0000", 0)
	l.Resolved(types.RenameResult{})
	l.Skipped(types.Skip{})
	if err := l.Close(); err != nil {
		t.Errorf("Close() on nil = %v", err)
	}
}
