package journal

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/mydehq/mediafilename/internal/types"
)

func openTest(t *testing.T) (*Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "state")
	s, err := Open(context.Background(), dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, dir
}

func TestRecordAndRead(t *testing.T) {
	s, _ := openTest(t)
	ctx := context.Background()

	results := []types.RenameResult{
		{OriginalPath: "/m/rome/DSC_4180.JPG", NewFilename: "2015-10-18_145029utc_tz+0200_DSC_4180.JPG", Pass: types.PassPrimary},
		{OriginalPath: "/m/rome/DSC_4180.xmp", NewFilename: "2015-10-18_145029utc_tz+0200_DSC_4180.xmp", Pass: types.PassCompanion},
	}
	skips := []types.Skip{
		{Path: "/m/rome/notes.txt", Reason: types.SkipNoMatch, Err: types.ErrNoMatch{Path: "/m/rome/notes.txt", Root: "notes"}},
		{Path: "/m/rome/..bad", Reason: types.SkipUnparseable},
	}
	started := time.Date(2016, 2, 26, 21, 4, 5, 123, time.UTC)

	run, err := s.Record(ctx, Run{
		StartedAt:  started,
		OffsetCode: "UTC+2",
		Offset:     "+0200",
		Target:     "/m/rome",
		Script:     "/m/Importation_2016-02-26_rome_tz+0200.sh",
	}, results, skips)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if run.ID == "" || run.Resolved != 2 || run.Skipped != 2 {
		t.Errorf("Record() = %+v", run)
	}

	runs, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if diff := cmp.Diff([]Run{run}, runs); diff != "" {
		t.Errorf("Recent() mismatch (-want +got):\n%s", diff)
	}

	got, err := s.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if diff := cmp.Diff(run, got); diff != "" {
		t.Errorf("Get() mismatch (-want +got):\n%s", diff)
	}
	if _, err := s.Get(ctx, "nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Get(unknown) error = %v; want ErrRunNotFound", err)
	}

	gotResults, err := s.Renames(ctx, run.ID)
	if err != nil {
		t.Fatalf("Renames() error = %v", err)
	}
	if diff := cmp.Diff(results, gotResults); diff != "" {
		t.Errorf("Renames() mismatch (-want +got):\n%s", diff)
	}

	gotSkips, err := s.Skips(ctx, run.ID)
	if err != nil {
		t.Fatalf("Skips() error = %v", err)
	}
	if diff := cmp.Diff(skips, gotSkips, cmpopts.IgnoreFields(types.Skip{}, "Err")); diff != "" {
		t.Errorf("Skips() mismatch (-want +got):\n%s", diff)
	}
	if gotSkips[0].Err == nil || gotSkips[0].Err.Error() != skips[0].Err.Error() {
		t.Errorf("Skips()[0].Err = %v; want %v", gotSkips[0].Err, skips[0].Err)
	}
	if gotSkips[1].Err != nil {
		t.Errorf("Skips()[1].Err = %v; want nil", gotSkips[1].Err)
	}
}

func TestRecent_NewestFirstAndLimit(t *testing.T) {
	s, _ := openTest(t)
	ctx := context.Background()

	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range 5 {
		if _, err := s.Record(ctx, Run{
			ID:         "run-" + string(rune('a'+i)),
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			OffsetCode: "UTC",
			Offset:     "+0000",
			Target:     "/t",
		}, nil, nil); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	var ids []string
	for _, r := range runs {
		ids = append(ids, r.ID)
	}
	if diff := cmp.Diff([]string{"run-e", "run-d", "run-c"}, ids); diff != "" {
		t.Errorf("Recent() ids mismatch (-want +got):\n%s", diff)
	}
}

func TestRecord_DuplicateIDRollsBack(t *testing.T) {
	s, _ := openTest(t)
	ctx := context.Background()
	run := Run{ID: "fixed", StartedAt: time.Now(), OffsetCode: "UTC", Offset: "+0000", Target: "/t"}

	if _, err := s.Record(ctx, run, nil, nil); err != nil {
		t.Fatal(err)
	}
	results := []types.RenameResult{{OriginalPath: "/t/a.jpg", NewFilename: "b.jpg", Pass: types.PassPrimary}}
	if _, err := s.Record(ctx, run, results, nil); err == nil {
		t.Fatal("Record() with a duplicate ID should fail")
	}

	got, err := s.Renames(ctx, "fixed")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("Renames() = %v; want none after rollback", got)
	}
}

func TestOpen_Reopen(t *testing.T) {
	s, dir := openTest(t)
	ctx := context.Background()
	if _, err := s.Record(ctx, Run{StartedAt: time.Now(), OffsetCode: "UTC", Offset: "+0000", Target: "/t"}, nil, nil); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := Open(ctx, dir)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s2.Close()
	runs, err := s2.Recent(ctx, 0)
	if err != nil || len(runs) != 1 {
		t.Errorf("Recent() after reopen = (%v, %v); want one run", runs, err)
	}
}

func TestOpen_SchemaMismatch(t *testing.T) {
	_, dir := openTest(t)

	db, err := sql.Open("sqlite", filepath.Join(dir, FileName))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	_, err = Open(context.Background(), dir)
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Errorf("Open() error = %v; want ErrSchemaMismatch", err)
	}
}
