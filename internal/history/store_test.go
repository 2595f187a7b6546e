package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"upscaler/internal/history"
	"upscaler/internal/job"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "state", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndListRuns(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	now := time.Now()
	id, err := store.RecordRun(ctx, history.Run{
		StartedAt:   now.Add(-time.Minute),
		FinishedAt:  now,
		Input:       "/photos",
		Output:      "/photos/out",
		Scale:       4,
		Model:       "general",
		FaceEnhance: true,
		Attempted:   3,
		Succeeded:   2,
		Failed:      1,
	}, []job.Failure{{Source: "/photos/bad.png", Message: "decode error"}})
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated run id")
	}

	runs, err := store.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	run := runs[0]
	if run.ID != id || run.Scale != 4 || run.Model != "general" || !run.FaceEnhance {
		t.Fatalf("unexpected run: %+v", run)
	}
	if run.Succeeded != 2 || run.Failed != 1 {
		t.Fatalf("unexpected counts: %+v", run)
	}

	failures, err := store.Failures(ctx, id)
	if err != nil {
		t.Fatalf("Failures: %v", err)
	}
	if len(failures) != 1 || failures[0].Message != "decode error" {
		t.Fatalf("unexpected failures: %+v", failures)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 3; i++ {
		_, err := store.RecordRun(ctx, history.Run{
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
			FinishedAt: base.Add(time.Duration(i)*time.Minute + time.Second),
			Input:      "/in",
			Output:     "/out",
			Scale:      2,
			Model:      "anime",
			Attempted:  i,
		}, nil)
		if err != nil {
			t.Fatalf("RecordRun %d: %v", i, err)
		}
	}

	runs, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected limit of 2 runs, got %d", len(runs))
	}
	if runs[0].Attempted != 2 || runs[1].Attempted != 1 {
		t.Fatalf("runs not newest-first: %+v", runs)
	}
}

func TestReopenExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := store.RecordRun(context.Background(), history.Run{
		StartedAt: time.Now(), FinishedAt: time.Now(),
		Input: "/in", Output: "/out", Scale: 4, Model: "general",
	}, nil); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := history.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	runs, err := reopened.ListRuns(context.Background(), 5)
	if err != nil {
		t.Fatalf("ListRuns after reopen: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected persisted run, got %d", len(runs))
	}
}
