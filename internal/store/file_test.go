package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_LoadAbsentReturnsSeed(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "snapshot.json"))

	state, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error for absent snapshot: %v", err)
	}
	if len(state.Exams) != 2 || len(state.Questions) != 3 {
		t.Errorf("expected seed catalog (2 exams, 3 questions), got %d exams, %d questions",
			len(state.Exams), len(state.Questions))
	}
	if state.NextExamID != 3 || state.NextAttemptID != 1 {
		t.Errorf("seed counters wrong: nextExamId=%d nextAttemptId=%d", state.NextExamID, state.NextAttemptID)
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	s := NewFileStore(path)
	ctx := context.Background()

	state, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("initial load: %v", err)
	}
	state.Exams[0].Title = "Edited"
	state.NextExamID = 42

	if err := s.Save(ctx, state); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Exams[0].Title != "Edited" {
		t.Errorf("expected edited title, got %q", reloaded.Exams[0].Title)
	}
	if reloaded.NextExamID != 42 {
		t.Errorf("expected nextExamId=42, got %d", reloaded.NextExamID)
	}
}

func TestFileStore_CorruptFallsBackToSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewFileStore(path)

	state, err := s.Load(context.Background())
	if !errors.Is(err, ErrSnapshotCorrupt) {
		t.Fatalf("expected ErrSnapshotCorrupt, got %v", err)
	}
	if state == nil || len(state.Exams) != 2 {
		t.Errorf("corrupt load should still hand back the seed state")
	}
}
