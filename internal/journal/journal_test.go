package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"tradelog/internal/models"
)

// fakeKV is an in-memory KV backend with optional error injection.
type fakeKV struct {
	values map[string]string
	getErr error
	setErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{values: make(map[string]string)}
}

func (f *fakeKV) GetValue(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.values[key], nil
}

func (f *fakeKV) SetValue(ctx context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value
	return nil
}

func strPtr(s string) *string          { return &s }
func tagsPtr(tags ...string) *[]string { return &tags }

func TestLoadEmpty(t *testing.T) {
	s := New(newFakeKV())
	j := s.Load(context.Background())
	if j == nil || len(j) != 0 {
		t.Errorf("Load on empty backend = %v, want empty mapping", j)
	}
}

func TestLoadMalformedBlob(t *testing.T) {
	kv := newFakeKV()
	kv.values[Key] = "{not json"
	s := New(kv)

	j := s.Load(context.Background())
	if len(j) != 0 {
		t.Errorf("malformed blob should degrade to empty mapping, got %v", j)
	}
}

func TestLoadBackendError(t *testing.T) {
	kv := newFakeKV()
	kv.getErr = errors.New("disk on fire")
	s := New(kv)

	j := s.Load(context.Background())
	if len(j) != 0 {
		t.Errorf("backend error should degrade to empty mapping, got %v", j)
	}
}

func TestUpdateCreatesEntry(t *testing.T) {
	s := New(newFakeKV())
	ctx := context.Background()

	entry, err := s.Update(ctx, "t1", NotePatch{
		Note: strPtr("FOMO entry"),
		Tags: tagsPtr("breakout", "london"),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if entry.Note != "FOMO entry" {
		t.Errorf("Note = %q", entry.Note)
	}
	if len(entry.Tags) != 2 || entry.Tags[0] != "breakout" {
		t.Errorf("Tags = %v", entry.Tags)
	}
	if _, err := time.Parse(time.RFC3339, entry.UpdatedAt); err != nil {
		t.Errorf("UpdatedAt = %q, want RFC 3339", entry.UpdatedAt)
	}

	j := s.Load(ctx)
	if j["t1"].Note != "FOMO entry" {
		t.Errorf("persisted entry = %+v", j["t1"])
	}
}

func TestUpdateMergesPatch(t *testing.T) {
	s := New(newFakeKV())
	ctx := context.Background()

	if _, err := s.Update(ctx, "t1", NotePatch{Note: strPtr("original"), Tags: tagsPtr("a")}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	// A tags-only patch leaves the note alone.
	entry, err := s.Update(ctx, "t1", NotePatch{Tags: tagsPtr("b", "c")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if entry.Note != "original" {
		t.Errorf("Note after tags-only patch = %q, want original", entry.Note)
	}
	if len(entry.Tags) != 2 || entry.Tags[0] != "b" {
		t.Errorf("Tags = %v, want [b c]", entry.Tags)
	}

	// A note-only patch leaves the tags alone.
	entry, err = s.Update(ctx, "t1", NotePatch{Note: strPtr("revised")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if entry.Note != "revised" || len(entry.Tags) != 2 {
		t.Errorf("entry after note-only patch = %+v", entry)
	}
}

func TestUpdateDoesNotAliasTags(t *testing.T) {
	s := New(newFakeKV())
	ctx := context.Background()

	tags := []string{"a", "b"}
	entry, err := s.Update(ctx, "t1", NotePatch{Tags: &tags})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	tags[0] = "mutated"
	if entry.Tags[0] != "a" {
		t.Error("stored tags alias the caller's slice")
	}
}

func TestUpdateOnlyTouchesOneEntry(t *testing.T) {
	s := New(newFakeKV())
	ctx := context.Background()

	if _, err := s.Update(ctx, "t1", NotePatch{Note: strPtr("one")}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if _, err := s.Update(ctx, "t2", NotePatch{Note: strPtr("two")}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	j := s.Load(ctx)
	if len(j) != 2 || j["t1"].Note != "one" || j["t2"].Note != "two" {
		t.Errorf("mapping = %v", j)
	}
}

func TestUpdateSaveError(t *testing.T) {
	kv := newFakeKV()
	kv.setErr = errors.New("readonly")
	s := New(kv)

	if _, err := s.Update(context.Background(), "t1", NotePatch{Note: strPtr("x")}); err == nil {
		t.Fatal("expected error when backend write fails")
	}
}

func TestClear(t *testing.T) {
	s := New(newFakeKV())
	ctx := context.Background()

	if _, err := s.Update(ctx, "t1", NotePatch{Note: strPtr("bye")}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if _, err := s.Update(ctx, "t2", NotePatch{Note: strPtr("stay")}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if err := s.Clear(ctx, "t1"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	j := s.Load(ctx)
	if _, ok := j["t1"]; ok {
		t.Error("t1 still present after Clear")
	}
	if j["t2"].Note != "stay" {
		t.Errorf("t2 = %+v, want untouched", j["t2"])
	}
}

func TestClearAbsentEntry(t *testing.T) {
	s := New(newFakeKV())
	if err := s.Clear(context.Background(), "never-existed"); err != nil {
		t.Errorf("clearing an absent entry should not fail, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	kv := newFakeKV()
	s := New(kv)
	ctx := context.Background()

	j := models.Journal{
		"t1": {Note: "note", Tags: []string{"tag"}, UpdatedAt: "2024-01-01T00:00:00Z"},
	}
	if err := s.Save(ctx, j); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got := s.Load(ctx)
	if got["t1"].Note != "note" || got["t1"].UpdatedAt != "2024-01-01T00:00:00Z" {
		t.Errorf("round trip = %+v", got["t1"])
	}
}
