// Package journal persists user notes and tags keyed by trade ID.
//
// The whole mapping is serialized as one JSON blob under a fixed
// key-value entry and rewritten wholesale on every change. There is no
// concurrency control: the last writer wins, per the single-user
// assumption.
package journal

import (
	"context"
	"encoding/json"
	"time"

	"tradelog/internal/models"
)

// Key is the fixed storage key for the serialized journal mapping.
const Key = "journal_v1"

// KV is the minimal key-value surface the journal needs.
type KV interface {
	GetValue(ctx context.Context, key string) (string, error)
	SetValue(ctx context.Context, key, value string) error
}

// NotePatch carries the fields of an update; nil fields are left as-is.
type NotePatch struct {
	Note *string
	Tags *[]string
}

// Store reads and writes the journal mapping.
type Store struct {
	kv KV
}

// New creates a journal store on top of a key-value backend.
func New(kv KV) *Store {
	return &Store{kv: kv}
}

// Load returns the persisted mapping. Inaccessible, absent, or
// malformed content degrades to an empty mapping; Load never fails.
func (s *Store) Load(ctx context.Context) models.Journal {
	raw, err := s.kv.GetValue(ctx, Key)
	if err != nil || raw == "" {
		return models.Journal{}
	}

	var j models.Journal
	if err := json.Unmarshal([]byte(raw), &j); err != nil || j == nil {
		return models.Journal{}
	}
	return j
}

// Save overwrites the entire persisted mapping.
func (s *Store) Save(ctx context.Context, j models.Journal) error {
	raw, err := json.Marshal(j)
	if err != nil {
		return err
	}
	return s.kv.SetValue(ctx, Key, string(raw))
}

// Update merges a patch into the entry for tradeID, creating it when
// absent, stamps UpdatedAt with the current UTC time, and persists the
// whole mapping. The resulting entry is returned.
func (s *Store) Update(ctx context.Context, tradeID string, patch NotePatch) (models.TradeNote, error) {
	j := s.Load(ctx)

	entry := j[tradeID]
	if patch.Note != nil {
		entry.Note = *patch.Note
	}
	if patch.Tags != nil {
		entry.Tags = append([]string(nil), (*patch.Tags)...)
	}
	entry.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	j[tradeID] = entry
	if err := s.Save(ctx, j); err != nil {
		return models.TradeNote{}, err
	}
	return entry, nil
}

// Clear removes one trade's entry and persists the remainder. Clearing
// a trade that never had an entry is not an error.
func (s *Store) Clear(ctx context.Context, tradeID string) error {
	j := s.Load(ctx)
	delete(j, tradeID)
	return s.Save(ctx, j)
}
