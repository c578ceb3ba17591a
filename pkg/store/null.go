package store

import "context"

// NullStore implements Store but never keeps anything.
// Loads always miss and listings are always empty.
type NullStore struct{}

// NewNullStore creates a store that discards all saves.
func NewNullStore() *NullStore {
	return &NullStore{}
}

// Save does nothing.
func (NullStore) Save(context.Context, *Record) error { return nil }

// Load always returns ErrNotFound.
func (NullStore) Load(context.Context, string) (*Record, error) { return nil, ErrNotFound }

// List always returns no summaries.
func (NullStore) List(context.Context) ([]Summary, error) { return nil, nil }

// Delete always returns ErrNotFound.
func (NullStore) Delete(context.Context, string) error { return ErrNotFound }

// Close does nothing.
func (NullStore) Close() error { return nil }

var _ Store = (*NullStore)(nil)
