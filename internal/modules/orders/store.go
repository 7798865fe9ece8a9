package orders

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/chamseddine-glitch/sha/internal/shared/apperr"
)

// BinClient is the slice of the remote document store this module needs.
type BinClient interface {
	Get(ctx context.Context, binID string) (json.RawMessage, error)
	Put(ctx context.Context, binID string, doc any) error
}

// Store holds the shared order list. The remote bin only supports
// whole-document overwrite, so Append is a read-modify-write; the mutex makes
// this backend the single writer and keeps concurrent submissions from losing
// each other's orders.
type Store struct {
	client BinClient
	binID  string

	mu sync.Mutex
}

func NewStore(client BinClient, binID string) *Store {
	return &Store{client: client, binID: binID}
}

// List fetches every placed order, newest first. A bin that was never written
// is an empty list.
func (s *Store) List(ctx context.Context) ([]PlacedOrder, error) {
	raw, err := s.client.Get(ctx, s.binID)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []PlacedOrder{}, nil
	}
	var list []PlacedOrder
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, apperr.ParseErr("The order list document is malformed.", err)
	}
	SortNewestFirst(list)
	return list, nil
}

// Append adds one order to the remote list.
func (s *Store) Append(ctx context.Context, o PlacedOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.List(ctx)
	if err != nil {
		return err
	}
	list = append(list, o)
	return s.client.Put(ctx, s.binID, list)
}

// Clear truncates the remote list to empty.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client.Put(ctx, s.binID, []PlacedOrder{})
}
