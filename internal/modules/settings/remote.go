package settings

import (
	"context"
	"encoding/json"
)

// BinClient is the slice of the remote document store the settings module
// needs: whole-document reads and overwrites of one bin.
type BinClient interface {
	Get(ctx context.Context, binID string) (json.RawMessage, error)
	Put(ctx context.Context, binID string, doc any) error
}

// PublishedStore reads and replaces the single published settings document.
type PublishedStore struct {
	client BinClient
	binID  string
}

func NewPublishedStore(client BinClient, binID string) *PublishedStore {
	return &PublishedStore{client: client, binID: binID}
}

// Fetch returns the published settings, or (nil, nil) when nothing has ever
// been published.
func (ps *PublishedStore) Fetch(ctx context.Context) (*StoreSettings, error) {
	raw, err := ps.client.Get(ctx, ps.binID)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	s, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Publish overwrites the published document wholesale. The PUT is atomic at
// the remote: readers see the previous document or this one, never a mix.
func (ps *PublishedStore) Publish(ctx context.Context, s StoreSettings) error {
	return ps.client.Put(ctx, ps.binID, s)
}
