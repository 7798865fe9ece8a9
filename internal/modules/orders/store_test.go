package orders

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chamseddine-glitch/sha/internal/shared/apperr"
)

// fakeBin is an in-memory remote bin.
type fakeBin struct {
	mu   sync.Mutex
	doc  json.RawMessage
	err  error
	puts int
}

func (f *fakeBin) Get(_ context.Context, _ string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

func (f *fakeBin) Put(_ context.Context, _ string, doc any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	blob, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	f.doc = blob
	f.puts++
	return nil
}

func orderAt(id string, ts time.Time) PlacedOrder {
	return PlacedOrder{
		ID:        id,
		CreatedAt: ts,
		Customer:  OrderDetails{Name: "Amel", Phone: "0555", Wilaya: "Alger", Commune: "Bab El Oued", ShippingMethod: "office"},
	}
}

func TestListOnNeverWrittenBinIsEmpty(t *testing.T) {
	store := NewStore(&fakeBin{}, "orders-bin")

	list, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAppendPreservesExistingOrders(t *testing.T) {
	bin := &fakeBin{}
	store := NewStore(bin, "orders-bin")
	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.Append(context.Background(), orderAt("a", base)))
	require.NoError(t, store.Append(context.Background(), orderAt("b", base.Add(time.Minute))))
	require.NoError(t, store.Append(context.Background(), orderAt("c", base.Add(2*time.Minute))))

	list, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
}

func TestListIsNewestFirst(t *testing.T) {
	bin := &fakeBin{}
	store := NewStore(bin, "orders-bin")
	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.Append(context.Background(), orderAt("old", base)))
	require.NoError(t, store.Append(context.Background(), orderAt("new", base.Add(time.Hour))))

	list, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, "old", list[1].ID)
}

func TestListTieBreaksOnID(t *testing.T) {
	ts := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	list := []PlacedOrder{orderAt("a", ts), orderAt("b", ts)}
	SortNewestFirst(list)
	assert.Equal(t, "b", list[0].ID)
}

func TestClearTruncatesList(t *testing.T) {
	bin := &fakeBin{}
	store := NewStore(bin, "orders-bin")

	require.NoError(t, store.Append(context.Background(), orderAt("a", time.Now())))
	require.NoError(t, store.Clear(context.Background()))

	list, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.JSONEq(t, "[]", string(bin.doc))
}

func TestAppendSurfacesRemoteFailure(t *testing.T) {
	bin := &fakeBin{err: apperr.UnavailableErr("The remote store is unreachable.", nil)}
	store := NewStore(bin, "orders-bin")

	err := store.Append(context.Background(), orderAt("a", time.Now()))
	assert.True(t, apperr.IsKind(err, apperr.Unavailable))
}

func TestListRejectsMalformedDocument(t *testing.T) {
	bin := &fakeBin{doc: json.RawMessage(`{"not":"a list"}`)}
	store := NewStore(bin, "orders-bin")

	_, err := store.List(context.Background())
	assert.True(t, apperr.IsKind(err, apperr.Parse))
}

func TestConcurrentAppendsLoseNothing(t *testing.T) {
	bin := &fakeBin{}
	store := NewStore(bin, "orders-bin")
	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			o := orderAt(time.Duration(n).String(), base.Add(time.Duration(n)*time.Second))
			assert.NoError(t, store.Append(context.Background(), o))
		}(i)
	}
	wg.Wait()

	list, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 20)
}
