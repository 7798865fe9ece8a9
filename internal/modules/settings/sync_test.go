package settings

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBin is an in-memory stand-in for the remote document store.
type fakeBin struct {
	mu   sync.Mutex
	docs map[string]json.RawMessage
	err  error
	puts int
}

func newFakeBin() *fakeBin {
	return &fakeBin{docs: map[string]json.RawMessage{}}
}

func (f *fakeBin) Get(_ context.Context, binID string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.docs[binID], nil
}

func (f *fakeBin) Put(_ context.Context, binID string, doc any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	blob, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	f.docs[binID] = blob
	f.puts++
	return nil
}

// memDrafts is an in-memory DraftRepo.
type memDrafts struct {
	mu    sync.Mutex
	byPID map[string]StoreSettings
	err   error
}

func newMemDrafts() *memDrafts { return &memDrafts{byPID: map[string]StoreSettings{}} }

func (m *memDrafts) Get(_ context.Context, profileID string) (*StoreSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.byPID[profileID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memDrafts) Put(_ context.Context, profileID string, s StoreSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.byPID[profileID] = s
	return nil
}

func (m *memDrafts) Clear(_ context.Context, profileID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byPID, profileID)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func publishedSettings() StoreSettings {
	s := Defaults()
	s.StoreName = "Published Store"
	s.ContactPhone = "0550"
	s.Products = []Product{{
		ID:        "p-published",
		Name:      "Lamp",
		Price:     1500,
		ImageURLs: []string{"https://img.example/lamp.png"},
		Category:  "Home",
	}}
	return s
}

func newSyncFixture(t *testing.T) (*Synchronizer, *fakeBin, *memDrafts) {
	t.Helper()
	bin := newFakeBin()
	drafts := newMemDrafts()
	sy := NewSynchronizer(NewPublishedStore(bin, "settings-bin"), drafts, discardLogger())
	return sy, bin, drafts
}

func TestPublicViewerLoadsPublished(t *testing.T) {
	sy, bin, _ := newSyncFixture(t)
	require.NoError(t, bin.Put(context.Background(), "settings-bin", publishedSettings()))

	res, err := sy.Load(context.Background(), "profile-1", false)
	require.NoError(t, err)
	assert.Equal(t, SourcePublished, res.Source)
	assert.Equal(t, "Published Store", res.Settings.StoreName)
	assert.Empty(t, res.Warning)
}

func TestPublicViewerFallsBackToDefaults(t *testing.T) {
	sy, _, _ := newSyncFixture(t)

	res, err := sy.Load(context.Background(), "profile-1", false)
	require.NoError(t, err)
	assert.Equal(t, SourceDefaults, res.Source)
	assert.Equal(t, Defaults().StoreName, res.Settings.StoreName)
}

func TestPublicViewerRemoteFailureWarnsNonBlocking(t *testing.T) {
	sy, bin, _ := newSyncFixture(t)
	bin.err = errors.New("boom")

	res, err := sy.Load(context.Background(), "profile-1", false)
	require.NoError(t, err)
	assert.Equal(t, SourceDefaults, res.Source)
	assert.NotEmpty(t, res.Warning)
}

func TestAdminDraftWinsOverRemote(t *testing.T) {
	sy, bin, drafts := newSyncFixture(t)
	require.NoError(t, bin.Put(context.Background(), "settings-bin", publishedSettings()))

	draft := Defaults()
	draft.StoreName = "Draft Store"
	require.NoError(t, drafts.Put(context.Background(), "profile-1", draft))

	res, err := sy.Load(context.Background(), "profile-1", true)
	require.NoError(t, err)
	assert.Equal(t, SourceDraft, res.Source)
	assert.Equal(t, "Draft Store", res.Settings.StoreName)
}

func TestAdminWithoutDraftSeedsFromRemote(t *testing.T) {
	sy, bin, drafts := newSyncFixture(t)
	remote := publishedSettings()
	require.NoError(t, bin.Put(context.Background(), "settings-bin", remote))

	res, err := sy.Load(context.Background(), "profile-1", true)
	require.NoError(t, err)
	assert.Equal(t, SourcePublished, res.Source)

	// Seed-once: the draft now equals the remote document field for field.
	seeded, err := drafts.Get(context.Background(), "profile-1")
	require.NoError(t, err)
	require.NotNil(t, seeded)
	assert.Equal(t, remote, *seeded)
}

func TestAdminWithoutDraftAndNothingPublishedSeedsDefaults(t *testing.T) {
	sy, _, drafts := newSyncFixture(t)

	res, err := sy.Load(context.Background(), "profile-1", true)
	require.NoError(t, err)
	assert.Equal(t, SourceDefaults, res.Source)

	seeded, err := drafts.Get(context.Background(), "profile-1")
	require.NoError(t, err)
	require.NotNil(t, seeded)
	assert.Equal(t, Defaults(), *seeded)
}

func TestAdminWithDraftRemoteFailureIsSilent(t *testing.T) {
	sy, bin, drafts := newSyncFixture(t)
	bin.err = errors.New("boom")

	draft := Defaults()
	draft.StoreName = "Draft Store"
	require.NoError(t, drafts.Put(context.Background(), "profile-1", draft))

	res, err := sy.Load(context.Background(), "profile-1", true)
	require.NoError(t, err)
	assert.Equal(t, SourceDraft, res.Source)
	assert.Empty(t, res.Warning, "admin draft fallback must be silent")
}

func TestAdminWithoutDraftRemoteFailureDoesNotSeed(t *testing.T) {
	sy, bin, drafts := newSyncFixture(t)
	bin.err = errors.New("boom")

	res, err := sy.Load(context.Background(), "profile-1", true)
	require.NoError(t, err)
	assert.Equal(t, SourceDefaults, res.Source)
	assert.NotEmpty(t, res.Warning)
	assert.Empty(t, drafts.byPID, "a failed fetch must not seed the draft")
}
