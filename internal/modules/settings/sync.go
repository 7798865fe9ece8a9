package settings

import (
	"context"
	"log/slog"
)

// Source says which document won the reconciliation.
type Source string

const (
	SourceDraft     Source = "draft"
	SourcePublished Source = "published"
	SourceDefaults  Source = "defaults"
)

// LoadResult is the settings document chosen for the current viewer, where it
// came from, and an optional non-blocking warning for the UI.
type LoadResult struct {
	Settings StoreSettings
	Source   Source
	Warning  string
}

// Synchronizer decides, per session start, whether the remote published
// document or the local draft is authoritative for the viewer.
type Synchronizer struct {
	published *PublishedStore
	drafts    DraftRepo
	log       *slog.Logger
}

func NewSynchronizer(published *PublishedStore, drafts DraftRepo, log *slog.Logger) *Synchronizer {
	return &Synchronizer{published: published, drafts: drafts, log: log}
}

// Load applies the reconciliation table:
//
//	public viewer          -> published, or defaults when never published
//	admin with a draft     -> the draft, regardless of the remote
//	admin without a draft  -> published (seeded into the draft store), or
//	                          defaults (also seeded) when never published
//
// Remote failures degrade: an admin falls back to the draft silently, a
// public viewer gets defaults plus a warning.
func (sy *Synchronizer) Load(ctx context.Context, profileID string, adminView bool) (LoadResult, error) {
	if adminView {
		return sy.loadAdmin(ctx, profileID)
	}
	return sy.loadPublic(ctx)
}

func (sy *Synchronizer) loadPublic(ctx context.Context) (LoadResult, error) {
	remote, err := sy.published.Fetch(ctx)
	if err != nil {
		sy.log.Warn("settings_fetch_failed", slog.Any("err", err))
		return LoadResult{
			Settings: Defaults(),
			Source:   SourceDefaults,
			Warning:  "Could not reach the store service. You may be seeing an outdated version.",
		}, nil
	}
	if remote == nil {
		return LoadResult{Settings: Defaults(), Source: SourceDefaults}, nil
	}
	return LoadResult{Settings: *remote, Source: SourcePublished}, nil
}

func (sy *Synchronizer) loadAdmin(ctx context.Context, profileID string) (LoadResult, error) {
	draft, err := sy.drafts.Get(ctx, profileID)
	if err != nil {
		return LoadResult{}, err
	}
	if draft != nil {
		// Draft always wins over the remote for the admin.
		return LoadResult{Settings: *draft, Source: SourceDraft}, nil
	}

	remote, fetchErr := sy.published.Fetch(ctx)
	if fetchErr != nil {
		sy.log.Warn("settings_fetch_failed", slog.String("profile_id", profileID), slog.Any("err", fetchErr))
		return LoadResult{
			Settings: Defaults(),
			Source:   SourceDefaults,
			Warning:  "Could not reach the store service. Edits will start from defaults.",
		}, nil
	}

	live := Defaults()
	source := SourceDefaults
	if remote != nil {
		live = *remote
		source = SourcePublished
	}

	// Seed the draft so subsequent admin edits have a base.
	if err := sy.drafts.Put(ctx, profileID, live); err != nil {
		return LoadResult{}, err
	}
	return LoadResult{Settings: live, Source: source}, nil
}
