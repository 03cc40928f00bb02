package feed

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/vendora/marketfeed/internal/models"
)

type fakeIdentityStore struct {
	users map[int64]*models.User
	err   error
}

func (f *fakeIdentityStore) GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[int64]*models.User, len(ids))
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

type fakeBadgeStore struct {
	verified map[int64]bool
	err      error
}

func (f *fakeBadgeStore) VerifiedByUserIDs(ctx context.Context, userIDs []int64) (map[int64]bool, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.verified, nil
}

type fakeEngagementStore struct {
	likes    map[int64]int64
	comments map[int64]int64
	likedBy  map[int64]map[int64]bool // viewerID -> postID -> liked
	err      error
}

func (f *fakeEngagementStore) LikeCounts(ctx context.Context, postIDs []int64) (map[int64]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.likes, nil
}

func (f *fakeEngagementStore) CommentCounts(ctx context.Context, postIDs []int64) (map[int64]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.comments, nil
}

func (f *fakeEngagementStore) LikedBy(ctx context.Context, postIDs []int64, viewerID int64) (map[int64]bool, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.likedBy[viewerID], nil
}

func TestEnrichIdentityFallbackChain(t *testing.T) {
	enricher := NewEnricher(&fakeIdentityStore{users: map[int64]*models.User{
		1: {ID: 1, Username: "shopkeeper", DisplayName: sql.NullString{String: "The Shop", Valid: true}},
		2: {ID: 2, Username: "driver_jo"},
	}}, &fakeBadgeStore{}, &fakeEngagementStore{})

	posts := []models.Post{
		{ID: 10, AuthorID: 1},
		{ID: 11, AuthorID: 2},
		{ID: 12, AuthorID: 3}, // no user row at all
	}

	views := enricher.Enrich(context.Background(), posts, 0)
	if len(views) != 3 {
		t.Fatalf("got %d views, want 3", len(views))
	}

	if views[0].Author.DisplayName != "The Shop" {
		t.Errorf("display name = %q, want %q", views[0].Author.DisplayName, "The Shop")
	}
	if views[1].Author.DisplayName != "driver_jo" {
		t.Errorf("username fallback = %q, want %q", views[1].Author.DisplayName, "driver_jo")
	}
	if views[2].Author.DisplayName != "user-3" {
		t.Errorf("placeholder fallback = %q, want %q", views[2].Author.DisplayName, "user-3")
	}
}

func TestEnrichLookupFailuresDegradeToDefaults(t *testing.T) {
	enricher := NewEnricher(
		&fakeIdentityStore{err: errors.New("identity store down")},
		&fakeBadgeStore{err: errors.New("badge store down")},
		&fakeEngagementStore{err: errors.New("engagement store down")},
	)

	posts := []models.Post{{ID: 10, AuthorID: 1, Content: "hello", PriorityRank: 100}}
	views := enricher.Enrich(context.Background(), posts, 5)

	if len(views) != 1 {
		t.Fatalf("got %d views, want 1", len(views))
	}
	v := views[0]
	if v.Author.DisplayName != "user-1" {
		t.Errorf("display name = %q, want placeholder", v.Author.DisplayName)
	}
	if v.Author.IsVerified {
		t.Error("verified badge must default to false")
	}
	if v.LikeCount != 0 || v.CommentCount != 0 || v.ViewerHasLiked {
		t.Errorf("engagement must default to zero, got likes=%d comments=%d liked=%v",
			v.LikeCount, v.CommentCount, v.ViewerHasLiked)
	}
	// The load-bearing fields still come straight from the post row
	if v.Content != "hello" || v.PriorityRank != 100 {
		t.Errorf("post fields mangled: %+v", v)
	}
}

func TestEnrichViewerLikedFlag(t *testing.T) {
	engagement := &fakeEngagementStore{
		likes:    map[int64]int64{10: 3},
		comments: map[int64]int64{10: 2},
		likedBy:  map[int64]map[int64]bool{7: {10: true}},
	}
	enricher := NewEnricher(&fakeIdentityStore{}, &fakeBadgeStore{}, engagement)
	posts := []models.Post{{ID: 10, AuthorID: 1}}

	// Authenticated viewer who liked the post
	views := enricher.Enrich(context.Background(), posts, 7)
	if !views[0].ViewerHasLiked {
		t.Error("viewer 7 liked post 10, flag must be true")
	}
	if views[0].LikeCount != 3 || views[0].CommentCount != 2 {
		t.Errorf("counts = %d/%d, want 3/2", views[0].LikeCount, views[0].CommentCount)
	}

	// Anonymous viewers always get false
	views = enricher.Enrich(context.Background(), posts, 0)
	if views[0].ViewerHasLiked {
		t.Error("anonymous viewer must get viewer_has_liked = false")
	}
}

func TestEnrichVendorBadge(t *testing.T) {
	enricher := NewEnricher(
		&fakeIdentityStore{users: map[int64]*models.User{1: {ID: 1, Username: "shop"}}},
		&fakeBadgeStore{verified: map[int64]bool{1: true}},
		&fakeEngagementStore{},
	)

	views := enricher.Enrich(context.Background(), []models.Post{{ID: 10, AuthorID: 1}}, 0)
	if !views[0].Author.IsVerified {
		t.Error("vendor badge must mark the author verified")
	}
}

func TestEnrichMediaOrderedByCreation(t *testing.T) {
	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	post := models.Post{
		ID:       10,
		AuthorID: 1,
		Media: []models.PostMedia{
			{ID: 3, MediaType: models.MediaTypeVideo, URL: "v1", CreatedAt: base.Add(2 * time.Second)},
			{ID: 1, MediaType: models.MediaTypeImage, URL: "i1", CreatedAt: base},
			{ID: 2, MediaType: models.MediaTypeImage, URL: "i2", CreatedAt: base.Add(time.Second)},
		},
	}

	enricher := NewEnricher(&fakeIdentityStore{}, &fakeBadgeStore{}, &fakeEngagementStore{})
	views := enricher.Enrich(context.Background(), []models.Post{post}, 0)

	got := views[0].Media
	if len(got) != 3 || got[0].URL != "i1" || got[1].URL != "i2" || got[2].URL != "v1" {
		t.Errorf("media order = %+v, want i1, i2, v1", got)
	}
}

func TestEnrichEmptyPage(t *testing.T) {
	enricher := NewEnricher(&fakeIdentityStore{}, &fakeBadgeStore{}, &fakeEngagementStore{})
	views := enricher.Enrich(context.Background(), nil, 0)
	if views == nil || len(views) != 0 {
		t.Errorf("empty page must enrich to an empty non-nil slice, got %v", views)
	}
}
