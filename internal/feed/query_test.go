package feed

import (
	"sort"
	"testing"
	"time"

	"github.com/vendora/marketfeed/internal/models"
)

func testPost(id int64, rank int, pinned bool, createdAt time.Time) models.Post {
	return models.Post{ID: id, PriorityRank: rank, IsPinned: pinned, CreatedAt: createdAt}
}

func testPosts() []models.Post {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []models.Post{
		testPost(1, 500, false, base),
		testPost(2, 100, false, base.Add(1*time.Minute)),
		testPost(3, 0, false, base.Add(2*time.Minute)),
		testPost(4, 0, false, base.Add(2*time.Minute)), // same instant as 3, id breaks the tie
		testPost(5, 900, true, base.Add(-1*time.Hour)),
		testPost(6, 200, false, base.Add(3*time.Minute)),
		testPost(7, 200, false, base.Add(3*time.Minute)),
	}
}

func TestLessStrictTotalOrder(t *testing.T) {
	posts := testPosts()

	for _, mode := range []Mode{ModeRanked, ModeRecency} {
		for i, a := range posts {
			for j, b := range posts {
				if i == j {
					if Less(a, b, mode) {
						t.Errorf("mode %s: Less(p%d, p%d) must be false for identical posts", mode, a.ID, b.ID)
					}
					continue
				}
				if Less(a, b, mode) == Less(b, a, mode) {
					t.Errorf("mode %s: Less is not antisymmetric for p%d and p%d", mode, a.ID, b.ID)
				}
			}
		}
	}
}

func TestLessRankedOrdering(t *testing.T) {
	posts := testPosts()
	sort.Slice(posts, func(i, j int) bool { return Less(posts[i], posts[j], ModeRanked) })

	// Pinned first, then ascending rank, recency and id breaking ties
	expected := []int64{5, 4, 3, 2, 7, 6, 1}
	for i, want := range expected {
		if posts[i].ID != want {
			t.Fatalf("ranked order[%d] = p%d, want p%d (full order: %v)", i, posts[i].ID, want, ids(posts))
		}
	}
}

func TestLessRecencyIgnoresRankAndPin(t *testing.T) {
	posts := testPosts()
	sort.Slice(posts, func(i, j int) bool { return Less(posts[i], posts[j], ModeRecency) })

	expected := []int64{7, 6, 4, 3, 2, 1, 5}
	for i, want := range expected {
		if posts[i].ID != want {
			t.Fatalf("recency order[%d] = p%d, want p%d (full order: %v)", i, posts[i].ID, want, ids(posts))
		}
	}
}

func TestAfterCursorMatchesOrdering(t *testing.T) {
	// For unpinned posts the resume predicate must agree exactly with the
	// sort order: b comes after the cursor minted from a iff a sorts
	// before b.
	var unpinned []models.Post
	for _, p := range testPosts() {
		if !p.IsPinned {
			unpinned = append(unpinned, p)
		}
	}

	for _, mode := range []Mode{ModeRanked, ModeRecency} {
		for _, a := range unpinned {
			for _, b := range unpinned {
				if a.ID == b.ID {
					continue
				}
				want := Less(a, b, mode)
				if got := AfterCursor(b, CursorFrom(a, mode)); got != want {
					t.Errorf("mode %s: AfterCursor(p%d, cursor(p%d)) = %v, want %v", mode, b.ID, a.ID, got, want)
				}
			}
		}
	}
}

func TestAfterCursorNil(t *testing.T) {
	for _, p := range testPosts() {
		if !AfterCursor(p, nil) {
			t.Errorf("AfterCursor(p%d, nil) = false, want true", p.ID)
		}
	}
}

func TestAfterCursorExcludesCursorRow(t *testing.T) {
	for _, mode := range []Mode{ModeRanked, ModeRecency} {
		for _, p := range testPosts() {
			if AfterCursor(p, CursorFrom(p, mode)) {
				t.Errorf("mode %s: post p%d must not qualify after its own cursor", mode, p.ID)
			}
		}
	}
}

func ids(posts []models.Post) []int64 {
	out := make([]int64, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}
