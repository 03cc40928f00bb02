package feed

import (
	"context"
	"errors"

	"github.com/vendora/marketfeed/internal/models"
)

// ErrRankingUnavailable marks a page query rejected because the priority
// rank column is not queryable yet (schema not migrated). The degradation
// supervisor retries such queries in ModeRecency; every other error
// propagates.
var ErrRankingUnavailable = errors.New("priority rank column unavailable")

// PageQuery describes one page fetch against the post store.
// Limit includes the sentinel row used to detect further pages.
type PageQuery struct {
	Mode   Mode
	Limit  int
	Cursor *Cursor
}

// PostStore is the persistence surface the feed reads and writes through
type PostStore interface {
	// ListPage returns up to q.Limit non-deleted posts ordered per q.Mode,
	// strictly after q.Cursor when one is set.
	ListPage(ctx context.Context, q PageQuery) ([]models.Post, error)
	// Create persists a post and its media attachments in one write
	Create(ctx context.Context, post *models.Post) error
}

// Less reports whether a sorts strictly before b under the given mode.
// This is the canonical feed ordering; the SQL ORDER BY clauses in the
// store mirror it. ID breaks ties, so the order is total for any two
// distinct rows.
func Less(a, b models.Post, mode Mode) bool {
	if mode == ModeRanked {
		if a.IsPinned != b.IsPinned {
			return a.IsPinned
		}
		if a.PriorityRank != b.PriorityRank {
			return a.PriorityRank < b.PriorityRank
		}
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

// AfterCursor reports whether p lies strictly after the cursor position
// under the cursor's mode. A nil cursor admits every row. The compound
// comparison, rather than an offset, keeps pagination stable while rows
// are inserted elsewhere in the table.
func AfterCursor(p models.Post, c *Cursor) bool {
	if c == nil {
		return true
	}
	if c.Mode == ModeRanked {
		if p.PriorityRank != c.Rank {
			return p.PriorityRank > c.Rank
		}
	}
	if !p.CreatedAt.Equal(c.CreatedAt) {
		return p.CreatedAt.Before(c.CreatedAt)
	}
	return p.ID < c.ID
}
