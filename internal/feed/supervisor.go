package feed

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/vendora/marketfeed/internal/models"
	"github.com/vendora/marketfeed/pkg/logging"
)

// loadPage executes the ranked query and, when the store reports the rank
// column as unavailable, retries exactly once in recency mode. It exists
// to keep the feed serving during a live schema rollout; any other store
// error propagates. A cursor minted under a different mode than the one
// being executed is dropped, restarting the walk from the top rather than
// misordering it.
func (s *Service) loadPage(ctx context.Context, limit int, cur *Cursor) ([]models.Post, Mode, error) {
	q := PageQuery{Mode: ModeRanked, Limit: limit, Cursor: cur}
	if cur != nil && cur.Mode != ModeRanked {
		q.Cursor = nil
	}

	posts, err := s.posts.ListPage(ctx, q)
	if err == nil {
		return posts, ModeRanked, nil
	}
	if !errors.Is(err, ErrRankingUnavailable) {
		return nil, ModeRanked, err
	}

	logging.FromContext(ctx).Warn("priority rank unavailable, serving recency feed", zap.Error(err))

	q = PageQuery{Mode: ModeRecency, Limit: limit, Cursor: cur}
	if cur != nil && cur.Mode != ModeRecency {
		q.Cursor = nil
	}

	posts, err = s.posts.ListPage(ctx, q)
	if err != nil {
		return nil, ModeRecency, err
	}
	return posts, ModeRecency, nil
}
