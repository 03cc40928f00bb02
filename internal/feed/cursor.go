package feed

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/vendora/marketfeed/internal/models"
)

// Mode identifies the ordering a page (and its cursor) was produced under
type Mode string

// Ordering modes
const (
	// ModeRanked orders by pin status, priority rank, then recency
	ModeRanked Mode = "ranked"
	// ModeRecency orders by recency only; used while the rank column is unavailable
	ModeRecency Mode = "recency"
)

// Cursor marks the sort position of the last row of a returned page.
// It is an ephemeral resume marker, not a security boundary.
type Cursor struct {
	Mode      Mode
	Rank      int
	CreatedAt time.Time
	ID        int64
}

// cursorPayload is the serialized form of a cursor. Timestamps are carried
// as unix microseconds to match postgres timestamp precision, so the
// equality arms of the resume predicate keep matching exactly.
type cursorPayload struct {
	Mode string `json:"m"`
	Rank int    `json:"r,omitempty"`
	TS   int64  `json:"t"`
	ID   int64  `json:"i"`
}

// EncodeCursor serializes a cursor into an opaque token that round-trips
// losslessly through the public API.
func EncodeCursor(c *Cursor) string {
	if c == nil {
		return ""
	}
	p := cursorPayload{
		Mode: string(c.Mode),
		TS:   c.CreatedAt.UnixMicro(),
		ID:   c.ID,
	}
	if c.Mode == ModeRanked {
		p.Rank = c.Rank
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor parses a token produced by EncodeCursor. Malformed, foreign
// or tampered tokens yield nil, which callers treat as the start of the
// feed rather than an error.
func DecodeCursor(token string) *Cursor {
	if token == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil
	}
	var p cursorPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}
	mode := Mode(p.Mode)
	if mode != ModeRanked && mode != ModeRecency {
		return nil
	}
	if p.TS == 0 || p.ID == 0 {
		return nil
	}
	return &Cursor{
		Mode:      mode,
		Rank:      p.Rank,
		CreatedAt: time.UnixMicro(p.TS).UTC(),
		ID:        p.ID,
	}
}

// CursorFrom builds the resume marker for a page ending at post
func CursorFrom(post models.Post, mode Mode) *Cursor {
	c := &Cursor{
		Mode:      mode,
		CreatedAt: post.CreatedAt,
		ID:        post.ID,
	}
	if mode == ModeRanked {
		c.Rank = post.PriorityRank
	}
	return c
}
