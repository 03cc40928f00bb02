package feed

import (
	"testing"
	"time"

	"github.com/vendora/marketfeed/internal/models"
)

func TestCursorRoundTrip(t *testing.T) {
	created := time.Date(2025, 6, 14, 9, 30, 45, 123456000, time.UTC)

	tests := []struct {
		name   string
		cursor *Cursor
	}{
		{"ranked", &Cursor{Mode: ModeRanked, Rank: 100, CreatedAt: created, ID: 42}},
		{"ranked admin rank zero", &Cursor{Mode: ModeRanked, Rank: 0, CreatedAt: created, ID: 7}},
		{"recency", &Cursor{Mode: ModeRecency, CreatedAt: created, ID: 99}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := EncodeCursor(tt.cursor)
			if token == "" {
				t.Fatal("EncodeCursor returned empty token")
			}

			decoded := DecodeCursor(token)
			if decoded == nil {
				t.Fatal("DecodeCursor returned nil for valid token")
			}
			if decoded.Mode != tt.cursor.Mode {
				t.Errorf("Mode = %s, want %s", decoded.Mode, tt.cursor.Mode)
			}
			if decoded.Rank != tt.cursor.Rank {
				t.Errorf("Rank = %d, want %d", decoded.Rank, tt.cursor.Rank)
			}
			if !decoded.CreatedAt.Equal(tt.cursor.CreatedAt) {
				t.Errorf("CreatedAt = %v, want %v", decoded.CreatedAt, tt.cursor.CreatedAt)
			}
			if decoded.ID != tt.cursor.ID {
				t.Errorf("ID = %d, want %d", decoded.ID, tt.cursor.ID)
			}

			// Tokens are stable: re-encoding the decoded cursor reproduces them
			if reencoded := EncodeCursor(decoded); reencoded != token {
				t.Errorf("re-encoded token %q differs from original %q", reencoded, token)
			}
		})
	}
}

func TestDecodeCursorGarbage(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not base64", "!!not base64!!"},
		{"base64 but not json", "bm90IGpzb24"},
		{"json without fields", "e30"}, // {}
		{"unknown mode", "eyJtIjoib2Zmc2V0IiwidCI6MSwiaSI6MX0"}, // {"m":"offset","t":1,"i":1}
		{"missing id", "eyJtIjoicmFua2VkIiwidCI6MX0"},           // {"m":"ranked","t":1}
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeCursor(tt.token); got != nil {
				t.Errorf("DecodeCursor(%q) = %+v, want nil", tt.token, got)
			}
		})
	}
}

func TestCursorFrom(t *testing.T) {
	created := time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC)
	post := models.Post{ID: 11, PriorityRank: 200, CreatedAt: created}

	ranked := CursorFrom(post, ModeRanked)
	if ranked.Mode != ModeRanked || ranked.Rank != 200 || ranked.ID != 11 || !ranked.CreatedAt.Equal(created) {
		t.Errorf("CursorFrom ranked = %+v", ranked)
	}

	recency := CursorFrom(post, ModeRecency)
	if recency.Mode != ModeRecency || recency.Rank != 0 {
		t.Errorf("CursorFrom recency = %+v, rank must not be carried", recency)
	}
}
