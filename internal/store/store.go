// Package store holds the canonical in-memory collections and computes
// their derived, filtered and sorted views. Each store owns its slice
// exclusively: loads replace it wholesale, views operate on copies, and
// nothing the presentation layer receives aliases canonical memory.
//
// Loads racing (navigate away and back before the first one resolves)
// are last-writer-wins: whichever response lands last determines the
// final collection. The swap happens in one step under the store mutex,
// so a race can reorder outcomes but never tear the slice. In-flight
// requests are not cancelled; this is an accepted limitation.
package store

import (
	"context"
	"strings"

	"github.com/shelfside/boardgame-tracker/internal/upstream"
)

// Caller is the slice of the transport client the stores need. Kept
// local so tests can stub the network with a few lines.
type Caller interface {
	Call(ctx context.Context, method, endpoint string, body any) upstream.Result
}

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
