package store_test

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/shelfside/boardgame-tracker/internal/store"
	"github.com/shelfside/boardgame-tracker/internal/upstream"
)

// fakeCaller replays canned results keyed by "METHOD endpoint" and
// records every call it sees.
type fakeCaller struct {
	mu        sync.Mutex
	responses map[string]upstream.Result
	calls     []string
}

func newFakeCaller() *fakeCaller {
	return &fakeCaller{responses: map[string]upstream.Result{}}
}

func (f *fakeCaller) on(method, endpoint string, res upstream.Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[method+" "+endpoint] = res
}

func (f *fakeCaller) Call(_ context.Context, method, endpoint string, _ any) upstream.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := method + " " + endpoint
	f.calls = append(f.calls, key)
	if res, ok := f.responses[key]; ok {
		return res
	}
	return upstream.Result{Status: http.StatusNotFound, Kind: upstream.KindUpstream, Message: "no canned response for " + key}
}

func (f *fakeCaller) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeCaller) callsTo(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == key {
			n++
		}
	}
	return n
}

var _ store.Caller = (*fakeCaller)(nil)

func okJSON(payload string) upstream.Result {
	return upstream.Result{OK: true, Status: http.StatusOK, Data: json.RawMessage(payload)}
}

func networkFailure() upstream.Result {
	return upstream.Result{Kind: upstream.KindNetwork, Message: "connection refused"}
}
