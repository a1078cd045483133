package collection

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/spec-kit/dispatch-dashboard/internal/backend"
)

// countsCacheKey is the session-scoped cache key for the landing screen.
const countsCacheKey = "dashboard:counts:v1"

type countFetch struct {
	call func(context.Context) backend.Envelope
	dst  *int
}

// Counts summarizes the four collections on the landing screen.
type Counts struct {
	Unassigned int `json:"unassigned"`
	Ongoing    int `json:"ongoing"`
	Completed  int `json:"completed"`
	Drivers    int `json:"drivers"`
}

// FetchCounts loads the landing-screen counters. Unless force is set, a
// cached value is served first. The four fetches run in parallel with an
// all-settled join: one failing fetch never cancels its siblings, and a
// failed or malformed response contributes a zero count. The second return
// value reports whether the result came from cache.
func (s *Slices) FetchCounts(ctx context.Context, force bool) (Counts, bool) {
	if !force {
		var cached Counts
		if s.cache.Get(ctx, countsCacheKey, &cached) {
			return cached, true
		}
	}

	counts, complete := s.fetchCountsLive(ctx)

	// A failed fetch contributed a zero; caching that would pin the zero
	// for the full TTL, so only complete results go into the cache.
	if complete {
		s.cache.Set(ctx, countsCacheKey, counts)
	}
	return counts, false
}

// fetchCountsLive runs the four fetches and reports whether every one of
// them succeeded.
func (s *Slices) fetchCountsLive(ctx context.Context) (Counts, bool) {
	var counts Counts
	fetches := []countFetch{
		{s.tasks.GetUnassigned, &counts.Unassigned},
		{s.tasks.GetOngoing, &counts.Ongoing},
		{s.tasks.GetCompleted, &counts.Completed},
		{s.tasks.GetDrivers, &counts.Drivers},
	}

	oks := make([]bool, len(fetches))
	var wg sync.WaitGroup
	for i, f := range fetches {
		wg.Add(1)
		go func(i int, f countFetch) {
			defer wg.Done()
			*f.dst, oks[i] = listLength(f.call(ctx))
		}(i, f)
	}
	wg.Wait()

	complete := true
	for _, ok := range oks {
		complete = complete && ok
	}
	return counts, complete
}

// listLength counts a list-shaped envelope without decoding records. A
// failed or malformed response reports zero and not-ok; an empty success
// body is a legitimate zero.
func listLength(env backend.Envelope) (int, bool) {
	if !env.Success {
		return 0, false
	}
	if env.Data == nil {
		return 0, true
	}
	raw, err := json.Marshal(env.Data)
	if err != nil {
		return 0, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0, false
	}
	return len(items), true
}
