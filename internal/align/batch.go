package align

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/yuru-sha/fuji-calendar-sub004/internal/site"
)

// BatchRequest is a rectangle of work: every requested kind for every site on
// every day of [Start, Start+Days).
type BatchRequest struct {
	Sites []site.Site
	Start time.Time
	Days  int
	Kinds []EventKind
}

// DayResult holds the outcome for one (site, date) work item.
type DayResult struct {
	SiteID string  `json:"site_id"`
	Date   string  `json:"date"`
	Events []Event `json:"events,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// SearchBatch scans every (site, day) pair in the request. Work items are
// independent, so each runs in its own goroutine bounded by a CPU-count
// semaphore. Results keep a deterministic order regardless of completion
// order; per-item failures land in the item's Error field.
func (e *Engine) SearchBatch(ctx context.Context, req BatchRequest) []DayResult {
	kinds := req.Kinds
	if len(kinds) == 0 {
		kinds = []EventKind{Diamond, Pearl}
	}

	// Resolve geometry up front: the per-site memoization must not race
	// across goroutines, and invalid sites should fail before fan-out.
	sites := make([]site.Site, len(req.Sites))
	siteErrs := make([]error, len(req.Sites))
	for i := range req.Sites {
		sites[i] = req.Sites[i]
		if err := sites[i].Validate(); err != nil {
			siteErrs[i] = err
			continue
		}
		sites[i].ResolveGeometry(e.target)
	}

	results := make([]DayResult, len(sites)*req.Days)
	sem := make(chan struct{}, runtime.NumCPU())
	var wg sync.WaitGroup

	for si := range sites {
		for d := 0; d < req.Days; d++ {
			idx := si*req.Days + d
			day := e.civilDay(req.Start.In(e.loc).AddDate(0, 0, d))

			results[idx] = DayResult{
				SiteID: sites[si].ID,
				Date:   day.Format(time.DateOnly),
			}
			if siteErrs[si] != nil {
				results[idx].Error = siteErrs[si].Error()
				continue
			}

			wg.Add(1)
			go func(idx, si int, day time.Time) {
				defer wg.Done()

				select {
				case sem <- struct{}{}:
					defer func() { <-sem }()
				case <-ctx.Done():
					results[idx].Error = "cancelled"
					return
				}

				s := sites[si]
				for _, kind := range kinds {
					events, err := e.Search(ctx, &s, day, kind)
					results[idx].Events = append(results[idx].Events, events...)
					if err != nil {
						results[idx].Error = err.Error()
						return
					}
				}
			}(idx, si, day)
		}
	}

	wg.Wait()
	return results
}
