// Package aggregator fans out all bookmaker scrapers concurrently, merges
// their results into one snapshot per sport, and commits it to the store.
package aggregator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/oddscope/oddscope/internal/pkg/models"
	"github.com/oddscope/oddscope/internal/scrapers"
	"github.com/oddscope/oddscope/internal/snapshot"
)

// CycleObserver is notified after every committed aggregation cycle.
type CycleObserver interface {
	CycleCompleted(ctx context.Context, snap models.RootSnapshot)
}

type Pipeline struct {
	scrapers  []scrapers.Scraper
	store     snapshot.Store
	observers []CycleObserver
}

func New(list []scrapers.Scraper, store snapshot.Store, observers ...CycleObserver) *Pipeline {
	return &Pipeline{scrapers: list, store: store, observers: observers}
}

type scrapeResult struct {
	name string
	data map[models.Sport]models.BookOdds
	err  error
}

// RunCycle runs every scraper concurrently, waits for all of them, merges
// whatever succeeded and replaces the persisted snapshot. One scraper's
// failure (error or panic) costs only that bookmaker's data for the cycle.
// A cycle where every scraper fails still commits an empty snapshot:
// the store always reflects the latest attempt.
func (p *Pipeline) RunCycle(ctx context.Context) error {
	start := time.Now()
	slog.Info("aggregation cycle started", "scrapers", len(p.scrapers))

	results := make([]scrapeResult, len(p.scrapers))
	var wg sync.WaitGroup
	for i, s := range p.scrapers {
		wg.Add(1)
		go func(i int, s scrapers.Scraper) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i] = scrapeResult{name: s.Name(), err: fmt.Errorf("panic: %v", r)}
				}
			}()
			data, err := s.Scrape(ctx)
			results[i] = scrapeResult{name: s.Name(), data: data, err: err}
		}(i, s)
	}
	wg.Wait()

	odds := make(map[string]models.SportSnapshot)
	for _, r := range results {
		if r.err != nil {
			slog.Error("scraper failed, skipping for this cycle", "scraper", r.name, "error", r.err)
			continue
		}
		for sport, book := range r.data {
			ss, ok := odds[string(sport)]
			if !ok {
				ss = models.SportSnapshot{}
				odds[string(sport)] = ss
			}
			ss[r.name] = book
		}
	}

	now := time.Now().UTC()
	snap := models.RootSnapshot{LastUpdated: &now, Odds: odds}
	if err := p.store.Write(ctx, snap); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	slog.Info("aggregation cycle committed", "sports", len(odds), "duration", time.Since(start))

	for _, obs := range p.observers {
		obs.CycleCompleted(ctx, snap)
	}
	return nil
}

// RunEvery runs cycles on a fixed interval until ctx is cancelled. A failed
// cycle is logged and the loop keeps going.
func (p *Pipeline) RunEvery(ctx context.Context, interval time.Duration) {
	for {
		if err := p.RunCycle(ctx); err != nil {
			slog.Error("aggregation cycle failed", "error", err)
		}
		slog.Info("waiting until next cycle", "interval", interval)

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}
