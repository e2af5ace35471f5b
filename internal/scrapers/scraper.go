// Package scrapers defines the per-bookmaker scraper contract and the shared
// fetch/extract machinery all bookmaker packages build on.
package scrapers

import (
	"context"

	"github.com/oddscope/oddscope/internal/pkg/models"
)

// Scraper pulls one bookmaker's odds for every supported sport and maps them
// into the normalized model.
//
// The returned map contains only sports for which a document was fetched and
// its embedded state decoded; a sport whose payload decoded to zero events is
// present with an empty event list, while fetch or extraction failures leave
// the sport out entirely. Per-sport failures are logged, never returned: the
// error is reserved for failures that invalidate the whole run.
type Scraper interface {
	Name() string
	Scrape(ctx context.Context) (map[models.Sport]models.BookOdds, error)
}
