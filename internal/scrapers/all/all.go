// Package all imports every bookmaker scraper for side-effect registration.
//
// Import this package from your main to ensure all scrapers are registered:
//
//	import _ "github.com/oddscope/oddscope/internal/scrapers/all"
package all

import (
	_ "github.com/oddscope/oddscope/internal/scrapers/betmgm"
	_ "github.com/oddscope/oddscope/internal/scrapers/draftkings"
	_ "github.com/oddscope/oddscope/internal/scrapers/fanduel"
)
