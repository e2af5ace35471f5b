package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/oddscope/oddscope/internal/compare"
	"github.com/oddscope/oddscope/internal/pkg/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "Welcome to the Sports Betting Odds API")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

// handleOdds returns the stored snapshot, optionally narrowed to one sport
// and/or one bookmaker (both matched case-insensitively).
func (s *Server) handleOdds(w http.ResponseWriter, r *http.Request) {
	data, err := s.store.Read(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(data.Odds) == 0 {
		writeMessage(w, http.StatusNotFound, "No odds data available. Try again later.")
		return
	}

	if sport := r.URL.Query().Get("sport"); sport != "" {
		filtered := make(map[string]models.SportSnapshot)
		for name, snap := range data.Odds {
			if strings.EqualFold(name, sport) {
				filtered[name] = snap
			}
		}
		if len(filtered) == 0 {
			writeMessage(w, http.StatusNotFound, "No odds data available for sport: "+sport)
			return
		}
		data.Odds = filtered
	}

	if bookmaker := r.URL.Query().Get("bookmaker"); bookmaker != "" {
		filtered := make(map[string]models.SportSnapshot)
		for name, snap := range data.Odds {
			books := models.SportSnapshot{}
			for book, odds := range snap {
				if strings.EqualFold(book, bookmaker) {
					books[book] = odds
				}
			}
			if len(books) > 0 {
				filtered[name] = books
			}
		}
		if len(filtered) == 0 {
			writeMessage(w, http.StatusNotFound, "No odds data available for bookmaker: "+bookmaker)
			return
		}
		data.Odds = filtered
	}

	writeJSON(w, http.StatusOK, data)
}

// sportSnapshot finds a sport's data by case-insensitive name. The bool
// reports whether the sport exists at all.
func (s *Server) sportSnapshot(data models.RootSnapshot, sport string) (models.SportSnapshot, bool) {
	for name, snap := range data.Odds {
		if strings.EqualFold(name, sport) {
			return snap, true
		}
	}
	return nil, false
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	sport := r.URL.Query().Get("sport")
	if sport == "" {
		writeMessage(w, http.StatusBadRequest, "sport query parameter is required")
		return
	}

	data, err := s.store.Read(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	snap, ok := s.sportSnapshot(data, sport)
	if !ok {
		writeMessage(w, http.StatusNotFound, "No odds data available for sport: "+sport)
		return
	}

	comparison := compare.Compare(snap, r.URL.Query().Get("event_id"), r.URL.Query().Get("market"))
	if len(comparison) == 0 {
		writeMessage(w, http.StatusNotFound, "No comparable odds found for the specified criteria")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"comparison":   comparison,
		"last_updated": data.LastUpdated,
	})
}

func (s *Server) handleArbitrage(w http.ResponseWriter, r *http.Request) {
	sport := r.URL.Query().Get("sport")
	if sport == "" {
		writeMessage(w, http.StatusBadRequest, "sport query parameter is required")
		return
	}

	data, err := s.store.Read(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	snap, ok := s.sportSnapshot(data, sport)
	if !ok {
		writeMessage(w, http.StatusNotFound, "No odds data available for sport: "+sport)
		return
	}

	opps := compare.FindArbitrage(compare.Compare(snap, "", ""))
	if opps == nil {
		opps = []compare.ArbitrageOpportunity{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"opportunities": opps,
		"last_updated":  data.LastUpdated,
	})
}

func (s *Server) handleBookmakers(w http.ResponseWriter, r *http.Request) {
	data, err := s.store.Read(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(data.Odds) == 0 {
		writeMessage(w, http.StatusNotFound, "No odds data available. Try again later.")
		return
	}

	seen := make(map[string]struct{})
	for _, snap := range data.Odds {
		for book := range snap {
			seen[book] = struct{}{}
		}
	}
	books := make([]string, 0, len(seen))
	for book := range seen {
		books = append(books, book)
	}
	sort.Strings(books)

	writeJSON(w, http.StatusOK, map[string]any{"bookmakers": books})
}

func (s *Server) handleSports(w http.ResponseWriter, r *http.Request) {
	data, err := s.store.Read(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(data.Odds) == 0 {
		writeMessage(w, http.StatusNotFound, "No odds data available. Try again later.")
		return
	}

	sports := make([]string, 0, len(data.Odds))
	for name := range data.Odds {
		sports = append(sports, name)
	}
	sort.Strings(sports)

	writeJSON(w, http.StatusOK, map[string]any{"sports": sports})
}

// handleTriggerScrape runs one aggregation cycle synchronously. The scheduled
// loop may be running a cycle at the same time; commits are atomic and the
// last writer wins.
func (s *Server) handleTriggerScrape(w http.ResponseWriter, r *http.Request) {
	if s.pipeline == nil {
		writeMessage(w, http.StatusInternalServerError, "scraping is not configured")
		return
	}
	if err := s.pipeline.RunCycle(r.Context()); err != nil {
		slog.Error("manual scrape failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeMessage(w, http.StatusOK, "Scrape completed successfully")
}
