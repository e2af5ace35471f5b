// Package api serves the odds comparison HTTP API over the stored snapshot.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/oddscope/oddscope/internal/aggregator"
	"github.com/oddscope/oddscope/internal/pkg/config"
	"github.com/oddscope/oddscope/internal/snapshot"
)

type Server struct {
	cfg        *config.Config
	store      snapshot.Store
	pipeline   *aggregator.Pipeline
	httpServer *http.Server
}

func NewServer(cfg *config.Config, store snapshot.Store, pipeline *aggregator.Pipeline) *Server {
	return &Server{cfg: cfg, store: store, pipeline: pipeline}
}

// Router builds the full route table. Split out from Start for tests.
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/", s.handleRoot).Methods("GET")
	router.HandleFunc("/health", s.handleHealth).Methods("GET")
	router.HandleFunc("/odds", s.handleOdds).Methods("GET")
	router.HandleFunc("/compare", s.handleCompare).Methods("GET")
	router.HandleFunc("/arbitrage", s.handleArbitrage).Methods("GET")
	router.HandleFunc("/bookmakers", s.handleBookmakers).Methods("GET")
	router.HandleFunc("/sports", s.handleSports).Methods("GET")
	router.HandleFunc("/trigger-scrape", s.handleTriggerScrape).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return c.Handler(router)
}

func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         ":" + strconv.Itoa(s.cfg.Server.Port),
		Handler:      s.Router(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("API server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop() {
	if s.httpServer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
}
