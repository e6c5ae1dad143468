// Package server exposes the persisted feeds over a small read-only JSON
// API: the message feed, the update audit log, and the current per-region
// snapshots. It never writes; the poller is the single writer.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"vct-tracker/internal/constants"
	"vct-tracker/internal/domain"
	"vct-tracker/internal/middleware"
	"vct-tracker/internal/repository"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type FeedServer struct {
	snapshots *repository.SnapshotRepository
	updates   *repository.UpdateRepository
	messages  *repository.MessageRepository
	logger    zerolog.Logger
}

func NewFeedServer(
	snapshots *repository.SnapshotRepository,
	updates *repository.UpdateRepository,
	messages *repository.MessageRepository,
	logger zerolog.Logger,
) *FeedServer {
	return &FeedServer{
		snapshots: snapshots,
		updates:   updates,
		messages:  messages,
		logger:    logger,
	}
}

// Handler builds the full middleware-wrapped API handler.
func (s *FeedServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/messages", s.handleMessages)
	mux.HandleFunc("GET /api/updates", s.handleUpdates)
	mux.HandleFunc("GET /api/regions/{region}/teams", s.handleRegionTeams)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	return middleware.RequestID(s.logger)(c.Handler(mux))
}

func (s *FeedServer) handleMessages(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r, constants.DefaultMessageLimit, constants.MaxMessageLimit)
	ctx, cancel := context.WithTimeout(r.Context(), constants.DatabaseTimeout)
	defer cancel()

	entries, err := s.messages.List(ctx, limit)
	if err != nil {
		s.fail(w, r, err, "failed to list messages")
		return
	}
	if entries == nil {
		entries = []domain.MessageEntry{}
	}
	s.respond(w, entries)
}

func (s *FeedServer) handleUpdates(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r, constants.DefaultUpdateLimit, constants.MaxMessageLimit)
	ctx, cancel := context.WithTimeout(r.Context(), constants.DatabaseTimeout)
	defer cancel()

	entries, err := s.updates.List(ctx, r.URL.Query().Get("region"), limit)
	if err != nil {
		s.fail(w, r, err, "failed to list updates")
		return
	}
	if entries == nil {
		entries = []domain.UpdateEntry{}
	}
	s.respond(w, entries)
}

func (s *FeedServer) handleRegionTeams(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.DatabaseTimeout)
	defer cancel()

	teams, err := s.snapshots.Load(ctx, r.PathValue("region"))
	if err != nil {
		s.fail(w, r, err, "failed to load snapshot")
		return
	}
	if teams == nil {
		teams = []domain.Team{}
	}
	s.respond(w, teams)
}

func (s *FeedServer) respond(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *FeedServer) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	s.logger.Error().
		Err(err).
		Str("request_id", middleware.GetRequestID(r.Context())).
		Msg(msg)
	http.Error(w, msg, http.StatusInternalServerError)
}

func queryLimit(r *http.Request, fallback, max int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}
