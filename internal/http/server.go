// Package http exposes the tracker over a JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"tally/internal/auth"
	"tally/internal/cache"
	"tally/internal/services"
	"tally/internal/storage"
)

type Server struct {
	http.Server

	tracker       *services.Tracker
	authenticator *auth.PasswordAuthenticator
	tokens        *auth.JWTManager
	rateLimiter   *rateLimiter

	// Report responses are cached per user; the generation counter
	// invalidates a user's entries on mutation without scanning keys.
	reportCache *cache.LRU[string]
	genMu       sync.Mutex
	generations map[string]uint64

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and middleware, returning a
// ready-to-run server.
func NewServer(addr string, store storage.Store, tracker *services.Tracker, tokens *auth.JWTManager) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		tracker:          tracker,
		authenticator:    auth.NewPasswordAuthenticator(store.Users()),
		tokens:           tokens,
		rateLimiter:      newRateLimiter(),
		reportCache:      cache.NewLRU[string](200, 5*time.Minute),
		generations:      make(map[string]uint64),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/register", s.withCommon(s.handleRegister))
	mux.HandleFunc("POST /api/login", s.withCommon(s.handleLogin))

	mux.HandleFunc("POST /api/transactions", s.withSession(s.handleAddTransaction))
	mux.HandleFunc("GET /api/transactions", s.withSession(s.handleListTransactions))
	mux.HandleFunc("PATCH /api/transactions/{id}", s.withSession(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withSession(s.handleRemoveTransaction))

	mux.HandleFunc("GET /api/balance", s.withSession(s.handleBalance))
	mux.HandleFunc("GET /api/report", s.withSession(s.handleReport))

	mux.HandleFunc("PUT /api/budget", s.withSession(s.handleSetBudget))
	mux.HandleFunc("GET /api/budget", s.withSession(s.handleViewBudget))
	mux.HandleFunc("POST /api/budget/check", s.withSession(s.handleCheckLimit))

	mux.HandleFunc("PUT /api/goal", s.withSession(s.handleSetGoal))
	mux.HandleFunc("GET /api/goal", s.withSession(s.handleViewGoal))

	return s
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.reportCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops the cleanup goroutines and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		close(s.stopCacheCleanup)
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// generation returns the user's cache generation.
func (s *Server) generation(userID string) uint64 {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.generations[userID]
}

// bumpGeneration invalidates all cached responses for the user; stale
// entries age out of the LRU.
func (s *Server) bumpGeneration(userID string) {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	s.generations[userID]++
}

func (s *Server) reportKey(userID, from, to string) string {
	return userID + ":" + strconv.FormatUint(s.generation(userID), 10) + ":" + from + ":" + to
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
