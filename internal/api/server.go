// Package api serves the live surface of the pipeline: the daily
// state blob and the slot-ordered SSE transaction stream. No
// authentication; the server expects to sit behind a reverse proxy.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sedimentology/internal/models"
)

// Store is the slice of the repository the live endpoints need.
type Store interface {
	LatestCheckpointDate(ctx context.Context) (uint32, error)
	FetchCheckpoint(ctx context.Context, date uint32) (*models.Checkpoint, error)
	BuildState(ctx context.Context, date uint32) (*models.WhirlpoolState, error)
	FetchNextSlotInfos(ctx context.Context, startSlot uint64, limit int) ([]models.Slot, error)
	FetchSlotTransactions(ctx context.Context, slots []models.Slot) ([]models.WhirlpoolTransaction, error)
}

type Server struct {
	store      Store
	httpServer *http.Server
	limiter    *ipLimiter
	requestID  atomic.Uint64

	// stream tuning knobs, overridable in tests
	FetchChunkSize int
	DefaultLimit   uint64
	FetchWindow    time.Duration
	FetchSleep     time.Duration
	ReportInterval time.Duration
}

// NewServer builds the router and binds the handlers. rps <= 0
// disables rate limiting.
func NewServer(store Store, port int, rps float64, burst int) *Server {
	s := &Server{
		store:          store,
		limiter:        newIPLimiter(rps, burst),
		FetchChunkSize: 128,
		DefaultLimit:   256,
		FetchWindow:    5 * time.Second,
		FetchSleep:     500 * time.Millisecond,
		ReportInterval: 60 * time.Second,
	}

	r := mux.NewRouter()
	r.Use(commonMiddleware)
	r.Use(s.rateLimitMiddleware)
	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/state", s.handleState).Methods("GET")
	r.HandleFunc("/stream", s.handleStream).Methods("GET")

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}
	return s
}

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func commonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
