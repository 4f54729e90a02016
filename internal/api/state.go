package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/klauspost/compress/gzip"
)

// handleState serves the whirlpool-state artifact of one day as a
// single gzip blob, byte-identical to what the archiver uploads. The
// blob is produced in full before any response header commits, so a
// failure is still a clean 500.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	date, err := s.resolveDate(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	state, err := s.store.BuildState(ctx, date)
	if err != nil {
		log.Printf("[stream-api] build state for %d: %v", date, err)
		http.Error(w, "failed to build state", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	gz, err := gzip.NewWriterLevel(&buf, gzip.DefaultCompression)
	if err != nil {
		http.Error(w, "failed to build state", http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(gz).Encode(state); err != nil {
		http.Error(w, "failed to build state", http.StatusInternalServerError)
		return
	}
	if err := gz.Close(); err != nil {
		http.Error(w, "failed to build state", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/gzip")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

func (s *Server) resolveDate(r *http.Request) (uint32, error) {
	q := r.URL.Query().Get("yyyymmdd")
	if q == "" {
		return s.store.LatestCheckpointDate(r.Context())
	}
	date, err := strconv.ParseUint(q, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid yyyymmdd: %q", q)
	}
	return uint32(date), nil
}
