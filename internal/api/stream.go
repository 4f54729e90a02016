package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"sedimentology/internal/metrics"
)

// handleStream serves slot-ordered transaction records as SSE. The
// limit counts every event shipped, data and empty heartbeats alike,
// so a caught-up client still sees its stream terminate.
//
// A client that reconnects with the last slot it received observes no
// overlap: the first fetched slot must equal the query slot and is
// popped before reassembly.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	slot, err := s.resolveSlot(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	limit := s.DefaultLimit
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.ParseUint(q, 10, 64)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid limit: %q", q), http.StatusBadRequest)
			return
		}
		limit = n
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	id := s.requestID.Add(1)
	metrics.StreamRequests.Inc()
	log.Printf("[stream-api] stream %d: start slot=%d limit=%d", id, slot, limit)

	var (
		queue      [][]byte
		dataCount  uint64
		emptyCount uint64
		sentBytes  uint64
		started    = time.Now()
		reported   = started
	)

	for sent := uint64(0); sent < limit; sent++ {
		select {
		case <-ctx.Done():
			// client disconnects are not errors
			return
		default:
		}

		if len(queue) == 0 {
			queue, slot, err = s.refillQueue(ctx, slot)
			if err != nil {
				log.Printf("[stream-api] stream %d: %v", id, err)
				return
			}
		}

		var payload []byte
		if len(queue) > 0 {
			payload = queue[0]
			queue = queue[1:]
			dataCount++
			metrics.StreamEvents.WithLabelValues("data").Inc()
		} else {
			emptyCount++
			metrics.StreamEvents.WithLabelValues("empty").Inc()
		}

		n, err := fmt.Fprintf(w, "data: %s\n\n", payload)
		if err != nil {
			return
		}
		flusher.Flush()
		sentBytes += uint64(n)
		metrics.StreamBytes.Add(float64(n))

		if time.Since(reported) >= s.ReportInterval {
			log.Printf("[stream-api] stream %d: elapsed=%s slot=%d data=%d empty=%d bytes=%d",
				id, time.Since(started).Round(time.Second), slot, dataCount, emptyCount, sentBytes)
			reported = time.Now()
		}
	}

	log.Printf("[stream-api] stream %d: closed after %s, slot=%d data=%d empty=%d bytes=%d",
		id, time.Since(started).Round(time.Second), slot, dataCount, emptyCount, sentBytes)
}

// refillQueue polls for slots beyond the cursor, bounded by the fetch
// window. Returns an empty queue when the store stays caught up for
// the whole window; the caller turns that into a heartbeat.
func (s *Server) refillQueue(ctx context.Context, slot uint64) ([][]byte, uint64, error) {
	deadline := time.Now().Add(s.FetchWindow)
	for {
		chunk, err := s.store.FetchNextSlotInfos(ctx, slot, s.FetchChunkSize)
		if err != nil {
			return nil, slot, err
		}
		if len(chunk) == 0 || chunk[0].Slot != slot {
			return nil, slot, fmt.Errorf("slot stream out of sync: cursor %d", slot)
		}
		chunk = chunk[1:]

		if len(chunk) > 0 {
			records, err := s.store.FetchSlotTransactions(ctx, chunk)
			if err != nil {
				return nil, slot, err
			}
			if len(records) != len(chunk) {
				return nil, slot, fmt.Errorf("reassembled %d records for %d slots", len(records), len(chunk))
			}
			queue := make([][]byte, 0, len(records))
			for _, record := range records {
				line, err := json.Marshal(record)
				if err != nil {
					return nil, slot, fmt.Errorf("marshal slot %d: %w", record.Slot, err)
				}
				queue = append(queue, line)
			}
			return queue, chunk[len(chunk)-1].Slot, nil
		}

		if !time.Now().Add(s.FetchSleep).Before(deadline) {
			return nil, slot, nil
		}
		select {
		case <-ctx.Done():
			return nil, slot, nil
		case <-time.After(s.FetchSleep):
		}
	}
}

// resolveSlot defaults an omitted slot parameter to the latest
// checkpoint's slot, the catch-up-from-checkpoint mode.
func (s *Server) resolveSlot(r *http.Request) (uint64, error) {
	q := r.URL.Query().Get("slot")
	if q != "" {
		slot, err := strconv.ParseUint(q, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid slot: %q", q)
		}
		return slot, nil
	}

	date, err := s.store.LatestCheckpointDate(r.Context())
	if err != nil {
		return 0, err
	}
	cp, err := s.store.FetchCheckpoint(r.Context(), date)
	if err != nil {
		return 0, err
	}
	return cp.Slot, nil
}
