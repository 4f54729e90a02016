// Package distributor mirrors finished slots to a destination
// database as compressed JSON rows, with a bounded retention window.
//
// Progress is tracked by two cursors: the source-side cursor
// (admDistributorState, per profile) and the destination-side cursor
// (admDistributorDestState). The destination transaction commits
// first, then the source cursor in its own transaction; a crash in
// between leaves the destination at most one fetch chunk ahead, which
// startup reconciliation repairs by fast-forwarding the source.
package distributor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"sedimentology/internal/metrics"
	"sedimentology/internal/models"
)

// SourceStore is the slice of the source repository the mirror needs.
type SourceStore interface {
	DistributorCursor(ctx context.Context, profile string) (models.Cursor, error)
	AdvanceDistributorState(ctx context.Context, profile string, c models.Cursor) error
	FetchNextSlotInfos(ctx context.Context, startSlot uint64, limit int) ([]models.Slot, error)
	FetchSlotTransactions(ctx context.Context, slots []models.Slot) ([]models.WhirlpoolTransaction, error)
}

// DestStore is the destination side.
type DestStore interface {
	Cursor(ctx context.Context) (models.Cursor, error)
	StoreTransactions(ctx context.Context, batch []EncodedSlot, keepBlockHeight uint64) error
}

type Worker struct {
	source SourceStore
	dest   DestStore

	Profile string

	// tuning knobs, overridable in tests
	FetchChunkSize  int
	IdleSleep       time.Duration
	KeepBlockHeight uint64
}

func NewWorker(source SourceStore, dest DestStore, profile string) *Worker {
	return &Worker{
		source:          source,
		dest:            dest,
		Profile:         profile,
		FetchChunkSize:  128,
		IdleSleep:       500 * time.Millisecond,
		KeepBlockHeight: 648000, // roughly 3 days of blocks
	}
}

// Run reconciles the cursors, then mirrors until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	cursor, err := w.reconcile(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			log.Println("[distributor] shutting down ...")
			return nil
		default:
		}

		slots, err := w.source.FetchNextSlotInfos(ctx, cursor.Slot, w.FetchChunkSize)
		if err != nil {
			return err
		}
		fullFetch := len(slots) == w.FetchChunkSize

		if slots[0].Slot != cursor.Slot {
			return fmt.Errorf("slot stream out of sync: fetched %d, cursor %d", slots[0].Slot, cursor.Slot)
		}
		slots = slots[1:]

		if len(slots) > 0 {
			next, err := w.distribute(ctx, cursor, slots)
			if err != nil {
				return err
			}
			cursor = next
		}

		if !fullFetch {
			select {
			case <-ctx.Done():
				log.Println("[distributor] shutting down ...")
				return nil
			case <-time.After(w.IdleSleep):
			}
		}
	}
}

// reconcile aligns the two cursors after a restart. The destination
// may never be behind the source, and can only run ahead by slots the
// source cursor update lost in a crash, bounded by one fetch chunk.
func (w *Worker) reconcile(ctx context.Context) (models.Cursor, error) {
	src, err := w.source.DistributorCursor(ctx, w.Profile)
	if err != nil {
		return models.Cursor{}, err
	}
	dst, err := w.dest.Cursor(ctx)
	if err != nil {
		return models.Cursor{}, err
	}
	log.Printf("[distributor] cursors: source slot=%d height=%d, dest slot=%d height=%d",
		src.Slot, src.BlockHeight, dst.Slot, dst.BlockHeight)

	if dst.Slot == src.Slot {
		if dst.BlockHeight != src.BlockHeight {
			return models.Cursor{}, fmt.Errorf("cursor mismatch at slot %d: source height %d, dest height %d",
				src.Slot, src.BlockHeight, dst.BlockHeight)
		}
		return src, nil
	}
	if dst.Slot < src.Slot {
		return models.Cursor{}, fmt.Errorf("dest cursor behind source: dest slot %d < source slot %d", dst.Slot, src.Slot)
	}

	// dest ahead: the dest slot must be inside the chunk the crashed
	// iteration was working on
	slots, err := w.source.FetchNextSlotInfos(ctx, src.Slot, w.FetchChunkSize)
	if err != nil {
		return models.Cursor{}, err
	}
	found := false
	for _, s := range slots {
		if s.Slot == dst.Slot {
			if s.BlockHeight != dst.BlockHeight {
				return models.Cursor{}, fmt.Errorf("cursor mismatch at slot %d: source height %d, dest height %d",
					dst.Slot, s.BlockHeight, dst.BlockHeight)
			}
			found = true
			break
		}
	}
	if !found {
		return models.Cursor{}, fmt.Errorf("dest cursor slot %d not within one fetch chunk of source slot %d", dst.Slot, src.Slot)
	}

	log.Printf("[distributor] fast-forwarding source cursor from slot %d to %d", src.Slot, dst.Slot)
	if err := w.source.AdvanceDistributorState(ctx, w.Profile, dst); err != nil {
		return models.Cursor{}, err
	}
	return dst, nil
}

// distribute mirrors one chunk: reassemble, compress with
// verification, land the destination transaction, then advance the
// source cursor.
func (w *Worker) distribute(ctx context.Context, cursor models.Cursor, slots []models.Slot) (models.Cursor, error) {
	// the mirror must be gapless: every height between the cursor and
	// the end of the chunk, exactly once
	prev := cursor.BlockHeight
	for _, s := range slots {
		if s.BlockHeight != prev+1 {
			return models.Cursor{}, fmt.Errorf("block height not sequential: %d after %d (slot %d)", s.BlockHeight, prev, s.Slot)
		}
		prev = s.BlockHeight
	}

	records, err := w.source.FetchSlotTransactions(ctx, slots)
	if err != nil {
		return models.Cursor{}, err
	}
	if len(records) != len(slots) {
		return models.Cursor{}, fmt.Errorf("reassembled %d records for %d slots", len(records), len(slots))
	}

	batch := make([]EncodedSlot, 0, len(records))
	var rawSize, compressedSize int
	for i, record := range records {
		line, err := json.Marshal(record)
		if err != nil {
			return models.Cursor{}, fmt.Errorf("marshal slot %d: %w", record.Slot, err)
		}
		compressed, err := compressRecord(line)
		if err != nil {
			return models.Cursor{}, fmt.Errorf("compress slot %d: %w", record.Slot, err)
		}
		rawSize += len(line)
		compressedSize += len(compressed)
		batch = append(batch, EncodedSlot{Slot: slots[i], Data: compressed, RawSize: len(line)})
	}

	if err := w.dest.StoreTransactions(ctx, batch, w.KeepBlockHeight); err != nil {
		return models.Cursor{}, err
	}

	last := slots[len(slots)-1]
	next := models.Cursor{Slot: last.Slot, BlockHeight: last.BlockHeight, BlockTime: last.BlockTime}
	if err := w.source.AdvanceDistributorState(ctx, w.Profile, next); err != nil {
		return models.Cursor{}, err
	}

	metrics.DistributedSlots.Add(float64(len(slots)))
	metrics.DistributedBytes.WithLabelValues("raw").Add(float64(rawSize))
	metrics.DistributedBytes.WithLabelValues("compressed").Add(float64(compressedSize))
	log.Printf("[distributor] distributed %d slots up to %d (%d bytes, %d compressed)",
		len(slots), last.Slot, rawSize, compressedSize)
	return next, nil
}
