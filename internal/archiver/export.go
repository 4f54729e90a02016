package archiver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/klauspost/compress/gzip"

	"sedimentology/internal/dateutil"
	"sedimentology/internal/models"
	"sedimentology/internal/txid"
)

// Store is the slice of the repository the exporters need.
type Store interface {
	FetchCheckpoint(ctx context.Context, date uint32) (*models.Checkpoint, error)
	FetchTokenDecimals(ctx context.Context, maxTxid uint64) ([]models.TokenDecimals, error)
	BuildState(ctx context.Context, date uint32) (*models.WhirlpoolState, error)
	SlotRangeForDay(ctx context.Context, minTime, maxTime int64) (uint64, uint64, error)
	FetchSlotsBetween(ctx context.Context, minSlot, maxSlot uint64) ([]models.Slot, error)
	FetchSlotTransactions(ctx context.Context, slots []models.Slot) ([]models.WhirlpoolTransaction, error)
}

// transactionChunkSlots bounds the slot count per reader round trip
// when exporting a whole day.
const transactionChunkSlots = 1000

// Exporter writes the primary artifacts of one day to local gzip
// files. Exports are deterministic: same day, same bytes, any number
// of reruns.
type Exporter struct {
	store Store
}

func NewExporter(store Store) *Exporter {
	return &Exporter{store: store}
}

// ExportState writes the whirlpool-state artifact: the full account
// set at the day's checkpoint, gzip JSON.
func (e *Exporter) ExportState(ctx context.Context, date uint32, path string) error {
	state, err := e.store.BuildState(ctx, date)
	if err != nil {
		return err
	}
	return writeGzipJSON(path, state)
}

// ExportToken writes the whirlpool-token artifact: the mint decimals
// known up to the day's checkpoint slot.
func (e *Exporter) ExportToken(ctx context.Context, date uint32, path string) error {
	cp, err := e.store.FetchCheckpoint(ctx, date)
	if err != nil {
		return err
	}
	_, maxTxid := txid.RangeForSlots(cp.Slot, cp.Slot)
	decimals, err := e.store.FetchTokenDecimals(ctx, maxTxid)
	if err != nil {
		return err
	}
	token := models.WhirlpoolToken{
		Slot:        cp.Slot,
		BlockHeight: cp.BlockHeight,
		BlockTime:   cp.BlockTime,
		Tokens:      decimals,
	}
	return writeGzipJSON(path, &token)
}

// ExportTransaction writes the whirlpool-transaction artifact: one
// JSON line per slot of the day, reassembled through the reader in
// chunks so a full day never sits in memory at once.
func (e *Exporter) ExportTransaction(ctx context.Context, date uint32, path string) error {
	minTime, maxTime := dateutil.DayWindow(date)
	minSlot, maxSlot, err := e.store.SlotRangeForDay(ctx, minTime, maxTime)
	if err != nil {
		return err
	}
	slots, err := e.store.FetchSlotsBetween(ctx, minSlot, maxSlot)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	gz, err := gzip.NewWriterLevel(f, gzip.DefaultCompression)
	if err != nil {
		return err
	}

	for len(slots) > 0 {
		chunk := slots
		if len(chunk) > transactionChunkSlots {
			chunk = chunk[:transactionChunkSlots]
		}
		slots = slots[len(chunk):]

		records, err := e.store.FetchSlotTransactions(ctx, chunk)
		if err != nil {
			return err
		}
		for _, record := range records {
			line, err := json.Marshal(record)
			if err != nil {
				return fmt.Errorf("marshal slot %d: %w", record.Slot, err)
			}
			if _, err := gz.Write(append(line, '\n')); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
		}
	}

	if err := gz.Close(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

func writeGzipJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	gz, err := gzip.NewWriterLevel(f, gzip.DefaultCompression)
	if err != nil {
		return err
	}
	if err := json.NewEncoder(gz).Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}
