package distributor

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"sedimentology/internal/models"
)

func TestCompressRecordRoundTrip(t *testing.T) {
	record := []byte(`{"slot":100,"block_height":10,"block_time":1704067200,"transactions":[]}`)
	compressed, err := compressRecord(record)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := zstdDecoder.DecodeAll(compressed, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded, record) {
		t.Errorf("round trip mismatch: %s", decoded)
	}
}

func TestRetentionThreshold(t *testing.T) {
	tests := []struct {
		latest, keep, want uint64
	}{
		{1000000, 648000, 352000},
		{648000, 648000, 0},
		{100, 648000, 0}, // saturates while the chain is young
		{648001, 648000, 1},
	}
	for _, tt := range tests {
		if got := RetentionThreshold(tt.latest, tt.keep); got != tt.want {
			t.Errorf("RetentionThreshold(%d, %d) = %d, want %d", tt.latest, tt.keep, got, tt.want)
		}
	}
}

// fakeSource scripts a contiguous slot sequence.
type fakeSource struct {
	cursor   models.Cursor
	slots    []models.Slot
	advanced []models.Cursor
	cancel   context.CancelFunc
}

func (f *fakeSource) all() []models.Slot {
	cursorSlot := models.Slot{Slot: f.cursor.Slot, BlockHeight: f.cursor.BlockHeight, BlockTime: f.cursor.BlockTime}
	out := []models.Slot{cursorSlot}
	for _, s := range f.slots {
		if s.Slot > f.cursor.Slot {
			out = append(out, s)
		}
	}
	return out
}

func (f *fakeSource) DistributorCursor(ctx context.Context, profile string) (models.Cursor, error) {
	return f.cursor, nil
}

func (f *fakeSource) AdvanceDistributorState(ctx context.Context, profile string, c models.Cursor) error {
	f.advanced = append(f.advanced, c)
	f.cursor = c
	return nil
}

func (f *fakeSource) FetchNextSlotInfos(ctx context.Context, startSlot uint64, limit int) ([]models.Slot, error) {
	var out []models.Slot
	for _, s := range f.all() {
		if s.Slot >= startSlot {
			out = append(out, s)
		}
	}
	if len(out) <= 1 && f.cancel != nil {
		f.cancel()
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeSource) FetchSlotTransactions(ctx context.Context, slots []models.Slot) ([]models.WhirlpoolTransaction, error) {
	records := make([]models.WhirlpoolTransaction, 0, len(slots))
	for _, s := range slots {
		records = append(records, models.WhirlpoolTransaction{
			Slot:         s.Slot,
			BlockHeight:  s.BlockHeight,
			BlockTime:    s.BlockTime,
			Transactions: []models.Transaction{},
		})
	}
	return records, nil
}

// fakeDest records batches in memory.
type fakeDest struct {
	cursor  models.Cursor
	batches [][]EncodedSlot
	keep    []uint64
}

func (f *fakeDest) Cursor(ctx context.Context) (models.Cursor, error) {
	return f.cursor, nil
}

func (f *fakeDest) StoreTransactions(ctx context.Context, batch []EncodedSlot, keepBlockHeight uint64) error {
	f.batches = append(f.batches, batch)
	f.keep = append(f.keep, keepBlockHeight)
	last := batch[len(batch)-1].Slot
	f.cursor = models.Cursor{Slot: last.Slot, BlockHeight: last.BlockHeight, BlockTime: last.BlockTime}
	return nil
}

func TestReconcileAligned(t *testing.T) {
	c := models.Cursor{Slot: 100, BlockHeight: 10, BlockTime: 1}
	w := NewWorker(&fakeSource{cursor: c}, &fakeDest{cursor: c}, "alpha")

	got, err := w.reconcile(context.Background())
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if got != c {
		t.Errorf("cursor = %+v, want %+v", got, c)
	}
}

func TestReconcileFastForwardsSource(t *testing.T) {
	// dest committed slots 101..102 but the source cursor update was lost
	source := &fakeSource{
		cursor: models.Cursor{Slot: 100, BlockHeight: 10, BlockTime: 1},
		slots: []models.Slot{
			{Slot: 101, BlockHeight: 11, BlockTime: 2},
			{Slot: 102, BlockHeight: 12, BlockTime: 3},
		},
	}
	dest := &fakeDest{cursor: models.Cursor{Slot: 102, BlockHeight: 12, BlockTime: 3}}
	w := NewWorker(source, dest, "alpha")

	got, err := w.reconcile(context.Background())
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if got.Slot != 102 {
		t.Errorf("cursor slot = %d, want 102", got.Slot)
	}
	if len(source.advanced) != 1 || source.advanced[0].Slot != 102 {
		t.Errorf("source advanced = %+v, want fast-forward to 102", source.advanced)
	}
}

func TestReconcileDestBehindIsFatal(t *testing.T) {
	source := &fakeSource{cursor: models.Cursor{Slot: 100, BlockHeight: 10}}
	dest := &fakeDest{cursor: models.Cursor{Slot: 90, BlockHeight: 5}}
	w := NewWorker(source, dest, "alpha")

	_, err := w.reconcile(context.Background())
	if err == nil || !strings.Contains(err.Error(), "behind source") {
		t.Errorf("reconcile err = %v, want dest-behind failure", err)
	}
}

func TestReconcileDestTooFarAheadIsFatal(t *testing.T) {
	source := &fakeSource{
		cursor: models.Cursor{Slot: 100, BlockHeight: 10},
		slots: []models.Slot{
			{Slot: 101, BlockHeight: 11},
		},
	}
	dest := &fakeDest{cursor: models.Cursor{Slot: 500, BlockHeight: 400}}
	w := NewWorker(source, dest, "alpha")

	_, err := w.reconcile(context.Background())
	if err == nil || !strings.Contains(err.Error(), "not within one fetch chunk") {
		t.Errorf("reconcile err = %v, want too-far-ahead failure", err)
	}
}

func TestRunDistributesChunk(t *testing.T) {
	c := models.Cursor{Slot: 100, BlockHeight: 10, BlockTime: 1704067200}
	source := &fakeSource{
		cursor: c,
		slots: []models.Slot{
			{Slot: 101, BlockHeight: 11, BlockTime: 1704067201},
			{Slot: 103, BlockHeight: 12, BlockTime: 1704067203},
		},
	}
	dest := &fakeDest{cursor: c}
	w := NewWorker(source, dest, "alpha")
	w.IdleSleep = time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	source.cancel = cancel

	if err := w.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(dest.batches) != 1 {
		t.Fatalf("got %d batches, want 1", len(dest.batches))
	}
	batch := dest.batches[0]
	if len(batch) != 2 || batch[0].Slot.Slot != 101 || batch[1].Slot.Slot != 103 {
		t.Fatalf("batch slots = %+v", batch)
	}

	// rows decode back to the reader records
	decoded, err := zstdDecoder.DecodeAll(batch[1].Data, nil)
	if err != nil {
		t.Fatal(err)
	}
	var record models.WhirlpoolTransaction
	if err := json.Unmarshal(decoded, &record); err != nil {
		t.Fatal(err)
	}
	if record.Slot != 103 || record.BlockHeight != 12 {
		t.Errorf("decoded record = %+v", record)
	}

	if len(source.advanced) != 1 || source.advanced[0].Slot != 103 {
		t.Errorf("source advanced = %+v, want [slot 103]", source.advanced)
	}
	if dest.keep[0] != w.KeepBlockHeight {
		t.Errorf("keepBlockHeight = %d, want %d", dest.keep[0], w.KeepBlockHeight)
	}
}

func TestRunRejectsHeightGap(t *testing.T) {
	c := models.Cursor{Slot: 100, BlockHeight: 10, BlockTime: 1}
	source := &fakeSource{
		cursor: c,
		slots: []models.Slot{
			{Slot: 101, BlockHeight: 13, BlockTime: 2}, // gap: 10 -> 13
		},
	}
	w := NewWorker(source, &fakeDest{cursor: c}, "alpha")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	source.cancel = cancel

	err := w.Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "not sequential") {
		t.Errorf("Run err = %v, want height gap failure", err)
	}
}
