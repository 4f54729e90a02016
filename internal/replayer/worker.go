// Package replayer drives the replay engine: it restores state from
// the latest daily checkpoint, then consumes slots in strict order,
// applying every decoded instruction and persisting a checkpoint each
// time the UTC day changes.
package replayer

import (
	"context"
	"fmt"
	"log"
	"time"

	"sedimentology/internal/accountstore"
	"sedimentology/internal/dateutil"
	"sedimentology/internal/engine"
	"sedimentology/internal/metrics"
	"sedimentology/internal/models"
	"sedimentology/internal/whirlpool"
)

// Store is the slice of the repository the replay driver needs.
type Store interface {
	LatestReplayedDate(ctx context.Context) (uint32, error)
	RestoreEngineState(ctx context.Context, date uint32, accounts accountstore.Store) (models.Slot, []byte, error)
	FetchNextSlotInfos(ctx context.Context, startSlot uint64, limit int) ([]models.Slot, error)
	FetchInstructionsInSlot(ctx context.Context, slot uint64) ([]whirlpool.DecodedInstruction, error)
	SaveCheckpoint(ctx context.Context, date uint32, slot uint64, programCompressed, accountCompressed []byte) error
}

type Worker struct {
	store    Store
	accounts accountstore.Store
	executor engine.Executor

	// tuning knobs, overridable in tests
	FetchChunkSize int
	IdleSleep      time.Duration
}

func NewWorker(store Store, accounts accountstore.Store, executor engine.Executor) *Worker {
	return &Worker{
		store:          store,
		accounts:       accounts,
		executor:       executor,
		FetchChunkSize: 1024,
		IdleSleep:      10 * time.Second,
	}
}

// Run replays until ctx is cancelled. Any data integrity failure
// (non-dense height, date gap, instruction failure) returns an error;
// there is no skip path.
func (w *Worker) Run(ctx context.Context) error {
	date, err := w.store.LatestReplayedDate(ctx)
	if err != nil {
		return err
	}
	log.Printf("[replayer] latestReplayedDate = %d", date)

	slot, programData, err := w.store.RestoreEngineState(ctx, date, w.accounts)
	if err != nil {
		return err
	}
	log.Printf("[replayer] restored state: slot=%d height=%d time=%d program=%d bytes",
		slot.Slot, slot.BlockHeight, slot.BlockTime, len(programData))

	eng := engine.New(slot, programData, w.accounts, w.executor)
	bootstrapSlot := slot.Slot

	for {
		select {
		case <-ctx.Done():
			log.Println("[replayer] shutting down ...")
			return nil
		default:
		}

		cursor := eng.Slot()
		log.Printf("[replayer] fetching next slots from %d (%s) ...",
			cursor.Slot, time.Unix(cursor.BlockTime, 0).UTC().Format("2006/01/02 15:04:05"))

		slots, err := w.store.FetchNextSlotInfos(ctx, cursor.Slot, w.FetchChunkSize)
		if err != nil {
			return err
		}
		fullFetch := len(slots) == w.FetchChunkSize

		// the first row is the cursor slot itself, already replayed
		if slots[0].Slot != cursor.Slot {
			return fmt.Errorf("slot stream out of sync: fetched %d, cursor %d", slots[0].Slot, cursor.Slot)
		}
		slots = slots[1:]

		if len(slots) == 0 {
			log.Println("[replayer] no more slots to replay now")
		} else {
			log.Printf("[replayer] replaying %d slots ...", len(slots))
		}

		for _, next := range slots {
			select {
			case <-ctx.Done():
				log.Println("[replayer] shutting down ...")
				return nil
			default:
			}

			if err := w.maybeCheckpoint(ctx, eng, next, bootstrapSlot); err != nil {
				return err
			}
			if err := w.replaySlot(ctx, eng, next); err != nil {
				return err
			}
			metrics.ReplayedSlots.Inc()
		}

		if !fullFetch {
			select {
			case <-ctx.Done():
				log.Println("[replayer] shutting down ...")
				return nil
			case <-time.After(w.IdleSleep):
			}
		}
	}
}

// maybeCheckpoint persists the current day's checkpoint before the
// first slot of a new UTC day is applied. Days must be consecutive;
// a gap means slots are missing and is fatal.
func (w *Worker) maybeCheckpoint(ctx context.Context, eng *engine.Engine, next models.Slot, bootstrapSlot uint64) error {
	current := eng.Slot()
	currentDay := dateutil.TruncateToDay(current.BlockTime)
	nextDay := dateutil.TruncateToDay(next.BlockTime)
	if currentDay == nextDay || current.Slot <= bootstrapSlot {
		return nil
	}
	if !dateutil.IsNextDay(currentDay, nextDay) {
		return fmt.Errorf("date not sequential: %d -> %d (slot %d -> %d)",
			dateutil.UnixToYYYYMMDD(currentDay), dateutil.UnixToYYYYMMDD(nextDay),
			current.Slot, next.Slot)
	}

	date := dateutil.UnixToYYYYMMDD(currentDay)
	log.Printf("[replayer] changing date from %d to %d, saving state of %d (last slot %d) ...",
		date, dateutil.UnixToYYYYMMDD(nextDay), date, current.Slot)

	programCompressed, err := engine.EncodeProgram(eng.ProgramData())
	if err != nil {
		return fmt.Errorf("checkpoint %d: %w", date, err)
	}
	accountCompressed, err := engine.EncodeAccounts(eng.Accounts())
	if err != nil {
		return fmt.Errorf("checkpoint %d: %w", date, err)
	}
	if err := w.store.SaveCheckpoint(ctx, date, current.Slot, programCompressed, accountCompressed); err != nil {
		return err
	}
	metrics.SavedCheckpoints.Inc()
	log.Printf("[replayer] saved state of %d", date)
	return nil
}

func (w *Worker) replaySlot(ctx context.Context, eng *engine.Engine, slot models.Slot) error {
	ixs, err := w.store.FetchInstructionsInSlot(ctx, slot.Slot)
	if err != nil {
		return err
	}
	if err := eng.UpdateSlot(slot.Slot, slot.BlockHeight, slot.BlockTime); err != nil {
		return err
	}
	for _, ix := range ixs {
		if ix.IsProgramDeploy() {
			programData, err := ix.ProgramData()
			if err != nil {
				return err
			}
			eng.UpdateProgramData(programData)
			continue
		}
		if _, err := eng.ReplayInstruction(ix); err != nil {
			return err
		}
	}
	return nil
}
