package repository

import (
	"context"
	"fmt"

	"sedimentology/internal/models"
)

// LatestReplayedDate reads the replayer cursor: the last day for which
// a checkpoint exists.
func (r *Repository) LatestReplayedDate(ctx context.Context) (uint32, error) {
	var date uint32
	err := r.db.QueryRow(ctx, `SELECT latestReplayedDate FROM admReplayerState`).Scan(&date)
	if err != nil {
		return 0, fmt.Errorf("fetch latestReplayedDate: %w", err)
	}
	return date, nil
}

// LatestArchivedDate reads the archiver cursor for a profile.
func (r *Repository) LatestArchivedDate(ctx context.Context, profile string) (uint32, error) {
	var date uint32
	err := r.db.QueryRow(ctx,
		`SELECT latestArchivedDate FROM admArchiverState WHERE profile = $1`, profile).Scan(&date)
	if err != nil {
		return 0, fmt.Errorf("fetch latestArchivedDate for %s: %w", profile, err)
	}
	return date, nil
}

// AdvanceArchiverState commits the archiver cursor for a profile.
func (r *Repository) AdvanceArchiverState(ctx context.Context, profile string, date uint32) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin archiver state tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE admArchiverState SET latestArchivedDate = $1 WHERE profile = $2`, date, profile)
	if err != nil {
		return fmt.Errorf("update latestArchivedDate: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit archiver state: %w", err)
	}
	return nil
}

// SaveCheckpoint persists a daily checkpoint and advances the replayer
// cursor in one transaction, so a crash can never leave the cursor
// ahead of the blobs.
func (r *Repository) SaveCheckpoint(ctx context.Context, date uint32, slot uint64, programCompressed, accountCompressed []byte) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin checkpoint tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO states (date, slot, programCompressedData, accountCompressedData)
		VALUES ($1, $2, $3, $4)`,
		date, slot, programCompressed, accountCompressed)
	if err != nil {
		return fmt.Errorf("insert checkpoint %d: %w", date, err)
	}

	_, err = tx.Exec(ctx, `UPDATE admReplayerState SET latestReplayedDate = $1`, date)
	if err != nil {
		return fmt.Errorf("update latestReplayedDate: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit checkpoint %d: %w", date, err)
	}
	return nil
}

// DistributorCursor reads the source-side distributor cursor.
func (r *Repository) DistributorCursor(ctx context.Context, profile string) (models.Cursor, error) {
	var c models.Cursor
	err := r.db.QueryRow(ctx, `
		SELECT latestDistributedBlockSlot, latestDistributedBlockHeight, latestDistributedBlockTime
		FROM admDistributorState
		WHERE profile = $1`, profile).Scan(&c.Slot, &c.BlockHeight, &c.BlockTime)
	if err != nil {
		return models.Cursor{}, fmt.Errorf("fetch distributor cursor for %s: %w", profile, err)
	}
	return c, nil
}

// AdvanceDistributorState commits the source-side distributor cursor in
// its own transaction. Runs after the destination transaction; the gap
// between the two is what the startup reconciliation repairs.
func (r *Repository) AdvanceDistributorState(ctx context.Context, profile string, c models.Cursor) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin distributor state tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE admDistributorState
		SET latestDistributedBlockSlot = $1,
		    latestDistributedBlockHeight = $2,
		    latestDistributedBlockTime = $3
		WHERE profile = $4`,
		c.Slot, c.BlockHeight, c.BlockTime, profile)
	if err != nil {
		return fmt.Errorf("update distributor cursor: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit distributor cursor: %w", err)
	}
	return nil
}
