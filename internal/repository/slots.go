package repository

import (
	"context"
	"fmt"

	"sedimentology/internal/models"
)

// FetchNextSlotInfos returns up to limit slots starting at startSlot
// inclusive, in ascending order. The caller's cursor slot is always the
// first row; an empty result means the cursor slot itself is missing,
// which is a data integrity failure.
func (r *Repository) FetchNextSlotInfos(ctx context.Context, startSlot uint64, limit int) ([]models.Slot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT slot, blockHeight, blockTime
		FROM vwSlotsUntilCheckpoint
		WHERE slot >= $1
		ORDER BY slot ASC
		LIMIT $2`, startSlot, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch next slot infos from %d: %w", startSlot, err)
	}
	defer rows.Close()

	var slots []models.Slot
	for rows.Next() {
		var s models.Slot
		if err := rows.Scan(&s.Slot, &s.BlockHeight, &s.BlockTime); err != nil {
			return nil, fmt.Errorf("scan slot row: %w", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch next slot infos from %d: %w", startSlot, err)
	}
	if len(slots) == 0 {
		return nil, fmt.Errorf("slot %d not found in vwSlotsUntilCheckpoint", startSlot)
	}
	return slots, nil
}

// SlotRangeForDay returns the min and max slot whose blockTime falls in
// the inclusive [minTime, maxTime] window.
func (r *Repository) SlotRangeForDay(ctx context.Context, minTime, maxTime int64) (uint64, uint64, error) {
	var minSlot, maxSlot *uint64
	err := r.db.QueryRow(ctx, `
		SELECT min(slot), max(slot)
		FROM vwSlotsUntilCheckpoint
		WHERE blockTime BETWEEN $1 AND $2`, minTime, maxTime).Scan(&minSlot, &maxSlot)
	if err != nil {
		return 0, 0, fmt.Errorf("slot range for [%d, %d]: %w", minTime, maxTime, err)
	}
	if minSlot == nil || maxSlot == nil {
		return 0, 0, fmt.Errorf("no slots in [%d, %d]", minTime, maxTime)
	}
	return *minSlot, *maxSlot, nil
}

// FetchSlotsBetween returns every slot in [minSlot, maxSlot] ascending.
func (r *Repository) FetchSlotsBetween(ctx context.Context, minSlot, maxSlot uint64) ([]models.Slot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT slot, blockHeight, blockTime
		FROM vwSlotsUntilCheckpoint
		WHERE slot BETWEEN $1 AND $2
		ORDER BY slot ASC`, minSlot, maxSlot)
	if err != nil {
		return nil, fmt.Errorf("fetch slots [%d, %d]: %w", minSlot, maxSlot, err)
	}
	defer rows.Close()

	var slots []models.Slot
	for rows.Next() {
		var s models.Slot
		if err := rows.Scan(&s.Slot, &s.BlockHeight, &s.BlockTime); err != nil {
			return nil, fmt.Errorf("scan slot row: %w", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch slots [%d, %d]: %w", minSlot, maxSlot, err)
	}
	return slots, nil
}
