package repository

import (
	"context"
	"fmt"
	"sort"

	"sedimentology/internal/accountstore"
	"sedimentology/internal/engine"
	"sedimentology/internal/models"
	"sedimentology/internal/txid"
)

// FetchCheckpoint loads the daily checkpoint row for a date, with the
// slot metadata joined in.
func (r *Repository) FetchCheckpoint(ctx context.Context, date uint32) (*models.Checkpoint, error) {
	var cp models.Checkpoint
	err := r.db.QueryRow(ctx, `
		SELECT states.date, states.slot, slots.blockHeight, slots.blockTime,
		       states.programCompressedData, states.accountCompressedData
		FROM states LEFT OUTER JOIN slots ON states.slot = slots.slot
		WHERE states.date = $1`, date).
		Scan(&cp.Date, &cp.Slot, &cp.BlockHeight, &cp.BlockTime,
			&cp.ProgramCompressed, &cp.AccountCompressed)
	if err != nil {
		return nil, fmt.Errorf("fetch checkpoint %d: %w", date, err)
	}
	return &cp, nil
}

// LatestCheckpointDate returns the newest date in the states table.
func (r *Repository) LatestCheckpointDate(ctx context.Context) (uint32, error) {
	var date *uint32
	err := r.db.QueryRow(ctx, `SELECT max(date) FROM states`).Scan(&date)
	if err != nil {
		return 0, fmt.Errorf("fetch latest checkpoint date: %w", err)
	}
	if date == nil {
		return 0, fmt.Errorf("states table is empty")
	}
	return *date, nil
}

// RestoreEngineState decodes a checkpoint into a fresh engine state:
// the slot cursor, the program binary, and the account set loaded into
// the given store.
func (r *Repository) RestoreEngineState(ctx context.Context, date uint32, accounts accountstore.Store) (models.Slot, []byte, error) {
	cp, err := r.FetchCheckpoint(ctx, date)
	if err != nil {
		return models.Slot{}, nil, err
	}
	programData, err := engine.DecodeProgram(cp.ProgramCompressed)
	if err != nil {
		return models.Slot{}, nil, fmt.Errorf("checkpoint %d: %w", date, err)
	}
	if err := engine.DecodeAccounts(cp.AccountCompressed, accounts); err != nil {
		return models.Slot{}, nil, fmt.Errorf("checkpoint %d: %w", date, err)
	}
	slot := models.Slot{Slot: cp.Slot, BlockHeight: cp.BlockHeight, BlockTime: cp.BlockTime}
	return slot, programData, nil
}

// BuildState reconstructs the full state artifact for a date from its
// checkpoint: the decoded account set sorted by pubkey, the token
// decimals known up to the checkpoint slot, and the program binary.
func (r *Repository) BuildState(ctx context.Context, date uint32) (*models.WhirlpoolState, error) {
	cp, err := r.FetchCheckpoint(ctx, date)
	if err != nil {
		return nil, err
	}

	programData, err := engine.DecodeProgram(cp.ProgramCompressed)
	if err != nil {
		return nil, fmt.Errorf("checkpoint %d: %w", date, err)
	}

	store := accountstore.NewMemoryStore()
	defer store.Close()
	if err := engine.DecodeAccounts(cp.AccountCompressed, store); err != nil {
		return nil, fmt.Errorf("checkpoint %d: %w", date, err)
	}

	accounts, err := stateAccounts(store)
	if err != nil {
		return nil, fmt.Errorf("checkpoint %d: %w", date, err)
	}

	_, maxTxid := txid.RangeForSlots(cp.Slot, cp.Slot)
	decimals, err := r.FetchTokenDecimals(ctx, maxTxid)
	if err != nil {
		return nil, err
	}

	return &models.WhirlpoolState{
		Slot:        cp.Slot,
		BlockHeight: cp.BlockHeight,
		BlockTime:   cp.BlockTime,
		Accounts:    accounts,
		Decimals:    decimals,
		ProgramData: programData,
	}, nil
}

// stateAccounts drains an account store into the artifact's sorted
// account list. A store that fails mid-iteration must not yield a
// truncated state.
func stateAccounts(store accountstore.Store) ([]models.StateAccount, error) {
	var accounts []models.StateAccount
	if err := store.Traverse(func(address string, data []byte) error {
		accounts = append(accounts, models.StateAccount{Pubkey: address, Data: data})
		return nil
	}); err != nil {
		return nil, fmt.Errorf("traverse accounts: %w", err)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Pubkey < accounts[j].Pubkey })
	return accounts, nil
}
