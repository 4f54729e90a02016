// Package engine implements the replay engine: a slot cursor, the
// program binary, and the typed account store, advanced one decoded
// instruction at a time. The engine is single-writer; only the replay
// driver mutates it.
package engine

import (
	"errors"
	"fmt"

	"sedimentology/internal/accountstore"
	"sedimentology/internal/models"
	"sedimentology/internal/whirlpool"
)

// Snapshot is the read-only pre-image of every account an instruction
// may mutate, captured immediately before the instruction is applied.
// Absent accounts (to be created by the instruction) are not present.
// A snapshot is only valid for the instruction it was captured for.
type Snapshot map[string][]byte

// Engine is the replay engine state.
type Engine struct {
	slot        models.Slot
	programData []byte
	accounts    accountstore.Store
	executor    Executor
}

// New builds an engine positioned at the given slot, typically restored
// from the latest daily checkpoint.
func New(slot models.Slot, programData []byte, accounts accountstore.Store, executor Executor) *Engine {
	return &Engine{
		slot:        slot,
		programData: programData,
		accounts:    accounts,
		executor:    executor,
	}
}

// Slot returns the engine's current slot cursor.
func (e *Engine) Slot() models.Slot {
	return e.slot
}

// ProgramData returns the current program binary.
func (e *Engine) ProgramData() []byte {
	return e.programData
}

// Accounts returns the engine's account store. Callers other than the
// driver must treat it as read-only.
func (e *Engine) Accounts() accountstore.Store {
	return e.accounts
}

// UpdateSlot advances the slot cursor. Block heights must be dense:
// every new slot's height is exactly the previous height plus one.
func (e *Engine) UpdateSlot(slot, blockHeight uint64, blockTime int64) error {
	if blockHeight != e.slot.BlockHeight+1 {
		return fmt.Errorf("block height not sequential: %d after %d (slot %d)",
			blockHeight, e.slot.BlockHeight, slot)
	}
	e.slot = models.Slot{Slot: slot, BlockHeight: blockHeight, BlockTime: blockTime}
	return nil
}

// UpdateProgramData atomically replaces the program binary. Triggered
// by a programDeploy instruction.
func (e *Engine) UpdateProgramData(data []byte) {
	stored := make([]byte, len(data))
	copy(stored, data)
	e.programData = stored
}

// ReplayInstruction applies one decoded instruction: capture the
// pre-images of the accounts the variant touches, run the executor,
// then apply the resulting writes to the account store. The returned
// snapshot is handed to downstream event derivation and is valid only
// until the next call.
func (e *Engine) ReplayInstruction(ix whirlpool.DecodedInstruction) (Snapshot, error) {
	if ix.IsProgramDeploy() {
		return nil, fmt.Errorf("programDeploy must go through UpdateProgramData (txid=%d)", ix.Txid)
	}

	writable, err := e.executor.WritableAccounts(ix)
	if err != nil {
		return nil, fmt.Errorf("resolve writable accounts for %s: %w", ix.Name, err)
	}

	snapshot := make(Snapshot, len(writable))
	for _, address := range writable {
		data, err := e.accounts.Get(address)
		if err != nil {
			if errors.Is(err, accountstore.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("snapshot %s: %w", address, err)
		}
		snapshot[address] = data
	}

	writes, err := e.executor.Execute(ix, snapshot, e.programData)
	if err != nil {
		return nil, fmt.Errorf("execute %s (txid=%d order=%d): %w", ix.Name, ix.Txid, ix.Order, err)
	}

	for address, data := range writes.Upserts {
		if err := e.accounts.Upsert(address, data); err != nil {
			return nil, fmt.Errorf("upsert %s: %w", address, err)
		}
	}
	for _, address := range writes.Deletes {
		if err := e.accounts.Delete(address); err != nil {
			return nil, fmt.Errorf("delete %s: %w", address, err)
		}
	}

	return snapshot, nil
}
