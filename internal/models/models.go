// Package models holds the row and record types shared across the
// pipeline. JSON field order follows struct declaration order; the
// archive artifacts depend on it for byte determinism, so do not
// reorder fields.
package models

import "encoding/json"

// Slot is one tick of the source chain. Immutable once observed.
type Slot struct {
	Slot        uint64 `json:"slot"`
	BlockHeight uint64 `json:"block_height"`
	BlockTime   int64  `json:"block_time"`
}

// WhirlpoolTransaction is the JSON-lines record the Reader emits for a
// single slot: the slot metadata plus every transaction in index order.
type WhirlpoolTransaction struct {
	Slot         uint64        `json:"slot"`
	BlockHeight  uint64        `json:"block_height"`
	BlockTime    int64         `json:"block_time"`
	Transactions []Transaction `json:"transactions"`
}

// Transaction is one transaction within a slot. Balances are ordered by
// account ascending, instructions by their on-chain order.
type Transaction struct {
	Index        uint32                   `json:"index"`
	Signature    string                   `json:"signature"`
	Payer        string                   `json:"payer"`
	Balances     []TransactionBalance     `json:"balances"`
	Instructions []TransactionInstruction `json:"instructions"`
}

// TransactionBalance is a pre/post token balance pair for one account.
type TransactionBalance struct {
	Account string `json:"account"`
	Pre     uint64 `json:"pre"`
	Post    uint64 `json:"post"`
}

// TransactionInstruction is a decoded instruction as it appears in the
// transaction record: the variant name plus its opaque JSON payload.
type TransactionInstruction struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// Checkpoint is the persisted daily snapshot row from the states table.
// The compressed blobs use the codec in internal/engine.
type Checkpoint struct {
	Date              uint32
	Slot              uint64
	BlockHeight       uint64
	BlockTime         int64
	ProgramCompressed []byte
	AccountCompressed []byte
}

// WhirlpoolState is the daily state artifact: the full account set at
// the checkpoint slot plus token decimals and the program binary.
type WhirlpoolState struct {
	Slot        uint64          `json:"slot"`
	BlockHeight uint64          `json:"block_height"`
	BlockTime   int64           `json:"block_time"`
	Accounts    []StateAccount  `json:"accounts"`
	Decimals    []TokenDecimals `json:"decimals"`
	ProgramData []byte          `json:"program_data"`
}

// WhirlpoolToken is the daily token artifact: every mint whose
// decimals are known at the checkpoint slot.
type WhirlpoolToken struct {
	Slot        uint64          `json:"slot"`
	BlockHeight uint64          `json:"block_height"`
	BlockTime   int64           `json:"block_time"`
	Tokens      []TokenDecimals `json:"tokens"`
}

// StateAccount is one account in the state artifact, sorted by pubkey.
type StateAccount struct {
	Pubkey string `json:"pubkey"`
	Data   []byte `json:"data"`
}

// TokenDecimals maps a token mint to its decimals.
type TokenDecimals struct {
	Mint     string `json:"mint"`
	Decimals uint8  `json:"decimals"`
}

// Cursor is a distributor progress record: the last slot mirrored to
// the destination, with its height and time.
type Cursor struct {
	Slot        uint64
	BlockHeight uint64
	BlockTime   int64
}
