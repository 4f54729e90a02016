package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"sedimentology/internal/models"
	"sedimentology/internal/txid"
	"sedimentology/internal/whirlpool"
)

// The Slot/Txn Reader: three range scans over the packed txid range of
// a contiguous slot chunk, sorted client-side and merged into one
// JSON-lines record per slot.

// TxRow is one row from the txs table.
type TxRow struct {
	Txid      uint64
	Signature string
	Payer     string
}

// BalanceRow is one row from the balances table.
type BalanceRow struct {
	Txid    uint64
	Account string
	Pre     uint64
	Post    uint64
}

// IxRow is one row from the per-variant instruction views.
type IxRow struct {
	Txid    uint64
	Order   uint8
	Name    string
	Payload []byte
}

// instructionUnionStmt unions every per-variant view in one statement.
// A single UNION ALL view was proven too slow as a server plan, and an
// ORDER BY over the union is worse; the branches stay separate and the
// client sorts.
var instructionUnionStmt = func() string {
	var b strings.Builder
	for i, name := range whirlpool.Names() {
		if i > 0 {
			b.WriteString("\n          UNION ALL ")
		} else {
			b.WriteString("          ")
		}
		fmt.Fprintf(&b, `SELECT txid, "order", name, json_payload FROM %s WHERE txid BETWEEN $1 AND $2`, whirlpool.ViewName(name))
	}
	return b.String()
}()

// FetchSlotTransactions reassembles the per-slot transaction records
// for a contiguous, non-empty slot list. Exactly one record per input
// slot is returned, in slot order; a slot without transactions yields a
// record with an empty transactions array.
func (r *Repository) FetchSlotTransactions(ctx context.Context, slots []models.Slot) ([]models.WhirlpoolTransaction, error) {
	if len(slots) == 0 {
		return nil, fmt.Errorf("empty slot list")
	}
	minTxid, maxTxid := txid.RangeForSlots(slots[0].Slot, slots[len(slots)-1].Slot)

	txs, err := r.fetchTxRows(ctx, minTxid, maxTxid)
	if err != nil {
		return nil, err
	}
	balances, err := r.fetchBalanceRows(ctx, minTxid, maxTxid)
	if err != nil {
		return nil, err
	}
	ixs, err := r.fetchIxRows(ctx, minTxid, maxTxid)
	if err != nil {
		return nil, err
	}

	return BuildSlotRecords(slots, txs, balances, ixs)
}

func (r *Repository) fetchTxRows(ctx context.Context, minTxid, maxTxid uint64) ([]TxRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT txid, signature, toPubkeyBase58(payer) AS payer
		FROM txs
		WHERE txid BETWEEN $1 AND $2`, minTxid, maxTxid)
	if err != nil {
		return nil, fmt.Errorf("fetch txs [%d, %d]: %w", minTxid, maxTxid, err)
	}
	defer rows.Close()

	var out []TxRow
	for rows.Next() {
		var row TxRow
		if err := rows.Scan(&row.Txid, &row.Signature, &row.Payer); err != nil {
			return nil, fmt.Errorf("scan tx row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch txs [%d, %d]: %w", minTxid, maxTxid, err)
	}
	return out, nil
}

func (r *Repository) fetchBalanceRows(ctx context.Context, minTxid, maxTxid uint64) ([]BalanceRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT txid, toPubkeyBase58(account) AS account, pre, post
		FROM balances
		WHERE txid BETWEEN $1 AND $2`, minTxid, maxTxid)
	if err != nil {
		return nil, fmt.Errorf("fetch balances [%d, %d]: %w", minTxid, maxTxid, err)
	}
	defer rows.Close()

	var out []BalanceRow
	for rows.Next() {
		var row BalanceRow
		if err := rows.Scan(&row.Txid, &row.Account, &row.Pre, &row.Post); err != nil {
			return nil, fmt.Errorf("scan balance row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch balances [%d, %d]: %w", minTxid, maxTxid, err)
	}
	return out, nil
}

func (r *Repository) fetchIxRows(ctx context.Context, minTxid, maxTxid uint64) ([]IxRow, error) {
	rows, err := r.db.Query(ctx, instructionUnionStmt, minTxid, maxTxid)
	if err != nil {
		return nil, fmt.Errorf("fetch instructions [%d, %d]: %w", minTxid, maxTxid, err)
	}
	defer rows.Close()

	var out []IxRow
	for rows.Next() {
		var row IxRow
		if err := rows.Scan(&row.Txid, &row.Order, &row.Name, &row.Payload); err != nil {
			return nil, fmt.Errorf("scan instruction row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch instructions [%d, %d]: %w", minTxid, maxTxid, err)
	}
	return out, nil
}

// BuildSlotRecords merges the three row sets into one record per slot.
// Rows arrive unsorted (the instruction union carries no ORDER BY);
// the merge sorts them here: transactions by txid, balances by
// (txid, account), instructions by (txid, order).
func BuildSlotRecords(slots []models.Slot, txs []TxRow, balances []BalanceRow, ixs []IxRow) ([]models.WhirlpoolTransaction, error) {
	if len(slots) == 0 {
		return nil, fmt.Errorf("empty slot list")
	}

	sort.Slice(txs, func(i, j int) bool { return txs[i].Txid < txs[j].Txid })
	sort.Slice(balances, func(i, j int) bool {
		if balances[i].Txid != balances[j].Txid {
			return balances[i].Txid < balances[j].Txid
		}
		return balances[i].Account < balances[j].Account
	})
	sort.Slice(ixs, func(i, j int) bool {
		if ixs[i].Txid != ixs[j].Txid {
			return ixs[i].Txid < ixs[j].Txid
		}
		return ixs[i].Order < ixs[j].Order
	})

	records := make([]models.WhirlpoolTransaction, 0, len(slots))
	for _, slot := range slots {
		upper := txid.UpperBound(slot.Slot)
		slotTxs := []models.Transaction{}

		for len(txs) > 0 && txs[0].Txid < upper {
			tx := txs[0]
			txs = txs[1:]

			txBalances := []models.TransactionBalance{}
			for len(balances) > 0 && balances[0].Txid == tx.Txid {
				txBalances = append(txBalances, models.TransactionBalance{
					Account: balances[0].Account,
					Pre:     balances[0].Pre,
					Post:    balances[0].Post,
				})
				balances = balances[1:]
			}

			txIxs := []models.TransactionInstruction{}
			for len(ixs) > 0 && ixs[0].Txid == tx.Txid {
				decoded, err := whirlpool.Decode(ixs[0].Txid, ixs[0].Order, ixs[0].Name, ixs[0].Payload)
				if err != nil {
					return nil, err
				}
				txIxs = append(txIxs, models.TransactionInstruction{
					Name:    decoded.Name,
					Payload: decoded.Payload,
				})
				ixs = ixs[1:]
			}

			slotTxs = append(slotTxs, models.Transaction{
				Index:        txid.Index(tx.Txid),
				Signature:    tx.Signature,
				Payer:        tx.Payer,
				Balances:     txBalances,
				Instructions: txIxs,
			})
		}

		records = append(records, models.WhirlpoolTransaction{
			Slot:         slot.Slot,
			BlockHeight:  slot.BlockHeight,
			BlockTime:    slot.BlockTime,
			Transactions: slotTxs,
		})
	}

	// leftover rows mean the input slot list was not contiguous, or a
	// balance/instruction row carries a txid no transaction owns
	if len(txs) > 0 {
		return nil, fmt.Errorf("%d transaction rows outside the slot list (first txid=%d)", len(txs), txs[0].Txid)
	}
	if len(balances) > 0 {
		return nil, fmt.Errorf("%d balance rows without a transaction (first txid=%d)", len(balances), balances[0].Txid)
	}
	if len(ixs) > 0 {
		return nil, fmt.Errorf("%d instruction rows without a transaction (first txid=%d)", len(ixs), ixs[0].Txid)
	}
	return records, nil
}

// FetchInstructionsInSlot returns every decoded instruction of one
// slot, sorted by (txid, order). Used by the replay driver.
func (r *Repository) FetchInstructionsInSlot(ctx context.Context, slot uint64) ([]whirlpool.DecodedInstruction, error) {
	minTxid, maxTxid := txid.RangeForSlots(slot, slot)
	rows, err := r.fetchIxRows(ctx, minTxid, maxTxid)
	if err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Txid != rows[j].Txid {
			return rows[i].Txid < rows[j].Txid
		}
		return rows[i].Order < rows[j].Order
	})

	out := make([]whirlpool.DecodedInstruction, 0, len(rows))
	for _, row := range rows {
		decoded, err := whirlpool.Decode(row.Txid, row.Order, row.Name, row.Payload)
		if err != nil {
			return nil, err
		}
		out = append(out, decoded)
	}
	return out, nil
}
