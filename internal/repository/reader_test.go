package repository

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"sedimentology/internal/models"
	"sedimentology/internal/whirlpool"
)

func mustPack(t *testing.T, slot uint64, index uint32) uint64 {
	t.Helper()
	return slot<<24 | uint64(index)
}

func TestBuildSlotRecordsSingleSlot(t *testing.T) {
	// spec scenario: one slot, one transaction, one swap, no balances
	slots := []models.Slot{{Slot: 100, BlockHeight: 10, BlockTime: 1704067200}}
	txs := []TxRow{{Txid: mustPack(t, 100, 0), Signature: "sigA", Payer: "P1"}}
	ixs := []IxRow{{Txid: mustPack(t, 100, 0), Order: 0, Name: whirlpool.NameSwap, Payload: []byte(`{"dataAmount":"1"}`)}}

	records, err := BuildSlotRecords(slots, txs, nil, ixs)
	if err != nil {
		t.Fatalf("BuildSlotRecords: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	line, err := json.Marshal(records[0])
	if err != nil {
		t.Fatal(err)
	}
	want := `{"slot":100,"block_height":10,"block_time":1704067200,"transactions":[{"index":0,"signature":"sigA","payer":"P1","balances":[],"instructions":[{"name":"swap","payload":{"dataAmount":"1"}}]}]}`
	if string(line) != want {
		t.Errorf("record json:\n got %s\nwant %s", line, want)
	}
}

func TestBuildSlotRecordsEmptySlot(t *testing.T) {
	slots := []models.Slot{
		{Slot: 100, BlockHeight: 10, BlockTime: 1000},
		{Slot: 101, BlockHeight: 11, BlockTime: 1001},
	}
	txs := []TxRow{{Txid: mustPack(t, 101, 0), Signature: "s", Payer: "p"}}

	records, err := BuildSlotRecords(slots, txs, nil, nil)
	if err != nil {
		t.Fatalf("BuildSlotRecords: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want one per input slot", len(records))
	}
	if len(records[0].Transactions) != 0 {
		t.Errorf("slot 100 should be empty, got %d txs", len(records[0].Transactions))
	}
	line, _ := json.Marshal(records[0])
	if !strings.Contains(string(line), `"transactions":[]`) {
		t.Errorf("empty slot must serialize an empty array: %s", line)
	}
	if len(records[1].Transactions) != 1 {
		t.Errorf("slot 101 should carry the tx")
	}
}

func TestBuildSlotRecordsClientSideSort(t *testing.T) {
	slots := []models.Slot{{Slot: 50, BlockHeight: 5, BlockTime: 500}}

	// everything deliberately shuffled
	txs := []TxRow{
		{Txid: mustPack(t, 50, 2), Signature: "sig2", Payer: "p"},
		{Txid: mustPack(t, 50, 0), Signature: "sig0", Payer: "p"},
		{Txid: mustPack(t, 50, 1), Signature: "sig1", Payer: "p"},
	}
	balances := []BalanceRow{
		{Txid: mustPack(t, 50, 0), Account: "zeta", Pre: 5, Post: 6},
		{Txid: mustPack(t, 50, 0), Account: "alpha", Pre: 1, Post: 2},
	}
	ixs := []IxRow{
		{Txid: mustPack(t, 50, 1), Order: 1, Name: whirlpool.NameCollectFees, Payload: []byte(`{}`)},
		{Txid: mustPack(t, 50, 1), Order: 0, Name: whirlpool.NameSwap, Payload: []byte(`{}`)},
	}

	records, err := BuildSlotRecords(slots, txs, balances, ixs)
	if err != nil {
		t.Fatalf("BuildSlotRecords: %v", err)
	}
	got := records[0].Transactions

	for i, want := range []string{"sig0", "sig1", "sig2"} {
		if got[i].Signature != want {
			t.Errorf("tx[%d].Signature = %s, want %s", i, got[i].Signature, want)
		}
		if got[i].Index != uint32(i) {
			t.Errorf("tx[%d].Index = %d, want %d", i, got[i].Index, i)
		}
	}
	if got[0].Balances[0].Account != "alpha" || got[0].Balances[1].Account != "zeta" {
		t.Errorf("balances not account-ordered: %+v", got[0].Balances)
	}
	if got[1].Instructions[0].Name != whirlpool.NameSwap || got[1].Instructions[1].Name != whirlpool.NameCollectFees {
		t.Errorf("instructions not order-ordered: %+v", got[1].Instructions)
	}
}

func TestBuildSlotRecordsDeterministic(t *testing.T) {
	slots := []models.Slot{
		{Slot: 10, BlockHeight: 1, BlockTime: 100},
		{Slot: 11, BlockHeight: 2, BlockTime: 101},
	}
	rows := func() ([]TxRow, []BalanceRow, []IxRow) {
		return []TxRow{
				{Txid: mustPack(t, 11, 0), Signature: "b", Payer: "p"},
				{Txid: mustPack(t, 10, 0), Signature: "a", Payer: "p"},
			},
			[]BalanceRow{{Txid: mustPack(t, 10, 0), Account: "x", Pre: 1, Post: 2}},
			[]IxRow{{Txid: mustPack(t, 11, 0), Order: 0, Name: whirlpool.NameSwap, Payload: []byte(`{}`)}}
	}

	encode := func() []byte {
		txs, bals, ixs := rows()
		records, err := BuildSlotRecords(slots, txs, bals, ixs)
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		for _, rec := range records {
			line, _ := json.Marshal(rec)
			buf.Write(line)
			buf.WriteByte('\n')
		}
		return buf.Bytes()
	}

	if !bytes.Equal(encode(), encode()) {
		t.Error("two runs over identical input produced different output")
	}
}

func TestBuildSlotRecordsRejectsStrayRows(t *testing.T) {
	slots := []models.Slot{{Slot: 10, BlockHeight: 1, BlockTime: 100}}
	txs := []TxRow{{Txid: mustPack(t, 12, 0), Signature: "stray", Payer: "p"}}
	if _, err := BuildSlotRecords(slots, txs, nil, nil); err == nil {
		t.Error("rows beyond the slot list must be an error")
	}

	if _, err := BuildSlotRecords(nil, nil, nil, nil); err == nil {
		t.Error("empty slot list must be an error")
	}
}

func TestBuildSlotRecordsRejectsOrphanRows(t *testing.T) {
	slots := []models.Slot{{Slot: 10, BlockHeight: 1, BlockTime: 100}}
	txs := []TxRow{{Txid: mustPack(t, 10, 0), Signature: "s", Payer: "p"}}

	// balance row whose txid has no owning transaction
	orphanBalances := []BalanceRow{{Txid: mustPack(t, 10, 1), Account: "a", Pre: 1, Post: 2}}
	if _, err := BuildSlotRecords(slots, txs, orphanBalances, nil); err == nil {
		t.Error("balance rows without a transaction must be an error")
	}

	// instruction row whose txid has no owning transaction
	orphanIxs := []IxRow{{Txid: mustPack(t, 10, 1), Order: 0, Name: whirlpool.NameSwap, Payload: []byte(`{}`)}}
	if _, err := BuildSlotRecords(slots, txs, nil, orphanIxs); err == nil {
		t.Error("instruction rows without a transaction must be an error")
	}
}

func TestBuildSlotRecordsRejectsUnknownVariant(t *testing.T) {
	slots := []models.Slot{{Slot: 10, BlockHeight: 1, BlockTime: 100}}
	txs := []TxRow{{Txid: mustPack(t, 10, 0), Signature: "s", Payer: "p"}}
	ixs := []IxRow{{Txid: mustPack(t, 10, 0), Order: 0, Name: "mysteryIx", Payload: []byte(`{}`)}}
	if _, err := BuildSlotRecords(slots, txs, nil, ixs); err == nil {
		t.Error("unknown instruction variant must be an error")
	}
}

func TestInstructionUnionStmtShape(t *testing.T) {
	if n := strings.Count(instructionUnionStmt, "UNION ALL"); n != len(whirlpool.Names())-1 {
		t.Errorf("UNION ALL count = %d, want %d", n, len(whirlpool.Names())-1)
	}
	if strings.Contains(instructionUnionStmt, "ORDER BY") {
		t.Error("instruction union must not order server-side")
	}
	if !strings.Contains(instructionUnionStmt, "vwJsonIxsProgramDeploy") ||
		!strings.Contains(instructionUnionStmt, "vwJsonIxsInitializePoolWithAdaptiveFee") {
		t.Error("union statement missing expected views")
	}
}
