// Package txid implements the packed transaction identifier used across
// the whole pipeline: txid = (slot << 24) | index. Range scans over txid
// are how every component turns a slot range into a row range.
package txid

import "fmt"

// IndexBits is the number of low bits reserved for the in-slot index.
const IndexBits = 24

// MaxIndex is the largest in-slot transaction index that can be packed.
const MaxIndex = (1 << IndexBits) - 1

// Pack combines a slot and an in-slot index into a txid.
func Pack(slot uint64, index uint32) (uint64, error) {
	if index > MaxIndex {
		return 0, fmt.Errorf("index %d exceeds %d bits", index, IndexBits)
	}
	return slot<<IndexBits | uint64(index), nil
}

// Slot extracts the slot a txid belongs to.
func Slot(txid uint64) uint64 {
	return txid >> IndexBits
}

// Index extracts the in-slot transaction index.
func Index(txid uint64) uint32 {
	return uint32(txid & MaxIndex)
}

// RangeForSlots returns the inclusive txid range covering every
// transaction in slots [minSlot, maxSlot].
func RangeForSlots(minSlot, maxSlot uint64) (minTxid, maxTxid uint64) {
	return minSlot << IndexBits, ((maxSlot + 1) << IndexBits) - 1
}

// UpperBound returns the first txid beyond the given slot. Rows with
// txid < UpperBound(slot) belong to slot or an earlier one.
func UpperBound(slot uint64) uint64 {
	return (slot + 1) << IndexBits
}
