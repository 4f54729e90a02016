package repository

import (
	"errors"
	"testing"

	"sedimentology/internal/accountstore"
)

// brokenStore fails mid-iteration, like an embedded store hitting an
// I/O error.
type brokenStore struct {
	accountstore.Store
}

func (s *brokenStore) Traverse(fn func(address string, data []byte) error) error {
	if err := fn("A", []byte{1}); err != nil {
		return err
	}
	return errors.New("iterator: read failed")
}

func TestStateAccountsSorted(t *testing.T) {
	store := accountstore.NewMemoryStore()
	defer store.Close()
	for _, addr := range []string{"zeta", "alpha", "mid"} {
		if err := store.Upsert(addr, []byte(addr)); err != nil {
			t.Fatal(err)
		}
	}

	accounts, err := stateAccounts(store)
	if err != nil {
		t.Fatalf("stateAccounts: %v", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	if len(accounts) != len(want) {
		t.Fatalf("got %d accounts, want %d", len(accounts), len(want))
	}
	for i, w := range want {
		if accounts[i].Pubkey != w {
			t.Errorf("accounts[%d].Pubkey = %s, want %s", i, accounts[i].Pubkey, w)
		}
	}
}

func TestStateAccountsPropagatesTraverseError(t *testing.T) {
	if _, err := stateAccounts(&brokenStore{}); err == nil {
		t.Error("a failed iteration must not yield a truncated state")
	}
}
