package engine

import (
	"encoding/json"
	"strings"
	"testing"

	"sedimentology/internal/accountstore"
	"sedimentology/internal/models"
	"sedimentology/internal/whirlpool"
)

// scriptedExecutor reads the writable account list and the writes to
// apply straight out of the instruction payload.
type scriptedExecutor struct{}

type scriptedPayload struct {
	Writable []string          `json:"writable"`
	Upserts  map[string]string `json:"upserts"`
	Deletes  []string          `json:"deletes"`
}

func (scriptedExecutor) WritableAccounts(ix whirlpool.DecodedInstruction) ([]string, error) {
	var p scriptedPayload
	if err := json.Unmarshal(ix.Payload, &p); err != nil {
		return nil, err
	}
	return p.Writable, nil
}

func (scriptedExecutor) Execute(ix whirlpool.DecodedInstruction, snapshot Snapshot, programData []byte) (Writes, error) {
	var p scriptedPayload
	if err := json.Unmarshal(ix.Payload, &p); err != nil {
		return Writes{}, err
	}
	w := Writes{Upserts: map[string][]byte{}, Deletes: p.Deletes}
	for k, v := range p.Upserts {
		w.Upserts[k] = []byte(v)
	}
	return w, nil
}

func scriptedIx(t *testing.T, p scriptedPayload) whirlpool.DecodedInstruction {
	t.Helper()
	payload, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	ix, err := whirlpool.Decode(100<<24, 0, whirlpool.NameSwap, payload)
	if err != nil {
		t.Fatal(err)
	}
	return ix
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	store := accountstore.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	return New(models.Slot{Slot: 100, BlockHeight: 10, BlockTime: 1704067200},
		[]byte("program-v1"), store, scriptedExecutor{})
}

func TestUpdateSlotDenseHeights(t *testing.T) {
	e := newTestEngine(t)

	if err := e.UpdateSlot(103, 11, 1704067201); err != nil {
		t.Fatalf("UpdateSlot: %v", err)
	}
	if got := e.Slot(); got.Slot != 103 || got.BlockHeight != 11 {
		t.Errorf("slot = %+v", got)
	}

	// height gap is fatal
	if err := e.UpdateSlot(110, 13, 1704067202); err == nil {
		t.Error("expected error on height gap")
	}
	// height repeat is fatal
	if err := e.UpdateSlot(104, 11, 1704067202); err == nil {
		t.Error("expected error on repeated height")
	}
}

func TestUpdateProgramData(t *testing.T) {
	e := newTestEngine(t)
	buf := []byte("program-v2")
	e.UpdateProgramData(buf)
	buf[0] = 'X'
	if string(e.ProgramData()) != "program-v2" {
		t.Error("engine aliased caller buffer")
	}
}

func TestReplayInstructionSnapshotAndWrites(t *testing.T) {
	e := newTestEngine(t)
	e.Accounts().Upsert("pool", []byte("pool-pre"))
	e.Accounts().Upsert("untouched", []byte("keep"))

	snapshot, err := e.ReplayInstruction(scriptedIx(t, scriptedPayload{
		Writable: []string{"pool", "position"}, // position does not exist yet
		Upserts:  map[string]string{"pool": "pool-post", "position": "pos-new"},
	}))
	if err != nil {
		t.Fatalf("ReplayInstruction: %v", err)
	}

	// snapshot carries pre-images of existing writable accounts only
	if string(snapshot["pool"]) != "pool-pre" {
		t.Errorf("snapshot[pool] = %q", snapshot["pool"])
	}
	if _, ok := snapshot["position"]; ok {
		t.Error("snapshot contains pre-image for account that did not exist")
	}

	// store reflects the post-state
	got, _ := e.Accounts().Get("pool")
	if string(got) != "pool-post" {
		t.Errorf("pool = %q", got)
	}
	got, _ = e.Accounts().Get("position")
	if string(got) != "pos-new" {
		t.Errorf("position = %q", got)
	}
	got, _ = e.Accounts().Get("untouched")
	if string(got) != "keep" {
		t.Errorf("untouched = %q", got)
	}
}

func TestReplayInstructionDelete(t *testing.T) {
	e := newTestEngine(t)
	e.Accounts().Upsert("position", []byte("pos"))

	_, err := e.ReplayInstruction(scriptedIx(t, scriptedPayload{
		Writable: []string{"position"},
		Deletes:  []string{"position"},
	}))
	if err != nil {
		t.Fatalf("ReplayInstruction: %v", err)
	}
	if _, err := e.Accounts().Get("position"); err == nil {
		t.Error("position still present after delete")
	}
}

func TestReplayInstructionRejectsProgramDeploy(t *testing.T) {
	e := newTestEngine(t)
	ix, err := whirlpool.Decode(1, 0, whirlpool.NameProgramDeploy, []byte(`{"dataProgramData":""}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.ReplayInstruction(ix); err == nil {
		t.Error("programDeploy must not reach ReplayInstruction")
	}
}

func TestExecutorRegistry(t *testing.T) {
	RegisterExecutor("engine-test-scripted", scriptedExecutor{})

	if _, err := LookupExecutor("engine-test-scripted"); err != nil {
		t.Fatalf("LookupExecutor: %v", err)
	}
	if _, err := LookupExecutor("engine-test-nope"); err == nil ||
		!strings.Contains(err.Error(), "unknown executor") {
		t.Errorf("LookupExecutor(nope) err = %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("duplicate registration must panic")
		}
	}()
	RegisterExecutor("engine-test-scripted", scriptedExecutor{})
}
