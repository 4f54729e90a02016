package engine

import (
	"fmt"
	"sort"
	"sync"

	"sedimentology/internal/whirlpool"
)

// Writes is the post-image an executor produces for one instruction:
// accounts to upsert with their new data, and accounts to delete.
type Writes struct {
	Upserts map[string][]byte
	Deletes []string
}

// Executor applies the domain semantics of a single decoded instruction.
// Implementations wrap the sandboxed on-chain program runtime and are
// linked in separately; this package only defines the seam.
//
// WritableAccounts pre-resolves the accounts the instruction may touch
// so the engine can capture their pre-images. Execute receives that
// snapshot read-only together with the current program binary and must
// not mutate either.
type Executor interface {
	WritableAccounts(ix whirlpool.DecodedInstruction) ([]string, error)
	Execute(ix whirlpool.DecodedInstruction, snapshot Snapshot, programData []byte) (Writes, error)
}

var (
	executorsMu sync.RWMutex
	executors   = make(map[string]Executor)
)

// RegisterExecutor makes an executor available under the given name,
// typically from an init function of the implementing package. It
// panics on a duplicate or nil registration, like database/sql.Register.
func RegisterExecutor(name string, e Executor) {
	executorsMu.Lock()
	defer executorsMu.Unlock()
	if e == nil {
		panic("engine: RegisterExecutor with nil executor")
	}
	if _, dup := executors[name]; dup {
		panic("engine: RegisterExecutor called twice for " + name)
	}
	executors[name] = e
}

// LookupExecutor returns the executor registered under name.
func LookupExecutor(name string) (Executor, error) {
	executorsMu.RLock()
	defer executorsMu.RUnlock()
	e, ok := executors[name]
	if !ok {
		return nil, fmt.Errorf("engine: unknown executor %q (registered: %v)", name, registeredExecutors())
	}
	return e, nil
}

func registeredExecutors() []string {
	names := make([]string, 0, len(executors))
	for n := range executors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
