// Package deriver owns the derived-artifact contract of the archiver:
// the event JSON schema and the registration seam for implementations
// of the event / OHLCV derivation math.
//
// Derivation itself is a pure function over files: previous-day state,
// token list and transaction file in, event file out; events back in,
// OHLCV files out. Implementations register by name and the archiver
// resolves them from configuration, so a build without any registered
// deriver can still run profiles that only produce primary artifacts.
package deriver

import (
	"fmt"
	"sort"
	"sync"
)

// Deriver produces the derived artifacts for one day. All paths refer
// to gzip files in the archiver's working directory.
type Deriver interface {
	// DeriveEvents reads the previous day's state artifact, the day's
	// token artifact and the day's transaction artifact, and writes the
	// event artifact: one JSON object per line, schema per this package.
	DeriveEvents(prevStatePath, tokenPath, transactionPath, eventOutPath string) error

	// DeriveOHLCV aggregates the day's events into daily and minutely
	// OHLCV artifacts.
	DeriveOHLCV(prevStatePath, tokenPath, eventPath, dailyOutPath, minutelyOutPath string) error
}

var (
	deriversMu sync.RWMutex
	derivers   = make(map[string]Deriver)
)

// Register makes a deriver available under a name. It panics on a
// duplicate or nil registration, mirroring database/sql.Register.
func Register(name string, d Deriver) {
	deriversMu.Lock()
	defer deriversMu.Unlock()
	if d == nil {
		panic("deriver: Register deriver is nil")
	}
	if _, dup := derivers[name]; dup {
		panic("deriver: Register called twice for deriver " + name)
	}
	derivers[name] = d
}

// Lookup returns the deriver registered under name.
func Lookup(name string) (Deriver, error) {
	deriversMu.RLock()
	defer deriversMu.RUnlock()
	d, ok := derivers[name]
	if !ok {
		return nil, fmt.Errorf("deriver: unknown deriver %q (forgotten import?)", name)
	}
	return d, nil
}

// Registered returns the names of all registered derivers, sorted.
func Registered() []string {
	deriversMu.RLock()
	defer deriversMu.RUnlock()
	names := make([]string, 0, len(derivers))
	for name := range derivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
