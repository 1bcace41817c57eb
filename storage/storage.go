// Package storage is the persistence collaborator contract. The engine
// treats storage as an idempotent cache keyed by signature: re-analysis
// overwrites the stored record wholesale.
package storage

import (
	"sync"

	"github.com/screenerbotio/ScreenerBot-sub002/txanalysis"
)

// Store persists classified transaction records keyed by signature.
type Store interface {
	Persist(signature string, tx *txanalysis.Transaction) error
	Load(signature string) (*txanalysis.Transaction, bool, error)
	ListKnownSignatures() (map[string]struct{}, error)
}

// Memory is a concurrency-safe in-memory Store, used by tests and the
// debug tooling.
type Memory struct {
	mu  sync.RWMutex
	txs map[string]*txanalysis.Transaction
}

func NewMemory() *Memory {
	return &Memory{txs: make(map[string]*txanalysis.Transaction)}
}

func (m *Memory) Persist(signature string, tx *txanalysis.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs[signature] = tx
	return nil
}

func (m *Memory) Load(signature string) (*txanalysis.Transaction, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tx, ok := m.txs[signature]
	return tx, ok, nil
}

func (m *Memory) ListKnownSignatures() (map[string]struct{}, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	known := make(map[string]struct{}, len(m.txs))
	for sig := range m.txs {
		known[sig] = struct{}{}
	}
	return known, nil
}
