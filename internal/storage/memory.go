// Package storage provides in-memory implementations of the persistence
// collaborators, used in tests and as the degraded mode when no database is
// configured.
package storage

import (
	"context"
	"sync"

	"github.com/ddelfanti/fisica-milionaria-bot/internal/domain/entities"
)

// MemoryBankStore keeps the question bank in memory.
type MemoryBankStore struct {
	mu sync.RWMutex
	qs []entities.Question
}

// NewMemoryBankStore creates an empty in-memory bank store.
func NewMemoryBankStore() *MemoryBankStore {
	return &MemoryBankStore{}
}

func (s *MemoryBankStore) LoadBank(_ context.Context) ([]entities.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Question(nil), s.qs...), nil
}

func (s *MemoryBankStore) SaveBank(_ context.Context, qs []entities.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.qs = append([]entities.Question(nil), qs...)
	return nil
}

// MemoryWinsStore keeps the win counter in memory.
type MemoryWinsStore struct {
	mu   sync.RWMutex
	wins int
}

// NewMemoryWinsStore creates a win store starting at zero.
func NewMemoryWinsStore() *MemoryWinsStore {
	return &MemoryWinsStore{}
}

func (s *MemoryWinsStore) Load(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wins, nil
}

func (s *MemoryWinsStore) Save(_ context.Context, wins int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wins = wins
	return nil
}
