package bank

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ddelfanti/fisica-milionaria-bot/internal/domain/entities"
)

// Store is the persistence collaborator for the bank. Implementations must
// return the questions in insertion order.
type Store interface {
	LoadBank(ctx context.Context) ([]entities.Question, error)
	SaveBank(ctx context.Context, qs []entities.Question) error
}

// Service owns the in-memory bank and mirrors it to the Store. The in-memory
// copy stays authoritative: persistence failures are logged and play
// continues.
type Service struct {
	mu        sync.RWMutex
	log       *zap.Logger
	store     Store
	questions []entities.Question
}

// NewService creates a bank service over the given store.
func NewService(log *zap.Logger, store Store) *Service {
	return &Service{log: log, store: store}
}

// Load reads the persisted bank. Missing or corrupt data degrades to an
// empty bank (invalid records are discarded, not repaired), and an empty
// bank is seeded from the built-in default set.
func (s *Service) Load(ctx context.Context) {
	stored, err := s.store.LoadBank(ctx)
	if err != nil {
		s.log.Warn("load question bank failed, starting empty", zap.Error(err))
		stored = nil
	}

	valid := make([]entities.Question, 0, len(stored))
	for _, q := range stored {
		if err := q.Validate(); err != nil {
			s.log.Warn("discarding malformed bank question",
				zap.String("text", q.Text),
				zap.Error(err),
			)
			continue
		}
		valid = append(valid, q)
	}

	s.mu.Lock()
	s.questions = valid
	s.mu.Unlock()

	if len(valid) == 0 {
		s.log.Info("seeding question bank from defaults")
		s.Add(ctx, DefaultQuestions())
	}
}

// Questions returns a copy of the current bank contents, oldest first.
func (s *Service) Questions() []entities.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Question(nil), s.questions...)
}

// Add merges new questions into the bank and persists the result when the
// bank actually grew.
func (s *Service) Add(ctx context.Context, qs []entities.Question) {
	s.mu.Lock()
	merged := Merge(s.questions, qs)
	// Merge hands back the original slice untouched when every candidate was
	// a duplicate.
	grew := len(merged) != len(s.questions) ||
		(len(merged) > 0 && &merged[0] != &s.questions[0])
	s.questions = merged
	snapshot := append([]entities.Question(nil), merged...)
	s.mu.Unlock()

	if !grew {
		return
	}
	if err := s.store.SaveBank(ctx, snapshot); err != nil {
		s.log.Warn("persist question bank failed", zap.Error(err))
	}
}
