package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ddelfanti/fisica-milionaria-bot/internal/domain/entities"
)

// BankRepository persists the question bank. Row order (by id) is the
// insertion order the eviction policy depends on.
type BankRepository struct {
	pool *pgxpool.Pool
}

// NewBankRepository creates a new BankRepository with the provided pool.
func NewBankRepository(pool *pgxpool.Pool) *BankRepository {
	return &BankRepository{pool: pool}
}

// LoadBank returns the persisted questions, oldest first.
func (r *BankRepository) LoadBank(ctx context.Context) ([]entities.Question, error) {
	query := `
		SELECT question_text, answers, correct_answer, difficulty
		FROM bank_questions
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load bank: %w", err)
	}
	defer rows.Close()

	var out []entities.Question
	for rows.Next() {
		var q entities.Question
		var difficulty string
		if err := rows.Scan(&q.Text, &q.Answers, &q.CorrectAnswer, &difficulty); err != nil {
			return nil, fmt.Errorf("scan bank question: %w", err)
		}
		q.Difficulty = entities.Difficulty(difficulty)
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bank questions: %w", err)
	}

	return out, nil
}

// SaveBank replaces the persisted bank with the given questions, preserving
// their order.
func (r *BankRepository) SaveBank(ctx context.Context, qs []entities.Question) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save bank: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM bank_questions`); err != nil {
		return fmt.Errorf("clear bank: %w", err)
	}

	query := `
		INSERT INTO bank_questions (question_text, answers, correct_answer, difficulty)
		VALUES ($1, $2, $3, $4)
	`
	for _, q := range qs {
		if _, err := tx.Exec(ctx, query, q.Text, q.Answers, q.CorrectAnswer, string(q.Difficulty)); err != nil {
			return fmt.Errorf("insert bank question: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save bank: %w", err)
	}
	return nil
}
