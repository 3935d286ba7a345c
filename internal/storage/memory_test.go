package storage

import (
	"context"
	"testing"

	"github.com/ddelfanti/fisica-milionaria-bot/internal/domain/entities"
)

func TestMemoryBankStoreRoundTrip(t *testing.T) {
	store := NewMemoryBankStore()
	ctx := context.Background()

	qs, err := store.LoadBank(ctx)
	if err != nil {
		t.Fatalf("LoadBank: %v", err)
	}
	if len(qs) != 0 {
		t.Fatalf("fresh store holds %d questions, want 0", len(qs))
	}

	in := []entities.Question{{
		Text:          "q1",
		Answers:       []string{"a", "b", "c", "d"},
		CorrectAnswer: "a",
		Difficulty:    entities.DifficultyEasy,
	}}
	if err := store.SaveBank(ctx, in); err != nil {
		t.Fatalf("SaveBank: %v", err)
	}

	// Mutating the caller's slice must not leak into the store.
	in[0].Text = "mutated"

	qs, err = store.LoadBank(ctx)
	if err != nil {
		t.Fatalf("LoadBank: %v", err)
	}
	if len(qs) != 1 || qs[0].Text != "q1" {
		t.Fatalf("loaded %v, want the saved question unchanged", qs)
	}
}

func TestMemoryWinsStoreRoundTrip(t *testing.T) {
	store := NewMemoryWinsStore()
	ctx := context.Background()

	wins, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if wins != 0 {
		t.Fatalf("fresh store wins = %d, want 0", wins)
	}

	if err := store.Save(ctx, 4); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if wins, err = store.Load(ctx); err != nil || wins != 4 {
		t.Fatalf("Load after save = %d, %v, want 4", wins, err)
	}
}
