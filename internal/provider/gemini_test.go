package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/ddelfanti/fisica-milionaria-bot/internal/bank"
	"github.com/ddelfanti/fisica-milionaria-bot/internal/domain/entities"
)

// geminiPayload wraps a question batch in the generateContent response shape.
func geminiPayload(t *testing.T, questions []entities.Question) []byte {
	t.Helper()
	inner, err := json.Marshal(questions)
	if err != nil {
		t.Fatalf("marshal questions: %v", err)
	}
	payload := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{
				"parts": []map[string]any{{"text": string(inner)}},
			}},
		},
	}
	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return out
}

func sampleQuestion(text string, d entities.Difficulty) entities.Question {
	return entities.Question{
		Text:          text,
		Answers:       []string{text + " A", text + " B", text + " C", text + " D"},
		CorrectAnswer: text + " A",
		Difficulty:    d,
	}
}

func TestGeminiFetch(t *testing.T) {
	batch := []entities.Question{
		sampleQuestion("q1", entities.DifficultyEasy),
		sampleQuestion("q2", entities.DifficultyExpert),
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if !strings.Contains(r.URL.Path, ":generateContent") {
			t.Errorf("path = %q, want a generateContent call", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("key = %q, want the configured API key", got)
		}
		w.Write(geminiPayload(t, batch))
	}))
	defer srv.Close()

	client := NewGeminiClient(zap.NewNop(), "test-key", WithBaseURL(srv.URL))
	got, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != len(batch) {
		t.Fatalf("fetched %d questions, want %d", len(got), len(batch))
	}
	for i := range batch {
		if got[i].Text != batch[i].Text {
			t.Errorf("question %d = %q, want %q", i, got[i].Text, batch[i].Text)
		}
	}
}

func TestGeminiFetchDropsMalformed(t *testing.T) {
	broken := sampleQuestion("broken", entities.DifficultyEasy)
	broken.CorrectAnswer = "not an option"
	batch := []entities.Question{
		broken,
		sampleQuestion("fine", entities.DifficultyMediumHard),
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write(geminiPayload(t, batch))
	}))
	defer srv.Close()

	client := NewGeminiClient(zap.NewNop(), "test-key", WithBaseURL(srv.URL))
	got, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 1 || got[0].Text != "fine" {
		t.Fatalf("fetched %v, want only the valid question", got)
	}
}

func TestGeminiFetchAllMalformed(t *testing.T) {
	broken := sampleQuestion("broken", entities.DifficultyEasy)
	broken.Answers = broken.Answers[:2]

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write(geminiPayload(t, []entities.Question{broken}))
	}))
	defer srv.Close()

	client := NewGeminiClient(zap.NewNop(), "test-key", WithBaseURL(srv.URL))
	if _, err := client.Fetch(context.Background()); err == nil {
		t.Fatal("Fetch must fail when the whole batch is unusable")
	}
}

func TestGeminiFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewGeminiClient(zap.NewNop(), "test-key", WithBaseURL(srv.URL))
	if _, err := client.Fetch(context.Background()); err == nil {
		t.Fatal("Fetch must surface non-200 responses")
	}
}

func TestGeminiFetchGarbageBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewGeminiClient(zap.NewNop(), "test-key", WithBaseURL(srv.URL))
	if _, err := client.Fetch(context.Background()); err == nil {
		t.Fatal("Fetch must fail on an unparsable body")
	}
}

type failingSource struct{ err error }

func (f failingSource) Fetch(context.Context) ([]entities.Question, error) {
	return nil, f.err
}

type fixedSource struct{ qs []entities.Question }

func (f fixedSource) Fetch(context.Context) ([]entities.Question, error) {
	return f.qs, nil
}

func TestFallbackOnSourceFailure(t *testing.T) {
	src := WithFallback(zap.NewNop(), failingSource{err: errors.New("boom")})

	got, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != len(bank.DefaultQuestions()) {
		t.Fatalf("fetched %d questions, want the %d defaults", len(got), len(bank.DefaultQuestions()))
	}
}

func TestFallbackPassesThroughSuccess(t *testing.T) {
	batch := []entities.Question{sampleQuestion("q1", entities.DifficultyEasy)}
	src := WithFallback(zap.NewNop(), fixedSource{qs: batch})

	got, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 1 || got[0].Text != "q1" {
		t.Fatalf("fetched %v, want the inner batch untouched", got)
	}
}

func TestDisabledSourceFailsAndFallsBack(t *testing.T) {
	if _, err := Disabled().Fetch(context.Background()); err == nil {
		t.Fatal("the disabled source must always fail")
	}

	src := WithFallback(zap.NewNop(), Disabled())
	got, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("the wrapped disabled source must yield the default set")
	}
}
