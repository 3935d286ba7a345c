package game

import (
	"context"
	"errors"
	"testing"

	"github.com/ddelfanti/fisica-milionaria-bot/internal/domain/entities"
)

func TestFiftyFifty(t *testing.T) {
	te := startedEngine(t, DefaultConfig())
	q := te.State().Question

	if err := te.UseFiftyFifty(); err != nil {
		t.Fatalf("UseFiftyFifty: %v", err)
	}

	s := te.State()
	if !s.FiftyFiftyUsed {
		t.Error("lifeline must be marked used")
	}
	if len(s.HiddenAnswers) != 2 {
		t.Fatalf("hidden %d answers, want 2", len(s.HiddenAnswers))
	}
	for _, a := range s.HiddenAnswers {
		if a == q.CorrectAnswer {
			t.Fatal("the correct answer must never be hidden")
		}
	}

	visible := 0
	hidden := make(map[string]struct{}, len(s.HiddenAnswers))
	for _, a := range s.HiddenAnswers {
		hidden[a] = struct{}{}
	}
	for _, a := range q.IncorrectAnswers() {
		if _, ok := hidden[a]; !ok {
			visible++
		}
	}
	if visible != 1 {
		t.Fatalf("%d incorrect answers stayed visible, want exactly 1", visible)
	}

	if err := te.UseFiftyFifty(); !errors.Is(err, ErrLifelineUsed) {
		t.Fatalf("second use = %v, want ErrLifelineUsed", err)
	}
}

func TestFiftyFiftyBlocksHiddenSubmission(t *testing.T) {
	te := startedEngine(t, DefaultConfig())

	if err := te.UseFiftyFifty(); err != nil {
		t.Fatalf("UseFiftyFifty: %v", err)
	}

	s := te.State()
	te.SubmitAnswer(s.HiddenAnswers[0])
	if s = te.State(); s.Status != entities.StatusPlaying {
		t.Fatalf("status = %s, a hidden answer must not be submittable", s.Status)
	}
}

func TestPhoneFriendAlwaysAccurate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PhoneFriendAccuracy = 1
	te := startedEngine(t, cfg)

	if err := te.UsePhoneFriend(); err != nil {
		t.Fatalf("UsePhoneFriend: %v", err)
	}

	s := te.State()
	if !s.PhoneFriendUsed {
		t.Error("lifeline must be marked used")
	}
	if s.SuggestedAnswer != s.Question.CorrectAnswer {
		t.Fatalf("suggested %q, want the correct answer %q", s.SuggestedAnswer, s.Question.CorrectAnswer)
	}

	if err := te.UsePhoneFriend(); !errors.Is(err, ErrLifelineUsed) {
		t.Fatalf("second use = %v, want ErrLifelineUsed", err)
	}
}

func TestPhoneFriendNeverAccurate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PhoneFriendAccuracy = 0
	te := startedEngine(t, cfg)

	if err := te.UsePhoneFriend(); err != nil {
		t.Fatalf("UsePhoneFriend: %v", err)
	}

	s := te.State()
	if s.SuggestedAnswer == s.Question.CorrectAnswer {
		t.Fatal("with zero accuracy the suggestion must be wrong")
	}
	found := false
	for _, a := range s.Question.Answers {
		if a == s.SuggestedAnswer {
			found = true
		}
	}
	if !found {
		t.Fatalf("suggested %q is not among the answers", s.SuggestedAnswer)
	}
}

func TestPhoneFriendSuggestsVisibleAnswer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PhoneFriendAccuracy = 0
	te := startedEngine(t, cfg)

	if err := te.UseFiftyFifty(); err != nil {
		t.Fatalf("UseFiftyFifty: %v", err)
	}
	if err := te.UsePhoneFriend(); err != nil {
		t.Fatalf("UsePhoneFriend: %v", err)
	}

	s := te.State()
	for _, a := range s.HiddenAnswers {
		if s.SuggestedAnswer == a {
			t.Fatalf("suggested %q is hidden by 50:50", a)
		}
	}
}

func TestSwitchQuestion(t *testing.T) {
	te := startedEngine(t, DefaultConfig())

	if err := te.UseFiftyFifty(); err != nil {
		t.Fatalf("UseFiftyFifty: %v", err)
	}
	before := te.State()

	if err := te.UseSwitchQuestion(); err != nil {
		t.Fatalf("UseSwitchQuestion: %v", err)
	}

	s := te.State()
	if !s.SwitchUsed {
		t.Error("lifeline must be marked used")
	}
	if s.Question.Text == before.Question.Text {
		t.Fatal("the question must be replaced")
	}
	if s.Question.Difficulty != before.Question.Difficulty {
		t.Fatalf("replacement difficulty = %s, want %s", s.Question.Difficulty, before.Question.Difficulty)
	}
	if len(s.HiddenAnswers) != 0 || s.SuggestedAnswer != "" {
		t.Error("hidden and suggested state must be cleared on switch")
	}
	if s.SecondsLeft <= 0 {
		t.Error("countdown must restart for the replacement question")
	}

	if err := te.UseSwitchQuestion(); !errors.Is(err, ErrLifelineUsed) {
		t.Fatalf("second use = %v, want ErrLifelineUsed", err)
	}
}

func TestSwitchQuestionKeepsSessionUnique(t *testing.T) {
	te := startedEngine(t, DefaultConfig())

	if err := te.UseSwitchQuestion(); err != nil {
		t.Fatalf("UseSwitchQuestion: %v", err)
	}

	te.mu.Lock()
	seen := make(map[string]struct{}, len(te.session))
	for _, q := range te.session {
		if _, ok := seen[q.Text]; ok {
			te.mu.Unlock()
			t.Fatalf("duplicate question after switch: %q", q.Text)
		}
		seen[q.Text] = struct{}{}
	}
	te.mu.Unlock()
}

func TestSwitchQuestionWithoutCandidates(t *testing.T) {
	te := newTestEngine(t, DefaultConfig())
	// A bank with exactly one full session's worth of questions: the sampler
	// drains every pool, so no replacement can exist.
	te.bank.mu.Lock()
	te.bank.qs = nil
	for i := 0; i < 3; i++ {
		te.bank.qs = append(te.bank.qs, makeQuestion(entities.DifficultyEasy, i))
	}
	for i := 0; i < 5; i++ {
		te.bank.qs = append(te.bank.qs, makeQuestion(entities.DifficultyMediumHard, i))
		te.bank.qs = append(te.bank.qs, makeQuestion(entities.DifficultyVeryHard, i))
	}
	for i := 0; i < 2; i++ {
		te.bank.qs = append(te.bank.qs, makeQuestion(entities.DifficultyExpert, i))
	}
	te.bank.mu.Unlock()

	if err := te.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := te.UseSwitchQuestion(); !errors.Is(err, ErrNoReplacement) {
		t.Fatalf("UseSwitchQuestion = %v, want ErrNoReplacement", err)
	}
	if s := te.State(); !s.SwitchUsed {
		t.Fatal("the lifeline is consumed even without a replacement")
	}
}

func TestLifelinesOnlyWhilePlaying(t *testing.T) {
	te := newTestEngine(t, DefaultConfig())

	if err := te.UseFiftyFifty(); !errors.Is(err, ErrNotPlaying) {
		t.Fatalf("UseFiftyFifty before start = %v, want ErrNotPlaying", err)
	}

	if err := te.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	te.SubmitAnswer(te.State().Question.CorrectAnswer)

	if err := te.UsePhoneFriend(); !errors.Is(err, ErrNotPlaying) {
		t.Fatalf("UsePhoneFriend mid-submission = %v, want ErrNotPlaying", err)
	}
	if err := te.UseSwitchQuestion(); !errors.Is(err, ErrNotPlaying) {
		t.Fatalf("UseSwitchQuestion mid-submission = %v, want ErrNotPlaying", err)
	}
}
