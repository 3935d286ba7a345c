package telegram

import (
	"strings"
	"testing"

	"github.com/ddelfanti/fisica-milionaria-bot/internal/domain/entities"
	"github.com/ddelfanti/fisica-milionaria-bot/internal/game"
)

func playingSnapshot() game.Snapshot {
	return game.Snapshot{
		Status: entities.StatusPlaying,
		Question: entities.Question{
			Text:          "Qual è l'unità SI della forza?",
			Answers:       []string{"Newton", "Joule", "Pascal", "Watt"},
			CorrectAnswer: "Newton",
			Difficulty:    entities.DifficultyEasy,
		},
		Index:        0,
		Total:        game.SessionLength,
		Rung:         game.RungFor(0),
		TimerEnabled: true,
		SecondsLeft:  30,
	}
}

func TestRenderWelcome(t *testing.T) {
	text, kb := renderState(game.Snapshot{Status: entities.StatusWelcome, Wins: 2})

	if !strings.Contains(text, msgWelcomeTitle) {
		t.Error("welcome text must carry the title")
	}
	if !strings.Contains(text, "2") {
		t.Error("welcome text must show the win counter")
	}
	if kb == nil || len(kb.InlineKeyboard) != 1 {
		t.Fatal("welcome must offer exactly the start button")
	}
	if got := kb.InlineKeyboard[0][0].CallbackData; got == nil || *got != actionPlay {
		t.Errorf("start button data = %v, want %q", got, actionPlay)
	}
}

func TestRenderBoardShowsAllAnswers(t *testing.T) {
	s := playingSnapshot()
	text, kb := renderState(s)

	for _, a := range s.Question.Answers {
		if !strings.Contains(text, a) {
			t.Errorf("board is missing answer %q", a)
		}
	}
	if !strings.Contains(text, s.Question.Text) {
		t.Error("board is missing the question text")
	}
	if !strings.Contains(text, "30 secondi") {
		t.Error("board is missing the countdown")
	}
	if kb == nil {
		t.Fatal("playing board must carry a keyboard")
	}
	if got := len(kb.InlineKeyboard[0]); got != len(s.Question.Answers) {
		t.Errorf("answer row has %d buttons, want %d", got, len(s.Question.Answers))
	}
}

func TestRenderBoardHidesFiftyFiftyAnswers(t *testing.T) {
	s := playingSnapshot()
	s.FiftyFiftyUsed = true
	s.HiddenAnswers = []string{"Joule", "Watt"}

	text, kb := renderState(s)
	for _, a := range s.HiddenAnswers {
		if strings.Contains(text, a) {
			t.Errorf("hidden answer %q still rendered", a)
		}
	}
	if got := len(kb.InlineKeyboard[0]); got != 2 {
		t.Errorf("answer row has %d buttons, want the 2 survivors", got)
	}
}

func TestRenderBoardSuspense(t *testing.T) {
	s := playingSnapshot()
	s.Status = entities.StatusAnswerSelected
	s.SelectedAnswer = "Newton"
	s.InSuspense = true

	text, kb := renderState(s)
	if !strings.Contains(text, msgSuspense) {
		t.Error("suspense phase must show the suspense message")
	}
	if kb == nil || len(kb.InlineKeyboard) != 1 {
		t.Fatal("suspense must offer exactly the reveal button")
	}
	if got := kb.InlineKeyboard[0][0].CallbackData; got == nil || *got != actionReveal {
		t.Errorf("reveal button data = %v, want %q", got, actionReveal)
	}
}

func TestRenderBoardReveal(t *testing.T) {
	s := playingSnapshot()
	s.Status = entities.StatusAnswerSelected
	s.SelectedAnswer = "Joule"
	s.Revealed = true

	text, kb := renderState(s)
	if !strings.Contains(text, "✅ A: Newton") {
		t.Error("reveal must mark the correct answer")
	}
	if !strings.Contains(text, "❌ B: Joule") {
		t.Error("reveal must mark the wrong pick")
	}
	if kb != nil {
		t.Error("revealed board must not offer buttons")
	}
}

func TestRenderBoardTimeUp(t *testing.T) {
	s := playingSnapshot()
	s.Status = entities.StatusAnswerSelected
	s.SelectedAnswer = game.NoAnswer
	s.Revealed = true

	text, _ := renderState(s)
	if !strings.Contains(text, msgTimeUp) {
		t.Error("a no-answer reveal must show the time-up message")
	}
}

func TestRenderGameOver(t *testing.T) {
	s := game.Snapshot{
		Status:     entities.StatusGameOver,
		FinalPrize: "€32.000",
		Wins:       1,
	}

	text, kb := renderState(s)
	if !strings.Contains(text, "€32.000") {
		t.Error("game over must show the final prize")
	}
	if kb == nil || len(kb.InlineKeyboard[0]) != 2 {
		t.Fatal("game over must offer replay and menu")
	}
}

func TestRenderGameOverWin(t *testing.T) {
	s := game.Snapshot{
		Status:     entities.StatusGameOver,
		Correct:    true,
		FinalPrize: game.TopPrize(),
	}

	text, _ := renderState(s)
	if !strings.Contains(text, msgWinTitle) {
		t.Error("a won session must show the win title")
	}
}

func TestRenderBoardDeveloperRow(t *testing.T) {
	s := playingSnapshot()
	s.DeveloperMode = true

	_, kb := renderState(s)
	last := kb.InlineKeyboard[len(kb.InlineKeyboard)-1]
	if got := last[0].CallbackData; got == nil || *got != "dev:force" {
		t.Errorf("developer button data = %v, want dev:force", got)
	}
}

func TestBoardKeyIgnoresCountdown(t *testing.T) {
	a := playingSnapshot()
	b := playingSnapshot()
	b.SecondsLeft = 7

	if boardKey(a) != boardKey(b) {
		t.Error("the board key must not change on tick-only updates")
	}

	b.SelectedAnswer = "Newton"
	if boardKey(a) == boardKey(b) {
		t.Error("the board key must change when the selection changes")
	}
}

func TestRenderLadderMarksPositionAndCheckpoints(t *testing.T) {
	s := playingSnapshot()
	s.Index = 9
	s.Rung = game.RungFor(9)

	text := renderLadder(s)
	lines := strings.Split(strings.TrimSpace(text), "\n")
	// Header plus one line per rung.
	if len(lines) != len(game.PrizeAmounts)+1 {
		t.Fatalf("ladder has %d lines, want %d", len(lines), len(game.PrizeAmounts)+1)
	}
	if !strings.Contains(text, "▶️") {
		t.Error("ladder must mark the current rung")
	}
	if !strings.Contains(text, "🛡") {
		t.Error("ladder must mark the safe checkpoints")
	}
}

func TestCallbackDataRoundTrip(t *testing.T) {
	tests := []callbackData{
		{Action: actionPlay},
		{Action: actionAnswer, Params: []string{"2"}},
		{Action: actionLifeline, Params: []string{lifelinePhone}},
		{Action: actionSettings, Params: []string{settingsResetConfirm}},
	}

	for _, tt := range tests {
		got := decodeCallback(tt.encode())
		if got.Action != tt.Action {
			t.Errorf("decode(%q).Action = %q, want %q", tt.encode(), got.Action, tt.Action)
		}
		if len(got.Params) != len(tt.Params) {
			t.Errorf("decode(%q).Params = %v, want %v", tt.encode(), got.Params, tt.Params)
			continue
		}
		for i := range tt.Params {
			if got.Params[i] != tt.Params[i] {
				t.Errorf("decode(%q).Params[%d] = %q, want %q", tt.encode(), i, got.Params[i], tt.Params[i])
			}
		}
	}
}
