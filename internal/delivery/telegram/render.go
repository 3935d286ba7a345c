package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ddelfanti/fisica-milionaria-bot/internal/domain/entities"
	"github.com/ddelfanti/fisica-milionaria-bot/internal/game"
)

// renderState turns an engine snapshot into the board text and keyboard.
func renderState(s game.Snapshot) (string, *tgbotapi.InlineKeyboardMarkup) {
	switch s.Status {
	case entities.StatusWelcome:
		return renderWelcome(s)
	case entities.StatusLoading:
		return msgLoading, nil
	case entities.StatusPlaying:
		return renderBoard(s)
	case entities.StatusAnswerSelected:
		return renderBoard(s)
	case entities.StatusGameOver:
		return renderGameOver(s)
	default:
		return msgInternalError, nil
	}
}

func renderWelcome(s game.Snapshot) (string, *tgbotapi.InlineKeyboardMarkup) {
	text := fmt.Sprintf("%s\n\n%s\n\n🏅 Vittorie: <b>%d</b>", msgWelcomeTitle, msgWelcomeBody, s.Wins)
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Inizia la partita", actionPlay),
		),
	)
	return text, &kb
}

func renderGameOver(s game.Snapshot) (string, *tgbotapi.InlineKeyboardMarkup) {
	title := msgGameOverTitle
	if s.Correct && s.FinalPrize == game.TopPrize() {
		title = msgWinTitle
	}
	text := fmt.Sprintf("%s\n\nHai vinto: <b>%s</b>\n🏅 Vittorie totali: %d", title, s.FinalPrize, s.Wins)
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Gioca ancora", actionPlay),
			tgbotapi.NewInlineKeyboardButtonData("🏠 Menu", actionMenu),
		),
	)
	return text, &kb
}

func renderBoard(s game.Snapshot) (string, *tgbotapi.InlineKeyboardMarkup) {
	var b strings.Builder

	fmt.Fprintf(&b, "💰 Domanda %d di %d — in palio <b>%s</b>\n",
		s.Index+1, s.Total, game.PrizeFor(s.Rung))
	if game.IsSafe(s.Rung) {
		b.WriteString("🛡 Traguardo sicuro\n")
	}
	if s.TimerEnabled && s.Status == entities.StatusPlaying {
		fmt.Fprintf(&b, "⏱ %d secondi\n", s.SecondsLeft)
	}

	fmt.Fprintf(&b, "\n<b>%s</b>\n\n", s.Question.Text)

	hidden := make(map[string]struct{}, len(s.HiddenAnswers))
	for _, a := range s.HiddenAnswers {
		hidden[a] = struct{}{}
	}

	for i, a := range s.Question.Answers {
		if _, ok := hidden[a]; ok {
			continue
		}
		fmt.Fprintf(&b, "%s %s: %s\n", answerMark(s, a), answerPrefixes[i], a)
	}

	if s.SuggestedAnswer != "" {
		fmt.Fprintf(&b, "\n📞 L'amico suggerisce: <i>%s</i>\n", s.SuggestedAnswer)
	}

	switch {
	case s.InSuspense:
		b.WriteString("\n" + msgSuspense)
	case s.Revealed && s.Correct:
		b.WriteString("\n" + msgCorrect)
	case s.Revealed && s.SelectedAnswer == game.NoAnswer:
		b.WriteString("\n" + msgTimeUp)
	case s.Revealed:
		b.WriteString("\n" + msgWrong)
	}

	kb := boardKeyboard(s, hidden)
	return b.String(), kb
}

// answerMark decorates an answer line according to the current phase.
func answerMark(s game.Snapshot, answer string) string {
	if s.Revealed {
		switch answer {
		case s.Question.CorrectAnswer:
			return "✅"
		case s.SelectedAnswer:
			return "❌"
		}
	}
	if answer == s.SelectedAnswer {
		return "🔒"
	}
	return "▫️"
}

func boardKeyboard(s game.Snapshot, hidden map[string]struct{}) *tgbotapi.InlineKeyboardMarkup {
	if s.Revealed {
		return nil
	}

	if s.InSuspense {
		kb := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("👀 Rivela subito", actionReveal),
			),
		)
		return &kb
	}

	var answerRow []tgbotapi.InlineKeyboardButton
	for i, a := range s.Question.Answers {
		if _, ok := hidden[a]; ok {
			continue
		}
		data := callbackData{Action: actionAnswer, Params: []string{fmt.Sprint(i)}}
		answerRow = append(answerRow,
			tgbotapi.NewInlineKeyboardButtonData(answerPrefixes[i], data.encode()))
	}

	lifelineRow := []tgbotapi.InlineKeyboardButton{
		lifelineButton("50:50", lifelineFifty, s.FiftyFiftyUsed),
		lifelineButton("📞", lifelinePhone, s.PhoneFriendUsed),
		lifelineButton("🔄", lifelineSwitch, s.SwitchUsed),
	}

	rows := [][]tgbotapi.InlineKeyboardButton{answerRow, lifelineRow}
	if s.DeveloperMode {
		data := callbackData{Action: actionDev, Params: []string{devForceCorrect}}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛠 Risposta esatta", data.encode()),
		))
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

func lifelineButton(label, sub string, used bool) tgbotapi.InlineKeyboardButton {
	if used {
		label = "✖ " + label
	}
	data := callbackData{Action: actionLifeline, Params: []string{sub}}
	return tgbotapi.NewInlineKeyboardButtonData(label, data.encode())
}

// renderRecord renders the cumulative win counter.
func renderRecord(s game.Snapshot) string {
	return fmt.Sprintf("🏅 Milioni vinti finora: <b>%d</b>", s.Wins)
}

// boardKey identifies everything on the board except the countdown, so
// tick-only updates can be told apart and throttled.
func boardKey(s game.Snapshot) string {
	return fmt.Sprintf("%d|%d|%s|%s|%v|%v|%d|%s|%v%v%v|%v|%v|%d",
		s.Status, s.Index, s.Question.Text, s.SelectedAnswer,
		s.InSuspense, s.Revealed, len(s.HiddenAnswers), s.SuggestedAnswer,
		s.FiftyFiftyUsed, s.PhoneFriendUsed, s.SwitchUsed,
		s.TimerEnabled, s.DeveloperMode, s.Wins,
	)
}

// renderLadder renders the full prize ladder with the current position.
func renderLadder(s game.Snapshot) string {
	var b strings.Builder
	b.WriteString("<b>Scala dei premi</b>\n")
	for rung, amount := range game.PrizeAmounts {
		mark := "  "
		switch {
		case rung == s.Rung && (s.Status == entities.StatusPlaying || s.Status == entities.StatusAnswerSelected):
			mark = "▶️"
		case game.IsSafe(rung):
			mark = "🛡"
		}
		fmt.Fprintf(&b, "%s %2d. %s\n", mark, len(game.PrizeAmounts)-rung, amount)
	}
	return b.String()
}
