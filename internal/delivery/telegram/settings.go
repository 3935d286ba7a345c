package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ddelfanti/fisica-milionaria-bot/internal/game"
)

func (h *Handler) handleSettingsCommand(ctx context.Context, chatID int64) error {
	g := h.gameFor(ctx, chatID)
	s := g.engine.State()

	msg := newHTMLMessage(chatID, settingsText(s))
	msg.ReplyMarkup = settingsKeyboard(s)
	return h.send(msg)
}

func settingsText(s game.Snapshot) string {
	return fmt.Sprintf(
		"<b>⚙️ Impostazioni</b>\n\n"+
			"⏱ <b>Timer:</b> %s\n"+
			"🛠 <b>Modalità sviluppatore:</b> %s\n"+
			"🏅 <b>Record:</b> %d vittorie\n",
		formatBool(s.TimerEnabled),
		formatBool(s.DeveloperMode),
		s.Wins,
	)
}

func settingsKeyboard(s game.Snapshot) tgbotapi.InlineKeyboardMarkup {
	timerData := callbackData{Action: actionSettings, Params: []string{settingsTimer}}
	devData := callbackData{Action: actionSettings, Params: []string{settingsDevMode}}
	closeData := callbackData{Action: actionSettings, Params: []string{settingsClose}}

	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏱ Timer", timerData.encode()),
			tgbotapi.NewInlineKeyboardButtonData("🛠 Sviluppatore", devData.encode()),
		),
	}

	if s.ResetArmed {
		confirmData := callbackData{Action: actionSettings, Params: []string{settingsResetConfirm}}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚠️ Conferma azzeramento", confirmData.encode()),
		))
	} else {
		resetData := callbackData{Action: actionSettings, Params: []string{settingsReset}}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("♻️ Azzera record", resetData.encode()),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✖ Chiudi", closeData.encode()),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (h *Handler) handleSettingsCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) {
	if len(data.Params) != 1 {
		return
	}

	chatID := cb.Message.Chat.ID
	g := h.gameFor(ctx, chatID)

	switch data.Params[0] {
	case settingsTimer:
		g.engine.SetTimerEnabled(!g.engine.State().TimerEnabled)
	case settingsDevMode:
		g.engine.SetDeveloperMode(!g.engine.State().DeveloperMode)
	case settingsReset:
		g.engine.ArmResetWins()
	case settingsResetConfirm:
		if err := g.engine.ConfirmResetWins(); err != nil {
			if errors.Is(err, game.ErrResetNotArmed) {
				h.sendError(chatID, msgResetExpired)
			}
		} else {
			h.sendError(chatID, msgResetDone)
		}
	case settingsClose:
		edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, settingsText(g.engine.State()))
		edit.ParseMode = tgbotapi.ModeHTML
		if err := h.send(edit); err != nil {
			h.logger.Warn("close settings failed", zap.Error(err))
		}
		return
	default:
		return
	}

	s := g.engine.State()
	text := settingsText(s)
	if s.ResetArmed {
		text += "\n" + msgResetArmed
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, cb.Message.MessageID, text, settingsKeyboard(s))
	edit.ParseMode = tgbotapi.ModeHTML
	if err := h.send(edit); err != nil {
		h.logger.Warn("update settings failed", zap.Error(err))
	}
}

func formatBool(b bool) string {
	if b {
		return "Attivo ✅"
	}
	return "Spento ❌"
}
