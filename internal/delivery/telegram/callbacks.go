package telegram

import (
	"context"
	"errors"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ddelfanti/fisica-milionaria-bot/internal/game"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	data := decodeCallback(cb.Data)

	var alert string
	switch data.Action {
	case actionPlay:
		h.startGame(ctx, chatID)
	case actionMenu:
		g := h.gameFor(ctx, chatID)
		g.engine.BackToMenu()
	case actionAnswer:
		alert = h.handleAnswerCallback(ctx, chatID, data)
	case actionReveal:
		g := h.gameFor(ctx, chatID)
		g.engine.RevealNow()
	case actionLifeline:
		alert = h.handleLifelineCallback(ctx, chatID, data)
	case actionDev:
		alert = h.handleDevCallback(ctx, chatID, data)
	case actionSettings:
		h.handleSettingsCallback(ctx, cb, data)
	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
	}

	// Remove the user's "clock", optionally with an alert.
	answer := tgbotapi.NewCallback(cb.ID, alert)
	if _, err := h.bot.Request(answer); err != nil {
		h.logger.Warn("callback answer failed", zap.Error(err))
	}
}

// handleAnswerCallback maps the pressed button back onto the answer text and
// submits it. The engine revalidates against the current question, so a
// stale button press on a replaced question is simply ignored.
func (h *Handler) handleAnswerCallback(ctx context.Context, chatID int64, data callbackData) string {
	if len(data.Params) != 1 {
		return ""
	}
	idx, err := strconv.Atoi(data.Params[0])
	if err != nil {
		h.logger.Debug("invalid answer callback", zap.String("data", data.Raw))
		return ""
	}

	g := h.gameFor(ctx, chatID)
	s := g.engine.State()
	if idx < 0 || idx >= len(s.Question.Answers) {
		return ""
	}

	g.engine.SubmitAnswer(s.Question.Answers[idx])
	return ""
}

func (h *Handler) handleLifelineCallback(ctx context.Context, chatID int64, data callbackData) string {
	if len(data.Params) != 1 {
		return ""
	}

	g := h.gameFor(ctx, chatID)

	var err error
	switch data.Params[0] {
	case lifelineFifty:
		err = g.engine.UseFiftyFifty()
	case lifelinePhone:
		err = g.engine.UsePhoneFriend()
	case lifelineSwitch:
		err = g.engine.UseSwitchQuestion()
	default:
		return ""
	}

	switch {
	case err == nil:
		return ""
	case errors.Is(err, game.ErrNoReplacement):
		return msgNoReplacement
	case errors.Is(err, game.ErrLifelineUsed):
		return msgLifelineUsed
	case errors.Is(err, game.ErrNotPlaying):
		return msgNotPlaying
	default:
		h.logger.Error("lifeline failed",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return msgInternalError
	}
}

func (h *Handler) handleDevCallback(ctx context.Context, chatID int64, data callbackData) string {
	if len(data.Params) != 1 || data.Params[0] != devForceCorrect {
		return ""
	}

	g := h.gameFor(ctx, chatID)
	if err := g.engine.ForceCorrectAnswer(); err != nil {
		if errors.Is(err, game.ErrNotPlaying) {
			return msgNotPlaying
		}
		return ""
	}
	return ""
}
