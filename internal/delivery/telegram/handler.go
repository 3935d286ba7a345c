package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ddelfanti/fisica-milionaria-bot/internal/game"
)

// EngineFactory builds a fresh game engine for a chat.
type EngineFactory func() *game.Engine

// Handler connects Telegram updates to per-chat game engines and renders
// engine snapshots back into the chat.
type Handler struct {
	bot       *tgbotapi.BotAPI
	logger    *zap.Logger
	newEngine EngineFactory

	mu    sync.Mutex
	games map[int64]*chatGame
}

// chatGame is one chat's engine plus the board message being edited in place.
type chatGame struct {
	engine      *game.Engine
	boardMsgID  int
	boardKey    string // last rendered board identity, for tick throttling
	lastSeconds int
}

// NewHandler creates a Handler.
func NewHandler(bot *tgbotapi.BotAPI, logger *zap.Logger, newEngine EngineFactory) *Handler {
	return &Handler{
		bot:       bot,
		logger:    logger,
		newEngine: newEngine,
		games:     make(map[int64]*chatGame),
	}
}

// Run consumes updates until the context is canceled.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID
	if !update.Message.IsCommand() {
		return
	}

	switch update.Message.Command() {
	case "start":
		h.showBoard(chatID)
	case "gioca":
		h.startGame(ctx, chatID)
	case "record":
		h.withErrorHandling("record", h.handleRecord)(ctx, chatID)
	case "scala":
		h.withErrorHandling("scala", h.handleLadder)(ctx, chatID)
	case "impostazioni":
		h.withErrorHandling("impostazioni", h.handleSettingsCommand)(ctx, chatID)
	case "aiuto":
		_ = h.send(newHTMLMessage(chatID, msgHelp))
	default:
		_ = h.send(newHTMLMessage(chatID, msgUnknownCommand))
	}
}

// gameFor returns the chat's game, creating and wiring it on first use.
// The engine is initialized outside h.mu: its change callback takes h.mu
// while holding the engine lock, so the two locks must never nest the other
// way around.
func (h *Handler) gameFor(ctx context.Context, chatID int64) *chatGame {
	h.mu.Lock()
	g, ok := h.games[chatID]
	if !ok {
		g = &chatGame{engine: h.newEngine()}
		h.games[chatID] = g
	}
	h.mu.Unlock()

	if !ok {
		g.engine.LoadWins(ctx)
		g.engine.SetOnChange(func(s game.Snapshot) {
			h.renderTo(chatID, g, s)
		})
	}
	return g
}

// startGame kicks off a session. Start blocks on the question provider, so
// it runs off the update loop; rendering happens through the change callback.
func (h *Handler) startGame(ctx context.Context, chatID int64) {
	g := h.gameFor(ctx, chatID)
	go func() {
		if err := g.engine.Start(ctx); err != nil {
			h.logger.Warn("start game failed",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgStartFailed)
		}
	}()
}

// showBoard renders the engine's current state as a new board message.
func (h *Handler) showBoard(chatID int64) {
	g := h.gameFor(context.Background(), chatID)

	h.mu.Lock()
	g.boardMsgID = 0 // force a fresh message
	h.mu.Unlock()

	h.renderTo(chatID, g, g.engine.State())
}

func (h *Handler) handleRecord(ctx context.Context, chatID int64) error {
	g := h.gameFor(ctx, chatID)
	s := g.engine.State()
	msg := newHTMLMessage(chatID, renderRecord(s))
	return h.send(msg)
}

func (h *Handler) handleLadder(ctx context.Context, chatID int64) error {
	g := h.gameFor(ctx, chatID)
	msg := newHTMLMessage(chatID, renderLadder(g.engine.State()))
	return h.send(msg)
}

// renderTo pushes a snapshot into the chat, editing the board message in
// place. Countdown-only changes are throttled to avoid hammering the API.
func (h *Handler) renderTo(chatID int64, g *chatGame, s game.Snapshot) {
	key := boardKey(s)

	h.mu.Lock()
	tickOnly := g.boardMsgID != 0 && key == g.boardKey && s.SecondsLeft != g.lastSeconds
	if tickOnly && s.SecondsLeft > 10 && s.SecondsLeft%15 != 0 {
		g.lastSeconds = s.SecondsLeft
		h.mu.Unlock()
		return
	}
	g.boardKey = key
	g.lastSeconds = s.SecondsLeft
	boardMsgID := g.boardMsgID
	h.mu.Unlock()

	text, kb := renderState(s)

	if boardMsgID == 0 {
		msg := newHTMLMessage(chatID, text)
		if kb != nil {
			msg.ReplyMarkup = *kb
		}
		sent, err := h.bot.Send(msg)
		if err != nil {
			h.logger.Error("send board failed",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			return
		}
		h.mu.Lock()
		g.boardMsgID = sent.MessageID
		h.mu.Unlock()
		return
	}

	var edit tgbotapi.Chattable
	if kb != nil {
		e := tgbotapi.NewEditMessageTextAndMarkup(chatID, boardMsgID, text, *kb)
		e.ParseMode = tgbotapi.ModeHTML
		edit = e
	} else {
		e := tgbotapi.NewEditMessageText(chatID, boardMsgID, text)
		e.ParseMode = tgbotapi.ModeHTML
		edit = e
	}

	if _, err := h.bot.Send(edit); err != nil {
		h.logger.Warn("edit board failed",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	_, err := h.bot.Send(c)
	return err
}

func (h *Handler) sendError(chatID int64, text string) {
	if err := h.send(newHTMLMessage(chatID, text)); err != nil {
		h.logger.Error("send error message failed",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
