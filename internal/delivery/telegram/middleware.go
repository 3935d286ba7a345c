package telegram

import (
	"context"

	"go.uber.org/zap"
)

// HandlerFunc handles one bot command for one chat.
type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling wraps a command handler so a failure is logged with the
// command name and answered with a generic apology instead of going silent.
func (h *Handler) withErrorHandling(command string, fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			h.logger.Error("command failed",
				zap.String("command", command),
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
		}
		return nil
	}
}
