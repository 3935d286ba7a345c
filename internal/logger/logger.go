// Package logger builds the application logger.
package logger

import (
	"go.uber.org/zap"

	"github.com/ddelfanti/fisica-milionaria-bot/internal/config"
)

// New creates a zap logger for the configured environment: JSON output in
// production, human-readable development output otherwise. The environment
// is attached as a field so mixed log streams stay attributable.
func New(cfg *config.Config) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if cfg.Env == "production" {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}

	return log.With(zap.String("env", cfg.Env)), nil
}
