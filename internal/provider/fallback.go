package provider

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/ddelfanti/fisica-milionaria-bot/internal/bank"
	"github.com/ddelfanti/fisica-milionaria-bot/internal/domain/entities"
)

// Source fetches a batch of questions.
type Source interface {
	Fetch(ctx context.Context) ([]entities.Question, error)
}

// FallbackSource decorates a Source so that a failed fetch degrades to the
// built-in default set instead of propagating the error.
type FallbackSource struct {
	inner Source
	log   *zap.Logger
}

// WithFallback wraps a source with the default-set fallback.
func WithFallback(log *zap.Logger, inner Source) *FallbackSource {
	return &FallbackSource{inner: inner, log: log}
}

// disabledSource stands in when no provider key is configured; wrapped with
// WithFallback it always yields the default question set.
type disabledSource struct{}

var errProviderDisabled = errors.New("question provider is not configured")

func (disabledSource) Fetch(context.Context) ([]entities.Question, error) {
	return nil, errProviderDisabled
}

// Disabled returns a Source that always fails.
func Disabled() Source {
	return disabledSource{}
}

func (f *FallbackSource) Fetch(ctx context.Context) ([]entities.Question, error) {
	qs, err := f.inner.Fetch(ctx)
	if err != nil {
		f.log.Warn("question source failed, using fallback set", zap.Error(err))
		return bank.DefaultQuestions(), nil
	}
	return qs, nil
}
