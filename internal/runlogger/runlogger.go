// Package runlogger provides a run-scoped logger carried through context
package runlogger

import (
	"context"

	"github.com/UnendingLoop/FaviconNormalizer/internal/model"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"
)

type loggerWithRunID struct{}

// NewRunID - идентификатор прогона для корреляции логов и отчета
func NewRunID() string {
	return uuid.NewString()
}

// WithRunLogger - кладет в контекст логгер с run_id и вариантом трансформации
func WithRunLogger(ctx context.Context, runID string, variant model.Variant) context.Context {
	if runID == "" {
		runID = NewRunID()
	}

	logger := zlog.Logger.With().
		Str("run_id", runID).
		Str("variant", string(variant)).
		Logger()

	return context.WithValue(ctx, loggerWithRunID{}, logger)
}

// LoggerFromContext extracts logger from context - used in service-layer
func LoggerFromContext(ctx context.Context) zlog.Zerolog {
	if l, ok := ctx.Value(loggerWithRunID{}).(zlog.Zerolog); ok {
		return l
	}
	return zlog.Logger
}
