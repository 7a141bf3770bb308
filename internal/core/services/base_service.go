package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dairyworks/farm_ledger/internal/apperrors"
	"github.com/dairyworks/farm_ledger/internal/middleware"
	"github.com/dairyworks/farm_ledger/internal/utils/daterange"
)

// BaseService provides common functionality for all services
type BaseService struct {
	now func() time.Time
}

// ServiceOption configures the shared parts of a service.
type ServiceOption func(*BaseService)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(b *BaseService) {
		b.now = now
	}
}

func newBaseService(opts []ServiceOption) BaseService {
	b := BaseService{now: time.Now}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Now returns the current time in UTC.
func (s *BaseService) Now() time.Time {
	if s.now == nil {
		return time.Now().UTC()
	}
	return s.now().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogWarn logs a client-side failure.
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogFailure logs err at Warn for client errors and at Error otherwise.
func (s *BaseService) LogFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if apperrors.IsClientError(err) {
		s.LogWarn(ctx, err, msg, keyvals...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

// requireUser rejects postings without an acting user.
func requireUser(userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: acting user is required", apperrors.ErrUnauthorized)
	}
	return nil
}

// documentDate parses an optional YYYY-MM-DD value, defaulting to today's date.
func (s *BaseService) documentDate(value string) (time.Time, error) {
	if value == "" {
		return daterange.StartOfDay(s.Now()), nil
	}
	return daterange.ParseDate(value)
}
