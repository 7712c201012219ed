package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	portssvc "github.com/SscSPs/quarry_billing_app/internal/core/ports/services"
	"github.com/SscSPs/quarry_billing_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// BaseService provides common functionality for all services
type BaseService struct {
	metrics portssvc.LedgerMetrics
	now     func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// Now returns the service clock, time.Now unless overridden in tests.
func (s *BaseService) Now() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// Metrics returns the ledger metrics sink; never nil.
func (s *BaseService) Metrics() portssvc.LedgerMetrics {
	if s.metrics == nil {
		return noopMetrics{}
	}
	return s.metrics
}

type noopMetrics struct{}

func (noopMetrics) ReceiptCreated(domain.PaymentMethod, domain.OwnerType) {}
func (noopMetrics) DepositMoved(domain.DepositTxnType, decimal.Decimal)   {}
func (noopMetrics) ConflictRetried(string)                                {}

// ServiceOption configures the shared parts of a service.
type ServiceOption func(*BaseService)

// WithLedgerMetrics reports ledger events to m.
func WithLedgerMetrics(m portssvc.LedgerMetrics) ServiceOption {
	return func(s *BaseService) {
		s.metrics = m
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.now = now
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	var b BaseService
	for _, option := range options {
		option(&b)
	}
	return b
}
