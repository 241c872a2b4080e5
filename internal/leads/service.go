package leads

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/wolfman30/yt-re-growth-api/internal/observability/metrics"
	"github.com/wolfman30/yt-re-growth-api/internal/storage"
	"github.com/wolfman30/yt-re-growth-api/pkg/logging"
)

var leadsTracer = otel.Tracer("yt-re.internal.leads")

// notifyTimeout bounds a single post-capture notification.
const notifyTimeout = 10 * time.Second

// Notifier is told about every stored lead. Failures are logged and never
// change the capture result.
type Notifier interface {
	LeadCaptured(ctx context.Context, id string, lead Lead) error
}

// Service validates lead submissions and hands them to the document store.
type Service struct {
	store   storage.Store
	logger  *logging.Logger
	metrics *metrics.APIMetrics
	now     func() time.Time
	timeout time.Duration

	notifier Notifier
	pending  sync.WaitGroup
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the timestamp source used for created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTimeout bounds each storage write. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

// WithMetrics records capture outcomes.
func WithMetrics(m *metrics.APIMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithNotifier sends a notification after each successful capture.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// NewService creates a lead intake service.
func NewService(store storage.Store, logger *logging.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Capture validates lead and stores it. Validation failures never reach the
// store; storage failures come back wrapped with ErrStorage.
func (s *Service) Capture(ctx context.Context, lead Lead) (*CaptureResult, error) {
	ctx, span := leadsTracer.Start(ctx, "leads.capture")
	defer span.End()

	lead = lead.WithDefaults()
	span.SetAttributes(attribute.String("lead.source", lead.Source))

	if err := lead.Validate(); err != nil {
		s.metrics.ObserveLead(metrics.LeadOutcomeInvalid)
		span.SetStatus(codes.Error, "validation failed")
		return nil, err
	}
	if s.store == nil {
		s.metrics.ObserveLead(metrics.LeadOutcomeStorageError)
		span.SetStatus(codes.Error, ErrNoStore.Error())
		return nil, fmt.Errorf("%w: %w", ErrStorage, ErrNoStore)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	id, err := s.store.Insert(ctx, lead.Collection(), lead.Document(s.now()))
	if err != nil {
		s.metrics.ObserveLead(metrics.LeadOutcomeStorageError)
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage insert failed")
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	s.metrics.ObserveLead(metrics.LeadOutcomeCaptured)
	span.SetAttributes(attribute.String("lead.id", id))
	s.logger.Info("lead captured", "id", id, "source", lead.Source)
	s.notify(ctx, id, lead)

	return &CaptureResult{ID: id, Message: CapturedMessage}, nil
}

func (s *Service) notify(ctx context.Context, id string, lead Lead) {
	if s.notifier == nil {
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		if err := s.notifier.LeadCaptured(nctx, id, lead); err != nil {
			s.logger.Warn("lead notification failed", "id", id, "error", err)
		}
	}()
}

// Wait blocks until in-flight notifications finish.
func (s *Service) Wait() {
	s.pending.Wait()
}
