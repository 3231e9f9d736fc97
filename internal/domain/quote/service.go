package quote

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "github.com/xenking/indigo-rentals/internal/domain/quote"

// Service encapsulates quote submission and lookup.
type Service struct {
	pricer    Pricer
	quotes    Repository
	validator *Validator
	now       func() time.Time
	newID     func() string

	tracer    trace.Tracer
	submitted metric.Int64Counter
}

// Option configures a Service.
type Option func(*serviceOptions)

type serviceOptions struct {
	now            func() time.Time
	newID          func() string
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
}

// WithClock overrides the time source used for CreatedAt and date checks.
func WithClock(now func() time.Time) Option {
	return func(o *serviceOptions) { o.now = now }
}

// WithIDGenerator overrides quote ID generation.
func WithIDGenerator(newID func() string) Option {
	return func(o *serviceOptions) { o.newID = newID }
}

// WithMeterProvider sets the meter provider for the submission counter.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *serviceOptions) { o.meterProvider = mp }
}

// WithTracerProvider sets the tracer provider for service spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *serviceOptions) { o.tracerProvider = tp }
}

// NewService creates a quote Service.
func NewService(pricer Pricer, quotes Repository, opts ...Option) (*Service, error) {
	o := serviceOptions{
		now:            time.Now,
		newID:          func() string { return uuid.New().String() },
		meterProvider:  metricnoop.NewMeterProvider(),
		tracerProvider: tracenoop.NewTracerProvider(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	submitted, err := o.meterProvider.Meter(instrumentationName).Int64Counter("quotes.submitted",
		metric.WithDescription("Number of quote requests accepted"),
		metric.WithUnit("{quote}"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create quotes.submitted counter")
	}

	return &Service{
		pricer:    pricer,
		quotes:    quotes,
		validator: NewValidator(o.now),
		now:       o.now,
		newID:     o.newID,
		tracer:    o.tracerProvider.Tracer(instrumentationName),
		submitted: submitted,
	}, nil
}

// Submit validates, prices and persists a quote request. Nothing is stored
// when any step fails.
func (s *Service) Submit(ctx context.Context, req Request) (*Quote, error) {
	ctx, span := s.tracer.Start(ctx, "quote.Submit")
	defer span.End()

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	breakdown, lines, err := s.pricer.Price(ctx, req)
	if err != nil {
		return nil, errors.Wrap(err, "price quote")
	}
	if len(req.Items) == 0 && len(lines) > 0 {
		req.Items = RenderItems(lines)
	}

	q := &Quote{
		ID:          s.newID(),
		Request:     req,
		Breakdown:   breakdown,
		PricingMode: s.pricer.Mode(),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.quotes.Create(ctx, q); err != nil {
		return nil, errors.Wrap(err, "create quote")
	}

	s.submitted.Add(ctx, 1, metric.WithAttributes(
		attribute.String("pricing.mode", string(q.PricingMode)),
		attribute.String("event.type", req.EventType),
	))
	return q, nil
}

// Get returns the quote with the given ID or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Quote, error) {
	ctx, span := s.tracer.Start(ctx, "quote.Get")
	defer span.End()

	q, err := s.quotes.Get(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "get quote %s", id)
	}
	return q, nil
}
