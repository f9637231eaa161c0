package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"

	"github.com/edvin/ri-utilization/internal/model"
)

// UtilizationReader is the subset of the Cost Explorer client used for querying.
type UtilizationReader interface {
	GetReservationUtilization(ctx context.Context, params *costexplorer.GetReservationUtilizationInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetReservationUtilizationOutput, error)
}

// Observer is notified once per invocation with its outcome (OutcomeSuccess
// or the failing Phase) and duration.
type Observer interface {
	ObserveInvocation(outcome string, duration time.Duration)
}

// OutcomeSuccess is the outcome reported for an invocation that published.
const OutcomeSuccess = "success"

type nopObserver struct{}

func (nopObserver) ObserveInvocation(string, time.Duration) {}

// Bridge runs the query, extract and publish phases for one request.
type Bridge struct {
	queries   *QueryBuilder
	reader    UtilizationReader
	publisher *MetricPublisher
	observer  Observer
	logger    zerolog.Logger
}

func NewBridge(queries *QueryBuilder, reader UtilizationReader, publisher *MetricPublisher, observer Observer, logger zerolog.Logger) *Bridge {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Bridge{
		queries:   queries,
		reader:    reader,
		publisher: publisher,
		observer:  observer,
		logger:    logger.With().Str("component", "bridge").Logger(),
	}
}

// Run executes one invocation. Any error is terminal; when it is returned
// no metric has been written.
func (b *Bridge) Run(ctx context.Context, req *model.InvocationRequest) (*model.Acknowledgment, error) {
	logger := b.loggerFor(ctx, req)
	start := time.Now()

	ack, err := b.run(ctx, logger, req)

	outcome := OutcomeSuccess
	if err != nil {
		phase, _ := PhaseOf(err)
		outcome = string(phase)
		ev := logger.Error().Err(err).Str("phase", outcome)
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			ev = ev.Str("error_code", apiErr.ErrorCode())
		}
		ev.Msg("invocation failed")
	} else {
		logger.Info().
			Float64("value", ack.Value).
			Str("request_id", ack.RequestID).
			Msg("published reservation utilization")
	}
	b.observer.ObserveInvocation(outcome, time.Since(start))

	return ack, err
}

func (b *Bridge) run(ctx context.Context, logger zerolog.Logger, req *model.InvocationRequest) (*model.Acknowledgment, error) {
	query := b.queries.Build(req)
	logger.Info().
		Str("start", query.Period.Start).
		Str("end", query.Period.End).
		Int("predicates", len(query.Filter.And)).
		Str("granularity", aws.ToString(query.Granularity)).
		Msg("querying reservation utilization")

	out, err := b.reader.GetReservationUtilization(ctx, query.Input())
	if err != nil {
		return nil, &QueryError{Err: err}
	}

	value, err := ExtractUtilization(out)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("utilization", value).Msg("extracted utilization")

	res, err := b.publisher.Publish(ctx, req.Namespace, req.MetricName, value, req)
	if err != nil {
		return nil, err
	}

	return res.Acknowledgment(), nil
}

// loggerFor prefers a logger carried by ctx, which entrypoints use to attach
// the invocation ID.
func (b *Bridge) loggerFor(ctx context.Context, req *model.InvocationRequest) zerolog.Logger {
	logger := b.logger
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		logger = l.With().Str("component", "bridge").Logger()
	}

	lctx := logger.With().
		Str("namespace", req.Namespace).
		Str("metric", req.MetricName)
	if req.Region != nil {
		lctx = lctx.Str("filter_region", *req.Region)
	}
	if req.Service != nil {
		lctx = lctx.Str("filter_service", *req.Service)
	}
	if req.LinkedAccount != nil {
		lctx = lctx.Str("filter_linked_account", *req.LinkedAccount)
	}
	return lctx.Logger()
}
