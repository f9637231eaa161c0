package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/rs/zerolog"

	"github.com/edvin/ri-utilization/internal/api/handler"
	"github.com/edvin/ri-utilization/internal/api/request"
	"github.com/edvin/ri-utilization/internal/model"
	"github.com/edvin/ri-utilization/internal/platform"
)

type invocationHandler struct {
	bridge handler.Runner
	logger zerolog.Logger
}

func newInvocationHandler(bridge handler.Runner, logger zerolog.Logger) *invocationHandler {
	return &invocationHandler{bridge: bridge, logger: logger}
}

// Handle processes one scheduled event. The returned string is the
// acknowledgment of the metric write.
func (h *invocationHandler) Handle(ctx context.Context, req model.InvocationRequest) (string, error) {
	id := platform.NewID()
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		id = lc.AwsRequestID
	}
	logger := h.logger.With().Str("invocation_id", id).Logger()
	ctx = logger.WithContext(ctx)

	if err := request.Validate(&req); err != nil {
		logger.Error().Err(err).Msg("rejected invocation payload")
		return "", err
	}

	ack, err := h.bridge.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return ack.String(), nil
}
