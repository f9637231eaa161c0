package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/edvin/ri-utilization/internal/api/request"
	"github.com/edvin/ri-utilization/internal/api/response"
	"github.com/edvin/ri-utilization/internal/model"
	"github.com/edvin/ri-utilization/internal/reservation"
)

// Runner executes one bridge invocation.
type Runner interface {
	Run(ctx context.Context, req *model.InvocationRequest) (*model.Acknowledgment, error)
}

type Invocation struct {
	bridge Runner
}

func NewInvocation(bridge Runner) *Invocation {
	return &Invocation{bridge: bridge}
}

// Create runs the bridge for the posted payload and returns the acknowledgment.
func (h *Invocation) Create(w http.ResponseWriter, r *http.Request) {
	var req model.InvocationRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ack, err := h.bridge.Run(r.Context(), &req)
	if err != nil {
		phase, _ := reservation.PhaseOf(err)
		response.WritePhaseError(w, statusFor(err), string(phase), err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, ack)
}

// statusFor maps upstream failures to 502 and unusable upstream data to 422.
func statusFor(err error) int {
	var (
		qe *reservation.QueryError
		pe *reservation.PublishError
		me *reservation.MissingDataError
		ie *reservation.InvalidValueError
	)
	switch {
	case errors.As(err, &qe), errors.As(err, &pe):
		return http.StatusBadGateway
	case errors.As(err, &me), errors.As(err, &ie):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
