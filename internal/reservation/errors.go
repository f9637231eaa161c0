package reservation

import (
	"errors"
	"fmt"
)

// Phase is a step of an invocation.
type Phase string

const (
	PhaseQuerying   Phase = "querying"
	PhaseExtracting Phase = "extracting"
	PhasePublishing Phase = "publishing"
)

// QueryError reports that Cost Explorer rejected or failed the query.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query reservation utilization: %v", e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// MissingDataError reports a successful query that carried no usable
// utilization figure. It is never treated as zero utilization.
type MissingDataError struct {
	Field  string
	Period string
}

func (e *MissingDataError) Error() string {
	if e.Period != "" {
		return fmt.Sprintf("extract utilization: missing %s for period starting %s", e.Field, e.Period)
	}
	return fmt.Sprintf("extract utilization: missing %s", e.Field)
}

// InvalidValueError reports a utilization string that does not parse as a number.
type InvalidValueError struct {
	Value string
	Err   error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("parse utilization value %q: %v", e.Value, e.Err)
}

func (e *InvalidValueError) Unwrap() error { return e.Err }

// PublishError reports that CloudWatch rejected or failed the metric write.
type PublishError struct {
	Namespace  string
	MetricName string
	Err        error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("put metric data %s/%s: %v", e.Namespace, e.MetricName, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }

// PhaseOf returns the phase that produced err, if err came from a Bridge.
func PhaseOf(err error) (Phase, bool) {
	var (
		qe *QueryError
		me *MissingDataError
		ie *InvalidValueError
		pe *PublishError
	)
	switch {
	case errors.As(err, &qe):
		return PhaseQuerying, true
	case errors.As(err, &me):
		return PhaseExtracting, true
	case errors.As(err, &ie), errors.As(err, &pe):
		return PhasePublishing, true
	}
	return "", false
}
