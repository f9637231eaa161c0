package model

import "encoding/json"

// InvocationRequest is the trigger payload for one bridge invocation.
// Optional fields are nil when absent from the payload.
type InvocationRequest struct {
	Region        *string `json:"region,omitempty"`
	Service       *string `json:"service,omitempty"`
	LinkedAccount *string `json:"linkedAccount,omitempty"`
	Granularity   *string `json:"granularity,omitempty" validate:"omitempty,oneof=DAILY MONTHLY HOURLY"`
	Namespace     string  `json:"namespace" validate:"required"`
	MetricName    string  `json:"metricName" validate:"required"`
}

// UnmarshalJSON accepts both camelCase keys and the snake_case keys
// (linked_account, metric_name) used by older scheduled-event payloads.
// camelCase wins when both are present.
func (r *InvocationRequest) UnmarshalJSON(data []byte) error {
	type plain InvocationRequest
	var aux struct {
		plain
		LinkedAccountSnake *string `json:"linked_account"`
		MetricNameSnake    string  `json:"metric_name"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*r = InvocationRequest(aux.plain)
	if r.LinkedAccount == nil {
		r.LinkedAccount = aux.LinkedAccountSnake
	}
	if r.MetricName == "" {
		r.MetricName = aux.MetricNameSnake
	}
	return nil
}
