package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Dimension is a name/value tag attached to a published metric datum.
type Dimension struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Acknowledgment is the success output of an invocation.
type Acknowledgment struct {
	Namespace  string      `json:"namespace"`
	MetricName string      `json:"metric_name"`
	Value      float64     `json:"value"`
	Dimensions []Dimension `json:"dimensions"`
	RequestID  string      `json:"request_id,omitempty"`
}

// String renders the acknowledgment as the JSON returned to invokers.
func (a Acknowledgment) String() string {
	b, err := json.Marshal(a)
	if err != nil {
		dims := make([]string, 0, len(a.Dimensions))
		for _, d := range a.Dimensions {
			dims = append(dims, d.Name+"="+d.Value)
		}
		return fmt.Sprintf("%s/%s=%g [%s]", a.Namespace, a.MetricName, a.Value, strings.Join(dims, ","))
	}
	return string(b)
}
