package request

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvin/ri-utilization/internal/model"
)

func TestDecode_ValidInvocation(t *testing.T) {
	body := `{"service":"AmazonEC2","namespace":"Custom/Reservations","metricName":"UtilizationPct"}`
	r, err := http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	require.NoError(t, err)

	var req model.InvocationRequest
	err = Decode(r, &req)
	require.NoError(t, err)
	require.NotNil(t, req.Service)
	assert.Equal(t, "AmazonEC2", *req.Service)
	assert.Nil(t, req.Region)
	assert.Equal(t, "Custom/Reservations", req.Namespace)
	assert.Equal(t, "UtilizationPct", req.MetricName)
}

func TestDecodeReader_SnakeCasePayload(t *testing.T) {
	var req model.InvocationRequest
	err := DecodeReader(strings.NewReader(`{"linked_account":"123456789012","namespace":"ns","metric_name":"m"}`), &req)
	require.NoError(t, err)
	require.NotNil(t, req.LinkedAccount)
	assert.Equal(t, "123456789012", *req.LinkedAccount)
	assert.Equal(t, "m", req.MetricName)
}

func TestDecodeReader_InvalidJSON(t *testing.T) {
	var req model.InvocationRequest
	err := DecodeReader(strings.NewReader(`{not valid json}`), &req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestDecodeReader_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		missing string
	}{
		{"namespace", `{"metricName":"m"}`, "Namespace"},
		{"metric name", `{"namespace":"ns"}`, "MetricName"},
		{"both", `{}`, "Namespace"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req model.InvocationRequest
			err := DecodeReader(strings.NewReader(tt.body), &req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation error")
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestDecodeReader_Granularity(t *testing.T) {
	tests := []struct {
		granularity string
		wantErr     bool
	}{
		{"DAILY", false},
		{"MONTHLY", false},
		{"HOURLY", false},
		{"weekly", true},
		{"daily", true},
	}
	for _, tt := range tests {
		t.Run(tt.granularity, func(t *testing.T) {
			body := `{"namespace":"ns","metricName":"m","granularity":"` + tt.granularity + `"}`
			var req model.InvocationRequest
			err := DecodeReader(strings.NewReader(body), &req)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "Granularity")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.granularity, *req.Granularity)
		})
	}
}

func TestValidate_NoGranularity(t *testing.T) {
	err := Validate(&model.InvocationRequest{Namespace: "ns", MetricName: "m"})
	assert.NoError(t, err)
}
