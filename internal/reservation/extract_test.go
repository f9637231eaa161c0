package reservation

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractUtilization_LastPeriod(t *testing.T) {
	value, err := ExtractUtilization(utilizationOutput("12.3", "45.6"))
	require.NoError(t, err)
	assert.Equal(t, "45.6", value)
}

func TestExtractUtilization_ZeroIsAValue(t *testing.T) {
	value, err := ExtractUtilization(utilizationOutput("88.1", "0"))
	require.NoError(t, err)
	assert.Equal(t, "0", value)
}

func TestExtractUtilization_LastElementNotSorted(t *testing.T) {
	out := utilizationOutput("10", "20")
	// Swap so the later period comes first.
	out.UtilizationsByTime[0], out.UtilizationsByTime[1] = out.UtilizationsByTime[1], out.UtilizationsByTime[0]

	value, err := ExtractUtilization(out)
	require.NoError(t, err)
	assert.Equal(t, "10", value)
}

func TestExtractUtilization_Missing(t *testing.T) {
	noTotal := utilizationOutput("12.3", "45.6")
	noTotal.UtilizationsByTime[1].Total = nil

	noPct := utilizationOutput("12.3", "45.6")
	noPct.UtilizationsByTime[1].Total.UtilizationPercentage = nil

	emptyPct := utilizationOutput("12.3", "")

	noPeriodBounds := &costexplorer.GetReservationUtilizationOutput{
		UtilizationsByTime: []cetypes.UtilizationByTime{{}},
	}

	tests := []struct {
		name      string
		out       *costexplorer.GetReservationUtilizationOutput
		wantField string
	}{
		{"nil output", nil, "UtilizationsByTime"},
		{"empty period list", &costexplorer.GetReservationUtilizationOutput{}, "UtilizationsByTime"},
		{"last period without total", noTotal, "Total"},
		{"last period without percentage", noPct, "UtilizationPercentage"},
		{"last period with empty percentage", emptyPct, "UtilizationPercentage"},
		{"period without time bounds", noPeriodBounds, "Total"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := ExtractUtilization(tt.out)
			require.Error(t, err)
			assert.Empty(t, value)

			var missing *MissingDataError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.wantField, missing.Field)

			phase, ok := PhaseOf(err)
			assert.True(t, ok)
			assert.Equal(t, PhaseExtracting, phase)
		})
	}
}

func TestMissingDataError_MentionsPeriod(t *testing.T) {
	out := utilizationOutput("12.3", "45.6")
	out.UtilizationsByTime[1].Total = nil

	_, err := ExtractUtilization(out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing Total")
	assert.Contains(t, err.Error(), "2024-01-02")
}
