package reservation

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/stretchr/testify/mock"
)

// ---------- Mock Cost Explorer ----------

type mockReader struct {
	mock.Mock
}

func (m *mockReader) GetReservationUtilization(ctx context.Context, params *costexplorer.GetReservationUtilizationInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetReservationUtilizationOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*costexplorer.GetReservationUtilizationOutput), args.Error(1)
}

// ---------- Mock CloudWatch ----------

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cloudwatch.PutMetricDataOutput), args.Error(1)
}

// ---------- Mock Observer ----------

type mockObserver struct {
	mock.Mock
}

func (m *mockObserver) ObserveInvocation(outcome string, duration time.Duration) {
	m.Called(outcome, duration)
}

// ---------- Helpers ----------

func strPtr(s string) *string { return &s }

func fixedClock(year int, month time.Month, day int) Clock {
	return ClockFunc(func() time.Time {
		return time.Date(year, month, day, 15, 4, 5, 0, time.UTC)
	})
}

// utilizationOutput builds a response with one period per percentage.
func utilizationOutput(percentages ...string) *costexplorer.GetReservationUtilizationOutput {
	out := &costexplorer.GetReservationUtilizationOutput{}
	for i, pct := range percentages {
		out.UtilizationsByTime = append(out.UtilizationsByTime, cetypes.UtilizationByTime{
			TimePeriod: &cetypes.DateInterval{
				Start: aws.String(time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC).Format(dateLayout)),
				End:   aws.String(time.Date(2024, 1, 2+i, 0, 0, 0, 0, time.UTC).Format(dateLayout)),
			},
			Total: &cetypes.ReservationAggregates{
				UtilizationPercentage: aws.String(pct),
			},
		})
	}
	return out
}
