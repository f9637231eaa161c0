package reservation

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
)

// ExtractUtilization returns the total utilization percentage of the last
// period in out, exactly as Cost Explorer reported it. The last element is
// taken as-is; periods are not re-sorted.
func ExtractUtilization(out *costexplorer.GetReservationUtilizationOutput) (string, error) {
	if out == nil || len(out.UtilizationsByTime) == 0 {
		return "", &MissingDataError{Field: "UtilizationsByTime"}
	}

	last := out.UtilizationsByTime[len(out.UtilizationsByTime)-1]
	var period string
	if last.TimePeriod != nil {
		period = aws.ToString(last.TimePeriod.Start)
	}

	if last.Total == nil {
		return "", &MissingDataError{Field: "Total", Period: period}
	}
	pct := aws.ToString(last.Total.UtilizationPercentage)
	if pct == "" {
		return "", &MissingDataError{Field: "UtilizationPercentage", Period: period}
	}

	return pct, nil
}
