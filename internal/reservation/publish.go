package reservation

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/edvin/ri-utilization/internal/model"
)

var dimensionKeys = fieldKeys[string]{
	Region:        "Region",
	Service:       "Service",
	LinkedAccount: "LinkedAccount",
}

// MetricWriter is the subset of the CloudWatch client used for publishing.
type MetricWriter interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// MetricDatum is the single value written per invocation.
type MetricDatum struct {
	MetricName string
	Value      float64
	Dimensions []model.Dimension
}

// PublishResult pairs the written datum with the CloudWatch response.
type PublishResult struct {
	Namespace string
	Datum     MetricDatum
	Output    *cloudwatch.PutMetricDataOutput
}

// Acknowledgment summarizes the write for the invoker.
func (r *PublishResult) Acknowledgment() *model.Acknowledgment {
	ack := &model.Acknowledgment{
		Namespace:  r.Namespace,
		MetricName: r.Datum.MetricName,
		Value:      r.Datum.Value,
		Dimensions: r.Datum.Dimensions,
	}
	if r.Output != nil {
		ack.RequestID, _ = awsmiddleware.GetRequestIDMetadata(r.Output.ResultMetadata)
	}
	return ack
}

// MetricPublisher writes utilization values to CloudWatch.
type MetricPublisher struct {
	client MetricWriter
	logger zerolog.Logger
}

func NewMetricPublisher(client MetricWriter, logger zerolog.Logger) *MetricPublisher {
	return &MetricPublisher{
		client: client,
		logger: logger.With().Str("component", "metric-publisher").Logger(),
	}
}

// BuildDatum parses value and tags it with the request's filter fields.
func BuildDatum(metricName, value string, req *model.InvocationRequest) (MetricDatum, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return MetricDatum{}, &InvalidValueError{Value: value, Err: err}
	}

	return MetricDatum{
		MetricName: metricName,
		Value:      d.InexactFloat64(),
		Dimensions: collectFields(req, dimensionKeys, func(name, v string) model.Dimension {
			return model.Dimension{Name: name, Value: v}
		}),
	}, nil
}

// Publish writes value as one datum under namespace. Nothing is written when
// value does not parse.
func (p *MetricPublisher) Publish(ctx context.Context, namespace, metricName, value string, req *model.InvocationRequest) (*PublishResult, error) {
	datum, err := BuildDatum(metricName, value, req)
	if err != nil {
		return nil, err
	}

	p.logger.Debug().
		Str("namespace", namespace).
		Str("metric", metricName).
		Float64("value", datum.Value).
		Int("dimensions", len(datum.Dimensions)).
		Msg("putting metric data")

	out, err := p.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(namespace),
		MetricData: []cwtypes.MetricDatum{datum.cloudWatch()},
	})
	if err != nil {
		return nil, &PublishError{Namespace: namespace, MetricName: metricName, Err: err}
	}

	return &PublishResult{Namespace: namespace, Datum: datum, Output: out}, nil
}

func (d MetricDatum) cloudWatch() cwtypes.MetricDatum {
	dims := make([]cwtypes.Dimension, 0, len(d.Dimensions))
	for _, dim := range d.Dimensions {
		dims = append(dims, cwtypes.Dimension{
			Name:  aws.String(dim.Name),
			Value: aws.String(dim.Value),
		})
	}
	return cwtypes.MetricDatum{
		MetricName: aws.String(d.MetricName),
		Value:      aws.Float64(d.Value),
		Dimensions: dims,
	}
}
