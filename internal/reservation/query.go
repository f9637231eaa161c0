package reservation

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"

	"github.com/edvin/ri-utilization/internal/model"
)

const (
	lookbackDays = 7
	dateLayout   = "2006-01-02"
)

var queryKeys = fieldKeys[cetypes.Dimension]{
	Region:        cetypes.DimensionRegion,
	Service:       cetypes.DimensionService,
	LinkedAccount: cetypes.DimensionLinkedAccount,
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// Predicate restricts one Cost Explorer dimension to a set of values.
type Predicate struct {
	Key    cetypes.Dimension
	Values []string
}

// FilterExpression is a conjunction of predicates. An empty conjunction
// means "no filter".
type FilterExpression struct {
	And []Predicate
}

// DateRange bounds a query with YYYY-MM-DD dates. Cost Explorer treats End
// as exclusive.
type DateRange struct {
	Start string
	End   string
}

// Query is a reservation utilization query for one invocation.
type Query struct {
	Filter      FilterExpression
	Period      DateRange
	Granularity *string
}

// QueryBuilder turns invocation requests into Cost Explorer queries.
type QueryBuilder struct {
	clock Clock
}

func NewQueryBuilder(clock Clock) *QueryBuilder {
	if clock == nil {
		clock = SystemClock
	}
	return &QueryBuilder{clock: clock}
}

// Build returns the query for req over the trailing week ending today (UTC).
func (b *QueryBuilder) Build(req *model.InvocationRequest) Query {
	return Query{
		Filter: FilterExpression{
			And: collectFields(req, queryKeys, func(key cetypes.Dimension, value string) Predicate {
				return Predicate{Key: key, Values: []string{value}}
			}),
		},
		Period:      trailingWeek(b.clock.Now()),
		Granularity: req.Granularity,
	}
}

func trailingWeek(now time.Time) DateRange {
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return DateRange{
		Start: today.AddDate(0, 0, -lookbackDays).Format(dateLayout),
		End:   today.Format(dateLayout),
	}
}

// Input converts the query to a GetReservationUtilization request.
func (q Query) Input() *costexplorer.GetReservationUtilizationInput {
	in := &costexplorer.GetReservationUtilizationInput{
		TimePeriod: &cetypes.DateInterval{
			Start: aws.String(q.Period.Start),
			End:   aws.String(q.Period.End),
		},
		Filter: q.Filter.expression(),
	}
	if q.Granularity != nil {
		in.Granularity = cetypes.Granularity(*q.Granularity)
	}
	return in
}

// expression maps the conjunction onto the Cost Explorer Expression shape.
// Cost Explorer requires And to hold at least two operands, so a single
// predicate is sent bare and an empty conjunction is omitted.
func (f FilterExpression) expression() *cetypes.Expression {
	switch len(f.And) {
	case 0:
		return nil
	case 1:
		e := f.And[0].expression()
		return &e
	}

	and := make([]cetypes.Expression, 0, len(f.And))
	for _, p := range f.And {
		and = append(and, p.expression())
	}
	return &cetypes.Expression{And: and}
}

func (p Predicate) expression() cetypes.Expression {
	return cetypes.Expression{
		Dimensions: &cetypes.DimensionValues{
			Key:    p.Key,
			Values: p.Values,
		},
	}
}
