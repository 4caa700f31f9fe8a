package prometheus

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/akasprzok/cubeplot/internal/cube"
	"github.com/prometheus/common/model"
	"github.com/prometheus/prometheus/promql/parser"
)

const dateLayout = "2006-01-02"

// DefaultLookback is the range used when a query carries no date range.
const DefaultLookback = 28 * 24 * time.Hour

var invalidNameChars = regexp.MustCompile(`[^a-zA-Z0-9_:]`)

// MetricName maps a member such as "orders.sales_sum" to "orders_sales_sum".
func MetricName(member string) string {
	name := invalidNameChars.ReplaceAllString(member, "_")
	if name != "" && name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}
	return name
}

// LabelName maps a dimension such as "orders.city" to the label "city".
func LabelName(member string) string {
	_, field := cube.SplitField(member)
	return strings.TrimLeft(invalidNameChars.ReplaceAllString(field, "_"), "0123456789")
}

// Translation is the PromQL form of one measure of a query.
type Translation struct {
	Measure string
	PromQL  string
	// Ranged translations run as range queries over [Start, End] with Step.
	Ranged bool
	Start  time.Time
	End    time.Time
	Step   time.Duration
}

func granularityStep(g cube.Granularity) (time.Duration, bool) {
	switch g {
	case cube.GranularityHour:
		return time.Hour, true
	case cube.GranularityDay:
		return 24 * time.Hour, true
	case cube.GranularityWeek:
		return 7 * 24 * time.Hour, true
	case cube.GranularityMonth:
		return 30 * 24 * time.Hour, true
	default:
		return 0, false
	}
}

func matchers(filters []cube.Filter) ([]string, error) {
	out := make([]string, 0, len(filters))
	for _, f := range filters {
		label := LabelName(f.Member)
		quoted := make([]string, len(f.Values))
		for i, v := range f.Values {
			quoted[i] = regexp.QuoteMeta(v)
		}
		value := strings.Join(quoted, "|")
		switch f.Operator {
		case cube.OperatorEquals:
			out = append(out, fmt.Sprintf("%s=~%q", label, value))
		case cube.OperatorNotEquals:
			out = append(out, fmt.Sprintf("%s!~%q", label, value))
		default:
			return nil, fmt.Errorf("%w: unsupported filter operator %q", cube.ErrQuery, f.Operator)
		}
	}
	return out, nil
}

func dateRange(td []cube.TimeDimension, now time.Time) (time.Time, time.Time, error) {
	if len(td) == 0 || len(td[0].DateRange) < 2 {
		return now.Add(-DefaultLookback), now, nil
	}
	start, err := time.Parse(dateLayout, td[0].DateRange[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing range start: %w", err)
	}
	end, err := time.Parse(dateLayout, td[0].DateRange[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing range end: %w", err)
	}
	return start, end, nil
}

// Translate turns a query into one PromQL expression per measure. Dimensions
// become "sum by" labels and filters become label matchers.
func Translate(q cube.Query, now time.Time) ([]Translation, error) {
	if len(q.Measures) == 0 {
		return nil, fmt.Errorf("%w: query has no measures", cube.ErrQuery)
	}
	sel, err := matchers(q.Filters)
	if err != nil {
		return nil, err
	}
	start, end, err := dateRange(q.TimeDimensions, now)
	if err != nil {
		return nil, err
	}
	step, ranged := granularityStep(q.Granularity())

	labels := make([]string, 0, len(q.Dimensions))
	for _, d := range q.Dimensions {
		labels = append(labels, LabelName(d))
	}

	out := make([]Translation, 0, len(q.Measures))
	for _, m := range q.Measures {
		selector := MetricName(m)
		if len(sel) > 0 {
			selector += "{" + strings.Join(sel, ", ") + "}"
		}
		expr := fmt.Sprintf("sum(%s)", selector)
		if len(labels) > 0 {
			expr = fmt.Sprintf("sum by (%s) (%s)", strings.Join(labels, ", "), selector)
		}
		if _, err := parser.ParseExpr(expr); err != nil {
			return nil, fmt.Errorf("%w: invalid promql %q: %w", cube.ErrQuery, expr, err)
		}
		out = append(out, Translation{
			Measure: m,
			PromQL:  expr,
			Ranged:  ranged,
			Start:   start,
			End:     end,
			Step:    step,
		})
	}
	return out, nil
}

// Source answers cube queries from Prometheus.
type Source struct {
	client  Client
	timeout time.Duration
	now     func() time.Time
}

// NewSource wraps a Prometheus client as a cube.Client.
func NewSource(client Client, timeout time.Duration) *Source {
	return &Source{client: client, timeout: timeout, now: time.Now}
}

func (s *Source) Load(ctx context.Context, queries []cube.Query) ([]cube.Result, error) {
	results := make([]cube.Result, 0, len(queries))
	for _, q := range queries {
		r, err := s.load(ctx, q)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// rowSet merges samples of several measures into rows sharing labels and time.
type rowSet struct {
	keys []string
	rows map[string]cube.Row
}

func (rs *rowSet) row(key string) cube.Row {
	if rs.rows == nil {
		rs.rows = make(map[string]cube.Row)
	}
	r, ok := rs.rows[key]
	if !ok {
		r = cube.Row{}
		rs.rows[key] = r
		rs.keys = append(rs.keys, key)
	}
	return r
}

func (rs *rowSet) list() []cube.Row {
	out := make([]cube.Row, 0, len(rs.keys))
	for _, k := range rs.keys {
		out = append(out, rs.rows[k])
	}
	return out
}

func setDimensions(r cube.Row, dims []string, metric model.Metric) {
	for _, d := range dims {
		r[d] = string(metric[model.LabelName(LabelName(d))])
	}
}

func (s *Source) load(ctx context.Context, q cube.Query) (cube.Result, error) {
	translations, err := Translate(q, s.now())
	if err != nil {
		return cube.Result{}, err
	}

	var rs rowSet
	for _, t := range translations {
		if t.Ranged {
			matrix, _, err := s.client.QueryRange(ctx, t.PromQL, t.Start, t.End, t.Step, s.timeout)
			if err != nil {
				return cube.Result{}, fmt.Errorf("%w: range query %q: %w", cube.ErrQuery, t.PromQL, err)
			}
			timeDim := q.TimeDimensions[0].Dimension
			for _, stream := range matrix {
				for _, sample := range stream.Values {
					ts := sample.Timestamp.Time().UTC().Format(time.RFC3339)
					r := rs.row(stream.Metric.String() + "@" + ts)
					setDimensions(r, q.Dimensions, stream.Metric)
					r[timeDim] = ts
					r[t.Measure] = float64(sample.Value)
				}
			}
			continue
		}

		_, vector, err := s.client.Query(ctx, t.PromQL, t.End, s.timeout)
		if err != nil {
			return cube.Result{}, fmt.Errorf("%w: query %q: %w", cube.ErrQuery, t.PromQL, err)
		}
		for _, sample := range vector {
			r := rs.row(sample.Metric.String())
			setDimensions(r, q.Dimensions, sample.Metric)
			r[t.Measure] = float64(sample.Value)
		}
	}

	rows := rs.list()
	sortRows(rows, q.Order)
	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}
	return cube.Result{Data: rows}, nil
}

// sortRows orders rows by the query's orders, first order first, comparing
// numerically when both values are numbers.
func sortRows(rows []cube.Row, orders []cube.Order) {
	if len(orders) == 0 {
		return
	}
	slices.SortStableFunc(rows, func(a, b cube.Row) int {
		for _, o := range orders {
			c := compareMember(a, b, o.Member)
			if o.Descending() {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
}

func compareMember(a, b cube.Row, member string) int {
	fa, okA := a.Float(member)
	fb, okB := b.Float(member)
	if okA && okB {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a.String(member), b.String(member))
}
