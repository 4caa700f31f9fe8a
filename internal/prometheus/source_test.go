package prometheus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akasprzok/cubeplot/internal/cube"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
)

var feb = []string{"2025-02-01", "2025-02-28"}

func TestMetricName(t *testing.T) {
	tests := []struct {
		member string
		want   string
	}{
		{member: "orders.sales_sum", want: "orders_sales_sum"},
		{member: "a-b.c d", want: "a_b_c_d"},
		{member: "9lives.count", want: "_9lives_count"},
	}
	for _, tt := range tests {
		t.Run(tt.member, func(t *testing.T) {
			if got := MetricName(tt.member); got != tt.want {
				t.Errorf("MetricName() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLabelName(t *testing.T) {
	if got := LabelName("orders.city-name"); got != "city_name" {
		t.Errorf("LabelName() = %v, want %v", got, "city_name")
	}
}

func TestTranslate(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name       string
		query      cube.Query
		wantPromQL []string
		wantRanged bool
		wantErr    bool
	}{
		{
			name:       "total",
			query:      cube.Query{Measures: []string{"sku.sales"}},
			wantPromQL: []string{"sum(sku_sales)"},
		},
		{
			name:       "grouped",
			query:      cube.Query{Measures: []string{"city.sales"}, Dimensions: []string{"city.name"}},
			wantPromQL: []string{"sum by (name) (city_sales)"},
		},
		{
			name: "filtered",
			query: cube.Query{
				Measures: []string{"city.sales"},
				Filters: []cube.Filter{
					{Member: "city.name", Operator: cube.OperatorEquals, Values: []string{"Mumbai", "New Delhi"}},
					{Member: "city.state", Operator: cube.OperatorNotEquals, Values: []string{"a.b"}},
				},
			},
			wantPromQL: []string{`sum(city_sales{name=~"Mumbai|New Delhi", state!~"a\\.b"})`},
		},
		{
			name: "daily series",
			query: cube.Query{
				Measures:       []string{"sku.sales", "sku.qty"},
				TimeDimensions: []cube.TimeDimension{{Dimension: "sku.created_at", Granularity: cube.GranularityDay, DateRange: feb}},
			},
			wantPromQL: []string{"sum(sku_sales)", "sum(sku_qty)"},
			wantRanged: true,
		},
		{
			name:    "no measures",
			query:   cube.Query{Dimensions: []string{"city.name"}},
			wantErr: true,
		},
		{
			name: "unsupported operator",
			query: cube.Query{
				Measures: []string{"city.sales"},
				Filters:  []cube.Filter{{Member: "city.name", Operator: "contains", Values: []string{"x"}}},
			},
			wantErr: true,
		},
		{
			name: "bad date",
			query: cube.Query{
				Measures:       []string{"sku.sales"},
				TimeDimensions: []cube.TimeDimension{{Dimension: "sku.created_at", DateRange: []string{"yesterday", "today"}}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Translate(tt.query, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Translate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, cube.ErrQuery) && tt.name != "bad date" {
					t.Errorf("Translate() error = %v, want ErrQuery", err)
				}
				return
			}
			if len(got) != len(tt.wantPromQL) {
				t.Fatalf("Translate() returned %d translations, want %d", len(got), len(tt.wantPromQL))
			}
			for i, tr := range got {
				if tr.PromQL != tt.wantPromQL[i] {
					t.Errorf("Translate()[%d].PromQL = %v, want %v", i, tr.PromQL, tt.wantPromQL[i])
				}
				if tr.Ranged != tt.wantRanged {
					t.Errorf("Translate()[%d].Ranged = %v, want %v", i, tr.Ranged, tt.wantRanged)
				}
			}
		})
	}
}

func TestTranslateRange(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	got, err := Translate(cube.Query{
		Measures:       []string{"sku.sales"},
		TimeDimensions: []cube.TimeDimension{{Dimension: "sku.created_at", Granularity: cube.GranularityDay, DateRange: feb}},
	}, now)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	tr := got[0]
	if !tr.Start.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) || !tr.End.Equal(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Translate() range = %v..%v", tr.Start, tr.End)
	}
	if tr.Step != 24*time.Hour {
		t.Errorf("Translate() step = %v, want 24h", tr.Step)
	}

	got, _ = Translate(cube.Query{Measures: []string{"sku.sales"}}, now)
	if !got[0].End.Equal(now) || !got[0].Start.Equal(now.Add(-DefaultLookback)) {
		t.Errorf("Translate() default range = %v..%v", got[0].Start, got[0].End)
	}
}

func TestSourceLoadInstant(t *testing.T) {
	client := &MockClient{
		QueryFunc: func(query string, _ time.Time, _ time.Duration) (v1.Warnings, model.Vector, error) {
			if query != "sum by (name) (city_sales)" {
				t.Errorf("Query() query = %q", query)
			}
			return nil, model.Vector{
				{Metric: model.Metric{"name": "Mumbai"}, Value: 164},
				{Metric: model.Metric{"name": "New Delhi"}, Value: 2650},
				{Metric: model.Metric{"name": "West Bengal"}, Value: 122},
			}, nil
		},
	}
	s := NewSource(client, time.Second)

	results, err := s.Load(context.Background(), []cube.Query{{
		Measures:   []string{"city.sales"},
		Dimensions: []string{"city.name"},
		Order:      []cube.Order{{Member: "city.sales", Direction: cube.Desc}},
		Limit:      2,
	}})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	rows := results[0].Data
	if len(rows) != 2 {
		t.Fatalf("Load() returned %d rows, want 2", len(rows))
	}
	if rows[0].String("city.name") != "New Delhi" || rows[1].String("city.name") != "Mumbai" {
		t.Errorf("Load() rows = %v", rows)
	}
	if v, _ := rows[0].Float("city.sales"); v != 2650 {
		t.Errorf("Load() first value = %v, want 2650", v)
	}
}

func TestSourceLoadRange(t *testing.T) {
	day := func(d int) model.Time {
		return model.TimeFromUnix(time.Date(2025, 2, d, 0, 0, 0, 0, time.UTC).Unix())
	}
	client := &MockClient{
		QueryRangeFunc: func(query string, start, end time.Time, step time.Duration, _ time.Duration) (model.Matrix, v1.Warnings, error) {
			if step != 24*time.Hour {
				t.Errorf("QueryRange() step = %v", step)
			}
			value := model.SampleValue(10)
			if query == "sum(sku_qty)" {
				value = 2
			}
			return model.Matrix{{
				Metric: model.Metric{},
				Values: []model.SamplePair{{Timestamp: day(1), Value: value}, {Timestamp: day(2), Value: value * 2}},
			}}, nil, nil
		},
	}
	s := NewSource(client, time.Second)

	results, err := s.Load(context.Background(), []cube.Query{{
		Measures:       []string{"sku.sales", "sku.qty"},
		TimeDimensions: []cube.TimeDimension{{Dimension: "sku.created_at", Granularity: cube.GranularityDay, DateRange: feb}},
	}})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	rows := results[0].Data
	if len(rows) != 2 {
		t.Fatalf("Load() returned %d rows, want 2", len(rows))
	}
	if got := rows[1].String("sku.created_at"); got != "2025-02-02T00:00:00Z" {
		t.Errorf("created_at = %q", got)
	}
	sales, _ := rows[1].Float("sku.sales")
	qty, _ := rows[1].Float("sku.qty")
	if sales != 20 || qty != 4 {
		t.Errorf("row = %v, want sales 20 qty 4", rows[1])
	}
}

func TestSourceLoadError(t *testing.T) {
	client := &MockClient{
		QueryFunc: func(string, time.Time, time.Duration) (v1.Warnings, model.Vector, error) {
			return nil, nil, errors.New("unavailable")
		},
	}
	_, err := NewSource(client, time.Second).Load(context.Background(), []cube.Query{{Measures: []string{"sku.sales"}}})
	if !errors.Is(err, cube.ErrQuery) {
		t.Errorf("Load() error = %v, want ErrQuery", err)
	}
}

func TestSortRows(t *testing.T) {
	rows := []cube.Row{
		{"c.name": "b", "c.v": 2.0},
		{"c.name": "a", "c.v": 10.0},
		{"c.name": "c", "c.v": 2.0},
	}
	sortRows(rows, map[string]string{"c.v": "asc"})
	if rows[0].String("c.name") != "b" || rows[1].String("c.name") != "c" || rows[2].String("c.name") != "a" {
		t.Errorf("sortRows() = %v", rows)
	}
}

func TestSortRowsKeepsOrderPrecedence(t *testing.T) {
	rows := []cube.Row{
		{"t.a": 1.0, "t.b": "y"},
		{"t.a": 2.0, "t.b": "x"},
		{"t.a": 1.0, "t.b": "x"},
	}
	sortRows(rows, []cube.Order{{Member: "t.b", Direction: cube.Asc}, {Member: "t.a", Direction: cube.Desc}})

	want := []struct {
		a float64
		b string
	}{{2, "x"}, {1, "x"}, {1, "y"}}
	for i, w := range want {
		a, _ := rows[i].Float("t.a")
		if a != w.a || rows[i].String("t.b") != w.b {
			t.Errorf("rows[%d] = %v, want t.a=%v t.b=%v", i, rows[i], w.a, w.b)
		}
	}
}
