// Package cube is a client for a semantic-layer query service speaking the
// Cube REST load API: declarative queries in, rows of namespaced fields out.
package cube

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Granularity is the time bucketing of a time dimension.
type Granularity string

const (
	GranularityNone  Granularity = ""
	GranularityHour  Granularity = "hour"
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// TimeDimension restricts and optionally buckets a query by a time field.
type TimeDimension struct {
	Dimension   string      `json:"dimension" yaml:"dimension"`
	Granularity Granularity `json:"granularity,omitempty" yaml:"granularity,omitempty"`
	DateRange   []string    `json:"dateRange,omitempty" yaml:"date_range,omitempty"`
}

// Filter operators understood by every client in this package.
const (
	OperatorEquals    = "equals"
	OperatorNotEquals = "notEquals"
)

// Filter restricts a member to (or away from) a set of values.
type Filter struct {
	Member   string   `json:"member" yaml:"member"`
	Operator string   `json:"operator" yaml:"operator"`
	Values   []string `json:"values,omitempty" yaml:"values,omitempty"`
}

// Sort directions.
const (
	Asc  = "asc"
	Desc = "desc"
)

// Order sorts results by one member. A query's orders apply in sequence, the
// first being the primary key. On the wire each is a [member, direction] pair.
type Order struct {
	Member    string `yaml:"member"`
	Direction string `yaml:"direction"`
}

// Descending reports whether the order is descending.
func (o Order) Descending() bool {
	return strings.EqualFold(o.Direction, Desc)
}

func (o Order) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{o.Member, o.Direction})
}

func (o *Order) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("decoding order: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("decoding order: want [member, direction], got %d elements", len(pair))
	}
	o.Member, o.Direction = pair[0], pair[1]
	return nil
}

// Query is a declarative request for measures grouped by dimensions.
// Member names are namespaced as "<dataset>.<field>".
type Query struct {
	Measures       []string          `json:"measures,omitempty" yaml:"measures,omitempty"`
	Dimensions     []string          `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
	TimeDimensions []TimeDimension   `json:"timeDimensions,omitempty" yaml:"time_dimensions,omitempty"`
	Filters        []Filter          `json:"filters,omitempty" yaml:"filters,omitempty"`
	Order          []Order           `json:"order,omitempty" yaml:"order,omitempty"`
	Limit          int               `json:"limit,omitempty" yaml:"limit,omitempty"`
}

// Granularity returns the granularity of the first time dimension, if any.
func (q Query) Granularity() Granularity {
	if len(q.TimeDimensions) == 0 {
		return GranularityNone
	}
	return q.TimeDimensions[0].Granularity
}

// Key is a canonical string form of the query, usable as a map key.
func (q Query) Key() string {
	b, err := json.Marshal(q)
	if err != nil {
		return fmt.Sprintf("%+v", q)
	}
	return string(b)
}

// Field joins a dataset and field name into a member name.
func Field(dataset, name string) string {
	return dataset + "." + name
}

// SplitField splits a member name into dataset and field. A name without a
// dot is returned as the field.
func SplitField(member string) (dataset, name string) {
	i := strings.LastIndex(member, ".")
	if i < 0 {
		return "", member
	}
	return member[:i], member[i+1:]
}

// Row maps member names to values. Values are float64 or string; numbers
// may also arrive as numeric strings.
type Row map[string]any

// Float returns the member as a number. ok is false when the member is
// missing or not numeric.
func (r Row) Float(member string) (float64, bool) {
	switch v := r[member].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// String returns the member formatted as text, or "" when missing.
func (r Row) String(member string) string {
	switch v := r[member].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Result holds the rows answering one query.
type Result struct {
	Data []Row `json:"data" yaml:"data"`
}
