// Package query serializes finder conditions, ordering and free-form
// parameters into ordered query-string pairs.
package query

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	And  = "AND"
	Or   = "OR"
	Asc  = "ASC"
	Desc = "DESC"
)

// Param is one key/value pair. Order is significant.
type Param struct {
	Key   string
	Value string
}

// Condition is a single search triple.
type Condition struct {
	Property string
	Operator string
	Value    any
}

// Where builds a Condition.
func Where(property string, operator string, value any) Condition {
	return Condition{Property: property, Operator: operator, Value: value}
}

// Find describes a collection lookup. Empty strings mean "not set".
type Find struct {
	Conditions      []Condition
	LogicalOperator string
	OrderBy         string
	OrderDir        string
	Params          map[string]string
}

// Names holds the parameter names used on the wire.
type Names struct {
	Search          string
	Property        string
	Operator        string
	Value           string
	LogicalOperator string
	OrderBy         string
	OrderDir        string
}

// DefaultNames returns the conventional parameter names.
func DefaultNames() Names {
	return Names{
		Search:          "search",
		Property:        "property",
		Operator:        "operator",
		Value:           "value",
		LogicalOperator: "logical_operator",
		OrderBy:         "order_by",
		OrderDir:        "order_dir",
	}
}

// Params flattens f into ordered pairs: free-form params first (sorted by
// key), then three entries per condition, then logical operator, order-by
// and order direction when set.
func (f Find) Params(names Names) []Param {
	names = names.withDefaults()

	params := FromMap(f.Params)
	for idx, condition := range f.Conditions {
		prefix := names.Search + "[" + strconv.Itoa(idx) + "]"
		params = append(params,
			Param{Key: prefix + "[" + names.Property + "]", Value: condition.Property},
			Param{Key: prefix + "[" + names.Operator + "]", Value: condition.Operator},
			Param{Key: prefix + "[" + names.Value + "]", Value: FormatValue(condition.Value)},
		)
	}
	if f.LogicalOperator != "" {
		params = append(params, Param{Key: names.LogicalOperator, Value: f.LogicalOperator})
	}
	if f.OrderBy != "" {
		params = append(params, Param{Key: names.OrderBy, Value: f.OrderBy})
	}
	if f.OrderDir != "" {
		params = append(params, Param{Key: names.OrderDir, Value: f.OrderDir})
	}
	return params
}

// Validate rejects logical operators and directions outside the known set.
func (f Find) Validate() error {
	switch strings.ToUpper(f.LogicalOperator) {
	case "", And, Or:
	default:
		return fmt.Errorf("logical operator %q must be AND or OR", f.LogicalOperator)
	}
	switch strings.ToUpper(f.OrderDir) {
	case "", Asc, Desc:
	default:
		return fmt.Errorf("order direction %q must be ASC or DESC", f.OrderDir)
	}
	for idx, condition := range f.Conditions {
		if strings.TrimSpace(condition.Property) == "" {
			return fmt.Errorf("condition %d has no property", idx)
		}
		if strings.TrimSpace(condition.Operator) == "" {
			return fmt.Errorf("condition %d has no operator", idx)
		}
	}
	return nil
}

// FromMap converts a map into params sorted by key.
func FromMap(values map[string]string) []Param {
	if len(values) == 0 {
		return nil
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	params := make([]Param, 0, len(keys))
	for _, key := range keys {
		params = append(params, Param{Key: key, Value: values[key]})
	}
	return params
}

// Encode renders params as a query string in order. Brackets in keys are kept
// literal; everything else is percent-encoded.
func Encode(params []Param) string {
	var builder strings.Builder
	for idx, param := range params {
		if idx > 0 {
			builder.WriteByte('&')
		}
		builder.WriteString(escapeKey(param.Key))
		builder.WriteByte('=')
		builder.WriteString(url.QueryEscape(param.Value))
	}
	return builder.String()
}

// FormatValue renders a scalar the way it is sent on the wire.
func FormatValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case []byte:
		return string(typed)
	case bool:
		return strconv.FormatBool(typed)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case int32:
		return strconv.FormatInt(int64(typed), 10)
	case uint:
		return strconv.FormatUint(uint64(typed), 10)
	case uint64:
		return strconv.FormatUint(typed, 10)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case json.Number:
		return typed.String()
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprint(typed)
	}
}

func (n Names) withDefaults() Names {
	defaults := DefaultNames()
	if n.Search == "" {
		n.Search = defaults.Search
	}
	if n.Property == "" {
		n.Property = defaults.Property
	}
	if n.Operator == "" {
		n.Operator = defaults.Operator
	}
	if n.Value == "" {
		n.Value = defaults.Value
	}
	if n.LogicalOperator == "" {
		n.LogicalOperator = defaults.LogicalOperator
	}
	if n.OrderBy == "" {
		n.OrderBy = defaults.OrderBy
	}
	if n.OrderDir == "" {
		n.OrderDir = defaults.OrderDir
	}
	return n
}

func escapeKey(key string) string {
	escaped := url.QueryEscape(key)
	escaped = strings.ReplaceAll(escaped, "%5B", "[")
	return strings.ReplaceAll(escaped, "%5D", "]")
}
