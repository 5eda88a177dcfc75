package domain

import (
	"encoding/json"
	"math"
	"strconv"
)

// RawRecord is one catalog item as decoded from the API.
// Numbers are kept as json.Number so passthrough fields round-trip exactly.
type RawRecord map[string]any

// PageQuery describes a single page request against a collection.
type PageQuery struct {
	// Page is the 1-based page number.
	Page int

	// PageSize overrides the upstream default page size when non-zero.
	PageSize int

	// Filter restricts results to a category when non-empty.
	Filter string
}

// Page is the result of one page request.
type Page struct {
	// Records are the items on this page.
	Records []RawRecord

	// TotalPages is the total page count reported by the API.
	TotalPages int

	// StatusOK is false when the API answered with a non-success status.
	StatusOK bool

	// Status describes the response status, used in warnings.
	Status string
}

// FetchOptions are passed unchanged to every page request of a fetch.
type FetchOptions struct {
	// PageSize overrides the upstream page size when non-zero.
	PageSize int

	// Filter is an optional category filter.
	Filter string
}

// AsInt64 converts a decoded JSON number to int64.
// It accepts json.Number, float64, the integer types and numeric strings.
func AsInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case float64:
		return floatToInt(n)
	case float32:
		return floatToInt(float64(n))
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int64, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return int64(f), true
}

// AsString returns v as a string when it is a non-empty string.
func AsString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok && s != ""
}

// AsMap returns v as a field map.
func AsMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case RawRecord:
		return m, true
	default:
		return nil, false
	}
}

// AsList returns v as a list of decoded values.
func AsList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []map[string]any:
		out := make([]any, len(l))
		for i := range l {
			out[i] = l[i]
		}
		return out, true
	case []RawRecord:
		out := make([]any, len(l))
		for i := range l {
			out[i] = map[string]any(l[i])
		}
		return out, true
	default:
		return nil, false
	}
}
