package legacy

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/zatekoja/unitycure/backend/pkg/utils"
)

// Row is one legacy row keyed by column name. Values come either from the
// SQLite driver (nil, int64, float64, string, []byte) or from a snapshot
// decoded with json.Decoder.UseNumber (nil, json.Number, string, bool).
type Row = map[string]any

// Text returns a column as a string; nil and missing columns are empty.
func Text(row Row, col string) string {
	switch v := row[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case json.Number:
		return v.String()
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Float returns a numeric column; nil, missing and blank values are 0.
// NaN and infinities are rejected.
func Float(row Row, col string) (float64, error) {
	f, err := rawFloat(row, col)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("column %s: %v is not a finite number", col, f)
	}
	return f, nil
}

func rawFloat(row Row, col string) (float64, error) {
	switch v := row[col].(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string, []byte:
		s := strings.TrimSpace(Text(row, col))
		if s == "" {
			return 0, nil
		}
		return strconv.ParseFloat(s, 64)
	default:
		return 0, fmt.Errorf("column %s: unsupported numeric value of type %T", col, v)
	}
}

// Int returns an integer column. ok is false when the value is absent.
func Int(row Row, col string) (n int64, ok bool, err error) {
	v, present := row[col]
	if !present || v == nil {
		return 0, false, nil
	}
	if s, isText := v.(string); isText && strings.TrimSpace(s) == "" {
		return 0, false, nil
	}
	if i, isInt := v.(int64); isInt {
		return i, true, nil
	}
	f, err := Float(row, col)
	if err != nil {
		return 0, false, err
	}
	if f != float64(int64(f)) {
		return 0, false, fmt.Errorf("column %s: %v is not an integer", col, f)
	}
	return int64(f), true, nil
}

// Bool reads a 0/1 flag. Text values "true"/"false" are accepted too.
func Bool(row Row, col string) bool {
	switch v := row[col].(type) {
	case nil:
		return false
	case bool:
		return v
	case string, []byte:
		s := strings.ToLower(strings.TrimSpace(Text(row, col)))
		return s == "1" || s == "true"
	default:
		f, err := Float(row, col)
		return err == nil && f != 0
	}
}

// List reads a JSON-encoded or comma-delimited list column.
func List(row Row, col string) ([]string, error) {
	return utils.ParseStringList(row[col])
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Time reads a timestamp stored as text or as unix milliseconds. ok is false
// when the value is absent.
func Time(row Row, col string) (t time.Time, ok bool, err error) {
	switch row[col].(type) {
	case nil:
		return time.Time{}, false, nil
	case int64, float64, json.Number:
		ms, _, err := Int(row, col)
		if err != nil {
			return time.Time{}, false, err
		}
		return time.UnixMilli(ms).UTC(), true, nil
	default:
		s := strings.TrimSpace(Text(row, col))
		if s == "" {
			return time.Time{}, false, nil
		}
		for _, layout := range timeLayouts {
			if parsed, perr := time.Parse(layout, s); perr == nil {
				return parsed.UTC(), true, nil
			}
		}
		if ms, perr := strconv.ParseInt(s, 10, 64); perr == nil {
			return time.UnixMilli(ms).UTC(), true, nil
		}
		return time.Time{}, false, fmt.Errorf("column %s: unrecognized time %q", col, s)
	}
}
