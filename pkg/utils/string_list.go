package utils

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseStringList materializes a list column that legacy rows stored either as
// a JSON array or as comma-delimited text. JSON is tried first; anything that
// does not decode to a string array is split on commas. nil and blank values
// yield an empty, non-nil slice.
func ParseStringList(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return cleanItems(v), nil
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("list item %v is %T, want string", item, item)
			}
			items = append(items, s)
		}
		return cleanItems(items), nil
	case []byte:
		return parseListText(string(v)), nil
	case string:
		return parseListText(v), nil
	default:
		return nil, fmt.Errorf("unsupported list value of type %T", value)
	}
}

func parseListText(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}
	}
	var decoded []string
	if err := json.Unmarshal([]byte(text), &decoded); err == nil {
		return cleanItems(decoded)
	}
	return cleanItems(strings.Split(text, ","))
}

func cleanItems(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// JoinStringList encodes a list the way the legacy store expects it.
func JoinStringList(items []string) string {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(data)
}
