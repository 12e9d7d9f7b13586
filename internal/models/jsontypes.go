package models

import (
	"encoding/json"
	"strings"
)

// StringList is a list of short strings that also accepts a single
// newline-separated text block on the wire. Admin forms submit the features
// field as one textarea value; API clients send a proper JSON array. Either
// way the stored value is an ordered list of trimmed, non-empty lines.
type StringList []string

// UnmarshalJSON accepts either a JSON array of strings or a single string.
func (s *StringList) UnmarshalJSON(data []byte) error {
	var asList []string
	if err := json.Unmarshal(data, &asList); err == nil {
		*s = cleanLines(asList)
		return nil
	}

	var asText string
	if err := json.Unmarshal(data, &asText); err != nil {
		return err
	}
	*s = SplitLines(asText)
	return nil
}

// SplitLines splits a text block on line breaks, trims each line and drops
// empty ones.
func SplitLines(text string) []string {
	return cleanLines(strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n"))
}

func cleanLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// LooseBool is a boolean that tolerates the historical payload shapes:
// true/false, numbers, and strings. Coercion follows the legacy importer's
// convention: only null, 0, false and the empty string are falsy, so the
// string "false" is truthy. Wrong types are corrected silently rather than
// rejected because stored legacy data already contains all of these shapes.
type LooseBool bool

// UnmarshalJSON coerces any scalar JSON value to a boolean.
func (b *LooseBool) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = LooseBool(Truthy(v))
	return nil
}

// MarshalJSON renders the canonical boolean.
func (b LooseBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}

// Truthy applies the coercion described on LooseBool to a decoded JSON value.
func Truthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	default:
		return true
	}
}
