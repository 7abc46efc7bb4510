// Package coerce converts loosely typed values from upstream facility
// records into Go scalars. Upstream parsing hands us whatever the source
// XML carried: strings, numbers, bools, or nothing. Every function is pure
// and signals "unknown" through the second return value instead of erroring.
package coerce

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

var (
	trueTokens  = map[string]struct{}{"y": {}, "yes": {}, "true": {}, "1": {}, "t": {}}
	falseTokens = map[string]struct{}{"n": {}, "no": {}, "false": {}, "0": {}, "f": {}}
)

// Bool interprets x as a yes/no indicator. Matching is case-insensitive
// against fixed token sets; anything else (including nil) is unknown.
func Bool(x any) (bool, bool) {
	if x == nil {
		return false, false
	}
	if b, ok := x.(bool); ok {
		return b, true
	}
	s := strings.ToLower(strings.TrimSpace(stringify(x)))
	if _, ok := trueTokens[s]; ok {
		return true, true
	}
	if _, ok := falseTokens[s]; ok {
		return false, true
	}
	return false, false
}

// Float interprets x as a number. Empty or unparsable text is unknown.
func Float(x any) (float64, bool) {
	switch v := x.(type) {
	case nil:
		return 0, false
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
		if err != nil {
			return 0, false
		}
		return f, true
	}
	s := strings.TrimSpace(stringify(x))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// String returns x as a trimmed string; empty after trimming is unknown.
func String(x any) (string, bool) {
	if x == nil {
		return "", false
	}
	s := strings.TrimSpace(stringify(x))
	if s == "" {
		return "", false
	}
	return s, true
}

func stringify(x any) string {
	if s, ok := x.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", x)
}
