package transport

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
)

// BuildQuery serialises optional filter parameters into a canonical query
// string. Keys with absent values (empty string, zero number, nil) are
// omitted; the result includes the leading "?" or is empty. Keys are sorted
// so equal filters always produce the same string.
func BuildQuery(params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := url.Values{}
	for _, k := range keys {
		if s, ok := queryValue(params[k]); ok {
			values.Set(k, s)
		}
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

func queryValue(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		if val == "" {
			return "", false
		}
		return val, true
	case int:
		if val == 0 {
			return "", false
		}
		return strconv.Itoa(val), true
	case int64:
		if val == 0 {
			return "", false
		}
		return strconv.FormatInt(val, 10), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return fmt.Sprint(val), true
	}
}
