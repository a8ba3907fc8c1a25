// Package ordered provides ordered, deterministic traversal of maps.
package ordered // import "github.com/CognitoIQ/wsdlfetch/internal/ordered"

import "sort"

// Keys returns the keys of m in sorted order.
func Keys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RangeStrings calls fn on each key in m in sorted order.
func RangeStrings[V any](m map[string]V, fn func(string)) {
	for _, k := range Keys(m) {
		fn(k)
	}
}
