package util

import "sort"

// OrderedKeys returns the keys of m, a map keyed on a string, sorted
// alphabetically. This is used throughout the compiler wherever a map is
// walked but the result must be reproducible across runs (map iteration
// order in Go is randomized).
func OrderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
