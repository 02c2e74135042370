package main

import (
	"maps"
	"slices"
)

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

// record keeps err under name if it's set and reports whether it was.
func (r *report) record(name string, err error) bool {
	if err == nil {
		return false
	}
	if r.Errors == nil {
		r.Errors = make(map[string]string)
	}
	r.Errors[name] = err.Error()
	return true
}
