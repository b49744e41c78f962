// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import "github.com/tidwall/gjson"

// Fallback is an ordered list of gjson paths. Lookups return the value at
// the first path that holds a usable value of the requested kind, else the
// caller's default. Missing keys, nulls and wrong types all count as absent,
// so a lookup never fails.
type Fallback []string

// String returns the first non-empty string.
func (f Fallback) String(r gjson.Result, def string) string {
	for _, p := range f {
		if v := r.Get(p); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return def
}

// Int returns the first numeric value truncated to int.
func (f Fallback) Int(r gjson.Result) (int, bool) {
	for _, p := range f {
		if v := r.Get(p); v.Type == gjson.Number {
			return int(v.Int()), true
		}
	}
	return 0, false
}

// IntOr is Int with a default.
func (f Fallback) IntOr(r gjson.Result, def int) int {
	if n, ok := f.Int(r); ok {
		return n
	}
	return def
}

// IntPtr is Int returning nil when absent.
func (f Fallback) IntPtr(r gjson.Result) *int {
	if n, ok := f.Int(r); ok {
		return &n
	}
	return nil
}

// Strings returns the string elements of the first array found. Non-string
// elements are dropped. The result is never nil.
func (f Fallback) Strings(r gjson.Result) []string {
	for _, p := range f {
		v := r.Get(p)
		if !v.IsArray() {
			continue
		}
		out := []string{}
		for _, el := range v.Array() {
			if el.Type == gjson.String {
				out = append(out, el.Str)
			}
		}
		return out
	}
	return []string{}
}

// Array returns the elements of the first array found, or nil.
func (f Fallback) Array(r gjson.Result) []gjson.Result {
	for _, p := range f {
		if v := r.Get(p); v.IsArray() {
			return v.Array()
		}
	}
	return nil
}

// Object returns the first object found.
func (f Fallback) Object(r gjson.Result) (gjson.Result, bool) {
	for _, p := range f {
		if v := r.Get(p); v.IsObject() {
			return v, true
		}
	}
	return gjson.Result{}, false
}
