// Package binder maps form bodies and query strings onto tagged structs.
//
//	type Filters struct {
//		Title string `query:"titre"`
//	}
//	var f Filters
//	err := binder.Query()(r, &f)
//
// Strings are trimmed; empty values leave numeric fields at zero and
// pointers nil. Checkbox values "on"/"true"/"1" set booleans.
package binder
