// Package pointers builds the pointer fields of partial-update inputs, where
// nil means "leave unchanged".
package pointers

func Int(v int) *int             { return &v }
func Float64(v float64) *float64 { return &v }
