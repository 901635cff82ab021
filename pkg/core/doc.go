// Package core provides a small, stable facade over attesta's internal
// collector for external integrations. It deliberately re-exports a narrow
// API surface so build tooling and third-party programs can depend on a
// stable import path without reaching into internal packages.
//
// Example:
//
//	cfg := core.Config{Root: "."}
//	res, err := core.Collect(context.Background(), cfg)
//	if err != nil { /* handle */ }
//	_ = core.MarshalResult(os.Stdout, res)
package core
