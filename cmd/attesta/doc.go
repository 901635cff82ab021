// Package attesta provides the command-line interface for the attesta tool.
// It configures subcommands (collect, verify, categories, etc.), parses
// flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/attesta/attesta/cmd/attesta"
//	func main() { attesta.Execute() }
package attesta
