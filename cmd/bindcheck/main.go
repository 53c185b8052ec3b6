// Command bindcheck is a linter that reports parameter binder calls in
// functions that are never wrapped.
//
// Usage:
//
//	bindcheck [flags] ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"subparams/pkg/bindcheck"
)

func main() {
	singlechecker.Main(bindcheck.Analyzer)
}
