// Package c contains fixtures for the -wrappers flag: mustWrap forwards its
// argument to params.Wrap, so functions handed to it count as wrapped.
package c

import (
	"subparams/pkg/params"
)

func mustWrap(fn params.Func) params.Func {
	return params.Wrap(fn)
}

var handler = mustWrap(func(args ...any) (any, error) {
	return params.Scalar[int]("n")
})

func orphan() (int, error) {
	return params.Scalar[int]("n") // want `parameter binder params\.Scalar called in a function that is never wrapped`
}
