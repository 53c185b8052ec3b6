// Package b contains fixtures for bindcheck with -depth-exempt=false: a
// Depth option no longer excuses a binder outside any wrapped function.
package b

import (
	"subparams/pkg/params"
)

func token() (string, error) {
	return params.Scalar[string]("token", params.Depth(1)) // want `parameter binder params\.Scalar called in a function that is never wrapped`
}

var login = params.Wrap(func(args ...any) (any, error) {
	return token()
})

// Inside a wrapped body a Depth option changes nothing.
var direct = params.Wrap(func(args ...any) (any, error) {
	return params.Scalar[string]("token", params.Depth(0))
})
