// Package a contains fixtures for the bindcheck analyzer with its default
// flag settings.
package a

import (
	"subparams/pkg/params"
)

// ===== SHOULD NOT REPORT =====

// Binders directly inside a wrapped literal.
var double = params.Wrap(func(args ...any) (any, error) {
	cell, err := params.ScalarRW[int]("n")
	if err != nil {
		return nil, err
	}
	*cell *= 2
	return *cell, nil
})

// Binders inside a named function wrapped below its declaration.
func sum(args ...any) (any, error) {
	a, err := params.Scalar[int]("a")
	if err != nil {
		return nil, err
	}
	b, err := params.Scalar[int]("b")
	if err != nil {
		return nil, err
	}
	return a + b, nil
}

var wrappedSum = params.Wrap(sum, params.WithScheme(params.Named))

// Binders inside a literal held in a variable before wrapping.
var seqBody = func(args ...any) (any, error) {
	xs, err := params.Sequence[int]("xs")
	if err != nil {
		return nil, err
	}
	return len(xs), nil
}

var wrappedSeq = params.Wrap(seqBody, params.WithName("sequence"))

// Wrap call above the variable it wraps.
var wrappedLate = params.Wrap(lateBody)

var lateBody = func(args ...any) (any, error) {
	m, err := params.Mapping[string, int]("m")
	if err != nil {
		return nil, err
	}
	return len(m), nil
}

// Binders inside a method wrapped as a method value.
type greeter struct {
	prefix string
}

func (g greeter) greet(args ...any) (any, error) {
	name, err := params.Scalar[string]("name")
	if err != nil {
		return nil, err
	}
	return g.prefix + name, nil
}

var wrappedGreet = params.Wrap(greeter{prefix: "hi "}.greet)

// A helper carrying a Depth option is deliberate indirection.
func token() (string, error) {
	return params.Scalar[string]("token", params.Depth(1))
}

var login = params.Wrap(func(args ...any) (any, error) {
	return token()
})

// ===== SHOULD REPORT =====

// A function no Wrap call ever sees.
func orphan() {
	_, _ = params.Scalar[string]("s")         // want `parameter binder params\.Scalar called in a function that is never wrapped`
	_, _ = params.ScalarRW[int]("n")          // want `parameter binder params\.ScalarRW called in a function that is never wrapped`
	_, _ = params.Sequence[string]("xs")      // want `parameter binder params\.Sequence called in a function that is never wrapped`
	_, _ = params.SequenceRW[int]("ys")       // want `parameter binder params\.SequenceRW called in a function that is never wrapped`
	_, _ = params.Mapping[string, int]("m")   // want `parameter binder params\.Mapping called in a function that is never wrapped`
	_, _ = params.MappingRW[string, int]("w") // want `parameter binder params\.MappingRW called in a function that is never wrapped`
}

// A literal nested inside a wrapped body has its own frame and is not
// wrapped itself.
var nested = params.Wrap(func(args ...any) (any, error) {
	probe := func() (int, error) {
		return params.Scalar[int]("inner") // want `parameter binder params\.Scalar called in a function that is never wrapped`
	}
	return probe()
})

// A binder in a package initializer runs before any call is in flight.
var boot, _ = params.Scalar[string]("boot") // want `parameter binder params\.Scalar called in a function that is never wrapped`
