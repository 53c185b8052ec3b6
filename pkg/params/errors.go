package params

import "errors"

var (
	// ErrNotWrapped reports a binder call from a function that is not the
	// body of the current wrapped invocation.
	ErrNotWrapped = errors.New("params: caller is not a wrapped function")
	// ErrUnknownScheme reports a wrapped function configured with a scheme
	// the binder does not implement.
	ErrUnknownScheme = errors.New("params: unknown binding scheme")
	// ErrNoParameter reports a named parameter whose name does not appear
	// in the argument list.
	ErrNoParameter = errors.New("params: no argument for parameter")
	// ErrNotCollection reports a sequence or mapping parameter whose
	// argument slot does not hold a value of the declared shape.
	ErrNotCollection = errors.New("params: argument is not a collection of the declared kind")
	// ErrArgumentType reports an argument slot whose value cannot satisfy
	// the parameter's declared element type or aliasing mode.
	ErrArgumentType = errors.New("params: argument type does not match parameter declaration")
)
