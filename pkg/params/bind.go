package params

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
)

// BindOption adjusts how a single binder call locates its declaring function.
type BindOption func(*bindConfig)

type bindConfig struct {
	depth int
}

// Depth declares that the binder call sits n helper frames below the wrapped
// body, for user helpers that forward to binders on the body's behalf. The
// default of zero means the body calls the binder directly.
func Depth(n int) BindOption {
	return func(c *bindConfig) { c.depth = n }
}

// resolve returns the argument slot a parameter declaration binds to. The
// second result is false when the positional cursor has run past the
// argument list; everything else that can go wrong (no call in flight,
// caller mismatch, unknown scheme, missing name) comes back as an error.
func resolve(name string, opts []BindOption) (any, bool, error) {
	var cfg bindConfig
	for _, o := range opts {
		o(&cfg)
	}

	ctx := Current()
	if ctx == nil {
		return nil, false, fmt.Errorf("%w: parameter %q bound outside any wrapped call", ErrNotWrapped, name)
	}

	// Frames between here and the declaring body: resolve, the binder,
	// then cfg.depth user helpers.
	if caller := callerFunction(3 + cfg.depth); caller != ctx.fn {
		return nil, false, fmt.Errorf("%w: %s binds %q but the live call is %s", ErrNotWrapped, caller, name, ctx.fn)
	}

	switch ctx.scheme {
	case Positional:
		arg, ok := ctx.nextSlot()
		return arg, ok, nil

	case Named:
		arg, ok := ctx.slotFor(name)
		if !ok {
			return nil, false, fmt.Errorf("%w: %q in call to %s", ErrNoParameter, name, ctx.name)
		}
		return arg, true, nil

	default:
		return nil, false, fmt.Errorf("%w: %v", ErrUnknownScheme, ctx.scheme)
	}
}

// Scalar binds a scalar parameter and returns a copy of its argument. The
// slot may hold a T or a *T; pointers are dereferenced so the local never
// shares storage with the caller. An absent or nil slot yields T's zero
// value.
func Scalar[T any](name string, opts ...BindOption) (T, error) {
	var zero T

	arg, ok, err := resolve(name, opts)
	if err != nil {
		return zero, err
	}
	if !ok || arg == nil {
		return zero, nil
	}

	if p, aliased := arg.(*T); aliased {
		if p == nil {
			return zero, nilPointerError(name, arg)
		}
		return *p, nil
	}
	if v, held := arg.(T); held {
		return v, nil
	}

	return zero, typeError[T](name, arg)
}

// ScalarRW binds a scalar parameter as an alias: the returned pointer is the
// caller's own *T argument, so writes through it land in the caller's
// variable. An absent or nil slot yields a fresh private cell.
func ScalarRW[T any](name string, opts ...BindOption) (*T, error) {
	arg, ok, err := resolve(name, opts)
	if err != nil {
		return nil, err
	}
	if !ok || arg == nil {
		return new(T), nil
	}

	p, aliased := arg.(*T)
	if !aliased {
		return nil, typeError[*T](name, arg)
	}
	if p == nil {
		return nil, nilPointerError(name, arg)
	}

	return p, nil
}

// Sequence binds a sequence parameter and returns a fresh shallow copy, so
// element writes in the body stay local. The slot may hold a []E or a *[]E.
func Sequence[E any](name string, opts ...BindOption) ([]E, error) {
	arg, ok, err := resolve(name, opts)
	if err != nil {
		return nil, err
	}
	if !ok || arg == nil {
		return nil, collectionError[[]E](name, arg)
	}

	if p, aliased := arg.(*[]E); aliased {
		if p == nil {
			return nil, nilPointerError(name, arg)
		}
		return slices.Clone(*p), nil
	}
	if s, held := arg.([]E); held {
		return slices.Clone(s), nil
	}

	return nil, collectionError[[]E](name, arg)
}

// SequenceRW binds a sequence parameter as an alias to the caller's *[]E;
// element writes, reslicing, and appends assigned through it write back.
func SequenceRW[E any](name string, opts ...BindOption) (*[]E, error) {
	arg, ok, err := resolve(name, opts)
	if err != nil {
		return nil, err
	}
	if !ok || arg == nil {
		return nil, collectionError[*[]E](name, arg)
	}

	p, aliased := arg.(*[]E)
	if !aliased {
		return nil, collectionError[*[]E](name, arg)
	}
	if p == nil {
		return nil, nilPointerError(name, arg)
	}

	return p, nil
}

// Mapping binds a mapping parameter and returns a fresh shallow copy, so key
// writes in the body stay local. The slot may hold a map[K]V or a *map[K]V.
func Mapping[K comparable, V any](name string, opts ...BindOption) (map[K]V, error) {
	arg, ok, err := resolve(name, opts)
	if err != nil {
		return nil, err
	}
	if !ok || arg == nil {
		return nil, collectionError[map[K]V](name, arg)
	}

	if p, aliased := arg.(*map[K]V); aliased {
		if p == nil {
			return nil, nilPointerError(name, arg)
		}
		return maps.Clone(*p), nil
	}
	if m, held := arg.(map[K]V); held {
		return maps.Clone(m), nil
	}

	return nil, collectionError[map[K]V](name, arg)
}

// MappingRW binds a mapping parameter as an alias to the caller's *map[K]V;
// key writes, deletes, and whole-map assignments through it write back.
func MappingRW[K comparable, V any](name string, opts ...BindOption) (*map[K]V, error) {
	arg, ok, err := resolve(name, opts)
	if err != nil {
		return nil, err
	}
	if !ok || arg == nil {
		return nil, collectionError[*map[K]V](name, arg)
	}

	p, aliased := arg.(*map[K]V)
	if !aliased {
		return nil, collectionError[*map[K]V](name, arg)
	}
	if p == nil {
		return nil, nilPointerError(name, arg)
	}

	return p, nil
}

func typeError[T any](name string, arg any) error {
	return fmt.Errorf("%w: parameter %q wants %s, argument holds %T", ErrArgumentType, name, reflect.TypeFor[T](), arg)
}

func collectionError[T any](name string, arg any) error {
	return fmt.Errorf("%w: parameter %q wants %s, argument holds %T", ErrNotCollection, name, reflect.TypeFor[T](), arg)
}

func nilPointerError(name string, arg any) error {
	return fmt.Errorf("%w: parameter %q given a nil %T", ErrArgumentType, name, arg)
}
