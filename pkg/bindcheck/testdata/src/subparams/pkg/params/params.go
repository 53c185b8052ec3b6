// Package params mirrors the binder API surface for analyzer tests. The
// bodies are inert; only the signatures matter here.
package params

type Func func(args ...any) (any, error)

type WrapOption func(*wrapConfig)

type wrapConfig struct {
	scheme Scheme
	name   string
}

type BindOption func(*bindConfig)

type bindConfig struct {
	depth int
}

type Scheme int

const (
	Positional Scheme = iota
	Named
)

func WithScheme(s Scheme) WrapOption {
	return func(c *wrapConfig) { c.scheme = s }
}

func WithName(name string) WrapOption {
	return func(c *wrapConfig) { c.name = name }
}

func Depth(n int) BindOption {
	return func(c *bindConfig) { c.depth = n }
}

func Wrap(fn Func, opts ...WrapOption) Func {
	return fn
}

func Scalar[T any](name string, opts ...BindOption) (T, error) {
	var zero T
	return zero, nil
}

func ScalarRW[T any](name string, opts ...BindOption) (*T, error) {
	return new(T), nil
}

func Sequence[E any](name string, opts ...BindOption) ([]E, error) {
	return nil, nil
}

func SequenceRW[E any](name string, opts ...BindOption) (*[]E, error) {
	return nil, nil
}

func Mapping[K comparable, V any](name string, opts ...BindOption) (map[K]V, error) {
	return nil, nil
}

func MappingRW[K comparable, V any](name string, opts ...BindOption) (*map[K]V, error) {
	return nil, nil
}
