// Package params intercepts calls to wrapped functions and binds arguments
// to parameters the body declares at run time — positionally or by name, as
// copies or as live aliases of the caller's storage.
package params

// Func is the call shape shared by a target function and its wrapped form:
// variadic arguments in, a result and an error out.
type Func func(args ...any) (any, error)

type WrapOption func(*wrapConfig)

type wrapConfig struct {
	scheme Scheme
	name   string
}

// WithScheme selects how calls to the wrapped function resolve arguments
// onto parameters. The default is Positional.
func WithScheme(s Scheme) WrapOption {
	return func(c *wrapConfig) { c.scheme = s }
}

// WithName overrides the display name used in diagnostics. It never affects
// binding: the body's identity is always the runtime-resolved function name.
func WithName(name string) WrapOption {
	return func(c *wrapConfig) { c.name = name }
}

// Wrap returns fn behind an interceptor that pushes an invocation context
// before the body runs and pops it when the body returns, errors, or panics.
// The wrapped form calls fn with the arguments unchanged and passes its
// result and error straight through.
func Wrap(fn Func, opts ...WrapOption) Func {
	cfg := wrapConfig{}
	for _, o := range opts {
		o(&cfg)
	}

	qualified := functionName(fn)
	if cfg.name == "" {
		cfg.name = qualified
	}

	return func(args ...any) (any, error) {
		pushContext(newContext(cfg.scheme, cfg.name, qualified, args))
		defer popContext()

		return fn(args...)
	}
}
