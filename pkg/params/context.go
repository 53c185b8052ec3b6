package params

// Context records one live invocation of a wrapped function: the scheme it
// binds under, the arguments it was called with, and a cursor over the
// positional slots already consumed by binder calls.
type Context struct {
	scheme Scheme
	name   string
	fn     string
	args   []any
	byName map[string]int
	next   int
}

// newContext builds the context pushed for a single call. Under the named
// scheme the argument list is read as alternating name/value pairs; pairs
// whose name slot is not a string, and a dangling trailing name, contribute
// no entries. A name that repeats keeps its last value.
func newContext(scheme Scheme, name, fn string, args []any) *Context {
	ctx := &Context{
		scheme: scheme,
		name:   name,
		fn:     fn,
		args:   args,
	}
	if scheme == Named {
		ctx.byName = make(map[string]int, len(args)/2)
		for i := 0; i+1 < len(args); i += 2 {
			key, ok := args[i].(string)
			if !ok {
				continue
			}
			ctx.byName[key] = i + 1
		}
	}
	return ctx
}

// Scheme reports the binding scheme the invocation was wrapped with.
func (c *Context) Scheme() Scheme { return c.scheme }

// Name reports the display name of the wrapped function.
func (c *Context) Name() string { return c.name }

// Function reports the runtime-qualified name of the wrapped body. Binder
// calls are only honored when they originate from this function.
func (c *Context) Function() string { return c.fn }

// Args reports the raw argument list of the invocation.
func (c *Context) Args() []any { return c.args }

// Arity reports how many argument slots the invocation carries.
func (c *Context) Arity() int { return len(c.args) }

// nextSlot consumes and returns the next positional argument slot. The
// second result is false once the arguments are exhausted.
func (c *Context) nextSlot() (any, bool) {
	if c.next >= len(c.args) {
		return nil, false
	}
	v := c.args[c.next]
	c.next++
	return v, true
}

// slotFor returns the value slot paired with a declared name.
func (c *Context) slotFor(name string) (any, bool) {
	i, ok := c.byName[name]
	if !ok {
		return nil, false
	}
	return c.args[i], true
}
