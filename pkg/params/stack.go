package params

import (
	"sync"

	"github.com/petermattis/goid"
)

// contextStack holds the live invocation contexts of one goroutine, newest
// on top. Nested wrapped calls stack their contexts; each return pops one.
type contextStack struct {
	a []*Context
	l int
}

// Push adds a context to the top of the stack.
func (s *contextStack) Push(ctx *Context) {
	s.l++
	s.a = append(s.a, ctx)
}

// Pop removes and returns the top context of the stack.
func (s *contextStack) Pop() *Context {
	if s.l < 1 {
		return nil
	}

	s.l--
	ctx := s.a[s.l]
	s.a[s.l] = nil
	s.a = s.a[:s.l]

	return ctx
}

// Peek returns the top context of the stack without removing it.
func (s *contextStack) Peek() *Context {
	if s.l < 1 {
		return nil
	}

	return s.a[s.l-1]
}

// Size reports how many contexts the stack holds.
func (s *contextStack) Size() int {
	return s.l
}

// Each goroutine gets its own stack so concurrent wrapped calls never see
// one another's contexts. An entry is dropped as soon as its stack empties.
var (
	stacksMu sync.RWMutex
	stacks   = make(map[int64]*contextStack)
)

func pushContext(ctx *Context) {
	id := goid.Get()

	stacksMu.Lock()
	defer stacksMu.Unlock()

	s, ok := stacks[id]
	if !ok {
		s = &contextStack{}
		stacks[id] = s
	}
	s.Push(ctx)
}

func popContext() {
	id := goid.Get()

	stacksMu.Lock()
	defer stacksMu.Unlock()

	s, ok := stacks[id]
	if !ok {
		return
	}

	s.Pop()
	if s.Size() == 0 {
		delete(stacks, id)
	}
}

// Current returns the innermost live context of the calling goroutine, or
// nil when no wrapped call is in flight.
func Current() *Context {
	stacksMu.RLock()
	defer stacksMu.RUnlock()

	s, ok := stacks[goid.Get()]
	if !ok {
		return nil
	}

	return s.Peek()
}

// Active reports how many wrapped calls are in flight on the calling
// goroutine.
func Active() int {
	stacksMu.RLock()
	defer stacksMu.RUnlock()

	s, ok := stacks[goid.Get()]
	if !ok {
		return 0
	}

	return s.Size()
}
