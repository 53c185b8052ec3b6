package params

import (
	"reflect"
	"runtime"
	"strings"
)

// callerFunction resolves the qualified name of the function skip logical
// frames above it, where skip 1 is the direct caller. Logical frames count
// inlined calls, so the result does not shift under inlining.
func callerFunction(skip int) string {
	var pcs [1]uintptr
	if runtime.Callers(skip+1, pcs[:]) == 0 {
		return ""
	}

	frame, _ := runtime.CallersFrames(pcs[:]).Next()
	return frame.Function
}

// functionName resolves the qualified name of a function value. Method
// values carry a "-fm" wrapper suffix in the runtime's naming; the wrapper
// never appears as a stack frame of the method body, so it is trimmed.
func functionName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return ""
	}

	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return ""
	}

	return strings.TrimSuffix(f.Name(), "-fm")
}
