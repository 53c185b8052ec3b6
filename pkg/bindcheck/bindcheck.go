// Package bindcheck provides a go/analysis based analyzer that reports
// parameter binder calls in functions that are never wrapped. Such calls
// cannot see an invocation context at run time and can only fail with
// ErrNotWrapped.
//
// The analyzer works per package: it collects every function handed to
// params.Wrap — function literals, named functions, method values, and
// variables holding literals — and then flags binder calls whose innermost
// enclosing function is not in that set. Bodies reached through factories or
// struct fields are invisible to it; exempt their binder calls with a Depth
// option or list the forwarding function in -wrappers.
package bindcheck

import (
	"errors"
	"flag"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// paramsPath is the import path of the package whose binders are checked.
const paramsPath = "subparams/pkg/params"

// Flags for the analyzer.
var (
	depthExempt bool
	wrappers    string
)

func init() {
	Analyzer.Flags.BoolVar(&depthExempt, "depth-exempt", true,
		"skip binder calls that carry a Depth option (helper indirection is deliberate)")
	Analyzer.Flags.StringVar(&wrappers, "wrappers", "",
		"comma-separated full names of additional wrapper functions whose function arguments count as wrapped (e.g., mypkg.MustWrap)")
}

// Analyzer is the bindcheck analyzer.
var Analyzer = &analysis.Analyzer{
	Name:     "bindcheck",
	Doc:      "checks that parameter binders run inside functions passed to params.Wrap",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
	Flags:    flag.FlagSet{},
}

var ErrNoInspector = errors.New("inspector analyzer result not found")

// binders names the params functions that resolve a parameter at run time.
var binders = map[string]bool{
	"Scalar":     true,
	"ScalarRW":   true,
	"Sequence":   true,
	"SequenceRW": true,
	"Mapping":    true,
	"MappingRW":  true,
}

// binderCall is one binder call site together with its innermost enclosing
// function. Exactly one of fn and lit is set; both nil means the call sits
// in a package-level initializer.
type binderCall struct {
	call *ast.CallExpr
	name string
	fn   *types.Func
	lit  *ast.FuncLit
}

func run(pass *analysis.Pass) (any, error) {
	insp, ok := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, ErrNoInspector
	}

	extra := parseWrappers(wrappers)

	var (
		wrapCalls []*ast.CallExpr
		calls     []binderCall
		funcLits  = make(map[*types.Var][]*ast.FuncLit)
	)

	// First sweep: gather wrapper call sites, binder call sites with their
	// enclosing functions, and the literals assigned to variables. Wrapper
	// arguments are resolved afterwards so a literal stored in a variable
	// below its Wrap call still counts.
	nodeFilter := []ast.Node{
		(*ast.AssignStmt)(nil),
		(*ast.ValueSpec)(nil),
		(*ast.CallExpr)(nil),
	}
	insp.WithStack(nodeFilter, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return false
		}
		switch node := n.(type) {
		case *ast.AssignStmt:
			if len(node.Lhs) != len(node.Rhs) {
				return true
			}
			for i, lhs := range node.Lhs {
				recordFuncLit(pass, lhs, node.Rhs[i], funcLits)
			}
		case *ast.ValueSpec:
			for i, name := range node.Names {
				if i < len(node.Values) {
					recordFuncLit(pass, name, node.Values[i], funcLits)
				}
			}
		case *ast.CallExpr:
			fn := callee(pass, node)
			if fn == nil {
				return true
			}
			switch {
			case isParamsFunc(fn, "Wrap") || extra[fn.FullName()]:
				wrapCalls = append(wrapCalls, node)
			case binders[fn.Name()] && isParamsFunc(fn, fn.Name()):
				if depthExempt && carriesDepth(pass, node) {
					return true
				}
				enclFn, enclLit := enclosingFunction(pass, stack)
				calls = append(calls, binderCall{
					call: node,
					name: fn.Name(),
					fn:   enclFn,
					lit:  enclLit,
				})
			}
		}
		return true
	})

	wrappedFuncs := make(map[*types.Func]bool)
	wrappedLits := make(map[token.Pos]bool)
	for _, call := range wrapCalls {
		for _, arg := range call.Args {
			markWrapped(pass, arg, wrappedFuncs, wrappedLits, funcLits)
		}
	}

	for _, bc := range calls {
		if bc.fn != nil && wrappedFuncs[bc.fn] {
			continue
		}
		if bc.lit != nil && wrappedLits[bc.lit.Pos()] {
			continue
		}
		pass.Reportf(bc.call.Pos(),
			"parameter binder params.%s called in a function that is never wrapped", bc.name)
	}

	return nil, nil
}

// callee resolves the static target of a call, unwrapping generic
// instantiations such as params.Scalar[int] and params.Mapping[string, int].
func callee(pass *analysis.Pass, call *ast.CallExpr) *types.Func {
	fun := ast.Unparen(call.Fun)
	switch f := fun.(type) {
	case *ast.IndexExpr:
		fun = ast.Unparen(f.X)
	case *ast.IndexListExpr:
		fun = ast.Unparen(f.X)
	}

	var obj types.Object
	switch f := fun.(type) {
	case *ast.Ident:
		obj = pass.TypesInfo.ObjectOf(f)
	case *ast.SelectorExpr:
		obj = pass.TypesInfo.ObjectOf(f.Sel)
	}
	fn, _ := obj.(*types.Func)
	return fn
}

func isParamsFunc(fn *types.Func, name string) bool {
	return fn != nil && fn.Name() == name && fn.Pkg() != nil && fn.Pkg().Path() == paramsPath
}

// carriesDepth reports whether a binder call passes a Depth option directly.
func carriesDepth(pass *analysis.Pass, call *ast.CallExpr) bool {
	for _, arg := range call.Args {
		opt, ok := ast.Unparen(arg).(*ast.CallExpr)
		if !ok {
			continue
		}
		if isParamsFunc(callee(pass, opt), "Depth") {
			return true
		}
	}
	return false
}

// recordFuncLit remembers a function literal assigned to a variable so the
// variable can later be recognized as a Wrap argument.
func recordFuncLit(pass *analysis.Pass, lhs, rhs ast.Expr, funcLits map[*types.Var][]*ast.FuncLit) {
	lit, ok := ast.Unparen(rhs).(*ast.FuncLit)
	if !ok {
		return
	}
	ident, ok := lhs.(*ast.Ident)
	if !ok {
		return
	}
	if v, ok := pass.TypesInfo.ObjectOf(ident).(*types.Var); ok {
		funcLits[v] = append(funcLits[v], lit)
	}
}

// markWrapped records one wrapper argument as a wrapped body. Non-function
// arguments, such as trailing options, fall through untouched.
func markWrapped(pass *analysis.Pass, arg ast.Expr, wrappedFuncs map[*types.Func]bool, wrappedLits map[token.Pos]bool, funcLits map[*types.Var][]*ast.FuncLit) {
	switch a := ast.Unparen(arg).(type) {
	case *ast.FuncLit:
		wrappedLits[a.Pos()] = true
	case *ast.Ident:
		switch obj := pass.TypesInfo.ObjectOf(a).(type) {
		case *types.Func:
			wrappedFuncs[obj] = true
		case *types.Var:
			for _, lit := range funcLits[obj] {
				wrappedLits[lit.Pos()] = true
			}
		}
	case *ast.SelectorExpr:
		if fn, ok := pass.TypesInfo.ObjectOf(a.Sel).(*types.Func); ok {
			wrappedFuncs[fn] = true
		}
	}
}

// enclosingFunction walks the traversal stack outward from a binder call to
// its innermost enclosing function declaration or literal.
func enclosingFunction(pass *analysis.Pass, stack []ast.Node) (*types.Func, *ast.FuncLit) {
	for i := len(stack) - 1; i >= 0; i-- {
		switch n := stack[i].(type) {
		case *ast.FuncLit:
			return nil, n
		case *ast.FuncDecl:
			fn, _ := pass.TypesInfo.Defs[n.Name].(*types.Func)
			return fn, nil
		}
	}
	return nil, nil
}

func parseWrappers(s string) map[string]bool {
	set := make(map[string]bool)
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			set[name] = true
		}
	}
	return set
}
