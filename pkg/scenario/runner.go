package scenario

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"subparams/pkg/params"
)

// Result captures what one run observed: values bound in the body after
// mutations, caller variables after the call returned, the usage error the
// call surfaced (if any), and a step-by-step trace.
type Result struct {
	Bindings map[string]any
	Vars     map[string]any
	Err      error
	Trace    []string
}

// VerifyError aggregates expectation mismatches from a run.
type VerifyError struct {
	Issues []string
}

func (e *VerifyError) Error() string {
	if len(e.Issues) == 0 {
		return "expectations not met"
	}
	var b strings.Builder
	b.WriteString("expectations not met:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Run wraps a body that binds each declared parameter in order, calls it
// with the assembled argument list, and reports what the body and the
// caller-side variables observed. Binding usage errors land in Result.Err;
// a non-nil error return means the scenario itself could not be staged.
func (s *Scenario) Run() (*Result, error) {
	cells := s.buildCells()
	args, err := s.buildArgs(cells)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Bindings: make(map[string]any, len(s.Params)),
		Vars:     make(map[string]any, len(cells)),
	}

	body := params.Wrap(func(_ ...any) (any, error) {
		for i := range s.Params {
			p := &s.Params[i]
			observed, err := bindParam(p)
			if err != nil {
				res.Trace = append(res.Trace, fmt.Sprintf("bind %s %q (%s): %v", p.Kind, p.Name, p.Mode, err))
				return nil, err
			}
			res.Bindings[p.Name] = observed
			res.Trace = append(res.Trace, fmt.Sprintf("bind %s %q (%s) = %v", p.Kind, p.Name, p.Mode, observed))
		}
		return nil, nil
	}, params.WithScheme(s.Scheme), params.WithName(s.Name))

	_, res.Err = body(args...)

	for name, cell := range cells {
		res.Vars[name] = cellValue(cell)
	}
	return res, nil
}

// bindParam binds one declaration from inside the scenario body and applies
// its mutations. It sits one frame below the wrapped body, hence Depth(1)
// on every binder call.
func bindParam(p *Param) (any, error) {
	switch p.Kind {
	case params.KindSequence:
		if p.Mode == params.RW {
			cell, err := params.SequenceRW[any](p.Name, params.Depth(1))
			if err != nil {
				return nil, err
			}
			if err := mutateSequence(p, cell); err != nil {
				return nil, err
			}
			return slices.Clone(*cell), nil
		}
		seq, err := params.Sequence[any](p.Name, params.Depth(1))
		if err != nil {
			return nil, err
		}
		if err := mutateSequence(p, &seq); err != nil {
			return nil, err
		}
		return seq, nil

	case params.KindMapping:
		if p.Mode == params.RW {
			cell, err := params.MappingRW[string, any](p.Name, params.Depth(1))
			if err != nil {
				return nil, err
			}
			if err := mutateMapping(p, cell); err != nil {
				return nil, err
			}
			return maps.Clone(*cell), nil
		}
		m, err := params.Mapping[string, any](p.Name, params.Depth(1))
		if err != nil {
			return nil, err
		}
		if err := mutateMapping(p, &m); err != nil {
			return nil, err
		}
		return m, nil

	default:
		if p.Mode == params.RW {
			cell, err := params.ScalarRW[any](p.Name, params.Depth(1))
			if err != nil {
				return nil, err
			}
			if p.HasSet {
				*cell = p.Set
			}
			return *cell, nil
		}
		v, err := params.Scalar[any](p.Name, params.Depth(1))
		if err != nil {
			return nil, err
		}
		if p.HasSet {
			v = p.Set
		}
		return v, nil
	}
}

func mutateSequence(p *Param, seq *[]any) error {
	if p.HasSet {
		next, ok := p.Set.([]any)
		if !ok {
			return fmt.Errorf("scenario: param %q set value must be a sequence, got %T", p.Name, p.Set)
		}
		*seq = slices.Clone(next)
	}
	if p.SetIndex != nil {
		if p.SetIndex.Index < 0 || p.SetIndex.Index >= len(*seq) {
			return fmt.Errorf("scenario: param %q set_index %d out of range (len %d)", p.Name, p.SetIndex.Index, len(*seq))
		}
		(*seq)[p.SetIndex.Index] = p.SetIndex.Value
	}
	return nil
}

func mutateMapping(p *Param, m *map[string]any) error {
	if p.HasSet {
		next, ok := p.Set.(map[string]any)
		if !ok {
			return fmt.Errorf("scenario: param %q set value must be a mapping, got %T", p.Name, p.Set)
		}
		*m = maps.Clone(next)
	}
	if p.SetKey != nil {
		if *m == nil {
			*m = make(map[string]any, 1)
		}
		(*m)[p.SetKey.Key] = p.SetKey.Value
	}
	return nil
}

// buildCells allocates one addressable cell per declared variable, shaped
// by its initial value so rw binds can alias it.
func (s *Scenario) buildCells() map[string]any {
	cells := make(map[string]any, len(s.Vars))
	for name, initial := range s.Vars {
		switch v := initial.(type) {
		case []any:
			seq := slices.Clone(v)
			cells[name] = &seq
		case map[string]any:
			m := maps.Clone(v)
			cells[name] = &m
		default:
			val := initial
			cells[name] = &val
		}
	}
	return cells
}

func (s *Scenario) buildArgs(cells map[string]any) ([]any, error) {
	args := make([]any, 0, len(s.Args)*2)
	for i, a := range s.Args {
		if a.Name != "" {
			args = append(args, a.Name)
		}
		if a.Var != "" {
			cell, ok := cells[a.Var]
			if !ok {
				return nil, fmt.Errorf("scenario %q: args[%d] references unknown var %q", s.Name, i, a.Var)
			}
			args = append(args, cell)
			continue
		}
		args = append(args, a.Value)
	}
	return args, nil
}

func cellValue(cell any) any {
	switch c := cell.(type) {
	case *[]any:
		return *c
	case *map[string]any:
		return *c
	case *any:
		return *c
	default:
		return cell
	}
}

// Verify checks a run against the scenario's expectations.
func (r *Result) Verify(e Expect) error {
	var issues []string

	if e.Error != "" {
		if r.Err == nil {
			issues = append(issues, fmt.Sprintf("expected an error containing %q, call succeeded", e.Error))
		} else if !strings.Contains(r.Err.Error(), e.Error) {
			issues = append(issues, fmt.Sprintf("expected an error containing %q, got %q", e.Error, r.Err.Error()))
		}
	} else if r.Err != nil {
		issues = append(issues, fmt.Sprintf("unexpected error: %v", r.Err))
	}

	for _, name := range slices.Sorted(maps.Keys(e.Bindings)) {
		got, ok := r.Bindings[name]
		if !ok {
			issues = append(issues, fmt.Sprintf("binding %q was never observed", name))
			continue
		}
		if !reflect.DeepEqual(got, e.Bindings[name]) {
			issues = append(issues, fmt.Sprintf("binding %q: expected %v, got %v", name, e.Bindings[name], got))
		}
	}

	for _, name := range slices.Sorted(maps.Keys(e.Vars)) {
		got, ok := r.Vars[name]
		if !ok {
			issues = append(issues, fmt.Sprintf("var %q was never declared", name))
			continue
		}
		if !reflect.DeepEqual(got, e.Vars[name]) {
			issues = append(issues, fmt.Sprintf("var %q: expected %v, got %v", name, e.Vars[name], got))
		}
	}

	if len(issues) > 0 {
		return &VerifyError{Issues: issues}
	}
	return nil
}

// Check runs the scenario and verifies its expectations.
func Check(s *Scenario) error {
	res, err := s.Run()
	if err != nil {
		return fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	if err := res.Verify(s.Expect); err != nil {
		return fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return nil
}
