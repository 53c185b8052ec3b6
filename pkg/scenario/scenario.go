// Package scenario loads and runs YAML-described binding demonstrations:
// each document declares a set of parameters, an argument list, and the
// outcome expected once the wrapped call returns. The same corpus drives
// the command-line runner and the fixture tests.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"subparams/pkg/params"
)

// Scenario is one wrap/call/bind demonstration.
type Scenario struct {
	Path   string
	Name   string
	Scheme params.Scheme
	Params []Param
	Args   []Arg
	Vars   map[string]any
	Expect Expect
}

// Param declares one parameter the scenario's body binds, in binding order,
// plus an optional mutation applied to the bound local afterwards.
type Param struct {
	Name     string
	Kind     params.Kind
	Mode     params.Mode
	Set      any
	HasSet   bool
	SetIndex *IndexMutation
	SetKey   *KeyMutation
}

// IndexMutation writes one element of a bound sequence.
type IndexMutation struct {
	Index int `yaml:"index"`
	Value any `yaml:"value"`
}

// KeyMutation writes one key of a bound mapping.
type KeyMutation struct {
	Key   string `yaml:"key"`
	Value any    `yaml:"value"`
}

// Arg is one entry of the call's argument list. A plain YAML value is passed
// as-is. A mapping is a directive when its keys stay within name/value/var
// and it carries either var, or name together with value: {var: x} passes a
// pointer to the declared variable x, {name: n, value: v} contributes a
// name/value pair for named calls, and the two combine as {name: n, var: x}.
// Any other mapping is passed through as data.
type Arg struct {
	Name  string
	Value any
	Var   string
}

// Expect describes the outcome a scenario asserts: bound values observed in
// the body after mutations, caller variables after the call returns, and a
// substring of the usage error when one is expected.
type Expect struct {
	Bindings map[string]any
	Vars     map[string]any
	Error    string
}

// ValidationError aggregates scenario validation failures.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "scenario: invalid document"
	}
	var b strings.Builder
	b.WriteString("scenario validation failed")
	if e.Path != "" {
		b.WriteString(" in ")
		b.WriteString(e.Path)
	}
	b.WriteString(":")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Load parses every YAML document in the file into a scenario.
func Load(path string) ([]*Scenario, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var out []*Scenario
	for {
		var raw rawScenario
		if err := decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("scenario: parse %s: %w", path, err)
		}
		s, err := raw.toScenario(path)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("scenario: %s holds no documents", path)
	}
	return out, nil
}

// LoadDir loads every .yaml/.yml file directly under dir, in name order.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scenario: read dir %s: %w", dir, err)
	}

	var out []*Scenario
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		batch, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, batch...)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("scenario: no scenario files under %s", dir)
	}
	return out, nil
}

type rawScenario struct {
	Name   string         `yaml:"name"`
	Scheme string         `yaml:"scheme"`
	Params []rawParam     `yaml:"params"`
	Args   []Arg          `yaml:"args"`
	Vars   map[string]any `yaml:"vars"`
	Expect rawExpect      `yaml:"expect"`
}

type rawParam struct {
	Name     string         `yaml:"name"`
	Kind     string         `yaml:"kind"`
	Mode     string         `yaml:"mode"`
	Set      *anyValue      `yaml:"set"`
	SetIndex *IndexMutation `yaml:"set_index"`
	SetKey   *KeyMutation   `yaml:"set_key"`
}

type rawExpect struct {
	Bindings map[string]any `yaml:"bindings"`
	Vars     map[string]any `yaml:"vars"`
	Error    string         `yaml:"error"`
}

// anyValue decodes an arbitrary YAML value behind a pointer field so an
// omitted clause stays recognizable as absence.
type anyValue struct {
	v any
}

func (a *anyValue) UnmarshalYAML(value *yaml.Node) error {
	return value.Decode(&a.v)
}

func (a *Arg) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.AliasNode {
		return a.UnmarshalYAML(value.Alias)
	}
	if value.Kind == yaml.MappingNode {
		if keys, ok := directiveKeys(value); ok && (keys["var"] || (keys["name"] && keys["value"])) {
			var raw struct {
				Name  string    `yaml:"name"`
				Value *anyValue `yaml:"value"`
				Var   string    `yaml:"var"`
			}
			if err := value.Decode(&raw); err != nil {
				return err
			}
			if raw.Var != "" && raw.Value != nil {
				return fmt.Errorf("scenario: argument cannot carry both var and value")
			}
			a.Name = raw.Name
			a.Var = raw.Var
			if raw.Value != nil {
				a.Value = raw.Value.v
			}
			return nil
		}
	}
	a.Name, a.Var = "", ""
	return value.Decode(&a.Value)
}

// directiveKeys reports the scalar keys of a mapping node when every key
// belongs to the argument directive vocabulary.
func directiveKeys(value *yaml.Node) (map[string]bool, bool) {
	keys := make(map[string]bool, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i]
		if key.Kind != yaml.ScalarNode {
			return nil, false
		}
		switch key.Value {
		case "name", "value", "var":
			keys[key.Value] = true
		default:
			return nil, false
		}
	}
	return keys, true
}

func (r rawScenario) toScenario(path string) (*Scenario, error) {
	errs := ValidationError{Path: path}

	name := strings.TrimSpace(r.Name)
	if name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}

	scheme, ok := parseScheme(r.Scheme)
	if !ok {
		errs.Issues = append(errs.Issues, fmt.Sprintf("unknown scheme %q (want positional or named)", r.Scheme))
	}

	decls := make([]Param, 0, len(r.Params))
	for i, rp := range r.Params {
		p := Param{Name: strings.TrimSpace(rp.Name)}
		if p.Name == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("params[%d] must be named", i))
		}

		kind, ok := parseKind(rp.Kind)
		if !ok {
			errs.Issues = append(errs.Issues, fmt.Sprintf("param %q has unknown kind %q", rp.Name, rp.Kind))
		}
		p.Kind = kind

		mode, ok := parseMode(rp.Mode)
		if !ok {
			errs.Issues = append(errs.Issues, fmt.Sprintf("param %q has unknown mode %q", rp.Name, rp.Mode))
		}
		p.Mode = mode

		if rp.Set != nil {
			p.Set, p.HasSet = rp.Set.v, true
		}
		p.SetIndex = rp.SetIndex
		p.SetKey = rp.SetKey

		switch kind {
		case params.KindScalar:
			if p.SetIndex != nil || p.SetKey != nil {
				errs.Issues = append(errs.Issues, fmt.Sprintf("param %q: element mutations apply only to collections", p.Name))
			}
		case params.KindSequence:
			if p.SetKey != nil {
				errs.Issues = append(errs.Issues, fmt.Sprintf("param %q: set_key applies only to mapping params", p.Name))
			}
			if p.HasSet {
				if _, ok := p.Set.([]any); !ok {
					errs.Issues = append(errs.Issues, fmt.Sprintf("param %q: set value must be a sequence", p.Name))
				}
			}
		case params.KindMapping:
			if p.SetIndex != nil {
				errs.Issues = append(errs.Issues, fmt.Sprintf("param %q: set_index applies only to sequence params", p.Name))
			}
			if p.HasSet {
				if _, ok := p.Set.(map[string]any); !ok {
					errs.Issues = append(errs.Issues, fmt.Sprintf("param %q: set value must be a mapping", p.Name))
				}
			}
		}

		decls = append(decls, p)
	}

	for i, a := range r.Args {
		if a.Var == "" {
			continue
		}
		if _, ok := r.Vars[a.Var]; !ok {
			errs.Issues = append(errs.Issues, fmt.Sprintf("args[%d] references unknown var %q", i, a.Var))
		}
	}

	if len(errs.Issues) > 0 {
		return nil, &errs
	}

	return &Scenario{
		Path:   path,
		Name:   name,
		Scheme: scheme,
		Params: decls,
		Args:   r.Args,
		Vars:   r.Vars,
		Expect: Expect{
			Bindings: r.Expect.Bindings,
			Vars:     r.Expect.Vars,
			Error:    r.Expect.Error,
		},
	}, nil
}

func parseScheme(s string) (params.Scheme, bool) {
	switch strings.TrimSpace(s) {
	case "", "positional":
		return params.Positional, true
	case "named":
		return params.Named, true
	default:
		return 0, false
	}
}

func parseKind(s string) (params.Kind, bool) {
	switch strings.TrimSpace(s) {
	case "", "scalar":
		return params.KindScalar, true
	case "sequence":
		return params.KindSequence, true
	case "mapping":
		return params.KindMapping, true
	default:
		return 0, false
	}
}

func parseMode(s string) (params.Mode, bool) {
	switch strings.TrimSpace(s) {
	case "", "copy":
		return params.Copy, true
	case "rw":
		return params.RW, true
	default:
		return 0, false
	}
}
