package scenario_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"subparams/pkg/scenario"
)

func TestScenarioCorpus(t *testing.T) {
	scenarios, err := scenario.LoadDir("testdata")
	if err != nil {
		t.Fatalf("loading corpus: %v", err)
	}

	for _, s := range scenarios {
		if err := scenario.Check(s); err != nil {
			t.Errorf("%s: %v", filepath.Base(s.Path), err)
		}
	}
}

func TestLoadMultipleDocuments(t *testing.T) {
	path := writeScenario(t, "name: one\n---\nname: two\n")

	scenarios, err := scenario.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(scenarios) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(scenarios))
	}
	if scenarios[0].Name != "one" || scenarios[1].Name != "two" {
		t.Errorf("expected documents in stream order, got %q and %q", scenarios[0].Name, scenarios[1].Name)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeScenario(t, "name: x\nbogus: 1\n")

	if _, err := scenario.Load(path); err == nil || !strings.Contains(err.Error(), "bogus") {
		t.Fatalf("expected a strict-decoding error naming the field, got %v", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeScenario(t, "")

	if _, err := scenario.Load(path); err == nil || !strings.Contains(err.Error(), "holds no documents") {
		t.Fatalf("expected an empty-file error, got %v", err)
	}
}

func TestLoadValidationIssues(t *testing.T) {
	tests := []struct {
		description string
		body        string
		want        string
	}{
		{"missing name", "scheme: positional\n", "name must be provided"},
		{"unknown scheme", "name: x\nscheme: diagonal\n", "unknown scheme"},
		{"unknown kind", "name: x\nparams:\n  - name: p\n    kind: tensor\n", "unknown kind"},
		{"unknown mode", "name: x\nparams:\n  - name: p\n    mode: write\n", "unknown mode"},
		{"unnamed param", "name: x\nparams:\n  - kind: scalar\n", "must be named"},
		{"set_index on a scalar", "name: x\nparams:\n  - name: p\n    set_index: {index: 0, value: 1}\n", "element mutations apply only to collections"},
		{"set_key on a sequence", "name: x\nparams:\n  - name: p\n    kind: sequence\n    set_key: {key: k, value: 1}\n", "set_key applies only to mapping"},
		{"sequence set with a scalar", "name: x\nparams:\n  - name: p\n    kind: sequence\n    set: 1\n", "set value must be a sequence"},
		{"mapping set with a sequence", "name: x\nparams:\n  - name: p\n    kind: mapping\n    set: [1]\n", "set value must be a mapping"},
		{"unknown var reference", "name: x\nargs:\n  - {var: ghost}\n", "unknown var"},
	}

	for _, tt := range tests {
		path := writeScenario(t, tt.body)

		_, err := scenario.Load(path)
		if err == nil {
			t.Errorf("%s: expected a validation error", tt.description)
			continue
		}
		var verr *scenario.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected a ValidationError, got %T (%v)", tt.description, err, err)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: expected %q in %q", tt.description, tt.want, err.Error())
		}
	}
}

func TestValidationAggregatesIssues(t *testing.T) {
	path := writeScenario(t, "params:\n  - name: p\n    kind: tensor\nargs:\n  - {var: ghost}\n")

	_, err := scenario.Load(path)
	var verr *scenario.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a ValidationError, got %v", err)
	}
	if len(verr.Issues) != 3 {
		t.Fatalf("expected 3 issues reported together, got %d: %v", len(verr.Issues), verr.Issues)
	}
}

func TestArgumentDirectiveForms(t *testing.T) {
	body := `name: forms
vars:
  cell: 1
args:
  - plain
  - {name: k, value: 2}
  - {var: cell}
  - {name: k2, var: cell}
  - {value: 3}
  - {other: data}
`
	path := writeScenario(t, body)

	scenarios, err := scenario.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := []scenario.Arg{
		{Value: "plain"},
		{Name: "k", Value: 2},
		{Var: "cell"},
		{Name: "k2", Var: "cell"},
		{Value: map[string]any{"value": 3}},
		{Value: map[string]any{"other": "data"}},
	}

	got := scenarios[0].Args
	if len(got) != len(want) {
		t.Fatalf("expected %d arguments, got %d", len(want), len(got))
	}
	for i := range want {
		if !reflect.DeepEqual(got[i], want[i]) {
			t.Errorf("args[%d]: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestRunRejectsUnknownVar(t *testing.T) {
	s := &scenario.Scenario{
		Name: "broken",
		Args: []scenario.Arg{{Var: "ghost"}},
	}

	if _, err := s.Run(); err == nil || !strings.Contains(err.Error(), "unknown var") {
		t.Fatalf("expected a staging error, got %v", err)
	}
}

func TestRunTrace(t *testing.T) {
	path := writeScenario(t, "name: traced\nparams:\n  - name: a\nargs: [1]\nexpect:\n  bindings: {a: 1}\n")

	scenarios, err := scenario.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	res, err := scenarios[0].Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Trace) != 1 {
		t.Fatalf("expected one trace line, got %v", res.Trace)
	}
	if !strings.Contains(res.Trace[0], `"a"`) || !strings.Contains(res.Trace[0], "scalar") {
		t.Errorf("trace line should describe the binding, got %q", res.Trace[0])
	}
}

func TestVerifyReportsMismatches(t *testing.T) {
	path := writeScenario(t, "name: wrongly expected\nparams:\n  - name: a\nargs: [actual]\nexpect:\n  bindings: {a: different}\n")

	scenarios, err := scenario.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	err = scenario.Check(scenarios[0])
	if err == nil {
		t.Fatal("expected the check to fail")
	}
	var verr *scenario.VerifyError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a VerifyError, got %T (%v)", err, err)
	}
	if len(verr.Issues) != 1 || !strings.Contains(verr.Issues[0], `binding "a"`) {
		t.Errorf("expected one binding mismatch, got %v", verr.Issues)
	}
}

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
