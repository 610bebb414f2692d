package prompt

import (
	"errors"
	"strings"
	"testing"
)

func TestFactory_SupportedCombinations(t *testing.T) {
	f := &Factory{}

	cases := []struct {
		method      string
		datasetType string
		required    []string
	}{
		{"sot", "aqua", []string{"problem", "betti_number", "options"}},
		{"sot", "gsm8k", []string{"problem", "betti_number"}},
		{"diy", "aqua", []string{"problem", "options"}},
		{"diy", "gsm8k", []string{"problem"}},
	}

	for _, tc := range cases {
		tmpl, err := f.Template(tc.method, tc.datasetType, 3, 3)
		if err != nil {
			t.Fatalf("%s/%s: %v", tc.method, tc.datasetType, err)
		}
		if tmpl.Name != tc.method+"-"+tc.datasetType {
			t.Fatalf("%s/%s: name = %q", tc.method, tc.datasetType, tmpl.Name)
		}
		if len(tmpl.Required) != len(tc.required) {
			t.Fatalf("%s/%s: required = %v, want %v", tc.method, tc.datasetType, tmpl.Required, tc.required)
		}
		for i, name := range tc.required {
			if tmpl.Required[i] != name {
				t.Fatalf("%s/%s: required = %v, want %v", tc.method, tc.datasetType, tmpl.Required, tc.required)
			}
		}
		if strings.Contains(tmpl.Text, "{{solution_number}}") {
			t.Fatalf("%s/%s: solution count not baked into text", tc.method, tc.datasetType)
		}
	}
}

func TestFactory_UnsupportedCombination(t *testing.T) {
	f := &Factory{}

	for _, tc := range []struct{ method, datasetType string }{
		{"diy", "mmlu"},
		{"sot", "csv"},
		{"cot", "aqua"},
		{"", ""},
	} {
		_, err := f.Template(tc.method, tc.datasetType, 3, 3)
		if err == nil {
			t.Fatalf("%s/%s: expected error", tc.method, tc.datasetType)
		}
		if !errors.Is(err, ErrUnsupported) {
			t.Fatalf("%s/%s: error %v is not ErrUnsupported", tc.method, tc.datasetType, err)
		}
	}
}

func TestFactory_NormalizesMethodAndType(t *testing.T) {
	f := &Factory{}
	tmpl, err := f.Template(" SoT ", "AQUA", 3, 3)
	if err != nil {
		t.Fatalf("Template: %v", err)
	}
	if tmpl.Name != "sot-aqua" {
		t.Fatalf("name = %q", tmpl.Name)
	}
}

func TestFactory_SolutionNumberBaked(t *testing.T) {
	f := &Factory{}

	tmpl, err := f.Template("sot", "gsm8k", 3, 5)
	if err != nil {
		t.Fatalf("Template: %v", err)
	}
	if !strings.Contains(tmpl.Text, "5 candidate solutions") {
		t.Fatalf("solution count missing from text: %q", tmpl.Text)
	}

	// Non-positive counts fall back to one solution.
	tmpl, err = f.Template("sot", "gsm8k", 3, 0)
	if err != nil {
		t.Fatalf("Template: %v", err)
	}
	if !strings.Contains(tmpl.Text, "1 candidate solutions") {
		t.Fatalf("fallback count missing from text: %q", tmpl.Text)
	}
}

func TestFactory_TemplateFillsEndToEnd(t *testing.T) {
	f := &Factory{}
	tmpl, err := f.Template("sot", "aqua", 4, 3)
	if err != nil {
		t.Fatalf("Template: %v", err)
	}

	got, err := tmpl.Fill(map[string]any{
		"problem":      "What is 6*7?",
		"betti_number": 4,
		"options":      []string{"A)41", "B)42"},
	})
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	for _, want := range []string{"What is 6*7?", "A)41\nB)42", "4 independent reasoning strands", "3 candidate solutions"} {
		if !strings.Contains(got, want) {
			t.Fatalf("prompt missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "{{") {
		t.Fatalf("unfilled placeholder:\n%s", got)
	}
}
