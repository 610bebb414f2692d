package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_AquaJSONArray(t *testing.T) {
	path := writeFile(t, "test.json", `[
  {"question": "What is 1+1?", "options": ["A)1", "B)2", "C)3"], "rationale": "add", "correct": "B"},
  {"question": "What is 2+2?", "options": ["A)3", "B)4"], "correct": "b)"}
]`)

	items, err := Load(path, TypeAqua)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].Problem != "What is 1+1?" {
		t.Fatalf("problem = %q", items[0].Problem)
	}
	if len(items[0].Options) != 3 || items[0].Options[1] != "B)2" {
		t.Fatalf("options = %v", items[0].Options)
	}
	if items[0].Solution != "B" {
		t.Fatalf("solution = %q", items[0].Solution)
	}
	// Raw solution text is preserved, not normalized here.
	if items[1].Solution != "b)" {
		t.Fatalf("solution = %q", items[1].Solution)
	}
}

func TestLoad_AquaJSONL(t *testing.T) {
	path := writeFile(t, "test.jsonl", `{"question": "q1", "options": ["A)1", "B)2"], "correct": "A"}

{"question": "q2", "options": ["A)1", "B)2"], "correct": "B"}
`)

	items, err := Load(path, TypeAqua)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[1].Problem != "q2" || items[1].Solution != "B" {
		t.Fatalf("item = %+v", items[1])
	}
}

func TestLoad_AquaSkipsEmptyQuestions(t *testing.T) {
	path := writeFile(t, "test.jsonl", `{"question": "  ", "options": ["A)1"], "correct": "A"}
{"question": "real", "options": ["A)1"], "correct": "A"}
`)

	items, err := Load(path, TypeAqua)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 1 || items[0].Problem != "real" {
		t.Fatalf("items = %+v", items)
	}
}

func TestLoad_AquaMissingFieldsRejected(t *testing.T) {
	noOptions := writeFile(t, "a.jsonl", `{"question": "q", "correct": "A"}`)
	if _, err := Load(noOptions, TypeAqua); err == nil {
		t.Fatalf("missing options: expected error")
	}

	noCorrect := writeFile(t, "b.jsonl", `{"question": "q", "options": ["A)1"]}`)
	if _, err := Load(noCorrect, TypeAqua); err == nil {
		t.Fatalf("missing correct: expected error")
	}
}

func TestLoad_GSM8KJSONL(t *testing.T) {
	path := writeFile(t, "test.jsonl", `{"question": "q1", "answer": "reasoning\n#### 18"}
{"question": "q2", "answer": "#### 7"}
`)

	items, err := Load(path, TypeGSM8K)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].Solution != "reasoning\n#### 18" {
		t.Fatalf("solution = %q", items[0].Solution)
	}
	if items[0].Options != nil {
		t.Fatalf("options = %v, want nil", items[0].Options)
	}
}

func TestLoad_GSM8KMissingAnswerRejected(t *testing.T) {
	path := writeFile(t, "test.jsonl", `{"question": "q1", "answer": ""}`)
	if _, err := Load(path, TypeGSM8K); err == nil {
		t.Fatalf("missing answer: expected error")
	}
}

func TestLoad_BadInputs(t *testing.T) {
	if _, err := Load("", TypeAqua); err == nil {
		t.Fatalf("empty path: expected error")
	}
	if _, err := Load("somewhere.json", "mmlu"); err == nil {
		t.Fatalf("unsupported type: expected error")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json"), TypeAqua); err == nil {
		t.Fatalf("missing file: expected error")
	}

	empty := writeFile(t, "empty.json", "  \n ")
	if _, err := Load(empty, TypeAqua); err == nil {
		t.Fatalf("empty file: expected error")
	}

	malformed := writeFile(t, "bad.jsonl", `{"question": "q", "options"`)
	if _, err := Load(malformed, TypeAqua); err == nil {
		t.Fatalf("malformed json: expected error")
	}
}

func TestLoad_EmptyArrayYieldsNoItems(t *testing.T) {
	path := writeFile(t, "empty.json", `[]`)
	items, err := Load(path, TypeAqua)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("items = %d, want 0", len(items))
	}
}
