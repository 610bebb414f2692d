package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Estrellaxiaoyu/syzygy-of-thoughts/internal/config"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func loadTestConfig(t *testing.T, content string) *config.Config {
	t.Helper()
	cfg, err := config.Load(writeTempConfig(t, content))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return cfg
}

func TestResolveSettings_MethodDefaults(t *testing.T) {
	cfg := loadTestConfig(t, `llm: {}`)

	s, err := resolveSettings(cfg, &runOptions{promptType: "sot"})
	if err != nil {
		t.Fatalf("resolveSettings: %v", err)
	}
	if s.Method != config.MethodSoT {
		t.Fatalf("method = %q", s.Method)
	}
	if s.BettiNumber != 3 {
		t.Fatalf("betti number = %d", s.BettiNumber)
	}
}

func TestResolveSettings_FlagsOverrideConfig(t *testing.T) {
	cfg := loadTestConfig(t, `
methods:
  diy:
    dataset_path: data/aqua/test.json
    dataset_type: aqua
`)

	s, err := resolveSettings(cfg, &runOptions{
		promptType:  "diy",
		datasetPath: "data/gsm8k/test.jsonl",
		datasetType: "GSM8K",
	})
	if err != nil {
		t.Fatalf("resolveSettings: %v", err)
	}
	if s.DatasetPath != "data/gsm8k/test.jsonl" {
		t.Fatalf("dataset path = %q", s.DatasetPath)
	}
	if s.DatasetType != "gsm8k" {
		t.Fatalf("dataset type = %q", s.DatasetType)
	}
}

func TestResolveSettings_UnknownMethod(t *testing.T) {
	cfg := loadTestConfig(t, `llm: {}`)
	if _, err := resolveSettings(cfg, &runOptions{promptType: "cot"}); err == nil {
		t.Fatalf("expected error for unknown method")
	}
}

func TestRootCmd_RunRequiresPromptType(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"run"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error for missing --prompt-type")
	}
}

func TestRootCmd_RunRejectsBadConfigPath(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{
		"run",
		"--prompt-type", "diy",
		"--config", filepath.Join(t.TempDir(), "missing.yaml"),
	})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestRunEval_GuardsInternalState(t *testing.T) {
	if err := runEval(nil, &runOptions{}); err == nil {
		t.Fatalf("nil state: expected error")
	}
	if err := runEval(&cliState{}, &runOptions{}); err == nil {
		t.Fatalf("nil config: expected error")
	}
	if err := runEval(&cliState{cfg: &config.Config{}}, nil); err == nil {
		t.Fatalf("nil options: expected error")
	}
}
