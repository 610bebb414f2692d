package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

// Recognized prompting methods. The set is closed: anything else is a
// configuration error, never a silent fallthrough.
const (
	MethodDIY = "diy"
	MethodSoT = "sot"
)

type Config struct {
	LLM     LLMConfig           `yaml:"llm"`
	Methods map[string]Settings `yaml:"methods,omitempty"`
}

type LLMConfig struct {
	DefaultProvider string                    `yaml:"default_provider,omitempty"`
	Providers       map[string]ProviderConfig `yaml:"providers,omitempty"`
}

type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model,omitempty"`
}

// Settings holds the run configuration for one prompting method. It is
// resolved once per run and immutable afterwards.
type Settings struct {
	Method         string  `yaml:"-"`
	DatasetPath    string  `yaml:"dataset_path,omitempty"`
	DatasetType    string  `yaml:"dataset_type,omitempty"`
	BettiNumber    int     `yaml:"betti_number,omitempty"`
	SolutionNumber int     `yaml:"solution_number,omitempty"`
	Temperature    float64 `yaml:"temperature,omitempty"`
	MaxTokens      int     `yaml:"max_tokens,omitempty"`
}

func defaultSettings(method string) Settings {
	s := Settings{
		Method:         method,
		DatasetPath:    "data/aqua/test.json",
		DatasetType:    "aqua",
		SolutionNumber: 3,
		Temperature:    0.7,
		MaxTokens:      1024,
	}
	if method == MethodSoT {
		s.BettiNumber = 3
	}
	return s
}

func Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultPath
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}

	if cfg.LLM.Providers == nil {
		cfg.LLM.Providers = make(map[string]ProviderConfig)
	}
	if strings.TrimSpace(cfg.LLM.DefaultProvider) == "" {
		cfg.LLM.DefaultProvider = "openai"
	}

	if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" {
		p := cfg.LLM.Providers["openai"]
		p.APIKey = v
		cfg.LLM.Providers["openai"] = p
	}
	if v := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")); v != "" {
		p := cfg.LLM.Providers["claude"]
		p.APIKey = v
		cfg.LLM.Providers["claude"] = p
	} else if v := strings.TrimSpace(os.Getenv("ANTHROPIC_AUTH_TOKEN")); v != "" {
		p := cfg.LLM.Providers["claude"]
		p.APIKey = v
		cfg.LLM.Providers["claude"] = p
	}

	return &cfg, nil
}

// Method resolves the settings for a prompting method. Fields absent
// from the config file keep their built-in defaults.
func (c *Config) Method(name string) (Settings, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case MethodDIY, MethodSoT:
	default:
		return Settings{}, fmt.Errorf("config: unknown method %q (expected %q or %q)", name, MethodDIY, MethodSoT)
	}

	out := defaultSettings(name)
	if c == nil || c.Methods == nil {
		return out, nil
	}

	s, ok := c.Methods[name]
	if !ok {
		return out, nil
	}
	if v := strings.TrimSpace(s.DatasetPath); v != "" {
		out.DatasetPath = v
	}
	if v := strings.ToLower(strings.TrimSpace(s.DatasetType)); v != "" {
		out.DatasetType = v
	}
	if s.BettiNumber > 0 {
		out.BettiNumber = s.BettiNumber
	}
	if s.SolutionNumber > 0 {
		out.SolutionNumber = s.SolutionNumber
	}
	if s.Temperature > 0 {
		out.Temperature = s.Temperature
	}
	if s.MaxTokens > 0 {
		out.MaxTokens = s.MaxTokens
	}
	return out, nil
}
