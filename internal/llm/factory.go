package llm

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Estrellaxiaoyu/syzygy-of-thoughts/internal/config"
)

func providersFromConfig(cfg *config.Config) (map[string]Provider, error) {
	out := make(map[string]Provider, len(cfg.LLM.Providers))
	for name, pcfg := range cfg.LLM.Providers {
		key := strings.ToLower(strings.TrimSpace(name))
		switch key {
		case "":
			continue
		case "claude", "anthropic":
			out["claude"] = NewClaudeProvider(pcfg.APIKey, pcfg.BaseURL, pcfg.Model)
		case "openai":
			out["openai"] = NewOpenAIProvider(pcfg.APIKey, pcfg.BaseURL, pcfg.Model)
		default:
			return nil, fmt.Errorf("llm: unknown provider %q", name)
		}
	}
	return out, nil
}

// DefaultProviderFromConfig builds the provider named by the config's
// default_provider field. With exactly one provider configured, that
// one wins regardless of the default name.
func DefaultProviderFromConfig(cfg *config.Config) (Provider, error) {
	if cfg == nil {
		return nil, errors.New("llm: nil config")
	}
	providers, err := providersFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	name := strings.ToLower(strings.TrimSpace(cfg.LLM.DefaultProvider))
	if name == "" {
		name = "openai"
	}
	if name == "anthropic" {
		name = "claude"
	}
	if p, ok := providers[name]; ok {
		return p, nil
	}

	if len(providers) == 1 {
		for _, p := range providers {
			return p, nil
		}
	}

	available := make([]string, 0, len(providers))
	for k := range providers {
		available = append(available, k)
	}
	sort.Strings(available)
	return nil, fmt.Errorf("llm: default provider %q not configured (available: %s)", name, strings.Join(available, ", "))
}
