package runner

import (
	"context"
	"errors"

	"github.com/Estrellaxiaoyu/syzygy-of-thoughts/internal/dataset"
	"github.com/Estrellaxiaoyu/syzygy-of-thoughts/internal/llm"
	"github.com/Estrellaxiaoyu/syzygy-of-thoughts/internal/prompt"
)

// PromptFactory produces the template for a method/dataset pair, or
// prompt.ErrUnsupported when the combination has no template yet.
type PromptFactory interface {
	Template(method string, datasetType string, bettiNumber int, solutionNumber int) (*prompt.Template, error)
}

// DatasetLoader reads a dataset file into an ordered item sequence.
type DatasetLoader interface {
	Load(path string, datasetType string) ([]dataset.Item, error)
}

// ProviderInit builds the model client for a run. Failures (missing
// credentials, bad config) surface through the runner's top-level
// failure handling.
type ProviderInit func() (llm.Provider, error)

// Report is the outcome of one evaluation run. Total is the dataset
// length; items that failed mid-processing land in Errored and are
// excluded from both Correct and WrongIndices, so
// Correct + len(WrongIndices) + Errored == Total.
type Report struct {
	Total        int
	Correct      int
	Errored      int
	WrongIndices []int
}

// Accuracy is Correct/Total, zero when Total is zero.
func (r *Report) Accuracy() float64 {
	if r == nil || r.Total <= 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total)
}

// Chain composes template fill and a model call into one invocable, in
// that order.
type Chain struct {
	Template    *prompt.Template
	Provider    llm.Provider
	MaxTokens   int
	Temperature float64
}

// Invoke fills the template with vars and sends it to the model,
// returning the generated text.
func (c *Chain) Invoke(ctx context.Context, vars map[string]any) (string, error) {
	if c == nil || c.Template == nil {
		return "", errors.New("runner: nil chain template")
	}
	if c.Provider == nil {
		return "", errors.New("runner: nil chain provider")
	}

	filled, err := c.Template.Fill(vars)
	if err != nil {
		return "", err
	}

	resp, err := c.Provider.Complete(ctx, &llm.Request{
		Messages:    []llm.Message{{Role: "user", Content: filled}},
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
	})
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", errors.New("runner: nil model response")
	}
	return resp.Text, nil
}
