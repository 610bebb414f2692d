package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/Estrellaxiaoyu/syzygy-of-thoughts/internal/answer"
	"github.com/Estrellaxiaoyu/syzygy-of-thoughts/internal/config"
	"github.com/Estrellaxiaoyu/syzygy-of-thoughts/internal/dataset"
	"github.com/Estrellaxiaoyu/syzygy-of-thoughts/internal/prompt"
)

// Runner orchestrates one evaluation run: prompt construction, per-item
// model invocation, answer validation, and report aggregation.
type Runner struct {
	factory     PromptFactory
	loader      DatasetLoader
	newProvider ProviderInit
	settings    config.Settings
	log         *slog.Logger
}

// New constructs a Runner. The settings must already be resolved for a
// recognized method; an unrecognized method is a configuration error
// and no Runner is returned.
func New(factory PromptFactory, loader DatasetLoader, newProvider ProviderInit, settings config.Settings, logger *slog.Logger) (*Runner, error) {
	if factory == nil {
		return nil, errors.New("runner: nil prompt factory")
	}
	if loader == nil {
		return nil, errors.New("runner: nil dataset loader")
	}
	if newProvider == nil {
		return nil, errors.New("runner: nil provider init")
	}
	switch settings.Method {
	case config.MethodDIY, config.MethodSoT:
	default:
		return nil, fmt.Errorf("runner: unresolved settings: unknown method %q", settings.Method)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		factory:     factory,
		loader:      loader,
		newProvider: newProvider,
		settings:    settings,
		log:         logger,
	}, nil
}

// Run executes the evaluation and returns the report, or nil when no
// measurement was produced (unsupported template combination, dataset
// failure, empty dataset, or a run-level failure). Run never returns an
// error: every failure is logged and absorbed here, so callers observe
// the run through the log and the returned report only.
func (r *Runner) Run(ctx context.Context) (report *Report) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("evaluation run aborted",
				"panic", fmt.Sprint(p),
				"stack", string(debug.Stack()))
			report = nil
		}
	}()

	if ctx == nil {
		ctx = context.Background()
	}

	s := r.settings

	tmpl, err := r.factory.Template(s.Method, s.DatasetType, s.BettiNumber, s.SolutionNumber)
	if err != nil {
		if errors.Is(err, prompt.ErrUnsupported) {
			r.log.Info("no prompt template for this method/dataset combination, nothing to evaluate",
				"method", s.Method,
				"dataset_type", s.DatasetType)
			return nil
		}
		r.log.Error("prompt template construction failed", "error", err)
		return nil
	}

	provider, err := r.newProvider()
	if err != nil {
		r.log.Error("model client initialization failed", "error", err)
		return nil
	}

	chain := &Chain{
		Template:    tmpl,
		Provider:    provider,
		MaxTokens:   s.MaxTokens,
		Temperature: s.Temperature,
	}

	r.log.Info("loading dataset", "path", s.DatasetPath, "dataset_type", s.DatasetType)
	items, err := r.loader.Load(s.DatasetPath, s.DatasetType)
	if err != nil {
		r.log.Error("dataset load failed", "path", s.DatasetPath, "error", err)
		return nil
	}
	r.log.Info("dataset loaded", "items", len(items))

	total := len(items)
	if total == 0 {
		r.log.Error("dataset is empty, no questions to evaluate", "path", s.DatasetPath)
		return nil
	}

	rep := &Report{Total: total}
	for i, item := range items {
		idx := i + 1

		correct, err := r.runItem(ctx, chain, idx, total, item)
		if err != nil {
			rep.Errored++
			r.log.Error("question processing failed, continuing with next",
				"question", idx,
				"error", err)
			continue
		}
		if correct {
			rep.Correct++
		} else {
			rep.WrongIndices = append(rep.WrongIndices, idx)
		}
	}

	r.log.Info("test report",
		"total", rep.Total,
		"correct", rep.Correct,
		"errored", rep.Errored,
		"accuracy", fmt.Sprintf("%.2f%%", rep.Accuracy()*100),
		"wrong_questions", rep.WrongIndices)
	return rep
}

// runItem processes a single question end to end. Any failure, panics
// included, comes back as an error so the caller can skip the item
// without ending the run.
func (r *Runner) runItem(ctx context.Context, chain *Chain, idx int, total int, item dataset.Item) (correct bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()

	vars := r.inputRecord(item)

	filled, err := chain.Template.Fill(vars)
	if err != nil {
		return false, err
	}
	r.log.Info("prompt filled",
		"question", fmt.Sprintf("%d/%d", idx, total),
		"prompt", filled)

	generated, err := chain.Invoke(ctx, vars)
	if err != nil {
		return false, err
	}
	r.log.Info("model response received",
		"question", fmt.Sprintf("%d/%d", idx, total),
		"response", generated)

	predicted := answer.ParseLLMAnswer(generated)

	truth, err := answer.ParseDatasetAnswer(item.Solution, r.settings.DatasetType)
	if err != nil {
		return false, err
	}

	correct, err = answer.ValidateResponse(generated, item.Solution, r.settings.DatasetType)
	if err != nil {
		return false, err
	}

	outcome := "wrong"
	if correct {
		outcome = "correct"
	}
	r.log.Info("question evaluated",
		"question", fmt.Sprintf("%d/%d", idx, total),
		"predicted", predicted,
		"truth", truth,
		"outcome", outcome)
	return correct, nil
}

// inputRecord assembles the per-item template variables: the problem
// always, the Betti number only for sot, the options only for aqua.
func (r *Runner) inputRecord(item dataset.Item) map[string]any {
	vars := map[string]any{
		"problem": item.Problem,
	}
	if r.settings.Method == config.MethodSoT {
		vars["betti_number"] = r.settings.BettiNumber
	}
	if r.settings.DatasetType == dataset.TypeAqua {
		vars["options"] = item.Options
	}
	return vars
}
