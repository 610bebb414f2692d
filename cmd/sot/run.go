package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Estrellaxiaoyu/syzygy-of-thoughts/internal/config"
	"github.com/Estrellaxiaoyu/syzygy-of-thoughts/internal/dataset"
	"github.com/Estrellaxiaoyu/syzygy-of-thoughts/internal/llm"
	"github.com/Estrellaxiaoyu/syzygy-of-thoughts/internal/prompt"
	"github.com/Estrellaxiaoyu/syzygy-of-thoughts/internal/runner"
)

type runOptions struct {
	promptType  string
	datasetPath string
	datasetType string
}

func newRunCmd(st *cliState) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run an accuracy evaluation over a labeled dataset",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(st.configPath)
			if err != nil {
				return err
			}
			st.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(st, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.promptType, "prompt-type", "", "prompting method: diy|sot")
	cmd.Flags().StringVar(&opts.datasetPath, "dataset", "", "dataset file path (overrides config)")
	cmd.Flags().StringVar(&opts.datasetType, "dataset-type", "", "dataset type: aqua|gsm8k (overrides config)")
	_ = cmd.MarkFlagRequired("prompt-type")

	return cmd
}

func runEval(st *cliState, opts *runOptions) error {
	if st == nil || st.cfg == nil {
		return fmt.Errorf("run: missing config (internal error)")
	}
	if opts == nil {
		return fmt.Errorf("run: nil options")
	}

	settings, err := resolveSettings(st.cfg, opts)
	if err != nil {
		return err
	}

	logger := newRunLogger()

	r, err := runner.New(
		&prompt.Factory{},
		loaderFunc(dataset.Load),
		func() (llm.Provider, error) {
			return llm.DefaultProviderFromConfig(st.cfg)
		},
		settings,
		logger,
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// All run outcomes, failures included, surface through the log.
	r.Run(ctx)
	return nil
}

func resolveSettings(cfg *config.Config, opts *runOptions) (config.Settings, error) {
	settings, err := cfg.Method(opts.promptType)
	if err != nil {
		return config.Settings{}, err
	}
	if v := strings.TrimSpace(opts.datasetPath); v != "" {
		settings.DatasetPath = v
	}
	if v := strings.ToLower(strings.TrimSpace(opts.datasetType)); v != "" {
		settings.DatasetType = v
	}
	return settings, nil
}

func newRunLogger() *slog.Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(h).With("run_id", uuid.NewString())
}

// loaderFunc adapts a plain load function to the runner's interface.
type loaderFunc func(path string, datasetType string) ([]dataset.Item, error)

func (f loaderFunc) Load(path string, datasetType string) ([]dataset.Item, error) {
	return f(path, datasetType)
}
