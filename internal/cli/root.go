// Package cli wires the cobra command tree.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bizkb/internal/assistant"
	"bizkb/internal/config"
	"bizkb/internal/corpus"
	"bizkb/internal/domain"
	"bizkb/internal/history"
	"bizkb/internal/logger"
	"bizkb/internal/provider/gemini"
	"bizkb/internal/retrieval"
	"bizkb/internal/store"
)

// app carries the wired components shared by the commands.
type app struct {
	cfgPath string
	verbose bool

	cfg       *config.AppConfig
	log       *zap.Logger
	store     *store.Store
	pipeline  *retrieval.Pipeline
	assistant *assistant.Assistant
	session   *history.Log
}

// NewRootCmd builds the command tree.
func NewRootCmd(version string) *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "bizkb",
		Short:         "Business knowledge assistant with retrieval-grounded answers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if a.cfgPath == "" {
				a.cfg, _, err = config.LoadDefault()
			} else {
				a.cfg, err = config.Load(a.cfgPath)
			}
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.log, err = logger.New(a.verbose)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "path to YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newChatCmd(a),
		newAskCmd(a),
		newSearchCmd(a),
		newCopyCmd(a),
		newAnalyzeCmd(a),
		newSentimentCmd(a),
		newReportCmd(a),
		newIntelCmd(a),
		newVersionCmd(version),
	)
	return root
}

// genOpts maps config to generation options.
func (a *app) genOpts() domain.GenerateOptions {
	return domain.GenerateOptions{
		MaxTokens:   a.cfg.Generation.MaxTokens,
		Temperature: a.cfg.Generation.Temperature,
	}
}

// setupGenerator wires only the generation side, for the assistant commands
// which never touch the knowledge base.
func (a *app) setupGenerator() error {
	client, err := a.newClient()
	if err != nil {
		return err
	}
	a.assistant = assistant.New(client, a.genOpts(), a.log)
	return nil
}

// setupKnowledgeBase wires providers, store and pipeline, then loads and
// embeds the corpus.
func (a *app) setupKnowledgeBase(ctx context.Context) error {
	client, err := a.newClient()
	if err != nil {
		return err
	}
	a.store = store.New(client, a.log)
	a.pipeline = retrieval.New(client, a.store, client, a.genOpts(), a.log)
	a.session = history.NewLog()

	docs, err := corpus.Load(a.cfg.Corpus.Path)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	start := time.Now()
	if err := a.store.Insert(ctx, docs); err != nil {
		return fmt.Errorf("index corpus: %w", err)
	}
	a.log.Info("knowledge base ready",
		zap.Int("documents", a.store.Len()),
		zap.Duration("took", time.Since(start)))
	return nil
}

func (a *app) newClient() (*gemini.Client, error) {
	return gemini.NewClient(gemini.Config{
		BaseURL:           a.cfg.Gemini.BaseURL,
		APIKeyEnv:         a.cfg.Gemini.APIKeyEnv,
		GenerativeModel:   a.cfg.Gemini.GenerativeModel,
		EmbeddingModel:    a.cfg.Gemini.EmbeddingModel,
		EmbeddingDim:      a.cfg.Gemini.EmbeddingDim,
		Timeout:           time.Duration(a.cfg.Gemini.TimeoutSecs) * time.Second,
		MaxRetries:        a.cfg.Gemini.MaxRetries,
		RequestsPerSecond: a.cfg.Gemini.RequestsPerSecond,
		Burst:             a.cfg.Gemini.Burst,
	})
}
