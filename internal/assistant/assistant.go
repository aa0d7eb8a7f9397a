// Package assistant provides the prompt-templated business helpers: marketing
// copy, document analysis, sentiment analysis, report generation and
// competitive intelligence. Each helper is a closed variant with its own
// template; there is no free-text dispatch.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"bizkb/internal/domain"
)

// CopyRequest describes a marketing-copy generation.
type CopyRequest struct {
	Product          string
	Features         []string
	Audience         string
	ValueProposition string
	Type             CopyType
}

// AnalysisRequest describes a document analysis.
type AnalysisRequest struct {
	Document string
	Type     AnalysisType
}

// SentimentRequest carries one or more customer feedback items.
type SentimentRequest struct {
	Items []string
}

// Metric is a single named figure for a business report.
type Metric struct {
	Name  string
	Value string
}

// ReportRequest describes a business-report generation.
type ReportRequest struct {
	Type    ReportType
	Metrics []Metric
}

// IntelItem is a single piece of competitor material.
type IntelItem struct {
	Source  string
	Title   string
	Content string
}

// IntelRequest describes a competitive-intelligence analysis.
type IntelRequest struct {
	Focus IntelFocus
	Items []IntelItem
}

// Assistant runs the business helpers against a generation provider.
type Assistant struct {
	generator domain.Generator
	opts      domain.GenerateOptions
	log       *zap.Logger
}

// New creates an assistant bound to a generation provider.
func New(generator domain.Generator, opts domain.GenerateOptions, log *zap.Logger) *Assistant {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assistant{generator: generator, opts: opts, log: log}
}

// MarketingCopy generates marketing copy for a product.
func (a *Assistant) MarketingCopy(ctx context.Context, req CopyRequest) (string, error) {
	if strings.TrimSpace(req.Product) == "" {
		return "", fmt.Errorf("%w: product name is required", domain.ErrInvalidInput)
	}
	return a.generate(ctx, "marketing_copy", copyPrompt(req))
}

// AnalyzeDocument analyzes a pasted business document.
func (a *Assistant) AnalyzeDocument(ctx context.Context, req AnalysisRequest) (string, error) {
	if strings.TrimSpace(req.Document) == "" {
		return "", fmt.Errorf("%w: document text is required", domain.ErrInvalidInput)
	}
	if _, ok := analysisFocus[req.Type]; !ok {
		return "", fmt.Errorf("%w: unknown analysis type %q", domain.ErrInvalidInput, req.Type)
	}
	return a.generate(ctx, "document_analysis", analysisPrompt(req))
}

// Sentiment analyzes customer feedback, single or batched.
func (a *Assistant) Sentiment(ctx context.Context, req SentimentRequest) (string, error) {
	if len(req.Items) == 0 {
		return "", fmt.Errorf("%w: at least one feedback item is required", domain.ErrInvalidInput)
	}
	return a.generate(ctx, "sentiment", sentimentPrompt(req))
}

// Report generates a business report from supplied metrics.
func (a *Assistant) Report(ctx context.Context, req ReportRequest) (string, error) {
	if len(req.Metrics) == 0 {
		return "", fmt.Errorf("%w: at least one metric is required", domain.ErrInvalidInput)
	}
	if _, err := ParseReportType(string(req.Type)); err != nil {
		return "", err
	}
	return a.generate(ctx, "report", reportPrompt(req))
}

// Intel analyzes competitor material.
func (a *Assistant) Intel(ctx context.Context, req IntelRequest) (string, error) {
	if len(req.Items) == 0 {
		return "", fmt.Errorf("%w: at least one intelligence item is required", domain.ErrInvalidInput)
	}
	if _, ok := intelAngle[req.Focus]; !ok {
		return "", fmt.Errorf("%w: unknown intelligence focus %q", domain.ErrInvalidInput, req.Focus)
	}
	return a.generate(ctx, "intel", intelPrompt(req))
}

func (a *Assistant) generate(ctx context.Context, feature, prompt string) (string, error) {
	text, err := a.generator.Generate(ctx, prompt, a.opts)
	if err != nil {
		return "", err
	}
	a.log.Debug("assistant generation complete",
		zap.String("feature", feature),
		zap.Int("prompt_len", len(prompt)))
	return strings.TrimSpace(text), nil
}
