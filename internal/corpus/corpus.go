// Package corpus loads the knowledge-base documents from a YAML file, with a
// built-in sample set used when no file is configured.
package corpus

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"bizkb/internal/domain"
)

type corpusFile struct {
	Documents []domain.DocumentInput `yaml:"documents"`
}

// Load reads documents from path. An empty path returns the built-in sample
// corpus.
func Load(path string) ([]domain.DocumentInput, error) {
	if path == "" {
		return SampleDocuments(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f corpusFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}
	if len(f.Documents) == 0 {
		return nil, fmt.Errorf("%w: corpus %s contains no documents", domain.ErrInvalidInput, path)
	}
	seen := make(map[string]struct{}, len(f.Documents))
	for _, d := range f.Documents {
		if d.ID == "" {
			return nil, fmt.Errorf("%w: corpus %s contains a document without id", domain.ErrInvalidInput, path)
		}
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("%w: corpus %s repeats document id %s", domain.ErrInvalidInput, path, d.ID)
		}
		seen[d.ID] = struct{}{}
	}
	return f.Documents, nil
}

// SampleDocuments is the default business knowledge base.
func SampleDocuments() []domain.DocumentInput {
	return []domain.DocumentInput{
		{
			ID:       "POLICY-001",
			Title:    "Remote Work Guidelines",
			Content:  "Employees can work remotely up to 3 days per week with manager approval. Core hours 10 AM - 4 PM local time. Weekly team meetings required. Reliable internet and secure workspace mandatory.",
			Category: "HR Policy",
		},
		{
			ID:       "PROCESS-001",
			Title:    "Customer Onboarding Process",
			Content:  "New customer onboarding includes: welcome email within 24 hours, setup call within 48 hours, training materials delivery, 30-day check-in, and satisfaction survey. Success metrics: 90% completion rate, 4.5+ satisfaction score.",
			Category: "Customer Success",
		},
		{
			ID:       "FINANCE-001",
			Title:    "Budget Approval Process",
			Content:  "Budget requests under $5K require department head approval. $5K-$25K needs VP approval. Over $25K requires C-level approval. All requests must include ROI analysis and 3-month impact projection.",
			Category: "Finance",
		},
		{
			ID:       "SALES-001",
			Title:    "Lead Qualification Framework",
			Content:  "Use BANT framework: Budget (confirmed >$10K), Authority (decision maker identified), Need (pain point validated), Timeline (decision within 6 months). Score leads 1-4 on each criteria.",
			Category: "Sales",
		},
	}
}
