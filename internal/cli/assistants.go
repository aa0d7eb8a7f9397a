package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"bizkb/internal/assistant"
	"bizkb/internal/domain"
)

// readDocument returns the file content, or stdin when no path is given.
func readDocument(path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func newCopyCmd(a *app) *cobra.Command {
	var req assistant.CopyRequest
	var copyType string
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Generate marketing copy",
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := assistant.ParseCopyType(copyType)
			if err != nil {
				return err
			}
			req.Type = ct
			if err := a.setupGenerator(); err != nil {
				return err
			}
			out, err := a.assistant.MarketingCopy(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Product, "product", "", "product or service name (required)")
	cmd.Flags().StringArrayVar(&req.Features, "feature", nil, "key feature (repeatable)")
	cmd.Flags().StringVar(&req.Audience, "audience", "", "target audience")
	cmd.Flags().StringVar(&req.ValueProposition, "value", "", "value proposition")
	cmd.Flags().StringVar(&copyType, "type", string(assistant.CopyEmail), "copy type: email, social, landing_page, advertisement")
	_ = cmd.MarkFlagRequired("product")
	return cmd
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var analysisType string
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze a business document (from file or stdin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := assistant.ParseAnalysisType(analysisType)
			if err != nil {
				return err
			}
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			doc, err := readDocument(path)
			if err != nil {
				return err
			}
			if err := a.setupGenerator(); err != nil {
				return err
			}
			out, err := a.assistant.AnalyzeDocument(cmd.Context(), assistant.AnalysisRequest{Document: doc, Type: at})
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&analysisType, "type", string(assistant.AnalysisComprehensive),
		"analysis type: executive_summary, action_items, financial, strategic, comprehensive")
	return cmd
}

func newSentimentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sentiment <feedback>...",
		Short: "Analyze customer feedback sentiment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setupGenerator(); err != nil {
				return err
			}
			out, err := a.assistant.Sentiment(cmd.Context(), assistant.SentimentRequest{Items: args})
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
	return cmd
}

func newReportCmd(a *app) *cobra.Command {
	var reportType string
	var metrics []string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a business report from metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := assistant.ParseReportType(reportType)
			if err != nil {
				return err
			}
			req := assistant.ReportRequest{Type: rt}
			for _, m := range metrics {
				name, value, ok := strings.Cut(m, "=")
				if !ok || name == "" || value == "" {
					return fmt.Errorf("%w: metric %q must be name=value", domain.ErrInvalidInput, m)
				}
				req.Metrics = append(req.Metrics, assistant.Metric{Name: name, Value: value})
			}
			if err := a.setupGenerator(); err != nil {
				return err
			}
			out, err := a.assistant.Report(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&reportType, "type", string(assistant.ReportSales),
		"report type: sales, marketing, customer_success, financial, operational")
	cmd.Flags().StringArrayVar(&metrics, "metric", nil, "metric as name=value (repeatable)")
	return cmd
}

func newIntelCmd(a *app) *cobra.Command {
	var focus string
	var sources, titles, contents []string
	cmd := &cobra.Command{
		Use:   "intel",
		Short: "Analyze competitive intelligence items",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := assistant.ParseIntelFocus(focus)
			if err != nil {
				return err
			}
			if len(sources) != len(titles) || len(titles) != len(contents) {
				return fmt.Errorf("%w: --source, --title and --content must be given the same number of times", domain.ErrInvalidInput)
			}
			req := assistant.IntelRequest{Focus: f}
			for i := range sources {
				req.Items = append(req.Items, assistant.IntelItem{
					Source:  sources[i],
					Title:   titles[i],
					Content: contents[i],
				})
			}
			if err := a.setupGenerator(); err != nil {
				return err
			}
			out, err := a.assistant.Intel(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&focus, "focus", string(assistant.IntelNews), "focus: news, features, positioning")
	cmd.Flags().StringArrayVar(&sources, "source", nil, "item source (repeatable)")
	cmd.Flags().StringArrayVar(&titles, "title", nil, "item title (repeatable)")
	cmd.Flags().StringArrayVar(&contents, "content", nil, "item content (repeatable)")
	return cmd
}
