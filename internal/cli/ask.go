package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd(a *app) *cobra.Command {
	var maxContext int
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a question from the knowledge base",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setupKnowledgeBase(cmd.Context()); err != nil {
				return err
			}
			if maxContext <= 0 {
				maxContext = a.cfg.Retrieval.MaxContext
			}
			question := strings.Join(args, " ")
			ans, err := a.pipeline.Answer(cmd.Context(), question, maxContext)
			if err != nil {
				return err
			}
			fmt.Println(ans.Text)
			if ans.Grounded() {
				fmt.Printf("\nSources: %s\n", strings.Join(ans.Sources, ", "))
				fmt.Printf("Confidence: %.3f\n", ans.Confidence)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&maxContext, "max-context", 0, "maximum context documents (default from config)")
	return cmd
}
