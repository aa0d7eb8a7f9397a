package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	var topK int
	var category string
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Rank knowledge-base documents against a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setupKnowledgeBase(cmd.Context()); err != nil {
				return err
			}
			if topK <= 0 {
				topK = a.cfg.Retrieval.TopK
			}
			query := strings.Join(args, " ")
			hits, err := a.pipeline.Search(cmd.Context(), query, topK, category)
			if err != nil {
				return err
			}
			if len(hits) == 0 {
				fmt.Println("No matching documents.")
				return nil
			}
			for i, h := range hits {
				fmt.Printf("%d. %s (%s) score=%.3f\n   %s\n", i+1, h.Document.Title, h.Document.ID, h.Similarity, h.Document.Content)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&topK, "top-k", "k", 0, "number of results (default from config)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category substring filter")
	return cmd
}
