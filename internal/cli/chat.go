package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"bizkb/internal/tui"
)

func newChatCmd(a *app) *cobra.Command {
	var exportPath string
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive knowledge-base chat",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setupKnowledgeBase(cmd.Context()); err != nil {
				return err
			}
			summary := fmt.Sprintf("%d documents indexed with %s", a.store.Len(), a.cfg.Gemini.EmbeddingModel)
			m := tui.New(a.pipeline, a.session, a.cfg.Retrieval.MaxContext, summary)
			if _, err := tea.NewProgram(m).Run(); err != nil {
				return err
			}
			if exportPath != "" {
				if err := a.session.ExportFile(exportPath); err != nil {
					return fmt.Errorf("export session: %w", err)
				}
				fmt.Printf("Session exported to %s\n", exportPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&exportPath, "export", "", "write the session log to this JSON file on exit")
	return cmd
}
