package retrieval

import (
	"fmt"
	"strings"

	"bizkb/internal/domain"
)

// buildAnswerPrompt assembles the grounding context in rank order, most
// relevant document first, and wraps it in the answer instructions. The
// instructions require the model to answer only from context, cite document
// ids and admit when the context is insufficient.
func buildAnswerPrompt(query string, hits []domain.RankedHit) string {
	var ctx strings.Builder
	for i, h := range hits {
		fmt.Fprintf(&ctx, "Document %d (ID: %s):\n%s\n\n", i+1, h.Document.ID, h.Document.Content)
	}

	var b strings.Builder
	b.WriteString("You are a knowledgeable business assistant. Answer the user's question based on the provided context documents.\n\n")
	fmt.Fprintf(&b, "User Question: %s\n\n", query)
	b.WriteString("Context Documents:\n")
	b.WriteString(ctx.String())
	b.WriteString("Instructions:\n")
	b.WriteString("- Provide a clear, accurate answer based only on the context\n")
	b.WriteString("- Include relevant document IDs in your response\n")
	b.WriteString("- If the context doesn't contain enough information, say so instead of guessing\n")
	b.WriteString("- Use professional business language\n")
	b.WriteString("- If multiple documents provide different perspectives, acknowledge this\n\n")
	b.WriteString("Answer:")
	return b.String()
}
