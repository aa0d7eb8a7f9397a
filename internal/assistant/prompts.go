package assistant

import (
	"fmt"
	"strings"
)

func copyPrompt(req CopyRequest) string {
	features := "N/A"
	if len(req.Features) > 0 {
		features = strings.Join(req.Features, ", ")
	}
	audience := req.Audience
	if audience == "" {
		audience = "General audience"
	}
	value := req.ValueProposition
	if value == "" {
		value = "N/A"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Generate compelling %s marketing copy for:\n\n", req.Type)
	fmt.Fprintf(&b, "Product: %s\n", req.Product)
	fmt.Fprintf(&b, "Features: %s\n", features)
	fmt.Fprintf(&b, "Target Audience: %s\n", audience)
	fmt.Fprintf(&b, "Value Proposition: %s\n\n", value)
	b.WriteString("Requirements:\n")
	b.WriteString("- Professional and engaging tone\n")
	b.WriteString("- Clear call-to-action\n")
	b.WriteString("- Focus on benefits over features\n")
	fmt.Fprintf(&b, "- Appropriate length for %s\n", req.Type)
	b.WriteString("- Include emotional triggers\n\n")
	b.WriteString("Generate effective marketing copy:")
	return b.String()
}

var analysisFocus = map[AnalysisType]string{
	AnalysisExecutiveSummary: `Create a concise executive summary of this document.
Focus on key decisions made, important metrics or results, strategic
implications and next steps. Keep it under 150 words suitable for senior
executives.`,
	AnalysisActionItems: `Extract all action items and next steps from this document.
For each action item identify the specific task, the responsible party,
the deadline and the priority level, where mentioned. Format as a numbered
list.`,
	AnalysisFinancial: `Analyze this document for financial information and implications.
Focus on revenue and cost metrics, budget implications, financial risks and
opportunities, and ROI considerations. Provide specific financial insights.`,
	AnalysisStrategic: `Analyze this document for strategic business insights.
Focus on competitive implications, market opportunities, strategic risks and
long-term business impact. Provide strategic recommendations.`,
	AnalysisComprehensive: `Provide comprehensive analysis of this business document.
Include an executive summary, key findings, action items, business
implications and recommendations. Structure the analysis for business
stakeholders.`,
}

func analysisPrompt(req AnalysisRequest) string {
	return fmt.Sprintf("%s\n\nDocument:\n%s", analysisFocus[req.Type], req.Document)
}

func sentimentPrompt(req SentimentRequest) string {
	if len(req.Items) == 1 {
		var b strings.Builder
		b.WriteString("Analyze the sentiment and business implications of this customer feedback:\n\n")
		fmt.Fprintf(&b, "Feedback: %q\n\n", req.Items[0])
		b.WriteString("Provide:\n")
		b.WriteString("1. Overall Sentiment (positive/negative/neutral)\n")
		b.WriteString("2. Emotional Tone\n")
		b.WriteString("3. Specific Issues or Highlights\n")
		b.WriteString("4. Business Impact Assessment\n")
		b.WriteString("5. Recommended Response Strategy\n")
		b.WriteString("6. Urgency Level (low/medium/high)\n\n")
		b.WriteString("Format for business action.")
		return b.String()
	}
	var items strings.Builder
	for i, item := range req.Items {
		fmt.Fprintf(&items, "%d. %s\n", i+1, item)
	}
	var b strings.Builder
	b.WriteString("Analyze sentiment for multiple customer feedback items:\n\n")
	b.WriteString(items.String())
	b.WriteString("\nProvide:\n")
	b.WriteString("1. Individual sentiment analysis for each item\n")
	b.WriteString("2. Overall sentiment distribution\n")
	b.WriteString("3. Common themes and issues\n")
	b.WriteString("4. Priority items requiring immediate attention\n")
	b.WriteString("5. Actionable insights for the customer success team\n\n")
	b.WriteString("Format for a business dashboard.")
	return b.String()
}

func reportPrompt(req ReportRequest) string {
	var metrics strings.Builder
	for _, m := range req.Metrics {
		fmt.Fprintf(&metrics, "- %s: %s\n", m.Name, m.Value)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a comprehensive %s business report using these metrics:\n\n", req.Type)
	b.WriteString(metrics.String())
	b.WriteString("\nStructure the report with:\n")
	b.WriteString("1. Executive Summary (2-3 sentences)\n")
	b.WriteString("2. Key Performance Highlights\n")
	b.WriteString("3. Areas of Concern\n")
	b.WriteString("4. Trend Analysis (if applicable)\n")
	b.WriteString("5. Strategic Recommendations\n")
	b.WriteString("6. Action Items for Next Period\n\n")
	b.WriteString("Use professional business language suitable for stakeholders.\n")
	b.WriteString("Include specific insights and actionable recommendations.")
	return b.String()
}

var intelAngle = map[IntelFocus]string{
	IntelNews: `Analyze this competitive intelligence for strategic insights.
Cover the competitor's apparent strategy, threats and opportunities for us,
and recommended responses.`,
	IntelFeatures: `Compare the competitor capabilities described below against a typical
offering in this market. Identify feature gaps, differentiators and areas
where we should invest.`,
	IntelPositioning: `Assess the market positioning signalled by the material below.
Cover target segments, pricing posture, messaging themes and positioning
opportunities left open.`,
}

func intelPrompt(req IntelRequest) string {
	var items strings.Builder
	for _, item := range req.Items {
		fmt.Fprintf(&items, "Source: %s\nTitle: %s\nContent: %s\n\n", item.Source, item.Title, item.Content)
	}
	return fmt.Sprintf("%s\n\nIntelligence items:\n\n%s", intelAngle[req.Focus], items.String())
}
