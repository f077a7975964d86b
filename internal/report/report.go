package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"edgegate/domain/verdict"
)

// RenderText produces a plain-text validation report suitable for terminal
// output and log attachments.
func RenderText(a *verdict.RunArtifact) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== Signal Validation Report: %s ===\n\n", a.SignalName)
	fmt.Fprintf(&b, "Run ID: %s\n", a.ID)
	fmt.Fprintf(&b, "Generated: %s\n\n", a.CreatedAt.Time().Format("2006-01-02 15:04"))

	r := a.Record
	b.WriteString("--- Sample ---\n")
	fmt.Fprintf(&b, "Sample Size: %d\n", r.SampleSize)
	fmt.Fprintf(&b, "Wins: %d\n", r.Wins)
	fmt.Fprintf(&b, "Win Rate: %.1f%%\n\n", r.WinRate*100)

	b.WriteString("--- Directional Accuracy (Binomial Test) ---\n")
	fmt.Fprintf(&b, "95%% CI (Wilson): [%.1f%%, %.1f%%]\n", r.CILower*100, r.CIUpper*100)
	fmt.Fprintf(&b, "P-value: %.4f\n", r.PValue)
	fmt.Fprintf(&b, "Significant (p<0.05): %s\n", yesNo(r.PValue < 0.05))
	fmt.Fprintf(&b, "Positive Edge: %s\n\n", yesNo(r.HasPositiveEdge()))

	b.WriteString("--- Information Coefficient ---\n")
	if r.ICUndefined {
		b.WriteString("IC (Spearman): undefined (constant input)\n\n")
	} else {
		fmt.Fprintf(&b, "IC (Spearman): %.4f\n\n", r.InformationCoefficient)
	}

	b.WriteString("--- Conditional Performance ---\n")
	fmt.Fprintf(&b, "Win Rate Above Threshold: %.1f%%\n", r.ConditionalWinRate*100)
	fmt.Fprintf(&b, "Matched Samples: %d\n\n", r.ConditionalSampleSize)

	if wf := a.WalkForward; wf != nil {
		b.WriteString("--- Walk-Forward Analysis ---\n")
		fmt.Fprintf(&b, "In-Sample Win Rate: %.1f%% (n=%d)\n", wf.InSampleWinRate*100, wf.TrainSize)
		fmt.Fprintf(&b, "Out-of-Sample Win Rate: %.1f%% (n=%d)\n", wf.OutOfSampleWinRate*100, wf.TestSize)
		fmt.Fprintf(&b, "Degradation: %.1f%%\n", wf.DegradationRatio*100)
		fmt.Fprintf(&b, "Overfit Risk: %s\n", wf.Risk)
		fmt.Fprintf(&b, "Overfit: %s\n\n", yesNo(wf.IsOverfit))
	}

	if s := a.Sizing; s != nil {
		b.WriteString("--- Position Sizing (Kelly) ---\n")
		fmt.Fprintf(&b, "Kelly Fraction: %.4f\n", s.Fraction)
		fmt.Fprintf(&b, "Reason: %s\n\n", s.Reason)
	}

	b.WriteString("=== RECOMMENDATION ===\n")
	fmt.Fprintf(&b, "%s: %s\n", a.Decision, describe(a.Decision))

	return b.String()
}

// RenderMarkdown produces the report as a markdown document
func RenderMarkdown(a *verdict.RunArtifact) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Signal Validation Report: %s\n\n", a.SignalName)
	fmt.Fprintf(&b, "Run `%s`, generated %s\n\n", a.ID, a.CreatedAt.Time().Format("2006-01-02 15:04"))

	r := a.Record
	b.WriteString("## Sample\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Sample Size | %d |\n", r.SampleSize)
	fmt.Fprintf(&b, "| Wins | %d |\n", r.Wins)
	fmt.Fprintf(&b, "| Win Rate | %.1f%% |\n\n", r.WinRate*100)

	b.WriteString("## Directional Accuracy\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| 95%% CI (Wilson) | [%.1f%%, %.1f%%] |\n", r.CILower*100, r.CIUpper*100)
	fmt.Fprintf(&b, "| P-value | %.4f |\n", r.PValue)
	fmt.Fprintf(&b, "| Positive Edge | %s |\n\n", yesNo(r.HasPositiveEdge()))

	b.WriteString("## Information Coefficient\n\n")
	if r.ICUndefined {
		b.WriteString("IC is undefined for this run (constant signal or outcomes).\n\n")
	} else {
		fmt.Fprintf(&b, "Spearman IC: **%.4f** over %d samples.\n\n", r.InformationCoefficient, r.SampleSize)
	}

	b.WriteString("## Conditional Performance\n\n")
	fmt.Fprintf(&b, "Win rate above strength threshold: **%.1f%%** (%d matched).\n\n",
		r.ConditionalWinRate*100, r.ConditionalSampleSize)

	if wf := a.WalkForward; wf != nil {
		b.WriteString("## Walk-Forward\n\n")
		fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
		fmt.Fprintf(&b, "| In-Sample Win Rate | %.1f%% (n=%d) |\n", wf.InSampleWinRate*100, wf.TrainSize)
		fmt.Fprintf(&b, "| Out-of-Sample Win Rate | %.1f%% (n=%d) |\n", wf.OutOfSampleWinRate*100, wf.TestSize)
		fmt.Fprintf(&b, "| Degradation | %.1f%% |\n", wf.DegradationRatio*100)
		fmt.Fprintf(&b, "| Overfit Risk | %s |\n\n", wf.Risk)
	}

	if s := a.Sizing; s != nil {
		b.WriteString("## Position Sizing\n\n")
		fmt.Fprintf(&b, "Kelly fraction **%.4f** (%s).\n\n", s.Fraction, s.Reason)
	}

	b.WriteString("## Recommendation\n\n")
	fmt.Fprintf(&b, "**%s**: %s\n", a.Decision, describe(a.Decision))

	return b.String()
}

// RenderHTML renders the markdown report as a standalone HTML fragment
func RenderHTML(a *verdict.RunArtifact) []byte {
	md := RenderMarkdown(a)
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}

func describe(rec verdict.Recommendation) string {
	switch rec {
	case verdict.RecommendationApproved:
		return "Signal meets production criteria and is approved for live trading."
	case verdict.RecommendationConditional:
		return "Signal meets development criteria; approve for paper trading and keep collecting data."
	case verdict.RecommendationNeedsData:
		return "Sample is too small for a reliable decision; continue collecting outcomes."
	case verdict.RecommendationRejected:
		return "No statistically detectable edge; do not deploy."
	default:
		return "Unknown recommendation."
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
