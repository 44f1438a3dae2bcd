// Package report renders a projection into a markdown summary and, via
// goldmark, into embeddable HTML.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/calgal7-del/1040-paydays/pkg/core/projection"
)

// Data is everything a report covers: the sanitized input that produced the
// result, the result itself, and optionally the three comparison variants.
type Data struct {
	Title       string
	Input       projection.ProjectionInput
	Result      projection.ProjectionResult
	Comparison  []projection.ProjectionResult
	GeneratedAt time.Time
}

// BuildMarkdown renders the report as markdown: a heading, the input recap,
// the outcome, and the rate comparison when one was run. Headings and lists
// only; the renderer downstream is plain goldmark.
func BuildMarkdown(d Data) string {
	title := d.Title
	if title == "" {
		title = "Savings Projection"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	if !d.GeneratedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Generated %s\n\n", d.GeneratedAt.Format("January 2, 2006")))
	}

	sb.WriteString("## Inputs\n\n")
	sb.WriteString(fmt.Sprintf("- Current age: %.0f\n", d.Input.CurrentAge))
	sb.WriteString(fmt.Sprintf("- Retirement age: %.0f\n", d.Input.RetirementAge))
	sb.WriteString(fmt.Sprintf("- Starting amount: %s\n", FormatMoney(d.Input.StartingAmount)))
	sb.WriteString(fmt.Sprintf("- Contribution: %s per %s payday\n",
		FormatMoney(d.Input.ContributionPerPayday), frequencyName(d.Input.PayPeriodsPerYear)))
	sb.WriteString(fmt.Sprintf("- Growth rate: %s annual\n", FormatPct(d.Input.AnnualRatePct)))
	if d.Input.WindfallPeriod > 0 && d.Input.WindfallAmount != 0 {
		sb.WriteString(fmt.Sprintf("- Windfall: %s at payday %d\n",
			FormatMoney(d.Input.WindfallAmount), d.Input.WindfallPeriod))
	}
	sb.WriteString("\n")

	sb.WriteString("## Outcome\n\n")
	sb.WriteString(fmt.Sprintf("- Years simulated: %g\n", d.Result.Years))
	sb.WriteString(fmt.Sprintf("- Pay periods: %d\n", d.Result.TotalPeriods))
	sb.WriteString(fmt.Sprintf("- Final balance: **%s**\n", FormatMoney(d.Result.FinalBalance)))
	sb.WriteString(fmt.Sprintf("- Total contributions: %s\n", FormatMoney(d.Result.FinalContrib)))
	sb.WriteString(fmt.Sprintf("- Interest earned: %s\n", FormatMoney(d.Result.FinalInterest)))

	if len(d.Comparison) > 0 {
		sb.WriteString("\n## Rate comparison\n\n")
		rates := projection.ComparisonRates(d.Input.AnnualRatePct)
		for i, r := range d.Comparison {
			label := "variant"
			if i < len(rates) {
				label = FormatPct(rates[i]) + " annual"
			}
			sb.WriteString(fmt.Sprintf("- %s: final balance %s, interest %s\n",
				label, FormatMoney(r.FinalBalance), FormatMoney(r.FinalInterest)))
		}
	}

	return sb.String()
}

// ToHTML converts report markdown into an HTML fragment.
func ToHTML(md string) (string, error) {
	var sb strings.Builder
	if err := goldmark.Convert([]byte(md), &sb); err != nil {
		return "", fmt.Errorf("MARKDOWN_RENDER_FAILED: %v", err)
	}
	return sb.String(), nil
}

// frequencyName reverses the periods-per-year count back to its UI label.
func frequencyName(ppy int) string {
	switch ppy {
	case 365:
		return "daily"
	case 52:
		return "weekly"
	case 26:
		return "biweekly"
	case 12:
		return "monthly"
	default:
		return fmt.Sprintf("%d/yr", ppy)
	}
}
