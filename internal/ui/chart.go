package ui

import (
	"fmt"
	"strings"

	"taskdeck/metrics"
)

// barWidth is the total character width of a full status bar.
const barWidth = 30

// RenderSummary renders the headline dashboard numbers.
func RenderSummary(s metrics.Summary) string {
	var sb strings.Builder

	sb.WriteString(StyleHeader.Render("Dashboard") + "\n\n")
	sb.WriteString(fmt.Sprintf(" %s %d\n", StyleTitle.Render("Total tasks:"), s.Total))
	sb.WriteString(fmt.Sprintf(" %s %d%%\n", StyleTitle.Render("Completed:"), s.CompletionRate))

	overdue := fmt.Sprintf("%d", s.OverdueCount)
	if s.OverdueCount > 0 {
		overdue = StyleError.Render(overdue)
	}
	sb.WriteString(fmt.Sprintf(" %s %s\n", StyleTitle.Render("Overdue:"), overdue))

	return sb.String()
}

// RenderStatusBars renders one proportional bar per chart segment. Bars are
// scaled to percentage of the total, so all bars together sum to a full width.
func RenderStatusBars(segments []metrics.Segment) string {
	var sb strings.Builder

	labelWidth := 0
	for _, seg := range segments {
		if len(seg.Name) > labelWidth {
			labelWidth = len(seg.Name)
		}
	}

	for _, seg := range segments {
		sb.WriteString(" " + renderSegmentBar(seg, labelWidth) + "\n")
	}

	return sb.String()
}

func renderSegmentBar(seg metrics.Segment, labelWidth int) string {
	filled := seg.Percentage * barWidth / 100
	if seg.Value > 0 && filled == 0 {
		filled = 1 // non-empty segments always show
	}
	bar := StatusStyle(seg.Status).Render(strings.Repeat("█", filled)) +
		StyleSubtle.Render(strings.Repeat("░", barWidth-filled))

	return fmt.Sprintf("%s %s %3d%% (%d)",
		padRight(seg.Name, labelWidth), bar, seg.Percentage, seg.Value)
}
