package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"taskdeck/metrics"
	"taskdeck/models"
)

func TestRenderSummary(t *testing.T) {
	s := metrics.Summary{
		Total:          8,
		CompletionRate: 25,
		OverdueCount:   2,
	}

	output := RenderSummary(s)

	assert.Contains(t, output, "Total tasks:")
	assert.Contains(t, output, "8")
	assert.Contains(t, output, "25%")
	assert.Contains(t, output, "2")
}

func TestRenderStatusBars(t *testing.T) {
	segments := []metrics.Segment{
		{Name: "To Do", Value: 3, Status: models.StatusTodo, Percentage: 75},
		{Name: "In Progress", Value: 0, Status: models.StatusInProgress, Percentage: 0},
		{Name: "Done", Value: 1, Status: models.StatusDone, Percentage: 25},
	}

	output := RenderStatusBars(segments)
	lines := strings.Split(strings.TrimSpace(output), "\n")

	assert.Equal(t, 3, len(lines))
	assert.Contains(t, lines[0], "To Do")
	assert.Contains(t, lines[0], "75%")
	assert.Contains(t, lines[0], "(3)")
	assert.Contains(t, lines[1], "0%")
	assert.Contains(t, lines[2], "25%")

	// 75% of a 30-wide bar is 22 filled cells (integer division).
	assert.Equal(t, 22, strings.Count(lines[0], "█"))
	assert.Equal(t, 0, strings.Count(lines[1], "█"))
	assert.Equal(t, 30, strings.Count(lines[1], "░"))
}

func TestRenderStatusBars_TinySegmentStillVisible(t *testing.T) {
	segments := []metrics.Segment{
		{Name: "Done", Value: 1, Status: models.StatusDone, Percentage: 1},
	}

	output := RenderStatusBars(segments)

	// 1% rounds down to zero cells, but a non-empty segment keeps one.
	assert.Equal(t, 1, strings.Count(output, "█"))
}

func TestRenderStatusBars_Empty(t *testing.T) {
	assert.Empty(t, RenderStatusBars(nil))
}

func TestStyles(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI256)

	out := StyleSuccess.Render("Test")
	assert.Contains(t, out, "Test")
	assert.NotEqual(t, "Test", out, "Style should add ANSI codes when forced")
}

func TestStatusStyle(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI256)

	for _, status := range models.AllStatuses {
		out := StatusStyle(status).Render(string(status))
		assert.Contains(t, out, string(status))
	}
}
