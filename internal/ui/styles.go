package ui

import (
	"github.com/charmbracelet/lipgloss"

	"taskdeck/models"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorCyan      = lipgloss.Color("87")  // Cyan for in-progress

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	// Dashboard panel border
	StylePanel = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1)
)

// statusStyles maps each task status to its display color.
var statusStyles = map[models.TaskStatus]lipgloss.Style{
	models.StatusTodo:       lipgloss.NewStyle().Foreground(ColorWarning),
	models.StatusInProgress: lipgloss.NewStyle().Foreground(ColorCyan),
	models.StatusDone:       lipgloss.NewStyle().Foreground(ColorSuccess),
}

// StatusStyle returns the style for a task status.
func StatusStyle(status models.TaskStatus) lipgloss.Style {
	if style, ok := statusStyles[status]; ok {
		return style
	}
	return StyleSubtle
}

// PriorityStyle returns the style for a task priority.
func PriorityStyle(priority models.TaskPriority) lipgloss.Style {
	switch priority {
	case models.PriorityHigh:
		return StyleError
	case models.PriorityMedium:
		return StyleWarning
	default:
		return StyleSubtle
	}
}
