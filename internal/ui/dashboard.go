package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/metrics"
	"taskdeck/models"
	"taskdeck/query"
)

// DashboardSelection is what the interactive dashboard reports back: the
// status segment the user chose (or all) and any search they typed.
type DashboardSelection struct {
	Status query.StatusFilter
	Search string
}

// RunDashboard runs the interactive dashboard over a task snapshot and
// returns the user's final filter selection.
func RunDashboard(tasks []models.Task, today time.Time) (DashboardSelection, error) {
	m := newDashboardModel(tasks, today)

	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return DashboardSelection{}, fmt.Errorf("error running dashboard: %w", err)
	}

	result := finalModel.(dashboardModel)
	return DashboardSelection{
		Status: result.selected,
		Search: result.search.Value(),
	}, nil
}

type dashboardModel struct {
	tasks    []models.Task
	summary  metrics.Summary
	segments []metrics.Segment

	cursor    int
	selected  query.StatusFilter
	search    textinput.Model
	searching bool
}

func newDashboardModel(tasks []models.Task, today time.Time) dashboardModel {
	summary := metrics.Compute(tasks, today)

	search := textinput.New()
	search.Placeholder = "search title or description"
	search.CharLimit = 80
	search.Width = 40

	return dashboardModel{
		tasks:    tasks,
		summary:  summary,
		segments: metrics.ChartSegments(summary),
		selected: query.StatusAll,
		search:   search,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return nil
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			switch msg.String() {
			case "enter", "esc":
				m.searching = false
				m.search.Blur()
				return m, nil
			case "ctrl+c":
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.segments)-1 {
				m.cursor++
			}
		case "enter", " ":
			// Selecting a segment applies its status as the list filter;
			// selecting it again goes back to all.
			segStatus := query.StatusFilter(m.segments[m.cursor].Status)
			if m.selected == segStatus {
				m.selected = query.StatusAll
			} else {
				m.selected = segStatus
			}
		case "a":
			m.selected = query.StatusAll
		case "/":
			m.searching = true
			m.search.Focus()
			return m, textinput.Blink
		}
	}
	return m, nil
}

func (m dashboardModel) filteredTasks() []models.Task {
	params := query.DefaultParams()
	params.Status = m.selected
	params.Search = m.search.Value()
	return query.Apply(m.tasks, params)
}

func (m dashboardModel) View() string {
	s := "\n" + RenderSummary(m.summary) + "\n"

	labelWidth := 0
	for _, seg := range m.segments {
		if len(seg.Name) > labelWidth {
			labelWidth = len(seg.Name)
		}
	}

	for i, seg := range m.segments {
		cursor := "  "
		if m.cursor == i {
			cursor = StylePrimary.Render("▶ ")
		}
		marker := "  "
		if m.selected == query.StatusFilter(seg.Status) {
			marker = StyleSuccess.Render("● ")
		}
		s += cursor + marker + renderSegmentBar(seg, labelWidth) + "\n"
	}

	s += "\n " + StyleTitle.Render("Search:") + " " + m.search.View() + "\n\n"

	view := m.filteredTasks()
	if len(view) == 0 {
		s += " " + StyleSubtle.Render("no matching tasks") + "\n"
	} else {
		s += RenderTaskTable(view)
	}

	s += "\n" + StyleSubtle.Render("↑/↓ navigate • enter filter by status • a all • / search • q quit") + "\n"
	return s
}
