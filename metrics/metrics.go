// Package metrics computes dashboard statistics from a task snapshot. All
// functions are pure and safe on empty input; nothing here divides by zero.
package metrics

import (
	"math"
	"time"

	"taskdeck/models"
)

// Summary holds the aggregate numbers shown on the dashboard.
type Summary struct {
	Total          int                       `json:"total"`
	CompletionRate int                       `json:"completionRate"` // percent, rounded
	OverdueCount   int                       `json:"overdueCount"`
	ByStatus       map[models.TaskStatus]int `json:"byStatus"`
}

// Segment is one proportional slice of the status breakdown chart. Selecting
// a segment in the UI reports its Status back as a filter choice.
type Segment struct {
	Name       string            `json:"name"`
	Value      int               `json:"value"`
	Status     models.TaskStatus `json:"status"`
	Percentage int               `json:"percentage"`
}

// Compute aggregates the snapshot. The today argument anchors the overdue
// check; both sides are truncated to midnight so time of day never matters.
func Compute(tasks []models.Task, today time.Time) Summary {
	s := Summary{
		ByStatus: make(map[models.TaskStatus]int, len(models.AllStatuses)),
	}
	for _, status := range models.AllStatuses {
		s.ByStatus[status] = 0
	}

	todayMidnight := startOfDay(today)

	for _, task := range tasks {
		s.Total++
		s.ByStatus[task.Status]++

		if task.Status != models.StatusDone && task.DueDate != nil &&
			startOfDay(*task.DueDate).Before(todayMidnight) {
			s.OverdueCount++
		}
	}

	if s.Total > 0 {
		s.CompletionRate = roundedPercent(s.ByStatus[models.StatusDone], s.Total)
	}

	return s
}

// ChartSegments converts a summary into chart-ready records, one per status,
// in fixed display order: todo, in-progress, done.
func ChartSegments(s Summary) []Segment {
	segments := make([]Segment, 0, len(models.AllStatuses))
	for _, status := range models.AllStatuses {
		value := s.ByStatus[status]
		pct := 0
		if s.Total > 0 {
			pct = roundedPercent(value, s.Total)
		}
		segments = append(segments, Segment{
			Name:       StatusLabel(status),
			Value:      value,
			Status:     status,
			Percentage: pct,
		})
	}
	return segments
}

// StatusLabel returns the human-readable chart label for a status.
func StatusLabel(status models.TaskStatus) string {
	switch status {
	case models.StatusTodo:
		return "To Do"
	case models.StatusInProgress:
		return "In Progress"
	case models.StatusDone:
		return "Done"
	default:
		return string(status)
	}
}

func roundedPercent(part, total int) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
