package metrics

import (
	"testing"
	"time"

	"taskdeck/models"
)

var today = time.Date(2026, 1, 15, 14, 30, 0, 0, time.UTC)

func taskWith(status models.TaskStatus, due *time.Time) models.Task {
	return models.Task{
		ID:          "id",
		Title:       "t",
		Description: "d",
		Status:      status,
		Priority:    models.PriorityMedium,
		DueDate:     due,
		CreatedAt:   today.Add(-24 * time.Hour),
		UpdatedAt:   today.Add(-24 * time.Hour),
	}
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestCompute_EmptyCollection(t *testing.T) {
	s := Compute(nil, today)

	if s.Total != 0 || s.CompletionRate != 0 || s.OverdueCount != 0 {
		t.Errorf("empty compute = %+v, want all zero", s)
	}
	for _, status := range models.AllStatuses {
		if s.ByStatus[status] != 0 {
			t.Errorf("ByStatus[%s] = %d, want 0", status, s.ByStatus[status])
		}
	}
}

func TestCompute_CompletionRate(t *testing.T) {
	tests := []struct {
		name     string
		statuses []models.TaskStatus
		want     int
	}{
		{"all done", []models.TaskStatus{models.StatusDone, models.StatusDone}, 100},
		{"none done", []models.TaskStatus{models.StatusTodo, models.StatusInProgress}, 0},
		{"one of three", []models.TaskStatus{models.StatusDone, models.StatusTodo, models.StatusInProgress}, 33},
		{"two of three rounds up", []models.TaskStatus{models.StatusDone, models.StatusDone, models.StatusTodo}, 67},
		{"half", []models.TaskStatus{models.StatusDone, models.StatusTodo}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tasks []models.Task
			for _, status := range tt.statuses {
				tasks = append(tasks, taskWith(status, nil))
			}
			if got := Compute(tasks, today).CompletionRate; got != tt.want {
				t.Errorf("CompletionRate = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompute_OverdueCount(t *testing.T) {
	tasks := []models.Task{
		taskWith(models.StatusTodo, date(2026, 1, 10)),       // past due, counts
		taskWith(models.StatusInProgress, date(2026, 1, 14)), // past due, counts
		taskWith(models.StatusDone, date(2026, 1, 1)),        // done tasks are never overdue
		taskWith(models.StatusTodo, nil),                     // no due date
		taskWith(models.StatusTodo, date(2026, 1, 15)),       // due today is not overdue
		taskWith(models.StatusTodo, date(2026, 2, 1)),        // future
	}

	if got := Compute(tasks, today).OverdueCount; got != 2 {
		t.Errorf("OverdueCount = %d, want 2", got)
	}
}

func TestCompute_OverdueIgnoresTimeOfDay(t *testing.T) {
	// Due late on the 14th, "now" early on the 15th: a full-day comparison
	// must still flag it overdue.
	due := time.Date(2026, 1, 14, 23, 59, 0, 0, time.UTC)
	earlyToday := time.Date(2026, 1, 15, 0, 1, 0, 0, time.UTC)

	s := Compute([]models.Task{taskWith(models.StatusTodo, &due)}, earlyToday)
	if s.OverdueCount != 1 {
		t.Errorf("OverdueCount = %d, want 1", s.OverdueCount)
	}

	// Due early today while "now" is late today: same day, not overdue.
	dueToday := time.Date(2026, 1, 15, 0, 1, 0, 0, time.UTC)
	lateToday := time.Date(2026, 1, 15, 23, 59, 0, 0, time.UTC)

	s = Compute([]models.Task{taskWith(models.StatusTodo, &dueToday)}, lateToday)
	if s.OverdueCount != 0 {
		t.Errorf("OverdueCount = %d, want 0 for same-day due", s.OverdueCount)
	}
}

func TestCompute_StatusBreakdown(t *testing.T) {
	tasks := []models.Task{
		taskWith(models.StatusTodo, nil),
		taskWith(models.StatusTodo, nil),
		taskWith(models.StatusInProgress, nil),
		taskWith(models.StatusDone, nil),
	}

	s := Compute(tasks, today)
	if s.ByStatus[models.StatusTodo] != 2 || s.ByStatus[models.StatusInProgress] != 1 || s.ByStatus[models.StatusDone] != 1 {
		t.Errorf("ByStatus = %v", s.ByStatus)
	}
	if s.Total != 4 {
		t.Errorf("Total = %d, want 4", s.Total)
	}
}

func TestChartSegments(t *testing.T) {
	tasks := []models.Task{
		taskWith(models.StatusTodo, nil),
		taskWith(models.StatusTodo, nil),
		taskWith(models.StatusTodo, nil),
		taskWith(models.StatusDone, nil),
	}

	segments := ChartSegments(Compute(tasks, today))

	if len(segments) != 3 {
		t.Fatalf("got %d segments, want 3", len(segments))
	}

	// Fixed order: todo, in-progress, done.
	wantStatus := []models.TaskStatus{models.StatusTodo, models.StatusInProgress, models.StatusDone}
	for i, seg := range segments {
		if seg.Status != wantStatus[i] {
			t.Errorf("segment %d status = %s, want %s", i, seg.Status, wantStatus[i])
		}
	}

	if segments[0].Value != 3 || segments[0].Percentage != 75 {
		t.Errorf("todo segment = %+v, want value 3 pct 75", segments[0])
	}
	if segments[1].Value != 0 || segments[1].Percentage != 0 {
		t.Errorf("in-progress segment = %+v, want zeros", segments[1])
	}
	if segments[2].Value != 1 || segments[2].Percentage != 25 {
		t.Errorf("done segment = %+v, want value 1 pct 25", segments[2])
	}
	if segments[0].Name != "To Do" || segments[2].Name != "Done" {
		t.Errorf("segment labels = %q, %q", segments[0].Name, segments[2].Name)
	}
}

func TestChartSegments_EmptyTotalHasZeroPercentages(t *testing.T) {
	segments := ChartSegments(Compute(nil, today))
	for _, seg := range segments {
		if seg.Value != 0 || seg.Percentage != 0 {
			t.Errorf("segment %+v should be zero on empty input", seg)
		}
	}
}
