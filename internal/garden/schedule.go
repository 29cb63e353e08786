package garden

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	types "github.com/florabyte/flowerbed-backend/internal/domain"
)

// Cadence returns the recurrence interval for a kind, or false for kinds that
// do not recur (PEST_CONTROL and anything unknown).
func Cadence(p Profile, kind types.TaskKind) (int, bool) {
	switch kind {
	case types.TaskWatering:
		return p.WaterFrequencyDays, true
	case types.TaskFertilizing:
		return p.FertilizeFrequencyDays, true
	case types.TaskPruning:
		return p.PruneFrequencyDays, true
	case types.TaskSunlight:
		return p.SunlightFrequencyDays, true
	default:
		return 0, false
	}
}

// ValidateProfile enforces the degenerate-cadence guard: every recurring
// cadence must be at least one day, growth parameters positive.
func ValidateProfile(p Profile) error {
	for _, kind := range types.RecurringKinds {
		days, ok := Cadence(p, kind)
		if !ok {
			continue
		}
		if days < 1 {
			return fmt.Errorf("%s cadence must be at least 1 day, got %d", kind, days)
		}
	}
	if p.MaxHeightCm <= 0 {
		return fmt.Errorf("max height must be positive, got %v", p.MaxHeightCm)
	}
	if p.GrowthRatePercentPerWeek <= 0 {
		return fmt.Errorf("growth rate must be positive, got %v", p.GrowthRatePercentPerWeek)
	}
	return nil
}

// TaskNotes renders the task note template for a kind.
func TaskNotes(kind types.TaskKind, plantName string) string {
	switch kind {
	case types.TaskWatering:
		return fmt.Sprintf("Water %s", plantName)
	case types.TaskFertilizing:
		return fmt.Sprintf("Fertilize %s", plantName)
	case types.TaskPruning:
		return fmt.Sprintf("Prune %s", plantName)
	case types.TaskSunlight:
		return fmt.Sprintf("Give %s sunlight", plantName)
	case types.TaskPestControl:
		return fmt.Sprintf("Check %s for pests", plantName)
	default:
		return ""
	}
}

// SeedTasks builds one pending task per recurring kind, each due one full
// cadence after now.
func SeedTasks(plantID uuid.UUID, plantName string, p Profile, now time.Time) []*types.MaintenanceTask {
	out := make([]*types.MaintenanceTask, 0, len(types.RecurringKinds))
	for _, kind := range types.RecurringKinds {
		days, ok := Cadence(p, kind)
		if !ok {
			continue
		}
		out = append(out, &types.MaintenanceTask{
			ID:        uuid.New(),
			PlantID:   plantID,
			Kind:      kind,
			DueAt:     NextDue(now, days),
			Notes:     TaskNotes(kind, plantName),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return out
}

// NextDue computes the follow-on due date after a completion.
func NextDue(completedAt time.Time, cadenceDays int) time.Time {
	return completedAt.AddDate(0, 0, cadenceDays)
}

// DueToday reports whether a pending task's due date falls inside the calendar
// day of now in the given location. The location is the client's, passed in
// explicitly; the server never assumes its own zone for day boundaries.
func DueToday(task *types.MaintenanceTask, now time.Time, loc *time.Location) bool {
	if task == nil || !task.Pending() {
		return false
	}
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	due := task.DueAt.In(loc)
	return !due.Before(midnight) && due.Before(midnight.AddDate(0, 0, 1))
}

// Overdue reports whether a pending task's due date has passed. Unlike
// DueToday this keeps flagging once the due day itself is over, so a task
// missed by a week still reads as unmet.
func Overdue(task *types.MaintenanceTask, now time.Time) bool {
	if task == nil || !task.Pending() {
		return false
	}
	return !task.DueAt.After(now)
}
