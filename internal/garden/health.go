package garden

import (
	"time"

	types "github.com/florabyte/flowerbed-backend/internal/domain"
)

type HealthStatus string

const (
	HealthGood HealthStatus = "Good"
	HealthPoor HealthStatus = "Poor"
)

// HealthReport classifies each care dimension. Pruning and pest tasks do not
// feed a dimension; they only appear in the task list.
type HealthReport struct {
	Water     HealthStatus `json:"water"`
	Fertilize HealthStatus `json:"fertilize"`
	Sunlight  HealthStatus `json:"sunlight"`
}

// EvaluateHealth marks a dimension Poor when a pending task of that kind is
// due now or earlier. An obligation stays Poor however long it goes unmet;
// the old due-today-only reading silently recovered after the due day passed.
func EvaluateHealth(tasks []*types.MaintenanceTask, now time.Time) HealthReport {
	report := HealthReport{
		Water:     HealthGood,
		Fertilize: HealthGood,
		Sunlight:  HealthGood,
	}
	for _, task := range tasks {
		if !Overdue(task, now) {
			continue
		}
		switch task.Kind {
		case types.TaskWatering:
			report.Water = HealthPoor
		case types.TaskFertilizing:
			report.Fertilize = HealthPoor
		case types.TaskSunlight:
			report.Sunlight = HealthPoor
		}
	}
	return report
}
