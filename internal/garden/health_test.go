package garden

import (
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/florabyte/flowerbed-backend/internal/domain"
)

func pendingTask(kind types.TaskKind, due time.Time) *types.MaintenanceTask {
	return &types.MaintenanceTask{ID: uuid.New(), PlantID: uuid.New(), Kind: kind, DueAt: due}
}

func TestEvaluateHealthAllGoodWhenNothingDue(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	tasks := []*types.MaintenanceTask{
		pendingTask(types.TaskWatering, now.AddDate(0, 0, 2)),
		pendingTask(types.TaskFertilizing, now.AddDate(0, 0, 10)),
		pendingTask(types.TaskSunlight, now.AddDate(0, 0, 1)),
	}
	report := EvaluateHealth(tasks, now)
	if report.Water != HealthGood || report.Fertilize != HealthGood || report.Sunlight != HealthGood {
		t.Fatalf("expected all Good, got %+v", report)
	}
}

func TestEvaluateHealthPoorPerDimension(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	tasks := []*types.MaintenanceTask{
		pendingTask(types.TaskWatering, now),
		pendingTask(types.TaskFertilizing, now.AddDate(0, 0, 5)),
		pendingTask(types.TaskSunlight, now.Add(-2*time.Hour)),
	}
	report := EvaluateHealth(tasks, now)
	if report.Water != HealthPoor {
		t.Fatalf("water should be Poor, got %+v", report)
	}
	if report.Fertilize != HealthGood {
		t.Fatalf("fertilize should be Good, got %+v", report)
	}
	if report.Sunlight != HealthPoor {
		t.Fatalf("sunlight should be Poor, got %+v", report)
	}
}

func TestEvaluateHealthOverdueKeepsFlagging(t *testing.T) {
	// A task missed by a week is still Poor; the due-today-only reading would
	// have flipped back to Good once the due day passed.
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	tasks := []*types.MaintenanceTask{
		pendingTask(types.TaskWatering, now.AddDate(0, 0, -7)),
	}
	report := EvaluateHealth(tasks, now)
	if report.Water != HealthPoor {
		t.Fatalf("week-overdue watering should be Poor, got %+v", report)
	}
}

func TestEvaluateHealthIgnoresCompletedAndNonDimensionKinds(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	done := pendingTask(types.TaskWatering, now.AddDate(0, 0, -1))
	doneAt := now.Add(-time.Hour)
	done.CompletedAt = &doneAt

	tasks := []*types.MaintenanceTask{
		done,
		pendingTask(types.TaskPruning, now.AddDate(0, 0, -3)),
		pendingTask(types.TaskPestControl, now.AddDate(0, 0, -3)),
	}
	report := EvaluateHealth(tasks, now)
	if report.Water != HealthGood || report.Fertilize != HealthGood || report.Sunlight != HealthGood {
		t.Fatalf("expected all Good, got %+v", report)
	}
}
