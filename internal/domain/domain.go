package domain

import (
	"github.com/florabyte/flowerbed-backend/internal/domain/garden"
)

type Plant = garden.Plant
type CareProfile = garden.CareProfile
type MaintenanceTask = garden.MaintenanceTask
type GrowthSample = garden.GrowthSample
type CareBackfill = garden.CareBackfill

type PlantColor = garden.PlantColor
type TaskKind = garden.TaskKind
type GrowthStage = garden.GrowthStage
type GrowthSource = garden.GrowthSource

const (
	ColorRed    = garden.ColorRed
	ColorYellow = garden.ColorYellow
	ColorPink   = garden.ColorPink
	ColorWhite  = garden.ColorWhite
	ColorPurple = garden.ColorPurple

	TaskWatering    = garden.TaskWatering
	TaskFertilizing = garden.TaskFertilizing
	TaskPruning     = garden.TaskPruning
	TaskSunlight    = garden.TaskSunlight
	TaskPestControl = garden.TaskPestControl

	StageSeed     = garden.StageSeed
	StageSeedling = garden.StageSeedling
	StageBudding  = garden.StageBudding
	StageWilting  = garden.StageWilting
	StageBlooming = garden.StageBlooming

	SourceManual    = garden.GrowthSourceManual
	SourceSimulated = garden.GrowthSourceSimulated

	BackfillPending   = garden.BackfillStatusPending
	BackfillResolved  = garden.BackfillStatusResolved
	BackfillAbandoned = garden.BackfillStatusAbandoned

	GridSize      = garden.GridSize
	MaxNameLength = garden.MaxNameLength
)

var RecurringKinds = garden.RecurringKinds

var (
	ValidColor       = garden.ValidColor
	ValidTaskKind    = garden.ValidTaskKind
	ValidGrowthStage = garden.ValidGrowthStage
)
