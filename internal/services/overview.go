package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/florabyte/flowerbed-backend/internal/data/repos"
	types "github.com/florabyte/flowerbed-backend/internal/domain"
	"github.com/florabyte/flowerbed-backend/internal/pkg/dbctx"
	"github.com/florabyte/flowerbed-backend/internal/pkg/logger"
)

type GardenOverview struct {
	PlantCount      int64                  `json:"plantCount"`
	NextDueTask     *types.MaintenanceTask `json:"nextDueTask"`
	MostCommonStage types.GrowthStage      `json:"mostCommonStage"`
}

type OverviewService interface {
	Overview(ctx context.Context, ownerID uuid.UUID) (*GardenOverview, error)
}

type overviewService struct {
	db      *gorm.DB
	log     *logger.Logger
	plants  repos.PlantRepo
	tasks   repos.MaintenanceTaskRepo
	samples repos.GrowthSampleRepo
	now     func() time.Time
}

func NewOverviewService(
	db *gorm.DB,
	baseLog *logger.Logger,
	plants repos.PlantRepo,
	tasks repos.MaintenanceTaskRepo,
	samples repos.GrowthSampleRepo,
) OverviewService {
	return &overviewService{
		db:      db,
		log:     baseLog.With("service", "OverviewService"),
		plants:  plants,
		tasks:   tasks,
		samples: samples,
		now:     time.Now,
	}
}

func (s *overviewService) Overview(ctx context.Context, ownerID uuid.UUID) (*GardenOverview, error) {
	var (
		count   int64
		next    *types.MaintenanceTask
		samples []*types.GrowthSample
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		count, err = s.plants.CountByOwner(dbctx.Context{Ctx: gctx}, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		next, err = s.tasks.EarliestPendingByOwner(dbctx.Context{Ctx: gctx}, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		samples, err = s.samples.ListByOwner(dbctx.Context{Ctx: gctx}, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &GardenOverview{
		PlantCount:      count,
		NextDueTask:     next,
		MostCommonStage: mostCommonStage(samples),
	}, nil
}

// mostCommonStage tallies the latest stage label per plant, newest first so
// the first sample seen for a plant wins.
func mostCommonStage(samples []*types.GrowthSample) types.GrowthStage {
	latest := map[uuid.UUID]types.GrowthStage{}
	for _, sample := range samples {
		if _, seen := latest[sample.PlantID]; !seen {
			latest[sample.PlantID] = sample.Stage
		}
	}

	counts := map[types.GrowthStage]int{}
	for _, stage := range latest {
		counts[stage]++
	}

	var best types.GrowthStage
	bestCount := 0
	for stage, n := range counts {
		if n > bestCount || (n == bestCount && string(stage) < string(best)) {
			best = stage
			bestCount = n
		}
	}
	return best
}
