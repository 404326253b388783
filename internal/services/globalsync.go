package services

import (
	"context"

	"github.com/brokermate/brokermate-backend/internal/logger"
	"github.com/brokermate/brokermate-backend/internal/repos"
	"github.com/brokermate/brokermate-backend/internal/types"
)

// GlobalSyncService keeps the consolidated clients table consistent with
// the monthly partitions. The global table has no independent lifecycle:
// every monthly mutation re-runs the aggregation for the affected client
// and writes the result through here.
type GlobalSyncService interface {
	SyncAfterWrite(ctx context.Context, record types.MonthlyClient) error
	SyncAfterDelete(ctx context.Context, name string) error
}

type globalSyncService struct {
	aggregateService AggregateService
	globalRepo       repos.GlobalClientRepo
	log              *logger.Logger
}

func NewGlobalSyncService(
	aggregateService AggregateService,
	globalRepo repos.GlobalClientRepo,
	baseLog *logger.Logger,
) GlobalSyncService {
	serviceLog := baseLog.With("service", "GlobalSyncService")
	return &globalSyncService{
		aggregateService: aggregateService,
		globalRepo:       globalRepo,
		log:              serviceLog,
	}
}

// SyncAfterWrite re-aggregates the named client and upserts the global row.
// An empty aggregate returns without touching the global table; only the
// delete path removes rows.
func (gs *globalSyncService) SyncAfterWrite(ctx context.Context, record types.MonthlyClient) error {
	if record.Name == "" {
		return nil
	}
	agg, err := gs.aggregateService.AggregateForClient(ctx, record.Name)
	if err != nil {
		return err
	}
	if agg == nil {
		gs.log.Debug("No monthly rows found after write, leaving global row untouched", "name", record.Name)
		return nil
	}
	return gs.globalRepo.Upsert(ctx, agg)
}

// SyncAfterDelete re-aggregates the named client; when no monthly rows
// remain the global row is removed, otherwise it is refreshed in place.
func (gs *globalSyncService) SyncAfterDelete(ctx context.Context, name string) error {
	agg, err := gs.aggregateService.AggregateForClient(ctx, name)
	if err != nil {
		return err
	}
	if agg == nil {
		return gs.globalRepo.DeleteByName(ctx, name)
	}
	return gs.globalRepo.Upsert(ctx, agg)
}
