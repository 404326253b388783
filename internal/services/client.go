package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/brokermate/brokermate-backend/internal/apierr"
	"github.com/brokermate/brokermate-backend/internal/logger"
	"github.com/brokermate/brokermate-backend/internal/normalization"
	"github.com/brokermate/brokermate-backend/internal/repos"
	"github.com/brokermate/brokermate-backend/internal/types"
)

// ClientService is the caller-facing surface over the monthly partitions
// and the derived global table. Monthly writes are not transactional with
// the trailing global sync: a failed sync leaves the monthly write in place
// and surfaces the sync error.
type ClientService interface {
	FetchMonthlyClients(ctx context.Context, month time.Month, year int) ([]types.MonthlyClient, error)
	AddMonthlyClient(ctx context.Context, month time.Month, year int, payload map[string]any) (*types.MonthlyClient, error)
	UpdateMonthlyClient(ctx context.Context, month time.Month, year int, id string, updates map[string]any) (*types.MonthlyClient, error)
	DeleteMonthlyClient(ctx context.Context, month time.Month, year int, id string) (bool, error)
	FetchAllClients(ctx context.Context) ([]types.GlobalClient, error)
	DeleteClient(ctx context.Context, name string) (bool, error)
}

type clientService struct {
	monthlyRepo repos.MonthlyClientRepo
	globalRepo  repos.GlobalClientRepo
	syncService GlobalSyncService
	log         *logger.Logger
}

func NewClientService(
	monthlyRepo repos.MonthlyClientRepo,
	globalRepo repos.GlobalClientRepo,
	syncService GlobalSyncService,
	baseLog *logger.Logger,
) ClientService {
	serviceLog := baseLog.With("service", "ClientService")
	return &clientService{
		monthlyRepo: monthlyRepo,
		globalRepo:  globalRepo,
		syncService: syncService,
		log:         serviceLog,
	}
}

func (cs *clientService) FetchMonthlyClients(ctx context.Context, month time.Month, year int) ([]types.MonthlyClient, error) {
	return cs.monthlyRepo.ListForPeriod(ctx, month, year)
}

func (cs *clientService) AddMonthlyClient(ctx context.Context, month time.Month, year int, payload map[string]any) (*types.MonthlyClient, error) {
	record := normalization.NormalizeClientRecord(payload)
	record.Year = year
	if strings.HasPrefix(record.ID, types.TempIDPrefix) {
		record.ID = ""
	}
	if err := cs.monthlyRepo.Insert(ctx, month, &record); err != nil {
		return nil, err
	}
	if err := cs.syncService.SyncAfterWrite(ctx, record); err != nil {
		cs.log.Error("Global sync failed after insert, monthly row stands",
			"month", strings.ToLower(month.String()),
			"name", record.Name,
			"error", err,
		)
		return nil, err
	}
	return &record, nil
}

func (cs *clientService) UpdateMonthlyClient(ctx context.Context, month time.Month, year int, id string, updates map[string]any) (*types.MonthlyClient, error) {
	columns := normalization.UpdateColumns(updates)
	affected, err := cs.monthlyRepo.Update(ctx, month, year, id, columns)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, apierr.NotFound("client_not_found")
	}
	updated, err := cs.monthlyRepo.GetByID(ctx, month, year, id)
	if err != nil {
		return nil, err
	}
	// The sync keys on the name the caller supplied; an update payload
	// without a name leaves the global row untouched.
	if err := cs.syncService.SyncAfterWrite(ctx, normalization.NormalizeClientRecord(updates)); err != nil {
		cs.log.Error("Global sync failed after update, monthly row stands",
			"month", strings.ToLower(month.String()),
			"id", id,
			"error", err,
		)
		return nil, err
	}
	return updated, nil
}

func (cs *clientService) DeleteMonthlyClient(ctx context.Context, month time.Month, year int, id string) (bool, error) {
	// Pre-read to capture the name for post-delete global cleanup. A row
	// that is already gone skips the cleanup silently.
	existing, err := cs.monthlyRepo.GetByID(ctx, month, year, id)
	if err != nil {
		return false, err
	}
	if err := cs.monthlyRepo.DeleteByID(ctx, month, year, id); err != nil {
		return false, err
	}
	if existing == nil || existing.Name == "" {
		return true, nil
	}
	if err := cs.syncService.SyncAfterDelete(ctx, existing.Name); err != nil {
		cs.log.Error("Global sync failed after delete, monthly delete stands",
			"month", strings.ToLower(month.String()),
			"name", existing.Name,
			"error", err,
		)
		return false, err
	}
	return true, nil
}

func (cs *clientService) FetchAllClients(ctx context.Context) ([]types.GlobalClient, error) {
	return cs.globalRepo.ListAll(ctx)
}

// DeleteClient removes the client from every monthly partition and then
// from the global table. Partition deletes run as one concurrent batch;
// individual failures are collected, never swallowed.
func (cs *clientService) DeleteClient(ctx context.Context, name string) (bool, error) {
	if strings.TrimSpace(name) == "" {
		return false, apierr.InvalidArgument("client name is required")
	}
	var partitionErrs [12]error
	g := new(errgroup.Group)
	for m := time.January; m <= time.December; m++ {
		month := m
		g.Go(func() error {
			partitionErrs[month-1] = cs.monthlyRepo.DeleteByName(ctx, month, name)
			return nil
		})
	}
	_ = g.Wait()
	if err := errors.Join(partitionErrs[:]...); err != nil {
		return false, err
	}
	if err := cs.globalRepo.DeleteByName(ctx, name); err != nil {
		return false, err
	}
	return true, nil
}
