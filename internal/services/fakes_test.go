package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/brokermate/brokermate-backend/internal/types"
)

type fakeMonthlyRepo struct {
	mu sync.Mutex

	rows    map[time.Month][]types.MonthlyClient
	findErr map[time.Month]error

	insertErr   error
	insertCalls int
	inserted    []types.MonthlyClient

	updateAffected int64
	updateErr      error
	updateCalls    int
	updateColumns  map[string]any

	getRow   *types.MonthlyClient
	getErr   error
	getCalls int

	deleteByIDErr   error
	deleteByIDCalls int

	deleteByNameErr   map[time.Month]error
	deleteByNameCalls int
}

func (f *fakeMonthlyRepo) ListForPeriod(ctx context.Context, month time.Month, year int) ([]types.MonthlyClient, error) {
	return f.rows[month], nil
}

func (f *fakeMonthlyRepo) Insert(ctx context.Context, month time.Month, record *types.MonthlyClient) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertCalls++
	if f.insertErr != nil {
		return f.insertErr
	}
	if record.ID == "" {
		record.ID = fmt.Sprintf("assigned-%d", f.insertCalls)
	}
	f.inserted = append(f.inserted, *record)
	return nil
}

func (f *fakeMonthlyRepo) Update(ctx context.Context, month time.Month, year int, id string, columns map[string]any) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	f.updateColumns = columns
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	return f.updateAffected, nil
}

func (f *fakeMonthlyRepo) GetByID(ctx context.Context, month time.Month, year int, id string) (*types.MonthlyClient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getRow, nil
}

func (f *fakeMonthlyRepo) DeleteByID(ctx context.Context, month time.Month, year int, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteByIDCalls++
	return f.deleteByIDErr
}

func (f *fakeMonthlyRepo) FindByName(ctx context.Context, month time.Month, name string) ([]types.MonthlyClient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.findErr[month]; err != nil {
		return nil, err
	}
	var matched []types.MonthlyClient
	for _, r := range f.rows[month] {
		if r.Name == name {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func (f *fakeMonthlyRepo) DeleteByName(ctx context.Context, month time.Month, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteByNameCalls++
	return f.deleteByNameErr[month]
}

type fakeGlobalRepo struct {
	mu sync.Mutex

	listRows []types.GlobalClient
	listErr  error

	upsertErr   error
	upsertCalls int
	lastUpsert  *types.GlobalClient

	deleteErr   error
	deleteCalls int
	lastDelete  string
}

func (f *fakeGlobalRepo) ListAll(ctx context.Context) ([]types.GlobalClient, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listRows, nil
}

func (f *fakeGlobalRepo) Upsert(ctx context.Context, record *types.GlobalClient) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upsertCalls++
	f.lastUpsert = record
	return f.upsertErr
}

func (f *fakeGlobalRepo) DeleteByName(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	f.lastDelete = name
	return f.deleteErr
}

type fakeAggregateService struct {
	agg   *types.GlobalClient
	err   error
	calls int
	names []string
}

func (f *fakeAggregateService) AggregateForClient(ctx context.Context, name string) (*types.GlobalClient, error) {
	f.calls++
	f.names = append(f.names, name)
	if f.err != nil {
		return nil, f.err
	}
	return f.agg, nil
}

type fakeSyncService struct {
	writeErr    error
	writeCalls  int
	lastWrite   types.MonthlyClient
	deleteErr   error
	deleteCalls int
	lastDelete  string
}

func (f *fakeSyncService) SyncAfterWrite(ctx context.Context, record types.MonthlyClient) error {
	f.writeCalls++
	f.lastWrite = record
	return f.writeErr
}

func (f *fakeSyncService) SyncAfterDelete(ctx context.Context, name string) error {
	f.deleteCalls++
	f.lastDelete = name
	return f.deleteErr
}
