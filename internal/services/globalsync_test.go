package services

import (
	"context"
	"testing"

	"github.com/brokermate/brokermate-backend/internal/types"
)

func TestSyncAfterWriteEmptyNameIsNoOp(t *testing.T) {
	agg := &fakeAggregateService{}
	global := &fakeGlobalRepo{}
	svc := NewGlobalSyncService(agg, global, testLogger(t))

	if err := svc.SyncAfterWrite(context.Background(), types.MonthlyClient{}); err != nil {
		t.Fatalf("SyncAfterWrite: %v", err)
	}
	if agg.calls != 0 {
		t.Fatalf("aggregation calls for empty name: want=0 got=%d", agg.calls)
	}
	if global.upsertCalls != 0 || global.deleteCalls != 0 {
		t.Fatalf("global writes for empty name: upserts=%d deletes=%d", global.upsertCalls, global.deleteCalls)
	}
}

func TestSyncAfterWriteUpsertsAggregate(t *testing.T) {
	agg := &fakeAggregateService{agg: &types.GlobalClient{Name: "Jane Doe", PoliciesCount: 3}}
	global := &fakeGlobalRepo{}
	svc := NewGlobalSyncService(agg, global, testLogger(t))

	if err := svc.SyncAfterWrite(context.Background(), types.MonthlyClient{Name: "Jane Doe"}); err != nil {
		t.Fatalf("SyncAfterWrite: %v", err)
	}
	if global.upsertCalls != 1 {
		t.Fatalf("upsert calls: want=1 got=%d", global.upsertCalls)
	}
	if global.lastUpsert == nil || global.lastUpsert.Name != "Jane Doe" {
		t.Fatalf("upserted record: got=%+v", global.lastUpsert)
	}
}

// The write path never deletes: an empty aggregate after a write leaves any
// existing global row in place. Only the delete path removes rows.
func TestSyncAfterWriteEmptyAggregateLeavesGlobalRow(t *testing.T) {
	agg := &fakeAggregateService{agg: nil}
	global := &fakeGlobalRepo{}
	svc := NewGlobalSyncService(agg, global, testLogger(t))

	if err := svc.SyncAfterWrite(context.Background(), types.MonthlyClient{Name: "Jane Doe"}); err != nil {
		t.Fatalf("SyncAfterWrite: %v", err)
	}
	if global.deleteCalls != 0 {
		t.Fatalf("write path must not delete global rows: deletes=%d", global.deleteCalls)
	}
	if global.upsertCalls != 0 {
		t.Fatalf("upsert calls for empty aggregate: want=0 got=%d", global.upsertCalls)
	}
}

func TestSyncAfterDeleteRemovesRowWhenNoneRemain(t *testing.T) {
	agg := &fakeAggregateService{agg: nil}
	global := &fakeGlobalRepo{}
	svc := NewGlobalSyncService(agg, global, testLogger(t))

	if err := svc.SyncAfterDelete(context.Background(), "Jane Doe"); err != nil {
		t.Fatalf("SyncAfterDelete: %v", err)
	}
	if global.deleteCalls != 1 || global.lastDelete != "Jane Doe" {
		t.Fatalf("global delete: calls=%d name=%q", global.deleteCalls, global.lastDelete)
	}
	if global.upsertCalls != 0 {
		t.Fatalf("upsert calls: want=0 got=%d", global.upsertCalls)
	}
}

func TestSyncAfterDeleteRefreshesRowWhenRowsRemain(t *testing.T) {
	agg := &fakeAggregateService{agg: &types.GlobalClient{Name: "Jane Doe", PoliciesCount: 1}}
	global := &fakeGlobalRepo{}
	svc := NewGlobalSyncService(agg, global, testLogger(t))

	if err := svc.SyncAfterDelete(context.Background(), "Jane Doe"); err != nil {
		t.Fatalf("SyncAfterDelete: %v", err)
	}
	if global.deleteCalls != 0 {
		t.Fatalf("delete calls: want=0 got=%d", global.deleteCalls)
	}
	if global.upsertCalls != 1 || global.lastUpsert.PoliciesCount != 1 {
		t.Fatalf("refreshed aggregate: calls=%d record=%+v", global.upsertCalls, global.lastUpsert)
	}
}
