package services

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/brokermate/brokermate-backend/internal/logger"
	"github.com/brokermate/brokermate-backend/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func TestAggregateForClientSumsAcrossPartitions(t *testing.T) {
	jan := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	repo := &fakeMonthlyRepo{
		rows: map[time.Month][]types.MonthlyClient{
			time.January: {{
				Name:          "Jane Doe",
				Location:      "Pretoria",
				PoliciesCount: 2,
				PolicyPremium: "R150.00",
				PolicyNumbers: datatypes.JSONSlice[string]{"PN-1", "PN-2"},
				Products:      datatypes.JSONSlice[string]{"Value Funeral Plan"},
				CreatedAt:     jan,
			}},
			time.March: {{
				Name:          "Jane Doe",
				Location:      "Durban",
				PoliciesCount: 1,
				PolicyPremium: "R75,50",
				PolicyNumbers: datatypes.JSONSlice[string]{"PN-2", "PN-3"},
				Products:      datatypes.JSONSlice[string]{"Immediate Life Cover", "Value Funeral Plan"},
				CreatedAt:     mar,
			}},
		},
	}
	svc := NewAggregateService(repo, testLogger(t))

	agg, err := svc.AggregateForClient(context.Background(), "Jane Doe")
	if err != nil {
		t.Fatalf("AggregateForClient: %v", err)
	}
	if agg == nil {
		t.Fatal("aggregate is nil, want a record")
	}
	if agg.PoliciesCount != 3 {
		t.Fatalf("policies count: want=3 got=%d", agg.PoliciesCount)
	}
	if agg.PolicyPremium != 225.50 {
		t.Fatalf("policy premium: want=225.50 got=%v", agg.PolicyPremium)
	}
	if agg.Location != "Durban" {
		t.Fatalf("location should come from the latest row: want=Durban got=%q", agg.Location)
	}
	wantNumbers := []string{"PN-1", "PN-2", "PN-3"}
	if !reflect.DeepEqual([]string(agg.PolicyNumbers), wantNumbers) {
		t.Fatalf("policy numbers: want=%v got=%v", wantNumbers, agg.PolicyNumbers)
	}
	wantProducts := []string{"Value Funeral Plan", "Immediate Life Cover"}
	if !reflect.DeepEqual([]string(agg.Products), wantProducts) {
		t.Fatalf("products: want=%v got=%v", wantProducts, agg.Products)
	}
}

func TestAggregateForClientIsIdempotent(t *testing.T) {
	repo := &fakeMonthlyRepo{
		rows: map[time.Month][]types.MonthlyClient{
			time.June: {{
				Name:          "Sipho Dlamini",
				Location:      "Soweto",
				PoliciesCount: 4,
				PolicyPremium: "R1,200.00",
				PolicyNumbers: datatypes.JSONSlice[string]{"PN-9"},
				CreatedAt:     time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
			}},
		},
	}
	svc := NewAggregateService(repo, testLogger(t))

	first, err := svc.AggregateForClient(context.Background(), "Sipho Dlamini")
	if err != nil {
		t.Fatalf("first aggregation: %v", err)
	}
	second, err := svc.AggregateForClient(context.Background(), "Sipho Dlamini")
	if err != nil {
		t.Fatalf("second aggregation: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("aggregation not idempotent: first=%+v second=%+v", first, second)
	}
}

func TestAggregateForClientNoRowsReturnsNil(t *testing.T) {
	repo := &fakeMonthlyRepo{rows: map[time.Month][]types.MonthlyClient{}}
	svc := NewAggregateService(repo, testLogger(t))

	agg, err := svc.AggregateForClient(context.Background(), "Nobody")
	if err != nil {
		t.Fatalf("AggregateForClient: %v", err)
	}
	if agg != nil {
		t.Fatalf("aggregate for unknown client: want=nil got=%+v", agg)
	}
}

func TestAggregateForClientPartitionFailureContributesZeroRows(t *testing.T) {
	repo := &fakeMonthlyRepo{
		rows: map[time.Month][]types.MonthlyClient{
			time.January: {{
				Name:          "Jane Doe",
				PoliciesCount: 2,
				PolicyPremium: "R10.00",
				CreatedAt:     time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			}},
		},
		findErr: map[time.Month]error{
			time.February: errors.New("connection reset"),
		},
	}
	svc := NewAggregateService(repo, testLogger(t))

	agg, err := svc.AggregateForClient(context.Background(), "Jane Doe")
	if err != nil {
		t.Fatalf("partition failure must not abort aggregation: %v", err)
	}
	if agg == nil || agg.PoliciesCount != 2 {
		t.Fatalf("aggregate should reflect surviving partitions: got=%+v", agg)
	}
}

func TestAggregateForClientMissingTimestampSortsOldest(t *testing.T) {
	repo := &fakeMonthlyRepo{
		rows: map[time.Month][]types.MonthlyClient{
			time.April: {{
				Name:     "Jane Doe",
				Location: "Undated",
			}},
			time.May: {{
				Name:      "Jane Doe",
				Location:  "Dated",
				CreatedAt: time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC),
			}},
		},
	}
	svc := NewAggregateService(repo, testLogger(t))

	agg, err := svc.AggregateForClient(context.Background(), "Jane Doe")
	if err != nil {
		t.Fatalf("AggregateForClient: %v", err)
	}
	if agg.Location != "Dated" {
		t.Fatalf("row with zero timestamp must lose the latest race: got=%q", agg.Location)
	}
}

func TestParsePremium(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"R150.00", 150},
		{"R75,50", 75.5},
		{"R 1,234.56", 1234.56},
		{"1,234", 1234},
		{"1,234,567", 1234567},
		{"  R 80 ", 80},
		{"80", 80},
		{"", 0},
		{"N/A", 0},
		{"-50", 0},
		{"R0.00", 0},
	}
	for _, tc := range cases {
		if got := ParsePremium(tc.in); got != tc.want {
			t.Fatalf("ParsePremium(%q): want=%v got=%v", tc.in, tc.want, got)
		}
	}
}
