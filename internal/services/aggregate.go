package services

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/brokermate/brokermate-backend/internal/logger"
	"github.com/brokermate/brokermate-backend/internal/repos"
	"github.com/brokermate/brokermate-backend/internal/types"
)

// AggregateService reduces a client's rows across all twelve monthly
// partitions into one global record. Rows are joined on the client name;
// two distinct clients sharing a name will merge, and a renamed client
// orphans its old rows. That is the legacy join contract this table has
// always had.
type AggregateService interface {
	// AggregateForClient returns nil (no error) when the client has no rows
	// left in any partition, signalling the caller to delete rather than
	// upsert the global row.
	AggregateForClient(ctx context.Context, name string) (*types.GlobalClient, error)
}

type aggregateService struct {
	monthlyRepo repos.MonthlyClientRepo
	log         *logger.Logger
}

func NewAggregateService(monthlyRepo repos.MonthlyClientRepo, baseLog *logger.Logger) AggregateService {
	serviceLog := baseLog.With("service", "AggregateService")
	return &aggregateService{monthlyRepo: monthlyRepo, log: serviceLog}
}

func (as *aggregateService) AggregateForClient(ctx context.Context, name string) (*types.GlobalClient, error) {
	// Twelve independent partition reads, awaited jointly. A failed
	// partition contributes zero rows; it never aborts the aggregation.
	var partitions [12][]types.MonthlyClient
	g := new(errgroup.Group)
	for m := time.January; m <= time.December; m++ {
		month := m
		g.Go(func() error {
			rows, err := as.monthlyRepo.FindByName(ctx, month, name)
			if err != nil {
				as.log.Warn("Partition read failed during aggregation",
					"month", strings.ToLower(month.String()),
					"name", name,
					"error", err,
				)
				return nil
			}
			partitions[month-1] = rows
			return nil
		})
	}
	_ = g.Wait()

	var rows []types.MonthlyClient
	for _, p := range partitions {
		rows = append(rows, p...)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// Rows with a missing timestamp sort as epoch zero, i.e. oldest.
	latest := rows[0]
	for _, r := range rows[1:] {
		if r.CreatedAt.After(latest.CreatedAt) {
			latest = r
		}
	}

	agg := &types.GlobalClient{
		Name:          name,
		Location:      latest.Location,
		DeductionDate: latest.DeductionDate,
		IssueDate:     latest.IssueDate,
	}
	seenNumbers := map[string]bool{}
	seenProducts := map[string]bool{}
	for _, r := range rows {
		if r.PoliciesCount > 0 {
			agg.PoliciesCount += r.PoliciesCount
		}
		agg.PolicyPremium += ParsePremium(r.PolicyPremium)
		for _, n := range r.PolicyNumbers {
			if !seenNumbers[n] {
				seenNumbers[n] = true
				agg.PolicyNumbers = append(agg.PolicyNumbers, n)
			}
		}
		for _, p := range r.Products {
			if !seenProducts[p] {
				seenProducts[p] = true
				agg.Products = append(agg.Products, p)
			}
		}
	}
	return agg, nil
}

// ParsePremium turns a monthly display string ("R150.00", "R 1,234.56",
// "75,50") into a premium amount. The currency symbol, whitespace and
// thousands separators are stripped; a lone comma with no dot is read as a
// decimal separator. Unparsable or non-positive values contribute zero.
func ParsePremium(raw string) float64 {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "R")
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	// A lone comma trailed by exactly two digits is a decimal separator
	// ("75,50"); every other comma is a thousands separator.
	if i := strings.LastIndex(s, ","); i >= 0 &&
		!strings.Contains(s, ".") &&
		strings.Count(s, ",") == 1 &&
		len(s)-i-1 == 2 {
		s = s[:i] + "." + s[i+1:]
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return 0
	}
	return f
}
