package repos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brokermate/brokermate-backend/internal/apierr"
	"github.com/brokermate/brokermate-backend/internal/logger"
	"github.com/brokermate/brokermate-backend/internal/types"
)

// MonthlyClientRepo is CRUD against one of the twelve month-partitioned
// client tables. Every operation resolves the partition from the month
// index; remote failures come back as data_access errors.
type MonthlyClientRepo interface {
	ListForPeriod(ctx context.Context, month time.Month, year int) ([]types.MonthlyClient, error)
	Insert(ctx context.Context, month time.Month, record *types.MonthlyClient) error
	Update(ctx context.Context, month time.Month, year int, id string, columns map[string]any) (int64, error)
	GetByID(ctx context.Context, month time.Month, year int, id string) (*types.MonthlyClient, error)
	DeleteByID(ctx context.Context, month time.Month, year int, id string) error
	FindByName(ctx context.Context, month time.Month, name string) ([]types.MonthlyClient, error)
	DeleteByName(ctx context.Context, month time.Month, name string) error
}

type monthlyClientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMonthlyClientRepo(db *gorm.DB, baseLog *logger.Logger) MonthlyClientRepo {
	repoLog := baseLog.With("repo", "MonthlyClientRepo")
	return &monthlyClientRepo{db: db, log: repoLog}
}

func (mr *monthlyClientRepo) table(month time.Month) (string, error) {
	name, ok := types.MonthTable(month)
	if !ok {
		return "", apierr.InvalidArgument(fmt.Sprintf("invalid month index: %d", month))
	}
	return name, nil
}

func (mr *monthlyClientRepo) ListForPeriod(ctx context.Context, month time.Month, year int) ([]types.MonthlyClient, error) {
	table, err := mr.table(month)
	if err != nil {
		return nil, err
	}
	var results []types.MonthlyClient
	if err := mr.db.WithContext(ctx).
		Table(table).
		Where("year = ?", year).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, apierr.DataAccess(err)
	}
	return results, nil
}

func (mr *monthlyClientRepo) Insert(ctx context.Context, month time.Month, record *types.MonthlyClient) error {
	table, err := mr.table(month)
	if err != nil {
		return err
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	if err := mr.db.WithContext(ctx).Table(table).Create(record).Error; err != nil {
		return apierr.DataAccess(err)
	}
	return nil
}

func (mr *monthlyClientRepo) Update(ctx context.Context, month time.Month, year int, id string, columns map[string]any) (int64, error) {
	table, err := mr.table(month)
	if err != nil {
		return 0, err
	}
	if len(columns) == 0 {
		return 0, apierr.InvalidArgument("no updatable fields supplied")
	}
	res := mr.db.WithContext(ctx).
		Table(table).
		Where("id = ? AND year = ?", id, year).
		Updates(columns)
	if res.Error != nil {
		return 0, apierr.DataAccess(res.Error)
	}
	return res.RowsAffected, nil
}

func (mr *monthlyClientRepo) GetByID(ctx context.Context, month time.Month, year int, id string) (*types.MonthlyClient, error) {
	table, err := mr.table(month)
	if err != nil {
		return nil, err
	}
	var results []types.MonthlyClient
	if err := mr.db.WithContext(ctx).
		Table(table).
		Where("id = ? AND year = ?", id, year).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, apierr.DataAccess(err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

func (mr *monthlyClientRepo) DeleteByID(ctx context.Context, month time.Month, year int, id string) error {
	table, err := mr.table(month)
	if err != nil {
		return err
	}
	if err := mr.db.WithContext(ctx).
		Table(table).
		Where("id = ? AND year = ?", id, year).
		Delete(&types.MonthlyClient{}).Error; err != nil {
		return apierr.DataAccess(err)
	}
	return nil
}

func (mr *monthlyClientRepo) FindByName(ctx context.Context, month time.Month, name string) ([]types.MonthlyClient, error) {
	table, err := mr.table(month)
	if err != nil {
		return nil, err
	}
	var results []types.MonthlyClient
	if err := mr.db.WithContext(ctx).
		Table(table).
		Where("name = ?", name).
		Find(&results).Error; err != nil {
		return nil, apierr.DataAccess(err)
	}
	return results, nil
}

func (mr *monthlyClientRepo) DeleteByName(ctx context.Context, month time.Month, name string) error {
	table, err := mr.table(month)
	if err != nil {
		return err
	}
	if err := mr.db.WithContext(ctx).
		Table(table).
		Where("name = ?", name).
		Delete(&types.MonthlyClient{}).Error; err != nil {
		return apierr.DataAccess(err)
	}
	return nil
}
