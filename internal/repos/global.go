package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brokermate/brokermate-backend/internal/apierr"
	"github.com/brokermate/brokermate-backend/internal/logger"
	"github.com/brokermate/brokermate-backend/internal/types"
)

// GlobalClientRepo is CRUD against the consolidated clients table. Rows here
// are a derived projection; writes come only from the global synchronizer
// and the cascading delete path.
type GlobalClientRepo interface {
	ListAll(ctx context.Context) ([]types.GlobalClient, error)
	Upsert(ctx context.Context, record *types.GlobalClient) error
	DeleteByName(ctx context.Context, name string) error
}

type globalClientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGlobalClientRepo(db *gorm.DB, baseLog *logger.Logger) GlobalClientRepo {
	repoLog := baseLog.With("repo", "GlobalClientRepo")
	return &globalClientRepo{db: db, log: repoLog}
}

func (gr *globalClientRepo) ListAll(ctx context.Context) ([]types.GlobalClient, error) {
	var results []types.GlobalClient
	if err := gr.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, apierr.DataAccess(err)
	}
	return results, nil
}

// Upsert inserts or replaces the row keyed on name.
func (gr *globalClientRepo) Upsert(ctx context.Context, record *types.GlobalClient) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	if err := gr.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"location",
				"deduction_date",
				"issue_date",
				"policies_count",
				"policy_premium",
				"policy_numbers",
				"products",
				"updated_at",
			}),
		}).
		Create(record).Error; err != nil {
		return apierr.DataAccess(err)
	}
	return nil
}

func (gr *globalClientRepo) DeleteByName(ctx context.Context, name string) error {
	if err := gr.db.WithContext(ctx).
		Where("name = ?", name).
		Delete(&types.GlobalClient{}).Error; err != nil {
		return apierr.DataAccess(err)
	}
	return nil
}
