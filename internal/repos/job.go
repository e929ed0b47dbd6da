package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yardvine/yardvine-backend/internal/pkg/logger"
	"github.com/yardvine/yardvine-backend/internal/types"
)

type JobRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Job) ([]*types.Job, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Job, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Job, error)
	GetByProviderID(ctx context.Context, tx *gorm.DB, providerID uuid.UUID) ([]*types.Job, error)
	GetByClientID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*types.Job, error)
	GetByClientIDs(ctx context.Context, tx *gorm.DB, clientIDs []uuid.UUID) ([]*types.Job, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
	SoftDeleteByClientIDs(ctx context.Context, tx *gorm.DB, clientIDs []uuid.UUID) error
	FullDeleteByClientIDs(ctx context.Context, tx *gorm.DB, clientIDs []uuid.UUID) error
}

type jobRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJobRepo(db *gorm.DB, baseLog *logger.Logger) JobRepo {
	return &jobRepo{db: db, log: baseLog.With("repo", "JobRepo")}
}

func (r *jobRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Job) ([]*types.Job, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Job{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *jobRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Job, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Job
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *jobRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Job, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	rows, err := r.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *jobRepo) GetByProviderID(ctx context.Context, tx *gorm.DB, providerID uuid.UUID) ([]*types.Job, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Job
	if providerID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *jobRepo) GetByClientID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*types.Job, error) {
	if clientID == uuid.Nil {
		return nil, nil
	}
	return r.GetByClientIDs(ctx, tx, []uuid.UUID{clientID})
}

func (r *jobRepo) GetByClientIDs(ctx context.Context, tx *gorm.DB, clientIDs []uuid.UUID) ([]*types.Job, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Job
	if len(clientIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("client_id IN ?", clientIDs).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *jobRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Model(&types.Job{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *jobRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(ctx).Where("id IN ?", ids).Delete(&types.Job{}).Error
}

func (r *jobRepo) SoftDeleteByClientIDs(ctx context.Context, tx *gorm.DB, clientIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(clientIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).Where("client_id IN ?", clientIDs).Delete(&types.Job{}).Error
}

func (r *jobRepo) FullDeleteByClientIDs(ctx context.Context, tx *gorm.DB, clientIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(clientIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).Unscoped().Where("client_id IN ?", clientIDs).Delete(&types.Job{}).Error
}
