package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yardvine/yardvine-backend/internal/pkg/logger"
	"github.com/yardvine/yardvine-backend/internal/types"
)

type ProviderRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Provider) ([]*types.Provider, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Provider, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Provider, error)
	GetByEmails(ctx context.Context, tx *gorm.DB, emails []string) ([]*types.Provider, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
}

type providerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProviderRepo(db *gorm.DB, baseLog *logger.Logger) ProviderRepo {
	return &providerRepo{db: db, log: baseLog.With("repo", "ProviderRepo")}
}

func (r *providerRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Provider) ([]*types.Provider, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Provider{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *providerRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Provider, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Provider
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *providerRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Provider, error) {
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

func (r *providerRepo) GetByEmails(ctx context.Context, tx *gorm.DB, emails []string) ([]*types.Provider, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Provider
	if len(emails) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("email IN ?", emails).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *providerRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var count int64
	if err := t.WithContext(ctx).
		Model(&types.Provider{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *providerRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Model(&types.Provider{}).
		Where("id = ?", id).
		Updates(updates).Error
}
