package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yardvine/yardvine-backend/internal/pkg/logger"
	"github.com/yardvine/yardvine-backend/internal/types"
)

type ProviderTokenRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ProviderToken) ([]*types.ProviderToken, error)
	GetByProviderIDs(ctx context.Context, tx *gorm.DB, providerIDs []uuid.UUID) ([]*types.ProviderToken, error)
	GetByAccessToken(ctx context.Context, tx *gorm.DB, accessToken string) (*types.ProviderToken, error)
	GetByRefreshToken(ctx context.Context, tx *gorm.DB, refreshToken string) (*types.ProviderToken, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
	FullDeleteByProviderIDs(ctx context.Context, tx *gorm.DB, providerIDs []uuid.UUID) error
}

type providerTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProviderTokenRepo(db *gorm.DB, baseLog *logger.Logger) ProviderTokenRepo {
	return &providerTokenRepo{db: db, log: baseLog.With("repo", "ProviderTokenRepo")}
}

func (r *providerTokenRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ProviderToken) ([]*types.ProviderToken, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.ProviderToken{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *providerTokenRepo) GetByProviderIDs(ctx context.Context, tx *gorm.DB, providerIDs []uuid.UUID) ([]*types.ProviderToken, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.ProviderToken
	if len(providerIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("provider_id IN ?", providerIDs).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *providerTokenRepo) GetByAccessToken(ctx context.Context, tx *gorm.DB, accessToken string) (*types.ProviderToken, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if accessToken == "" {
		return nil, nil
	}
	var out []*types.ProviderToken
	if err := t.WithContext(ctx).Where("access_token = ?", accessToken).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *providerTokenRepo) GetByRefreshToken(ctx context.Context, tx *gorm.DB, refreshToken string) (*types.ProviderToken, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if refreshToken == "" {
		return nil, nil
	}
	var out []*types.ProviderToken
	if err := t.WithContext(ctx).Where("refresh_token = ?", refreshToken).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *providerTokenRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Model(&types.ProviderToken{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *providerTokenRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(ctx).Unscoped().Where("id IN ?", ids).Delete(&types.ProviderToken{}).Error
}

func (r *providerTokenRepo) FullDeleteByProviderIDs(ctx context.Context, tx *gorm.DB, providerIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(providerIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).Unscoped().Where("provider_id IN ?", providerIDs).Delete(&types.ProviderToken{}).Error
}
