package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yardvine/yardvine-backend/internal/pkg/logger"
	"github.com/yardvine/yardvine-backend/internal/types"
)

type QuoteRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Quote) ([]*types.Quote, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Quote, error)
	GetByClientID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*types.Quote, error)
	GetByProviderID(ctx context.Context, tx *gorm.DB, providerID uuid.UUID) ([]*types.Quote, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
	SoftDeleteByClientIDs(ctx context.Context, tx *gorm.DB, clientIDs []uuid.UUID) error
}

type quoteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuoteRepo(db *gorm.DB, baseLog *logger.Logger) QuoteRepo {
	return &quoteRepo{db: db, log: baseLog.With("repo", "QuoteRepo")}
}

func (r *quoteRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Quote) ([]*types.Quote, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Quote{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *quoteRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Quote, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.Quote
	if err := t.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *quoteRepo) GetByClientID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*types.Quote, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Quote
	if clientID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *quoteRepo) GetByProviderID(ctx context.Context, tx *gorm.DB, providerID uuid.UUID) ([]*types.Quote, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Quote
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

func (r *quoteRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Model(&types.Quote{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *quoteRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(ctx).Where("id IN ?", ids).Delete(&types.Quote{}).Error
}

func (r *quoteRepo) SoftDeleteByClientIDs(ctx context.Context, tx *gorm.DB, clientIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(clientIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).Where("client_id IN ?", clientIDs).Delete(&types.Quote{}).Error
}
