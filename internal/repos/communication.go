package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yardvine/yardvine-backend/internal/pkg/logger"
	"github.com/yardvine/yardvine-backend/internal/types"
)

// CommunicationRepo is intentionally narrow: the communications log is
// append-only, so there are no update methods. Deletes exist only for
// cascading client removal.
type CommunicationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ClientCommunication) ([]*types.ClientCommunication, error)
	GetByClientID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*types.ClientCommunication, error)
	FullDeleteByClientIDs(ctx context.Context, tx *gorm.DB, clientIDs []uuid.UUID) error
}

type communicationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCommunicationRepo(db *gorm.DB, baseLog *logger.Logger) CommunicationRepo {
	return &communicationRepo{db: db, log: baseLog.With("repo", "CommunicationRepo")}
}

func (r *communicationRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ClientCommunication) ([]*types.ClientCommunication, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.ClientCommunication{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *communicationRepo) GetByClientID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*types.ClientCommunication, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.ClientCommunication
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

func (r *communicationRepo) FullDeleteByClientIDs(ctx context.Context, tx *gorm.DB, clientIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(clientIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).Unscoped().Where("client_id IN ?", clientIDs).Delete(&types.ClientCommunication{}).Error
}
