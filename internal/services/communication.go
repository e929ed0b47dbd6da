package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yardvine/yardvine-backend/internal/pkg/logger"
	"github.com/yardvine/yardvine-backend/internal/repos"
	"github.com/yardvine/yardvine-backend/internal/types"
)

// CommunicationService maintains the append-only touchpoint log. Entries
// can be added and listed but never edited or removed individually.
type CommunicationService interface {
	LogCommunication(ctx context.Context, clientID uuid.UUID, commType, notes string) (*types.ClientCommunication, error)
	ListCommunicationsForClient(ctx context.Context, clientID uuid.UUID) ([]*types.ClientCommunication, error)
}

type communicationService struct {
	db         *gorm.DB
	log        *logger.Logger
	clientRepo repos.ClientRepo
	commRepo   repos.CommunicationRepo
}

func NewCommunicationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	clientRepo repos.ClientRepo,
	commRepo repos.CommunicationRepo,
) CommunicationService {
	return &communicationService{
		db:         db,
		log:        baseLog.With("service", "CommunicationService"),
		clientRepo: clientRepo,
		commRepo:   commRepo,
	}
}

func (cs *communicationService) LogCommunication(ctx context.Context, clientID uuid.UUID, commType, notes string) (*types.ClientCommunication, error) {
	providerID, err := providerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	parsed, err := types.ParseCommunicationType(commType)
	if err != nil {
		return nil, err
	}
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return nil, fmt.Errorf("communication notes are required")
	}

	entry := &types.ClientCommunication{
		ID:         uuid.New(),
		ProviderID: providerID,
		ClientID:   clientID,
		Type:       parsed,
		Notes:      notes,
	}

	err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client, err := cs.clientRepo.GetByIDForProvider(ctx, tx, clientID, providerID)
		if err != nil {
			return fmt.Errorf("fetch client: %w", err)
		}
		if client == nil {
			return fmt.Errorf("client not found")
		}
		if _, err := cs.commRepo.Create(ctx, tx, []*types.ClientCommunication{entry}); err != nil {
			return fmt.Errorf("create communication: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (cs *communicationService) ListCommunicationsForClient(ctx context.Context, clientID uuid.UUID) ([]*types.ClientCommunication, error) {
	providerID, err := providerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	client, err := cs.clientRepo.GetByIDForProvider(ctx, nil, clientID, providerID)
	if err != nil {
		return nil, fmt.Errorf("fetch client: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("client not found")
	}
	entries, err := cs.commRepo.GetByClientID(ctx, nil, clientID)
	if err != nil {
		return nil, fmt.Errorf("fetch communications: %w", err)
	}
	return entries, nil
}
