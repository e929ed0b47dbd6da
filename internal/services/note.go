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

type NoteService interface {
	AddNote(ctx context.Context, clientID uuid.UUID, body string) (*types.ClientNote, error)
	UpdateNote(ctx context.Context, noteID uuid.UUID, body string) (*types.ClientNote, error)
	DeleteNote(ctx context.Context, noteID uuid.UUID) error
	ListNotesForClient(ctx context.Context, clientID uuid.UUID) ([]*types.ClientNote, error)
}

type noteService struct {
	db         *gorm.DB
	log        *logger.Logger
	clientRepo repos.ClientRepo
	noteRepo   repos.NoteRepo
}

func NewNoteService(
	db *gorm.DB,
	baseLog *logger.Logger,
	clientRepo repos.ClientRepo,
	noteRepo repos.NoteRepo,
) NoteService {
	return &noteService{
		db:         db,
		log:        baseLog.With("service", "NoteService"),
		clientRepo: clientRepo,
		noteRepo:   noteRepo,
	}
}

func (ns *noteService) AddNote(ctx context.Context, clientID uuid.UUID, body string) (*types.ClientNote, error) {
	providerID, err := providerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("note body is required")
	}

	note := &types.ClientNote{
		ID:         uuid.New(),
		ProviderID: providerID,
		ClientID:   clientID,
		Body:       body,
	}

	err = ns.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client, err := ns.clientRepo.GetByIDForProvider(ctx, tx, clientID, providerID)
		if err != nil {
			return fmt.Errorf("fetch client: %w", err)
		}
		if client == nil {
			return fmt.Errorf("client not found")
		}
		if _, err := ns.noteRepo.Create(ctx, tx, []*types.ClientNote{note}); err != nil {
			return fmt.Errorf("create note: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (ns *noteService) UpdateNote(ctx context.Context, noteID uuid.UUID, body string) (*types.ClientNote, error) {
	providerID, err := providerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("note body is required")
	}

	note, err := ns.noteRepo.GetByID(ctx, nil, noteID)
	if err != nil {
		return nil, fmt.Errorf("fetch note: %w", err)
	}
	if note == nil || note.ProviderID != providerID {
		return nil, fmt.Errorf("note not found")
	}
	if err := ns.noteRepo.UpdateFields(ctx, nil, note.ID, map[string]interface{}{"body": body}); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	note.Body = body
	return note, nil
}

func (ns *noteService) DeleteNote(ctx context.Context, noteID uuid.UUID) error {
	providerID, err := providerFromContext(ctx)
	if err != nil {
		return err
	}
	note, err := ns.noteRepo.GetByID(ctx, nil, noteID)
	if err != nil {
		return fmt.Errorf("fetch note: %w", err)
	}
	if note == nil || note.ProviderID != providerID {
		return fmt.Errorf("note not found")
	}
	if err := ns.noteRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{note.ID}); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

func (ns *noteService) ListNotesForClient(ctx context.Context, clientID uuid.UUID) ([]*types.ClientNote, error) {
	providerID, err := providerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	client, err := ns.clientRepo.GetByIDForProvider(ctx, nil, clientID, providerID)
	if err != nil {
		return nil, fmt.Errorf("fetch client: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("client not found")
	}
	notes, err := ns.noteRepo.GetByClientID(ctx, nil, clientID)
	if err != nil {
		return nil, fmt.Errorf("fetch notes: %w", err)
	}
	return notes, nil
}
