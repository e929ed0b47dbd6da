package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	redisclient "github.com/yardvine/yardvine-backend/internal/clients/redis"
	"github.com/yardvine/yardvine-backend/internal/pkg/ctxutil"
	"github.com/yardvine/yardvine-backend/internal/pkg/logger"
	"github.com/yardvine/yardvine-backend/internal/repos"
	"github.com/yardvine/yardvine-backend/internal/types"
)

// ClientInput carries the mutable client fields accepted from the API.
type ClientInput struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	Address       string   `json:"address"`
	Status        string   `json:"status"`
	Tags          []string `json:"tags"`
	Rating        *int     `json:"rating"`
	PaymentIssues *bool    `json:"payment_issues"`
}

type ClientService interface {
	CreateClient(ctx context.Context, input ClientInput) (*types.Client, error)
	GetClient(ctx context.Context, clientID uuid.UUID) (*types.Client, error)
	UpdateClient(ctx context.Context, clientID uuid.UUID, input ClientInput) (*types.Client, error)
	DeleteClient(ctx context.Context, clientID uuid.UUID) error
	AddTag(ctx context.Context, clientID uuid.UUID, tag string) (*types.Client, error)
	RemoveTag(ctx context.Context, clientID uuid.UUID, tag string) (*types.Client, error)
	SetRating(ctx context.Context, clientID uuid.UUID, rating int) (*types.Client, error)
}

type clientService struct {
	db            *gorm.DB
	log           *logger.Logger
	clientRepo    repos.ClientRepo
	jobRepo       repos.JobRepo
	quoteRepo     repos.QuoteRepo
	noteRepo      repos.NoteRepo
	commRepo      repos.CommunicationRepo
	avatarService AvatarService
	summaryCache  redisclient.SummaryCache
}

func NewClientService(
	db *gorm.DB,
	baseLog *logger.Logger,
	clientRepo repos.ClientRepo,
	jobRepo repos.JobRepo,
	quoteRepo repos.QuoteRepo,
	noteRepo repos.NoteRepo,
	commRepo repos.CommunicationRepo,
	avatarService AvatarService,
	summaryCache redisclient.SummaryCache,
) ClientService {
	return &clientService{
		db:            db,
		log:           baseLog.With("service", "ClientService"),
		clientRepo:    clientRepo,
		jobRepo:       jobRepo,
		quoteRepo:     quoteRepo,
		noteRepo:      noteRepo,
		commRepo:      commRepo,
		avatarService: avatarService,
		summaryCache:  summaryCache,
	}
}

func providerFromContext(ctx context.Context) (uuid.UUID, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.ProviderID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("no authenticated provider in context")
	}
	return rd.ProviderID, nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func (cs *clientService) invalidateSummary(ctx context.Context, providerID uuid.UUID) {
	if cs.summaryCache == nil {
		return
	}
	if err := cs.summaryCache.Invalidate(ctx, providerID); err != nil {
		cs.log.Warn("invalidate summary cache", "error", err)
	}
}

func (cs *clientService) CreateClient(ctx context.Context, input ClientInput) (*types.Client, error) {
	providerID, err := providerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("client name is required")
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	client := &types.Client{
		ID:         uuid.New(),
		ProviderID: providerID,
		Name:       name,
		Email:      strings.TrimSpace(input.Email),
		Phone:      strings.TrimSpace(input.Phone),
		Address:    strings.TrimSpace(input.Address),
		Status:     strings.TrimSpace(input.Status),
		Rating:     input.Rating,
	}
	if input.PaymentIssues != nil {
		client.PaymentIssues = *input.PaymentIssues
	}
	if err := client.SetTagList(normalizeTags(input.Tags)); err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := cs.clientRepo.Create(ctx, tx, []*types.Client{client}); err != nil {
			return fmt.Errorf("create client: %w", err)
		}
		if cs.avatarService != nil {
			if err := cs.avatarService.RefreshClientAvatar(ctx, tx, client); err != nil {
				return fmt.Errorf("generate client avatar: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cs.invalidateSummary(ctx, providerID)
	return client, nil
}

func (cs *clientService) GetClient(ctx context.Context, clientID uuid.UUID) (*types.Client, error) {
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
	return client, nil
}

func (cs *clientService) UpdateClient(ctx context.Context, clientID uuid.UUID, input ClientInput) (*types.Client, error) {
	providerID, err := providerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("client name is required")
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	var updated *types.Client
	err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client, err := cs.clientRepo.GetByIDForProvider(ctx, tx, clientID, providerID)
		if err != nil {
			return fmt.Errorf("fetch client: %w", err)
		}
		if client == nil {
			return fmt.Errorf("client not found")
		}
		nameChanged := client.Name != name

		client.Name = name
		client.Email = strings.TrimSpace(input.Email)
		client.Phone = strings.TrimSpace(input.Phone)
		client.Address = strings.TrimSpace(input.Address)
		client.Status = strings.TrimSpace(input.Status)
		client.Rating = input.Rating
		if input.PaymentIssues != nil {
			client.PaymentIssues = *input.PaymentIssues
		}
		if err := client.SetTagList(normalizeTags(input.Tags)); err != nil {
			return fmt.Errorf("encode tags: %w", err)
		}

		updates := map[string]interface{}{
			"name":           client.Name,
			"email":          client.Email,
			"phone":          client.Phone,
			"address":        client.Address,
			"status":         client.Status,
			"tags":           client.Tags,
			"rating":         client.Rating,
			"payment_issues": client.PaymentIssues,
		}
		if err := cs.clientRepo.UpdateFields(ctx, tx, client.ID, updates); err != nil {
			return fmt.Errorf("update client: %w", err)
		}
		if nameChanged && cs.avatarService != nil {
			if err := cs.avatarService.RefreshClientAvatar(ctx, tx, client); err != nil {
				return fmt.Errorf("refresh client avatar: %w", err)
			}
		}
		updated = client
		return nil
	})
	if err != nil {
		return nil, err
	}

	cs.invalidateSummary(ctx, providerID)
	return updated, nil
}

// DeleteClient soft-deletes the client and its jobs and quotes, and removes
// notes and the communication log outright.
func (cs *clientService) DeleteClient(ctx context.Context, clientID uuid.UUID) error {
	providerID, err := providerFromContext(ctx)
	if err != nil {
		return err
	}

	err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client, err := cs.clientRepo.GetByIDForProvider(ctx, tx, clientID, providerID)
		if err != nil {
			return fmt.Errorf("fetch client: %w", err)
		}
		if client == nil {
			return fmt.Errorf("client not found")
		}
		if err := cs.jobRepo.SoftDeleteByClientIDs(ctx, tx, []uuid.UUID{client.ID}); err != nil {
			return fmt.Errorf("delete client jobs: %w", err)
		}
		if err := cs.quoteRepo.SoftDeleteByClientIDs(ctx, tx, []uuid.UUID{client.ID}); err != nil {
			return fmt.Errorf("delete client quotes: %w", err)
		}
		if err := cs.noteRepo.FullDeleteByClientIDs(ctx, tx, []uuid.UUID{client.ID}); err != nil {
			return fmt.Errorf("delete client notes: %w", err)
		}
		if err := cs.commRepo.FullDeleteByClientIDs(ctx, tx, []uuid.UUID{client.ID}); err != nil {
			return fmt.Errorf("delete client communications: %w", err)
		}
		if err := cs.clientRepo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{client.ID}); err != nil {
			return fmt.Errorf("delete client: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cs.invalidateSummary(ctx, providerID)
	return nil
}

func (cs *clientService) AddTag(ctx context.Context, clientID uuid.UUID, tag string) (*types.Client, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, fmt.Errorf("tag is required")
	}
	return cs.mutateTags(ctx, clientID, func(tags []string) []string {
		for _, existing := range tags {
			if strings.EqualFold(existing, tag) {
				return tags
			}
		}
		return append(tags, tag)
	})
}

func (cs *clientService) RemoveTag(ctx context.Context, clientID uuid.UUID, tag string) (*types.Client, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, fmt.Errorf("tag is required")
	}
	return cs.mutateTags(ctx, clientID, func(tags []string) []string {
		out := tags[:0]
		for _, existing := range tags {
			if !strings.EqualFold(existing, tag) {
				out = append(out, existing)
			}
		}
		return out
	})
}

func (cs *clientService) mutateTags(ctx context.Context, clientID uuid.UUID, mutate func([]string) []string) (*types.Client, error) {
	providerID, err := providerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var updated *types.Client
	err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client, err := cs.clientRepo.GetByIDForProvider(ctx, tx, clientID, providerID)
		if err != nil {
			return fmt.Errorf("fetch client: %w", err)
		}
		if client == nil {
			return fmt.Errorf("client not found")
		}
		if err := client.SetTagList(mutate(client.TagList())); err != nil {
			return fmt.Errorf("encode tags: %w", err)
		}
		if err := cs.clientRepo.UpdateFields(ctx, tx, client.ID, map[string]interface{}{"tags": client.Tags}); err != nil {
			return fmt.Errorf("update tags: %w", err)
		}
		updated = client
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (cs *clientService) SetRating(ctx context.Context, clientID uuid.UUID, rating int) (*types.Client, error) {
	providerID, err := providerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	client, err := cs.clientRepo.GetByIDForProvider(ctx, nil, clientID, providerID)
	if err != nil {
		return nil, fmt.Errorf("fetch client: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("client not found")
	}
	if err := cs.clientRepo.UpdateFields(ctx, nil, client.ID, map[string]interface{}{"rating": rating}); err != nil {
		return nil, fmt.Errorf("update rating: %w", err)
	}
	client.Rating = &rating
	return client, nil
}
