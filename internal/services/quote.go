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

type QuoteInput struct {
	Title     string                `json:"title"`
	Status    string                `json:"status"`
	LineItems []types.QuoteLineItem `json:"line_items"`
}

type QuoteService interface {
	CreateQuote(ctx context.Context, clientID uuid.UUID, input QuoteInput) (*types.Quote, error)
	UpdateQuote(ctx context.Context, quoteID uuid.UUID, input QuoteInput) (*types.Quote, error)
	UpdateQuoteStatus(ctx context.Context, quoteID uuid.UUID, status string) (*types.Quote, error)
	DeleteQuote(ctx context.Context, quoteID uuid.UUID) error
	ListQuotesForClient(ctx context.Context, clientID uuid.UUID) ([]*types.Quote, error)
}

type quoteService struct {
	db         *gorm.DB
	log        *logger.Logger
	clientRepo repos.ClientRepo
	quoteRepo  repos.QuoteRepo
}

func NewQuoteService(
	db *gorm.DB,
	baseLog *logger.Logger,
	clientRepo repos.ClientRepo,
	quoteRepo repos.QuoteRepo,
) QuoteService {
	return &quoteService{
		db:         db,
		log:        baseLog.With("service", "QuoteService"),
		clientRepo: clientRepo,
		quoteRepo:  quoteRepo,
	}
}

// normalizeLineItems recomputes per-line totals and the quote subtotal from
// quantity and unit price, ignoring any totals supplied by the caller.
func normalizeLineItems(items []types.QuoteLineItem) ([]types.QuoteLineItem, float64, error) {
	out := make([]types.QuoteLineItem, 0, len(items))
	var subtotal float64
	for _, item := range items {
		item.Description = strings.TrimSpace(item.Description)
		if item.Description == "" {
			return nil, 0, fmt.Errorf("line item description is required")
		}
		if item.Quantity < 0 || item.UnitPrice < 0 {
			return nil, 0, fmt.Errorf("line item quantity and unit price cannot be negative")
		}
		item.Total = item.Quantity * item.UnitPrice
		subtotal += item.Total
		out = append(out, item)
	}
	return out, subtotal, nil
}

func (qs *quoteService) CreateQuote(ctx context.Context, clientID uuid.UUID, input QuoteInput) (*types.Quote, error) {
	providerID, err := providerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	status := types.QuoteStatusDraft
	if strings.TrimSpace(input.Status) != "" {
		status, err = types.ParseQuoteStatus(input.Status)
		if err != nil {
			return nil, err
		}
	}

	items, subtotal, err := normalizeLineItems(input.LineItems)
	if err != nil {
		return nil, err
	}

	quote := &types.Quote{
		ID:         uuid.New(),
		ProviderID: providerID,
		ClientID:   clientID,
		Title:      strings.TrimSpace(input.Title),
		Status:     status,
		Subtotal:   subtotal,
		Total:      subtotal,
	}
	if err := quote.SetLineItemList(items); err != nil {
		return nil, fmt.Errorf("encode line items: %w", err)
	}

	err = qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client, err := qs.clientRepo.GetByIDForProvider(ctx, tx, clientID, providerID)
		if err != nil {
			return fmt.Errorf("fetch client: %w", err)
		}
		if client == nil {
			return fmt.Errorf("client not found")
		}
		if _, err := qs.quoteRepo.Create(ctx, tx, []*types.Quote{quote}); err != nil {
			return fmt.Errorf("create quote: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quote, nil
}

func (qs *quoteService) UpdateQuote(ctx context.Context, quoteID uuid.UUID, input QuoteInput) (*types.Quote, error) {
	providerID, err := providerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	items, subtotal, err := normalizeLineItems(input.LineItems)
	if err != nil {
		return nil, err
	}

	var updated *types.Quote
	err = qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quote, err := qs.quoteRepo.GetByID(ctx, tx, quoteID)
		if err != nil {
			return fmt.Errorf("fetch quote: %w", err)
		}
		if quote == nil || quote.ProviderID != providerID {
			return fmt.Errorf("quote not found")
		}

		quote.Title = strings.TrimSpace(input.Title)
		if strings.TrimSpace(input.Status) != "" {
			status, err := types.ParseQuoteStatus(input.Status)
			if err != nil {
				return err
			}
			quote.Status = status
		}
		quote.Subtotal = subtotal
		quote.Total = subtotal
		if err := quote.SetLineItemList(items); err != nil {
			return fmt.Errorf("encode line items: %w", err)
		}

		updates := map[string]interface{}{
			"title":      quote.Title,
			"status":     quote.Status,
			"subtotal":   quote.Subtotal,
			"total":      quote.Total,
			"line_items": quote.LineItems,
		}
		if err := qs.quoteRepo.UpdateFields(ctx, tx, quote.ID, updates); err != nil {
			return fmt.Errorf("update quote: %w", err)
		}
		updated = quote
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (qs *quoteService) UpdateQuoteStatus(ctx context.Context, quoteID uuid.UUID, status string) (*types.Quote, error) {
	providerID, err := providerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	parsed, err := types.ParseQuoteStatus(status)
	if err != nil {
		return nil, err
	}

	quote, err := qs.quoteRepo.GetByID(ctx, nil, quoteID)
	if err != nil {
		return nil, fmt.Errorf("fetch quote: %w", err)
	}
	if quote == nil || quote.ProviderID != providerID {
		return nil, fmt.Errorf("quote not found")
	}
	if err := qs.quoteRepo.UpdateFields(ctx, nil, quote.ID, map[string]interface{}{"status": parsed}); err != nil {
		return nil, fmt.Errorf("update quote status: %w", err)
	}
	quote.Status = parsed
	return quote, nil
}

func (qs *quoteService) DeleteQuote(ctx context.Context, quoteID uuid.UUID) error {
	providerID, err := providerFromContext(ctx)
	if err != nil {
		return err
	}
	return qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quote, err := qs.quoteRepo.GetByID(ctx, tx, quoteID)
		if err != nil {
			return fmt.Errorf("fetch quote: %w", err)
		}
		if quote == nil || quote.ProviderID != providerID {
			return fmt.Errorf("quote not found")
		}
		if err := qs.quoteRepo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{quote.ID}); err != nil {
			return fmt.Errorf("delete quote: %w", err)
		}
		return nil
	})
}

func (qs *quoteService) ListQuotesForClient(ctx context.Context, clientID uuid.UUID) ([]*types.Quote, error) {
	providerID, err := providerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	client, err := qs.clientRepo.GetByIDForProvider(ctx, nil, clientID, providerID)
	if err != nil {
		return nil, fmt.Errorf("fetch client: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("client not found")
	}
	quotes, err := qs.quoteRepo.GetByClientID(ctx, nil, clientID)
	if err != nil {
		return nil, fmt.Errorf("fetch quotes: %w", err)
	}
	return quotes, nil
}
