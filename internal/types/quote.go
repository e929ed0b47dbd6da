package types

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusApproved QuoteStatus = "approved"
	QuoteStatusDeclined QuoteStatus = "declined"
)

func ParseQuoteStatus(raw string) (QuoteStatus, error) {
	switch QuoteStatus(raw) {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusApproved, QuoteStatusDeclined:
		return QuoteStatus(raw), nil
	default:
		return "", fmt.Errorf("invalid quote status %q", raw)
	}
}

// QuoteLineItem is one priced line on a quote. Line items are stored as an
// ordered jsonb array; order is preserved as supplied.
type QuoteLineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// Quote is a priced proposal for work, independent of any committed job.
type Quote struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProviderID uuid.UUID      `gorm:"type:uuid;not null;index" json:"provider_id"`
	Provider   *Provider      `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProviderID;references:ID" json:"-"`
	ClientID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"client_id"`
	Client     *Client        `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClientID;references:ID" json:"-"`
	Title      string         `gorm:"column:title" json:"title"`
	Status     QuoteStatus    `gorm:"column:status;not null;default:'draft'" json:"status"`
	Subtotal   float64        `gorm:"column:subtotal;not null;default:0" json:"subtotal"`
	Total      float64        `gorm:"column:total;not null;default:0" json:"total"`
	LineItems  datatypes.JSON `gorm:"column:line_items;type:jsonb" json:"line_items"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Quote) TableName() string { return "quote" }

func (q *Quote) LineItemList() []QuoteLineItem {
	if len(q.LineItems) == 0 {
		return nil
	}
	var items []QuoteLineItem
	if err := json.Unmarshal(q.LineItems, &items); err != nil {
		return nil
	}
	return items
}

func (q *Quote) SetLineItemList(items []QuoteLineItem) error {
	if items == nil {
		items = []QuoteLineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	q.LineItems = datatypes.JSON(raw)
	return nil
}
