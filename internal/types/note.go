package types

import (
	"time"

	"github.com/google/uuid"
)

// ClientNote is a free-text note pinned to a client. Notes support edit and
// delete, unlike the communication log.
type ClientNote struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProviderID uuid.UUID `gorm:"type:uuid;not null;index" json:"provider_id"`
	Provider   *Provider `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProviderID;references:ID" json:"-"`
	ClientID   uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Client     *Client   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClientID;references:ID" json:"-"`
	Body       string    `gorm:"column:body;not null" json:"body"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ClientNote) TableName() string { return "client_note" }
