package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type CommunicationType string

const (
	CommunicationCall    CommunicationType = "call"
	CommunicationEmail   CommunicationType = "email"
	CommunicationSMS     CommunicationType = "sms"
	CommunicationMeeting CommunicationType = "meeting"
)

func ParseCommunicationType(raw string) (CommunicationType, error) {
	switch CommunicationType(raw) {
	case CommunicationCall, CommunicationEmail, CommunicationSMS, CommunicationMeeting:
		return CommunicationType(raw), nil
	default:
		return "", fmt.Errorf("invalid communication type %q", raw)
	}
}

// ClientCommunication is one logged touchpoint with a client. The log is
// append-only: rows are inserted and listed, never edited.
type ClientCommunication struct {
	ID         uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProviderID uuid.UUID         `gorm:"type:uuid;not null;index" json:"provider_id"`
	Provider   *Provider         `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProviderID;references:ID" json:"-"`
	ClientID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"client_id"`
	Client     *Client           `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClientID;references:ID" json:"-"`
	Type       CommunicationType `gorm:"column:type;not null" json:"type"`
	Notes      string            `gorm:"column:notes;not null" json:"notes"`
	CreatedAt  time.Time         `gorm:"not null;default:now()" json:"created_at"`
}

func (ClientCommunication) TableName() string { return "client_communication" }
