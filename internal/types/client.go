package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Client is a property owner the provider manages a relationship with.
// Tags are stored as a jsonb string array; the service layer keeps the set
// deduplicated. Rating, when present, is constrained to [1,5] at the
// mutation boundary. Status is a free-form client-level label kept only for
// CSV export fallback; the display status band is always derived from jobs.
type Client struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProviderID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"provider_id"`
	Provider      *Provider      `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProviderID;references:ID" json:"-"`
	Name          string         `gorm:"column:name;not null" json:"name"`
	Email         string         `gorm:"column:email" json:"email"`
	Phone         string         `gorm:"column:phone" json:"phone"`
	Address       string         `gorm:"column:address" json:"address"`
	Status        string         `gorm:"column:status" json:"status,omitempty"`
	Tags          datatypes.JSON `gorm:"column:tags;type:jsonb" json:"tags"`
	Rating        *int           `gorm:"column:rating" json:"rating,omitempty"`
	PaymentIssues bool           `gorm:"column:payment_issues;not null;default:false" json:"payment_issues"`
	AvatarColor   string         `gorm:"column:avatar_color" json:"avatar_color"`
	AvatarPNG     []byte         `gorm:"column:avatar_png" json:"-"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Client) TableName() string { return "client" }

// TagList decodes the jsonb tag array. A missing or malformed column reads
// as an empty set.
func (c *Client) TagList() []string {
	if len(c.Tags) == 0 {
		return nil
	}
	var tags []string
	if err := json.Unmarshal(c.Tags, &tags); err != nil {
		return nil
	}
	return tags
}

func (c *Client) SetTagList(tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	c.Tags = datatypes.JSON(raw)
	return nil
}
