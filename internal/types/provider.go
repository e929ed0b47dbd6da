package types

import (
	"time"

	"github.com/google/uuid"
)

// Provider is the service professional who owns a client book. It is the
// account entity behind every authenticated dashboard session.
type Provider struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password     string    `gorm:"not null;column:password" json:"-"`
	FirstName    string    `gorm:"not null;column:first_name" json:"first_name"`
	LastName     string    `gorm:"not null;column:last_name" json:"last_name"`
	BusinessName string    `gorm:"column:business_name" json:"business_name"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Provider) TableName() string { return "provider" }
