package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobStatus is the closed job lifecycle enumeration. Values arriving from
// the API are parsed through ParseJobStatus so unrecognized strings land on
// JobStatusOther instead of silently passing through.
type JobStatus string

const (
	JobStatusScheduled JobStatus = "scheduled"
	JobStatusCompleted JobStatus = "completed"
	JobStatusCancelled JobStatus = "cancelled"
	JobStatusOther     JobStatus = "other"
)

func ParseJobStatus(raw string) JobStatus {
	switch JobStatus(raw) {
	case JobStatusScheduled, JobStatusCompleted, JobStatusCancelled:
		return JobStatus(raw)
	default:
		return JobStatusOther
	}
}

// Job is a scheduled or completed unit of work for one client. Completed
// jobs feed revenue aggregates; every status counts toward job counts.
type Job struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProviderID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"provider_id"`
	Provider      *Provider      `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProviderID;references:ID" json:"-"`
	ClientID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"client_id"`
	Client        *Client        `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClientID;references:ID" json:"-"`
	Service       string         `gorm:"column:service" json:"service"`
	Status        JobStatus      `gorm:"column:status;not null;default:'scheduled'" json:"status"`
	Total         float64        `gorm:"column:total;not null;default:0" json:"total"`
	ScheduledDate *time.Time     `gorm:"column:scheduled_date" json:"scheduled_date,omitempty"`
	Notes         string         `gorm:"column:notes" json:"notes"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Job) TableName() string { return "job" }
