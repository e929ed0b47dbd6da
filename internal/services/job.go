package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	redisclient "github.com/yardvine/yardvine-backend/internal/clients/redis"
	"github.com/yardvine/yardvine-backend/internal/pkg/logger"
	"github.com/yardvine/yardvine-backend/internal/repos"
	"github.com/yardvine/yardvine-backend/internal/types"
)

type JobInput struct {
	Service       string     `json:"service"`
	Status        string     `json:"status"`
	Total         float64    `json:"total"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	Notes         string     `json:"notes"`
}

type JobService interface {
	CreateJob(ctx context.Context, clientID uuid.UUID, input JobInput) (*types.Job, error)
	UpdateJob(ctx context.Context, jobID uuid.UUID, input JobInput) (*types.Job, error)
	DeleteJob(ctx context.Context, jobID uuid.UUID) error
	ListJobsForClient(ctx context.Context, clientID uuid.UUID) ([]*types.Job, error)
}

type jobService struct {
	db           *gorm.DB
	log          *logger.Logger
	clientRepo   repos.ClientRepo
	jobRepo      repos.JobRepo
	summaryCache redisclient.SummaryCache
}

func NewJobService(
	db *gorm.DB,
	baseLog *logger.Logger,
	clientRepo repos.ClientRepo,
	jobRepo repos.JobRepo,
	summaryCache redisclient.SummaryCache,
) JobService {
	return &jobService{
		db:           db,
		log:          baseLog.With("service", "JobService"),
		clientRepo:   clientRepo,
		jobRepo:      jobRepo,
		summaryCache: summaryCache,
	}
}

func (js *jobService) invalidateSummary(ctx context.Context, providerID uuid.UUID) {
	if js.summaryCache == nil {
		return
	}
	if err := js.summaryCache.Invalidate(ctx, providerID); err != nil {
		js.log.Warn("invalidate summary cache", "error", err)
	}
}

func (js *jobService) CreateJob(ctx context.Context, clientID uuid.UUID, input JobInput) (*types.Job, error) {
	providerID, err := providerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if input.Total < 0 {
		return nil, fmt.Errorf("job total cannot be negative")
	}

	job := &types.Job{
		ID:            uuid.New(),
		ProviderID:    providerID,
		ClientID:      clientID,
		Service:       strings.TrimSpace(input.Service),
		Status:        types.ParseJobStatus(input.Status),
		Total:         input.Total,
		ScheduledDate: input.ScheduledDate,
		Notes:         input.Notes,
	}

	err = js.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client, err := js.clientRepo.GetByIDForProvider(ctx, tx, clientID, providerID)
		if err != nil {
			return fmt.Errorf("fetch client: %w", err)
		}
		if client == nil {
			return fmt.Errorf("client not found")
		}
		if _, err := js.jobRepo.Create(ctx, tx, []*types.Job{job}); err != nil {
			return fmt.Errorf("create job: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	js.invalidateSummary(ctx, providerID)
	return job, nil
}

func (js *jobService) UpdateJob(ctx context.Context, jobID uuid.UUID, input JobInput) (*types.Job, error) {
	providerID, err := providerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if input.Total < 0 {
		return nil, fmt.Errorf("job total cannot be negative")
	}

	var updated *types.Job
	err = js.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		job, err := js.jobRepo.GetByID(ctx, tx, jobID)
		if err != nil {
			return fmt.Errorf("fetch job: %w", err)
		}
		if job == nil || job.ProviderID != providerID {
			return fmt.Errorf("job not found")
		}

		job.Service = strings.TrimSpace(input.Service)
		job.Status = types.ParseJobStatus(input.Status)
		job.Total = input.Total
		job.ScheduledDate = input.ScheduledDate
		job.Notes = input.Notes

		updates := map[string]interface{}{
			"service":        job.Service,
			"status":         job.Status,
			"total":          job.Total,
			"scheduled_date": job.ScheduledDate,
			"notes":          job.Notes,
		}
		if err := js.jobRepo.UpdateFields(ctx, tx, job.ID, updates); err != nil {
			return fmt.Errorf("update job: %w", err)
		}
		updated = job
		return nil
	})
	if err != nil {
		return nil, err
	}

	js.invalidateSummary(ctx, providerID)
	return updated, nil
}

func (js *jobService) DeleteJob(ctx context.Context, jobID uuid.UUID) error {
	providerID, err := providerFromContext(ctx)
	if err != nil {
		return err
	}

	err = js.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		job, err := js.jobRepo.GetByID(ctx, tx, jobID)
		if err != nil {
			return fmt.Errorf("fetch job: %w", err)
		}
		if job == nil || job.ProviderID != providerID {
			return fmt.Errorf("job not found")
		}
		if err := js.jobRepo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{job.ID}); err != nil {
			return fmt.Errorf("delete job: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	js.invalidateSummary(ctx, providerID)
	return nil
}

func (js *jobService) ListJobsForClient(ctx context.Context, clientID uuid.UUID) ([]*types.Job, error) {
	providerID, err := providerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	client, err := js.clientRepo.GetByIDForProvider(ctx, nil, clientID, providerID)
	if err != nil {
		return nil, fmt.Errorf("fetch client: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("client not found")
	}
	jobs, err := js.jobRepo.GetByClientID(ctx, nil, clientID)
	if err != nil {
		return nil, fmt.Errorf("fetch jobs: %w", err)
	}
	return jobs, nil
}
