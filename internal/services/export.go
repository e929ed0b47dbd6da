package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yardvine/yardvine-backend/internal/directory"
	"github.com/yardvine/yardvine-backend/internal/export"
	"github.com/yardvine/yardvine-backend/internal/pkg/logger"
	"github.com/yardvine/yardvine-backend/internal/repos"
	"github.com/yardvine/yardvine-backend/internal/types"
)

// ExportService renders CSV downloads. Client export honors the same
// filter and sort the directory view applies, so the file matches what is
// on screen.
type ExportService interface {
	ExportClients(ctx context.Context, f directory.Filter, search string) (csv string, filename string, err error)
	ExportJobHistory(ctx context.Context, clientID uuid.UUID) (csv string, filename string, err error)
}

type exportService struct {
	db         *gorm.DB
	log        *logger.Logger
	clientRepo repos.ClientRepo
	jobRepo    repos.JobRepo
}

func NewExportService(
	db *gorm.DB,
	baseLog *logger.Logger,
	clientRepo repos.ClientRepo,
	jobRepo repos.JobRepo,
) ExportService {
	return &exportService{
		db:         db,
		log:        baseLog.With("service", "ExportService"),
		clientRepo: clientRepo,
		jobRepo:    jobRepo,
	}
}

func (es *exportService) ExportClients(ctx context.Context, f directory.Filter, search string) (string, string, error) {
	providerID, err := providerFromContext(ctx)
	if err != nil {
		return "", "", err
	}

	clients, err := es.clientRepo.GetByProviderID(ctx, nil, providerID)
	if err != nil {
		return "", "", fmt.Errorf("fetch clients: %w", err)
	}
	jobs, err := es.jobRepo.GetByProviderID(ctx, nil, providerID)
	if err != nil {
		return "", "", fmt.Errorf("fetch jobs: %w", err)
	}

	jobsByClient := make(map[uuid.UUID][]*types.Job, len(clients))
	for _, job := range jobs {
		jobsByClient[job.ClientID] = append(jobsByClient[job.ClientID], job)
	}

	now := time.Now()
	visible := directory.Apply(clients, jobsByClient, f, search, now)

	out, err := export.Clients(visible, jobsByClient, now)
	if err != nil {
		return "", "", fmt.Errorf("render client csv: %w", err)
	}
	return out, export.ClientsFilename(now), nil
}

func (es *exportService) ExportJobHistory(ctx context.Context, clientID uuid.UUID) (string, string, error) {
	providerID, err := providerFromContext(ctx)
	if err != nil {
		return "", "", err
	}

	client, err := es.clientRepo.GetByIDForProvider(ctx, nil, clientID, providerID)
	if err != nil {
		return "", "", fmt.Errorf("fetch client: %w", err)
	}
	if client == nil {
		return "", "", fmt.Errorf("client not found")
	}
	jobs, err := es.jobRepo.GetByClientID(ctx, nil, clientID)
	if err != nil {
		return "", "", fmt.Errorf("fetch jobs: %w", err)
	}

	now := time.Now()
	out, err := export.JobHistory(client, jobs)
	if err != nil {
		return "", "", fmt.Errorf("render job history csv: %w", err)
	}
	return out, export.JobHistoryFilename(client, now), nil
}
