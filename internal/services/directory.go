package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	redisclient "github.com/yardvine/yardvine-backend/internal/clients/redis"
	"github.com/yardvine/yardvine-backend/internal/directory"
	"github.com/yardvine/yardvine-backend/internal/metrics"
	"github.com/yardvine/yardvine-backend/internal/pkg/logger"
	"github.com/yardvine/yardvine-backend/internal/repos"
	"github.com/yardvine/yardvine-backend/internal/types"
)

// ClientCard is one row of the directory view: the client plus the derived
// numbers the list renders.
type ClientCard struct {
	Client        *types.Client      `json:"client"`
	TotalSpent    float64            `json:"total_spent"`
	JobsCount     int                `json:"jobs_count"`
	LifetimeValue float64            `json:"lifetime_value"`
	Frequency     float64            `json:"frequency"`
	DaysSinceLast *int               `json:"days_since_last_job,omitempty"`
	Status        metrics.StatusBand `json:"status"`
	RiskScore     int                `json:"risk_score"`
	LastJobDate   *time.Time         `json:"last_job_date,omitempty"`
}

// DirectorySummary is the headline stat block above the client list.
type DirectorySummary struct {
	TotalClients         int     `json:"total_clients"`
	ActiveClients        int     `json:"active_clients"`
	DormantClients       int     `json:"dormant_clients"`
	LostClients          int     `json:"lost_clients"`
	NewClients           int     `json:"new_clients"`
	TotalRevenue         float64 `json:"total_revenue"`
	AverageLifetimeValue float64 `json:"average_lifetime_value"`
}

type DirectoryService interface {
	ListClients(ctx context.Context, f directory.Filter, search string) ([]*ClientCard, error)
	Summary(ctx context.Context) (*DirectorySummary, error)
}

type directoryService struct {
	db           *gorm.DB
	log          *logger.Logger
	clientRepo   repos.ClientRepo
	jobRepo      repos.JobRepo
	summaryCache redisclient.SummaryCache
}

func NewDirectoryService(
	db *gorm.DB,
	baseLog *logger.Logger,
	clientRepo repos.ClientRepo,
	jobRepo repos.JobRepo,
	summaryCache redisclient.SummaryCache,
) DirectoryService {
	return &directoryService{
		db:           db,
		log:          baseLog.With("service", "DirectoryService"),
		clientRepo:   clientRepo,
		jobRepo:      jobRepo,
		summaryCache: summaryCache,
	}
}

// fetchBook loads the provider's full client book and groups jobs by
// client. The two queries run in parallel.
func (ds *directoryService) fetchBook(ctx context.Context, providerID uuid.UUID) ([]*types.Client, map[uuid.UUID][]*types.Job, error) {
	var clients []*types.Client
	var jobs []*types.Job

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := ds.clientRepo.GetByProviderID(gctx, nil, providerID)
		if err != nil {
			return fmt.Errorf("fetch clients: %w", err)
		}
		clients = rows
		return nil
	})
	g.Go(func() error {
		rows, err := ds.jobRepo.GetByProviderID(gctx, nil, providerID)
		if err != nil {
			return fmt.Errorf("fetch jobs: %w", err)
		}
		jobs = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	jobsByClient := make(map[uuid.UUID][]*types.Job, len(clients))
	for _, job := range jobs {
		jobsByClient[job.ClientID] = append(jobsByClient[job.ClientID], job)
	}
	return clients, jobsByClient, nil
}

func (ds *directoryService) ListClients(ctx context.Context, f directory.Filter, search string) ([]*ClientCard, error) {
	providerID, err := providerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	clients, jobsByClient, err := ds.fetchBook(ctx, providerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	visible := directory.Apply(clients, jobsByClient, f, search, now)

	cards := make([]*ClientCard, 0, len(visible))
	for _, client := range visible {
		jobs := jobsByClient[client.ID]
		snap := metrics.ComputeSnapshot(client, jobs, now)

		card := &ClientCard{
			Client:        client,
			TotalSpent:    snap.TotalSpent,
			JobsCount:     len(jobs),
			LifetimeValue: snap.LifetimeValue,
			Frequency:     snap.Frequency,
			Status:        snap.Status,
			RiskScore:     snap.RiskScore,
		}
		if days, ok := metrics.DaysSinceLastJob(jobs, now); ok {
			card.DaysSinceLast = &days
		}
		if last, ok := metrics.LastJobDate(jobs); ok {
			card.LastJobDate = &last
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (ds *directoryService) Summary(ctx context.Context) (*DirectorySummary, error) {
	providerID, err := providerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if ds.summaryCache != nil {
		var cached DirectorySummary
		hit, err := ds.summaryCache.Get(ctx, providerID, &cached)
		if err != nil {
			ds.log.Warn("summary cache read", "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	clients, jobsByClient, err := ds.fetchBook(ctx, providerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	summary := &DirectorySummary{TotalClients: len(clients)}
	var ltvSum float64
	for _, client := range clients {
		jobs := jobsByClient[client.ID]
		switch metrics.Classify(jobs, now).Band {
		case metrics.BandActive:
			summary.ActiveClients++
		case metrics.BandDormant:
			summary.DormantClients++
		case metrics.BandLost:
			summary.LostClients++
		case metrics.BandNew:
			summary.NewClients++
		}
		summary.TotalRevenue += metrics.CompletedSpend(jobs)
		ltvSum += metrics.LifetimeValue(jobs, now)
	}
	if len(clients) > 0 {
		summary.AverageLifetimeValue = ltvSum / float64(len(clients))
	}

	if ds.summaryCache != nil {
		if err := ds.summaryCache.Set(ctx, providerID, summary); err != nil {
			ds.log.Warn("summary cache write", "error", err)
		}
	}
	return summary, nil
}
