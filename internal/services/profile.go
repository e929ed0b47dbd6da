package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yardvine/yardvine-backend/internal/metrics"
	"github.com/yardvine/yardvine-backend/internal/pkg/logger"
	"github.com/yardvine/yardvine-backend/internal/repos"
	"github.com/yardvine/yardvine-backend/internal/types"
)

// revenueChartMonths is the window rendered by the profile revenue chart.
const revenueChartMonths = 6

// ClientProfile is the full profile view: the client record, its derived
// metrics, the revenue chart and every sub-collection.
type ClientProfile struct {
	Client         *types.Client                `json:"client"`
	Metrics        metrics.Snapshot             `json:"metrics"`
	MonthlyRevenue []metrics.MonthlyRevenuePoint `json:"monthly_revenue"`
	Jobs           []*types.Job                 `json:"jobs"`
	Quotes         []*types.Quote               `json:"quotes"`
	Notes          []*types.ClientNote          `json:"notes"`
	Communications []*types.ClientCommunication `json:"communications"`
}

type ProfileService interface {
	GetProfile(ctx context.Context, clientID uuid.UUID) (*ClientProfile, error)
}

type profileService struct {
	db         *gorm.DB
	log        *logger.Logger
	clientRepo repos.ClientRepo
	jobRepo    repos.JobRepo
	quoteRepo  repos.QuoteRepo
	noteRepo   repos.NoteRepo
	commRepo   repos.CommunicationRepo
}

func NewProfileService(
	db *gorm.DB,
	baseLog *logger.Logger,
	clientRepo repos.ClientRepo,
	jobRepo repos.JobRepo,
	quoteRepo repos.QuoteRepo,
	noteRepo repos.NoteRepo,
	commRepo repos.CommunicationRepo,
) ProfileService {
	return &profileService{
		db:         db,
		log:        baseLog.With("service", "ProfileService"),
		clientRepo: clientRepo,
		jobRepo:    jobRepo,
		quoteRepo:  quoteRepo,
		noteRepo:   noteRepo,
		commRepo:   commRepo,
	}
}

func (ps *profileService) GetProfile(ctx context.Context, clientID uuid.UUID) (*ClientProfile, error) {
	providerID, err := providerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	client, err := ps.clientRepo.GetByIDForProvider(ctx, nil, clientID, providerID)
	if err != nil {
		return nil, fmt.Errorf("fetch client: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("client not found")
	}

	profile := &ClientProfile{Client: client}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := ps.jobRepo.GetByClientID(gctx, nil, clientID)
		if err != nil {
			return fmt.Errorf("fetch jobs: %w", err)
		}
		profile.Jobs = rows
		return nil
	})
	g.Go(func() error {
		rows, err := ps.quoteRepo.GetByClientID(gctx, nil, clientID)
		if err != nil {
			return fmt.Errorf("fetch quotes: %w", err)
		}
		profile.Quotes = rows
		return nil
	})
	g.Go(func() error {
		rows, err := ps.noteRepo.GetByClientID(gctx, nil, clientID)
		if err != nil {
			return fmt.Errorf("fetch notes: %w", err)
		}
		profile.Notes = rows
		return nil
	})
	g.Go(func() error {
		rows, err := ps.commRepo.GetByClientID(gctx, nil, clientID)
		if err != nil {
			return fmt.Errorf("fetch communications: %w", err)
		}
		profile.Communications = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := time.Now()
	profile.Metrics = metrics.ComputeSnapshot(client, profile.Jobs, now)
	profile.MonthlyRevenue = metrics.MonthlyRevenue(profile.Jobs, revenueChartMonths, now)
	return profile, nil
}
