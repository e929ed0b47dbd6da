package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yardvine/yardvine-backend/internal/types"
)

func SeedProvider(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.Provider {
	tb.Helper()
	p := &types.Provider{
		ID:        uuid.New(),
		Email:     email,
		Password:  "x",
		FirstName: "Test",
		LastName:  "Provider",
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed provider: %v", err)
	}
	return p
}

func SeedClient(tb testing.TB, ctx context.Context, tx *gorm.DB, providerID uuid.UUID, name string) *types.Client {
	tb.Helper()
	c := &types.Client{
		ID:         uuid.New(),
		ProviderID: providerID,
		Name:       name,
	}
	if err := c.SetTagList(nil); err != nil {
		tb.Fatalf("seed client tags: %v", err)
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed client: %v", err)
	}
	return c
}

func SeedJob(tb testing.TB, ctx context.Context, tx *gorm.DB, providerID, clientID uuid.UUID, status types.JobStatus, total float64, created time.Time) *types.Job {
	tb.Helper()
	j := &types.Job{
		ID:         uuid.New(),
		ProviderID: providerID,
		ClientID:   clientID,
		Status:     status,
		Total:      total,
		CreatedAt:  created,
	}
	if err := tx.WithContext(ctx).Create(j).Error; err != nil {
		tb.Fatalf("seed job: %v", err)
	}
	return j
}
