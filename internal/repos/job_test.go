package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yardvine/yardvine-backend/internal/repos/testutil"
	"github.com/yardvine/yardvine-backend/internal/types"
)

func TestJobRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewJobRepo(db, testutil.Logger(t))

	p := testutil.SeedProvider(t, ctx, tx, "jobrepo@example.com")
	c1 := testutil.SeedClient(t, ctx, tx, p.ID, "Alice")
	c2 := testutil.SeedClient(t, ctx, tx, p.ID, "Bob")

	now := time.Now()
	j1 := testutil.SeedJob(t, ctx, tx, p.ID, c1.ID, types.JobStatusCompleted, 500, now.AddDate(0, 0, -30))
	j2 := testutil.SeedJob(t, ctx, tx, p.ID, c1.ID, types.JobStatusScheduled, 200, now.AddDate(0, 0, -1))
	j3 := testutil.SeedJob(t, ctx, tx, p.ID, c2.ID, types.JobStatusCompleted, 900, now.AddDate(0, 0, -10))

	if rows, err := repo.GetByProviderID(ctx, tx, p.ID); err != nil || len(rows) != 3 {
		t.Fatalf("GetByProviderID: err=%v len=%d", err, len(rows))
	}

	rows, err := repo.GetByClientID(ctx, tx, c1.ID)
	if err != nil || len(rows) != 2 {
		t.Fatalf("GetByClientID: err=%v len=%d", err, len(rows))
	}
	// Ordered newest first.
	if rows[0].ID != j2.ID || rows[1].ID != j1.ID {
		t.Fatalf("GetByClientID order: got %v, %v", rows[0].ID, rows[1].ID)
	}

	if rows, err := repo.GetByClientIDs(ctx, tx, []uuid.UUID{c1.ID, c2.ID}); err != nil || len(rows) != 3 {
		t.Fatalf("GetByClientIDs: err=%v len=%d", err, len(rows))
	}

	if err := repo.UpdateFields(ctx, tx, j2.ID, map[string]interface{}{"status": types.JobStatusCompleted, "total": 250.0}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if got, err := repo.GetByID(ctx, tx, j2.ID); err != nil || got.Status != types.JobStatusCompleted || got.Total != 250 {
		t.Fatalf("after UpdateFields: got=%+v err=%v", got, err)
	}

	if err := repo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{j3.ID}); err != nil {
		t.Fatalf("SoftDeleteByIDs: %v", err)
	}
	if rows, err := repo.GetByClientID(ctx, tx, c2.ID); err != nil || len(rows) != 0 {
		t.Fatalf("after soft delete: err=%v len=%d", err, len(rows))
	}

	if err := repo.SoftDeleteByClientIDs(ctx, tx, []uuid.UUID{c1.ID}); err != nil {
		t.Fatalf("SoftDeleteByClientIDs: %v", err)
	}
	if rows, err := repo.GetByProviderID(ctx, tx, p.ID); err != nil || len(rows) != 0 {
		t.Fatalf("after client cascade: err=%v len=%d", err, len(rows))
	}

	if err := repo.FullDeleteByClientIDs(ctx, tx, []uuid.UUID{c1.ID, c2.ID}); err != nil {
		t.Fatalf("FullDeleteByClientIDs: %v", err)
	}
}
