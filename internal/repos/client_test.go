package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yardvine/yardvine-backend/internal/repos/testutil"
	"github.com/yardvine/yardvine-backend/internal/types"
)

func TestClientRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewClientRepo(db, testutil.Logger(t))

	p1 := testutil.SeedProvider(t, ctx, tx, "clientrepo1@example.com")
	p2 := testutil.SeedProvider(t, ctx, tx, "clientrepo2@example.com")

	c1 := &types.Client{ID: uuid.New(), ProviderID: p1.ID, Name: "Alice", Email: "alice@example.com"}
	c2 := &types.Client{ID: uuid.New(), ProviderID: p1.ID, Name: "Bob"}
	c3 := &types.Client{ID: uuid.New(), ProviderID: p2.ID, Name: "Cara"}
	for _, c := range []*types.Client{c1, c2, c3} {
		if err := c.SetTagList([]string{"seeded"}); err != nil {
			t.Fatalf("SetTagList: %v", err)
		}
	}
	if _, err := repo.Create(ctx, tx, []*types.Client{c1, c2, c3}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{c1.ID, c2.ID}); err != nil || len(rows) != 2 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}
	if got, err := repo.GetByID(ctx, tx, c1.ID); err != nil || got == nil || got.Name != "Alice" {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	if rows, err := repo.GetByProviderID(ctx, tx, p1.ID); err != nil || len(rows) != 2 {
		t.Fatalf("GetByProviderID: err=%v len=%d", err, len(rows))
	}

	// Provider scoping: p2 must not see p1's clients.
	if got, err := repo.GetByIDForProvider(ctx, tx, c1.ID, p2.ID); err != nil || got != nil {
		t.Fatalf("GetByIDForProvider cross-provider: got=%v err=%v", got, err)
	}
	if got, err := repo.GetByIDForProvider(ctx, tx, c1.ID, p1.ID); err != nil || got == nil {
		t.Fatalf("GetByIDForProvider same-provider: got=%v err=%v", got, err)
	}

	if err := repo.UpdateFields(ctx, tx, c2.ID, map[string]interface{}{"name": "Bobby", "payment_issues": true}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if got, err := repo.GetByID(ctx, tx, c2.ID); err != nil || got.Name != "Bobby" || !got.PaymentIssues {
		t.Fatalf("after UpdateFields: got=%+v err=%v", got, err)
	}

	if err := repo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{c2.ID}); err != nil {
		t.Fatalf("SoftDeleteByIDs: %v", err)
	}
	if rows, err := repo.GetByProviderID(ctx, tx, p1.ID); err != nil || len(rows) != 1 {
		t.Fatalf("after soft delete: err=%v len=%d", err, len(rows))
	}

	if err := repo.FullDeleteByIDs(ctx, tx, []uuid.UUID{c3.ID}); err != nil {
		t.Fatalf("FullDeleteByIDs: %v", err)
	}
	if rows, err := repo.GetByProviderID(ctx, tx, p2.ID); err != nil || len(rows) != 0 {
		t.Fatalf("after full delete: err=%v len=%d", err, len(rows))
	}
}

func TestClientRepoEmptyInputs(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewClientRepo(db, testutil.Logger(t))

	if rows, err := repo.Create(ctx, tx, nil); err != nil || len(rows) != 0 {
		t.Fatalf("Create empty: err=%v len=%d", err, len(rows))
	}
	if got, err := repo.GetByID(ctx, tx, uuid.Nil); err != nil || got != nil {
		t.Fatalf("GetByID nil id: got=%v err=%v", got, err)
	}
	if err := repo.SoftDeleteByIDs(ctx, tx, nil); err != nil {
		t.Fatalf("SoftDeleteByIDs empty: %v", err)
	}
}
