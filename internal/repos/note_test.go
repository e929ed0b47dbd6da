package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yardvine/yardvine-backend/internal/repos/testutil"
	"github.com/yardvine/yardvine-backend/internal/types"
)

func TestNoteRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewNoteRepo(db, testutil.Logger(t))

	p := testutil.SeedProvider(t, ctx, tx, "noterepo@example.com")
	c := testutil.SeedClient(t, ctx, tx, p.ID, "Alice")

	created, err := repo.Create(ctx, tx, []*types.ClientNote{
		{ID: uuid.New(), ProviderID: p.ID, ClientID: c.ID, Body: "prefers morning visits"},
		{ID: uuid.New(), ProviderID: p.ID, ClientID: c.ID, Body: "gate code 4421"},
	})
	if err != nil || len(created) != 2 {
		t.Fatalf("Create: err=%v len=%d", err, len(created))
	}

	rows, err := repo.GetByClientID(ctx, tx, c.ID)
	if err != nil || len(rows) != 2 {
		t.Fatalf("GetByClientID: err=%v len=%d", err, len(rows))
	}

	if err := repo.UpdateFields(ctx, tx, created[0].ID, map[string]interface{}{"body": "prefers afternoon visits"}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	got, err := repo.GetByID(ctx, tx, created[0].ID)
	if err != nil || got == nil || got.Body != "prefers afternoon visits" {
		t.Fatalf("after UpdateFields: got=%+v err=%v", got, err)
	}

	if err := repo.FullDeleteByIDs(ctx, tx, []uuid.UUID{created[0].ID}); err != nil {
		t.Fatalf("FullDeleteByIDs: %v", err)
	}
	if got, err := repo.GetByID(ctx, tx, created[0].ID); err != nil || got != nil {
		t.Fatalf("after delete: got=%+v err=%v", got, err)
	}

	if err := repo.FullDeleteByClientIDs(ctx, tx, []uuid.UUID{c.ID}); err != nil {
		t.Fatalf("FullDeleteByClientIDs: %v", err)
	}
	if rows, err := repo.GetByClientID(ctx, tx, c.ID); err != nil || len(rows) != 0 {
		t.Fatalf("after client cascade: err=%v len=%d", err, len(rows))
	}
}
