package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yardvine/yardvine-backend/internal/directory"
)

func queryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/clients?"+rawQuery, nil)
	return c
}

func TestFilterFromQuery(t *testing.T) {
	c := queryContext(t, "search=smith&status=dormant&tags=lawn,%20vip%20,&min_spent=250.5&sort=spent")

	f, search := filterFromQuery(c)
	if search != "smith" {
		t.Fatalf("search: got %q", search)
	}
	if f.Status != directory.StatusDormant {
		t.Fatalf("status: got %q", f.Status)
	}
	if len(f.Tags) != 2 || f.Tags[0] != "lawn" || f.Tags[1] != "vip" {
		t.Fatalf("tags: got %v", f.Tags)
	}
	if f.MinSpent != 250.5 {
		t.Fatalf("min_spent: got %v", f.MinSpent)
	}
	if f.SortBy != directory.SortSpent {
		t.Fatalf("sort: got %q", f.SortBy)
	}
}

func TestFilterFromQueryDefaults(t *testing.T) {
	c := queryContext(t, "")

	f, search := filterFromQuery(c)
	if search != "" {
		t.Fatalf("search: got %q", search)
	}
	if f.Status != directory.StatusAll {
		t.Fatalf("status: got %q", f.Status)
	}
	if f.SortBy != directory.SortRecent {
		t.Fatalf("sort: got %q", f.SortBy)
	}
	if f.MinSpent != 0 || len(f.Tags) != 0 {
		t.Fatalf("expected zero filter, got %+v", f)
	}
}

func TestFilterFromQueryIgnoresBadValues(t *testing.T) {
	c := queryContext(t, "status=bogus&sort=bogus&min_spent=notanumber")

	f, _ := filterFromQuery(c)
	if f.Status != directory.StatusAll {
		t.Fatalf("status: got %q", f.Status)
	}
	if f.SortBy != directory.SortRecent {
		t.Fatalf("sort: got %q", f.SortBy)
	}
	if f.MinSpent != 0 {
		t.Fatalf("min_spent: got %v", f.MinSpent)
	}
}
