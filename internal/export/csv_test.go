package export

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yardvine/yardvine-backend/internal/types"
)

func mkClient(t *testing.T, name, email, phone string, tags []string) *types.Client {
	t.Helper()
	c := &types.Client{ID: uuid.New(), Name: name, Email: email, Phone: phone}
	if err := c.SetTagList(tags); err != nil {
		t.Fatalf("SetTagList: %v", err)
	}
	return c
}

func TestClientsRoundTrip(t *testing.T) {
	now := time.Now()
	a := mkClient(t, "Alice Hart", "alice@example.com", "555-0101", []string{"lawn", "vip"})
	b := mkClient(t, "Bob Stone", "bob@example.com", "555-0202", nil)

	jobs := map[uuid.UUID][]*types.Job{
		a.ID: {
			{ID: uuid.New(), Status: types.JobStatusCompleted, Total: 1250, CreatedAt: now.AddDate(0, 0, -30)},
			{ID: uuid.New(), Status: types.JobStatusScheduled, Total: 400, CreatedAt: now.AddDate(0, 0, -2)},
		},
	}

	out, err := Clients([]*types.Client{a, b}, jobs, now)
	if err != nil {
		t.Fatalf("Clients: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("row count: got %d want 3", len(rows))
	}

	header := rows[0]
	want := []string{"Name", "Email", "Phone", "Total Spent", "Jobs Count", "Status", "Last Job Date", "Tags"}
	for i := range want {
		if header[i] != want[i] {
			t.Fatalf("header[%d]: got %q want %q", i, header[i], want[i])
		}
	}

	alice := rows[1]
	if alice[0] != "Alice Hart" {
		t.Fatalf("name: %q", alice[0])
	}
	if alice[3] != "1250.00" {
		t.Fatalf("spend formatting: got %q want 1250.00", alice[3])
	}
	if alice[4] != "2" {
		t.Fatalf("jobs count: %q", alice[4])
	}
	if alice[7] != "lawn; vip" {
		t.Fatalf("tags join: %q", alice[7])
	}

	bob := rows[2]
	if bob[3] != "0.00" || bob[4] != "0" {
		t.Fatalf("zero-job aggregates: spend=%q count=%q", bob[3], bob[4])
	}
	if bob[5] != "Active" {
		t.Fatalf("status default: got %q want Active", bob[5])
	}
	if bob[6] != "N/A" {
		t.Fatalf("last job date sentinel: got %q", bob[6])
	}
}

func TestClientsStatusFallsBackToClientLevel(t *testing.T) {
	now := time.Now()
	c := mkClient(t, "Cara", "", "", nil)
	c.Status = "Prospect"

	out, err := Clients([]*types.Client{c}, nil, now)
	if err != nil {
		t.Fatalf("Clients: %v", err)
	}
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rows[1][5] != "Prospect" {
		t.Fatalf("client-level status fallback: got %q", rows[1][5])
	}
}

func TestEmbeddedQuotesAndCommasEscape(t *testing.T) {
	now := time.Now()
	c := mkClient(t, `Dan "The Man" O'Leary, Jr.`, "dan@example.com", "", nil)

	out, err := Clients([]*types.Client{c}, nil, now)
	if err != nil {
		t.Fatalf("Clients: %v", err)
	}
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("escaped output must re-parse: %v", err)
	}
	if rows[1][0] != `Dan "The Man" O'Leary, Jr.` {
		t.Fatalf("quote escaping lost data: %q", rows[1][0])
	}
}

func TestJobHistory(t *testing.T) {
	now := time.Now()
	c := mkClient(t, "Alice", "", "", nil)
	sched := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	jobs := []*types.Job{
		{ID: uuid.New(), Service: "Gutter cleaning", Status: types.JobStatusCompleted, Total: 180.5, CreatedAt: now, ScheduledDate: &sched, Notes: "ladder access"},
		{ID: uuid.New(), Service: "Mowing", Status: types.JobStatusCancelled, Total: 60, CreatedAt: now},
	}

	out, err := JobHistory(c, jobs)
	if err != nil {
		t.Fatalf("JobHistory: %v", err)
	}
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows: %d", len(rows))
	}
	wantHeader := []string{"Date", "Service", "Status", "Amount", "Notes"}
	for i := range wantHeader {
		if rows[0][i] != wantHeader[i] {
			t.Fatalf("header[%d]: %q", i, rows[0][i])
		}
	}
	if rows[1][0] != "03/09/2026" {
		t.Fatalf("scheduled date preferred: %q", rows[1][0])
	}
	if rows[1][3] != "180.50" || rows[2][2] != "cancelled" {
		t.Fatalf("row content: %+v", rows[1:])
	}
}

func TestFilenames(t *testing.T) {
	now := time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC)
	if got := ClientsFilename(now); got != "clients-2026-08-29.csv" {
		t.Fatalf("ClientsFilename: %q", got)
	}
	c := mkClient(t, "Alice Hart", "", "", nil)
	if got := JobHistoryFilename(c, now); got != "jobs-alice-hart-2026-08-29.csv" {
		t.Fatalf("JobHistoryFilename: %q", got)
	}
}
