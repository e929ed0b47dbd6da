// Package export serializes client collections to CSV. The header names
// and column order are a stable contract consumers import into
// spreadsheets; change them and downstream imports break. Fields are
// escaped per RFC 4180 (embedded quotes doubled) via encoding/csv.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yardvine/yardvine-backend/internal/metrics"
	"github.com/yardvine/yardvine-backend/internal/types"
)

var clientHeader = []string{
	"Name", "Email", "Phone", "Total Spent", "Jobs Count",
	"Status", "Last Job Date", "Tags",
}

var jobHistoryHeader = []string{"Date", "Service", "Status", "Amount", "Notes"}

const lastJobDateLayout = "01/02/2006"

// Clients renders the 8-column directory export, one row per client.
func Clients(clients []*types.Client, jobsByClient map[uuid.UUID][]*types.Job, now time.Time) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(clientHeader); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, c := range clients {
		if c == nil {
			continue
		}
		jobs := jobsByClient[c.ID]

		lastJob := "N/A"
		if at, ok := metrics.LastJobDate(jobs); ok {
			lastJob = at.Format(lastJobDateLayout)
		}

		status := metrics.Classify(jobs, now).Label
		if len(jobs) == 0 {
			// With no derivable band, fall back to the client-level
			// label, then to the historical "Active" default.
			if strings.TrimSpace(c.Status) != "" {
				status = c.Status
			} else {
				status = "Active"
			}
		}

		row := []string{
			c.Name,
			c.Email,
			c.Phone,
			fmt.Sprintf("%.2f", metrics.CompletedSpend(jobs)),
			fmt.Sprintf("%d", len(jobs)),
			status,
			lastJob,
			strings.Join(c.TagList(), "; "),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write client row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// JobHistory renders the 5-column export for a single client's jobs.
func JobHistory(client *types.Client, jobs []*types.Job) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(jobHistoryHeader); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, j := range jobs {
		if j == nil {
			continue
		}
		date := j.CreatedAt.Format(lastJobDateLayout)
		if j.ScheduledDate != nil {
			date = j.ScheduledDate.Format(lastJobDateLayout)
		}
		row := []string{
			date,
			j.Service,
			string(j.Status),
			fmt.Sprintf("%.2f", j.Total),
			j.Notes,
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write job row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ClientsFilename names the download artifact; the HTTP layer attaches it
// via Content-Disposition.
func ClientsFilename(now time.Time) string {
	return fmt.Sprintf("clients-%s.csv", now.Format("2006-01-02"))
}

func JobHistoryFilename(client *types.Client, now time.Time) string {
	slug := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(client.Name), " ", "-"))
	if slug == "" {
		slug = client.ID.String()
	}
	return fmt.Sprintf("jobs-%s-%s.csv", slug, now.Format("2006-01-02"))
}
