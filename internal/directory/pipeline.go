// Package directory filters and orders a provider's client collection for
// the dashboard grid. Like the metrics package it is pure: the service
// layer fetches collections and passes them in.
package directory

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/yardvine/yardvine-backend/internal/metrics"
	"github.com/yardvine/yardvine-backend/internal/types"
)

type StatusFilter string

const (
	StatusAll     StatusFilter = "all"
	StatusActive  StatusFilter = "active"
	StatusDormant StatusFilter = "dormant"
	StatusLost    StatusFilter = "lost"
)

type SortKey string

const (
	SortRecent SortKey = "recent"
	SortSpent  SortKey = "spent"
	SortName   SortKey = "name"
	SortJobs   SortKey = "jobs"
)

// Filter is the directory filter configuration. Tags match when ANY filter
// tag appears on the client. MinSpent floors the completed-job total only;
// scheduled and cancelled work never counts toward spend.
type Filter struct {
	Status   StatusFilter
	Tags     []string
	MinSpent float64
	SortBy   SortKey
}

var nameCollator = collate.New(language.English, collate.IgnoreCase)

// Apply runs the four-predicate AND over clients, then orders the passing
// set. The sort is stable: ties keep their input order.
func Apply(clients []*types.Client, jobsByClient map[uuid.UUID][]*types.Job, f Filter, search string, now time.Time) []*types.Client {
	search = strings.ToLower(strings.TrimSpace(search))

	passed := make([]*types.Client, 0, len(clients))
	for _, c := range clients {
		if c == nil {
			continue
		}
		jobs := jobsByClient[c.ID]
		if !matchesSearch(c, search) {
			continue
		}
		if !matchesStatus(jobs, f.Status, now) {
			continue
		}
		if !matchesTags(c, f.Tags) {
			continue
		}
		if metrics.CompletedSpend(jobs) < f.MinSpent {
			continue
		}
		passed = append(passed, c)
	}

	sortClients(passed, jobsByClient, f.SortBy)
	return passed
}

func matchesSearch(c *types.Client, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), search) ||
		strings.Contains(strings.ToLower(c.Email), search) ||
		strings.Contains(strings.ToLower(c.Phone), search)
}

func matchesStatus(jobs []*types.Job, want StatusFilter, now time.Time) bool {
	if want == "" || want == StatusAll {
		return true
	}
	band := metrics.Classify(jobs, now)
	return strings.EqualFold(band.Label, string(want))
}

func matchesTags(c *types.Client, want []string) bool {
	if len(want) == 0 {
		return true
	}
	have := c.TagList()
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

func sortClients(clients []*types.Client, jobsByClient map[uuid.UUID][]*types.Job, key SortKey) {
	switch key {
	case SortSpent:
		sort.SliceStable(clients, func(i, k int) bool {
			return metrics.CompletedSpend(jobsByClient[clients[i].ID]) >
				metrics.CompletedSpend(jobsByClient[clients[k].ID])
		})
	case SortName:
		sort.SliceStable(clients, func(i, k int) bool {
			return nameCollator.CompareString(clients[i].Name, clients[k].Name) < 0
		})
	case SortJobs:
		sort.SliceStable(clients, func(i, k int) bool {
			return len(jobsByClient[clients[i].ID]) > len(jobsByClient[clients[k].ID])
		})
	default: // SortRecent
		sort.SliceStable(clients, func(i, k int) bool {
			return clients[i].CreatedAt.After(clients[k].CreatedAt)
		})
	}
}

// ParseStatusFilter normalizes a query-string status value; anything
// unrecognized widens to "all" rather than erroring, matching the grid's
// forgiving filter controls.
func ParseStatusFilter(raw string) StatusFilter {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusActive:
		return StatusActive
	case StatusDormant:
		return StatusDormant
	case StatusLost:
		return StatusLost
	default:
		return StatusAll
	}
}

func ParseSortKey(raw string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(raw))) {
	case SortSpent:
		return SortSpent
	case SortName:
		return SortName
	case SortJobs:
		return SortJobs
	default:
		return SortRecent
	}
}
