// Package metrics computes derived client-relationship figures from a
// client's job list. Everything here is pure: inputs in, value out, no
// storage access. Functions that depend on the earliest or latest job find
// it by scanning (or sorting a copy of) the input, so callers may pass job
// lists in any order.
package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/yardvine/yardvine-backend/internal/types"
)

// minElapsedYears floors the annualization denominator so a brand-new
// client cannot divide by ~zero.
const minElapsedYears = 0.1

const daysPerYear = 365.0

// Band is the churn-recency classification of a client.
type Band int

const (
	BandNew Band = iota
	BandActive
	BandDormant
	BandLost
)

func (b Band) String() string {
	switch b {
	case BandNew:
		return "New"
	case BandActive:
		return "Active"
	case BandDormant:
		return "Dormant"
	case BandLost:
		return "Lost"
	}
	return "New"
}

// StatusBand pairs a Band with its display color and description.
type StatusBand struct {
	Band        Band   `json:"-"`
	Label       string `json:"status"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

func bandInfo(b Band) StatusBand {
	switch b {
	case BandActive:
		return StatusBand{Band: BandActive, Label: "Active", Color: "green", Description: "Recently booked"}
	case BandDormant:
		return StatusBand{Band: BandDormant, Label: "Dormant", Color: "amber", Description: "Follow up recommended"}
	case BandLost:
		return StatusBand{Band: BandLost, Label: "Lost", Color: "red", Description: "Re-engagement needed"}
	default:
		return StatusBand{Band: BandNew, Label: "New", Color: "blue", Description: "No jobs yet"}
	}
}

// CompletedSpend sums the totals of completed jobs. Absent totals are zero
// on the model, so no nil handling is needed here.
func CompletedSpend(jobs []*types.Job) float64 {
	var sum float64
	for _, j := range jobs {
		if j != nil && j.Status == types.JobStatusCompleted {
			sum += j.Total
		}
	}
	return sum
}

func elapsedYears(jobs []*types.Job, now time.Time) float64 {
	earliest := time.Time{}
	for _, j := range jobs {
		if j == nil {
			continue
		}
		if earliest.IsZero() || j.CreatedAt.Before(earliest) {
			earliest = j.CreatedAt
		}
	}
	if earliest.IsZero() {
		return minElapsedYears
	}
	years := now.Sub(earliest).Hours() / 24 / daysPerYear
	return math.Max(years, minElapsedYears)
}

// LifetimeValue returns the annualized completed-spend rate: completed
// totals divided by years elapsed since the earliest job, floored at 0.1
// years. An empty job list yields 0.
func LifetimeValue(jobs []*types.Job, now time.Time) float64 {
	if len(jobs) == 0 {
		return 0
	}
	return CompletedSpend(jobs) / elapsedYears(jobs, now)
}

// Frequency returns jobs per year over the same elapsed-year denominator
// as LifetimeValue. All statuses count.
func Frequency(jobs []*types.Job, now time.Time) float64 {
	if len(jobs) == 0 {
		return 0
	}
	return float64(len(jobs)) / elapsedYears(jobs, now)
}

// DaysSinceLastJob reports whole days since the most recently created job.
// ok is false iff the list is empty.
func DaysSinceLastJob(jobs []*types.Job, now time.Time) (days int, ok bool) {
	latest := time.Time{}
	for _, j := range jobs {
		if j == nil {
			continue
		}
		if j.CreatedAt.After(latest) {
			latest = j.CreatedAt
		}
	}
	if latest.IsZero() {
		return 0, false
	}
	return int(math.Floor(now.Sub(latest).Hours() / 24)), true
}

// Classify maps recency onto a status band. Band boundaries are inclusive
// on the lower edge: exactly 90 days is still Active, exactly 180 still
// Dormant.
func Classify(jobs []*types.Job, now time.Time) StatusBand {
	days, ok := DaysSinceLastJob(jobs, now)
	if !ok {
		return bandInfo(BandNew)
	}
	switch {
	case days <= 90:
		return bandInfo(BandActive)
	case days <= 180:
		return bandInfo(BandDormant)
	default:
		return bandInfo(BandLost)
	}
}

// MonthlyRevenuePoint is one calendar month of completed revenue.
type MonthlyRevenuePoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// MonthlyRevenue buckets completed-job totals by calendar month over the
// last monthCount months ending at now's month, oldest first. Jobs match a
// bucket by created month and year, not by elapsed days. Every bucket is
// emitted even when empty.
func MonthlyRevenue(jobs []*types.Job, monthCount int, now time.Time) []MonthlyRevenuePoint {
	if monthCount <= 0 {
		return []MonthlyRevenuePoint{}
	}
	points := make([]MonthlyRevenuePoint, 0, monthCount)
	totals := make(map[int]float64, monthCount)
	index := make(map[int]int, monthCount)

	monthKey := func(t time.Time) int { return t.Year()*12 + int(t.Month()) - 1 }

	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := monthCount - 1; i >= 0; i-- {
		m := anchor.AddDate(0, -i, 0)
		index[monthKey(m)] = len(points)
		points = append(points, MonthlyRevenuePoint{Month: m.Format("Jan 2006")})
	}
	for _, j := range jobs {
		if j == nil || j.Status != types.JobStatusCompleted {
			continue
		}
		totals[monthKey(j.CreatedAt)] += j.Total
	}
	for key, sum := range totals {
		if at, ok := index[key]; ok {
			points[at].Revenue = sum
		}
	}
	return points
}

// RiskScore estimates churn likelihood on an additive 0-100 scale:
// +40 for >180 days since the last job (else +20 for >90), +30 when job
// activity in the last 180 days is below the preceding 180-day window,
// +20 for an internal rating under 3, +10 for flagged payment issues.
func RiskScore(client *types.Client, jobs []*types.Job, now time.Time) int {
	score := 0

	if days, ok := DaysSinceLastJob(jobs, now); ok {
		switch {
		case days > 180:
			score += 40
		case days > 90:
			score += 20
		}
	} else {
		// No jobs at all reads as maximally stale.
		score += 40
	}

	recent, previous := 0, 0
	windowStart := now.AddDate(0, 0, -180)
	previousStart := now.AddDate(0, 0, -360)
	for _, j := range jobs {
		if j == nil {
			continue
		}
		switch {
		case !j.CreatedAt.Before(windowStart):
			recent++
		case !j.CreatedAt.Before(previousStart):
			previous++
		}
	}
	if recent < previous {
		score += 30
	}

	if client != nil {
		if client.Rating != nil && *client.Rating < 3 {
			score += 20
		}
		if client.PaymentIssues {
			score += 10
		}
	}

	if score > 100 {
		score = 100
	}
	return score
}

// Snapshot bundles every derived figure the profile view renders.
type Snapshot struct {
	TotalSpent       float64    `json:"total_spent"`
	LifetimeValue    float64    `json:"lifetime_value"`
	Frequency        float64    `json:"frequency"`
	DaysSinceLastJob *int       `json:"days_since_last_job,omitempty"`
	JobCount         int        `json:"job_count"`
	Status           StatusBand `json:"status"`
	RiskScore        int        `json:"risk_score"`
}

func ComputeSnapshot(client *types.Client, jobs []*types.Job, now time.Time) Snapshot {
	snap := Snapshot{
		TotalSpent:    CompletedSpend(jobs),
		LifetimeValue: LifetimeValue(jobs, now),
		Frequency:     Frequency(jobs, now),
		JobCount:      len(jobs),
		Status:        Classify(jobs, now),
		RiskScore:     RiskScore(client, jobs, now),
	}
	if days, ok := DaysSinceLastJob(jobs, now); ok {
		snap.DaysSinceLastJob = &days
	}
	return snap
}

// LastJobDate returns the most recent job creation time, or false when the
// list is empty. Export and the directory cards both key off this.
func LastJobDate(jobs []*types.Job) (time.Time, bool) {
	sorted := make([]*types.Job, 0, len(jobs))
	for _, j := range jobs {
		if j != nil {
			sorted = append(sorted, j)
		}
	}
	if len(sorted) == 0 {
		return time.Time{}, false
	}
	sort.SliceStable(sorted, func(i, k int) bool {
		return sorted[i].CreatedAt.After(sorted[k].CreatedAt)
	})
	return sorted[0].CreatedAt, true
}
