package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yardvine/yardvine-backend/internal/types"
)

func jobAt(status types.JobStatus, total float64, created time.Time) *types.Job {
	return &types.Job{ID: uuid.New(), Status: status, Total: total, CreatedAt: created}
}

func daysAgo(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}

func TestDaysSinceLastJobNoneSentinel(t *testing.T) {
	now := time.Now()
	if _, ok := DaysSinceLastJob(nil, now); ok {
		t.Fatalf("expected no sentinel for empty list")
	}
	if _, ok := DaysSinceLastJob([]*types.Job{}, now); ok {
		t.Fatalf("expected no sentinel for empty slice")
	}
	jobs := []*types.Job{
		jobAt(types.JobStatusCompleted, 100, daysAgo(now, 30)),
		jobAt(types.JobStatusScheduled, 0, daysAgo(now, 5)),
	}
	days, ok := DaysSinceLastJob(jobs, now)
	if !ok || days != 5 {
		t.Fatalf("DaysSinceLastJob: days=%d ok=%v, want 5 true", days, ok)
	}
}

func TestClassifyBoundaries(t *testing.T) {
	now := time.Now()
	cases := []struct {
		days int
		want Band
	}{
		{0, BandActive},
		{90, BandActive},
		{91, BandDormant},
		{180, BandDormant},
		{181, BandLost},
		{400, BandLost},
	}
	for _, tc := range cases {
		jobs := []*types.Job{jobAt(types.JobStatusCompleted, 10, daysAgo(now, tc.days))}
		got := Classify(jobs, now)
		if got.Band != tc.want {
			t.Fatalf("Classify at %d days: got %s want %s", tc.days, got.Band, tc.want)
		}
	}

	empty := Classify(nil, now)
	if empty.Band != BandNew || empty.Color != "blue" || empty.Description != "No jobs yet" {
		t.Fatalf("Classify empty: got %+v", empty)
	}
}

func TestClassifyBandInfo(t *testing.T) {
	now := time.Now()
	active := Classify([]*types.Job{jobAt(types.JobStatusCompleted, 1, daysAgo(now, 10))}, now)
	if active.Label != "Active" || active.Color != "green" || active.Description != "Recently booked" {
		t.Fatalf("active band: %+v", active)
	}
	dormant := Classify([]*types.Job{jobAt(types.JobStatusCompleted, 1, daysAgo(now, 120))}, now)
	if dormant.Label != "Dormant" || dormant.Color != "amber" {
		t.Fatalf("dormant band: %+v", dormant)
	}
	lost := Classify([]*types.Job{jobAt(types.JobStatusCompleted, 1, daysAgo(now, 200))}, now)
	if lost.Label != "Lost" || lost.Color != "red" {
		t.Fatalf("lost band: %+v", lost)
	}
}

func TestLifetimeValueFloorsDenominator(t *testing.T) {
	now := time.Now()
	// First job created "now": elapsed years ~0, must floor at 0.1.
	jobs := []*types.Job{jobAt(types.JobStatusCompleted, 500, now)}
	got := LifetimeValue(jobs, now)
	want := 500.0 / 0.1
	if math.Abs(got-want) > 0.5 {
		t.Fatalf("LifetimeValue with zero elapsed: got %f want %f", got, want)
	}
	if f := Frequency(jobs, now); math.Abs(f-10.0) > 0.05 {
		t.Fatalf("Frequency with zero elapsed: got %f want 10", f)
	}
}

func TestLifetimeValueScenario(t *testing.T) {
	// Single completed job, $500, 200 days ago: LTV = 500 / (200/365).
	now := time.Now()
	jobs := []*types.Job{jobAt(types.JobStatusCompleted, 500, daysAgo(now, 200))}

	band := Classify(jobs, now)
	if band.Band != BandLost {
		t.Fatalf("status: got %s want Lost", band.Band)
	}
	if days, ok := DaysSinceLastJob(jobs, now); !ok || days != 200 {
		t.Fatalf("days since last: got %d ok=%v", days, ok)
	}
	want := 500.0 / (200.0 / 365.0)
	if got := LifetimeValue(jobs, now); math.Abs(got-want) > 1.0 {
		t.Fatalf("LifetimeValue: got %f want ~%f", got, want)
	}
}

func TestZeroJobsClient(t *testing.T) {
	now := time.Now()
	if got := LifetimeValue(nil, now); got != 0 {
		t.Fatalf("LifetimeValue empty: got %f want 0", got)
	}
	if got := Frequency(nil, now); got != 0 {
		t.Fatalf("Frequency empty: got %f want 0", got)
	}
	if got := CompletedSpend(nil); got != 0 {
		t.Fatalf("CompletedSpend empty: got %f want 0", got)
	}
	snap := ComputeSnapshot(&types.Client{}, nil, now)
	if snap.Status.Band != BandNew || snap.DaysSinceLastJob != nil || snap.JobCount != 0 {
		t.Fatalf("snapshot empty: %+v", snap)
	}
}

func TestLifetimeValueOrderIndependent(t *testing.T) {
	now := time.Now()
	oldestFirst := []*types.Job{
		jobAt(types.JobStatusCompleted, 100, daysAgo(now, 400)),
		jobAt(types.JobStatusCompleted, 200, daysAgo(now, 100)),
	}
	newestFirst := []*types.Job{oldestFirst[1], oldestFirst[0]}
	if a, b := LifetimeValue(oldestFirst, now), LifetimeValue(newestFirst, now); a != b {
		t.Fatalf("LifetimeValue order dependent: %f vs %f", a, b)
	}
	if a, b := Frequency(oldestFirst, now), Frequency(newestFirst, now); a != b {
		t.Fatalf("Frequency order dependent: %f vs %f", a, b)
	}
}

func TestCompletedSpendIgnoresNonCompleted(t *testing.T) {
	now := time.Now()
	jobs := []*types.Job{
		jobAt(types.JobStatusCompleted, 100, daysAgo(now, 10)),
		jobAt(types.JobStatusScheduled, 999, daysAgo(now, 9)),
		jobAt(types.JobStatusCancelled, 999, daysAgo(now, 8)),
		jobAt(types.JobStatusOther, 999, daysAgo(now, 7)),
		jobAt(types.JobStatusCompleted, 50, daysAgo(now, 6)),
	}
	if got := CompletedSpend(jobs); got != 150 {
		t.Fatalf("CompletedSpend: got %f want 150", got)
	}
}

func TestMonthlyRevenueShape(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	jobs := []*types.Job{
		jobAt(types.JobStatusCompleted, 100, time.Date(2026, time.August, 2, 0, 0, 0, 0, time.UTC)),
		jobAt(types.JobStatusCompleted, 250, time.Date(2026, time.June, 28, 0, 0, 0, 0, time.UTC)),
		jobAt(types.JobStatusScheduled, 999, time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)),
		// Outside the window entirely.
		jobAt(types.JobStatusCompleted, 400, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)),
	}

	points := MonthlyRevenue(jobs, 6, now)
	if len(points) != 6 {
		t.Fatalf("point count: got %d want 6", len(points))
	}
	if points[0].Month != "Mar 2026" || points[5].Month != "Aug 2026" {
		t.Fatalf("window bounds: first=%q last=%q", points[0].Month, points[5].Month)
	}

	var sum float64
	for _, p := range points {
		sum += p.Revenue
	}
	if sum != 350 {
		t.Fatalf("in-window revenue: got %f want 350", sum)
	}
	if points[3].Month != "Jun 2026" || points[3].Revenue != 250 {
		t.Fatalf("june bucket: %+v", points[3])
	}
	if points[4].Revenue != 0 {
		t.Fatalf("july bucket should exclude non-completed: %+v", points[4])
	}
}

func TestMonthlyRevenueAlwaysMonthCountPoints(t *testing.T) {
	now := time.Now()
	for _, n := range []int{1, 3, 12, 24} {
		points := MonthlyRevenue(nil, n, now)
		if len(points) != n {
			t.Fatalf("monthCount=%d: got %d points", n, len(points))
		}
		for _, p := range points {
			if p.Revenue != 0 {
				t.Fatalf("empty jobs should report zero revenue: %+v", p)
			}
		}
	}
	if points := MonthlyRevenue(nil, 0, now); len(points) != 0 {
		t.Fatalf("monthCount=0: got %d points", len(points))
	}
}

func TestRiskScore(t *testing.T) {
	now := time.Now()
	lowRating := 2
	okRating := 4

	cases := []struct {
		name   string
		client *types.Client
		jobs   []*types.Job
		want   int
	}{
		{
			name:   "healthy active client",
			client: &types.Client{Rating: &okRating},
			jobs: []*types.Job{
				jobAt(types.JobStatusCompleted, 100, daysAgo(now, 30)),
				jobAt(types.JobStatusCompleted, 100, daysAgo(now, 60)),
			},
			want: 0,
		},
		{
			name:   "stale over 180",
			client: &types.Client{},
			jobs:   []*types.Job{jobAt(types.JobStatusCompleted, 100, daysAgo(now, 200))},
			// +40 stale, +30 declining (0 recent vs 1 previous)
			want: 70,
		},
		{
			name:   "moderately stale over 90",
			client: &types.Client{},
			jobs: []*types.Job{
				jobAt(types.JobStatusCompleted, 100, daysAgo(now, 120)),
			},
			want: 20,
		},
		{
			name:   "everything wrong caps at 100",
			client: &types.Client{Rating: &lowRating, PaymentIssues: true},
			jobs: []*types.Job{
				jobAt(types.JobStatusCompleted, 100, daysAgo(now, 200)),
				jobAt(types.JobStatusCompleted, 100, daysAgo(now, 210)),
			},
			// 40 + 30 + 20 + 10 = 100
			want: 100,
		},
		{
			name:   "low rating and payment issues only",
			client: &types.Client{Rating: &lowRating, PaymentIssues: true},
			jobs:   []*types.Job{jobAt(types.JobStatusCompleted, 100, daysAgo(now, 10))},
			want:   30,
		},
	}
	for _, tc := range cases {
		if got := RiskScore(tc.client, tc.jobs, now); got != tc.want {
			t.Fatalf("%s: got %d want %d", tc.name, got, tc.want)
		}
	}
}

func TestLastJobDate(t *testing.T) {
	now := time.Now()
	if _, ok := LastJobDate(nil); ok {
		t.Fatalf("expected false for empty list")
	}
	latest := daysAgo(now, 3)
	jobs := []*types.Job{
		jobAt(types.JobStatusCompleted, 1, daysAgo(now, 90)),
		jobAt(types.JobStatusScheduled, 1, latest),
		jobAt(types.JobStatusCancelled, 1, daysAgo(now, 30)),
	}
	got, ok := LastJobDate(jobs)
	if !ok || !got.Equal(latest) {
		t.Fatalf("LastJobDate: got %v ok=%v want %v", got, ok, latest)
	}
}
