package directory

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yardvine/yardvine-backend/internal/metrics"
	"github.com/yardvine/yardvine-backend/internal/types"
)

func mkClient(name, email, phone string, tags []string, created time.Time) *types.Client {
	c := &types.Client{ID: uuid.New(), Name: name, Email: email, Phone: phone, CreatedAt: created}
	if err := c.SetTagList(tags); err != nil {
		panic(err)
	}
	return c
}

func mkJob(status types.JobStatus, total float64, created time.Time) *types.Job {
	return &types.Job{ID: uuid.New(), Status: status, Total: total, CreatedAt: created}
}

func TestSearchPredicate(t *testing.T) {
	now := time.Now()
	clients := []*types.Client{
		mkClient("Alice Hart", "alice@example.com", "555-0101", nil, now),
		mkClient("Bob Stone", "bob@example.com", "555-0202", nil, now),
	}
	jobs := map[uuid.UUID][]*types.Job{}

	got := Apply(clients, jobs, Filter{Status: StatusAll}, "alice", now)
	if len(got) != 1 || got[0].Name != "Alice Hart" {
		t.Fatalf("name search: got %d results", len(got))
	}
	got = Apply(clients, jobs, Filter{Status: StatusAll}, "BOB@EXAMPLE", now)
	if len(got) != 1 || got[0].Name != "Bob Stone" {
		t.Fatalf("email search should be case-insensitive: got %d results", len(got))
	}
	got = Apply(clients, jobs, Filter{Status: StatusAll}, "0202", now)
	if len(got) != 1 || got[0].Name != "Bob Stone" {
		t.Fatalf("phone substring search: got %d results", len(got))
	}
	got = Apply(clients, jobs, Filter{Status: StatusAll}, "", now)
	if len(got) != 2 {
		t.Fatalf("empty search should pass everyone: got %d", len(got))
	}
}

func TestStatusAndSpentScenario(t *testing.T) {
	// Three-client fixture: only Active clients survive, ordered by
	// descending completed spend.
	now := time.Now()
	a := mkClient("A", "", "", nil, now)
	b := mkClient("B", "", "", nil, now)
	c := mkClient("C", "", "", nil, now)
	jobs := map[uuid.UUID][]*types.Job{
		a.ID: {mkJob(types.JobStatusCompleted, 100, now.AddDate(0, 0, -10))},
		b.ID: {mkJob(types.JobStatusCompleted, 900, now.AddDate(0, 0, -20))},
		c.ID: {mkJob(types.JobStatusCompleted, 500, now.AddDate(0, 0, -300))},
	}

	got := Apply([]*types.Client{a, b, c}, jobs, Filter{Status: StatusActive, SortBy: SortSpent}, "", now)
	if len(got) != 2 {
		t.Fatalf("active filter: got %d clients", len(got))
	}
	if got[0].Name != "B" || got[1].Name != "A" {
		t.Fatalf("spent sort: got %s, %s", got[0].Name, got[1].Name)
	}
}

func TestTagPredicateAnyMatch(t *testing.T) {
	now := time.Now()
	a := mkClient("A", "", "", []string{"lawn", "vip"}, now)
	b := mkClient("B", "", "", []string{"plumbing"}, now)
	c := mkClient("C", "", "", nil, now)
	jobs := map[uuid.UUID][]*types.Job{}

	got := Apply([]*types.Client{a, b, c}, jobs, Filter{Status: StatusAll, Tags: []string{"vip", "plumbing"}}, "", now)
	if len(got) != 2 {
		t.Fatalf("any-tag match: got %d", len(got))
	}
	got = Apply([]*types.Client{a, b, c}, jobs, Filter{Status: StatusAll, Tags: nil}, "", now)
	if len(got) != 3 {
		t.Fatalf("empty tag filter passes everyone: got %d", len(got))
	}
}

func TestSortStabilityOnRecent(t *testing.T) {
	now := time.Now()
	shared := now.AddDate(0, 0, -1)
	clients := make([]*types.Client, 0, 10)
	for i := 0; i < 10; i++ {
		clients = append(clients, mkClient(fmt.Sprintf("C%d", i), "", "", nil, shared))
	}
	got := Apply(clients, map[uuid.UUID][]*types.Job{}, Filter{Status: StatusAll, SortBy: SortRecent}, "", now)
	if len(got) != 10 {
		t.Fatalf("got %d", len(got))
	}
	for i, c := range got {
		if c.Name != fmt.Sprintf("C%d", i) {
			t.Fatalf("stable sort reordered equal timestamps at %d: %s", i, c.Name)
		}
	}
}

func TestNameSortAscending(t *testing.T) {
	now := time.Now()
	clients := []*types.Client{
		mkClient("carol", "", "", nil, now),
		mkClient("", "", "", nil, now),
		mkClient("Bob", "", "", nil, now),
		mkClient("alice", "", "", nil, now),
	}
	got := Apply(clients, map[uuid.UUID][]*types.Job{}, Filter{Status: StatusAll, SortBy: SortName}, "", now)
	names := make([]string, 0, len(got))
	for _, c := range got {
		names = append(names, c.Name)
	}
	want := []string{"", "alice", "Bob", "carol"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("name sort: got %v want %v", names, want)
		}
	}
}

func TestJobsSortDescendingAllStatuses(t *testing.T) {
	now := time.Now()
	a := mkClient("A", "", "", nil, now)
	b := mkClient("B", "", "", nil, now)
	jobs := map[uuid.UUID][]*types.Job{
		a.ID: {
			mkJob(types.JobStatusCancelled, 0, now),
			mkJob(types.JobStatusScheduled, 0, now),
			mkJob(types.JobStatusCompleted, 10, now),
		},
		b.ID: {mkJob(types.JobStatusCompleted, 5000, now)},
	}
	got := Apply([]*types.Client{b, a}, jobs, Filter{Status: StatusAll, SortBy: SortJobs}, "", now)
	if got[0].Name != "A" {
		t.Fatalf("jobs sort counts all statuses: got %s first", got[0].Name)
	}
}

// Property test: Apply must agree with an independent brute-force
// evaluation of the four predicates across random filter combinations.
func TestFilterAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	now := time.Now()

	tagPool := []string{"lawn", "hvac", "vip", "plumbing", "roof"}
	statuses := []StatusFilter{StatusAll, StatusActive, StatusDormant, StatusLost}
	jobStatuses := []types.JobStatus{
		types.JobStatusScheduled, types.JobStatusCompleted,
		types.JobStatusCancelled, types.JobStatusOther,
	}

	for trial := 0; trial < 50; trial++ {
		clients := make([]*types.Client, 0, 20)
		jobsByClient := map[uuid.UUID][]*types.Job{}
		for i := 0; i < 20; i++ {
			tags := make([]string, 0, 2)
			for _, tag := range tagPool {
				if rng.Intn(3) == 0 {
					tags = append(tags, tag)
				}
			}
			c := mkClient(
				fmt.Sprintf("Client %c%d", 'A'+rng.Intn(26), i),
				fmt.Sprintf("c%d@example.com", i),
				fmt.Sprintf("555-01%02d", i),
				tags,
				now.AddDate(0, 0, -rng.Intn(800)),
			)
			clients = append(clients, c)
			n := rng.Intn(5)
			for k := 0; k < n; k++ {
				jobsByClient[c.ID] = append(jobsByClient[c.ID], mkJob(
					jobStatuses[rng.Intn(len(jobStatuses))],
					float64(rng.Intn(2000)),
					now.AddDate(0, 0, -rng.Intn(400)),
				))
			}
		}

		f := Filter{
			Status:   statuses[rng.Intn(len(statuses))],
			MinSpent: float64(rng.Intn(1500)),
			SortBy:   SortRecent,
		}
		if rng.Intn(2) == 0 {
			f.Tags = []string{tagPool[rng.Intn(len(tagPool))]}
		}
		search := ""
		if rng.Intn(3) == 0 {
			search = fmt.Sprintf("c%d@", rng.Intn(20))
		}

		got := Apply(clients, jobsByClient, f, search, now)
		inResult := map[uuid.UUID]bool{}
		for _, c := range got {
			inResult[c.ID] = true
		}

		for _, c := range clients {
			jobs := jobsByClient[c.ID]
			want := bruteForcePass(c, jobs, f, search, now)
			if want != inResult[c.ID] {
				t.Fatalf("trial %d: client %s membership=%v want=%v (filter=%+v search=%q)",
					trial, c.Name, inResult[c.ID], want, f, search)
			}
		}
	}
}

func bruteForcePass(c *types.Client, jobs []*types.Job, f Filter, search string, now time.Time) bool {
	s := strings.ToLower(search)
	searchOK := s == "" ||
		strings.Contains(strings.ToLower(c.Name), s) ||
		strings.Contains(strings.ToLower(c.Email), s) ||
		strings.Contains(strings.ToLower(c.Phone), s)

	statusOK := f.Status == StatusAll || f.Status == ""
	if !statusOK {
		statusOK = strings.EqualFold(metrics.Classify(jobs, now).Label, string(f.Status))
	}

	tagsOK := len(f.Tags) == 0
	if !tagsOK {
		for _, w := range f.Tags {
			for _, h := range c.TagList() {
				if strings.EqualFold(w, h) {
					tagsOK = true
				}
			}
		}
	}

	spentOK := metrics.CompletedSpend(jobs) >= f.MinSpent
	return searchOK && statusOK && tagsOK && spentOK
}

func TestParseHelpers(t *testing.T) {
	if ParseStatusFilter("ACTIVE") != StatusActive {
		t.Fatalf("ParseStatusFilter case fold")
	}
	if ParseStatusFilter("bogus") != StatusAll {
		t.Fatalf("unknown status widens to all")
	}
	if ParseSortKey("Spent") != SortSpent || ParseSortKey("") != SortRecent {
		t.Fatalf("ParseSortKey defaults")
	}
}
