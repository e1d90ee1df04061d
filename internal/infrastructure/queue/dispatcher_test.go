package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/revature/reimbursement-system/internal/core/domain"
)

type stubEventRepo struct {
	mu       sync.Mutex
	events   []domain.TicketEvent
	inserted chan struct{}
	err      error
}

func newStubEventRepo(capacity int) *stubEventRepo {
	return &stubEventRepo{inserted: make(chan struct{}, capacity)}
}

func (r *stubEventRepo) InsertEvent(_ context.Context, event *domain.TicketEvent) error {
	r.mu.Lock()
	r.events = append(r.events, *event)
	err := r.err
	r.mu.Unlock()
	r.inserted <- struct{}{}
	return err
}

func (r *stubEventRepo) setErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *stubEventRepo) recorded() []domain.TicketEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.TicketEvent(nil), r.events...)
}

func waitForInserts(t *testing.T, repo *stubEventRepo, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-repo.inserted:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for insert %d of %d", i+1, n)
		}
	}
}

func TestDispatcher_PersistsEvents(t *testing.T) {
	repo := newStubEventRepo(4)
	d := NewDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	now := time.Now()
	d.Record(domain.TicketEvent{TicketID: 1, ManagerID: 1, Decision: domain.DecisionApprove, DecidedAt: now})
	d.Record(domain.TicketEvent{TicketID: 2, ManagerID: 1, Decision: domain.DecisionDeny, DecidedAt: now})

	waitForInserts(t, repo, 2)

	events := repo.recorded()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	seen := map[int64]domain.Decision{}
	for _, e := range events {
		seen[e.TicketID] = e.Decision
	}
	if seen[1] != domain.DecisionApprove || seen[2] != domain.DecisionDeny {
		t.Errorf("unexpected events: %+v", events)
	}
}

// Events for the same ticket always land on the same worker, so they are
// written in the order they were recorded.
func TestDispatcher_SameTicketKeepsOrder(t *testing.T) {
	repo := newStubEventRepo(8)
	d := NewDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	base := time.Now()
	for i := 0; i < 5; i++ {
		d.Record(domain.TicketEvent{TicketID: 7, ManagerID: 1, Decision: domain.DecisionApprove, DecidedAt: base.Add(time.Duration(i) * time.Second)})
	}
	waitForInserts(t, repo, 5)

	events := repo.recorded()
	for i := 1; i < len(events); i++ {
		if events[i].DecidedAt.Before(events[i-1].DecidedAt) {
			t.Fatalf("events out of order: %+v", events)
		}
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(4, newStubEventRepo(1), zerolog.Nop())

	for _, id := range []int64{0, 1, 7, 8, 1000} {
		first := d.shardIndex(id)
		if second := d.shardIndex(id); second != first {
			t.Fatalf("shard index for %d changed: %d then %d", id, first, second)
		}
		if first < 0 || first >= 4 {
			t.Fatalf("shard index for %d out of range: %d", id, first)
		}
	}
}

// A failing insert must not stop the worker.
func TestDispatcher_SurvivesWriteFailures(t *testing.T) {
	repo := newStubEventRepo(4)
	repo.setErr(errors.New("db unavailable"))
	d := NewDispatcher(1, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Record(domain.TicketEvent{TicketID: 1, Decision: domain.DecisionApprove})
	waitForInserts(t, repo, 1)

	repo.setErr(nil)
	d.Record(domain.TicketEvent{TicketID: 1, Decision: domain.DecisionDeny})
	waitForInserts(t, repo, 1)

	if len(repo.recorded()) != 2 {
		t.Fatalf("worker must keep consuming after a failed write")
	}
}

func TestNewDispatcher_DefaultsWorkerCount(t *testing.T) {
	d := NewDispatcher(0, newStubEventRepo(1), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("worker count = %d, want %d", len(d.workers), defaultWorkers)
	}
}
