package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"postdeck/internal/models"
)

// Publisher performs the actual platform post when a schedule fires.
type Publisher interface {
	Publish(ctx context.Context, post *models.SchedulePost) error
}

// Store is the subset of the schedule repository the engine touches at fire
// time. The Mark* methods only apply while the record is still scheduled and
// report whether they did.
type Store interface {
	GetByID(ctx context.Context, id int64) (*models.SchedulePost, error)
	MarkPublished(ctx context.Context, id int64, publishedAt time.Time) (bool, error)
	MarkFailed(ctx context.Context, id int64, reason string) (bool, error)
}

// Runner is the timer facility. *cron.Cron satisfies it.
type Runner interface {
	AddFunc(spec string, cmd func()) (cron.EntryID, error)
	Remove(id cron.EntryID)
}

// Engine owns the mapping from scheduled posts to live cron entries. A record
// in scheduled status has exactly one entry; every other status has none.
//
// The trigger is a calendar recurrence (minute hour dom month), so it would
// fire again next year. fire removes its own entry before anything else to
// keep execution at-most-once. Each registration carries a generation number;
// a callback dispatched for a trigger that Reschedule has since replaced finds
// a newer generation in the table and must not touch it.
type Engine struct {
	runner    Runner
	store     Store
	publisher Publisher
	timeout   time.Duration

	mu      sync.Mutex
	gen     uint64
	entries map[int64]entry
}

type entry struct {
	entryID cron.EntryID
	gen     uint64
}

func New(runner Runner, store Store, publisher Publisher, publishTimeout time.Duration) *Engine {
	return &Engine{
		runner:    runner,
		store:     store,
		publisher: publisher,
		timeout:   publishTimeout,
		entries:   make(map[int64]entry),
	}
}

// CronExpr renders an absolute instant as a one-shot trigger expression,
// day-of-week unconstrained. Fields are taken in UTC to match the runner's
// location.
func CronExpr(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%d %d %d %d *", t.Minute(), t.Hour(), t.Day(), int(t.Month()))
}

// Schedule registers the timer for a newly created record.
func (e *Engine) Schedule(id int64, at time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.gen++
	gen := e.gen
	entryID, err := e.runner.AddFunc(CronExpr(at), func() { e.fire(id, gen) })
	if err != nil {
		return fmt.Errorf("register trigger: %w", err)
	}
	e.entries[id] = entry{entryID: entryID, gen: gen}
	return nil
}

// Reschedule swaps the record's timer for one at the new instant. The swap
// happens under the table lock, so there is no window with two entries or
// with none. Returns false when the record no longer holds an entry, meaning
// it fired or was cancelled in the meantime.
func (e *Engine) Reschedule(id int64, at time.Time) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	old, ok := e.entries[id]
	if !ok {
		return false, nil
	}

	e.gen++
	gen := e.gen
	entryID, err := e.runner.AddFunc(CronExpr(at), func() { e.fire(id, gen) })
	if err != nil {
		return false, fmt.Errorf("register trigger: %w", err)
	}
	e.runner.Remove(old.entryID)
	e.entries[id] = entry{entryID: entryID, gen: gen}
	return true, nil
}

// Unschedule destroys the record's timer. Returns false when no entry exists,
// which callers treat as "fire already claimed it".
func (e *Engine) Unschedule(id int64) bool {
	e.mu.Lock()
	ent, ok := e.entries[id]
	if ok {
		delete(e.entries, id)
	}
	e.mu.Unlock()

	if ok {
		e.runner.Remove(ent.entryID)
	}
	return ok
}

// claim removes the record's entry only if it still belongs to the caller's
// registration. A stale callback whose trigger was replaced loses the claim.
func (e *Engine) claim(id int64, gen uint64) bool {
	e.mu.Lock()
	ent, ok := e.entries[id]
	if !ok || ent.gen != gen {
		e.mu.Unlock()
		return false
	}
	delete(e.entries, id)
	e.mu.Unlock()

	e.runner.Remove(ent.entryID)
	return true
}

// HasEntry reports whether a live timer exists for the record.
func (e *Engine) HasEntry(id int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.entries[id]
	return ok
}

// fire is invoked by the runner when the trigger matches. It claims and
// destroys its own entry first; a duplicate trigger finds no entry and a
// stale trigger finds a newer generation, both no-op. Publish errors land
// on the record, they are never propagated.
func (e *Engine) fire(id int64, gen uint64) {
	if !e.claim(id, gen) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	post, err := e.store.GetByID(ctx, id)
	if err != nil || post == nil {
		return
	}
	if post.Status != models.ScheduleStatusScheduled {
		return
	}

	if err := e.publish(ctx, post); err != nil {
		slog.Error("publish failed", "schedule_id", id, "error", err)
		if _, err := e.store.MarkFailed(ctx, id, err.Error()); err != nil {
			slog.Error("record failure", "schedule_id", id, "error", err)
		}
		return
	}

	if _, err := e.store.MarkPublished(ctx, id, time.Now().UTC()); err != nil {
		slog.Error("record publish", "schedule_id", id, "error", err)
		return
	}
	slog.Info("schedule published", "schedule_id", id, "platforms", post.Post.Platforms)
}

// publish bounds the collaborator call; a hung publisher counts as a failed
// transition instead of wedging the callback.
func (e *Engine) publish(ctx context.Context, post *models.SchedulePost) error {
	done := make(chan error, 1)
	go func() { done <- e.publisher.Publish(ctx, post) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("publish timed out after %s", e.timeout)
	}
}
