package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postdeck/internal/models"
	"postdeck/internal/repository"
)

// fakeRunner captures registered callbacks so tests can fire them on demand.
type fakeRunner struct {
	mu   sync.Mutex
	next cron.EntryID
	jobs map[cron.EntryID]func()
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{jobs: make(map[cron.EntryID]func())}
}

func (r *fakeRunner) AddFunc(spec string, cmd func()) (cron.EntryID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.jobs[r.next] = cmd
	return r.next, nil
}

func (r *fakeRunner) Remove(id cron.EntryID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.jobs, id)
}

func (r *fakeRunner) jobCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.jobs)
}

// fire invokes the most recently registered callback, like a trigger match.
func (r *fakeRunner) fire() func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.jobs[r.next]
}

type fakePublisher struct {
	mu    sync.Mutex
	calls int
	err   error
	delay time.Duration
}

func (p *fakePublisher) Publish(ctx context.Context, post *models.SchedulePost) error {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	return p.err
}

func (p *fakePublisher) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func seedSchedule(t *testing.T, repo repository.ScheduleRepository) *models.SchedulePost {
	t.Helper()
	schedule := &models.SchedulePost{
		UserID: 1,
		Post: models.PostContent{
			Content:   "hello",
			Platforms: []string{"twitter"},
		},
		ScheduledTime: time.Now().Add(time.Hour).UTC(),
		Status:        models.ScheduleStatusScheduled,
		CreatedAt:     time.Now().UTC(),
	}
	_, err := repo.Create(context.Background(), schedule)
	require.NoError(t, err)
	return schedule
}

func TestCronExpr(t *testing.T) {
	at := time.Date(2025, time.December, 25, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "30 14 25 12 *", CronExpr(at))
}

func TestCronExprConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	at := time.Date(2025, time.June, 1, 0, 30, 0, 0, loc)
	assert.Equal(t, "30 23 31 5 *", CronExpr(at))
}

func TestScheduleRegistersExactlyOneEntry(t *testing.T) {
	runner := newFakeRunner()
	repo := repository.NewScheduleRepository()
	engine := New(runner, repo, &fakePublisher{}, time.Second)

	schedule := seedSchedule(t, repo)
	require.NoError(t, engine.Schedule(schedule.ID, schedule.ScheduledTime))

	assert.True(t, engine.HasEntry(schedule.ID))
	assert.Equal(t, 1, runner.jobCount())
}

func TestFirePublishesAndDestroysHandle(t *testing.T) {
	runner := newFakeRunner()
	repo := repository.NewScheduleRepository()
	pub := &fakePublisher{}
	engine := New(runner, repo, pub, time.Second)

	schedule := seedSchedule(t, repo)
	require.NoError(t, engine.Schedule(schedule.ID, schedule.ScheduledTime))

	runner.fire()()

	assert.Equal(t, 1, pub.callCount())
	assert.False(t, engine.HasEntry(schedule.ID))
	assert.Equal(t, 0, runner.jobCount())

	got, err := repo.GetByID(context.Background(), schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ScheduleStatusPublished, got.Status)
	require.NotNil(t, got.PublishedAt)
	assert.Nil(t, got.Error)
}

func TestDuplicateFireIsNoop(t *testing.T) {
	runner := newFakeRunner()
	repo := repository.NewScheduleRepository()
	pub := &fakePublisher{}
	engine := New(runner, repo, pub, time.Second)

	schedule := seedSchedule(t, repo)
	require.NoError(t, engine.Schedule(schedule.ID, schedule.ScheduledTime))

	cb := runner.fire()
	cb()
	cb() // simulated duplicate trigger

	assert.Equal(t, 1, pub.callCount())

	got, err := repo.GetByID(context.Background(), schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ScheduleStatusPublished, got.Status)
}

func TestFireFailureMarksFailed(t *testing.T) {
	runner := newFakeRunner()
	repo := repository.NewScheduleRepository()
	pub := &fakePublisher{err: errors.New("twitter api rejected the post")}
	engine := New(runner, repo, pub, time.Second)

	schedule := seedSchedule(t, repo)
	require.NoError(t, engine.Schedule(schedule.ID, schedule.ScheduledTime))

	runner.fire()()

	got, err := repo.GetByID(context.Background(), schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ScheduleStatusFailed, got.Status)
	require.NotNil(t, got.Error)
	assert.Equal(t, "twitter api rejected the post", *got.Error)
	assert.Nil(t, got.PublishedAt)

	// failures are not retried
	assert.Equal(t, 0, runner.jobCount())
	assert.False(t, engine.HasEntry(schedule.ID))
}

func TestFirePublishTimeout(t *testing.T) {
	runner := newFakeRunner()
	repo := repository.NewScheduleRepository()
	pub := &fakePublisher{delay: 200 * time.Millisecond}
	engine := New(runner, repo, pub, 10*time.Millisecond)

	schedule := seedSchedule(t, repo)
	require.NoError(t, engine.Schedule(schedule.ID, schedule.ScheduledTime))

	runner.fire()()

	got, err := repo.GetByID(context.Background(), schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ScheduleStatusFailed, got.Status)
	require.NotNil(t, got.Error)
	assert.Contains(t, *got.Error, "timed out")
}

func TestUnscheduleClaimsHandle(t *testing.T) {
	runner := newFakeRunner()
	repo := repository.NewScheduleRepository()
	pub := &fakePublisher{}
	engine := New(runner, repo, pub, time.Second)

	schedule := seedSchedule(t, repo)
	require.NoError(t, engine.Schedule(schedule.ID, schedule.ScheduledTime))

	cb := runner.fire()
	assert.True(t, engine.Unschedule(schedule.ID))
	assert.False(t, engine.Unschedule(schedule.ID))

	// a late trigger after the handle is gone must not publish
	cb()
	assert.Equal(t, 0, pub.callCount())
	assert.Equal(t, 0, runner.jobCount())
}

func TestRescheduleSwapsHandleAtomically(t *testing.T) {
	runner := newFakeRunner()
	repo := repository.NewScheduleRepository()
	pub := &fakePublisher{}
	engine := New(runner, repo, pub, time.Second)

	schedule := seedSchedule(t, repo)
	require.NoError(t, engine.Schedule(schedule.ID, schedule.ScheduledTime))

	ok, err := engine.Reschedule(schedule.ID, schedule.ScheduledTime.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, 1, runner.jobCount())
	assert.True(t, engine.HasEntry(schedule.ID))

	runner.fire()()
	assert.Equal(t, 1, pub.callCount())
}

func TestStaleFireAfterRescheduleIsNoop(t *testing.T) {
	runner := newFakeRunner()
	repo := repository.NewScheduleRepository()
	pub := &fakePublisher{}
	engine := New(runner, repo, pub, time.Second)

	schedule := seedSchedule(t, repo)
	require.NoError(t, engine.Schedule(schedule.ID, schedule.ScheduledTime))

	// the old trigger's callback is already dispatched when the swap happens
	stale := runner.fire()

	ok, err := engine.Reschedule(schedule.ID, schedule.ScheduledTime.Add(24*time.Hour))
	require.NoError(t, err)
	require.True(t, ok)

	stale()

	assert.Equal(t, 0, pub.callCount())
	assert.True(t, engine.HasEntry(schedule.ID))
	assert.Equal(t, 1, runner.jobCount())

	got, err := repo.GetByID(context.Background(), schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ScheduleStatusScheduled, got.Status)

	// the replacement trigger still publishes
	runner.fire()()
	assert.Equal(t, 1, pub.callCount())

	got, err = repo.GetByID(context.Background(), schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ScheduleStatusPublished, got.Status)
}

func TestRescheduleAfterFireReturnsFalse(t *testing.T) {
	runner := newFakeRunner()
	repo := repository.NewScheduleRepository()
	engine := New(runner, repo, &fakePublisher{}, time.Second)

	schedule := seedSchedule(t, repo)
	require.NoError(t, engine.Schedule(schedule.ID, schedule.ScheduledTime))

	runner.fire()()

	ok, err := engine.Reschedule(schedule.ID, time.Now().Add(2*time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, runner.jobCount())
}

func TestFireOnMissingRecordIsNoop(t *testing.T) {
	runner := newFakeRunner()
	repo := repository.NewScheduleRepository()
	pub := &fakePublisher{}
	engine := New(runner, repo, pub, time.Second)

	require.NoError(t, engine.Schedule(42, time.Now().Add(time.Hour)))
	runner.fire()()

	assert.Equal(t, 0, pub.callCount())
	assert.False(t, engine.HasEntry(42))
}

func TestFireOnCancelledRecordIsNoop(t *testing.T) {
	runner := newFakeRunner()
	repo := repository.NewScheduleRepository()
	pub := &fakePublisher{}
	engine := New(runner, repo, pub, time.Second)

	schedule := seedSchedule(t, repo)
	require.NoError(t, engine.Schedule(schedule.ID, schedule.ScheduledTime))

	_, err := repo.MarkCancelled(context.Background(), schedule.ID)
	require.NoError(t, err)

	runner.fire()()

	assert.Equal(t, 0, pub.callCount())
	got, err := repo.GetByID(context.Background(), schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ScheduleStatusCancelled, got.Status)
}
