package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"postdeck/internal/models"
	"postdeck/internal/repository"
	"postdeck/internal/transfer"
)

// ScheduleEngine is the timer side of the scheduler. *scheduler.Engine
// satisfies it; tests substitute a fake.
type ScheduleEngine interface {
	Schedule(id int64, at time.Time) error
	Reschedule(id int64, at time.Time) (bool, error)
	Unschedule(id int64) bool
}

type ScheduleService interface {
	Create(ctx context.Context, userID int64, sc *transfer.ScheduleCreation) (*models.SchedulePost, error)
	Update(ctx context.Context, userID, id int64, su *transfer.ScheduleUpdate) (*models.SchedulePost, error)
	Cancel(ctx context.Context, userID, id int64) error
	Get(ctx context.Context, userID, id int64) (*models.SchedulePost, error)
	List(ctx context.Context, userID int64) ([]*models.SchedulePost, error)
	ListUpcoming(ctx context.Context, userID int64) ([]*models.SchedulePost, error)
	Calendar(ctx context.Context, userID int64, month, year int) (*transfer.CalendarView, error)
	OptimalTimes(platform string) (map[string]models.OptimalTimes, bool)
}

type scheduleService struct {
	repo   repository.ScheduleRepository
	engine ScheduleEngine
	now    func() time.Time
}

func NewScheduleService(repo repository.ScheduleRepository, engine ScheduleEngine) ScheduleService {
	return &scheduleService{repo: repo, engine: engine, now: time.Now}
}

// scheduledTimeFormats are accepted on the wire; the dashboard form sends the
// minute-precision variant, API callers send RFC 3339.
var scheduledTimeFormats = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"}

func parseScheduledTime(value string) (time.Time, error) {
	for _, layout := range scheduledTimeFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid scheduled time %q", value)
}

func (s *scheduleService) Create(ctx context.Context, userID int64, sc *transfer.ScheduleCreation) (*models.SchedulePost, error) {
	if sc.Content == "" || len(sc.Platforms) == 0 || sc.ScheduledTime == "" {
		return nil, &ValidationError{Reason: "content, platforms, and scheduled time are required"}
	}

	scheduledTime, err := parseScheduledTime(sc.ScheduledTime)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}
	if !scheduledTime.After(s.now()) {
		return nil, &ValidationError{Reason: "scheduled time must be in the future"}
	}

	schedule := &models.SchedulePost{
		UserID: userID,
		Post: models.PostContent{
			Content:   sc.Content,
			Platforms: sc.Platforms,
			Images:    emptyIfNil(sc.Images),
			Hashtags:  emptyIfNil(sc.Hashtags),
		},
		ScheduledTime: scheduledTime,
		Recurring:     sc.Recurring,
		Status:        models.ScheduleStatusScheduled,
		CreatedAt:     s.now().UTC(),
	}

	id, err := s.repo.Create(ctx, schedule)
	if err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}

	if err := s.engine.Schedule(id, scheduledTime); err != nil {
		// The record must not linger as scheduled without a timer.
		if _, mErr := s.repo.MarkCancelled(ctx, id); mErr != nil {
			slog.Error("roll back schedule", "schedule_id", id, "error", mErr)
		}
		return nil, fmt.Errorf("schedule trigger: %w", err)
	}

	slog.Info("post scheduled", "schedule_id", id, "user_id", userID, "at", scheduledTime)
	return schedule, nil
}

func (s *scheduleService) Update(ctx context.Context, userID, id int64, su *transfer.ScheduleUpdate) (*models.SchedulePost, error) {
	schedule, err := s.repo.GetByIDAndUserID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, ErrNotFound
	}
	if schedule.Status != models.ScheduleStatusScheduled {
		return nil, ErrInvalidState
	}

	if su.Content != nil {
		schedule.Post.Content = *su.Content
	}
	if su.Platforms != nil {
		if len(su.Platforms) == 0 {
			return nil, &ValidationError{Reason: "platforms cannot be empty"}
		}
		schedule.Post.Platforms = su.Platforms
	}
	if su.Images != nil {
		schedule.Post.Images = su.Images
	}
	if su.Hashtags != nil {
		schedule.Post.Hashtags = su.Hashtags
	}
	if su.Recurring != nil {
		schedule.Recurring = su.Recurring
	}

	if su.ScheduledTime != nil {
		scheduledTime, err := parseScheduledTime(*su.ScheduledTime)
		if err != nil {
			return nil, &ValidationError{Reason: err.Error()}
		}
		if !scheduledTime.After(s.now()) {
			return nil, &ValidationError{Reason: "scheduled time must be in the future"}
		}

		ok, err := s.engine.Reschedule(id, scheduledTime)
		if err != nil {
			return nil, fmt.Errorf("reschedule trigger: %w", err)
		}
		if !ok {
			return nil, ErrInvalidState
		}
		schedule.ScheduledTime = scheduledTime
	}

	applied, err := s.repo.UpdateScheduled(ctx, schedule)
	if err != nil {
		return nil, err
	}
	if !applied {
		// The record fired between the state check and the write; the new
		// timer, if any, must not stay behind.
		s.engine.Unschedule(id)
		return nil, ErrInvalidState
	}

	return schedule, nil
}

func (s *scheduleService) Cancel(ctx context.Context, userID, id int64) error {
	schedule, err := s.repo.GetByIDAndUserID(ctx, id, userID)
	if err != nil {
		return err
	}
	if schedule == nil {
		return ErrNotFound
	}
	if schedule.Status != models.ScheduleStatusScheduled {
		return ErrInvalidState
	}

	// Fire claims the handle before publishing; losing the claim means the
	// publish outcome wins over this cancel.
	if !s.engine.Unschedule(id) {
		return ErrInvalidState
	}

	applied, err := s.repo.MarkCancelled(ctx, id)
	if err != nil {
		return err
	}
	if !applied {
		return ErrInvalidState
	}

	slog.Info("schedule cancelled", "schedule_id", id, "user_id", userID)
	return nil
}

func (s *scheduleService) Get(ctx context.Context, userID, id int64) (*models.SchedulePost, error) {
	schedule, err := s.repo.GetByIDAndUserID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, ErrNotFound
	}
	return schedule, nil
}

func (s *scheduleService) List(ctx context.Context, userID int64) ([]*models.SchedulePost, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *scheduleService) ListUpcoming(ctx context.Context, userID int64) ([]*models.SchedulePost, error) {
	schedules, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	upcoming := make([]*models.SchedulePost, 0)
	for _, schedule := range schedules {
		if schedule.Status == models.ScheduleStatusScheduled && schedule.ScheduledTime.After(now) {
			upcoming = append(upcoming, schedule)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].ScheduledTime.Before(upcoming[j].ScheduledTime)
	})
	return upcoming, nil
}

func (s *scheduleService) Calendar(ctx context.Context, userID int64, month, year int) (*transfer.CalendarView, error) {
	now := s.now().UTC()
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	schedules, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]*models.SchedulePost)
	for _, schedule := range schedules {
		t := schedule.ScheduledTime.UTC()
		if t.Before(start) || !t.Before(end) {
			continue
		}
		key := t.Format("2006-01-02")
		grouped[key] = append(grouped[key], schedule)
	}

	return &transfer.CalendarView{Month: month, Year: year, Schedules: grouped}, nil
}

func (s *scheduleService) OptimalTimes(platform string) (map[string]models.OptimalTimes, bool) {
	if platform == "" {
		return optimalTimes, true
	}
	times, ok := optimalTimes[platform]
	if !ok {
		return nil, false
	}
	return map[string]models.OptimalTimes{platform: times}, true
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// Reference engagement windows per platform, surfaced to the composer UI.
var optimalTimes = map[string]models.OptimalTimes{
	"facebook": {
		Weekdays: []models.OptimalTimeSlot{{Time: "09:00", Engagement: 85}, {Time: "13:00", Engagement: 92}, {Time: "15:00", Engagement: 88}},
		Weekends: []models.OptimalTimeSlot{{Time: "10:00", Engagement: 78}, {Time: "14:00", Engagement: 82}},
	},
	"instagram": {
		Weekdays: []models.OptimalTimeSlot{{Time: "11:00", Engagement: 90}, {Time: "14:00", Engagement: 95}, {Time: "17:00", Engagement: 87}},
		Weekends: []models.OptimalTimeSlot{{Time: "10:00", Engagement: 85}, {Time: "13:00", Engagement: 89}},
	},
	"twitter": {
		Weekdays: []models.OptimalTimeSlot{{Time: "09:00", Engagement: 88}, {Time: "12:00", Engagement: 91}, {Time: "18:00", Engagement: 86}},
		Weekends: []models.OptimalTimeSlot{{Time: "11:00", Engagement: 80}, {Time: "16:00", Engagement: 83}},
	},
	"linkedin": {
		Weekdays: []models.OptimalTimeSlot{{Time: "08:00", Engagement: 89}, {Time: "12:00", Engagement: 93}, {Time: "17:00", Engagement: 87}},
		Weekends: []models.OptimalTimeSlot{{Time: "10:00", Engagement: 70}},
	},
}
