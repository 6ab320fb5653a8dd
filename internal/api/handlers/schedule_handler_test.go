package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postdeck/internal/models"
	"postdeck/internal/repository"
	"postdeck/internal/scheduler"
	"postdeck/internal/service"
)

type stubRunner struct {
	next cron.EntryID
}

func (r *stubRunner) AddFunc(spec string, cmd func()) (cron.EntryID, error) {
	r.next++
	return r.next, nil
}

func (r *stubRunner) Remove(id cron.EntryID) {}

type stubPublisher struct{}

func (stubPublisher) Publish(ctx context.Context, post *models.SchedulePost) error { return nil }

func newScheduleApp(t *testing.T) *fiber.App {
	t.Helper()

	repo := repository.NewScheduleRepository()
	engine := scheduler.New(&stubRunner{}, repo, stubPublisher{}, time.Second)
	svc := service.NewScheduleService(repo, engine)
	handler := NewScheduleHandler(svc, validator.New())

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "1")
		return c.Next()
	})

	api := app.Group("/api")
	api.Get("/schedule", handler.List)
	api.Post("/schedule", handler.Create)
	api.Get("/schedule/upcoming", handler.Upcoming)
	api.Get("/schedule/calendar", handler.Calendar)
	api.Get("/schedule/optimal-times", handler.OptimalTimes)
	api.Get("/schedule/:id", handler.Get)
	api.Put("/schedule/:id", handler.Update)
	api.Delete("/schedule/:id", handler.Cancel)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	payload := make(map[string]json.RawMessage)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}
	return resp, payload
}

func createViaAPI(t *testing.T, app *fiber.App, at time.Time) int64 {
	t.Helper()

	body := fmt.Sprintf(`{"content":"hello","platforms":["twitter"],"scheduledTime":%q}`, at.Format(time.RFC3339))
	resp, payload := doJSON(t, app, http.MethodPost, "/api/schedule", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var schedule struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(payload["schedule"], &schedule))
	require.NotZero(t, schedule.ID)
	return schedule.ID
}

func TestScheduleCreateEndpoint(t *testing.T) {
	app := newScheduleApp(t)

	at := time.Now().Add(2 * time.Hour).UTC().Truncate(time.Second)
	body := fmt.Sprintf(`{"content":"launch","platforms":["twitter","linkedin"],"scheduledTime":%q}`, at.Format(time.RFC3339))
	resp, payload := doJSON(t, app, http.MethodPost, "/api/schedule", body)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var schedule struct {
		ID            int64     `json:"id"`
		Status        string    `json:"status"`
		ScheduledTime time.Time `json:"scheduledTime"`
	}
	require.NoError(t, json.Unmarshal(payload["schedule"], &schedule))
	assert.NotZero(t, schedule.ID)
	assert.Equal(t, "scheduled", schedule.Status)
	assert.True(t, schedule.ScheduledTime.Equal(at))
}

func TestScheduleCreateEndpointRejectsPastTime(t *testing.T) {
	app := newScheduleApp(t)

	at := time.Now().Add(-time.Hour).UTC()
	body := fmt.Sprintf(`{"content":"late","platforms":["twitter"],"scheduledTime":%q}`, at.Format(time.RFC3339))
	resp, _ := doJSON(t, app, http.MethodPost, "/api/schedule", body)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestScheduleCreateEndpointRejectsMissingPlatforms(t *testing.T) {
	app := newScheduleApp(t)

	at := time.Now().Add(time.Hour).UTC()
	body := fmt.Sprintf(`{"content":"no platforms","platforms":[],"scheduledTime":%q}`, at.Format(time.RFC3339))
	resp, _ := doJSON(t, app, http.MethodPost, "/api/schedule", body)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestScheduleGetEndpoint(t *testing.T) {
	app := newScheduleApp(t)
	id := createViaAPI(t, app, time.Now().Add(time.Hour).UTC())

	resp, payload := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/schedule/%d", id), "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var status string
	require.NoError(t, json.Unmarshal(payload["status"], &status))
	assert.Equal(t, "scheduled", status)
}

func TestScheduleGetEndpointNotFound(t *testing.T) {
	app := newScheduleApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/schedule/999", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestScheduleUpdateEndpoint(t *testing.T) {
	app := newScheduleApp(t)
	id := createViaAPI(t, app, time.Now().Add(time.Hour).UTC())

	resp, payload := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/schedule/%d", id), `{"content":"edited"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var schedule struct {
		Post struct {
			Content string `json:"content"`
		} `json:"post"`
	}
	require.NoError(t, json.Unmarshal(payload["schedule"], &schedule))
	assert.Equal(t, "edited", schedule.Post.Content)
}

func TestScheduleCancelEndpoint(t *testing.T) {
	app := newScheduleApp(t)
	id := createViaAPI(t, app, time.Now().Add(time.Hour).UTC())

	resp, _ := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/schedule/%d", id), "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// terminal records cannot be cancelled again
	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/schedule/%d", id), "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, payload := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/schedule/%d", id), "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var status string
	require.NoError(t, json.Unmarshal(payload["status"], &status))
	assert.Equal(t, "cancelled", status)
}

func TestScheduleUpcomingEndpointOrdersByTime(t *testing.T) {
	app := newScheduleApp(t)

	later := createViaAPI(t, app, time.Now().Add(5*time.Hour).UTC())
	sooner := createViaAPI(t, app, time.Now().Add(time.Hour).UTC())

	req := httptest.NewRequest(http.MethodGet, "/api/schedule/upcoming", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var schedules []struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&schedules))
	require.Len(t, schedules, 2)
	assert.Equal(t, sooner, schedules[0].ID)
	assert.Equal(t, later, schedules[1].ID)
}

func TestScheduleOptimalTimesEndpoint(t *testing.T) {
	app := newScheduleApp(t)

	resp, payload := doJSON(t, app, http.MethodGet, "/api/schedule/optimal-times?platform=twitter", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, payload, "platform")
	assert.Contains(t, payload, "times")

	resp, payload = doJSON(t, app, http.MethodGet, "/api/schedule/optimal-times", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, payload, "twitter")
	assert.Contains(t, payload, "facebook")

	resp, _ = doJSON(t, app, http.MethodGet, "/api/schedule/optimal-times?platform=myspace", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
