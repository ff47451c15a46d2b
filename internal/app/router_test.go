package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack.io/notifier/internal/api/handlers"
	"fittrack.io/notifier/internal/api/middleware"
	"fittrack.io/notifier/internal/domain"
	"fittrack.io/notifier/internal/notification"
	"fittrack.io/notifier/internal/pkg/worker"
	"fittrack.io/notifier/internal/sweep"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type countingAnnouncer struct{}

func (countingAnnouncer) Announce(context.Context, notification.Announcement) (int, error) {
	return 7, nil
}

type busySweeps struct{}

func (busySweeps) Has(domain.SweepKind) bool     { return true }
func (busySweeps) Running(domain.SweepKind) bool { return true }
func (busySweeps) Run(context.Context, domain.SweepKind, time.Time) (sweep.Result, error) {
	return sweep.Result{}, sweep.ErrSweepRunning
}

type noTasks struct{}

func (noTasks) SubmitDetached(worker.Task) error { return nil }

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return newRouter(handlers.NewServer(handlers.ServerDeps{
		DB:        okPinger{},
		Announcer: countingAnnouncer{},
		Sweeps:    busySweeps{},
		Tasks:     noTasks{},
	}))
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/v1/health/live", "", http.StatusOK},
		{http.MethodGet, "/api/v1/health/ready", "", http.StatusOK},
		{http.MethodPost, "/api/v1/admin/announcements", `{"title":"t","message":"m","audience":{"type":"all"}}`, http.StatusCreated},
		{http.MethodPost, "/api/v1/admin/sweeps/goal_achievement", "", http.StatusConflict},
		{http.MethodPost, "/api/v1/admin/sweeps/unknown", "", http.StatusNotFound},
		{http.MethodGet, "/api/v1/admin/log/level", "", http.StatusOK},
		{http.MethodGet, "/api/v1/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code, w.Body.String())
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestRouter_ErrorBody(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/sweeps/nutrition_reminder", nil))

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"SWEEP_ALREADY_RUNNING"`)
	assert.Contains(t, w.Body.String(), `"kind":"nutrition_reminder"`)
}
