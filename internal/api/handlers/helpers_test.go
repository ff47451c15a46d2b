package handlers

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"fittrack.io/notifier/internal/domain"
	"fittrack.io/notifier/internal/notification"
	apperrors "fittrack.io/notifier/internal/pkg/errors"
	"fittrack.io/notifier/internal/pkg/worker"
	"fittrack.io/notifier/internal/sweep"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newGinContext(t *testing.T, method, path, body string, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	c.Params = params
	return c, w
}

func lastAppError(t *testing.T, c *gin.Context) *apperrors.AppError {
	t.Helper()
	if len(c.Errors) == 0 {
		t.Fatal("no error recorded on context")
	}
	appErr, ok := apperrors.IsAppError(c.Errors.Last().Err)
	if !ok {
		t.Fatalf("error %v is not an AppError", c.Errors.Last().Err)
	}
	return appErr
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type fakeAnnouncer struct {
	got   notification.Announcement
	count int
	err   error
}

func (f *fakeAnnouncer) Announce(_ context.Context, ann notification.Announcement) (int, error) {
	f.got = ann
	return f.count, f.err
}

type fakeSweeps struct {
	mu      sync.Mutex
	kinds   map[domain.SweepKind]bool
	running bool
	ran     []domain.SweepKind
}

func (f *fakeSweeps) Has(kind domain.SweepKind) bool { return f.kinds[kind] }

func (f *fakeSweeps) Running(domain.SweepKind) bool { return f.running }

func (f *fakeSweeps) Run(_ context.Context, kind domain.SweepKind, _ time.Time) (sweep.Result, error) {
	f.mu.Lock()
	f.ran = append(f.ran, kind)
	f.mu.Unlock()
	return sweep.Result{Kind: kind}, nil
}

// inlineTasks runs submitted tasks synchronously.
type inlineTasks struct{ err error }

func (i inlineTasks) SubmitDetached(task worker.Task) error {
	if i.err != nil {
		return i.err
	}
	task(context.Background())
	return nil
}

type fakeInbox struct {
	list  []domain.Notification
	limit int
	err   error
}

func (f *fakeInbox) ListNotifications(_ context.Context, _ string, limit int) ([]domain.Notification, error) {
	f.limit = limit
	return f.list, f.err
}

var errBoom = errors.New("boom")
