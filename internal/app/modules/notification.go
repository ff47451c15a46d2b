package modules

import (
	"context"

	"github.com/riverqueue/river"

	"fittrack.io/notifier/internal/api/handlers"
	"fittrack.io/notifier/internal/notification"
)

// NotificationStore is the persistence the notification module needs.
type NotificationStore interface {
	notification.Store
	notification.AudienceResolver
	handlers.InboxReader
}

// NotificationModule owns the inbox writer and the announcement fan-out.
type NotificationModule struct {
	store     NotificationStore
	sender    *notification.InboxSender
	announcer *notification.Announcer
}

// NewNotificationModule creates the notification module on the shared store.
func NewNotificationModule(infra *Infrastructure) *NotificationModule {
	return newNotificationModule(infra.Store)
}

func newNotificationModule(store NotificationStore) *NotificationModule {
	sender := notification.NewInboxSender(store)
	return &NotificationModule{
		store:     store,
		sender:    sender,
		announcer: notification.NewAnnouncer(store, sender),
	}
}

// Sender returns the inbox writer shared with the scheduler.
func (m *NotificationModule) Sender() notification.Sender { return m.sender }

func (m *NotificationModule) Name() string { return "notification" }

func (m *NotificationModule) ContributeServerDeps(deps *handlers.ServerDeps) {
	deps.Announcer = m.announcer
	deps.Inbox = m.store
}

func (m *NotificationModule) RegisterWorkers(*river.Workers) {}

func (m *NotificationModule) PeriodicJobs() ([]*river.PeriodicJob, error) { return nil, nil }

func (m *NotificationModule) Shutdown(context.Context) error { return nil }
