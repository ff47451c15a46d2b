// Package notification implements the inbox notification writer.
//
// Notifications are persisted records only. Clients poll for them; there is
// no push channel.
//
// Import Path: fittrack.io/notifier/internal/notification
package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fittrack.io/notifier/internal/domain"
	"fittrack.io/notifier/internal/pkg/logger"
)

// ErrInvalidParams is returned when a notification payload is incomplete.
var ErrInvalidParams = errors.New("invalid notification params")

// Params holds the fields of a notification to create.
type Params struct {
	RecipientID string
	Type        domain.NotificationType
	Title       string
	Message     string
	ActionLink  string // client route, e.g. "/workouts/<id>"
	RelatedID   string // ID of the triggering entity
	// DedupeKey makes the write idempotent: a second write with the same key
	// is skipped. Empty means no dedupe.
	DedupeKey string
}

// Store is the persistence the writer needs.
type Store interface {
	// InsertNotification returns false when the dedupe key already exists.
	InsertNotification(ctx context.Context, n domain.Notification) (bool, error)
	// InsertNotifications writes all rows in one statement and returns how
	// many were created.
	InsertNotifications(ctx context.Context, ns []domain.Notification) (int, error)
}

// Sender defines the notification write entry points.
type Sender interface {
	// Send creates a notification for a single recipient. created is false
	// when the write was skipped as a duplicate.
	Send(ctx context.Context, params Params) (created bool, err error)

	// SendBatch creates one notification per recipient in a single insert
	// and returns the number created. An empty recipient list is a no-op.
	SendBatch(ctx context.Context, recipientIDs []string, params Params) (int, error)
}

// InboxSender writes notifications to the database with read=false.
type InboxSender struct {
	store Store
	now   func() time.Time
}

// NewInboxSender creates a new inbox sender.
func NewInboxSender(store Store) *InboxSender {
	return &InboxSender{store: store, now: time.Now}
}

// Send stores a single notification.
func (s *InboxSender) Send(ctx context.Context, params Params) (bool, error) {
	if err := validateParams(params); err != nil {
		return false, err
	}

	created, err := s.store.InsertNotification(ctx, s.build(params.RecipientID, params, s.now().UTC()))
	if err != nil {
		return false, fmt.Errorf("create notification for user %s: %w", params.RecipientID, err)
	}

	if created {
		logger.Debug("notification created",
			zap.String("recipient", params.RecipientID),
			zap.String("type", string(params.Type)),
			zap.String("related_id", params.RelatedID),
		)
	} else {
		logger.Debug("duplicate notification skipped",
			zap.String("recipient", params.RecipientID),
			zap.String("dedupe_key", params.DedupeKey),
		)
	}
	return created, nil
}

// SendBatch stores the same notification for many recipients in one insert.
// params.RecipientID is ignored. A dedupe key cannot be shared across
// recipients, so params.DedupeKey must be empty.
func (s *InboxSender) SendBatch(ctx context.Context, recipientIDs []string, params Params) (int, error) {
	if len(recipientIDs) == 0 {
		return 0, nil
	}
	if params.DedupeKey != "" {
		return 0, fmt.Errorf("%w: dedupe key is not allowed on batch writes", ErrInvalidParams)
	}

	createdAt := s.now().UTC()
	rows := make([]domain.Notification, 0, len(recipientIDs))
	for _, id := range recipientIDs {
		p := params
		p.RecipientID = id
		if err := validateParams(p); err != nil {
			return 0, err
		}
		rows = append(rows, s.build(id, p, createdAt))
	}

	n, err := s.store.InsertNotifications(ctx, rows)
	if err != nil {
		return 0, fmt.Errorf("batch create %d notifications: %w", len(rows), err)
	}
	return n, nil
}

func (s *InboxSender) build(recipientID string, p Params, createdAt time.Time) domain.Notification {
	return domain.Notification{
		ID:         uuid.NewString(),
		UserID:     recipientID,
		Type:       p.Type,
		Title:      p.Title,
		Message:    p.Message,
		Read:       false,
		ActionLink: p.ActionLink,
		RelatedID:  p.RelatedID,
		DedupeKey:  p.DedupeKey,
		CreatedAt:  createdAt,
	}
}

var _ Sender = (*InboxSender)(nil)

func validateParams(p Params) error {
	if p.RecipientID == "" {
		return fmt.Errorf("%w: recipient_id is required", ErrInvalidParams)
	}
	if !p.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidParams, p.Type)
	}
	if p.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidParams)
	}
	if p.Message == "" {
		return fmt.Errorf("%w: message is required", ErrInvalidParams)
	}
	return nil
}
