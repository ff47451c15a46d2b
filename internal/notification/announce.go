package notification

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"fittrack.io/notifier/internal/domain"
	"fittrack.io/notifier/internal/pkg/logger"
)

// AudienceResolver turns an audience filter into user IDs.
type AudienceResolver interface {
	ResolveAudience(ctx context.Context, audience domain.Audience) ([]string, error)
}

// Announcement is an administrative system message sent to an audience.
type Announcement struct {
	Title      string          `json:"title"`
	Message    string          `json:"message"`
	ActionLink string          `json:"action_link,omitempty"`
	Audience   domain.Audience `json:"audience"`
}

// Announcer fans a system announcement out to a resolved audience.
type Announcer struct {
	resolver AudienceResolver
	sender   Sender
}

// NewAnnouncer creates an announcer.
func NewAnnouncer(resolver AudienceResolver, sender Sender) *Announcer {
	return &Announcer{resolver: resolver, sender: sender}
}

// Announce resolves the audience and writes one system notification per
// recipient in a single batch. It returns the number of recipients notified.
// An empty audience is not an error and returns 0.
func (a *Announcer) Announce(ctx context.Context, ann Announcement) (int, error) {
	ann.Title = strings.TrimSpace(ann.Title)
	ann.Message = strings.TrimSpace(ann.Message)
	if ann.Title == "" || ann.Message == "" {
		return 0, fmt.Errorf("%w: title and message are required", ErrInvalidParams)
	}
	if err := ann.Audience.Validate(); err != nil {
		return 0, err
	}

	recipients, err := a.resolver.ResolveAudience(ctx, ann.Audience)
	if err != nil {
		return 0, fmt.Errorf("resolve audience %s: %w", ann.Audience.Type, err)
	}

	count, err := a.sender.SendBatch(ctx, recipients, Params{
		Type:       domain.NotificationSystem,
		Title:      ann.Title,
		Message:    ann.Message,
		ActionLink: ann.ActionLink,
	})
	if err != nil {
		return 0, err
	}

	logger.Info("announcement sent",
		zap.String("audience", string(ann.Audience.Type)),
		zap.String("fitness_level", string(ann.Audience.FitnessLevel)),
		zap.Int("recipients", count),
	)
	return count, nil
}
