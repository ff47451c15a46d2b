package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"fittrack.io/notifier/internal/domain"
)

// InsertNotification writes n. It returns false without error when another
// notification already holds n.DedupeKey.
func (s *Store) InsertNotification(ctx context.Context, n domain.Notification) (bool, error) {
	tag, err := s.db.Exec(ctx, `
INSERT INTO notifications (id, user_id, type, title, message, read, action_link, related_id, dedupe_key, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10)
ON CONFLICT (dedupe_key) WHERE dedupe_key IS NOT NULL DO NOTHING`,
		n.ID, n.UserID, string(n.Type), n.Title, n.Message, n.Read, n.ActionLink, n.RelatedID, n.DedupeKey, n.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("insert notification for user %s: %w", n.UserID, err)
	}
	return tag.RowsAffected() == 1, nil
}

// InsertNotifications writes all rows in a single statement. Rows whose
// dedupe key already exists are skipped; the count covers created rows only.
func (s *Store) InsertNotifications(ctx context.Context, ns []domain.Notification) (int, error) {
	if len(ns) == 0 {
		return 0, nil
	}

	var (
		ids         = make([]string, len(ns))
		userIDs     = make([]string, len(ns))
		types       = make([]string, len(ns))
		titles      = make([]string, len(ns))
		messages    = make([]string, len(ns))
		reads       = make([]bool, len(ns))
		actionLinks = make([]string, len(ns))
		relatedIDs  = make([]string, len(ns))
		dedupeKeys  = make([]string, len(ns))
		createdAts  = make([]time.Time, len(ns))
	)
	for i, n := range ns {
		ids[i] = n.ID
		userIDs[i] = n.UserID
		types[i] = string(n.Type)
		titles[i] = n.Title
		messages[i] = n.Message
		reads[i] = n.Read
		actionLinks[i] = n.ActionLink
		relatedIDs[i] = n.RelatedID
		dedupeKeys[i] = n.DedupeKey
		createdAts[i] = n.CreatedAt
	}

	tag, err := s.db.Exec(ctx, `
INSERT INTO notifications (id, user_id, type, title, message, read, action_link, related_id, dedupe_key, created_at)
SELECT id, user_id, type, title, message, read, action_link, related_id, NULLIF(dedupe_key, ''), created_at
FROM unnest($1::text[], $2::text[], $3::text[], $4::text[], $5::text[], $6::boolean[],
            $7::text[], $8::text[], $9::text[], $10::timestamptz[])
	AS t(id, user_id, type, title, message, read, action_link, related_id, dedupe_key, created_at)
ON CONFLICT (dedupe_key) WHERE dedupe_key IS NOT NULL DO NOTHING`,
		ids, userIDs, types, titles, messages, reads, actionLinks, relatedIDs, dedupeKeys, createdAts)
	if err != nil {
		return 0, fmt.Errorf("insert %d notifications: %w", len(ns), err)
	}
	return int(tag.RowsAffected()), nil
}

// ListNotifications returns the user's notifications, newest first.
func (s *Store) ListNotifications(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(ctx, `
SELECT id, user_id, type, title, message, read, action_link, related_id, COALESCE(dedupe_key, ''), created_at
FROM notifications
WHERE user_id = $1
ORDER BY created_at DESC, id
LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query notifications for user %s: %w", userID, err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Notification, error) {
		var (
			n   domain.Notification
			typ string
		)
		err := row.Scan(&n.ID, &n.UserID, &typ, &n.Title, &n.Message, &n.Read, &n.ActionLink, &n.RelatedID, &n.DedupeKey, &n.CreatedAt)
		n.Type = domain.NotificationType(typ)
		return n, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan notifications for user %s: %w", userID, err)
	}
	return list, nil
}

// DeleteNotificationsBefore removes notifications created before cutoff and
// returns how many were deleted.
func (s *Store) DeleteNotificationsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM notifications WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete notifications before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return tag.RowsAffected(), nil
}
