package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fittrack.io/notifier/internal/domain"
	"fittrack.io/notifier/internal/notification"
	apperrors "fittrack.io/notifier/internal/pkg/errors"
)

const (
	defaultInboxLimit = 50
	maxInboxLimit     = 200
)

// CreateAnnouncement handles POST /admin/announcements.
func (s *Server) CreateAnnouncement(c *gin.Context) {
	var req notification.Announcement
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.CodeValidationFailed, "invalid request body", http.StatusBadRequest))
		return
	}

	count, err := s.announcer.Announce(c.Request.Context(), req)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidAudience):
		_ = c.Error(apperrors.ErrAudienceInvalid(err))
		return
	case errors.Is(err, notification.ErrInvalidParams):
		_ = c.Error(apperrors.Wrap(err, apperrors.CodeNotificationInvalid, "announcement is incomplete", http.StatusBadRequest))
		return
	default:
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, AnnouncementResult{Count: count})
}

// ListUserNotifications handles GET /admin/users/:id/notifications.
func (s *Server) ListUserNotifications(c *gin.Context) {
	userID := c.Param("id")

	limit := defaultInboxLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			_ = c.Error(apperrors.BadRequest(apperrors.CodeValidationFailed, "limit must be a positive integer"))
			return
		}
		limit = min(n, maxInboxLimit)
	}

	list, err := s.inbox.ListNotifications(c.Request.Context(), userID, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	items := make([]Notification, 0, len(list))
	for _, n := range list {
		items = append(items, Notification{
			ID:         n.ID,
			Type:       string(n.Type),
			Title:      n.Title,
			Message:    n.Message,
			Read:       n.Read,
			ActionLink: n.ActionLink,
			RelatedID:  n.RelatedID,
			CreatedAt:  n.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, NotificationList{Items: items})
}
