package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// NotificationStore captures the persistence operations needed by the service.
type NotificationStore interface {
	GetNotification(ctx context.Context, id string) (Notification, error)
	ListNotificationsForUser(ctx context.Context, userID string) ([]Notification, error)
	MarkNotificationRead(ctx context.Context, id string) (Notification, error)
}

// NotificationService surfaces persisted notifications to their recipients.
type NotificationService struct {
	notifications NotificationStore
	logger        *slog.Logger
}

// NewNotificationService constructs a notification service.
func NewNotificationService(notifications NotificationStore, logger *slog.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, logger: defaultLogger(logger)}
}

// ListForUser returns the principal's notifications, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, principal Principal) ([]Notification, error) {
	if s == nil || s.notifications == nil {
		return nil, fmt.Errorf("notification store not configured")
	}
	entries, err := s.notifications.ListNotificationsForUser(ctx, principal.UserID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	ordered := make([]Notification, len(entries))
	copy(ordered, entries)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})
	return ordered, nil
}

// MarkRead flags a notification as read. Recipients may only mark their own.
func (s *NotificationService) MarkRead(ctx context.Context, principal Principal, notificationID string) (notification Notification, err error) {
	if s == nil || s.notifications == nil {
		err = fmt.Errorf("notification store not configured")
		return
	}

	logger := serviceLogger(ctx, s.logger, "NotificationService", "MarkRead",
		"principal_id", principal.UserID,
		"notification_id", notificationID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to mark notification read", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	var existing Notification
	existing, err = s.notifications.GetNotification(ctx, notificationID)
	if err != nil {
		err = mapStoreError(err)
		return
	}
	if existing.UserID != principal.UserID && !principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	var marked Notification
	marked, err = s.notifications.MarkNotificationRead(ctx, notificationID)
	if err != nil {
		err = mapStoreError(err)
		return
	}
	notification = marked
	return
}
