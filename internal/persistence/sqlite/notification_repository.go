package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/altayburakhan/ClassroomDB/internal/persistence"
)

// NotificationRepository implements persistence.NotificationRepository.
type NotificationRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewNotificationRepository creates a SQLite notification repository.
func NewNotificationRepository(pool *ConnectionPool) *NotificationRepository {
	return &NotificationRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

const notificationColumns = `id, user_id, title, message, type, reservation_id, is_read, created_at`

// CreateNotification inserts a notification row.
func (r *NotificationRepository) CreateNotification(ctx context.Context, notification persistence.Notification) error {
	_, err := r.helper.Exec(ctx, `
		INSERT INTO notifications (`+notificationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		notification.ID,
		notification.UserID,
		notification.Title,
		notification.Message,
		notification.Type,
		nullString(notification.ReservationID),
		boolToInt(notification.IsRead),
		formatTime(notification.CreatedAt),
	)
	return r.mapper.MapError(err)
}

// GetNotification fetches one notification by id.
func (r *NotificationRepository) GetNotification(ctx context.Context, id string) (persistence.Notification, error) {
	row := r.helper.QueryRow(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = ?`, id)
	notification, err := scanNotification(row)
	if err != nil {
		return persistence.Notification{}, r.mapper.MapError(err)
	}
	return notification, nil
}

// ListNotificationsForUser returns a user's notifications newest first.
func (r *NotificationRepository) ListNotificationsForUser(ctx context.Context, userID string) ([]persistence.Notification, error) {
	rows, err := r.helper.Query(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var out []persistence.Notification
	for rows.Next() {
		notification, err := scanNotification(rows)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		out = append(out, notification)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}
	return out, nil
}

// MarkNotificationRead flips the read flag and returns the updated row.
func (r *NotificationRepository) MarkNotificationRead(ctx context.Context, id string) (persistence.Notification, error) {
	var notification persistence.Notification
	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := r.helper.ExecTx(tx, `UPDATE notifications SET is_read = 1 WHERE id = ?`, id)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return persistence.ErrNotFound
		}
		row := r.helper.QueryRowTx(tx, `SELECT `+notificationColumns+` FROM notifications WHERE id = ?`, id)
		notification, err = scanNotification(row)
		return err
	})
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return persistence.Notification{}, persistence.ErrNotFound
		}
		return persistence.Notification{}, r.mapper.MapError(err)
	}
	return notification, nil
}

func scanNotification(row rowScanner) (persistence.Notification, error) {
	var (
		notification  persistence.Notification
		reservationID sql.NullString
		isRead        int
		createdAt     string
	)
	err := row.Scan(
		&notification.ID,
		&notification.UserID,
		&notification.Title,
		&notification.Message,
		&notification.Type,
		&reservationID,
		&isRead,
		&createdAt,
	)
	if err != nil {
		return persistence.Notification{}, err
	}
	if notification.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.Notification{}, err
	}
	notification.ReservationID = stringPtr(reservationID)
	notification.IsRead = isRead != 0
	return notification, nil
}
