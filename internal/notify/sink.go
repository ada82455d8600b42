// Package notify turns lifecycle events into persisted notification rows
// and outbound mail. The reservation engine emits notices; nothing here may
// fail a reservation operation.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/altayburakhan/ClassroomDB/internal/application"
)

// Notification type labels stored with each row.
const (
	TypeReservationCreated  = "reservation_created"
	TypeReservationApproved = "reservation_approved"
	TypeReservationRejected = "reservation_rejected"
	TypeHoliday             = "holiday"
)

// NotificationWriter persists notification rows.
type NotificationWriter interface {
	CreateNotification(ctx context.Context, notification application.Notification) (application.Notification, error)
}

// EmailSender delivers a single message. Implementations decide transport;
// the default sender only logs.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// StoreSink implements the lifecycle engine's notification contract by
// writing rows through a NotificationWriter and handing mail to an
// EmailSender.
type StoreSink struct {
	writer      NotificationWriter
	mail        EmailSender
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// StoreSinkDeps bundles the dependencies for NewStoreSink.
type StoreSinkDeps struct {
	Writer      NotificationWriter
	Mail        EmailSender
	IDGenerator func() string
	Now         func() time.Time
	Logger      *slog.Logger
}

// NewStoreSink constructs the sink. A nil mail sender falls back to log-only
// delivery.
func NewStoreSink(deps StoreSinkDeps) *StoreSink {
	if deps.IDGenerator == nil {
		deps.IDGenerator = func() string { return "" }
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if deps.Mail == nil {
		deps.Mail = NewLogSender(logger)
	}
	return &StoreSink{
		writer:      deps.Writer,
		mail:        deps.Mail,
		idGenerator: deps.IDGenerator,
		now:         deps.Now,
		logger:      logger,
	}
}

// ReservationCreated records the submission confirmation.
func (s *StoreSink) ReservationCreated(ctx context.Context, notice application.ReservationNotice) error {
	subject := "Reservation request received"
	body := fmt.Sprintf("Your reservation for %s on %s (%s) was received and is pending approval.",
		displayClassroom(notice), notice.DayOfWeek, notice.TimeRange)
	return s.deliver(ctx, notice, TypeReservationCreated, subject, body)
}

// ReservationApproved records the approval decision.
func (s *StoreSink) ReservationApproved(ctx context.Context, notice application.ReservationNotice) error {
	subject := "Reservation approved"
	body := fmt.Sprintf("Your reservation for %s on %s (%s) was approved.",
		displayClassroom(notice), notice.DayOfWeek, notice.TimeRange)
	return s.deliver(ctx, notice, TypeReservationApproved, subject, body)
}

// ReservationRejected records the rejection decision and its reason.
func (s *StoreSink) ReservationRejected(ctx context.Context, notice application.ReservationNotice) error {
	subject := "Reservation rejected"
	body := fmt.Sprintf("Your reservation for %s on %s (%s) was rejected.",
		displayClassroom(notice), notice.DayOfWeek, notice.TimeRange)
	if reason := strings.TrimSpace(notice.Reason); reason != "" {
		body += " Reason: " + reason
	}
	return s.deliver(ctx, notice, TypeReservationRejected, subject, body)
}

// HolidayWarning records that the reserved range touches holidays.
func (s *StoreSink) HolidayWarning(ctx context.Context, notice application.ReservationNotice, holidays []application.HolidayWarning) error {
	if len(holidays) == 0 {
		return nil
	}
	names := make([]string, 0, len(holidays))
	for _, h := range holidays {
		names = append(names, fmt.Sprintf("%s (%s)", h.Name, h.Date.Format("2006-01-02")))
	}
	subject := "Reservation falls on a holiday"
	body := fmt.Sprintf("Your reservation for %s overlaps: %s.",
		displayClassroom(notice), strings.Join(names, ", "))
	return s.deliver(ctx, notice, TypeHoliday, subject, body)
}

func (s *StoreSink) deliver(ctx context.Context, notice application.ReservationNotice, notificationType, subject, body string) error {
	reservation := notice.Reservation
	if s.writer != nil {
		reservationID := reservation.ID
		row := application.Notification{
			ID:            s.idGenerator(),
			UserID:        reservation.RequesterID,
			Title:         subject,
			Message:       body,
			Type:          notificationType,
			ReservationID: &reservationID,
			CreatedAt:     s.now(),
		}
		if _, err := s.writer.CreateNotification(ctx, row); err != nil {
			return fmt.Errorf("store notification: %w", err)
		}
	}

	if notice.RequesterEmail != "" {
		if err := s.mail.Send(ctx, notice.RequesterEmail, subject, body); err != nil {
			// Row is already stored; mail delivery stays best effort.
			s.logger.WarnContext(ctx, "notification mail failed",
				"type", notificationType,
				"reservation_id", reservation.ID,
				"error", err,
			)
		}
	}
	return nil
}

func displayClassroom(notice application.ReservationNotice) string {
	if notice.ClassroomName != "" {
		return notice.ClassroomName
	}
	return notice.Reservation.ClassroomID
}
