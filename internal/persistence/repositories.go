package persistence

import (
	"context"
	"time"
)

// UserRepository exposes CRUD operations for accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	UpdateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, id string) error
}

// ClassroomRepository exposes CRUD operations for the classroom catalog.
type ClassroomRepository interface {
	CreateClassroom(ctx context.Context, classroom Classroom) error
	UpdateClassroom(ctx context.Context, classroom Classroom) error
	GetClassroom(ctx context.Context, id string) (Classroom, error)
	ListClassrooms(ctx context.Context, includeInactive bool) ([]Classroom, error)
}

// TermRepository exposes CRUD operations for academic terms.
type TermRepository interface {
	CreateTerm(ctx context.Context, term Term) error
	UpdateTerm(ctx context.Context, term Term) error
	GetTerm(ctx context.Context, id string) (Term, error)
	ListTerms(ctx context.Context) ([]Term, error)
}

// ReservationFilter narrows reservation queries.
type ReservationFilter struct {
	ClassroomID string
	RequesterID string
	Statuses    []string
	// StartsBefore/EndsAfter bound the reservation interval; combined they
	// select every reservation overlapping [EndsAfter, StartsBefore).
	StartsBefore *time.Time
	EndsAfter    *time.Time
	ExcludeID    string
}

// ReservationRepository stores reservations.
//
// CreateReservation re-checks classroom overlap inside its own transaction
// and returns ErrConflict when the slot is taken, closing the check-then-act
// window between the service's conflict scan and the insert.
//
// UpdateReservationStatus is a compare-and-set: it only applies when the
// stored status matches expectedStatus, returning ErrStaleStatus otherwise,
// so two racing approvals cannot both succeed.
type ReservationRepository interface {
	CreateReservation(ctx context.Context, reservation Reservation) error
	GetReservation(ctx context.Context, id string) (Reservation, error)
	ListReservations(ctx context.Context, filter ReservationFilter) ([]Reservation, error)
	UpdateReservationStatus(ctx context.Context, id, expectedStatus string, update StatusUpdate) error
}

// StatusUpdate carries the fields a lifecycle transition writes.
type StatusUpdate struct {
	Status          string
	RejectionReason *string
	UpdatedAt       time.Time
}

// FeedbackRepository stores classroom feedback.
type FeedbackRepository interface {
	CreateFeedback(ctx context.Context, feedback Feedback) error
	ListFeedbackForClassroom(ctx context.Context, classroomID string) ([]Feedback, error)
}

// NotificationRepository stores user notifications.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification Notification) error
	GetNotification(ctx context.Context, id string) (Notification, error)
	ListNotificationsForUser(ctx context.Context, userID string) ([]Notification, error)
	MarkNotificationRead(ctx context.Context, id string) (Notification, error)
}

// SessionRepository stores authentication session state.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) (Session, error)
	GetSession(ctx context.Context, token string) (Session, error)
	RevokeSession(ctx context.Context, token string, revokedAt time.Time) (Session, error)
	DeleteExpiredSessions(ctx context.Context, reference time.Time) error
}
