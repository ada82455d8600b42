package application

import "time"

// Principal represents the authenticated user invoking a service method.
type Principal struct {
	UserID  string
	IsAdmin bool
}

// ReservationStatus enumerates the reservation lifecycle states.
type ReservationStatus string

const (
	// StatusPending is the initial state of every reservation.
	StatusPending ReservationStatus = "pending"
	// StatusApproved is terminal; set by an administrator.
	StatusApproved ReservationStatus = "approved"
	// StatusRejected is terminal; set by an administrator with a reason.
	StatusRejected ReservationStatus = "rejected"
	// StatusCancelled is terminal; set by the requester before start time.
	StatusCancelled ReservationStatus = "cancelled"
)

// Terminal reports whether no further transition may leave the status.
func (s ReservationStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

// ValidStatus reports whether the value is a known lifecycle state.
func ValidStatus(s ReservationStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// ReservationInput captures caller provided reservation fields.
type ReservationInput struct {
	ClassroomID       string
	RequesterID       string
	Start             time.Time
	End               time.Time
	Purpose           string
	Notes             string
	IsRecurring       bool
	RecurrencePattern string
	RecurrenceEndDate *time.Time
}

// Reservation represents a persisted classroom booking.
type Reservation struct {
	ID                string
	ClassroomID       string
	RequesterID       string
	TermID            string
	Start             time.Time
	End               time.Time
	Purpose           string
	Status            ReservationStatus
	RejectionReason   *string
	Notes             *string
	IsRecurring       bool
	RecurrencePattern *string
	RecurrenceEndDate *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HolidayWarning is the advisory attached to a reservation whose range
// touches a holiday. It never affects whether the operation succeeds.
type HolidayWarning struct {
	Date time.Time
	Name string
}

// CreateReservationParams wraps the data required to create a reservation.
type CreateReservationParams struct {
	Principal Principal
	Input     ReservationInput
}

// ApproveReservationParams wraps the data required to approve a reservation.
type ApproveReservationParams struct {
	Principal     Principal
	ReservationID string
}

// RejectReservationParams wraps the data required to reject a reservation.
type RejectReservationParams struct {
	Principal     Principal
	ReservationID string
	Reason        string
}

// CancelReservationParams wraps the data required to cancel a reservation.
type CancelReservationParams struct {
	Principal     Principal
	ReservationID string
}

// ListReservationsParams narrows reservation listings.
type ListReservationsParams struct {
	Principal   Principal
	ClassroomID string
	RequesterID string
	Statuses    []ReservationStatus
	From        *time.Time
	To          *time.Time
}

// ClassroomInput captures caller provided classroom fields.
type ClassroomInput struct {
	Name        string
	RoomNumber  string
	Building    string
	Floor       int
	Capacity    int
	Features    *string
	Description *string
}

// Classroom represents a catalog entry for a bookable room.
type Classroom struct {
	ID          string
	Name        string
	RoomNumber  string
	Building    string
	Floor       int
	Capacity    int
	Features    *string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateClassroomParams wraps the data required to create a classroom.
type CreateClassroomParams struct {
	Principal Principal
	Input     ClassroomInput
}

// UpdateClassroomParams wraps the data required to update a classroom.
type UpdateClassroomParams struct {
	Principal   Principal
	ClassroomID string
	Input       ClassroomInput
}

// TermInput captures caller provided term fields. Dates are date-grained;
// the end date covers through the end of its day.
type TermInput struct {
	Name        string
	StartDate   time.Time
	EndDate     time.Time
	IsActive    bool
	Description *string
}

// Term represents an academic period during which reservations are permitted.
type Term struct {
	ID          string
	Name        string
	StartDate   time.Time
	EndDate     time.Time
	IsActive    bool
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateTermParams wraps the data required to create a term.
type CreateTermParams struct {
	Principal Principal
	Input     TermInput
}

// UpdateTermParams wraps the data required to update a term.
type UpdateTermParams struct {
	Principal Principal
	TermID    string
	Input     TermInput
}

// FeedbackInput captures caller provided feedback fields.
type FeedbackInput struct {
	ClassroomID string
	Rating      int
	Comment     string
}

// Feedback represents a rating left for a classroom.
type Feedback struct {
	ID          string
	AuthorID    string
	ClassroomID string
	Rating      int
	Comment     string
	CreatedAt   time.Time
}

// SubmitFeedbackParams wraps the data required to submit feedback.
type SubmitFeedbackParams struct {
	Principal Principal
	Input     FeedbackInput
}

// UserInput captures caller provided user attributes.
type UserInput struct {
	Email       string
	DisplayName string
	Password    string
	IsAdmin     bool
}

// User represents an instructor or administrator account.
type User struct {
	ID          string
	Email       string
	DisplayName string
	IsAdmin     bool
	Disabled    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateUserParams wraps the data required to create a user.
type CreateUserParams struct {
	Principal Principal
	Input     UserInput
}

// UpdateUserParams wraps the data required to update a user.
type UpdateUserParams struct {
	Principal Principal
	UserID    string
	Input     UserInput
}

// UserCredentials models the authentication attributes persisted for a user.
type UserCredentials struct {
	User         User
	PasswordHash string
}

// Session represents an authenticated session issued to a user.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	RevokedAt *time.Time
}

// AuthenticateParams captures the data required to authenticate a user.
type AuthenticateParams struct {
	Email    string
	Password string
}

// AuthenticateResult captures the outcome of a successful authentication attempt.
type AuthenticateResult struct {
	User    User
	Session Session
}

// Notification represents a persisted user-facing notification.
type Notification struct {
	ID            string
	UserID        string
	Title         string
	Message       string
	Type          string
	ReservationID *string
	IsRead        bool
	CreatedAt     time.Time
}
