package persistence

import "time"

// User represents an instructor or administrator account.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	IsAdmin      bool
	Disabled     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Classroom represents a bookable room in the catalog.
type Classroom struct {
	ID          string
	Name        string
	RoomNumber  *string
	Building    *string
	Floor       int
	Capacity    int
	Features    *string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Term represents an academic period during which reservations are allowed.
// Start and end dates are date-grained; EndDate covers its whole day.
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

// Reservation represents a classroom booking and its lifecycle state.
type Reservation struct {
	ID                string
	ClassroomID       string
	RequesterID       string
	TermID            string
	Start             time.Time
	End               time.Time
	Purpose           string
	Status            string
	RejectionReason   *string
	Notes             *string
	IsRecurring       bool
	RecurrencePattern *string
	RecurrenceEndDate *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
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

// Notification represents a persisted user-facing notification row.
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

// Session represents an authentication session issued to a user.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	RevokedAt *time.Time
}
