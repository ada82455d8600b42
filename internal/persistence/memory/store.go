// Package memory provides an in-memory implementation of the persistence
// repositories. It mirrors the SQLite behavior closely enough for tests:
// the same sentinel errors, the same uniqueness rules, and the same
// transactional guarantees (overlap re-check on insert, compare-and-set
// status updates).
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/altayburakhan/ClassroomDB/internal/persistence"
	"github.com/altayburakhan/ClassroomDB/internal/timeslot"
)

// Store holds every table behind one mutex, which doubles as the
// serialization the SQLite layer gets from its single-writer pool.
type Store struct {
	mu sync.RWMutex

	users         map[string]persistence.User
	classrooms    map[string]persistence.Classroom
	terms         map[string]persistence.Term
	reservations  map[string]persistence.Reservation
	feedback      map[string]persistence.Feedback
	notifications map[string]persistence.Notification
	sessions      map[string]persistence.Session
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:         make(map[string]persistence.User),
		classrooms:    make(map[string]persistence.Classroom),
		terms:         make(map[string]persistence.Term),
		reservations:  make(map[string]persistence.Reservation),
		feedback:      make(map[string]persistence.Feedback),
		notifications: make(map[string]persistence.Notification),
		sessions:      make(map[string]persistence.Session),
	}
}

// CreateUser inserts an account, rejecting duplicate emails.
func (s *Store) CreateUser(_ context.Context, user persistence.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; ok {
		return persistence.ErrDuplicate
	}
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return persistence.ErrDuplicate
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *Store) UpdateUser(_ context.Context, user persistence.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return persistence.ErrNotFound
	}
	s.users[user.ID] = user
	return nil
}

func (s *Store) GetUser(_ context.Context, id string) (persistence.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return persistence.User{}, persistence.ErrNotFound
	}
	return user, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (persistence.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return persistence.User{}, persistence.ErrNotFound
}

func (s *Store) ListUsers(_ context.Context) ([]persistence.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]persistence.User, 0, len(s.users))
	for _, user := range s.users {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Email != out[j].Email {
			return out[i].Email < out[j].Email
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// CreateClassroom inserts a classroom, rejecting a name already used by an
// active classroom.
func (s *Store) CreateClassroom(_ context.Context, classroom persistence.Classroom) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.classrooms[classroom.ID]; ok {
		return persistence.ErrDuplicate
	}
	if classroom.IsActive {
		for _, existing := range s.classrooms {
			if existing.IsActive && existing.Name == classroom.Name {
				return persistence.ErrDuplicate
			}
		}
	}
	s.classrooms[classroom.ID] = classroom
	return nil
}

func (s *Store) UpdateClassroom(_ context.Context, classroom persistence.Classroom) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.classrooms[classroom.ID]; !ok {
		return persistence.ErrNotFound
	}
	if classroom.IsActive {
		for id, existing := range s.classrooms {
			if id != classroom.ID && existing.IsActive && existing.Name == classroom.Name {
				return persistence.ErrDuplicate
			}
		}
	}
	s.classrooms[classroom.ID] = classroom
	return nil
}

func (s *Store) GetClassroom(_ context.Context, id string) (persistence.Classroom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	classroom, ok := s.classrooms[id]
	if !ok {
		return persistence.Classroom{}, persistence.ErrNotFound
	}
	return classroom, nil
}

func (s *Store) ListClassrooms(_ context.Context, includeInactive bool) ([]persistence.Classroom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]persistence.Classroom, 0, len(s.classrooms))
	for _, classroom := range s.classrooms {
		if !includeInactive && !classroom.IsActive {
			continue
		}
		out = append(out, classroom)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) CreateTerm(_ context.Context, term persistence.Term) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.terms[term.ID]; ok {
		return persistence.ErrDuplicate
	}
	s.terms[term.ID] = term
	return nil
}

func (s *Store) UpdateTerm(_ context.Context, term persistence.Term) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.terms[term.ID]; !ok {
		return persistence.ErrNotFound
	}
	s.terms[term.ID] = term
	return nil
}

func (s *Store) GetTerm(_ context.Context, id string) (persistence.Term, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term, ok := s.terms[id]
	if !ok {
		return persistence.Term{}, persistence.ErrNotFound
	}
	return term, nil
}

func (s *Store) ListTerms(_ context.Context) ([]persistence.Term, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]persistence.Term, 0, len(s.terms))
	for _, term := range s.terms {
		out = append(out, term)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// CreateReservation inserts a reservation after re-checking for overlapping
// non-cancelled bookings of the same classroom, like the SQLite
// implementation does inside its insert transaction.
func (s *Store) CreateReservation(_ context.Context, reservation persistence.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reservations[reservation.ID]; ok {
		return persistence.ErrDuplicate
	}
	for _, existing := range s.reservations {
		if existing.ClassroomID != reservation.ClassroomID {
			continue
		}
		if existing.Status == "cancelled" {
			continue
		}
		if timeslot.Overlaps(existing.Start, existing.End, reservation.Start, reservation.End) {
			return persistence.ErrConflict
		}
	}
	s.reservations[reservation.ID] = reservation
	return nil
}

func (s *Store) GetReservation(_ context.Context, id string) (persistence.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reservation, ok := s.reservations[id]
	if !ok {
		return persistence.Reservation{}, persistence.ErrNotFound
	}
	return reservation, nil
}

func (s *Store) ListReservations(_ context.Context, filter persistence.ReservationFilter) ([]persistence.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []persistence.Reservation
	for _, reservation := range s.reservations {
		if !matchesFilter(reservation, filter) {
			continue
		}
		out = append(out, reservation)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func matchesFilter(reservation persistence.Reservation, filter persistence.ReservationFilter) bool {
	if filter.ClassroomID != "" && reservation.ClassroomID != filter.ClassroomID {
		return false
	}
	if filter.RequesterID != "" && reservation.RequesterID != filter.RequesterID {
		return false
	}
	if filter.ExcludeID != "" && reservation.ID == filter.ExcludeID {
		return false
	}
	if len(filter.Statuses) > 0 {
		matched := false
		for _, status := range filter.Statuses {
			if reservation.Status == status {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	if filter.StartsBefore != nil && !reservation.Start.Before(*filter.StartsBefore) {
		return false
	}
	if filter.EndsAfter != nil && !reservation.End.After(*filter.EndsAfter) {
		return false
	}
	return true
}

// UpdateReservationStatus applies the update only when the stored status
// still matches expectedStatus.
func (s *Store) UpdateReservationStatus(_ context.Context, id, expectedStatus string, update persistence.StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reservation, ok := s.reservations[id]
	if !ok {
		return persistence.ErrNotFound
	}
	if reservation.Status != expectedStatus {
		return fmt.Errorf("%w: status is %q, expected %q", persistence.ErrStaleStatus, reservation.Status, expectedStatus)
	}
	reservation.Status = update.Status
	reservation.RejectionReason = update.RejectionReason
	reservation.UpdatedAt = update.UpdatedAt
	s.reservations[id] = reservation
	return nil
}

func (s *Store) CreateFeedback(_ context.Context, feedback persistence.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.feedback[feedback.ID]; ok {
		return persistence.ErrDuplicate
	}
	s.feedback[feedback.ID] = feedback
	return nil
}

func (s *Store) ListFeedbackForClassroom(_ context.Context, classroomID string) ([]persistence.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []persistence.Feedback
	for _, entry := range s.feedback {
		if entry.ClassroomID == classroomID {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) CreateNotification(_ context.Context, notification persistence.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notifications[notification.ID]; ok {
		return persistence.ErrDuplicate
	}
	s.notifications[notification.ID] = notification
	return nil
}

func (s *Store) GetNotification(_ context.Context, id string) (persistence.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notification, ok := s.notifications[id]
	if !ok {
		return persistence.Notification{}, persistence.ErrNotFound
	}
	return notification, nil
}

func (s *Store) ListNotificationsForUser(_ context.Context, userID string) ([]persistence.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []persistence.Notification
	for _, notification := range s.notifications {
		if notification.UserID == userID {
			out = append(out, notification)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) MarkNotificationRead(_ context.Context, id string) (persistence.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notification, ok := s.notifications[id]
	if !ok {
		return persistence.Notification{}, persistence.ErrNotFound
	}
	notification.IsRead = true
	s.notifications[id] = notification
	return notification, nil
}

func (s *Store) CreateSession(_ context.Context, session persistence.Session) (persistence.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.Token]; ok {
		return persistence.Session{}, persistence.ErrDuplicate
	}
	s.sessions[session.Token] = session
	return session, nil
}

func (s *Store) GetSession(_ context.Context, token string) (persistence.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[token]
	if !ok {
		return persistence.Session{}, persistence.ErrNotFound
	}
	return session, nil
}

func (s *Store) RevokeSession(_ context.Context, token string, revokedAt time.Time) (persistence.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return persistence.Session{}, persistence.ErrNotFound
	}
	if session.RevokedAt == nil {
		stamp := revokedAt
		session.RevokedAt = &stamp
		session.UpdatedAt = revokedAt
		s.sessions[token] = session
	}
	return session, nil
}

func (s *Store) DeleteExpiredSessions(_ context.Context, reference time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if !session.ExpiresAt.After(reference) {
			delete(s.sessions, token)
		}
	}
	return nil
}
