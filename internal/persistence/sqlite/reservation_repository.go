package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/altayburakhan/ClassroomDB/internal/persistence"
)

// blockingStatuses hold a slot against new reservations. Every status except
// cancelled keeps blocking.
const blockingStatuses = "('pending','approved','rejected')"

// ReservationRepository implements persistence.ReservationRepository.
type ReservationRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewReservationRepository creates a SQLite reservation repository.
func NewReservationRepository(pool *ConnectionPool) *ReservationRepository {
	return &ReservationRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateReservation inserts a reservation. The overlap re-check runs inside
// the insert transaction, so a racing create that committed after the
// service's scan still surfaces as ErrConflict.
func (r *ReservationRepository) CreateReservation(ctx context.Context, reservation persistence.Reservation) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		var blockers int
		err := r.helper.QueryRowTx(tx, `
			SELECT COUNT(1) FROM reservations
			WHERE classroom_id = ?
			  AND status IN `+blockingStatuses+`
			  AND start_time < ?
			  AND end_time > ?
		`, reservation.ClassroomID, formatTime(reservation.End), formatTime(reservation.Start)).Scan(&blockers)
		if err != nil {
			return r.mapper.MapError(err)
		}
		if blockers > 0 {
			return persistence.ErrConflict
		}

		_, err = r.helper.ExecTx(tx, `
			INSERT INTO reservations (
				id, classroom_id, requester_id, term_id, start_time, end_time,
				purpose, status, rejection_reason, notes,
				is_recurring, recurrence_pattern, recurrence_end_date,
				created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			reservation.ID,
			reservation.ClassroomID,
			reservation.RequesterID,
			reservation.TermID,
			formatTime(reservation.Start),
			formatTime(reservation.End),
			reservation.Purpose,
			reservation.Status,
			nullString(reservation.RejectionReason),
			nullString(reservation.Notes),
			boolToInt(reservation.IsRecurring),
			nullString(reservation.RecurrencePattern),
			nullTime(reservation.RecurrenceEndDate),
			formatTime(reservation.CreatedAt),
			formatTime(reservation.UpdatedAt),
		)
		return r.mapper.MapError(err)
	})
}

// GetReservation fetches one reservation by id.
func (r *ReservationRepository) GetReservation(ctx context.Context, id string) (persistence.Reservation, error) {
	row := r.helper.QueryRow(ctx, `
		SELECT id, classroom_id, requester_id, term_id, start_time, end_time,
		       purpose, status, rejection_reason, notes,
		       is_recurring, recurrence_pattern, recurrence_end_date,
		       created_at, updated_at
		FROM reservations WHERE id = ?
	`, id)
	reservation, err := scanReservation(row)
	if err != nil {
		return persistence.Reservation{}, r.mapper.MapError(err)
	}
	return reservation, nil
}

// ListReservations returns reservations matching the filter, ordered by
// start time.
func (r *ReservationRepository) ListReservations(ctx context.Context, filter persistence.ReservationFilter) ([]persistence.Reservation, error) {
	query := strings.Builder{}
	query.WriteString(`
		SELECT id, classroom_id, requester_id, term_id, start_time, end_time,
		       purpose, status, rejection_reason, notes,
		       is_recurring, recurrence_pattern, recurrence_end_date,
		       created_at, updated_at
		FROM reservations WHERE 1=1
	`)
	var args []any

	if filter.ClassroomID != "" {
		query.WriteString(" AND classroom_id = ?")
		args = append(args, filter.ClassroomID)
	}
	if filter.RequesterID != "" {
		query.WriteString(" AND requester_id = ?")
		args = append(args, filter.RequesterID)
	}
	if filter.ExcludeID != "" {
		query.WriteString(" AND id != ?")
		args = append(args, filter.ExcludeID)
	}
	if len(filter.Statuses) > 0 {
		query.WriteString(" AND status IN (")
		for i, status := range filter.Statuses {
			if i > 0 {
				query.WriteString(",")
			}
			query.WriteString("?")
			args = append(args, status)
		}
		query.WriteString(")")
	}
	if filter.StartsBefore != nil {
		query.WriteString(" AND start_time < ?")
		args = append(args, formatTime(*filter.StartsBefore))
	}
	if filter.EndsAfter != nil {
		query.WriteString(" AND end_time > ?")
		args = append(args, formatTime(*filter.EndsAfter))
	}
	query.WriteString(" ORDER BY start_time, id")

	rows, err := r.helper.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var out []persistence.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		out = append(out, reservation)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}
	return out, nil
}

// UpdateReservationStatus applies a lifecycle transition as a compare-and-set
// on the stored status. A zero-row update means either the reservation is
// missing or another transition won; the follow-up read decides which.
func (r *ReservationRepository) UpdateReservationStatus(ctx context.Context, id, expectedStatus string, update persistence.StatusUpdate) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := r.helper.ExecTx(tx, `
			UPDATE reservations
			SET status = ?, rejection_reason = ?, updated_at = ?
			WHERE id = ? AND status = ?
		`,
			update.Status,
			nullString(update.RejectionReason),
			formatTime(update.UpdatedAt),
			id,
			expectedStatus,
		)
		if err != nil {
			return r.mapper.MapError(err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			var current string
			err := r.helper.QueryRowTx(tx, `SELECT status FROM reservations WHERE id = ?`, id).Scan(&current)
			if errors.Is(err, sql.ErrNoRows) {
				return persistence.ErrNotFound
			}
			if err != nil {
				return r.mapper.MapError(err)
			}
			return fmt.Errorf("%w: status is %q, expected %q", persistence.ErrStaleStatus, current, expectedStatus)
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (persistence.Reservation, error) {
	var (
		reservation       persistence.Reservation
		startTime         string
		endTime           string
		rejectionReason   sql.NullString
		notes             sql.NullString
		isRecurring       int
		recurrencePattern sql.NullString
		recurrenceEnd     sql.NullString
		createdAt         string
		updatedAt         string
	)
	err := row.Scan(
		&reservation.ID,
		&reservation.ClassroomID,
		&reservation.RequesterID,
		&reservation.TermID,
		&startTime,
		&endTime,
		&reservation.Purpose,
		&reservation.Status,
		&rejectionReason,
		&notes,
		&isRecurring,
		&recurrencePattern,
		&recurrenceEnd,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.Reservation{}, err
	}

	if reservation.Start, err = parseTime(startTime); err != nil {
		return persistence.Reservation{}, err
	}
	if reservation.End, err = parseTime(endTime); err != nil {
		return persistence.Reservation{}, err
	}
	if reservation.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.Reservation{}, err
	}
	if reservation.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.Reservation{}, err
	}
	if reservation.RecurrenceEndDate, err = timePtr(recurrenceEnd); err != nil {
		return persistence.Reservation{}, err
	}
	reservation.RejectionReason = stringPtr(rejectionReason)
	reservation.Notes = stringPtr(notes)
	reservation.RecurrencePattern = stringPtr(recurrencePattern)
	reservation.IsRecurring = isRecurring != 0
	return reservation, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
