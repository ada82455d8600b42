package sqlite

import (
	"context"
	"database/sql"

	"github.com/altayburakhan/ClassroomDB/internal/persistence"
)

// TermRepository implements persistence.TermRepository.
type TermRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewTermRepository creates a SQLite term repository.
func NewTermRepository(pool *ConnectionPool) *TermRepository {
	return &TermRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

const termColumns = `id, name, start_date, end_date, is_active, description, created_at, updated_at`

// CreateTerm inserts a term.
func (r *TermRepository) CreateTerm(ctx context.Context, term persistence.Term) error {
	_, err := r.helper.Exec(ctx, `
		INSERT INTO terms (`+termColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		term.ID,
		term.Name,
		formatTime(term.StartDate),
		formatTime(term.EndDate),
		boolToInt(term.IsActive),
		nullString(term.Description),
		formatTime(term.CreatedAt),
		formatTime(term.UpdatedAt),
	)
	return r.mapper.MapError(err)
}

// UpdateTerm rewrites a term row.
func (r *TermRepository) UpdateTerm(ctx context.Context, term persistence.Term) error {
	result, err := r.helper.Exec(ctx, `
		UPDATE terms
		SET name = ?, start_date = ?, end_date = ?, is_active = ?, description = ?, updated_at = ?
		WHERE id = ?
	`,
		term.Name,
		formatTime(term.StartDate),
		formatTime(term.EndDate),
		boolToInt(term.IsActive),
		nullString(term.Description),
		formatTime(term.UpdatedAt),
		term.ID,
	)
	if err != nil {
		return r.mapper.MapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// GetTerm fetches one term by id.
func (r *TermRepository) GetTerm(ctx context.Context, id string) (persistence.Term, error) {
	row := r.helper.QueryRow(ctx, `SELECT `+termColumns+` FROM terms WHERE id = ?`, id)
	term, err := scanTerm(row)
	if err != nil {
		return persistence.Term{}, r.mapper.MapError(err)
	}
	return term, nil
}

// ListTerms returns all terms ordered by start date.
func (r *TermRepository) ListTerms(ctx context.Context) ([]persistence.Term, error) {
	rows, err := r.helper.Query(ctx, `SELECT `+termColumns+` FROM terms ORDER BY start_date, id`)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var out []persistence.Term
	for rows.Next() {
		term, err := scanTerm(rows)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		out = append(out, term)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}
	return out, nil
}

func scanTerm(row rowScanner) (persistence.Term, error) {
	var (
		term        persistence.Term
		startDate   string
		endDate     string
		isActive    int
		description sql.NullString
		createdAt   string
		updatedAt   string
	)
	err := row.Scan(
		&term.ID,
		&term.Name,
		&startDate,
		&endDate,
		&isActive,
		&description,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.Term{}, err
	}

	if term.StartDate, err = parseTime(startDate); err != nil {
		return persistence.Term{}, err
	}
	if term.EndDate, err = parseTime(endDate); err != nil {
		return persistence.Term{}, err
	}
	if term.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.Term{}, err
	}
	if term.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.Term{}, err
	}
	term.IsActive = isActive != 0
	term.Description = stringPtr(description)
	return term, nil
}
