package sqlite

import (
	"context"
	"database/sql"

	"github.com/altayburakhan/ClassroomDB/internal/persistence"
)

// ClassroomRepository implements persistence.ClassroomRepository.
type ClassroomRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewClassroomRepository creates a SQLite classroom repository.
func NewClassroomRepository(pool *ConnectionPool) *ClassroomRepository {
	return &ClassroomRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

const classroomColumns = `id, name, room_number, building, floor, capacity,
	features, description, is_active, created_at, updated_at`

// CreateClassroom inserts a classroom. Active classrooms enforce a unique
// name through a partial index; violations map to ErrDuplicate.
func (r *ClassroomRepository) CreateClassroom(ctx context.Context, classroom persistence.Classroom) error {
	_, err := r.helper.Exec(ctx, `
		INSERT INTO classrooms (`+classroomColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		classroom.ID,
		classroom.Name,
		nullString(classroom.RoomNumber),
		nullString(classroom.Building),
		classroom.Floor,
		classroom.Capacity,
		nullString(classroom.Features),
		nullString(classroom.Description),
		boolToInt(classroom.IsActive),
		formatTime(classroom.CreatedAt),
		formatTime(classroom.UpdatedAt),
	)
	return r.mapper.MapError(err)
}

// UpdateClassroom rewrites a classroom row.
func (r *ClassroomRepository) UpdateClassroom(ctx context.Context, classroom persistence.Classroom) error {
	result, err := r.helper.Exec(ctx, `
		UPDATE classrooms
		SET name = ?, room_number = ?, building = ?, floor = ?, capacity = ?,
		    features = ?, description = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`,
		classroom.Name,
		nullString(classroom.RoomNumber),
		nullString(classroom.Building),
		classroom.Floor,
		classroom.Capacity,
		nullString(classroom.Features),
		nullString(classroom.Description),
		boolToInt(classroom.IsActive),
		formatTime(classroom.UpdatedAt),
		classroom.ID,
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

// GetClassroom fetches one classroom by id.
func (r *ClassroomRepository) GetClassroom(ctx context.Context, id string) (persistence.Classroom, error) {
	row := r.helper.QueryRow(ctx, `SELECT `+classroomColumns+` FROM classrooms WHERE id = ?`, id)
	classroom, err := scanClassroom(row)
	if err != nil {
		return persistence.Classroom{}, r.mapper.MapError(err)
	}
	return classroom, nil
}

// ListClassrooms returns classrooms ordered by name.
func (r *ClassroomRepository) ListClassrooms(ctx context.Context, includeInactive bool) ([]persistence.Classroom, error) {
	query := `SELECT ` + classroomColumns + ` FROM classrooms`
	if !includeInactive {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY name, id`

	rows, err := r.helper.Query(ctx, query)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var out []persistence.Classroom
	for rows.Next() {
		classroom, err := scanClassroom(rows)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		out = append(out, classroom)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}
	return out, nil
}

func scanClassroom(row rowScanner) (persistence.Classroom, error) {
	var (
		classroom   persistence.Classroom
		roomNumber  sql.NullString
		building    sql.NullString
		features    sql.NullString
		description sql.NullString
		isActive    int
		createdAt   string
		updatedAt   string
	)
	err := row.Scan(
		&classroom.ID,
		&classroom.Name,
		&roomNumber,
		&building,
		&classroom.Floor,
		&classroom.Capacity,
		&features,
		&description,
		&isActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.Classroom{}, err
	}

	if classroom.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.Classroom{}, err
	}
	if classroom.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.Classroom{}, err
	}
	classroom.RoomNumber = stringPtr(roomNumber)
	classroom.Building = stringPtr(building)
	classroom.Features = stringPtr(features)
	classroom.Description = stringPtr(description)
	classroom.IsActive = isActive != 0
	return classroom, nil
}
