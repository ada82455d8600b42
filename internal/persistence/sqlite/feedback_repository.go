package sqlite

import (
	"context"

	"github.com/altayburakhan/ClassroomDB/internal/persistence"
)

// FeedbackRepository implements persistence.FeedbackRepository.
type FeedbackRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewFeedbackRepository creates a SQLite feedback repository.
func NewFeedbackRepository(pool *ConnectionPool) *FeedbackRepository {
	return &FeedbackRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

const feedbackColumns = `id, author_id, classroom_id, rating, comment, created_at`

// CreateFeedback inserts a feedback entry.
func (r *FeedbackRepository) CreateFeedback(ctx context.Context, feedback persistence.Feedback) error {
	_, err := r.helper.Exec(ctx, `
		INSERT INTO feedback (`+feedbackColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		feedback.ID,
		feedback.AuthorID,
		feedback.ClassroomID,
		feedback.Rating,
		feedback.Comment,
		formatTime(feedback.CreatedAt),
	)
	return r.mapper.MapError(err)
}

// ListFeedbackForClassroom returns feedback newest first.
func (r *FeedbackRepository) ListFeedbackForClassroom(ctx context.Context, classroomID string) ([]persistence.Feedback, error) {
	rows, err := r.helper.Query(ctx, `
		SELECT `+feedbackColumns+`
		FROM feedback
		WHERE classroom_id = ?
		ORDER BY created_at DESC, id DESC
	`, classroomID)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var out []persistence.Feedback
	for rows.Next() {
		var (
			feedback  persistence.Feedback
			createdAt string
		)
		err := rows.Scan(
			&feedback.ID,
			&feedback.AuthorID,
			&feedback.ClassroomID,
			&feedback.Rating,
			&feedback.Comment,
			&createdAt,
		)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		if feedback.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, feedback)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}
	return out, nil
}
