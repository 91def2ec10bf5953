package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/picourse/api/internal/model"
)

type LessonRequestRepository struct {
	pool *pgxpool.Pool
}

func NewLessonRequestRepository(pool *pgxpool.Pool) *LessonRequestRepository {
	return &LessonRequestRepository{pool: pool}
}

// LessonRequestFilter is an explicit predicate for List. Nil fields mean
// "no restriction". The query layer never builds conditions implicitly.
type LessonRequestFilter struct {
	StudentID *int64
	TutorID   *int64
	Status    *model.LessonStatus
}

const lessonRequestColumns = `
	lr.id, lr.student_id, lr.tutor_id, lr.subject_id, lr.start_time,
	lr.duration_minutes, lr.status, lr.note, lr.created_at, lr.updated_at,
	su.email, su.first_name, su.last_name,
	tu.email, tu.first_name, tu.last_name,
	s.name`

const lessonRequestJoins = `
	FROM lesson_requests lr
	JOIN users su ON su.id = lr.student_id
	JOIN users tu ON tu.id = lr.tutor_id
	JOIN subjects s ON s.id = lr.subject_id`

// Create inserts the request. Status and timestamps are assigned by the
// database.
func (r *LessonRequestRepository) Create(ctx context.Context, req *model.LessonRequest) error {
	query := `
		INSERT INTO lesson_requests (student_id, tutor_id, subject_id, start_time, duration_minutes, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, status, created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		req.StudentID,
		req.TutorID,
		req.SubjectID,
		req.StartTime,
		req.DurationMinutes,
		req.Note,
	).Scan(&req.ID, &req.Status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create lesson request: %w", err)
	}

	return nil
}

func (r *LessonRequestRepository) GetByID(ctx context.Context, id int64) (*model.LessonRequest, error) {
	query := "SELECT" + lessonRequestColumns + lessonRequestJoins + " WHERE lr.id = $1"

	req, err := scanLessonRequest(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson request: %w", err)
	}

	return req, nil
}

// List returns requests matching the filter, most recent first.
func (r *LessonRequestRepository) List(ctx context.Context, f LessonRequestFilter) ([]*model.LessonRequest, error) {
	query := "SELECT" + lessonRequestColumns + lessonRequestJoins

	var conds []string
	var args []any
	if f.StudentID != nil {
		args = append(args, *f.StudentID)
		conds = append(conds, fmt.Sprintf("lr.student_id = $%d", len(args)))
	}
	if f.TutorID != nil {
		args = append(args, *f.TutorID)
		conds = append(conds, fmt.Sprintf("lr.tutor_id = $%d", len(args)))
	}
	if f.Status != nil {
		args = append(args, *f.Status)
		conds = append(conds, fmt.Sprintf("lr.status = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY lr.created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lesson requests: %w", err)
	}
	defer rows.Close()

	var requests []*model.LessonRequest
	for rows.Next() {
		req, err := scanLessonRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lesson request: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lesson requests: %w", err)
	}

	return requests, nil
}

// UpdateStatus sets the status and refreshes updated_at in a single
// statement. Returns nil when no row matches.
func (r *LessonRequestRepository) UpdateStatus(ctx context.Context, id int64, status model.LessonStatus) (*model.LessonRequest, error) {
	query := `
		WITH updated AS (
			UPDATE lesson_requests
			SET status = $1, updated_at = now()
			WHERE id = $2
			RETURNING *
		)
		SELECT` + lessonRequestColumns + `
		FROM updated lr
		JOIN users su ON su.id = lr.student_id
		JOIN users tu ON tu.id = lr.tutor_id
		JOIN subjects s ON s.id = lr.subject_id
	`

	req, err := scanLessonRequest(r.pool.QueryRow(ctx, query, status, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("update lesson request status: %w", err)
	}

	return req, nil
}

func scanLessonRequest(row pgx.Row) (*model.LessonRequest, error) {
	var req model.LessonRequest
	var student, tutor model.User
	var subject model.Subject

	err := row.Scan(
		&req.ID,
		&req.StudentID,
		&req.TutorID,
		&req.SubjectID,
		&req.StartTime,
		&req.DurationMinutes,
		&req.Status,
		&req.Note,
		&req.CreatedAt,
		&req.UpdatedAt,
		&student.Email,
		&student.FirstName,
		&student.LastName,
		&tutor.Email,
		&tutor.FirstName,
		&tutor.LastName,
		&subject.Name,
	)
	if err != nil {
		return nil, err
	}

	student.ID, student.Role = req.StudentID, model.RoleStudent
	tutor.ID, tutor.Role = req.TutorID, model.RoleTutor
	subject.ID = req.SubjectID
	req.Student, req.Tutor, req.Subject = &student, &tutor, &subject

	return &req, nil
}
