package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/picourse/api/internal/model"
	"github.com/shopspring/decimal"
)

type TutorRepository struct {
	pool *pgxpool.Pool
}

func NewTutorRepository(pool *pgxpool.Pool) *TutorRepository {
	return &TutorRepository{pool: pool}
}

// TutorOrder enumerates the orderings the catalog supports.
type TutorOrder string

const (
	TutorOrderRatingDesc TutorOrder = "-rating"
	TutorOrderRatingAsc  TutorOrder = "rating"
	TutorOrderRateDesc   TutorOrder = "-hourly_rate"
	TutorOrderRateAsc    TutorOrder = "hourly_rate"
)

// TutorFilter is an explicit predicate for listing tutor profiles.
// Zero fields mean "no restriction".
type TutorFilter struct {
	SubjectID *int64
	Search    string
	Order     TutorOrder
}

func (f TutorFilter) orderClause() string {
	switch f.Order {
	case TutorOrderRatingAsc:
		return "tp.rating ASC"
	case TutorOrderRateDesc:
		return "tp.hourly_rate DESC"
	case TutorOrderRateAsc:
		return "tp.hourly_rate ASC"
	default:
		return "tp.rating DESC"
	}
}

// List returns tutor profiles with the user joined in, optionally
// restricted to a subject and a name/bio substring match.
func (r *TutorRepository) List(ctx context.Context, f TutorFilter) ([]*model.TutorProfile, error) {
	query := `
		SELECT DISTINCT tp.user_id, tp.bio, tp.hourly_rate, tp.rating, tp.created_at,
		       u.email, u.first_name, u.last_name, u.role, u.created_at, u.updated_at
		FROM tutor_profiles tp
		JOIN users u ON u.id = tp.user_id
	`

	var args []any
	where := ""
	if f.SubjectID != nil {
		args = append(args, *f.SubjectID)
		query += " JOIN tutor_subjects ts ON ts.tutor_id = tp.user_id"
		where = fmt.Sprintf(" WHERE ts.subject_id = $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		cond := fmt.Sprintf(
			"(u.first_name ILIKE $%d OR u.last_name ILIKE $%d OR tp.bio ILIKE $%d)",
			len(args), len(args), len(args),
		)
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}
	query += where + " ORDER BY " + f.orderClause()

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tutors: %w", err)
	}
	defer rows.Close()

	var tutors []*model.TutorProfile
	for rows.Next() {
		profile, err := scanTutorProfile(rows)
		if err != nil {
			return nil, err
		}
		tutors = append(tutors, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tutors: %w", err)
	}

	if err := r.loadSubjects(ctx, tutors); err != nil {
		return nil, err
	}

	return tutors, nil
}

func (r *TutorRepository) GetByUserID(ctx context.Context, userID int64) (*model.TutorProfile, error) {
	query := `
		SELECT tp.user_id, tp.bio, tp.hourly_rate, tp.rating, tp.created_at,
		       u.email, u.first_name, u.last_name, u.role, u.created_at, u.updated_at
		FROM tutor_profiles tp
		JOIN users u ON u.id = tp.user_id
		WHERE tp.user_id = $1
	`

	row := r.pool.QueryRow(ctx, query, userID)
	profile, err := scanTutorProfile(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get tutor profile: %w", err)
	}

	if err := r.loadSubjects(ctx, []*model.TutorProfile{profile}); err != nil {
		return nil, err
	}

	return profile, nil
}

// UpdateProfile sets the tutor-editable fields. Nil pointers leave the
// current value untouched.
func (r *TutorRepository) UpdateProfile(ctx context.Context, userID int64, bio *string, hourlyRate *decimal.Decimal) error {
	query := `
		UPDATE tutor_profiles
		SET bio = COALESCE($1, bio), hourly_rate = COALESCE($2, hourly_rate)
		WHERE user_id = $3
	`

	affected, err := r.pool.Exec(ctx, query, bio, hourlyRate, userID)
	if err != nil {
		return fmt.Errorf("update tutor profile: %w", err)
	}
	if affected.RowsAffected() == 0 {
		return fmt.Errorf("tutor profile not found")
	}

	return nil
}

// SetRating overwrites the tutor's rating. Ratings come from an external
// review pipeline, profile owners cannot set their own.
func (r *TutorRepository) SetRating(ctx context.Context, userID int64, rating float64) error {
	affected, err := r.pool.Exec(ctx,
		`UPDATE tutor_profiles SET rating = $1 WHERE user_id = $2`, rating, userID)
	if err != nil {
		return fmt.Errorf("set rating: %w", err)
	}
	if affected.RowsAffected() == 0 {
		return fmt.Errorf("tutor profile not found")
	}

	return nil
}

// SetSubjects replaces the tutor's subject set. Unknown subject ids are
// silently dropped.
func (r *TutorRepository) SetSubjects(ctx context.Context, userID int64, subjectIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM tutor_subjects WHERE tutor_id = $1`, userID); err != nil {
		return fmt.Errorf("clear tutor subjects: %w", err)
	}

	query := `
		INSERT INTO tutor_subjects (tutor_id, subject_id)
		SELECT $1, id FROM subjects WHERE id = ANY($2)
	`
	if _, err := tx.Exec(ctx, query, userID, subjectIDs); err != nil {
		return fmt.Errorf("set tutor subjects: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func scanTutorProfile(row pgx.Row) (*model.TutorProfile, error) {
	var profile model.TutorProfile
	var user model.User
	err := row.Scan(
		&profile.UserID,
		&profile.Bio,
		&profile.HourlyRate,
		&profile.Rating,
		&profile.CreatedAt,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.ID = profile.UserID
	profile.User = &user
	return &profile, nil
}

func (r *TutorRepository) loadSubjects(ctx context.Context, tutors []*model.TutorProfile) error {
	if len(tutors) == 0 {
		return nil
	}

	ids := make([]int64, len(tutors))
	byID := make(map[int64]*model.TutorProfile, len(tutors))
	for i, t := range tutors {
		ids[i] = t.UserID
		byID[t.UserID] = t
	}

	query := `
		SELECT ts.tutor_id, s.id, s.name, s.created_at
		FROM tutor_subjects ts
		JOIN subjects s ON s.id = ts.subject_id
		WHERE ts.tutor_id = ANY($1)
		ORDER BY s.name ASC
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("load tutor subjects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tutorID int64
		var subject model.Subject
		if err := rows.Scan(&tutorID, &subject.ID, &subject.Name, &subject.CreatedAt); err != nil {
			return fmt.Errorf("scan tutor subject: %w", err)
		}
		if t, ok := byID[tutorID]; ok {
			t.Subjects = append(t.Subjects, &subject)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate tutor subjects: %w", err)
	}

	return nil
}
