package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/picourse/api/internal/model"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// CreateWithProfile inserts the user and its role profile row in one
// transaction. Accounts always carry exactly one profile matching their role.
func (r *UserRepository) CreateWithProfile(ctx context.Context, user *model.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO users (email, password_hash, first_name, last_name, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRow(
		ctx, query,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	switch user.Role {
	case model.RoleStudent:
		_, err = tx.Exec(ctx, `INSERT INTO student_profiles (user_id) VALUES ($1)`, user.ID)
	case model.RoleTutor:
		_, err = tx.Exec(ctx, `INSERT INTO tutor_profiles (user_id) VALUES ($1)`, user.ID)
	default:
		err = fmt.Errorf("unknown role %q", user.Role)
	}
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, email, password_hash, first_name, last_name, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, email, password_hash, first_name, last_name, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

// GetTutor returns the user only when it exists and has the tutor role.
func (r *UserRepository) GetTutor(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, email, password_hash, first_name, last_name, role, created_at, updated_at
		FROM users
		WHERE id = $1 AND role = $2
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, id, model.RoleTutor).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get tutor: %w", err)
	}

	return &user, nil
}

// UpdateNames persists the mutable user fields.
func (r *UserRepository) UpdateNames(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET first_name = $1, last_name = $2, updated_at = now()
		WHERE id = $3
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query, user.FirstName, user.LastName, user.ID).Scan(&user.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return fmt.Errorf("user not found")
		}
		return fmt.Errorf("update user: %w", err)
	}

	return nil
}

func (r *UserRepository) GetStudentProfile(ctx context.Context, userID int64) (*model.StudentProfile, error) {
	query := `
		SELECT user_id, COALESCE(grade_level, ''), created_at
		FROM student_profiles
		WHERE user_id = $1
	`

	var profile model.StudentProfile
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.GradeLevel,
		&profile.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get student profile: %w", err)
	}

	return &profile, nil
}

func (r *UserRepository) SetGradeLevel(ctx context.Context, userID int64, gradeLevel string) error {
	query := `
		UPDATE student_profiles
		SET grade_level = $1
		WHERE user_id = $2
	`

	affected, err := r.pool.Exec(ctx, query, gradeLevel, userID)
	if err != nil {
		return fmt.Errorf("set grade level: %w", err)
	}
	if affected.RowsAffected() == 0 {
		return fmt.Errorf("student profile not found")
	}

	return nil
}
