package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/picourse/api/internal/model"
)

type SubjectRepository struct {
	pool *pgxpool.Pool
}

func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

func (r *SubjectRepository) Create(ctx context.Context, subject *model.Subject) error {
	query := `
		INSERT INTO subjects (name)
		VALUES ($1)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, subject.Name).Scan(&subject.ID, &subject.CreatedAt)
	if err != nil {
		return fmt.Errorf("create subject: %w", err)
	}

	return nil
}

func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*model.Subject, error) {
	query := `
		SELECT id, name, created_at
		FROM subjects
		WHERE id = $1
	`

	var subject model.Subject
	err := r.pool.QueryRow(ctx, query, id).Scan(&subject.ID, &subject.Name, &subject.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get subject: %w", err)
	}

	return &subject, nil
}

func (r *SubjectRepository) GetByName(ctx context.Context, name string) (*model.Subject, error) {
	query := `
		SELECT id, name, created_at
		FROM subjects
		WHERE name = $1
	`

	var subject model.Subject
	err := r.pool.QueryRow(ctx, query, name).Scan(&subject.ID, &subject.Name, &subject.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get subject by name: %w", err)
	}

	return &subject, nil
}

func (r *SubjectRepository) List(ctx context.Context) ([]*model.Subject, error) {
	query := `
		SELECT id, name, created_at
		FROM subjects
		ORDER BY name ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*model.Subject
	for rows.Next() {
		var subject model.Subject
		if err := rows.Scan(&subject.ID, &subject.Name, &subject.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, &subject)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subjects: %w", err)
	}

	return subjects, nil
}
