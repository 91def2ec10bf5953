package repository

import (
	"context"

	"github.com/picourse/api/internal/model"
)

// Directory bundles the read-only lookups the lesson workflow validates
// against: tutors and subjects by id.
type Directory struct {
	Users    *UserRepository
	Subjects *SubjectRepository
}

func NewDirectory(users *UserRepository, subjects *SubjectRepository) *Directory {
	return &Directory{Users: users, Subjects: subjects}
}

func (d *Directory) GetTutor(ctx context.Context, id int64) (*model.User, error) {
	return d.Users.GetTutor(ctx, id)
}

func (d *Directory) GetSubject(ctx context.Context, id int64) (*model.Subject, error) {
	return d.Subjects.GetByID(ctx, id)
}
