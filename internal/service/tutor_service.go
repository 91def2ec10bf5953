package service

import (
	"context"

	"github.com/picourse/api/internal/model"
	"github.com/picourse/api/internal/repository"
	"go.uber.org/zap"
)

// TutorCatalog is the tutor discovery surface. Implemented by
// repository.TutorRepository.
type TutorCatalog interface {
	List(ctx context.Context, f repository.TutorFilter) ([]*model.TutorProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*model.TutorProfile, error)
}

// SubjectStore lists and resolves subjects. Implemented by
// repository.SubjectRepository.
type SubjectStore interface {
	List(ctx context.Context) ([]*model.Subject, error)
	GetByID(ctx context.Context, id int64) (*model.Subject, error)
}

// TutorService serves the public discovery endpoints: subjects and the
// tutor catalog with search and ordering.
type TutorService struct {
	tutors   TutorCatalog
	subjects SubjectStore
	logger   *zap.Logger
}

func NewTutorService(tutors TutorCatalog, subjects SubjectStore, logger *zap.Logger) *TutorService {
	return &TutorService{
		tutors:   tutors,
		subjects: subjects,
		logger:   logger,
	}
}

func (s *TutorService) ListSubjects(ctx context.Context) ([]*model.Subject, error) {
	return s.subjects.List(ctx)
}

type ListTutorsInput struct {
	SubjectID *int64
	Search    string
	Ordering  string
}

// ListTutors returns tutor profiles filtered by subject and search text.
// Unknown orderings fall back to rating, best first.
func (s *TutorService) ListTutors(ctx context.Context, in ListTutorsInput) ([]*model.TutorProfile, error) {
	f := repository.TutorFilter{
		SubjectID: in.SubjectID,
		Search:    in.Search,
		Order:     repository.TutorOrderRatingDesc,
	}

	switch repository.TutorOrder(in.Ordering) {
	case repository.TutorOrderRatingAsc,
		repository.TutorOrderRatingDesc,
		repository.TutorOrderRateAsc,
		repository.TutorOrderRateDesc:
		f.Order = repository.TutorOrder(in.Ordering)
	}

	return s.tutors.List(ctx, f)
}

func (s *TutorService) GetTutor(ctx context.Context, userID int64) (*model.TutorProfile, error) {
	profile, err := s.tutors.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, &NotFoundError{Kind: "tutor", ID: userID}
	}
	return profile, nil
}
