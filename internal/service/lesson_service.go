package service

import (
	"context"
	"time"

	"github.com/picourse/api/internal/model"
	"github.com/picourse/api/internal/repository"
	"go.uber.org/zap"
)

// LessonRequestStore is the persistence surface the lesson workflow needs.
// Implemented by repository.LessonRequestRepository; lookups return
// (nil, nil) when no row matches.
type LessonRequestStore interface {
	Create(ctx context.Context, req *model.LessonRequest) error
	GetByID(ctx context.Context, id int64) (*model.LessonRequest, error)
	List(ctx context.Context, f repository.LessonRequestFilter) ([]*model.LessonRequest, error)
	UpdateStatus(ctx context.Context, id int64, status model.LessonStatus) (*model.LessonRequest, error)
}

// Directory is the read-only lookup used to validate referenced tutors
// and subjects at creation time. Implemented by repository.Directory.
type Directory interface {
	GetTutor(ctx context.Context, id int64) (*model.User, error)
	GetSubject(ctx context.Context, id int64) (*model.Subject, error)
}

// LessonService owns the lesson request lifecycle: students propose,
// the named tutor approves or rejects, and listing is always scoped to
// the calling principal.
type LessonService struct {
	store     LessonRequestStore
	directory Directory
	logger    *zap.Logger
}

func NewLessonService(store LessonRequestStore, directory Directory, logger *zap.Logger) *LessonService {
	return &LessonService{
		store:     store,
		directory: directory,
		logger:    logger,
	}
}

type CreateLessonInput struct {
	TutorID         int64
	SubjectID       int64
	StartTime       time.Time
	DurationMinutes int
	Note            string
}

// Create validates the proposal and persists it with status pending.
// Only student principals may create requests; the tutor and subject must
// exist at creation time and are not re-validated later.
func (s *LessonService) Create(ctx context.Context, principal model.Principal, in CreateLessonInput) (*model.LessonRequest, error) {
	if principal.Role != model.RoleStudent {
		return nil, &ForbiddenError{Reason: "only students can create lesson requests"}
	}
	if in.DurationMinutes <= 0 {
		return nil, &InvalidArgumentError{Field: "duration_minutes", Reason: "must be a positive integer"}
	}
	if in.StartTime.IsZero() {
		return nil, &InvalidArgumentError{Field: "start_time", Reason: "must be a valid timestamp"}
	}

	tutor, err := s.directory.GetTutor(ctx, in.TutorID)
	if err != nil {
		return nil, err
	}
	if tutor == nil {
		return nil, &NotFoundError{Kind: "tutor", ID: in.TutorID}
	}

	subject, err := s.directory.GetSubject(ctx, in.SubjectID)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, &NotFoundError{Kind: "subject", ID: in.SubjectID}
	}

	req := &model.LessonRequest{
		StudentID:       principal.ID,
		TutorID:         tutor.ID,
		SubjectID:       subject.ID,
		StartTime:       in.StartTime,
		DurationMinutes: in.DurationMinutes,
		Status:          model.LessonStatusPending,
		Note:            in.Note,
	}

	if err := s.store.Create(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info("lesson request created",
		zap.Int64("request_id", req.ID),
		zap.Int64("student_id", req.StudentID),
		zap.Int64("tutor_id", req.TutorID),
		zap.Int64("subject_id", req.SubjectID),
	)

	return req, nil
}

// UpdateStatus moves the request to approved or rejected. Only the named
// tutor may decide, and pending is not a settable target. There is no
// precondition on the current status: re-approving an already decided
// request is an idempotent overwrite.
func (s *LessonService) UpdateStatus(ctx context.Context, principal model.Principal, requestID int64, status model.LessonStatus) (*model.LessonRequest, error) {
	req, err := s.store.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, &NotFoundError{Kind: "lesson request", ID: requestID}
	}

	if principal.Role != model.RoleTutor {
		return nil, &ForbiddenError{Reason: "only tutors can decide lesson requests"}
	}
	if req.TutorID != principal.ID {
		return nil, &ForbiddenError{Reason: "lesson request belongs to another tutor"}
	}
	if status != model.LessonStatusApproved && status != model.LessonStatusRejected {
		return nil, &InvalidArgumentError{Field: "status", Reason: "must be 'approved' or 'rejected'"}
	}

	updated, err := s.store.UpdateStatus(ctx, requestID, status)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, &NotFoundError{Kind: "lesson request", ID: requestID}
	}

	s.logger.Info("lesson request decided",
		zap.Int64("request_id", updated.ID),
		zap.Int64("tutor_id", principal.ID),
		zap.String("status", string(updated.Status)),
	)

	return updated, nil
}

// List returns the principal's requests, most recent first. An explicit
// role filter picks which side of the request the caller appears on; the
// scoping column is always tied to principal.ID, so no query can reach
// another user's records. Unknown status filters are ignored.
func (s *LessonService) List(ctx context.Context, principal model.Principal, roleFilter, statusFilter string) ([]*model.LessonRequest, error) {
	var f repository.LessonRequestFilter

	switch model.Role(roleFilter) {
	case model.RoleStudent:
		f.StudentID = &principal.ID
	case model.RoleTutor:
		f.TutorID = &principal.ID
	default:
		if principal.Role == model.RoleStudent {
			f.StudentID = &principal.ID
		} else {
			f.TutorID = &principal.ID
		}
	}

	if status := model.LessonStatus(statusFilter); status.Valid() {
		f.Status = &status
	}

	return s.store.List(ctx, f)
}
