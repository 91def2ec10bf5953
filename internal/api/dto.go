package api

import (
	"time"

	"github.com/picourse/api/internal/model"
	"github.com/picourse/api/internal/service"
	"github.com/shopspring/decimal"
)

// ---- request bodies ----

type registerRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
	Role            string `json:"role" validate:"required,oneof=student tutor"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type updateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`

	// Student fields
	GradeLevel *string `json:"grade_level"`

	// Tutor fields
	Bio        *string          `json:"bio"`
	HourlyRate *decimal.Decimal `json:"hourly_rate"`
	SubjectIDs []int64          `json:"subject_ids"`
}

type createLessonRequest struct {
	TutorID         int64     `json:"tutor_id" validate:"required"`
	SubjectID       int64     `json:"subject_id" validate:"required"`
	StartTime       time.Time `json:"start_time" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required"`
	Note            string    `json:"note"`
}

type updateLessonRequest struct {
	Status string `json:"status" validate:"required"`
}

// ---- response payloads ----

type subjectPayload struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func newSubjectPayloads(subjects []*model.Subject) []subjectPayload {
	out := make([]subjectPayload, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, subjectPayload{ID: s.ID, Name: s.Name})
	}
	return out
}

type tutorPayload struct {
	ID         int64            `json:"id"`
	Name       string           `json:"name"`
	Bio        string           `json:"bio"`
	HourlyRate decimal.Decimal  `json:"hourly_rate"`
	Rating     float64          `json:"rating"`
	Subjects   []subjectPayload `json:"subjects"`
}

func newTutorPayload(t *model.TutorProfile) tutorPayload {
	p := tutorPayload{
		ID:         t.UserID,
		Bio:        t.Bio,
		HourlyRate: t.HourlyRate,
		Rating:     t.Rating,
		Subjects:   newSubjectPayloads(t.Subjects),
	}
	if t.User != nil {
		p.Name = t.User.Name()
	}
	return p
}

type tutorDetailPayload struct {
	tutorPayload
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func newTutorDetailPayload(t *model.TutorProfile) tutorDetailPayload {
	p := tutorDetailPayload{tutorPayload: newTutorPayload(t)}
	if t.User != nil {
		p.Email = t.User.Email
		p.FirstName = t.User.FirstName
		p.LastName = t.User.LastName
	}
	return p
}

type studentProfilePayload struct {
	GradeLevel string `json:"grade_level"`
}

type tutorProfilePayload struct {
	Name       string           `json:"name"`
	Bio        string           `json:"bio"`
	HourlyRate decimal.Decimal  `json:"hourly_rate"`
	Rating     float64          `json:"rating"`
	Subjects   []subjectPayload `json:"subjects"`
}

type profilePayload struct {
	ID             int64                  `json:"id"`
	Email          string                 `json:"email"`
	FirstName      string                 `json:"first_name"`
	LastName       string                 `json:"last_name"`
	Role           model.Role             `json:"role"`
	StudentProfile *studentProfilePayload `json:"student_profile,omitempty"`
	TutorProfile   *tutorProfilePayload   `json:"tutor_profile,omitempty"`
}

func newProfilePayload(view *service.ProfileView) profilePayload {
	p := profilePayload{
		ID:        view.User.ID,
		Email:     view.User.Email,
		FirstName: view.User.FirstName,
		LastName:  view.User.LastName,
		Role:      view.User.Role,
	}
	if view.Student != nil {
		p.StudentProfile = &studentProfilePayload{GradeLevel: view.Student.GradeLevel}
	}
	if view.Tutor != nil {
		p.TutorProfile = &tutorProfilePayload{
			Name:       view.User.Name(),
			Bio:        view.Tutor.Bio,
			HourlyRate: view.Tutor.HourlyRate,
			Rating:     view.Tutor.Rating,
			Subjects:   newSubjectPayloads(view.Tutor.Subjects),
		}
	}
	return p
}

type lessonRequestPayload struct {
	ID              int64              `json:"id"`
	StudentEmail    string             `json:"student_email"`
	TutorEmail      string             `json:"tutor_email"`
	TutorName       string             `json:"tutor_name"`
	SubjectName     string             `json:"subject_name"`
	StartTime       time.Time          `json:"start_time"`
	DurationMinutes int                `json:"duration_minutes"`
	Status          model.LessonStatus `json:"status"`
	Note            string             `json:"note"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

func newLessonRequestPayload(req *model.LessonRequest) lessonRequestPayload {
	p := lessonRequestPayload{
		ID:              req.ID,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Status:          req.Status,
		Note:            req.Note,
		CreatedAt:       req.CreatedAt,
		UpdatedAt:       req.UpdatedAt,
	}
	if req.Student != nil {
		p.StudentEmail = req.Student.Email
	}
	if req.Tutor != nil {
		p.TutorEmail = req.Tutor.Email
		p.TutorName = req.Tutor.Name()
	}
	if req.Subject != nil {
		p.SubjectName = req.Subject.Name
	}
	return p
}

func newLessonRequestPayloads(requests []*model.LessonRequest) []lessonRequestPayload {
	out := make([]lessonRequestPayload, 0, len(requests))
	for _, req := range requests {
		out = append(out, newLessonRequestPayload(req))
	}
	return out
}
