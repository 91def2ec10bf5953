package model

import "time"

type LessonStatus string

const (
	LessonStatusPending  LessonStatus = "pending"  // Waiting for the tutor's decision
	LessonStatusApproved LessonStatus = "approved" // Accepted by the tutor
	LessonStatusRejected LessonStatus = "rejected" // Declined by the tutor
)

// Valid reports whether s is one of the known lesson request statuses.
func (s LessonStatus) Valid() bool {
	return s == LessonStatusPending || s == LessonStatusApproved || s == LessonStatusRejected
}

// LessonRequest represents a student's proposal for a lesson with a tutor.
// It is created pending and moves to approved or rejected by the named tutor.
type LessonRequest struct {
	ID              int64        `json:"id"`
	StudentID       int64        `json:"student_id"`
	TutorID         int64        `json:"tutor_id"`
	SubjectID       int64        `json:"subject_id"`
	StartTime       time.Time    `json:"start_time"`
	DurationMinutes int          `json:"duration_minutes"`
	Status          LessonStatus `json:"status"`
	Note            string       `json:"note"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`

	// Filled by joins for presentation, not stored in lesson_requests itself
	Student *User    `json:"student,omitempty"`
	Tutor   *User    `json:"tutor,omitempty"`
	Subject *Subject `json:"subject,omitempty"`
}

// IsPending checks if the request still awaits a decision.
func (r *LessonRequest) IsPending() bool {
	return r.Status == LessonStatusPending
}

// IsApproved checks if the request was accepted.
func (r *LessonRequest) IsApproved() bool {
	return r.Status == LessonStatusApproved
}

// IsRejected checks if the request was declined.
func (r *LessonRequest) IsRejected() bool {
	return r.Status == LessonStatusRejected
}
