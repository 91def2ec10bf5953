package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StudentProfile holds the student-specific half of an account.
type StudentProfile struct {
	UserID     int64     `json:"user_id"`
	GradeLevel string    `json:"grade_level"`
	CreatedAt  time.Time `json:"created_at"`
}

// TutorProfile holds the tutor-specific half of an account.
type TutorProfile struct {
	UserID     int64           `json:"user_id"`
	Bio        string          `json:"bio"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	Rating     float64         `json:"rating"`
	CreatedAt  time.Time       `json:"created_at"`

	// Filled by joins, not stored in tutor_profiles itself
	Subjects []*Subject `json:"subjects,omitempty"`
	User     *User      `json:"user,omitempty"`
}
