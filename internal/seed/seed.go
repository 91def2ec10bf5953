// Package seed creates demo accounts and sample data for local
// environments. Running it twice is safe: existing rows are kept.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/picourse/api/internal/model"
	"github.com/picourse/api/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const demoPassword = "DemoPass123!"

type Seeder struct {
	Users    *repository.UserRepository
	Tutors   *repository.TutorRepository
	Subjects *repository.SubjectRepository
	Lessons  *repository.LessonRequestRepository
	Logger   *zap.Logger
}

type studentSeed struct {
	email      string
	firstName  string
	lastName   string
	gradeLevel string
}

type tutorSeed struct {
	email      string
	firstName  string
	lastName   string
	bio        string
	hourlyRate string
	rating     float64
	subjects   []string
}

var (
	subjectNames = []string{"Mathematics", "Physics", "Chemistry", "Biology", "English"}

	students = []studentSeed{
		{"student@demo.com", "Ali", "Yılmaz", "11th Grade"},
		{"student2@demo.com", "Ayşe", "Kaya", "12th Grade"},
	}

	tutors = []tutorSeed{
		{"tutor@demo.com", "Dr. Mehmet", "Özkan",
			"Mathematics PhD from ODTU. 10+ years teaching experience.",
			"500.00", 4.8, []string{"Mathematics", "Physics"}},
		{"tutor2@demo.com", "Dr. Fatma", "Demir",
			"Physics PhD from ITU. Expert in quantum mechanics.",
			"600.00", 4.9, []string{"Physics", "Mathematics"}},
		{"tutor3@demo.com", "Prof. Ahmet", "Yıldız",
			"Chemistry professor with 15+ years experience.",
			"550.00", 4.7, []string{"Chemistry", "Biology"}},
		{"tutor4@demo.com", "Zeynep", "Arslan",
			"English Literature graduate, CELTA certified.",
			"400.00", 4.6, []string{"English"}},
		{"tutor5@demo.com", "Dr. Can", "Şahin",
			"Biology PhD, specializing in molecular biology.",
			"520.00", 4.5, []string{"Biology", "Chemistry"}},
	}
)

// Run inserts subjects, demo accounts and one sample lesson request.
func (s *Seeder) Run(ctx context.Context) error {
	subjectsByName := make(map[string]*model.Subject, len(subjectNames))
	for _, name := range subjectNames {
		subject, err := s.Subjects.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if subject == nil {
			subject = &model.Subject{Name: name}
			if err := s.Subjects.Create(ctx, subject); err != nil {
				return err
			}
			s.Logger.Info("seeded subject", zap.String("name", name))
		}
		subjectsByName[name] = subject
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	var firstStudent, firstTutor *model.User

	for _, st := range students {
		user, err := s.ensureUser(ctx, st.email, st.firstName, st.lastName, model.RoleStudent, string(hash))
		if err != nil {
			return err
		}
		if user != nil {
			if err := s.Users.SetGradeLevel(ctx, user.ID, st.gradeLevel); err != nil {
				return err
			}
		} else if user, err = s.Users.GetByEmail(ctx, st.email); err != nil {
			return err
		}
		if firstStudent == nil {
			firstStudent = user
		}
	}

	for _, tu := range tutors {
		user, err := s.ensureUser(ctx, tu.email, tu.firstName, tu.lastName, model.RoleTutor, string(hash))
		if err != nil {
			return err
		}
		if user != nil {
			rate, err := decimal.NewFromString(tu.hourlyRate)
			if err != nil {
				return fmt.Errorf("parse hourly rate %q: %w", tu.hourlyRate, err)
			}
			bio := tu.bio
			if err := s.Tutors.UpdateProfile(ctx, user.ID, &bio, &rate); err != nil {
				return err
			}
			if err := s.Tutors.SetRating(ctx, user.ID, tu.rating); err != nil {
				return err
			}
			ids := make([]int64, 0, len(tu.subjects))
			for _, name := range tu.subjects {
				ids = append(ids, subjectsByName[name].ID)
			}
			if err := s.Tutors.SetSubjects(ctx, user.ID, ids); err != nil {
				return err
			}
		} else if user, err = s.Users.GetByEmail(ctx, tu.email); err != nil {
			return err
		}
		if firstTutor == nil {
			firstTutor = user
		}
	}

	if firstStudent != nil && firstTutor != nil {
		existing, err := s.Lessons.List(ctx, repository.LessonRequestFilter{StudentID: &firstStudent.ID})
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			req := &model.LessonRequest{
				StudentID:       firstStudent.ID,
				TutorID:         firstTutor.ID,
				SubjectID:       subjectsByName["Mathematics"].ID,
				StartTime:       time.Now().Add(3 * 24 * time.Hour),
				DurationMinutes: 60,
				Note:            "Need help with calculus",
			}
			if err := s.Lessons.Create(ctx, req); err != nil {
				return err
			}
			s.Logger.Info("seeded sample lesson request", zap.Int64("request_id", req.ID))
		}
	}

	s.Logger.Info("seed data ready",
		zap.String("student", "student@demo.com / "+demoPassword),
		zap.String("tutor", "tutor@demo.com / "+demoPassword),
	)

	return nil
}

// ensureUser creates the account when missing. Returns nil when it
// already existed.
func (s *Seeder) ensureUser(ctx context.Context, email, firstName, lastName string, role model.Role, hash string) (*model.User, error) {
	existing, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, nil
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
	}
	if err := s.Users.CreateWithProfile(ctx, user); err != nil {
		return nil, err
	}

	s.Logger.Info("seeded user", zap.String("email", email), zap.String("role", string(role)))

	return user, nil
}
