package service

import (
	"context"

	"github.com/picourse/api/internal/model"
	"github.com/picourse/api/internal/token"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the account persistence surface. Implemented by
// repository.UserRepository; lookups return (nil, nil) when no row matches.
type UserStore interface {
	CreateWithProfile(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateNames(ctx context.Context, user *model.User) error
	GetStudentProfile(ctx context.Context, userID int64) (*model.StudentProfile, error)
	SetGradeLevel(ctx context.Context, userID int64, gradeLevel string) error
}

// TutorProfileStore is the tutor-profile surface the auth service needs
// for /me. Implemented by repository.TutorRepository.
type TutorProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*model.TutorProfile, error)
	UpdateProfile(ctx context.Context, userID int64, bio *string, hourlyRate *decimal.Decimal) error
	SetSubjects(ctx context.Context, userID int64, subjectIDs []int64) error
}

type AuthService struct {
	users  UserStore
	tutors TutorProfileStore
	tokens *token.Manager
	logger *zap.Logger
}

func NewAuthService(users UserStore, tutors TutorProfileStore, tokens *token.Manager, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tutors: tutors,
		tokens: tokens,
		logger: logger,
	}
}

type RegisterInput struct {
	Email           string
	Password        string
	PasswordConfirm string
	Role            model.Role
	FirstName       string
	LastName        string
}

// Register creates the account and its role profile.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if !in.Role.Valid() {
		return nil, &InvalidArgumentError{Field: "role", Reason: "must be 'student' or 'tutor'"}
	}
	if in.Password != in.PasswordConfirm {
		return nil, &InvalidArgumentError{Field: "password_confirm", Reason: "passwords don't match"}
	}

	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &InvalidArgumentError{Field: "email", Reason: "already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
	}

	if err := s.users.CreateWithProfile(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
	)

	return user, nil
}

// Login checks credentials and issues a token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (token.Pair, *model.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return token.Pair{}, nil, err
	}
	if user == nil {
		return token.Pair{}, nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return token.Pair{}, nil, ErrInvalidCredentials
	}

	pair, err := s.tokens.Issue(model.Principal{ID: user.ID, Role: user.Role})
	if err != nil {
		return token.Pair{}, nil, err
	}

	s.logger.Info("user logged in", zap.Int64("user_id", user.ID))

	return pair, user, nil
}

// Refresh exchanges a valid refresh token for a fresh pair. The account is
// re-checked so deleted users cannot keep refreshing.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (token.Pair, error) {
	claims, err := s.tokens.Parse(refreshToken, token.KindRefresh)
	if err != nil {
		return token.Pair{}, ErrInvalidCredentials
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return token.Pair{}, err
	}
	if user == nil {
		return token.Pair{}, ErrInvalidCredentials
	}

	return s.tokens.Issue(model.Principal{ID: user.ID, Role: user.Role})
}

// ProfileView is the user plus its role-specific half.
type ProfileView struct {
	User    *model.User
	Student *model.StudentProfile
	Tutor   *model.TutorProfile
}

// Profile loads the current user and the profile matching its role.
func (s *AuthService) Profile(ctx context.Context, principal model.Principal) (*ProfileView, error) {
	user, err := s.users.GetByID(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &NotFoundError{Kind: "user", ID: principal.ID}
	}

	view := &ProfileView{User: user}
	switch user.Role {
	case model.RoleStudent:
		view.Student, err = s.users.GetStudentProfile(ctx, user.ID)
	case model.RoleTutor:
		view.Tutor, err = s.tutors.GetByUserID(ctx, user.ID)
	}
	if err != nil {
		return nil, err
	}

	return view, nil
}

type UpdateProfileInput struct {
	FirstName *string
	LastName  *string

	// Student fields
	GradeLevel *string

	// Tutor fields
	Bio        *string
	HourlyRate *decimal.Decimal
	SubjectIDs []int64
}

// UpdateProfile applies a partial update. Fields belonging to the other
// role are ignored rather than rejected.
func (s *AuthService) UpdateProfile(ctx context.Context, principal model.Principal, in UpdateProfileInput) (*ProfileView, error) {
	user, err := s.users.GetByID(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &NotFoundError{Kind: "user", ID: principal.ID}
	}

	if in.FirstName != nil || in.LastName != nil {
		if in.FirstName != nil {
			user.FirstName = *in.FirstName
		}
		if in.LastName != nil {
			user.LastName = *in.LastName
		}
		if err := s.users.UpdateNames(ctx, user); err != nil {
			return nil, err
		}
	}

	switch user.Role {
	case model.RoleStudent:
		if in.GradeLevel != nil {
			if err := s.users.SetGradeLevel(ctx, user.ID, *in.GradeLevel); err != nil {
				return nil, err
			}
		}
	case model.RoleTutor:
		if in.Bio != nil || in.HourlyRate != nil {
			if err := s.tutors.UpdateProfile(ctx, user.ID, in.Bio, in.HourlyRate); err != nil {
				return nil, err
			}
		}
		if in.SubjectIDs != nil {
			if err := s.tutors.SetSubjects(ctx, user.ID, in.SubjectIDs); err != nil {
				return nil, err
			}
		}
	}

	s.logger.Info("profile updated", zap.Int64("user_id", user.ID))

	return s.Profile(ctx, principal)
}
