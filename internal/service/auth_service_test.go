package service

import (
	"context"
	"strings"
	"testing"

	"github.com/picourse/api/internal/model"
	"github.com/picourse/api/internal/token"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUserStore struct {
	nextID   int64
	users    map[int64]model.User
	grades   map[int64]string
	profiled map[int64]model.Role
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:    make(map[int64]model.User),
		grades:   make(map[int64]string),
		profiled: make(map[int64]model.Role),
	}
}

func (f *fakeUserStore) CreateWithProfile(_ context.Context, user *model.User) error {
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = *user
	f.profiled[user.ID] = user.Role
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for id := range f.users {
		if strings.EqualFold(f.users[id].Email, email) {
			u := f.users[id]
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) UpdateNames(_ context.Context, user *model.User) error {
	u := f.users[user.ID]
	u.FirstName = user.FirstName
	u.LastName = user.LastName
	f.users[user.ID] = u
	return nil
}

func (f *fakeUserStore) GetStudentProfile(_ context.Context, userID int64) (*model.StudentProfile, error) {
	if f.profiled[userID] != model.RoleStudent {
		return nil, nil
	}
	return &model.StudentProfile{UserID: userID, GradeLevel: f.grades[userID]}, nil
}

func (f *fakeUserStore) SetGradeLevel(_ context.Context, userID int64, gradeLevel string) error {
	f.grades[userID] = gradeLevel
	return nil
}

type fakeTutorStore struct {
	bios     map[int64]string
	rates    map[int64]decimal.Decimal
	subjects map[int64][]int64
}

func newFakeTutorStore() *fakeTutorStore {
	return &fakeTutorStore{
		bios:     make(map[int64]string),
		rates:    make(map[int64]decimal.Decimal),
		subjects: make(map[int64][]int64),
	}
}

func (f *fakeTutorStore) GetByUserID(_ context.Context, userID int64) (*model.TutorProfile, error) {
	return &model.TutorProfile{
		UserID:     userID,
		Bio:        f.bios[userID],
		HourlyRate: f.rates[userID],
	}, nil
}

func (f *fakeTutorStore) UpdateProfile(_ context.Context, userID int64, bio *string, hourlyRate *decimal.Decimal) error {
	if bio != nil {
		f.bios[userID] = *bio
	}
	if hourlyRate != nil {
		f.rates[userID] = *hourlyRate
	}
	return nil
}

func (f *fakeTutorStore) SetSubjects(_ context.Context, userID int64, subjectIDs []int64) error {
	f.subjects[userID] = subjectIDs
	return nil
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserStore, *fakeTutorStore) {
	t.Helper()
	users := newFakeUserStore()
	tutors := newFakeTutorStore()
	tokens := token.NewManager("test-secret")
	return NewAuthService(users, tutors, tokens, zap.NewNop()), users, tutors
}

func registerInput(role model.Role) RegisterInput {
	return RegisterInput{
		Email:           "ayse@demo.com",
		Password:        "DemoPass123!",
		PasswordConfirm: "DemoPass123!",
		Role:            role,
		FirstName:       "Ayşe",
		LastName:        "Yılmaz",
	}
}

func TestRegister_CreatesUserWithRoleProfile(t *testing.T) {
	svc, users, _ := newAuthFixture(t)

	user, err := svc.Register(context.Background(), registerInput(model.RoleStudent))
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, model.RoleStudent, user.Role)
	assert.NotEqual(t, "DemoPass123!", user.PasswordHash, "password must be hashed")
	assert.Equal(t, model.RoleStudent, users.profiled[user.ID])
}

func TestRegister_RejectsInvalidRole(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	in := registerInput("admin")
	_, err := svc.Register(context.Background(), in)
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
}

func TestRegister_RejectsPasswordMismatch(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	in := registerInput(model.RoleStudent)
	in.PasswordConfirm = "something else"
	_, err := svc.Register(context.Background(), in)
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), registerInput(model.RoleStudent))
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerInput(model.RoleTutor))
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
}

func TestLogin_IssuesTokenPair(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	registered, err := svc.Register(context.Background(), registerInput(model.RoleTutor))
	require.NoError(t, err)

	pair, user, err := svc.Login(context.Background(), "ayse@demo.com", "DemoPass123!")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), registerInput(model.RoleStudent))
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "ayse@demo.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, _, err := svc.Login(context.Background(), "nobody@demo.com", "DemoPass123!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_ExchangesRefreshToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), registerInput(model.RoleStudent))
	require.NoError(t, err)
	pair, _, err := svc.Login(context.Background(), "ayse@demo.com", "DemoPass123!")
	require.NoError(t, err)

	fresh, err := svc.Refresh(context.Background(), pair.Refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.Access)
	assert.NotEmpty(t, fresh.Refresh)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), registerInput(model.RoleStudent))
	require.NoError(t, err)
	pair, _, err := svc.Login(context.Background(), "ayse@demo.com", "DemoPass123!")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), pair.Access)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_RejectsGarbage(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProfile_MatchesRole(t *testing.T) {
	svc, users, _ := newAuthFixture(t)

	user, err := svc.Register(context.Background(), registerInput(model.RoleStudent))
	require.NoError(t, err)
	require.NoError(t, users.SetGradeLevel(context.Background(), user.ID, "11"))

	view, err := svc.Profile(context.Background(), model.Principal{ID: user.ID, Role: user.Role})
	require.NoError(t, err)
	require.NotNil(t, view.Student)
	assert.Equal(t, "11", view.Student.GradeLevel)
	assert.Nil(t, view.Tutor)
}

func TestProfile_UnknownUser(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Profile(context.Background(), model.Principal{ID: 42, Role: model.RoleStudent})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	user, err := svc.Register(context.Background(), registerInput(model.RoleStudent))
	require.NoError(t, err)
	principal := model.Principal{ID: user.ID, Role: user.Role}

	first := "Fatma"
	grade := "12"
	view, err := svc.UpdateProfile(context.Background(), principal, UpdateProfileInput{
		FirstName:  &first,
		GradeLevel: &grade,
	})
	require.NoError(t, err)

	assert.Equal(t, "Fatma", view.User.FirstName)
	assert.Equal(t, "Yılmaz", view.User.LastName, "untouched fields keep their value")
	require.NotNil(t, view.Student)
	assert.Equal(t, "12", view.Student.GradeLevel)
}

func TestUpdateProfile_IgnoresOtherRoleFields(t *testing.T) {
	svc, _, tutors := newAuthFixture(t)

	user, err := svc.Register(context.Background(), registerInput(model.RoleStudent))
	require.NoError(t, err)

	bio := "Experienced tutor"
	_, err = svc.UpdateProfile(context.Background(), model.Principal{ID: user.ID, Role: user.Role}, UpdateProfileInput{
		Bio: &bio,
	})
	require.NoError(t, err)
	assert.Empty(t, tutors.bios, "tutor fields are ignored for students")
}

func TestUpdateProfile_TutorFields(t *testing.T) {
	svc, _, tutors := newAuthFixture(t)

	user, err := svc.Register(context.Background(), registerInput(model.RoleTutor))
	require.NoError(t, err)
	principal := model.Principal{ID: user.ID, Role: user.Role}

	bio := "Math olympiad coach"
	rate := decimal.NewFromInt(500)
	view, err := svc.UpdateProfile(context.Background(), principal, UpdateProfileInput{
		Bio:        &bio,
		HourlyRate: &rate,
		SubjectIDs: []int64{1, 2},
	})
	require.NoError(t, err)

	require.NotNil(t, view.Tutor)
	assert.Equal(t, "Math olympiad coach", view.Tutor.Bio)
	assert.True(t, rate.Equal(view.Tutor.HourlyRate))
	assert.Equal(t, []int64{1, 2}, tutors.subjects[user.ID])
}
