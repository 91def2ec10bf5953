package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleStudent.Valid())
	assert.True(t, RoleTutor.Valid())
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}

func TestLessonStatusValid(t *testing.T) {
	assert.True(t, LessonStatusPending.Valid())
	assert.True(t, LessonStatusApproved.Valid())
	assert.True(t, LessonStatusRejected.Valid())
	assert.False(t, LessonStatus("cancelled").Valid())
	assert.False(t, LessonStatus("").Valid())
}

func TestUserName(t *testing.T) {
	u := &User{Email: "ayse@demo.com", FirstName: "Ayşe", LastName: "Yılmaz"}
	assert.Equal(t, "Ayşe Yılmaz", u.Name())

	u = &User{Email: "ayse@demo.com", FirstName: "Ayşe"}
	assert.Equal(t, "Ayşe", u.Name())

	u = &User{Email: "ayse@demo.com"}
	assert.Equal(t, "ayse@demo.com", u.Name())
}
