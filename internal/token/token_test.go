package token

import (
	"testing"

	"github.com/picourse/api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m := NewManager("test-secret")
	principal := model.Principal{ID: 7, Role: model.RoleTutor}

	pair, err := m.Issue(principal)
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	claims, err := m.Parse(pair.Access, KindAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, model.RoleTutor, claims.Role)
	assert.Equal(t, KindAccess, claims.Kind)
	assert.NotEmpty(t, claims.ID, "every token carries a unique id")

	refresh, err := m.Parse(pair.Refresh, KindRefresh)
	require.NoError(t, err)
	assert.Equal(t, KindRefresh, refresh.Kind)
}

func TestParse_KindMismatch(t *testing.T) {
	m := NewManager("test-secret")

	pair, err := m.Issue(model.Principal{ID: 1, Role: model.RoleStudent})
	require.NoError(t, err)

	_, err = m.Parse(pair.Refresh, KindAccess)
	assert.Error(t, err)

	_, err = m.Parse(pair.Access, KindRefresh)
	assert.Error(t, err)
}

func TestParse_WrongSecret(t *testing.T) {
	pair, err := NewManager("secret-a").Issue(model.Principal{ID: 1, Role: model.RoleStudent})
	require.NoError(t, err)

	_, err = NewManager("secret-b").Parse(pair.Access, KindAccess)
	assert.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	_, err := NewManager("test-secret").Parse("definitely.not.jwt", KindAccess)
	assert.Error(t, err)
}
