package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_PrimaryRole(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  Role
	}{
		{"admin first", []string{"admin", "user"}, RoleAdmin},
		{"manager", []string{"manager"}, RoleManager},
		{"mixed case", []string{" User "}, RoleUser},
		{"none", nil, ""},
		{"unknown", []string{"auditor"}, Role("auditor")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, User{Roles: tt.roles}.PrimaryRole())
		})
	}
}

func TestUser_Validate(t *testing.T) {
	assert.NoError(t, User{ID: 1, Email: "a@b.c"}.Validate())
	assert.ErrorIs(t, User{Email: "a@b.c"}.Validate(), ErrMissingUserID)
	assert.ErrorIs(t, User{ID: 1, Email: "  "}.Validate(), ErrMissingEmail)
}

func TestUser_JSONShape(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"name":"Ann","email":"ann@x.io","roles":["manager"]}`), &u))
	assert.Equal(t, User{ID: 3, Name: "Ann", Email: "ann@x.io", Roles: []string{"manager"}}, u)
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("high")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	_, err = ParsePriority("urgent")
	assert.Error(t, err)
}

func TestResource_AssignedTo(t *testing.T) {
	id := int64(9)
	assert.True(t, Resource{ManagerID: &id}.AssignedTo(9))
	assert.False(t, Resource{ManagerID: &id}.AssignedTo(8))
	assert.False(t, Resource{}.AssignedTo(9))
}

func TestBulkAssignUsers_NullManager(t *testing.T) {
	b, err := json.Marshal(BulkAssignUsers{UserIDs: []int64{1, 2}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"userIds":[1,2],"managerId":null}`, string(b))
}
