package navigation

import (
	"testing"

	"github.com/dmitrijs2005/taskdesk/internal/client/models"
	"github.com/stretchr/testify/assert"
)

func TestForUser(t *testing.T) {
	tests := []struct {
		roles []string
		want  Destination
	}{
		{[]string{"admin"}, Admin},
		{[]string{"manager", "admin"}, Manager},
		{[]string{"user"}, User},
		{[]string{"guest"}, RoleError},
		{nil, RoleError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ForUser(models.User{ID: 1, Email: "x@y.z", Roles: tt.roles}), "roles %v", tt.roles)
	}
}

func TestLoginScreen(t *testing.T) {
	assert.Equal(t, ExpiredMessage, LoginScreen(true).Message())
	assert.Empty(t, LoginScreen(false).Message())
	assert.Empty(t, Home(models.User{Roles: []string{"admin"}}).Message())
}
