// Package navigation decides which screen the client shows.
package navigation

import "github.com/dmitrijs2005/taskdesk/internal/client/models"

type Destination string

const (
	Login     Destination = "login"
	Admin     Destination = "admin"
	Manager   Destination = "manager"
	User      Destination = "user"
	RoleError Destination = "role-error"
)

// ExpiredMessage is shown on the login screen after an inactivity logout.
const ExpiredMessage = "Your session has expired. Please login again."

// Route is a destination plus what the screen needs to know about how it
// was reached.
type Route struct {
	To      Destination
	Expired bool
}

// Message returns the notice to show on arrival, if any.
func (r Route) Message() string {
	if r.To == Login && r.Expired {
		return ExpiredMessage
	}
	return ""
}

// Navigator moves the UI to a route.
type Navigator interface {
	Navigate(r Route)
}

// ForUser returns the home screen for the user's primary role.
func ForUser(u models.User) Destination {
	switch u.PrimaryRole() {
	case models.RoleAdmin:
		return Admin
	case models.RoleManager:
		return Manager
	case models.RoleUser:
		return User
	}
	return RoleError
}

// Home is the route taken right after login or restore.
func Home(u models.User) Route {
	return Route{To: ForUser(u)}
}

// LoginScreen is the unauthenticated entry point.
func LoginScreen(expired bool) Route {
	return Route{To: Login, Expired: expired}
}
