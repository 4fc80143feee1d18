// Package router maps session state to the view that may be shown
package router

import (
	"fmt"
	"strings"
)

// Route is one of the application's views
type Route string

const (
	Todos  Route = "/"
	Login  Route = "/login"
	Signup Route = "/signup"
)

// Routes lists every route
var Routes = []Route{Todos, Login, Signup}

// Parse converts a path into a Route. Unknown paths are an error.
func Parse(path string) (Route, error) {
	p := strings.TrimSpace(path)
	if p != "/" {
		p = strings.TrimRight(p, "/")
	}
	switch Route(p) {
	case Todos, "":
		return Todos, nil
	case Login:
		return Login, nil
	case Signup:
		return Signup, nil
	}
	return "", fmt.Errorf("unknown route %q", path)
}

// RequiresAuth reports whether the route is only for signed-in users
func (r Route) RequiresAuth() bool {
	return r == Todos
}

// Title returns the view name
func (r Route) Title() string {
	switch r {
	case Login:
		return "Login"
	case Signup:
		return "Sign Up"
	default:
		return "Todo List"
	}
}

// Resolve returns the route to actually show. Signed-in users asking for
// login or signup land on the todo list; signed-out users asking for the
// todo list land on login.
func Resolve(requested Route, authenticated bool) Route {
	if requested.RequiresAuth() && !authenticated {
		return Login
	}
	if !requested.RequiresAuth() && authenticated {
		return Todos
	}
	return requested
}
