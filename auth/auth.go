package auth

import (
	"context"
	"fmt"
	"time"
)

// User is an authenticated identity issued by the authentication provider.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty"`
	Anonymous bool      `json:"anonymous"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the reactive session state the UI observes. While Loading is
// true no routing decision should be made; once it settles, a nil User means
// unauthenticated.
type Session struct {
	User    *User
	Loading bool
}

// Authenticator is the authentication collaborator surface. Unlike external
// AI call failures, errors from these operations are never swallowed: the
// user must know their sign-in failed.
type Authenticator interface {
	SignUp(ctx context.Context, email, password string) (*User, error)
	SignIn(ctx context.Context, email, password string) (*User, error)
	AnonymousSession(ctx context.Context) (*User, error)

	// Session returns the current reactive session state.
	Session() Session
}

// AuthError wraps a failure from the authentication provider. It is the one
// deliberately noisy error category: it propagates to the UI as a visible
// notification.
type AuthError struct {
	Op  string // "sign_up", "sign_in", "anonymous_session"
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth %s failed: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// GuardDecision is the outcome of evaluating the chat route guard.
type GuardDecision struct {
	Redirect bool   // send the user to the sign-in route
	Notice   string // user-visible notification, empty when none
}

// GuardChatRoute decides what the chat route should do for the given session
// state. While the session is still loading nothing happens; once loading
// completes with no user, the guard redirects and surfaces a notice.
func GuardChatRoute(s Session) GuardDecision {
	if s.Loading {
		return GuardDecision{}
	}
	if s.User == nil {
		return GuardDecision{
			Redirect: true,
			Notice:   "Please sign in to use the chat",
		}
	}
	return GuardDecision{}
}
