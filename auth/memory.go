package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MemoryAuthenticator is an in-process Authenticator used for local
// development and tests. Accounts do not survive the process.
type MemoryAuthenticator struct {
	mu      sync.Mutex
	users   map[string]*memoryAccount // keyed by lowercased email
	current *User
	loading bool
}

type memoryAccount struct {
	user         *User
	passwordHash []byte
}

// NewMemoryAuthenticator creates an authenticator with no accounts and a
// settled (non-loading) session.
func NewMemoryAuthenticator() *MemoryAuthenticator {
	return &MemoryAuthenticator{
		users: make(map[string]*memoryAccount),
	}
}

// SignUp registers a new account and signs it in.
func (a *MemoryAuthenticator) SignUp(ctx context.Context, email, password string) (*User, error) {
	if email == "" || password == "" {
		return nil, &AuthError{Op: "sign_up", Err: fmt.Errorf("email and password are required")}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, &AuthError{Op: "sign_up", Err: fmt.Errorf("failed to hash password: %w", err)}
	}

	key := strings.ToLower(email)

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.users[key]; exists {
		return nil, &AuthError{Op: "sign_up", Err: fmt.Errorf("an account with this email already exists")}
	}

	user := &User{
		ID:        uuid.NewString(),
		Email:     email,
		CreatedAt: time.Now(),
	}
	a.users[key] = &memoryAccount{user: user, passwordHash: hash}
	a.current = user
	return user, nil
}

// SignIn authenticates an existing account.
func (a *MemoryAuthenticator) SignIn(ctx context.Context, email, password string) (*User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	account, exists := a.users[strings.ToLower(email)]
	if !exists {
		return nil, &AuthError{Op: "sign_in", Err: fmt.Errorf("invalid email or password")}
	}
	if err := bcrypt.CompareHashAndPassword(account.passwordHash, []byte(password)); err != nil {
		return nil, &AuthError{Op: "sign_in", Err: fmt.Errorf("invalid email or password")}
	}

	a.current = account.user
	return account.user, nil
}

// AnonymousSession issues a throwaway identity so the chat can be tried
// without an account.
func (a *MemoryAuthenticator) AnonymousSession(ctx context.Context) (*User, error) {
	user := &User{
		ID:        uuid.NewString(),
		Anonymous: true,
		CreatedAt: time.Now(),
	}

	a.mu.Lock()
	a.current = user
	a.mu.Unlock()
	return user, nil
}

// Session returns the current session state.
func (a *MemoryAuthenticator) Session() Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Session{User: a.current, Loading: a.loading}
}

// SignOut clears the current session.
func (a *MemoryAuthenticator) SignOut() {
	a.mu.Lock()
	a.current = nil
	a.mu.Unlock()
}
