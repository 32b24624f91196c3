package auth

import (
	"context"
	"errors"
	"testing"
)

func TestGuardChatRoute_WhileLoading(t *testing.T) {
	decision := GuardChatRoute(Session{Loading: true})
	if decision.Redirect || decision.Notice != "" {
		t.Errorf("no decision should be made while loading: %+v", decision)
	}
}

func TestGuardChatRoute_Unauthenticated(t *testing.T) {
	decision := GuardChatRoute(Session{})
	if !decision.Redirect {
		t.Error("settled session without a user should redirect")
	}
	if decision.Notice == "" {
		t.Error("the user should see a notice explaining the redirect")
	}
}

func TestGuardChatRoute_Authenticated(t *testing.T) {
	decision := GuardChatRoute(Session{User: &User{ID: "u1"}})
	if decision.Redirect || decision.Notice != "" {
		t.Errorf("authenticated session should pass through: %+v", decision)
	}
}

func TestMemoryAuthenticator_SignUpAndSignIn(t *testing.T) {
	a := NewMemoryAuthenticator()
	ctx := context.Background()

	user, err := a.SignUp(ctx, "dev@example.com", "hunter22")
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
	if user.ID == "" || user.Anonymous {
		t.Errorf("unexpected user: %+v", user)
	}

	same, err := a.SignIn(ctx, "Dev@Example.com", "hunter22")
	if err != nil {
		t.Fatalf("sign in failed: %v", err)
	}
	if same.ID != user.ID {
		t.Error("sign in should resolve to the registered account")
	}
}

func TestMemoryAuthenticator_WrongPassword(t *testing.T) {
	a := NewMemoryAuthenticator()
	ctx := context.Background()

	if _, err := a.SignUp(ctx, "dev@example.com", "hunter22"); err != nil {
		t.Fatalf("sign up failed: %v", err)
	}

	_, err := a.SignIn(ctx, "dev@example.com", "wrong")
	if err == nil {
		t.Fatal("expected sign in to fail")
	}
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthError, got %T", err)
	}
	if authErr.Op != "sign_in" {
		t.Errorf("unexpected operation: %q", authErr.Op)
	}
}

func TestMemoryAuthenticator_DuplicateEmail(t *testing.T) {
	a := NewMemoryAuthenticator()
	ctx := context.Background()

	if _, err := a.SignUp(ctx, "dev@example.com", "hunter22"); err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
	if _, err := a.SignUp(ctx, "DEV@example.com", "another"); err == nil {
		t.Error("duplicate email should be rejected")
	}
}

func TestMemoryAuthenticator_AnonymousSession(t *testing.T) {
	a := NewMemoryAuthenticator()

	user, err := a.AnonymousSession(context.Background())
	if err != nil {
		t.Fatalf("anonymous session failed: %v", err)
	}
	if !user.Anonymous || user.ID == "" {
		t.Errorf("unexpected anonymous user: %+v", user)
	}

	session := a.Session()
	if session.Loading {
		t.Error("session should be settled")
	}
	if session.User == nil || session.User.ID != user.ID {
		t.Error("session should reflect the anonymous user")
	}
}

func TestMemoryAuthenticator_SignOut(t *testing.T) {
	a := NewMemoryAuthenticator()
	if _, err := a.AnonymousSession(context.Background()); err != nil {
		t.Fatalf("anonymous session failed: %v", err)
	}

	a.SignOut()
	if a.Session().User != nil {
		t.Error("sign out should clear the session")
	}
}
