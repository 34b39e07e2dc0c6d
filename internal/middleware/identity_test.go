package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/kiroku/internal/model"
)

// --- モック定義 ---

type mockResolver struct {
	currentUserFn func(ctx context.Context, sessionID string) (*model.User, error)
}

func (m *mockResolver) CurrentUser(ctx context.Context, sessionID string) (*model.User, error) {
	if m.currentUserFn != nil {
		return m.currentUserFn(ctx, sessionID)
	}
	return nil, nil
}

// --- テスト ---

func TestIdentityMiddleware_ValidSession_InjectsUser(t *testing.T) {
	resolver := &mockResolver{
		currentUserFn: func(_ context.Context, sessionID string) (*model.User, error) {
			if sessionID != "session-abc" {
				return nil, nil
			}
			return &model.User{ID: "user-1", Email: "taro@example.com"}, nil
		},
	}

	var gotUser *model.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "session-abc"})
	w := httptest.NewRecorder()

	NewIdentityMiddleware(resolver)(next).ServeHTTP(w, req)

	if gotUser == nil {
		t.Fatal("expected user in context")
	}
	if gotUser.ID != "user-1" {
		t.Errorf("user ID = %q, want %q", gotUser.ID, "user-1")
	}
}

func TestIdentityMiddleware_NoCookie_PassesAnonymous(t *testing.T) {
	resolverCalled := false
	resolver := &mockResolver{
		currentUserFn: func(_ context.Context, _ string) (*model.User, error) {
			resolverCalled = true
			return nil, nil
		},
	}

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		if _, ok := UserFromContext(r.Context()); ok {
			t.Error("anonymous request should have no user in context")
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	NewIdentityMiddleware(resolver)(next).ServeHTTP(w, req)

	if !nextCalled {
		t.Error("anonymous request must pass through")
	}
	if resolverCalled {
		t.Error("resolver should not be called without a session cookie")
	}
}

func TestIdentityMiddleware_ResolverError_PassesAnonymous(t *testing.T) {
	resolver := &mockResolver{
		currentUserFn: func(_ context.Context, _ string) (*model.User, error) {
			return nil, errors.New("db down")
		},
	}

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "broken"})
	w := httptest.NewRecorder()

	NewIdentityMiddleware(resolver)(next).ServeHTTP(w, req)

	if !nextCalled {
		t.Error("request should still pass through as anonymous")
	}
}

func TestUserFromContext_Empty(t *testing.T) {
	if _, ok := UserFromContext(context.Background()); ok {
		t.Error("empty context should have no user")
	}
}
