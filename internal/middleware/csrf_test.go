package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestCSRFMiddleware_GET_SetsCookieAndInjectsToken(t *testing.T) {
	var ctxToken string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxToken = CSRFTokenFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	NewCSRFMiddleware(CSRFConfig{})(next).ServeHTTP(w, req)

	if ctxToken == "" {
		t.Fatal("expected CSRF token in context")
	}

	var cookieToken string
	for _, c := range w.Result().Cookies() {
		if c.Name == "csrf_token" {
			cookieToken = c.Value
		}
	}
	if cookieToken == "" {
		t.Fatal("expected csrf_token cookie to be set")
	}
	if cookieToken != ctxToken {
		t.Errorf("context token %q should match cookie token %q", ctxToken, cookieToken)
	}
}

func TestCSRFMiddleware_POST_MatchingTokens_Passes(t *testing.T) {
	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	})

	form := url.Values{"csrf_token": {"token-abc"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "token-abc"})
	w := httptest.NewRecorder()

	NewCSRFMiddleware(CSRFConfig{})(next).ServeHTTP(w, req)

	if !nextCalled {
		t.Errorf("request with matching tokens should pass, status = %d", w.Result().StatusCode)
	}
}

func TestCSRFMiddleware_POST_MismatchedTokens_Forbidden(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run on token mismatch")
	})

	form := url.Values{"csrf_token": {"token-other"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "token-abc"})
	w := httptest.NewRecorder()

	NewCSRFMiddleware(CSRFConfig{})(next).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusForbidden)
	}
}

func TestCSRFMiddleware_POST_MissingCookie_Forbidden(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without cookie token")
	})

	form := url.Values{"csrf_token": {"token-abc"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	NewCSRFMiddleware(CSRFConfig{})(next).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusForbidden)
	}
}

func TestCSRFMiddleware_POST_MissingFormField_Forbidden(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without form token")
	})

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "token-abc"})
	w := httptest.NewRecorder()

	NewCSRFMiddleware(CSRFConfig{})(next).ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusForbidden)
	}
}
