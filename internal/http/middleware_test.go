package http

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/altayburakhan/ClassroomDB/internal/application"
)

type stubSessionValidator struct {
	validateFunc func(ctx context.Context, token string) (application.Principal, error)
}

func (s *stubSessionValidator) ValidateSession(ctx context.Context, token string) (application.Principal, error) {
	return s.validateFunc(ctx, token)
}

func TestRequireSession_MissingToken(t *testing.T) {
	t.Parallel()

	middleware := RequireSession(&stubSessionValidator{
		validateFunc: func(context.Context, string) (application.Principal, error) {
			t.Fatal("validator must not be called without a token")
			return application.Principal{}, nil
		},
	}, nil)

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run without a token")
	})

	rec := httptest.NewRecorder()
	middleware(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reservations", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	var body errorResponse
	decodeBody(t, rec, &body)
	if body.ErrorCode != "AUTH_TOKEN_MISSING" {
		t.Fatalf("expected AUTH_TOKEN_MISSING, got %q", body.ErrorCode)
	}
}

func TestRequireSession_ExpiredSession(t *testing.T) {
	t.Parallel()

	middleware := RequireSession(&stubSessionValidator{
		validateFunc: func(context.Context, string) (application.Principal, error) {
			return application.Principal{}, application.ErrSessionExpired
		},
	}, nil)

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run for an expired session")
	})

	req := httptest.NewRequest(http.MethodGet, "/reservations", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	rec := httptest.NewRecorder()
	middleware(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	var body errorResponse
	decodeBody(t, rec, &body)
	if body.ErrorCode != "AUTH_SESSION_INVALID" {
		t.Fatalf("expected AUTH_SESSION_INVALID, got %q", body.ErrorCode)
	}
}

func TestRequireSession_UnexpectedValidatorError(t *testing.T) {
	t.Parallel()

	middleware := RequireSession(&stubSessionValidator{
		validateFunc: func(context.Context, string) (application.Principal, error) {
			return application.Principal{}, errors.New("store unavailable")
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/reservations", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run when validation errors")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}

func TestRequireSession_InjectsPrincipal(t *testing.T) {
	t.Parallel()

	middleware := RequireSession(&stubSessionValidator{
		validateFunc: func(_ context.Context, token string) (application.Principal, error) {
			if token != "token-abc" {
				t.Fatalf("expected token-abc, got %q", token)
			}
			return application.Principal{UserID: "user-1", IsAdmin: true}, nil
		},
	}, nil)

	var gotPrincipal application.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok {
			t.Fatal("expected a principal in the request context")
		}
		gotPrincipal = principal
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/reservations", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: "token-abc"})
	rec := httptest.NewRecorder()
	middleware(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if gotPrincipal.UserID != "user-1" || !gotPrincipal.IsAdmin {
		t.Fatalf("unexpected principal: %+v", gotPrincipal)
	}
}

func TestRequestLogger_RecordsStartAndCompletion(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	middleware := RequestLogger(logger)
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	middleware(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/classrooms", nil))

	output := buf.String()
	if !strings.Contains(output, "request started") {
		t.Fatalf("expected a start entry, got %q", output)
	}
	if !strings.Contains(output, "request completed") {
		t.Fatalf("expected a completion entry, got %q", output)
	}
	if !strings.Contains(output, `"path":"/classrooms"`) {
		t.Fatalf("expected the request path in the log output, got %q", output)
	}
}
