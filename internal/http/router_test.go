package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/altayburakhan/ClassroomDB/internal/application"
)

func newTestRouter(t *testing.T, reservations *stubReservationService) http.Handler {
	t.Helper()

	auth := NewAuthHandler(&stubAuthService{
		authenticateFunc: func(context.Context, application.AuthenticateParams) (application.AuthenticateResult, error) {
			return application.AuthenticateResult{Session: application.Session{Token: "token-abc"}}, nil
		},
		revokeFunc: func(context.Context, string) error { return nil },
	}, nil)

	validator := &stubSessionValidator{
		validateFunc: func(_ context.Context, token string) (application.Principal, error) {
			if token == "token-abc" {
				return application.Principal{UserID: "user-1"}, nil
			}
			return application.Principal{}, application.ErrNotFound
		},
	}

	return NewRouter(RouterConfig{
		Auth:         auth,
		Reservations: NewReservationHandler(reservations, nil),
		Protect:      RequireSession(validator, nil),
	})
}

func TestNewRouter_SessionIssueIsPublic(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubReservationService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/sessions", `{"email":"lecturer@campus.example","password":"secret-pass"}`))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201 without a session, got %d", rec.Code)
	}
}

func TestNewRouter_ProtectedRouteRequiresSession(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubReservationService{
		listFunc: func(context.Context, application.ListReservationsParams) ([]application.Reservation, error) {
			t.Fatal("service must not be reached without a session")
			return nil, nil
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reservations", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestNewRouter_RoutesReservationActions(t *testing.T) {
	t.Parallel()

	var approvedID string
	router := newTestRouter(t, &stubReservationService{
		approveFunc: func(_ context.Context, params application.ApproveReservationParams) (application.Reservation, error) {
			approvedID = params.ReservationID
			return sampleReservation(), nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/reservations/res-1/approve", nil)
	req.Header.Set("Authorization", "Bearer token-abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if approvedID != "res-1" {
		t.Fatalf("expected the path id to reach the service, got %q", approvedID)
	}
}

func TestNewRouter_MethodNotAllowedSetsAllowHeader(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubReservationService{})

	req := httptest.NewRequest(http.MethodPut, "/reservations", nil)
	req.Header.Set("Authorization", "Bearer token-abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, POST" {
		t.Fatalf("expected Allow header GET, POST, got %q", allow)
	}
}

func TestNewRouter_UnknownReservationActionIsNotFound(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubReservationService{})

	req := httptest.NewRequest(http.MethodPost, "/reservations/res-1/escalate", nil)
	req.Header.Set("Authorization", "Bearer token-abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}
