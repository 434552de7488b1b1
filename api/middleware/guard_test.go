package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/examsaathi/examsaathi-web/internal/guard"
	"github.com/examsaathi/examsaathi-web/internal/session"
	"github.com/examsaathi/examsaathi-web/pkg/identity"
	"github.com/examsaathi/examsaathi-web/pkg/logger"
	"github.com/examsaathi/examsaathi-web/pkg/studentapi"
)

type guardSession struct {
	snap  session.Snapshot
	token string
}

func (g *guardSession) Snapshot() session.Snapshot      { return g.snap }
func (g *guardSession) WaitReady(context.Context) error { return nil }
func (g *guardSession) Token(context.Context) (string, error) {
	return g.token, nil
}

type guardStatus struct {
	result *studentapi.StatusResult
}

func (g *guardStatus) Status(context.Context, string) (*studentapi.StatusResult, error) {
	return g.result, nil
}

func newGuardHandler(t *testing.T, sess *guardSession, status *guardStatus) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test"})
	g, err := guard.New(sess, status, logg)
	if err != nil {
		t.Fatalf("new guard: %v", err)
	}
	inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return Guard(g, logg)(inner)
}

func TestGuardAllowsCompleteProfile(t *testing.T) {
	handler := newGuardHandler(t,
		&guardSession{
			snap: session.Snapshot{
				Identity:      &identity.Identity{UID: "uid-1"},
				EmailVerified: true,
			},
			token: "tok",
		},
		&guardStatus{result: &studentapi.StatusResult{OK: true, HasProfile: true, EmailVerified: true}},
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profile", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGuardRedirectsSignedOut(t *testing.T) {
	handler := newGuardHandler(t, &guardSession{}, &guardStatus{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profile", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/student-signup" {
		t.Fatalf("expected signup redirect, got %q", loc)
	}
}

func TestGuardRedirectsIncompleteProfile(t *testing.T) {
	handler := newGuardHandler(t,
		&guardSession{
			snap: session.Snapshot{
				Identity:      &identity.Identity{UID: "uid-1"},
				EmailVerified: true,
			},
			token: "tok",
		},
		&guardStatus{result: &studentapi.StatusResult{OK: true, EmailVerified: true}},
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profile", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
}
