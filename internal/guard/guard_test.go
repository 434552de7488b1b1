package guard

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/examsaathi/examsaathi-web/internal/session"
	"github.com/examsaathi/examsaathi-web/pkg/identity"
	"github.com/examsaathi/examsaathi-web/pkg/logger"
	"github.com/examsaathi/examsaathi-web/pkg/studentapi"
)

type fakeSession struct {
	snap     session.Snapshot
	token    string
	tokenErr error
}

func (f *fakeSession) Snapshot() session.Snapshot       { return f.snap }
func (f *fakeSession) WaitReady(context.Context) error  { return nil }
func (f *fakeSession) Token(context.Context) (string, error) {
	return f.token, f.tokenErr
}

type fakeStatus struct {
	result  *studentapi.StatusResult
	err     error
	release chan struct{}
	started chan struct{}
	calls   int32
}

func (f *fakeStatus) Status(ctx context.Context, _ string) (*studentapi.StatusResult, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.started != nil {
		select {
		case f.started <- struct{}{}:
		default:
		}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.result, f.err
}

func signedIn() session.Snapshot {
	return session.Snapshot{
		Identity:      &identity.Identity{UID: "uid-1", Email: "a@b.com", EmailVerified: true},
		EmailVerified: true,
	}
}

func newGuard(t *testing.T, sess *fakeSession, status *fakeStatus) *Guard {
	t.Helper()
	g, err := New(sess, status, logger.New(logger.Options{ServiceName: "test"}))
	if err != nil {
		t.Fatalf("new guard: %v", err)
	}
	return g
}

func TestCheckReportsLoadingWhileSessionLoads(t *testing.T) {
	sess := &fakeSession{snap: session.Snapshot{Loading: true}}
	status := &fakeStatus{}
	g := newGuard(t, sess, status)

	decision := g.Check(context.Background())
	if decision.State != StateLoading {
		t.Fatalf("expected loading, got %v", decision.State)
	}
	if decision.Allowed {
		t.Fatalf("loading must never report allowed")
	}
	if status.calls != 0 {
		t.Fatalf("no status check may run before the session resolves")
	}
}

func TestCheckDeniesSignedOut(t *testing.T) {
	sess := &fakeSession{snap: session.Snapshot{}}
	g := newGuard(t, sess, &fakeStatus{})

	decision := g.Check(context.Background())
	if decision.State != StateDecided || decision.Allowed {
		t.Fatalf("expected denied decision, got %+v", decision)
	}
}

func TestCheckRequiresAllStatusFlags(t *testing.T) {
	cases := []struct {
		name    string
		result  studentapi.StatusResult
		allowed bool
	}{
		{"all flags", studentapi.StatusResult{OK: true, HasProfile: true, EmailVerified: true}, true},
		{"missing profile", studentapi.StatusResult{OK: true, EmailVerified: true}, false},
		{"unverified email", studentapi.StatusResult{OK: true, HasProfile: true}, false},
		{"not ok", studentapi.StatusResult{HasProfile: true, EmailVerified: true}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sess := &fakeSession{snap: signedIn(), token: "tok"}
			result := tc.result
			g := newGuard(t, sess, &fakeStatus{result: &result})

			decision := g.Check(context.Background())
			if decision.State != StateDecided {
				t.Fatalf("expected decided, got %v", decision.State)
			}
			if decision.Allowed != tc.allowed {
				t.Fatalf("expected allowed=%v, got %+v", tc.allowed, decision)
			}
		})
	}
}

func TestCheckFailsClosedOnTokenError(t *testing.T) {
	sess := &fakeSession{snap: signedIn(), tokenErr: fmt.Errorf("expired")}
	status := &fakeStatus{}
	g := newGuard(t, sess, status)

	decision := g.Check(context.Background())
	if decision.State != StateDecided || decision.Allowed {
		t.Fatalf("expected denied decision, got %+v", decision)
	}
	if status.calls != 0 {
		t.Fatalf("status check must not run without a token")
	}
}

func TestCheckFailsClosedOnStatusError(t *testing.T) {
	sess := &fakeSession{snap: signedIn(), token: "tok"}
	g := newGuard(t, sess, &fakeStatus{err: fmt.Errorf("backend down")})

	decision := g.Check(context.Background())
	if decision.State != StateDecided || decision.Allowed {
		t.Fatalf("expected denied decision, got %+v", decision)
	}
}

func TestInvalidateDiscardsStaleResult(t *testing.T) {
	sess := &fakeSession{snap: signedIn(), token: "tok"}
	status := &fakeStatus{
		result:  &studentapi.StatusResult{OK: true, HasProfile: true, EmailVerified: true},
		release: make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	g := newGuard(t, sess, status)

	done := make(chan Decision, 1)
	go func() {
		done <- g.Check(context.Background())
	}()

	// Wait until the slow check is in flight, then supersede it.
	select {
	case <-status.started:
	case <-time.After(time.Second):
		t.Fatalf("check never started")
	}
	g.Invalidate()
	close(status.release)

	stale := <-done
	if stale.State == StateDecided && stale.Allowed {
		t.Fatalf("stale check must not publish an allowed decision, got %+v", stale)
	}
	if published := g.Decision(); published.State == StateDecided {
		t.Fatalf("invalidated guard must not hold a decided result, got %+v", published)
	}

	// A fresh check still succeeds.
	status.release = nil
	fresh := g.Check(context.Background())
	if fresh.State != StateDecided || !fresh.Allowed {
		t.Fatalf("expected fresh allowed decision, got %+v", fresh)
	}
}
