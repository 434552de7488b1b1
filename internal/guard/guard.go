package guard

import (
	"context"
	"fmt"
	"sync"

	"github.com/examsaathi/examsaathi-web/internal/session"
	"github.com/examsaathi/examsaathi-web/pkg/logger"
	"github.com/examsaathi/examsaathi-web/pkg/studentapi"
)

// State tracks where a protected-route check is in its lifecycle. Access is
// never granted before StateDecided.
type State int

const (
	StateLoading State = iota
	StateChecking
	StateDecided
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateChecking:
		return "checking"
	case StateDecided:
		return "decided"
	default:
		return "unknown"
	}
}

// Decision is the guard's answer for a protected route. Allowed is only
// meaningful once State is StateDecided.
type Decision struct {
	State   State
	Allowed bool
}

type sessionSource interface {
	Snapshot() session.Snapshot
	WaitReady(ctx context.Context) error
	Token(ctx context.Context) (string, error)
}

type statusChecker interface {
	Status(ctx context.Context, bearerToken string) (*studentapi.StatusResult, error)
}

// Guard decides whether the current session may enter profile-protected
// routes. Every failure path denies access.
type Guard struct {
	session sessionSource
	status  statusChecker
	logger  *logger.Logger

	mu         sync.Mutex
	generation uint64
	decision   Decision
}

// New builds a guard over the session and the backend status check.
func New(sess sessionSource, status statusChecker, logg *logger.Logger) (*Guard, error) {
	if sess == nil {
		return nil, fmt.Errorf("session source required")
	}
	if status == nil {
		return nil, fmt.Errorf("status checker required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Guard{session: sess, status: status, logger: logg}, nil
}

// Authorize waits for the session to finish loading and then runs the check.
// A session that never becomes ready within the context deadline is denied.
func (g *Guard) Authorize(ctx context.Context) Decision {
	if err := g.session.WaitReady(ctx); err != nil {
		return Decision{State: StateDecided, Allowed: false}
	}
	return g.Check(ctx)
}

// Check runs the authorization sequence for the current identity: a signed-in
// session whose backend status reports ok, a completed profile, and a
// verified email. Anything less, including a failed lookup, denies access.
func (g *Guard) Check(ctx context.Context) Decision {
	snap := g.session.Snapshot()
	if snap.Loading {
		return Decision{State: StateLoading}
	}
	if snap.Identity == nil {
		return g.decide(g.begin(), false)
	}

	gen := g.begin()
	token, err := g.session.Token(ctx)
	if err != nil {
		return g.decide(gen, false)
	}
	result, err := g.status.Status(ctx, token)
	if err != nil {
		g.logger.Warn(ctx, "profile status check failed, denying access")
		return g.decide(gen, false)
	}
	return g.decide(gen, result.OK && result.HasProfile && result.EmailVerified)
}

// Invalidate discards any in-flight check. The next Check starts a fresh
// generation; a superseded check can no longer publish its result.
func (g *Guard) Invalidate() {
	g.mu.Lock()
	g.generation++
	g.decision = Decision{State: StateLoading}
	g.mu.Unlock()
}

// Decision returns the latest published decision.
func (g *Guard) Decision() Decision {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.decision
}

func (g *Guard) begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.generation++
	g.decision = Decision{State: StateChecking}
	return g.generation
}

func (g *Guard) decide(gen uint64, allowed bool) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()
	if gen != g.generation {
		// A newer identity change superseded this check; its result is stale.
		return g.decision
	}
	g.decision = Decision{State: StateDecided, Allowed: allowed}
	return g.decision
}
