package middleware

import (
	"net/http"

	"github.com/examsaathi/examsaathi-web/internal/guard"
	"github.com/examsaathi/examsaathi-web/pkg/logger"
)

const signupRedirectPath = "/student-signup"

// Guard protects profile-only routes. Anything short of an allowed decision
// redirects to the signup entry point; there is no distinct error response
// for a failed check.
func Guard(g *guard.Guard, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			decision := g.Authorize(ctx)
			if decision.State != guard.StateDecided || !decision.Allowed {
				if logg != nil {
					logg.Info(logg.WithRoute(ctx, r.URL.Path), "guard denied route")
				}
				http.Redirect(w, r, signupRedirectPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
