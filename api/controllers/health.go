package controllers

import (
	"errors"
	"net/http"

	"github.com/examsaathi/examsaathi-web/api/responses"
	"github.com/examsaathi/examsaathi-web/pkg/config"
	pkgerrors "github.com/examsaathi/examsaathi-web/pkg/errors"
	"github.com/examsaathi/examsaathi-web/pkg/keyvalue"
	"github.com/examsaathi/examsaathi-web/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ExamSaathi-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes the durable state store with a read; a missing key is a
// healthy answer.
func HealthReady(cfg *config.Config, logg *logger.Logger, state keyvalue.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ExamSaathi-Env", cfg.App.Env)

		if state == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "state store unavailable"))
			return
		}
		if _, err := state.Get(r.Context(), "readiness-probe"); err != nil && !errors.Is(err, keyvalue.ErrNotFound) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "state store not ready"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
