package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/examsaathi/examsaathi-web/pkg/config"
	"github.com/examsaathi/examsaathi-web/pkg/keyvalue"
)

type downStore struct{}

func (downStore) Get(context.Context, string) (string, error) { return "", errors.New("store down") }
func (downStore) Set(context.Context, string, string) error   { return errors.New("store down") }
func (downStore) Clear(context.Context, string) error         { return errors.New("store down") }

func healthConfig() *config.Config {
	return &config.Config{App: config.AppConfig{Env: config.AppEnvDev}}
}

func TestHealthLive(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthLive(healthConfig())(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if env := rec.Header().Get("X-ExamSaathi-Env"); env != config.AppEnvDev {
		t.Fatalf("env header = %q", env)
	}
}

func TestHealthReadyWithHealthyStore(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthReady(healthConfig(), testLogger(), keyvalue.NewMemory())(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
}

func TestHealthReadyWithFailingStore(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthReady(healthConfig(), testLogger(), downStore{})(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}
