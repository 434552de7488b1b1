package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/examsaathi/examsaathi-web/pkg/errors"
)

func TestHomePageSections(t *testing.T) {
	rec := httptest.NewRecorder()
	HomePage(testLogger())(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var view pageView
	decodeData(t, rec, &view)
	if view.Route != "/" {
		t.Fatalf("route = %q", view.Route)
	}
	if len(view.Sections) != 4 {
		t.Fatalf("sections = %d, want 4", len(view.Sections))
	}
	if view.Sections[0].Title != "Sign Up" || view.Sections[3].Title != "Succeed Together" {
		t.Fatalf("section titles = %q, %q", view.Sections[0].Title, view.Sections[3].Title)
	}
}

func TestStaticPagesCarryRoutes(t *testing.T) {
	cases := []struct {
		route   string
		handler http.HandlerFunc
	}{
		{route: "/signin", handler: SignInPage(testLogger())},
		{route: "/become-mentor", handler: BecomeMentorPage(testLogger())},
		{route: "/journey-together", handler: JourneyTogetherPage(testLogger())},
		{route: "/journey-tracker", handler: JourneyTrackerPage(testLogger())},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		tc.handler(rec, httptest.NewRequest(http.MethodGet, tc.route, nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d", tc.route, rec.Code)
		}
		var view pageView
		decodeData(t, rec, &view)
		if view.Route != tc.route {
			t.Fatalf("route = %q, want %q", view.Route, tc.route)
		}
	}
}

func TestNotFoundPage(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFoundPage(testLogger())(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if apiErr := decodeError(t, rec); apiErr.Code != string(pkgerrors.CodeNotFound) {
		t.Fatalf("code = %q", apiErr.Code)
	}
}
