package controllers

import (
	"net/http"

	"github.com/examsaathi/examsaathi-web/api/responses"
	pkgerrors "github.com/examsaathi/examsaathi-web/pkg/errors"
	"github.com/examsaathi/examsaathi-web/pkg/logger"
)

// pageSection is one block of static page content.
type pageSection struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type pageView struct {
	Route    string        `json:"route"`
	Title    string        `json:"title"`
	Tagline  string        `json:"tagline,omitempty"`
	Sections []pageSection `json:"sections,omitempty"`
}

// HomePage serves the landing page view model.
func HomePage(logg *logger.Logger) http.HandlerFunc {
	view := pageView{
		Route:   "/",
		Title:   "Your Exam Journey, Supported",
		Tagline: "Connect with experienced mentors who've been where you're going. Get personalized guidance for exam travel, accommodation, and day-of support from a caring community.",
		Sections: []pageSection{
			{Title: "Sign Up", Description: "Tell us about your exam, city, and what kind of support you need - travel guidance, exam day support, or strategy sessions."},
			{Title: "Find Your Guide", Description: "Browse verified mentors who've taken exams in your city. Read their profiles, ratings, and specialties to find the perfect match."},
			{Title: "Book Support", Description: "Schedule your mentoring sessions - from pre-exam travel planning to morning-of exam day support. Choose what works for you."},
			{Title: "Succeed Together", Description: "Get personalized guidance, feel supported, and ace your exam. Then consider becoming a mentor to help the next student!"},
		},
	}
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, view)
	}
}

// SignInPage serves the sign-in page view model.
func SignInPage(logg *logger.Logger) http.HandlerFunc {
	view := pageView{
		Route: "/signin",
		Title: "Sign In",
	}
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, view)
	}
}

// BecomeMentorPage serves the mentor recruitment page view model.
func BecomeMentorPage(logg *logger.Logger) http.HandlerFunc {
	view := pageView{
		Route:   "/become-mentor",
		Title:   "Become a Mentor",
		Tagline: "Share your exam success story and help students navigate their own journeys. Join our community of supportive mentors.",
	}
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, view)
	}
}

// JourneyTogetherPage serves the community page view model.
func JourneyTogetherPage(logg *logger.Logger) http.HandlerFunc {
	view := pageView{
		Route: "/journey-together",
		Title: "Journey Together",
	}
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, view)
	}
}

// JourneyTrackerPage serves the progress tracking page view model.
func JourneyTrackerPage(logg *logger.Logger) http.HandlerFunc {
	view := pageView{
		Route: "/journey-tracker",
		Title: "Journey Tracker",
	}
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, view)
	}
}

// NotFoundPage is the catch-all for unknown routes.
func NotFoundPage(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "page not found"))
	}
}
