package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/examsaathi/examsaathi-web/api/responses"
	"github.com/examsaathi/examsaathi-web/internal/mentors"
	pkgerrors "github.com/examsaathi/examsaathi-web/pkg/errors"
	"github.com/examsaathi/examsaathi-web/pkg/logger"
)

type mentorListResponse struct {
	Mentors []mentors.Mentor `json:"mentors"`
	Cities  []string         `json:"cities"`
	Exams   []string         `json:"exams"`
}

// MentorList returns the mentor catalog narrowed by the city and exam query
// parameters, plus the filter options themselves.
func MentorList(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		city := r.URL.Query().Get("city")
		exam := r.URL.Query().Get("exam")
		responses.WriteSuccess(w, mentorListResponse{
			Mentors: mentors.Filter(city, exam),
			Cities:  mentors.Cities(),
			Exams:   mentors.Exams(),
		})
	}
}

// MentorByID returns one mentor profile.
func MentorByID(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mentor, ok := mentors.ByID(chi.URLParam(r, "id"))
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "mentor not found"))
			return
		}
		responses.WriteSuccess(w, mentor)
	}
}
