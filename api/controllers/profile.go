package controllers

import (
	"net/http"

	"github.com/examsaathi/examsaathi-web/api/responses"
	"github.com/examsaathi/examsaathi-web/api/validators"
	"github.com/examsaathi/examsaathi-web/internal/profile"
	pkgerrors "github.com/examsaathi/examsaathi-web/pkg/errors"
	"github.com/examsaathi/examsaathi-web/pkg/logger"
)

// ProfileView loads the signed-in student's profile.
func ProfileView(svc profile.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}
		view, err := svc.Load(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type profileSaveRequest struct {
	Name              string `json:"name" validate:"required,min=2"`
	Phone             string `json:"phone" validate:"required,min=10"`
	ExamType          string `json:"examType"`
	ExamCity          string `json:"examCity"`
	ExamDate          string `json:"examDate"`
	ExamCenterAddress string `json:"examCenterAddress"`
	HotelPriceRange   string `json:"hotelPriceRange"`
	AdditionalInfo    string `json:"additionalInfo"`
}

// ProfileSave writes the editable fields back through the backend.
func ProfileSave(svc profile.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}
		var req profileSaveRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		err := svc.Save(r.Context(), profile.Fields{
			Name:              req.Name,
			Phone:             req.Phone,
			ExamType:          req.ExamType,
			ExamCity:          req.ExamCity,
			ExamDate:          req.ExamDate,
			ExamCenterAddress: req.ExamCenterAddress,
			HotelPriceRange:   req.HotelPriceRange,
			AdditionalInfo:    req.AdditionalInfo,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}
