package controllers

import (
	"io"
	"net/http"

	"github.com/examsaathi/examsaathi-web/api/responses"
	"github.com/examsaathi/examsaathi-web/internal/signup"
	"github.com/examsaathi/examsaathi-web/pkg/config"
	pkgerrors "github.com/examsaathi/examsaathi-web/pkg/errors"
	"github.com/examsaathi/examsaathi-web/pkg/logger"
)

// signupFormHeadroom is the allowance for the text fields on top of the
// configured admit-card cap.
const signupFormHeadroom = 1 << 20

// SignupCatalogs returns every option list the signup form renders.
func SignupCatalogs(svc signup.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "signup service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.Catalogs())
	}
}

// SignupSubmit accepts the registration as a multipart form, mirroring the
// backend's own signup surface so the admit card rides along. The parse limit
// tracks the configured admit-card cap so oversize files reach draft
// validation instead of dying in the form parser.
func SignupSubmit(svc signup.Service, logg *logger.Logger, cfg config.SignupConfig) http.HandlerFunc {
	formLimit := int64(cfg.AdmitCardMaxMB)<<20 + signupFormHeadroom
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "signup service unavailable"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, formLimit)
		if err := r.ParseMultipartForm(formLimit); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form submission"))
			return
		}

		draft := signup.Draft{
			Name:              r.FormValue("name"),
			Email:             r.FormValue("email"),
			Phone:             r.FormValue("phone"),
			ExamType:          r.FormValue("examType"),
			ExamCity:          r.FormValue("examCity"),
			ExamDate:          r.FormValue("examDate"),
			ExamCenterAddress: r.FormValue("examCenterAddress"),
			SupportType:       r.MultipartForm.Value["supportType"],
			HotelPriceRange:   r.FormValue("hotelPriceRange"),
			TravelMode:        r.MultipartForm.Value["travelMode"],
			TravelPreference:  r.MultipartForm.Value["travelPreference"],
			AdditionalInfo:    r.FormValue("additionalInfo"),
		}

		file, header, err := r.FormFile("admitCard")
		if err == nil {
			defer file.Close()
			data, readErr := io.ReadAll(file)
			if readErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, readErr, "could not read admit card"))
				return
			}
			draft.AdmitCard = &signup.AdmitCard{Filename: header.Filename, Data: data}
		} else if err != http.ErrMissingFile {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "could not read admit card"))
			return
		}

		receipt, err := svc.Submit(r.Context(), draft)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, receipt)
	}
}
