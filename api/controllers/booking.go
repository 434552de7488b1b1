package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/examsaathi/examsaathi-web/api/responses"
	"github.com/examsaathi/examsaathi-web/api/validators"
	"github.com/examsaathi/examsaathi-web/internal/booking"
	"github.com/examsaathi/examsaathi-web/internal/mentors"
	pkgerrors "github.com/examsaathi/examsaathi-web/pkg/errors"
	"github.com/examsaathi/examsaathi-web/pkg/logger"
)

func bookingFor(m *booking.Manager, r *http.Request) (*booking.Controller, mentors.Mentor, error) {
	id := chi.URLParam(r, "id")
	mentor, ok := mentors.ByID(id)
	if !ok {
		return nil, mentors.Mentor{}, pkgerrors.New(pkgerrors.CodeNotFound, "mentor not found")
	}
	c, err := m.For(mentor.ID)
	if err != nil {
		return nil, mentors.Mentor{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "could not open booking")
	}
	return c, mentor, nil
}

type bookingStateResponse struct {
	Mentor         mentors.Mentor         `json:"mentor"`
	Step           booking.Step           `json:"step"`
	Details        booking.Details        `json:"details"`
	Total          int                    `json:"total"`
	SessionTypes   []booking.Option       `json:"sessionTypes"`
	Durations      []booking.Option       `json:"durations"`
	PaymentMethods []booking.MethodOption `json:"paymentMethods"`
}

// BookingState returns the booking flow's position plus the catalogs the
// form renders.
func BookingState(m *booking.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking unavailable"))
			return
		}
		c, mentor, err := bookingFor(m, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bookingStateResponse{
			Mentor:         mentor,
			Step:           c.Step(),
			Details:        c.Details(),
			Total:          c.Total(),
			SessionTypes:   booking.SessionTypes(),
			Durations:      booking.Durations(),
			PaymentMethods: booking.PaymentMethods(),
		})
	}
}

type bookingDetailsRequest struct {
	SessionType string `json:"sessionType" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required"`
	Duration    string `json:"duration" validate:"required"`
	Notes       string `json:"notes"`
}

// BookingDetails submits the first step and advances to payment.
func BookingDetails(m *booking.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking unavailable"))
			return
		}
		c, _, err := bookingFor(m, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req bookingDetailsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		details := booking.Details{
			SessionType: req.SessionType,
			Date:        req.Date,
			Time:        req.Time,
			Duration:    req.Duration,
			Notes:       req.Notes,
		}
		if err := c.SubmitDetails(r.Context(), details); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"step":  c.Step(),
			"total": c.Total(),
		})
	}
}

// BookingBack returns from payment to details.
func BookingBack(m *booking.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking unavailable"))
			return
		}
		c, _, err := bookingFor(m, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := c.Back(); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"step":    c.Step(),
			"details": c.Details(),
		})
	}
}

type bookingPaymentRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required"`
	CardNumber    string `json:"cardNumber"`
	ExpiryDate    string `json:"expiryDate"`
	CVV           string `json:"cvv"`
}

// BookingPayment charges the total and completes the booking.
func BookingPayment(m *booking.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking unavailable"))
			return
		}
		c, _, err := bookingFor(m, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req bookingPaymentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payment := booking.Payment{Method: booking.Method(req.PaymentMethod)}
		if payment.Method == booking.MethodCard {
			payment.Card = &booking.CardDetails{
				Number: req.CardNumber,
				Expiry: req.ExpiryDate,
				CVV:    req.CVV,
			}
		}
		conf, err := c.SubmitPayment(r.Context(), payment)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, conf)
	}
}

// BookingConfirmation returns the paid booking summary.
func BookingConfirmation(m *booking.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking unavailable"))
			return
		}
		c, _, err := bookingFor(m, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		conf, err := c.Confirmation()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, conf)
	}
}

// BookingRestart discards the booking so a new one can start.
func BookingRestart(m *booking.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking unavailable"))
			return
		}
		_, mentor, err := bookingFor(m, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		m.Reset(mentor.ID)
		responses.WriteSuccess(w, map[string]string{"step": string(booking.StepDetails)})
	}
}
