package signup

import (
	"context"
	"fmt"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/examsaathi/examsaathi-web/internal/session"
	"github.com/examsaathi/examsaathi-web/pkg/config"
	pkgerrors "github.com/examsaathi/examsaathi-web/pkg/errors"
	"github.com/examsaathi/examsaathi-web/pkg/logger"
	"github.com/examsaathi/examsaathi-web/pkg/studentapi"
)

const mentorBrowsePath = "/find-mentor"

type sessionSource interface {
	Snapshot() session.Snapshot
	SendVerificationEmail(ctx context.Context) error
}

type submitter interface {
	Signup(ctx context.Context, sub studentapi.SignupSubmission) (*studentapi.SignupResult, error)
}

// Catalogs bundles every option list the signup form renders.
type Catalogs struct {
	ExamTypes         []ExamType `json:"examTypes"`
	SupportTypes      []Choice   `json:"supportTypes"`
	HotelPriceRanges  []Choice   `json:"hotelPriceRanges"`
	TravelModes       []Choice   `json:"travelModes"`
	TravelPreferences []Choice   `json:"travelPreferences"`
}

// Receipt tells the caller where to send the student after a successful
// registration, and how long to linger on the success state first.
type Receipt struct {
	OK              bool   `json:"ok"`
	RedirectTo      string `json:"redirectTo"`
	RedirectAfterMs int64  `json:"redirectAfterMs"`
}

// Service validates and submits student registrations.
type Service interface {
	Catalogs() Catalogs
	Submit(ctx context.Context, d Draft) (*Receipt, error)
}

type service struct {
	session           sessionSource
	students          submitter
	logger            *logger.Logger
	maxAdmitCardBytes int64
	redirectDelay     time.Duration
}

// NewService builds the signup service from the session, the backend client,
// and the signup limits.
func NewService(sess sessionSource, students submitter, logg *logger.Logger, cfg config.SignupConfig) (Service, error) {
	if sess == nil {
		return nil, fmt.Errorf("session source required")
	}
	if students == nil {
		return nil, fmt.Errorf("student submitter required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		session:           sess,
		students:          students,
		logger:            logg,
		maxAdmitCardBytes: int64(cfg.AdmitCardMaxMB) << 20,
		redirectDelay:     cfg.RedirectDelay,
	}, nil
}

func (s *service) Catalogs() Catalogs {
	return Catalogs{
		ExamTypes:         ExamTypes(),
		SupportTypes:      SupportTypes(),
		HotelPriceRanges:  HotelPriceRanges(),
		TravelModes:       TravelModes(),
		TravelPreferences: TravelPreferences(),
	}
}

// Submit sends a validated draft to the backend. An unverified session never
// submits: the verification flow runs instead and the caller is told to wait
// for the email.
func (s *service) Submit(ctx context.Context, d Draft) (*Receipt, error) {
	snap := s.session.Snapshot()
	if snap.Identity == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Please sign in to submit your registration")
	}
	if !snap.EmailVerified {
		if err := s.session.SendVerificationEmail(ctx); err != nil {
			s.logger.Warn(ctx, "could not send verification email")
		}
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Please verify your email first. We just sent you a verification link.")
	}

	if fields := Validate(d, s.maxAdmitCardBytes); len(fields) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "registration incomplete").WithDetails(fields)
	}

	result, err := s.students.Signup(ctx, toSubmission(snap.Identity.UID, snap.Identity.Email, d))
	if err != nil {
		return nil, err
	}
	if !result.OK {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "Something went wrong. Please try again.")
	}

	s.logger.Info(s.logger.WithUserID(ctx, snap.Identity.UID), "student registration submitted")
	return &Receipt{
		OK:              true,
		RedirectTo:      mentorBrowsePath,
		RedirectAfterMs: s.redirectDelay.Milliseconds(),
	}, nil
}

// toSubmission maps the draft onto the wire form. Fields behind a hidden
// section are dropped so stale entries never reach the backend.
func toSubmission(uid, email string, d Draft) studentapi.SignupSubmission {
	sub := studentapi.SignupSubmission{
		UID:               uid,
		Email:             email,
		Name:              d.Name,
		Phone:             d.Phone,
		ExamType:          d.ExamType,
		ExamCity:          d.ExamCity,
		ExamDate:          d.ExamDate,
		ExamCenterAddress: d.ExamCenterAddress,
		SupportType:       d.SupportType,
		AdditionalInfo:    d.AdditionalInfo,
	}
	if NeedsTravelInfo(d.SupportType) {
		sub.HotelPriceRange = d.HotelPriceRange
		sub.TravelMode = d.TravelMode
		sub.TravelPreference = d.TravelPreference
	}
	if d.AdmitCard != nil {
		sub.AdmitCard = &studentapi.FilePart{
			Name:        d.AdmitCard.Filename,
			ContentType: mimetype.Detect(d.AdmitCard.Data).String(),
			Data:        d.AdmitCard.Data,
		}
	}
	return sub
}
