package profile

import (
	"context"
	"fmt"

	"github.com/examsaathi/examsaathi-web/internal/session"
	pkgerrors "github.com/examsaathi/examsaathi-web/pkg/errors"
	"github.com/examsaathi/examsaathi-web/pkg/logger"
	"github.com/examsaathi/examsaathi-web/pkg/studentapi"
)

type sessionSource interface {
	Snapshot() session.Snapshot
	Token(ctx context.Context) (string, error)
}

type backend interface {
	Status(ctx context.Context, bearerToken string) (*studentapi.StatusResult, error)
	Signup(ctx context.Context, sub studentapi.SignupSubmission) (*studentapi.SignupResult, error)
}

// View is the profile page model.
type View struct {
	Email         string             `json:"email"`
	EmailVerified bool               `json:"emailVerified"`
	HasProfile    bool               `json:"hasProfile"`
	Student       studentapi.Student `json:"student"`
}

// Fields are the editable profile fields. Multi-select signup data and the
// admit card are managed through registration, not here.
type Fields struct {
	Name              string `json:"name"`
	Phone             string `json:"phone"`
	ExamType          string `json:"examType"`
	ExamCity          string `json:"examCity"`
	ExamDate          string `json:"examDate"`
	ExamCenterAddress string `json:"examCenterAddress"`
	HotelPriceRange   string `json:"hotelPriceRange"`
	AdditionalInfo    string `json:"additionalInfo"`
}

// Service loads and saves the signed-in student's profile.
type Service interface {
	Load(ctx context.Context) (*View, error)
	Save(ctx context.Context, fields Fields) error
}

type service struct {
	session sessionSource
	backend backend
	logger  *logger.Logger
}

// NewService builds the profile service over the session and the backend.
func NewService(sess sessionSource, be backend, logg *logger.Logger) (Service, error) {
	if sess == nil {
		return nil, fmt.Errorf("session source required")
	}
	if be == nil {
		return nil, fmt.Errorf("backend client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{session: sess, backend: be, logger: logg}, nil
}

// Load fetches the profile from the backend status endpoint. A missing
// student record yields an empty, editable view.
func (s *service) Load(ctx context.Context) (*View, error) {
	snap := s.session.Snapshot()
	if snap.Identity == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Please sign in to view your profile")
	}

	token, err := s.session.Token(ctx)
	if err != nil {
		return nil, err
	}
	status, err := s.backend.Status(ctx, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "Failed to load profile")
	}

	view := &View{
		Email:         snap.Identity.Email,
		EmailVerified: snap.EmailVerified,
		HasProfile:    status.HasProfile,
	}
	if status.Student != nil {
		view.Student = *status.Student
	}
	return view, nil
}

// Save writes the editable fields through the signup endpoint, stamped with
// the session identity.
func (s *service) Save(ctx context.Context, fields Fields) error {
	snap := s.session.Snapshot()
	if snap.Identity == nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "Please sign in to update your profile")
	}

	result, err := s.backend.Signup(ctx, studentapi.SignupSubmission{
		UID:               snap.Identity.UID,
		Email:             snap.Identity.Email,
		Name:              fields.Name,
		Phone:             fields.Phone,
		ExamType:          fields.ExamType,
		ExamCity:          fields.ExamCity,
		ExamDate:          fields.ExamDate,
		ExamCenterAddress: fields.ExamCenterAddress,
		HotelPriceRange:   fields.HotelPriceRange,
		AdditionalInfo:    fields.AdditionalInfo,
	})
	if err != nil {
		return err
	}
	if !result.OK {
		return pkgerrors.New(pkgerrors.CodeDependency, "Update failed")
	}

	s.logger.Info(s.logger.WithUserID(ctx, snap.Identity.UID), "profile updated")
	return nil
}
