package studentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/examsaathi/examsaathi-web/pkg/config"
	pkgerrors "github.com/examsaathi/examsaathi-web/pkg/errors"
	"github.com/examsaathi/examsaathi-web/pkg/logger"
)

var errLoggerRequired = errors.New("studentapi logger is required")

// Student mirrors the profile record the backend returns on status.
type Student struct {
	Name              string `json:"name"`
	Phone             string `json:"phone"`
	ExamType          string `json:"examType"`
	ExamCity          string `json:"examCity"`
	ExamDate          string `json:"examDate"`
	ExamCenterAddress string `json:"examCenterAddress"`
	HotelPriceRange   string `json:"hotelPriceRange"`
	AdditionalInfo    string `json:"additionalInfo"`
}

// StatusResult is the backend's answer to a bearer-authenticated status check.
type StatusResult struct {
	OK            bool     `json:"ok"`
	HasProfile    bool     `json:"hasProfile"`
	EmailVerified bool     `json:"emailVerified"`
	Student       *Student `json:"student,omitempty"`
}

// FilePart is an optional attachment on a signup submission.
type FilePart struct {
	Name        string
	ContentType string
	Data        []byte
}

// SignupSubmission carries every signup/profile field plus the optional admit
// card. Multi-select fields are repeated multipart values.
type SignupSubmission struct {
	UID               string
	Email             string
	Name              string
	Phone             string
	ExamType          string
	ExamCity          string
	ExamDate          string
	ExamCenterAddress string
	SupportType       []string
	HotelPriceRange   string
	TravelMode        []string
	TravelPreference  []string
	AdditionalInfo    string
	AdmitCard         *FilePart
}

// SignupResult reports whether the backend accepted the submission.
type SignupResult struct {
	OK bool `json:"ok"`
}

// Client wraps the student API with auth, logging, and error mapping.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logger.Logger
}

// NewClient builds the student API client against the configured base URL.
func NewClient(cfg config.BackendConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logg,
	}, nil
}

// Status performs the bearer-authenticated student status check.
func (c *Client) Status(ctx context.Context, bearerToken string) (*StatusResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/students/status", nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build status request")
	}
	req.Header.Set("Authorization", "Bearer "+bearerToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "status check unreachable")
	}
	defer resp.Body.Close()

	if err := mapStatusCode(resp); err != nil {
		return nil, err
	}

	var result StatusResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode status response")
	}
	return &result, nil
}

// Verify notifies the backend that a passwordless sign-in completed. Callers
// treat this as best-effort.
func (c *Client) Verify(ctx context.Context, idToken string) error {
	body, err := json.Marshal(map[string]string{"idToken": idToken})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode verify request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/students/verify", bytes.NewReader(body))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build verify request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "verify unreachable")
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	return mapStatusCode(resp)
}

// Signup posts the submission as a multipart form, attaching the admit card
// when present.
func (c *Client) Signup(ctx context.Context, sub SignupSubmission) (*SignupResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"uid":               sub.UID,
		"email":             sub.Email,
		"name":              sub.Name,
		"phone":             sub.Phone,
		"examType":          sub.ExamType,
		"examCity":          sub.ExamCity,
		"examDate":          sub.ExamDate,
		"examCenterAddress": sub.ExamCenterAddress,
		"hotelPriceRange":   sub.HotelPriceRange,
		"additionalInfo":    sub.AdditionalInfo,
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(name, value); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode signup form")
		}
	}
	for _, value := range sub.SupportType {
		if err := writer.WriteField("supportType", value); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode signup form")
		}
	}
	for _, value := range sub.TravelMode {
		if err := writer.WriteField("travelMode", value); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode signup form")
		}
	}
	for _, value := range sub.TravelPreference {
		if err := writer.WriteField("travelPreference", value); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode signup form")
		}
	}

	if sub.AdmitCard != nil {
		part, err := writer.CreateFormFile("admitCard", sub.AdmitCard.Name)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "attach admit card")
		}
		if _, err := part.Write(sub.AdmitCard.Data); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "attach admit card")
		}
	}

	if err := writer.Close(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finalize signup form")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/students/signup", &buf)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build signup request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "signup unreachable")
	}
	defer resp.Body.Close()

	if err := mapStatusCode(resp); err != nil {
		return nil, err
	}

	var result SignupResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode signup response")
	}
	return &result, nil
}

type backendError struct {
	Error string `json:"error"`
}

func mapStatusCode(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}

	var be backendError
	_ = json.NewDecoder(resp.Body).Decode(&be)
	message := be.Error
	if message == "" {
		message = fmt.Sprintf("backend returned status %d", resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return pkgerrors.New(pkgerrors.CodeUnauthorized, message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return pkgerrors.New(pkgerrors.CodeValidation, message)
	default:
		return pkgerrors.New(pkgerrors.CodeDependency, message)
	}
}
