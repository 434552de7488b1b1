package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	pkgerrors "github.com/examsaathi/examsaathi-web/pkg/errors"
	"github.com/examsaathi/examsaathi-web/pkg/logger"
	"github.com/google/uuid"
)

// Step names a stage in the booking flow.
type Step string

const (
	StepDetails      Step = "details"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

// Details is the first booking step: what to book and when.
type Details struct {
	SessionType string `json:"sessionType"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Duration    string `json:"duration"`
	Notes       string `json:"notes"`
}

func (d Details) validate() map[string]string {
	fields := map[string]string{}
	if _, ok := SessionTypeByID(d.SessionType); !ok {
		fields["sessionType"] = "Please select a session type"
	}
	if d.Date == "" {
		fields["date"] = "Please select a date"
	}
	if d.Time == "" {
		fields["time"] = "Please select a time"
	}
	if _, ok := DurationByID(d.Duration); !ok {
		fields["duration"] = "Please select duration"
	}
	return fields
}

// Charger settles the booking amount with the payment processor.
type Charger interface {
	Charge(ctx context.Context, amountINR int, payment Payment) error
}

// SimulatedCharger approves every charge after a fixed processing delay. A
// real gateway slots in behind the same interface.
type SimulatedCharger struct {
	Delay time.Duration
}

func (c SimulatedCharger) Charge(ctx context.Context, _ int, _ Payment) error {
	timer := time.NewTimer(c.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Confirmation summarizes a paid booking.
type Confirmation struct {
	Reference   string `json:"reference"`
	MentorID    string `json:"mentorId"`
	SessionType string `json:"sessionType"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Duration    string `json:"duration"`
	TotalINR    int    `json:"totalPaid"`
}

// Controller walks one booking through details, payment, and confirmation.
// The only backward edge is payment to details; entered details survive it.
type Controller struct {
	mentorID string
	charger  Charger
	logger   *logger.Logger

	mu           sync.Mutex
	step         Step
	details      Details
	charging     bool
	confirmation *Confirmation
}

// NewController starts a booking for the given mentor at the details step.
func NewController(mentorID string, charger Charger, logg *logger.Logger) (*Controller, error) {
	if mentorID == "" {
		return nil, fmt.Errorf("mentor id required")
	}
	if charger == nil {
		return nil, fmt.Errorf("charger required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Controller{
		mentorID: mentorID,
		charger:  charger,
		logger:   logg,
		step:     StepDetails,
	}, nil
}

// Step reports the current stage.
func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Details returns the entered details, preserved across the back edge.
func (c *Controller) Details() Details {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.details
}

// Total is the running amount for the current selections.
func (c *Controller) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return TotalPrice(c.details.SessionType, c.details.Duration)
}

// SubmitDetails validates the first step and advances to payment.
func (c *Controller) SubmitDetails(ctx context.Context, d Details) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step != StepDetails {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "booking is past the details step")
	}
	if fields := d.validate(); len(fields) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "booking details incomplete").WithDetails(fields)
	}
	c.details = d
	c.step = StepPayment
	c.logger.Info(c.logger.WithStep(ctx, string(StepPayment)), "booking details accepted")
	return nil
}

// Back returns from payment to details. No other backward edge exists.
func (c *Controller) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step != StepPayment {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "can only go back from the payment step")
	}
	c.step = StepDetails
	return nil
}

// SubmitPayment charges the computed total. Only one charge may be in flight;
// a concurrent submission is rejected while the first is pending. A failed
// charge leaves the booking at the payment step so the user can retry or go
// back.
func (c *Controller) SubmitPayment(ctx context.Context, p Payment) (*Confirmation, error) {
	c.mu.Lock()
	if c.step != StepPayment {
		c.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "booking is not at the payment step")
	}
	if c.charging {
		c.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "a payment is already being processed")
	}
	if fields := p.Validate(); len(fields) > 0 {
		c.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment details incomplete").WithDetails(fields)
	}
	c.charging = true
	details := c.details
	c.mu.Unlock()

	amount := TotalPrice(details.SessionType, details.Duration)
	err := c.charger.Charge(ctx, amount, p)

	c.mu.Lock()
	c.charging = false
	if err != nil {
		c.mu.Unlock()
		c.logger.Warn(ctx, "booking charge failed")
		return nil, pkgerrors.Wrap(pkgerrors.CodePayment, err, "Payment failed. Please try again.")
	}

	sessionType, _ := SessionTypeByID(details.SessionType)
	duration, _ := DurationByID(details.Duration)
	conf := &Confirmation{
		Reference:   uuid.NewString(),
		MentorID:    c.mentorID,
		SessionType: sessionType.Label,
		Date:        details.Date,
		Time:        details.Time,
		Duration:    duration.Label,
		TotalINR:    amount,
	}
	c.step = StepConfirmation
	c.confirmation = conf
	c.mu.Unlock()
	c.logger.Info(c.logger.WithStep(ctx, string(StepConfirmation)), "booking paid")
	return conf, nil
}

// Confirmation returns the paid booking summary.
func (c *Controller) Confirmation() (*Confirmation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step != StepConfirmation || c.confirmation == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "booking is not confirmed yet")
	}
	return c.confirmation, nil
}
