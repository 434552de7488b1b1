package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	pkgerrors "github.com/examsaathi/examsaathi-web/pkg/errors"
	"github.com/examsaathi/examsaathi-web/pkg/logger"
)

type recordingCharger struct {
	amounts []int
	err     error
}

func (r *recordingCharger) Charge(_ context.Context, amountINR int, _ Payment) error {
	r.amounts = append(r.amounts, amountINR)
	return r.err
}

func newTestController(t *testing.T, charger Charger) *Controller {
	t.Helper()
	c, err := NewController("3", charger, logger.New(logger.Options{ServiceName: "test"}))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return c
}

func validDetails() Details {
	return Details{
		SessionType: "examday",
		Date:        "2026-09-12",
		Time:        "08:30",
		Duration:    "60",
	}
}

func TestTotalPriceCombinations(t *testing.T) {
	cases := []struct {
		sessionType string
		duration    string
		expected    int
	}{
		{"travel", "30", 100},
		{"travel", "60", 140},
		{"travel", "90", 180},
		{"examday", "30", 130},
		{"examday", "60", 170},
		{"examday", "90", 210},
		{"strategy", "30", 170},
		{"strategy", "60", 210},
		{"strategy", "90", 250},
		{"", "60", 90},
		{"examday", "", 80},
		{"", "", 0},
	}
	for _, tc := range cases {
		if got := TotalPrice(tc.sessionType, tc.duration); got != tc.expected {
			t.Fatalf("TotalPrice(%q, %q) = %d, expected %d", tc.sessionType, tc.duration, got, tc.expected)
		}
	}
}

func TestPaymentValidateCardRequiresCardFields(t *testing.T) {
	fields := Payment{Method: MethodCard}.Validate()
	for _, name := range []string{"cardNumber", "expiryDate", "cvv"} {
		if _, ok := fields[name]; !ok {
			t.Fatalf("expected %s error, got %v", name, fields)
		}
	}

	fields = Payment{Method: MethodCard, Card: &CardDetails{
		Number: "4111111111111111",
		Expiry: "12/28",
		CVV:    "123",
	}}.Validate()
	if len(fields) != 0 {
		t.Fatalf("expected valid card payment, got %v", fields)
	}
}

func TestPaymentValidateNonCardNeedsNoCardFields(t *testing.T) {
	for _, method := range []Method{MethodUPI, MethodWallet} {
		if fields := (Payment{Method: method}).Validate(); len(fields) != 0 {
			t.Fatalf("expected %s to validate without card fields, got %v", method, fields)
		}
	}
	if fields := (Payment{}).Validate(); fields["paymentMethod"] == "" {
		t.Fatalf("expected missing method error, got %v", fields)
	}
}

func TestSubmitDetailsRejectsIncompleteForm(t *testing.T) {
	c := newTestController(t, &recordingCharger{})

	err := c.SubmitDetails(context.Background(), Details{SessionType: "examday"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if c.Step() != StepDetails {
		t.Fatalf("expected to stay at details, got %v", c.Step())
	}
}

func TestSubmitDetailsRejectsUnknownCatalogIDs(t *testing.T) {
	c := newTestController(t, &recordingCharger{})

	d := validDetails()
	d.SessionType = "premium"
	if err := c.SubmitDetails(context.Background(), d); err == nil {
		t.Fatalf("expected rejection of unknown session type")
	}

	d = validDetails()
	d.Duration = "120"
	if err := c.SubmitDetails(context.Background(), d); err == nil {
		t.Fatalf("expected rejection of unknown duration")
	}
}

func TestBookingFlowEndToEnd(t *testing.T) {
	charger := &recordingCharger{}
	c := newTestController(t, charger)

	if err := c.SubmitDetails(context.Background(), validDetails()); err != nil {
		t.Fatalf("submit details: %v", err)
	}
	if c.Step() != StepPayment {
		t.Fatalf("expected payment step, got %v", c.Step())
	}

	conf, err := c.SubmitPayment(context.Background(), Payment{Method: MethodUPI})
	if err != nil {
		t.Fatalf("submit payment: %v", err)
	}
	if c.Step() != StepConfirmation {
		t.Fatalf("expected confirmation step, got %v", c.Step())
	}
	if conf.TotalINR != 170 {
		t.Fatalf("expected total 170, got %d", conf.TotalINR)
	}
	if len(charger.amounts) != 1 || charger.amounts[0] != 170 {
		t.Fatalf("expected one charge of 170, got %v", charger.amounts)
	}
	if conf.SessionType != "Travel & Stay guidance" || conf.Duration != "1 hour" {
		t.Fatalf("expected catalog labels on confirmation, got %+v", conf)
	}
	if conf.Reference == "" || conf.MentorID != "3" {
		t.Fatalf("expected reference and mentor id, got %+v", conf)
	}

	got, err := c.Confirmation()
	if err != nil || got.Reference != conf.Reference {
		t.Fatalf("expected stored confirmation, got %+v err %v", got, err)
	}
}

func TestBackPreservesDetails(t *testing.T) {
	c := newTestController(t, &recordingCharger{})

	d := validDetails()
	d.Notes = "meet near gate 2"
	if err := c.SubmitDetails(context.Background(), d); err != nil {
		t.Fatalf("submit details: %v", err)
	}
	if err := c.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	if c.Step() != StepDetails {
		t.Fatalf("expected details step, got %v", c.Step())
	}
	if got := c.Details(); got != d {
		t.Fatalf("expected preserved details, got %+v", got)
	}

	// No backward edge exists anywhere else.
	if err := c.Back(); err == nil {
		t.Fatalf("expected back to fail at details step")
	}
}

func TestFailedChargeStaysAtPayment(t *testing.T) {
	charger := &recordingCharger{err: fmt.Errorf("declined")}
	c := newTestController(t, charger)

	if err := c.SubmitDetails(context.Background(), validDetails()); err != nil {
		t.Fatalf("submit details: %v", err)
	}

	_, err := c.SubmitPayment(context.Background(), Payment{Method: MethodWallet})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodePayment {
		t.Fatalf("expected payment error, got %v", err)
	}
	if c.Step() != StepPayment {
		t.Fatalf("expected to stay at payment, got %v", c.Step())
	}

	// A retry with the same controller can still succeed.
	charger.err = nil
	if _, err := c.SubmitPayment(context.Background(), Payment{Method: MethodWallet}); err != nil {
		t.Fatalf("retry payment: %v", err)
	}
}

func TestSubmitPaymentRejectsInvalidCard(t *testing.T) {
	charger := &recordingCharger{}
	c := newTestController(t, charger)

	if err := c.SubmitDetails(context.Background(), validDetails()); err != nil {
		t.Fatalf("submit details: %v", err)
	}

	_, err := c.SubmitPayment(context.Background(), Payment{Method: MethodCard, Card: &CardDetails{Number: "4111"}})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(charger.amounts) != 0 {
		t.Fatalf("invalid payment must not reach the charger")
	}
}

type blockingCharger struct {
	started chan struct{}
	release chan struct{}

	mu      sync.Mutex
	charges int
}

func (c *blockingCharger) Charge(_ context.Context, _ int, _ Payment) error {
	c.mu.Lock()
	c.charges++
	c.mu.Unlock()
	select {
	case c.started <- struct{}{}:
	default:
	}
	<-c.release
	return nil
}

func TestSubmitPaymentRejectsConcurrentAttempt(t *testing.T) {
	charger := &blockingCharger{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	c := newTestController(t, charger)

	if err := c.SubmitDetails(context.Background(), validDetails()); err != nil {
		t.Fatalf("submit details: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := c.SubmitPayment(context.Background(), Payment{Method: MethodUPI})
		done <- err
	}()

	select {
	case <-charger.started:
	case <-time.After(time.Second):
		t.Fatalf("first charge never started")
	}

	// A second submission while the first is still with the processor must
	// not reach the charger again.
	_, err := c.SubmitPayment(context.Background(), Payment{Method: MethodUPI})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict for concurrent payment, got %v", err)
	}

	close(charger.release)
	if err := <-done; err != nil {
		t.Fatalf("first payment: %v", err)
	}
	charger.mu.Lock()
	charges := charger.charges
	charger.mu.Unlock()
	if charges != 1 {
		t.Fatalf("expected exactly one charge for one booking, got %d", charges)
	}
	if c.Step() != StepConfirmation {
		t.Fatalf("expected confirmation step, got %v", c.Step())
	}
}

func TestSimulatedChargerHonorsContext(t *testing.T) {
	charger := SimulatedCharger{Delay: time.Minute}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := charger.Charge(ctx, 170, Payment{Method: MethodUPI}); err == nil {
		t.Fatalf("expected context cancellation")
	}

	quick := SimulatedCharger{Delay: time.Millisecond}
	if err := quick.Charge(context.Background(), 170, Payment{Method: MethodUPI}); err != nil {
		t.Fatalf("expected simulated approval, got %v", err)
	}
}
