// Package dispatch executes single user-initiated lifecycle actions against
// the backend and reports the outcome as exactly one user-facing
// notification per invocation.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"swiftride/internal/client"
	"swiftride/internal/domain"
)

var (
	// ErrInFlight is returned when a dispatch is attempted while another
	// action is still running.
	ErrInFlight = errors.New("another action is in flight")

	// ErrIllegalTransition is returned for a complaint status change that
	// is not the single legal forward step.
	ErrIllegalTransition = errors.New("illegal complaint status transition")
)

// State is the dispatcher's per-invocation execution state.
type State string

const (
	StateIdle     State = "IDLE"
	StateInFlight State = "IN_FLIGHT"
)

// API is the slice of the backend client the dispatcher drives.
type API interface {
	AcceptTrip(ctx context.Context, driverID, tripID int64) (*domain.Trip, error)
	StartTrip(ctx context.Context, driverID, tripID int64) (*domain.Trip, error)
	EndTrip(ctx context.Context, driverID, tripID int64) (*domain.Trip, error)
	CancelByCustomer(ctx context.Context, customerID, tripID int64) (*domain.Trip, error)
	CancelByDriver(ctx context.Context, driverID, tripID int64) (*domain.Trip, error)
	RateDriver(ctx context.Context, driverID, tripID int64, stars int) error
	SendAcceptanceEmail(ctx context.Context, customerID, driverID, tripID int64) error
	SendComplaint(ctx context.Context, customerID, tripID int64, message string) (*domain.Complaint, error)
	OpenComplaint(ctx context.Context, complaintID int64) error
	CloseComplaint(ctx context.Context, complaintID int64) error
}

// Notifier surfaces the single success or failure message of an invocation.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// ConfirmFunc guards destructive actions. Dispatch of a cancel proceeds
// only when it returns true.
type ConfirmFunc func(prompt string) bool

// RefreshFunc re-runs the trip list reconciliation for the current scope
// after a successful action.
type RefreshFunc func(ctx context.Context)

// Result reports the view-state consequences of a dispatched action.
type Result struct {
	// Declined is true when the confirmation guard rejected a cancel;
	// nothing was dispatched and nothing was notified.
	Declined bool
	// SwitchToActive is true when the view should change to the "active
	// trips" tab (after a successful accept).
	SwitchToActive bool
}

// Dispatcher runs one lifecycle action at a time. Notification and error
// message derivation are centralized here: callers must not emit their own
// messages for a dispatched action, or the user sees duplicates.
type Dispatcher struct {
	api      API
	notifier Notifier
	confirm  ConfirmFunc
	refresh  RefreshFunc

	mu    sync.Mutex
	state State
}

// New creates a Dispatcher. confirm and refresh may be nil; a nil confirm
// approves every cancel (non-interactive callers), a nil refresh skips
// reconciliation.
func New(api API, notifier Notifier, confirm ConfirmFunc, refresh RefreshFunc) *Dispatcher {
	return &Dispatcher{
		api:      api,
		notifier: notifier,
		confirm:  confirm,
		refresh:  refresh,
		state:    StateIdle,
	}
}

// State returns the current execution state, for gating the initiating
// control in the view.
func (d *Dispatcher) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Dispatch executes one action. The state moves IDLE → IN_FLIGHT and back
// to IDLE regardless of outcome. Validation failures return before any
// network call and are not notified (they render inline); network outcomes
// produce exactly one notification.
func (d *Dispatcher) Dispatch(ctx context.Context, action Action) (Result, error) {
	if err := d.enter(); err != nil {
		return Result{}, err
	}
	defer d.leave()

	switch a := action.(type) {
	case Accept:
		return d.accept(ctx, a)
	case Start:
		return d.simpleTrip(ctx, "Trip started", func() (*domain.Trip, error) {
			return d.api.StartTrip(ctx, a.DriverID, a.TripID)
		})
	case End:
		return d.simpleTrip(ctx, "Trip completed", func() (*domain.Trip, error) {
			return d.api.EndTrip(ctx, a.DriverID, a.TripID)
		})
	case CancelByCustomer:
		return d.cancel(ctx, func() (*domain.Trip, error) {
			return d.api.CancelByCustomer(ctx, a.CustomerID, a.TripID)
		})
	case CancelByDriver:
		return d.cancel(ctx, func() (*domain.Trip, error) {
			return d.api.CancelByDriver(ctx, a.DriverID, a.TripID)
		})
	case Rate:
		return d.rate(ctx, a)
	case FileComplaint:
		return d.fileComplaint(ctx, a)
	case SetComplaintStatus:
		return d.setComplaintStatus(ctx, a)
	default:
		return Result{}, fmt.Errorf("unknown action %T", action)
	}
}

// accept performs the primary accept call and then a best-effort acceptance
// email. The accept is final once the primary call succeeds; an email
// failure is logged and never rolls it back.
func (d *Dispatcher) accept(ctx context.Context, a Accept) (Result, error) {
	trip, err := d.api.AcceptTrip(ctx, a.DriverID, a.TripID)
	if err != nil {
		d.notifier.Error(client.Message(err))
		return Result{}, err
	}

	if trip.Customer != nil {
		if emailErr := d.api.SendAcceptanceEmail(ctx, trip.Customer.ID, a.DriverID, a.TripID); emailErr != nil {
			log.Printf("acceptance email for trip %d failed: %v", a.TripID, emailErr)
		}
	}

	d.notifier.Success("Trip accepted")
	d.runRefresh(ctx)
	return Result{SwitchToActive: true}, nil
}

func (d *Dispatcher) simpleTrip(ctx context.Context, successMsg string, call func() (*domain.Trip, error)) (Result, error) {
	if _, err := call(); err != nil {
		d.notifier.Error(client.Message(err))
		return Result{}, err
	}
	d.notifier.Success(successMsg)
	d.runRefresh(ctx)
	return Result{}, nil
}

func (d *Dispatcher) cancel(ctx context.Context, call func() (*domain.Trip, error)) (Result, error) {
	if d.confirm != nil && !d.confirm("Are you sure you want to cancel this trip?") {
		return Result{Declined: true}, nil
	}

	if _, err := call(); err != nil {
		d.notifier.Error(client.Message(err))
		return Result{}, err
	}
	d.notifier.Success("Trip cancelled")
	d.runRefresh(ctx)
	return Result{}, nil
}

func (d *Dispatcher) rate(ctx context.Context, a Rate) (Result, error) {
	if a.Stars < 1 || a.Stars > 5 {
		return Result{}, domain.NewValidationError("rating", "Please select a rating")
	}

	if err := d.api.RateDriver(ctx, a.DriverID, a.TripID, a.Stars); err != nil {
		d.notifier.Error(client.Message(err))
		return Result{}, err
	}
	d.notifier.Success("Driver rated")
	d.runRefresh(ctx)
	return Result{}, nil
}

func (d *Dispatcher) fileComplaint(ctx context.Context, a FileComplaint) (Result, error) {
	if a.Message == "" {
		return Result{}, domain.NewValidationError("message", "Please describe the problem")
	}

	if _, err := d.api.SendComplaint(ctx, a.CustomerID, a.TripID, a.Message); err != nil {
		d.notifier.Error(client.Message(err))
		return Result{}, err
	}
	d.notifier.Success("Complaint submitted")
	return Result{}, nil
}

func (d *Dispatcher) setComplaintStatus(ctx context.Context, a SetComplaintStatus) (Result, error) {
	if !a.Current.CanTransitionTo(a.Target) {
		return Result{}, ErrIllegalTransition
	}

	var err error
	switch a.Target {
	case domain.ComplaintStatusOpened:
		err = d.api.OpenComplaint(ctx, a.ComplaintID)
	case domain.ComplaintStatusClosed:
		err = d.api.CloseComplaint(ctx, a.ComplaintID)
	default:
		return Result{}, ErrIllegalTransition
	}

	if err != nil {
		d.notifier.Error(client.Message(err))
		return Result{}, err
	}
	d.notifier.Success("Complaint updated")
	return Result{}, nil
}

func (d *Dispatcher) runRefresh(ctx context.Context) {
	if d.refresh != nil {
		d.refresh(ctx)
	}
}

func (d *Dispatcher) enter() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == StateInFlight {
		return ErrInFlight
	}
	d.state = StateInFlight
	return nil
}

func (d *Dispatcher) leave() {
	d.mu.Lock()
	d.state = StateIdle
	d.mu.Unlock()
}
