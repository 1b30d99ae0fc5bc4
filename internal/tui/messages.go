package tui

import (
	"sync"

	"swiftride/internal/booking"
	"swiftride/internal/dispatch"
	"swiftride/internal/domain"
	"swiftride/internal/geocode"
	"swiftride/internal/triplist"
)

// loginMsg carries the outcome of a login attempt for any role.
type loginMsg struct {
	actor domain.Actor
	err   error
}

// tripsMsg carries a reconciled trip list for one scope.
type tripsMsg struct {
	scope triplist.Scope
	trips []domain.Trip
	err   error
}

// suggestionsMsg carries address suggestions for one booking field.
type suggestionsMsg struct {
	field booking.Field
	items []geocode.Suggestion
}

// bookingMsg carries the outcome of a booking submit or payment confirm.
type bookingMsg struct {
	outcome booking.Outcome
	err     error
}

// actionMsg carries the outcome of a dispatched lifecycle action together
// with the single notification the dispatcher recorded for it.
type actionMsg struct {
	notice string
	isErr  bool
	result dispatch.Result
	err    error
}

// complaintsMsg carries the three reconciled complaint buckets.
type complaintsMsg struct {
	buckets triplist.ComplaintBuckets
	err     error
}

// fleetMsg carries the reconciled fleet view.
type fleetMsg struct {
	view triplist.FleetView
	err  error
}

// registerMsg carries the outcome of a driver or car registration, or a
// direct fleet mutation (assign, delete).
type registerMsg struct {
	notice string
	err    error
}

// noticeRecorder implements dispatch.Notifier by holding the one message an
// invocation produced, for the command to collect after Dispatch returns.
type noticeRecorder struct {
	mu     sync.Mutex
	notice string
	isErr  bool
}

func (r *noticeRecorder) Success(message string) {
	r.mu.Lock()
	r.notice, r.isErr = message, false
	r.mu.Unlock()
}

func (r *noticeRecorder) Error(message string) {
	r.mu.Lock()
	r.notice, r.isErr = message, true
	r.mu.Unlock()
}

func (r *noticeRecorder) take() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	notice, isErr := r.notice, r.isErr
	r.notice, r.isErr = "", false
	return notice, isErr
}
