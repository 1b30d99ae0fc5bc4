package server

import (
	"errors"
	"testing"
	"time"

	"swiftride/internal/domain"
)

func seededStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	s.Seed()
	// Fixed clock so "future date" checks are deterministic.
	s.now = func() time.Time {
		return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func bookInput() BookTripInput {
	return BookTripInput{
		CustomerID:     1,
		PaymentMethod:  domain.PaymentMethodCash,
		PickupLocation: "Tahrir Square",
		Destination:    "Cairo Airport",
		TripDate:       "2026-09-01T10:30:00",
	}
}

func bookTrip(t *testing.T, s *Store) *domain.Trip {
	t.Helper()
	trip, err := s.BookTrip(bookInput())
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	return trip
}

func TestBookTrip_CreatesRequestedTrip(t *testing.T) {
	t.Parallel()

	s := seededStore(t)
	in := bookInput()
	in.IsPremium = true
	in.HasChildSeat = true

	trip, err := s.BookTrip(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trip.Status != domain.TripStatusRequested {
		t.Errorf("expected REQUESTED, got %s", trip.Status)
	}
	if trip.Driver != nil {
		t.Error("a requested trip must not carry a driver")
	}
	if trip.Customer == nil || trip.Customer.ID != 1 {
		t.Error("trip must carry its customer")
	}
	if trip.Fare == nil || *trip.Fare != baseFare+premiumSurcharge+childSeatSurcharge {
		t.Errorf("fare with both add-ons wrong: %v", trip.Fare)
	}
}

func TestBookTrip_Validation(t *testing.T) {
	t.Parallel()

	s := seededStore(t)

	cases := []struct {
		name   string
		mutate func(*BookTripInput)
		want   error
	}{
		{"unknown customer", func(in *BookTripInput) { in.CustomerID = 999 }, ErrCustomerNotFound},
		{"bad payment method", func(in *BookTripInput) { in.PaymentMethod = "CHEQUE" }, ErrInvalidPaymentMethod},
		{"empty pickup", func(in *BookTripInput) { in.PickupLocation = "" }, ErrInvalidPickup},
		{"empty destination", func(in *BookTripInput) { in.Destination = "" }, ErrInvalidDestination},
		{"unparseable date", func(in *BookTripInput) { in.TripDate = "tomorrow" }, ErrInvalidTripDate},
		{"missing seconds", func(in *BookTripInput) { in.TripDate = "2026-09-01T10:30" }, ErrInvalidTripDate},
		{"past date", func(in *BookTripInput) { in.TripDate = "2026-08-29T11:59:00" }, ErrInvalidTripDate},
	}
	for _, tc := range cases {
		in := bookInput()
		tc.mutate(&in)
		if _, err := s.BookTrip(in); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestAcceptTrip_FirstAcceptWins(t *testing.T) {
	t.Parallel()

	s := seededStore(t)
	trip := bookTrip(t, s)

	accepted, err := s.AcceptTrip(1, trip.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if accepted.Status != domain.TripStatusAccepted {
		t.Errorf("expected ACCEPTED, got %s", accepted.Status)
	}
	if accepted.Driver == nil || accepted.Driver.ID != 1 {
		t.Error("accepted trip must carry the driver")
	}

	// Driver 2 arrives second and loses.
	if _, err := s.AcceptTrip(2, trip.ID); !errors.Is(err, ErrTripNotAvailable) {
		t.Errorf("expected ErrTripNotAvailable, got %v", err)
	}
}

func TestAcceptTrip_CarlessDriverRejected(t *testing.T) {
	t.Parallel()

	s := seededStore(t)
	trip := bookTrip(t, s)

	// Seed leaves driver 3 without a car.
	if _, err := s.AcceptTrip(3, trip.ID); !errors.Is(err, ErrDriverHasNoCar) {
		t.Errorf("expected ErrDriverHasNoCar, got %v", err)
	}
}

func TestTripLifecycle_HappyPath(t *testing.T) {
	t.Parallel()

	s := seededStore(t)
	trip := bookTrip(t, s)

	if _, err := s.AcceptTrip(1, trip.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	ongoing, err := s.StartTrip(1, trip.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if ongoing.Status != domain.TripStatusOngoing {
		t.Errorf("expected ONGOING, got %s", ongoing.Status)
	}
	completed, err := s.EndTrip(1, trip.ID)
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if completed.Status != domain.TripStatusCompleted {
		t.Errorf("expected COMPLETED, got %s", completed.Status)
	}
}

func TestTripLifecycle_OutOfOrderTransitionsFail(t *testing.T) {
	t.Parallel()

	s := seededStore(t)
	trip := bookTrip(t, s)

	// Starting or ending a trip the driver never accepted fails on the
	// assignment check.
	if _, err := s.StartTrip(1, trip.ID); !errors.Is(err, ErrDriverNotAssigned) {
		t.Errorf("start before accept: expected ErrDriverNotAssigned, got %v", err)
	}

	if _, err := s.AcceptTrip(1, trip.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := s.EndTrip(1, trip.ID); !errors.Is(err, ErrTripNotOngoing) {
		t.Errorf("end before start: expected ErrTripNotOngoing, got %v", err)
	}

	if _, err := s.StartTrip(1, trip.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := s.EndTrip(1, trip.ID); err != nil {
		t.Fatalf("end: %v", err)
	}

	// A completed trip is terminal.
	if _, err := s.StartTrip(1, trip.ID); !errors.Is(err, ErrTripNotAccepted) {
		t.Errorf("start after complete: expected ErrTripNotAccepted, got %v", err)
	}
}

func TestCancelByCustomer(t *testing.T) {
	t.Parallel()

	s := seededStore(t)
	trip := bookTrip(t, s)

	// A foreign customer cannot cancel someone else's trip.
	if _, err := s.CancelByCustomer(2, trip.ID); !errors.Is(err, ErrNotTripCustomer) {
		t.Errorf("expected ErrNotTripCustomer, got %v", err)
	}

	cancelled, err := s.CancelByCustomer(1, trip.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != domain.TripStatusCancelled {
		t.Errorf("expected CANCELLED, got %s", cancelled.Status)
	}
	if cancelled.Driver != nil {
		t.Error("a cancelled trip must not carry a driver")
	}
}

func TestCancel_OnlyBeforeOngoing(t *testing.T) {
	t.Parallel()

	s := seededStore(t)
	trip := bookTrip(t, s)

	if _, err := s.AcceptTrip(1, trip.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := s.StartTrip(1, trip.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Once ONGOING, neither side can cancel.
	if _, err := s.CancelByCustomer(1, trip.ID); !errors.Is(err, ErrTripNotCancellable) {
		t.Errorf("customer cancel of ongoing: expected ErrTripNotCancellable, got %v", err)
	}
	if _, err := s.CancelByDriver(1, trip.ID); !errors.Is(err, ErrTripNotCancellable) {
		t.Errorf("driver cancel of ongoing: expected ErrTripNotCancellable, got %v", err)
	}
}

func TestCancelByDriver_ClearsDriver(t *testing.T) {
	t.Parallel()

	s := seededStore(t)
	trip := bookTrip(t, s)

	if _, err := s.AcceptTrip(1, trip.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	cancelled, err := s.CancelByDriver(1, trip.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != domain.TripStatusCancelled || cancelled.Driver != nil {
		t.Errorf("driver cancel wrong: status=%s driver=%v", cancelled.Status, cancelled.Driver)
	}
}

func TestRateDriver(t *testing.T) {
	t.Parallel()

	s := seededStore(t)
	trip := bookTrip(t, s)
	if _, err := s.AcceptTrip(1, trip.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	// Cannot rate before completion.
	if err := s.RateDriver(1, trip.ID, 4); !errors.Is(err, ErrTripNotCompleted) {
		t.Errorf("expected ErrTripNotCompleted, got %v", err)
	}

	if _, err := s.StartTrip(1, trip.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := s.EndTrip(1, trip.ID); err != nil {
		t.Fatalf("end: %v", err)
	}

	if err := s.RateDriver(1, trip.ID, 0); !errors.Is(err, ErrInvalidRating) {
		t.Errorf("expected ErrInvalidRating, got %v", err)
	}
	if err := s.RateDriver(1, trip.ID, 3); err != nil {
		t.Fatalf("rate: %v", err)
	}

	// Exactly one rating per trip.
	if err := s.RateDriver(1, trip.ID, 5); !errors.Is(err, ErrDriverAlreadyRated) {
		t.Errorf("expected ErrDriverAlreadyRated, got %v", err)
	}

	trips, err := s.CustomerPreviousTrips(1)
	if err != nil {
		t.Fatalf("previous trips: %v", err)
	}
	if len(trips) != 1 || !trips[0].Rated {
		t.Errorf("trip should be marked rated: %+v", trips)
	}
}

func TestRequestedTrips_EmptyIsNotFound(t *testing.T) {
	t.Parallel()

	s := seededStore(t)

	if _, err := s.RequestedTrips(); !errors.Is(err, ErrNoRequestedTrips) {
		t.Errorf("expected ErrNoRequestedTrips, got %v", err)
	}

	bookTrip(t, s)
	trips, err := s.RequestedTrips()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trips) != 1 {
		t.Errorf("expected 1 requested trip, got %d", len(trips))
	}
}

func TestDriverActiveTrips(t *testing.T) {
	t.Parallel()

	s := seededStore(t)
	first := bookTrip(t, s)
	second := bookTrip(t, s)

	if _, err := s.AcceptTrip(1, first.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := s.AcceptTrip(1, second.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := s.StartTrip(1, first.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := s.EndTrip(1, first.ID); err != nil {
		t.Fatalf("end: %v", err)
	}

	active, err := s.DriverActiveTrips(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The completed trip dropped out, the accepted one remains.
	if len(active) != 1 || active[0].ID != second.ID {
		t.Errorf("active trips wrong: %+v", active)
	}
}

func TestCustomerPreviousTrips_TerminalOnly(t *testing.T) {
	t.Parallel()

	s := seededStore(t)
	first := bookTrip(t, s)
	bookTrip(t, s)

	if _, err := s.CancelByCustomer(1, first.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	previous, err := s.CustomerPreviousTrips(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(previous) != 1 || previous[0].ID != first.ID {
		t.Errorf("previous trips wrong: %+v", previous)
	}
}
