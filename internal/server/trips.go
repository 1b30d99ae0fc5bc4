package server

import (
	"sort"
	"time"

	"swiftride/internal/domain"
)

// Placeholder fare figures. The real product computes distance-based fares
// on the backend; the dev backend only needs a plausible number.
const (
	baseFare             = 11.80
	premiumSurcharge     = 25.00
	childSeatSurcharge   = 10.00
	flatEstimatedMinutes = 30
)

// BookTripInput is the booking payload plus its query parameters.
type BookTripInput struct {
	CustomerID     int64
	PaymentMethod  domain.PaymentMethod
	PickupLocation string
	Destination    string
	TripDate       string
	IsPremium      bool
	HasChildSeat   bool
}

// BookTrip creates a REQUESTED trip for the customer. The trip date must
// parse and lie in the future.
func (s *Store) BookTrip(in BookTripInput) (*domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[in.CustomerID]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	if !in.PaymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}
	if in.PickupLocation == "" {
		return nil, ErrInvalidPickup
	}
	if in.Destination == "" {
		return nil, ErrInvalidDestination
	}

	scheduled, err := time.Parse(domain.TripDateLayout, in.TripDate)
	if err != nil || !scheduled.After(s.now()) {
		return nil, ErrInvalidTripDate
	}

	fare := baseFare
	if in.IsPremium {
		fare += premiumSurcharge
	}
	if in.HasChildSeat {
		fare += childSeatSurcharge
	}

	s.nextTripID++
	c := *customer
	trip := &domain.Trip{
		ID:               s.nextTripID,
		PickupLocation:   in.PickupLocation,
		Destination:      in.Destination,
		TripDate:         in.TripDate,
		CreatedAt:        s.now().Format(domain.TripDateLayout),
		Status:           domain.TripStatusRequested,
		Fare:             &fare,
		IsPremium:        in.IsPremium,
		HasChildSeat:     in.HasChildSeat,
		EstimatedMinutes: flatEstimatedMinutes,
		Customer:         &c,
	}
	s.trips[trip.ID] = trip

	return s.copyTrip(trip), nil
}

// AcceptTrip assigns the driver to a REQUESTED trip. The first accept wins;
// a driver without a car cannot accept.
func (s *Store) AcceptTrip(driverID, tripID int64) (*domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	driver, ok := s.driverSnapshot(driverID)
	if !ok {
		return nil, ErrDriverNotFound
	}
	if !s.driverHasCar(driverID) {
		return nil, ErrDriverHasNoCar
	}

	trip, ok := s.trips[tripID]
	if !ok {
		return nil, ErrTripNotFound
	}
	if trip.Status != domain.TripStatusRequested {
		return nil, ErrTripNotAvailable
	}

	trip.Status = domain.TripStatusAccepted
	trip.Driver = driver

	return s.copyTrip(trip), nil
}

// StartTrip moves the driver's ACCEPTED trip to ONGOING.
func (s *Store) StartTrip(driverID, tripID int64) (*domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := s.assignedTrip(driverID, tripID)
	if err != nil {
		return nil, err
	}
	if trip.Status != domain.TripStatusAccepted {
		return nil, ErrTripNotAccepted
	}

	trip.Status = domain.TripStatusOngoing
	return s.copyTrip(trip), nil
}

// EndTrip completes the driver's ONGOING trip.
func (s *Store) EndTrip(driverID, tripID int64) (*domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := s.assignedTrip(driverID, tripID)
	if err != nil {
		return nil, err
	}
	if trip.Status != domain.TripStatusOngoing {
		return nil, ErrTripNotOngoing
	}

	trip.Status = domain.TripStatusCompleted
	return s.copyTrip(trip), nil
}

// CancelByCustomer cancels the customer's own trip. Only REQUESTED and
// ACCEPTED trips can be cancelled; the driver reference is cleared so a
// cancelled trip never carries one.
func (s *Store) CancelByCustomer(customerID, tripID int64) (*domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[customerID]; !ok {
		return nil, ErrCustomerNotFound
	}
	trip, ok := s.trips[tripID]
	if !ok {
		return nil, ErrTripNotFound
	}
	if trip.Customer == nil || trip.Customer.ID != customerID {
		return nil, ErrNotTripCustomer
	}
	return s.cancelLocked(trip)
}

// CancelByDriver cancels a trip the driver had accepted.
func (s *Store) CancelByDriver(driverID, tripID int64) (*domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := s.assignedTrip(driverID, tripID)
	if err != nil {
		return nil, err
	}
	return s.cancelLocked(trip)
}

func (s *Store) cancelLocked(trip *domain.Trip) (*domain.Trip, error) {
	if !trip.Status.CanTransitionTo(domain.TripStatusCancelled) {
		return nil, ErrTripNotCancellable
	}
	trip.Status = domain.TripStatusCancelled
	trip.Driver = nil
	return s.copyTrip(trip), nil
}

// RateDriver records a 1..5 star rating for the driver of a completed
// trip. One rating per trip; re-submission conflicts.
func (s *Store) RateDriver(driverID, tripID int64, stars int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if stars < 1 || stars > 5 {
		return ErrInvalidRating
	}

	rec, ok := s.drivers[driverID]
	if !ok {
		return ErrDriverNotFound
	}
	trip, ok := s.trips[tripID]
	if !ok {
		return ErrTripNotFound
	}
	if trip.Status != domain.TripStatusCompleted {
		return ErrTripNotCompleted
	}
	if trip.Driver == nil || trip.Driver.ID != driverID {
		return ErrDriverNotAssigned
	}
	if trip.Rated {
		return ErrDriverAlreadyRated
	}

	trip.Rated = true
	rec.ratingSum += stars
	rec.ratingCount++
	rec.driver.Rating = float64(rec.ratingSum) / float64(rec.ratingCount)
	return nil
}

// CustomerTrips returns all trips for the customer, unfiltered; the client
// filters the active tab itself.
func (s *Store) CustomerTrips(customerID int64) ([]domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[customerID]; !ok {
		return nil, ErrCustomerNotFound
	}
	return s.selectTrips(func(t *domain.Trip) bool {
		return t.Customer != nil && t.Customer.ID == customerID
	}), nil
}

// CustomerPreviousTrips returns the customer's terminal-status trips.
func (s *Store) CustomerPreviousTrips(customerID int64) ([]domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[customerID]; !ok {
		return nil, ErrCustomerNotFound
	}
	return s.selectTrips(func(t *domain.Trip) bool {
		return t.Customer != nil && t.Customer.ID == customerID && t.Status.Terminal()
	}), nil
}

// RequestedTrips returns all REQUESTED trips system-wide. An empty result
// is reported as not found, which clients treat as an empty list.
func (s *Store) RequestedTrips() ([]domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trips := s.selectTrips(func(t *domain.Trip) bool {
		return t.Status == domain.TripStatusRequested
	})
	if len(trips) == 0 {
		return nil, ErrNoRequestedTrips
	}
	return trips, nil
}

// DriverActiveTrips returns the driver's ACCEPTED and ONGOING trips.
func (s *Store) DriverActiveTrips(driverID int64) ([]domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drivers[driverID]; !ok {
		return nil, ErrDriverNotFound
	}
	return s.selectTrips(func(t *domain.Trip) bool {
		return t.Driver != nil && t.Driver.ID == driverID &&
			(t.Status == domain.TripStatusAccepted || t.Status == domain.TripStatusOngoing)
	}), nil
}

func (s *Store) assignedTrip(driverID, tripID int64) (*domain.Trip, error) {
	if _, ok := s.drivers[driverID]; !ok {
		return nil, ErrDriverNotFound
	}
	trip, ok := s.trips[tripID]
	if !ok {
		return nil, ErrTripNotFound
	}
	if trip.Driver == nil || trip.Driver.ID != driverID {
		return nil, ErrDriverNotAssigned
	}
	return trip, nil
}

func (s *Store) selectTrips(keep func(*domain.Trip) bool) []domain.Trip {
	var out []domain.Trip
	for _, t := range s.trips {
		if keep(t) {
			out = append(out, *s.copyTrip(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
