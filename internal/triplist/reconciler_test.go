package triplist

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"swiftride/internal/client"
	"swiftride/internal/domain"
)

// mockTripSource is a mock implementation of TripSource.
type mockTripSource struct {
	CustomerTripsFn  func(ctx context.Context, customerID int64) ([]domain.Trip, error)
	RequestedTripsFn func(ctx context.Context) ([]domain.Trip, error)

	customerTrips []domain.Trip
	previousTrips []domain.Trip
	requested     []domain.Trip
	driverActive  []domain.Trip

	CustomerTripsError  error
	RequestedTripsError error
	DriverActiveError   error

	CustomerTripsCallCount int32
}

func (m *mockTripSource) CustomerTrips(ctx context.Context, customerID int64) ([]domain.Trip, error) {
	atomic.AddInt32(&m.CustomerTripsCallCount, 1)
	if m.CustomerTripsFn != nil {
		return m.CustomerTripsFn(ctx, customerID)
	}
	return m.customerTrips, m.CustomerTripsError
}

func (m *mockTripSource) CustomerPreviousTrips(ctx context.Context, customerID int64) ([]domain.Trip, error) {
	return m.previousTrips, nil
}

func (m *mockTripSource) RequestedTrips(ctx context.Context) ([]domain.Trip, error) {
	if m.RequestedTripsFn != nil {
		return m.RequestedTripsFn(ctx)
	}
	return m.requested, m.RequestedTripsError
}

func (m *mockTripSource) DriverActiveTrips(ctx context.Context, driverID int64) ([]domain.Trip, error) {
	return m.driverActive, m.DriverActiveError
}

// mockComplaintSource is a mock implementation of ComplaintSource.
type mockComplaintSource struct {
	byStatus map[domain.ComplaintStatus][]domain.Complaint
	errors   map[domain.ComplaintStatus]error
}

func (m *mockComplaintSource) ComplaintsByStatus(ctx context.Context, status domain.ComplaintStatus) ([]domain.Complaint, error) {
	if err := m.errors[status]; err != nil {
		return nil, err
	}
	return m.byStatus[status], nil
}

// mockFleetSource is a mock implementation of FleetSource.
type mockFleetSource struct {
	cars      []domain.Car
	available []domain.Car
	carless   []domain.Driver

	CarsError error
}

func (m *mockFleetSource) Cars(ctx context.Context) ([]domain.Car, error) {
	return m.cars, m.CarsError
}

func (m *mockFleetSource) AvailableCars(ctx context.Context) ([]domain.Car, error) {
	return m.available, nil
}

func (m *mockFleetSource) DriversWithoutCar(ctx context.Context) ([]domain.Driver, error) {
	return m.carless, nil
}

func trip(id int64, status domain.TripStatus) domain.Trip {
	return domain.Trip{ID: id, Status: status}
}

func TestLoad_CustomerActiveFiltersTerminalTrips(t *testing.T) {
	t.Parallel()

	source := &mockTripSource{customerTrips: []domain.Trip{
		trip(1, domain.TripStatusRequested),
		trip(2, domain.TripStatusCompleted),
		trip(3, domain.TripStatusOngoing),
		trip(4, domain.TripStatusCancelled),
		trip(5, domain.TripStatusAccepted),
	}}
	r := New(source, &mockComplaintSource{}, &mockFleetSource{})

	trips, err := r.Load(context.Background(), ScopeCustomerActive, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trips) != 3 {
		t.Fatalf("expected 3 active trips, got %d", len(trips))
	}
	for _, tr := range trips {
		if !tr.Status.Active() {
			t.Errorf("terminal trip %d leaked into the active list", tr.ID)
		}
	}
}

func TestLoad_HistoryIsNotFiltered(t *testing.T) {
	t.Parallel()

	source := &mockTripSource{previousTrips: []domain.Trip{
		trip(1, domain.TripStatusCompleted),
		trip(2, domain.TripStatusCancelled),
	}}
	r := New(source, &mockComplaintSource{}, &mockFleetSource{})

	trips, err := r.Load(context.Background(), ScopeCustomerHistory, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trips) != 2 {
		t.Errorf("expected 2 trips, got %d", len(trips))
	}
}

func TestLoad_ReplacesWholesale(t *testing.T) {
	t.Parallel()

	source := &mockTripSource{driverActive: []domain.Trip{trip(1, domain.TripStatusAccepted), trip(2, domain.TripStatusOngoing)}}
	r := New(source, &mockComplaintSource{}, &mockFleetSource{})

	if _, err := r.Load(context.Background(), ScopeDriverActive, 9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A second load fully replaces the first, never merges.
	source.driverActive = []domain.Trip{trip(3, domain.TripStatusAccepted)}
	trips, err := r.Load(context.Background(), ScopeDriverActive, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trips) != 1 || trips[0].ID != 3 {
		t.Errorf("expected wholesale replacement, got %v", trips)
	}
	if held := r.Trips(ScopeDriverActive); len(held) != 1 || held[0].ID != 3 {
		t.Errorf("held list mismatch: %v", held)
	}
}

func TestLoad_NotFoundOnAvailableScopeIsEmpty(t *testing.T) {
	t.Parallel()

	source := &mockTripSource{RequestedTripsError: &client.ResponseError{StatusCode: http.StatusNotFound}}
	r := New(source, &mockComplaintSource{}, &mockFleetSource{})

	trips, err := r.Load(context.Background(), ScopeDriverAvailable, 0)
	if err != nil {
		t.Fatalf("404 on the available scope is an empty result, got error %v", err)
	}
	if len(trips) != 0 {
		t.Errorf("expected empty list, got %v", trips)
	}
}

func TestLoad_NotFoundElsewhereIsAnError(t *testing.T) {
	t.Parallel()

	source := &mockTripSource{DriverActiveError: &client.ResponseError{StatusCode: http.StatusNotFound}}
	r := New(source, &mockComplaintSource{}, &mockFleetSource{})

	if _, err := r.Load(context.Background(), ScopeDriverActive, 9); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoad_FailureResetsHeldList(t *testing.T) {
	t.Parallel()

	source := &mockTripSource{customerTrips: []domain.Trip{trip(1, domain.TripStatusRequested)}}
	r := New(source, &mockComplaintSource{}, &mockFleetSource{})

	if _, err := r.Load(context.Background(), ScopeCustomerActive, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	source.CustomerTripsError = errors.New("boom")
	if _, err := r.Load(context.Background(), ScopeCustomerActive, 1); err == nil {
		t.Fatal("expected error")
	}
	if held := r.Trips(ScopeCustomerActive); len(held) != 0 {
		t.Errorf("failed load must reset the list, got %v", held)
	}
}

func TestLoad_StaleResponseIsDiscarded(t *testing.T) {
	t.Parallel()

	oldList := []domain.Trip{trip(1, domain.TripStatusRequested)}
	newList := []domain.Trip{trip(2, domain.TripStatusRequested)}

	firstStarted := make(chan struct{})
	release := make(chan struct{})
	calls := int32(0)

	source := &mockTripSource{}
	source.CustomerTripsFn = func(ctx context.Context, customerID int64) ([]domain.Trip, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(firstStarted)
			<-release
			return oldList, nil
		}
		return newList, nil
	}
	r := New(source, &mockComplaintSource{}, &mockFleetSource{})

	done := make(chan []domain.Trip)
	go func() {
		trips, _ := r.Load(context.Background(), ScopeCustomerActive, 1)
		done <- trips
	}()

	<-firstStarted

	// The newer request completes while the older is still in flight.
	trips, err := r.Load(context.Background(), ScopeCustomerActive, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trips) != 1 || trips[0].ID != 2 {
		t.Fatalf("expected the new list, got %v", trips)
	}

	close(release)
	slow := <-done

	// The slow response lost the race: it is discarded and the caller sees
	// the newer list instead.
	if len(slow) != 1 || slow[0].ID != 2 {
		t.Errorf("stale response was not discarded: %v", slow)
	}
	if held := r.Trips(ScopeCustomerActive); len(held) != 1 || held[0].ID != 2 {
		t.Errorf("held list corrupted by stale response: %v", held)
	}
}

func TestLoadComplaints_JoinsThreeBuckets(t *testing.T) {
	t.Parallel()

	source := &mockComplaintSource{byStatus: map[domain.ComplaintStatus][]domain.Complaint{
		domain.ComplaintStatusNew:    {{ID: 1, Status: domain.ComplaintStatusNew}},
		domain.ComplaintStatusOpened: {{ID: 2, Status: domain.ComplaintStatusOpened}, {ID: 3, Status: domain.ComplaintStatusOpened}},
		domain.ComplaintStatusClosed: {},
	}}
	r := New(&mockTripSource{}, source, &mockFleetSource{})

	buckets, err := r.LoadComplaints(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(buckets.New) != 1 || len(buckets.Opened) != 2 || len(buckets.Closed) != 0 {
		t.Errorf("bucket sizes wrong: %d/%d/%d", len(buckets.New), len(buckets.Opened), len(buckets.Closed))
	}
	if got := r.Complaints(); len(got.Opened) != 2 {
		t.Errorf("held buckets mismatch: %+v", got)
	}
}

func TestLoadComplaints_AnyFailureResetsAll(t *testing.T) {
	t.Parallel()

	source := &mockComplaintSource{
		byStatus: map[domain.ComplaintStatus][]domain.Complaint{
			domain.ComplaintStatusNew: {{ID: 1}},
		},
		errors: map[domain.ComplaintStatus]error{
			domain.ComplaintStatusOpened: errors.New("boom"),
		},
	}
	r := New(&mockTripSource{}, source, &mockFleetSource{})

	if _, err := r.LoadComplaints(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if got := r.Complaints(); got.New != nil || got.Opened != nil || got.Closed != nil {
		t.Errorf("buckets must reset on failure: %+v", got)
	}
}

func TestLoadFleet_JoinsView(t *testing.T) {
	t.Parallel()

	source := &mockFleetSource{
		cars:      []domain.Car{{ID: 1}, {ID: 2}},
		available: []domain.Car{{ID: 2}},
		carless:   []domain.Driver{{ID: 3}},
	}
	r := New(&mockTripSource{}, &mockComplaintSource{}, source)

	view, err := r.LoadFleet(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.AllCars) != 2 || len(view.AvailableCars) != 1 || len(view.DriversWithoutCar) != 1 {
		t.Errorf("fleet view wrong: %+v", view)
	}
}

func TestLoadFleet_FailureResetsView(t *testing.T) {
	t.Parallel()

	source := &mockFleetSource{cars: []domain.Car{{ID: 1}}, CarsError: errors.New("boom")}
	r := New(&mockTripSource{}, &mockComplaintSource{}, source)

	if _, err := r.LoadFleet(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if view := r.Fleet(); view.AllCars != nil {
		t.Errorf("view must reset on failure: %+v", view)
	}
}
