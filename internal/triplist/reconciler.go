// Package triplist produces the authoritative, role- and tab-scoped trip
// collections for display. Every load wholesale-replaces the prior list;
// nothing is ever merged or patched, so a list can never hold a stale
// partial update. A per-scope sequence number closes the race between a
// slow old response and a fast new one.
package triplist

import (
	"context"
	"sync"

	"swiftride/internal/client"
	"swiftride/internal/domain"
)

// Scope identifies one role- and tab-scoped trip list.
type Scope string

const (
	ScopeCustomerActive  Scope = "customer/active"
	ScopeCustomerHistory Scope = "customer/history"
	ScopeDriverAvailable Scope = "driver/available"
	ScopeDriverActive    Scope = "driver/active"
)

// TripSource fetches trip collections from the backend.
type TripSource interface {
	CustomerTrips(ctx context.Context, customerID int64) ([]domain.Trip, error)
	CustomerPreviousTrips(ctx context.Context, customerID int64) ([]domain.Trip, error)
	RequestedTrips(ctx context.Context) ([]domain.Trip, error)
	DriverActiveTrips(ctx context.Context, driverID int64) ([]domain.Trip, error)
}

// ComplaintSource fetches complaint collections by status.
type ComplaintSource interface {
	ComplaintsByStatus(ctx context.Context, status domain.ComplaintStatus) ([]domain.Complaint, error)
}

// FleetSource fetches the employee fleet collections.
type FleetSource interface {
	Cars(ctx context.Context) ([]domain.Car, error)
	AvailableCars(ctx context.Context) ([]domain.Car, error)
	DriversWithoutCar(ctx context.Context) ([]domain.Driver, error)
}

// ComplaintBuckets holds the three independent complaint collections the
// employee view renders, one named bucket per status.
type ComplaintBuckets struct {
	New    []domain.Complaint
	Opened []domain.Complaint
	Closed []domain.Complaint
}

// FleetView holds the employee fleet collections.
type FleetView struct {
	AllCars           []domain.Car
	AvailableCars     []domain.Car
	DriversWithoutCar []domain.Driver
}

// Reconciler replaces client-held list state with the latest authoritative
// server snapshot. Safe for concurrent use.
type Reconciler struct {
	trips      TripSource
	complaints ComplaintSource
	fleet      FleetSource

	mu     sync.Mutex
	lists  map[Scope][]domain.Trip
	issued map[Scope]uint64

	buckets   ComplaintBuckets
	fleetView FleetView
}

// New creates a Reconciler over the given sources. The sources usually all
// point at the same *client.Client.
func New(trips TripSource, complaints ComplaintSource, fleet FleetSource) *Reconciler {
	return &Reconciler{
		trips:      trips,
		complaints: complaints,
		fleet:      fleet,
		lists:      make(map[Scope][]domain.Trip),
		issued:     make(map[Scope]uint64),
	}
}

// Trips returns the currently held list for a scope.
func (r *Reconciler) Trips(scope Scope) []domain.Trip {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lists[scope]
}

// Complaints returns the currently held complaint buckets.
func (r *Reconciler) Complaints() ComplaintBuckets {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buckets
}

// Fleet returns the currently held fleet view.
func (r *Reconciler) Fleet() FleetView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fleetView
}

// Load fetches the authoritative trip list for the scope and replaces the
// held list wholesale. actorID is the customer ID for customer scopes and
// the driver ID for ScopeDriverActive; ScopeDriverAvailable ignores it.
//
// On fetch failure the scope's list resets to empty and the error is
// returned — except a not-found on the driver "available" scope, which is
// an empty result, not an error. A response that lost the race to a later
// request for the same scope is discarded and the newer list returned.
func (r *Reconciler) Load(ctx context.Context, scope Scope, actorID int64) ([]domain.Trip, error) {
	seq := r.nextSeq(scope)

	trips, err := r.fetch(ctx, scope, actorID)
	if err != nil {
		if scope == ScopeDriverAvailable && client.IsNotFound(err) {
			return r.commit(scope, seq, nil), nil
		}
		r.commit(scope, seq, nil)
		return nil, err
	}

	return r.commit(scope, seq, filterScope(scope, trips)), nil
}

// LoadComplaints fetches the three status buckets in parallel and joins
// them. Completion order is irrelevant; each populates a disjoint bucket.
// Any failure resets all buckets and surfaces the first error.
func (r *Reconciler) LoadComplaints(ctx context.Context) (ComplaintBuckets, error) {
	var (
		buckets ComplaintBuckets
		errs    [3]error
		wg      sync.WaitGroup
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		buckets.New, errs[0] = r.complaints.ComplaintsByStatus(ctx, domain.ComplaintStatusNew)
	}()
	go func() {
		defer wg.Done()
		buckets.Opened, errs[1] = r.complaints.ComplaintsByStatus(ctx, domain.ComplaintStatusOpened)
	}()
	go func() {
		defer wg.Done()
		buckets.Closed, errs[2] = r.complaints.ComplaintsByStatus(ctx, domain.ComplaintStatusClosed)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			r.mu.Lock()
			r.buckets = ComplaintBuckets{}
			r.mu.Unlock()
			return ComplaintBuckets{}, err
		}
	}

	r.mu.Lock()
	r.buckets = buckets
	r.mu.Unlock()
	return buckets, nil
}

// LoadFleet fetches all cars, available cars, and carless drivers in
// parallel and joins them into one view.
func (r *Reconciler) LoadFleet(ctx context.Context) (FleetView, error) {
	var (
		view FleetView
		errs [3]error
		wg   sync.WaitGroup
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		view.AllCars, errs[0] = r.fleet.Cars(ctx)
	}()
	go func() {
		defer wg.Done()
		view.AvailableCars, errs[1] = r.fleet.AvailableCars(ctx)
	}()
	go func() {
		defer wg.Done()
		view.DriversWithoutCar, errs[2] = r.fleet.DriversWithoutCar(ctx)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			r.mu.Lock()
			r.fleetView = FleetView{}
			r.mu.Unlock()
			return FleetView{}, err
		}
	}

	r.mu.Lock()
	r.fleetView = view
	r.mu.Unlock()
	return view, nil
}

func (r *Reconciler) fetch(ctx context.Context, scope Scope, actorID int64) ([]domain.Trip, error) {
	switch scope {
	case ScopeCustomerActive:
		return r.trips.CustomerTrips(ctx, actorID)
	case ScopeCustomerHistory:
		return r.trips.CustomerPreviousTrips(ctx, actorID)
	case ScopeDriverAvailable:
		return r.trips.RequestedTrips(ctx)
	case ScopeDriverActive:
		return r.trips.DriverActiveTrips(ctx, actorID)
	default:
		return nil, nil
	}
}

// filterScope applies the client-side filter a scope requires. Only the
// customer "active" tab filters; the backend returns the unfiltered set
// there. History and driver scopes are retained as returned.
func filterScope(scope Scope, trips []domain.Trip) []domain.Trip {
	if scope != ScopeCustomerActive {
		return trips
	}
	active := make([]domain.Trip, 0, len(trips))
	for _, t := range trips {
		if t.Status.Active() {
			active = append(active, t)
		}
	}
	return active
}

func (r *Reconciler) nextSeq(scope Scope) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.issued[scope]++
	return r.issued[scope]
}

// commit installs the fetched list unless a newer request was issued for
// the scope in the meantime; stale responses are dropped and the held list
// returned instead.
func (r *Reconciler) commit(scope Scope, seq uint64, trips []domain.Trip) []domain.Trip {
	r.mu.Lock()
	defer r.mu.Unlock()

	if seq < r.issued[scope] {
		return r.lists[scope]
	}

	r.lists[scope] = trips
	return trips
}
