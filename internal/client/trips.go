package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"swiftride/internal/domain"
)

// BookTripRequest is the body of the trip-booking call.
type BookTripRequest struct {
	PickupLocation string `json:"pickupLocation"`
	Destination    string `json:"destination"`
	TripDate       string `json:"tripDate"`
	IsPremium      bool   `json:"isPremium"`
	HasChildSeat   bool   `json:"hasChildSeat"`
}

// BookTrip creates a new trip for the customer.
// POST /trips/book?customerId&paymentMethod
func (c *Client) BookTrip(ctx context.Context, customerID int64, method domain.PaymentMethod, req BookTripRequest) (*domain.Trip, error) {
	query := url.Values{
		"customerId":    {formatID(customerID)},
		"paymentMethod": {string(method)},
	}
	var trip domain.Trip
	if err := c.do(ctx, http.MethodPost, "/trips/book", query, req, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

// CustomerTrips fetches all trips for the customer, unfiltered.
// GET /trips/customer/trips/{customerId}
func (c *Client) CustomerTrips(ctx context.Context, customerID int64) ([]domain.Trip, error) {
	var trips []domain.Trip
	err := c.do(ctx, http.MethodGet, "/trips/customer/trips/"+formatID(customerID), nil, nil, &trips)
	return trips, err
}

// CustomerPreviousTrips fetches the customer's terminal-status trips.
// GET /trips/customer/previous-trips?customerId
func (c *Client) CustomerPreviousTrips(ctx context.Context, customerID int64) ([]domain.Trip, error) {
	query := url.Values{"customerId": {formatID(customerID)}}
	var trips []domain.Trip
	err := c.do(ctx, http.MethodGet, "/trips/customer/previous-trips", query, nil, &trips)
	return trips, err
}

// RequestedTrips fetches all currently REQUESTED trips system-wide. Any
// driver may see and accept any of them; first accept wins server-side.
// GET /trips/requested
func (c *Client) RequestedTrips(ctx context.Context) ([]domain.Trip, error) {
	var trips []domain.Trip
	err := c.do(ctx, http.MethodGet, "/trips/requested", nil, nil, &trips)
	return trips, err
}

// DriverActiveTrips fetches the driver's ACCEPTED and ONGOING trips.
// GET /trips/driver/trips/active/{driverId}
func (c *Client) DriverActiveTrips(ctx context.Context, driverID int64) ([]domain.Trip, error) {
	var trips []domain.Trip
	err := c.do(ctx, http.MethodGet, "/trips/driver/trips/active/"+formatID(driverID), nil, nil, &trips)
	return trips, err
}

// AcceptTrip accepts a requested trip on behalf of the driver. The returned
// trip carries the customer reference needed for the acceptance email.
// POST /trips/accept/{tripId}?driverId
func (c *Client) AcceptTrip(ctx context.Context, driverID, tripID int64) (*domain.Trip, error) {
	return c.tripAction(ctx, "/trips/accept/", tripID, "driverId", driverID)
}

// StartTrip moves an accepted trip to ONGOING.
// POST /trips/start/{tripId}?driverId
func (c *Client) StartTrip(ctx context.Context, driverID, tripID int64) (*domain.Trip, error) {
	return c.tripAction(ctx, "/trips/start/", tripID, "driverId", driverID)
}

// EndTrip completes an ongoing trip.
// POST /trips/end/{tripId}?driverId
func (c *Client) EndTrip(ctx context.Context, driverID, tripID int64) (*domain.Trip, error) {
	return c.tripAction(ctx, "/trips/end/", tripID, "driverId", driverID)
}

// CancelByCustomer cancels the customer's own trip.
// POST /trips/cancel/customer/{tripId}?customerId
func (c *Client) CancelByCustomer(ctx context.Context, customerID, tripID int64) (*domain.Trip, error) {
	return c.tripAction(ctx, "/trips/cancel/customer/", tripID, "customerId", customerID)
}

// CancelByDriver cancels a trip the driver had accepted.
// POST /trips/cancel/driver/{tripId}?driverId
func (c *Client) CancelByDriver(ctx context.Context, driverID, tripID int64) (*domain.Trip, error) {
	return c.tripAction(ctx, "/trips/cancel/driver/", tripID, "driverId", driverID)
}

func (c *Client) tripAction(ctx context.Context, prefix string, tripID int64, actorParam string, actorID int64) (*domain.Trip, error) {
	query := url.Values{actorParam: {formatID(actorID)}}
	var trip domain.Trip
	if err := c.do(ctx, http.MethodPost, prefix+formatID(tripID), query, nil, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

// RateDriver submits a star rating for the driver of a completed trip.
// POST /drivers/rate/{driverId}?rating&tripId
func (c *Client) RateDriver(ctx context.Context, driverID, tripID int64, stars int) error {
	query := url.Values{
		"rating": {strconv.Itoa(stars)},
		"tripId": {formatID(tripID)},
	}
	return c.do(ctx, http.MethodPost, "/drivers/rate/"+formatID(driverID), query, nil, nil)
}

// SendAcceptanceEmail asks the backend to email the customer that a driver
// accepted their trip. Best effort; callers may ignore the error.
// POST /customers/trip/send-email?customerId&driverId&tripId
func (c *Client) SendAcceptanceEmail(ctx context.Context, customerID, driverID, tripID int64) error {
	query := url.Values{
		"customerId": {formatID(customerID)},
		"driverId":   {formatID(driverID)},
		"tripId":     {formatID(tripID)},
	}
	return c.do(ctx, http.MethodPost, "/customers/trip/send-email", query, nil, nil)
}

func formatID(id int64) string {
	return fmt.Sprintf("%d", id)
}
