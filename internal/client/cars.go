package client

import (
	"context"
	"net/http"
	"net/url"

	"swiftride/internal/domain"
)

// Cars lists the whole fleet.
// GET /cars
func (c *Client) Cars(ctx context.Context) ([]domain.Car, error) {
	var cars []domain.Car
	err := c.do(ctx, http.MethodGet, "/cars", nil, nil, &cars)
	return cars, err
}

// AvailableCars lists cars without an assigned driver.
// GET /cars/available
func (c *Client) AvailableCars(ctx context.Context) ([]domain.Car, error) {
	var cars []domain.Car
	err := c.do(ctx, http.MethodGet, "/cars/available", nil, nil, &cars)
	return cars, err
}

// RegisterCarRequest is the car registration body.
type RegisterCarRequest struct {
	Model        string `json:"model"`
	LicensePlate string `json:"licensePlate"`
	Color        string `json:"color"`
}

// RegisterCar adds a car to the fleet.
// POST /cars/register
func (c *Client) RegisterCar(ctx context.Context, req RegisterCarRequest) (*domain.Car, error) {
	var car domain.Car
	if err := c.do(ctx, http.MethodPost, "/cars/register", nil, req, &car); err != nil {
		return nil, err
	}
	return &car, nil
}

// AssignCar pairs an unassigned car with a carless driver.
// POST /cars/assign?carId&driverId
func (c *Client) AssignCar(ctx context.Context, carID, driverID int64) error {
	query := url.Values{
		"carId":    {formatID(carID)},
		"driverId": {formatID(driverID)},
	}
	return c.do(ctx, http.MethodPost, "/cars/assign", query, nil, nil)
}

// DeleteCar removes a car from the fleet.
// DELETE /cars/{id}
func (c *Client) DeleteCar(ctx context.Context, carID int64) error {
	return c.do(ctx, http.MethodDelete, "/cars/"+formatID(carID), nil, nil, nil)
}
