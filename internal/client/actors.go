package client

import (
	"context"
	"net/http"

	"swiftride/internal/domain"
)

// Credentials is the login request body shared by all three roles.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CustomerLogin exchanges credentials for the customer profile.
// POST /customers/login
func (c *Client) CustomerLogin(ctx context.Context, creds Credentials) (*domain.Customer, error) {
	var customer domain.Customer
	if err := c.do(ctx, http.MethodPost, "/customers/login", nil, creds, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// DriverLogin exchanges credentials for the driver profile.
// POST /drivers/login
func (c *Client) DriverLogin(ctx context.Context, creds Credentials) (*domain.Driver, error) {
	var driver domain.Driver
	if err := c.do(ctx, http.MethodPost, "/drivers/login", nil, creds, &driver); err != nil {
		return nil, err
	}
	return &driver, nil
}

// EmployeeLogin exchanges credentials for the employee profile.
// POST /employees/login
func (c *Client) EmployeeLogin(ctx context.Context, creds Credentials) (*domain.Employee, error) {
	var employee domain.Employee
	if err := c.do(ctx, http.MethodPost, "/employees/login", nil, creds, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

// RegisterDriverRequest is the employee-side driver registration body.
type RegisterDriverRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"licenseNumber"`
}

// RegisterDriver creates a driver account. Employee portal only.
// POST /drivers/register
func (c *Client) RegisterDriver(ctx context.Context, req RegisterDriverRequest) (*domain.Driver, error) {
	var driver domain.Driver
	if err := c.do(ctx, http.MethodPost, "/drivers/register", nil, req, &driver); err != nil {
		return nil, err
	}
	return &driver, nil
}

// DriversWithoutCar lists drivers that have no car assigned yet.
// GET /drivers/without-car
func (c *Client) DriversWithoutCar(ctx context.Context) ([]domain.Driver, error) {
	var drivers []domain.Driver
	err := c.do(ctx, http.MethodGet, "/drivers/without-car", nil, nil, &drivers)
	return drivers, err
}
