package server

import "swiftride/internal/domain"

// CustomerLogin checks credentials and returns the customer profile.
func (s *Store) CustomerLogin(email, password string) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.passwords[email] != password || password == "" {
		return nil, ErrInvalidCredentials
	}
	for _, c := range s.customers {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// DriverLogin checks credentials and returns the driver profile.
func (s *Store) DriverLogin(email, password string) (*domain.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.passwords[email] != password || password == "" {
		return nil, ErrInvalidCredentials
	}
	for _, rec := range s.drivers {
		if rec.driver.Email == email {
			d := rec.driver
			return &d, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// EmployeeLogin checks credentials and returns the employee profile.
func (s *Store) EmployeeLogin(email, password string) (*domain.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.passwords[email] != password || password == "" {
		return nil, ErrInvalidCredentials
	}
	for _, rec := range s.employees {
		if rec.employee.Email == email {
			e := rec.employee
			return &e, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// RegisterDriverInput is the employee-side driver registration payload.
type RegisterDriverInput struct {
	FirstName     string
	LastName      string
	Email         string
	Password      string
	Phone         string
	LicenseNumber string
}

// RegisterDriver creates a new driver account. Emails are unique across
// all roles.
func (s *Store) RegisterDriver(in RegisterDriverInput) (*domain.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.passwords[in.Email]; taken {
		return nil, ErrEmailExists
	}

	s.nextDriverID++
	driver := domain.Driver{
		ID:            s.nextDriverID,
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		Phone:         in.Phone,
		LicenseNumber: in.LicenseNumber,
		Rating:        5,
		Available:     true,
	}
	s.drivers[driver.ID] = &driverRecord{driver: driver}
	s.passwords[in.Email] = in.Password

	d := driver
	return &d, nil
}

// TripParties returns the customer and driver of a trip, for the
// acceptance email endpoint.
func (s *Store) TripParties(tripID int64) (*domain.Customer, *domain.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, ok := s.trips[tripID]
	if !ok {
		return nil, nil, ErrTripNotFound
	}
	if trip.Customer == nil || trip.Driver == nil {
		return nil, nil, ErrDriverNotAssigned
	}
	c := *trip.Customer
	d := *trip.Driver
	return &c, &d, nil
}
