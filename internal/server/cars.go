package server

import (
	"sort"

	"swiftride/internal/domain"
)

// RegisterCar adds a car to the fleet. License plates are unique.
func (s *Store) RegisterCar(model, licensePlate, color string) (*domain.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.cars {
		if c.LicensePlate == licensePlate {
			return nil, ErrLicensePlateExists
		}
	}

	s.nextCarID++
	car := &domain.Car{
		ID:           s.nextCarID,
		Model:        model,
		LicensePlate: licensePlate,
		Color:        color,
	}
	s.cars[car.ID] = car

	cp := *car
	return &cp, nil
}

// DeleteCar removes a car, releasing its driver if one was assigned.
func (s *Store) DeleteCar(carID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cars[carID]; !ok {
		return ErrCarNotFound
	}
	delete(s.cars, carID)
	return nil
}

// AssignCar pairs an unassigned car with a carless driver. A car has at
// most one driver and a driver has at most one car.
func (s *Store) AssignCar(carID, driverID int64) (*domain.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	car, ok := s.cars[carID]
	if !ok {
		return nil, ErrCarNotFound
	}
	driver, ok := s.driverSnapshot(driverID)
	if !ok {
		return nil, ErrDriverNotFound
	}
	if car.Driver != nil {
		return nil, ErrCarHasDriver
	}
	if s.driverHasCar(driverID) {
		return nil, ErrDriverHasCar
	}

	car.Driver = driver

	cp := *car
	return &cp, nil
}

// Cars returns the whole fleet.
func (s *Store) Cars() []domain.Car {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectCars(func(*domain.Car) bool { return true })
}

// AvailableCars returns cars with no assigned driver.
func (s *Store) AvailableCars() []domain.Car {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectCars(func(c *domain.Car) bool { return c.Driver == nil })
}

// DriversWithoutCar returns drivers that have no car assigned.
func (s *Store) DriversWithoutCar() []domain.Driver {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Driver
	for id, rec := range s.drivers {
		if !s.driverHasCar(id) {
			out = append(out, rec.driver)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) driverHasCar(driverID int64) bool {
	for _, c := range s.cars {
		if c.Driver != nil && c.Driver.ID == driverID {
			return true
		}
	}
	return false
}

func (s *Store) selectCars(keep func(*domain.Car) bool) []domain.Car {
	var out []domain.Car
	for _, c := range s.cars {
		if keep(c) {
			cp := *c
			if c.Driver != nil {
				d := *c.Driver
				cp.Driver = &d
			}
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
