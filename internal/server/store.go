package server

import (
	"sync"
	"time"

	"swiftride/internal/domain"
)

// Store is the dev backend's in-memory state. It exists for local
// development and hermetic tests; nothing survives a restart, matching the
// product's rule that the authoritative state is always refetched anyway.
type Store struct {
	mu sync.Mutex

	customers  map[int64]*domain.Customer
	drivers    map[int64]*driverRecord
	employees  map[int64]*employeeRecord
	trips      map[int64]*domain.Trip
	cars       map[int64]*domain.Car
	complaints map[int64]*domain.Complaint

	passwords map[string]string // email -> password, all roles

	nextCustomerID  int64
	nextDriverID    int64
	nextEmployeeID  int64
	nextTripID      int64
	nextCarID       int64
	nextComplaintID int64

	now func() time.Time
}

// driverRecord carries server-side rating bookkeeping next to the profile.
type driverRecord struct {
	driver      domain.Driver
	ratingSum   int
	ratingCount int
}

type employeeRecord struct {
	employee domain.Employee
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		customers:  make(map[int64]*domain.Customer),
		drivers:    make(map[int64]*driverRecord),
		employees:  make(map[int64]*employeeRecord),
		trips:      make(map[int64]*domain.Trip),
		cars:       make(map[int64]*domain.Car),
		complaints: make(map[int64]*domain.Complaint),
		passwords:  make(map[string]string),
		now:        time.Now,
	}
}

// Seed loads a small demo data set: two customers, two drivers with cars,
// one carless driver, and one employee. All passwords are "password".
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers := []domain.Customer{
		{FirstName: "Salma", LastName: "Hassan", Email: "salma@example.com", Phone: "01001234567"},
		{FirstName: "Omar", LastName: "Farouk", Email: "omar@example.com", Phone: "01007654321"},
	}
	for i := range customers {
		s.nextCustomerID++
		customers[i].ID = s.nextCustomerID
		s.customers[customers[i].ID] = &customers[i]
		s.passwords[customers[i].Email] = "password"
	}

	drivers := []domain.Driver{
		{FirstName: "Karim", LastName: "Adel", Email: "karim@swiftride.com", LicenseNumber: "DRV-1001", Rating: 5, Available: true},
		{FirstName: "Nour", LastName: "Sami", Email: "nour@swiftride.com", LicenseNumber: "DRV-1002", Rating: 5, Available: true},
		{FirstName: "Hany", LastName: "Mostafa", Email: "hany@swiftride.com", LicenseNumber: "DRV-1003", Rating: 5, Available: true},
	}
	for i := range drivers {
		s.nextDriverID++
		drivers[i].ID = s.nextDriverID
		s.drivers[drivers[i].ID] = &driverRecord{driver: drivers[i]}
		s.passwords[drivers[i].Email] = "password"
	}

	cars := []domain.Car{
		{Model: "Toyota Corolla", LicensePlate: "CAI 1234", Color: "White"},
		{Model: "Hyundai Elantra", LicensePlate: "CAI 5678", Color: "Black"},
	}
	for i := range cars {
		s.nextCarID++
		cars[i].ID = s.nextCarID
		// Pair the first two drivers with the two cars; the third stays carless.
		d := s.drivers[int64(i+1)].driver
		cars[i].Driver = &d
		s.cars[cars[i].ID] = &cars[i]
	}

	s.nextEmployeeID++
	employee := domain.Employee{ID: s.nextEmployeeID, FirstName: "Mona", LastName: "Khalil", Email: "mona@swiftride.com"}
	s.employees[employee.ID] = &employeeRecord{employee: employee}
	s.passwords[employee.Email] = "password"
}

// copyTrip returns a detached copy with fresh actor snapshots, so callers
// can never mutate stored state through a response.
func (s *Store) copyTrip(t *domain.Trip) *domain.Trip {
	cp := *t
	if t.Customer != nil {
		c := *t.Customer
		cp.Customer = &c
	}
	if t.Driver != nil {
		d := *t.Driver
		cp.Driver = &d
	}
	return &cp
}

func (s *Store) driverSnapshot(id int64) (*domain.Driver, bool) {
	rec, ok := s.drivers[id]
	if !ok {
		return nil, false
	}
	d := rec.driver
	return &d, true
}
