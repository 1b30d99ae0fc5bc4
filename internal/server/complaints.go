package server

import (
	"sort"

	"swiftride/internal/domain"
)

// SendComplaint files a NEW complaint about one of the customer's trips.
func (s *Store) SendComplaint(customerID, tripID int64, message string) (*domain.Complaint, error) {
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
	if message == "" {
		return nil, ErrEmptyComplaintMessage
	}

	s.nextComplaintID++
	complaint := &domain.Complaint{
		ID:         s.nextComplaintID,
		CustomerID: customerID,
		TripID:     tripID,
		Message:    message,
		Status:     domain.ComplaintStatusNew,
		CreatedAt:  s.now().Format(domain.TripDateLayout),
	}
	s.complaints[complaint.ID] = complaint

	cp := *complaint
	return &cp, nil
}

// ComplaintsByStatus returns the complaints in one handling state.
func (s *Store) ComplaintsByStatus(status domain.ComplaintStatus) []domain.Complaint {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Complaint
	for _, c := range s.complaints {
		if c.Status == status {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// OpenComplaint moves a NEW complaint to OPENED.
func (s *Store) OpenComplaint(complaintID int64) (*domain.Complaint, error) {
	return s.advanceComplaint(complaintID, domain.ComplaintStatusOpened, ErrComplaintNotNew)
}

// CloseComplaint moves an OPENED complaint to CLOSED.
func (s *Store) CloseComplaint(complaintID int64) (*domain.Complaint, error) {
	return s.advanceComplaint(complaintID, domain.ComplaintStatusClosed, ErrComplaintNotOpened)
}

func (s *Store) advanceComplaint(complaintID int64, target domain.ComplaintStatus, conflict error) (*domain.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	complaint, ok := s.complaints[complaintID]
	if !ok {
		return nil, ErrComplaintNotFound
	}
	if !complaint.Status.CanTransitionTo(target) {
		return nil, conflict
	}

	complaint.Status = target
	cp := *complaint
	return &cp, nil
}
