package domain

// ComplaintStatus represents the handling state of a complaint.
type ComplaintStatus string

const (
	ComplaintStatusNew    ComplaintStatus = "NEW"
	ComplaintStatusOpened ComplaintStatus = "OPENED"
	ComplaintStatusClosed ComplaintStatus = "CLOSED"
)

// CanTransitionTo reports whether the forward transition to next is legal.
// Only NEW → OPENED and OPENED → CLOSED exist; nothing moves backwards.
func (s ComplaintStatus) CanTransitionTo(next ComplaintStatus) bool {
	switch s {
	case ComplaintStatusNew:
		return next == ComplaintStatusOpened
	case ComplaintStatusOpened:
		return next == ComplaintStatusClosed
	default:
		return false
	}
}

// Complaint is a customer-authored report tied to a trip. The lifecycle is
// fully server-owned; clients create them and request status transitions.
type Complaint struct {
	ID         int64           `json:"id"`
	CustomerID int64           `json:"customerId"`
	TripID     int64           `json:"tripId"`
	Message    string          `json:"message"`
	Status     ComplaintStatus `json:"status"`
	CreatedAt  string          `json:"createdAt,omitempty"`
}
