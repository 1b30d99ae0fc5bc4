package dispatch

import "swiftride/internal/domain"

// Action is the tagged variant of a user-initiated lifecycle request. Each
// dispatcher invocation consumes exactly one Action against exactly one
// trip or complaint.
type Action interface {
	isAction()
}

// Accept is a driver accepting a requested trip.
type Accept struct {
	DriverID int64
	TripID   int64
}

// Start is a driver starting an accepted trip.
type Start struct {
	DriverID int64
	TripID   int64
}

// End is a driver ending an ongoing trip.
type End struct {
	DriverID int64
	TripID   int64
}

// CancelByCustomer is a customer cancelling their own trip.
type CancelByCustomer struct {
	CustomerID int64
	TripID     int64
}

// CancelByDriver is a driver cancelling a trip they had accepted.
type CancelByDriver struct {
	DriverID int64
	TripID   int64
}

// Rate is a customer rating the driver of a completed trip.
type Rate struct {
	DriverID int64
	TripID   int64
	Stars    int
}

// FileComplaint is a customer reporting a trip.
type FileComplaint struct {
	CustomerID int64
	TripID     int64
	Message    string
}

// SetComplaintStatus is an employee advancing a complaint's handling state.
type SetComplaintStatus struct {
	ComplaintID int64
	Current     domain.ComplaintStatus
	Target      domain.ComplaintStatus
}

func (Accept) isAction()             {}
func (Start) isAction()              {}
func (End) isAction()                {}
func (CancelByCustomer) isAction()   {}
func (CancelByDriver) isAction()     {}
func (Rate) isAction()               {}
func (FileComplaint) isAction()      {}
func (SetComplaintStatus) isAction() {}
