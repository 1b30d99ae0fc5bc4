package domain

import "time"

// TripStatus represents the current status of a trip.
type TripStatus string

const (
	TripStatusRequested TripStatus = "REQUESTED"
	TripStatusAccepted  TripStatus = "ACCEPTED"
	TripStatusOngoing   TripStatus = "ONGOING"
	TripStatusCompleted TripStatus = "COMPLETED"
	TripStatusCancelled TripStatus = "CANCELLED"
)

// CanTransitionTo reports whether the status machine allows moving to next.
// Transitions are monotonic along REQUESTED → ACCEPTED → ONGOING → COMPLETED;
// CANCELLED is reachable from REQUESTED or ACCEPTED only.
func (s TripStatus) CanTransitionTo(next TripStatus) bool {
	switch s {
	case TripStatusRequested:
		return next == TripStatusAccepted || next == TripStatusCancelled
	case TripStatusAccepted:
		return next == TripStatusOngoing || next == TripStatusCancelled
	case TripStatusOngoing:
		return next == TripStatusCompleted
	default:
		return false
	}
}

// Active reports whether the trip still belongs on an "active" tab.
func (s TripStatus) Active() bool {
	return s == TripStatusRequested || s == TripStatusAccepted || s == TripStatusOngoing
}

// Terminal reports whether the trip reached a final status.
func (s TripStatus) Terminal() bool {
	return s == TripStatusCompleted || s == TripStatusCancelled
}

// TripDateLayout is the backend's local date-time format, without a zone.
const TripDateLayout = "2006-01-02T15:04:05"

// Trip represents one ride request and its fulfillment record. Trips are
// server-owned: the client never mutates one locally, it refetches instead.
type Trip struct {
	ID               int64      `json:"id"`
	PickupLocation   string     `json:"pickupLocation"`
	Destination      string     `json:"destination"`
	TripDate         string     `json:"tripDate"`
	CreatedAt        string     `json:"createdAt,omitempty"`
	Status           TripStatus `json:"status"`
	Fare             *float64   `json:"fare,omitempty"`
	IsPremium        bool       `json:"isPremium"`
	HasChildSeat     bool       `json:"hasChildSeat"`
	Rated            bool       `json:"rated"`
	EstimatedMinutes int        `json:"estimatedMinutes,omitempty"`
	Customer         *Customer  `json:"customer,omitempty"`
	Driver           *Driver    `json:"driver,omitempty"`
}

// ScheduledAt parses the trip's scheduled date-time.
func (t *Trip) ScheduledAt() (time.Time, error) {
	return time.Parse(TripDateLayout, t.TripDate)
}
