package client

import (
	"context"
	"net/http"
	"net/url"

	"swiftride/internal/domain"
)

// ComplaintsByStatus lists complaints in one handling state.
// GET /complaints/status/{status}
func (c *Client) ComplaintsByStatus(ctx context.Context, status domain.ComplaintStatus) ([]domain.Complaint, error) {
	var complaints []domain.Complaint
	err := c.do(ctx, http.MethodGet, "/complaints/status/"+string(status), nil, nil, &complaints)
	return complaints, err
}

// SendComplaint files a NEW complaint about a trip.
// POST /complaints/send/complaint?customerId&tripId
func (c *Client) SendComplaint(ctx context.Context, customerID, tripID int64, message string) (*domain.Complaint, error) {
	query := url.Values{
		"customerId": {formatID(customerID)},
		"tripId":     {formatID(tripID)},
	}
	body := map[string]string{"message": message}
	var complaint domain.Complaint
	if err := c.do(ctx, http.MethodPost, "/complaints/send/complaint", query, body, &complaint); err != nil {
		return nil, err
	}
	return &complaint, nil
}

// OpenComplaint moves a NEW complaint to OPENED. Employee portal only.
// POST /complaints/open/complaint/{id}
func (c *Client) OpenComplaint(ctx context.Context, complaintID int64) error {
	return c.do(ctx, http.MethodPost, "/complaints/open/complaint/"+formatID(complaintID), nil, nil, nil)
}

// CloseComplaint moves an OPENED complaint to CLOSED. Employee portal only.
// POST /complaints/closed/complaint/{id}
func (c *Client) CloseComplaint(ctx context.Context, complaintID int64) error {
	return c.do(ctx, http.MethodPost, "/complaints/closed/complaint/"+formatID(complaintID), nil, nil, nil)
}
