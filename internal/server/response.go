package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps store errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, ErrCustomerNotFound),
		errors.Is(err, ErrDriverNotFound),
		errors.Is(err, ErrEmployeeNotFound),
		errors.Is(err, ErrTripNotFound),
		errors.Is(err, ErrCarNotFound),
		errors.Is(err, ErrComplaintNotFound),
		errors.Is(err, ErrNoRequestedTrips):
		return http.StatusNotFound

	// Authentication
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Validation errors - Bad Request
	case errors.Is(err, ErrInvalidPaymentMethod),
		errors.Is(err, ErrInvalidPickup),
		errors.Is(err, ErrInvalidDestination),
		errors.Is(err, ErrInvalidTripDate),
		errors.Is(err, ErrInvalidRating),
		errors.Is(err, ErrEmptyComplaintMessage):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, ErrTripNotAvailable),
		errors.Is(err, ErrTripNotAccepted),
		errors.Is(err, ErrTripNotOngoing),
		errors.Is(err, ErrTripNotCancellable),
		errors.Is(err, ErrTripNotCompleted),
		errors.Is(err, ErrDriverAlreadyRated),
		errors.Is(err, ErrDriverHasNoCar),
		errors.Is(err, ErrCarHasDriver),
		errors.Is(err, ErrDriverHasCar),
		errors.Is(err, ErrLicensePlateExists),
		errors.Is(err, ErrEmailExists),
		errors.Is(err, ErrComplaintNotNew),
		errors.Is(err, ErrComplaintNotOpened):
		return http.StatusConflict

	// Ownership errors
	case errors.Is(err, ErrDriverNotAssigned),
		errors.Is(err, ErrNotTripCustomer):
		return http.StatusForbidden

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
