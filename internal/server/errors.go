package server

import "errors"

var (
	// ErrCustomerNotFound is returned when the customer does not exist.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrDriverNotFound is returned when the driver does not exist.
	ErrDriverNotFound = errors.New("driver not found")

	// ErrEmployeeNotFound is returned when the employee does not exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrTripNotFound is returned when the trip does not exist.
	ErrTripNotFound = errors.New("trip not found")

	// ErrCarNotFound is returned when the car does not exist.
	ErrCarNotFound = errors.New("car not found")

	// ErrComplaintNotFound is returned when the complaint does not exist.
	ErrComplaintNotFound = errors.New("complaint not found")

	// ErrNoRequestedTrips is returned when no trips are awaiting a driver.
	ErrNoRequestedTrips = errors.New("no requested trips found")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidPaymentMethod is returned for an unsupported payment method.
	ErrInvalidPaymentMethod = errors.New("payment method is not supported")

	// ErrInvalidPickup is returned when the pickup location is empty.
	ErrInvalidPickup = errors.New("pickup location is required")

	// ErrInvalidDestination is returned when the destination is empty.
	ErrInvalidDestination = errors.New("destination is required")

	// ErrInvalidTripDate is returned when the trip date is missing,
	// malformed, or not in the future.
	ErrInvalidTripDate = errors.New("the trip date is not valid")

	// ErrInvalidRating is returned when the star rating is outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrEmptyComplaintMessage is returned for a complaint with no message.
	ErrEmptyComplaintMessage = errors.New("complaint message is required")

	// ErrTripNotAvailable is returned when accepting a trip that is no
	// longer REQUESTED. First accept wins.
	ErrTripNotAvailable = errors.New("this trip is not available for acceptance")

	// ErrTripNotAccepted is returned when starting a trip not in ACCEPTED.
	ErrTripNotAccepted = errors.New("trip has not been accepted")

	// ErrTripNotOngoing is returned when ending a trip not in ONGOING.
	ErrTripNotOngoing = errors.New("trip is not ongoing")

	// ErrTripNotCancellable is returned when cancelling a trip that moved
	// past ACCEPTED or already terminated.
	ErrTripNotCancellable = errors.New("trip cannot be cancelled in its current status")

	// ErrTripNotCompleted is returned when rating a trip before completion.
	ErrTripNotCompleted = errors.New("trip is not completed yet")

	// ErrDriverNotAssigned is returned when a driver acts on a trip that
	// is not theirs.
	ErrDriverNotAssigned = errors.New("driver is not assigned to this trip")

	// ErrNotTripCustomer is returned when a customer acts on a trip they
	// did not book.
	ErrNotTripCustomer = errors.New("trip does not belong to this customer")

	// ErrDriverAlreadyRated is returned on a second rating for one trip.
	ErrDriverAlreadyRated = errors.New("driver is already rated for this trip")

	// ErrDriverHasNoCar is returned when a carless driver accepts a trip.
	ErrDriverHasNoCar = errors.New("a car has not been assigned to you yet")

	// ErrCarHasDriver is returned when assigning an already assigned car.
	ErrCarHasDriver = errors.New("car already has a driver")

	// ErrDriverHasCar is returned when assigning a car to a driver who has one.
	ErrDriverHasCar = errors.New("driver already has a car")

	// ErrLicensePlateExists is returned for a duplicate license plate.
	ErrLicensePlateExists = errors.New("license plate already exists")

	// ErrEmailExists is returned for a duplicate account email.
	ErrEmailExists = errors.New("email already exists")

	// ErrComplaintNotNew is returned when opening a non-NEW complaint.
	ErrComplaintNotNew = errors.New("complaint is not in NEW status")

	// ErrComplaintNotOpened is returned when closing a non-OPENED complaint.
	ErrComplaintNotOpened = errors.New("complaint is not in OPENED status")
)
