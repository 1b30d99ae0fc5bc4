package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"swiftride/internal/domain"
)

// Handler exposes the store over the SwiftRide REST paths.
type Handler struct {
	store *Store
}

// NewHandler creates a Handler over the store.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CustomerLogin handles POST /api/customers/login
func (h *Handler) CustomerLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	customer, err := h.store.CustomerLogin(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, customer)
}

// DriverLogin handles POST /api/drivers/login
func (h *Handler) DriverLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	driver, err := h.store.DriverLogin(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, driver)
}

// EmployeeLogin handles POST /api/employees/login
func (h *Handler) EmployeeLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	employee, err := h.store.EmployeeLogin(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, employee)
}

type bookTripBody struct {
	PickupLocation string `json:"pickupLocation"`
	Destination    string `json:"destination"`
	TripDate       string `json:"tripDate"`
	IsPremium      bool   `json:"isPremium"`
	HasChildSeat   bool   `json:"hasChildSeat"`
}

// BookTrip handles POST /api/trips/book?customerId&paymentMethod
func (h *Handler) BookTrip(c *gin.Context) {
	customerID, ok := queryID(c, "customerId")
	if !ok {
		return
	}
	var body bookTripBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.store.BookTrip(BookTripInput{
		CustomerID:     customerID,
		PaymentMethod:  domain.PaymentMethod(c.Query("paymentMethod")),
		PickupLocation: body.PickupLocation,
		Destination:    body.Destination,
		TripDate:       body.TripDate,
		IsPremium:      body.IsPremium,
		HasChildSeat:   body.HasChildSeat,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, trip)
}

// CustomerTrips handles GET /api/trips/customer/trips/:customerId
func (h *Handler) CustomerTrips(c *gin.Context) {
	customerID, ok := paramID(c, "customerId")
	if !ok {
		return
	}
	trips, err := h.store.CustomerTrips(customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, trips)
}

// CustomerPreviousTrips handles GET /api/trips/customer/previous-trips?customerId
func (h *Handler) CustomerPreviousTrips(c *gin.Context) {
	customerID, ok := queryID(c, "customerId")
	if !ok {
		return
	}
	trips, err := h.store.CustomerPreviousTrips(customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, trips)
}

// RequestedTrips handles GET /api/trips/requested
func (h *Handler) RequestedTrips(c *gin.Context) {
	trips, err := h.store.RequestedTrips()
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, trips)
}

// DriverActiveTrips handles GET /api/trips/driver/trips/active/:driverId
func (h *Handler) DriverActiveTrips(c *gin.Context) {
	driverID, ok := paramID(c, "driverId")
	if !ok {
		return
	}
	trips, err := h.store.DriverActiveTrips(driverID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, trips)
}

// AcceptTrip handles POST /api/trips/accept/:tripId?driverId
func (h *Handler) AcceptTrip(c *gin.Context) {
	h.tripAction(c, h.store.AcceptTrip)
}

// StartTrip handles POST /api/trips/start/:tripId?driverId
func (h *Handler) StartTrip(c *gin.Context) {
	h.tripAction(c, h.store.StartTrip)
}

// EndTrip handles POST /api/trips/end/:tripId?driverId
func (h *Handler) EndTrip(c *gin.Context) {
	h.tripAction(c, h.store.EndTrip)
}

func (h *Handler) tripAction(c *gin.Context, action func(driverID, tripID int64) (*domain.Trip, error)) {
	tripID, ok := paramID(c, "tripId")
	if !ok {
		return
	}
	driverID, ok := queryID(c, "driverId")
	if !ok {
		return
	}
	trip, err := action(driverID, tripID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, trip)
}

// CancelByCustomer handles POST /api/trips/cancel/customer/:tripId?customerId
func (h *Handler) CancelByCustomer(c *gin.Context) {
	tripID, ok := paramID(c, "tripId")
	if !ok {
		return
	}
	customerID, ok := queryID(c, "customerId")
	if !ok {
		return
	}
	trip, err := h.store.CancelByCustomer(customerID, tripID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, trip)
}

// CancelByDriver handles POST /api/trips/cancel/driver/:tripId?driverId
func (h *Handler) CancelByDriver(c *gin.Context) {
	tripID, ok := paramID(c, "tripId")
	if !ok {
		return
	}
	driverID, ok := queryID(c, "driverId")
	if !ok {
		return
	}
	trip, err := h.store.CancelByDriver(driverID, tripID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, trip)
}

// RateDriver handles POST /api/drivers/rate/:driverId?rating&tripId
func (h *Handler) RateDriver(c *gin.Context) {
	driverID, ok := paramID(c, "driverId")
	if !ok {
		return
	}
	tripID, ok := queryID(c, "tripId")
	if !ok {
		return
	}
	stars, err := strconv.Atoi(c.Query("rating"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid rating"})
		return
	}
	if err := h.store.RateDriver(driverID, tripID, stars); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"status": "rated"})
}

// SendAcceptanceEmail handles POST /api/customers/trip/send-email?customerId&driverId&tripId
// Delivery is mocked: the notification is logged, as a real deployment
// would hand off to an email provider here.
func (h *Handler) SendAcceptanceEmail(c *gin.Context) {
	tripID, ok := queryID(c, "tripId")
	if !ok {
		return
	}
	customer, driver, err := h.store.TripParties(tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Printf("[NOTIFICATION] Type=TRIP_ACCEPTED, Recipient=%s, Message=Driver %s %s accepted your trip %d",
		customer.Email, driver.FirstName, driver.LastName, tripID)
	respondJSON(c, http.StatusOK, gin.H{"status": "sent"})
}

type registerDriverBody struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"licenseNumber"`
}

// RegisterDriver handles POST /api/drivers/register
func (h *Handler) RegisterDriver(c *gin.Context) {
	var body registerDriverBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	driver, err := h.store.RegisterDriver(RegisterDriverInput{
		FirstName:     body.FirstName,
		LastName:      body.LastName,
		Email:         body.Email,
		Password:      body.Password,
		Phone:         body.Phone,
		LicenseNumber: body.LicenseNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, driver)
}

// DriversWithoutCar handles GET /api/drivers/without-car
func (h *Handler) DriversWithoutCar(c *gin.Context) {
	respondJSON(c, http.StatusOK, h.store.DriversWithoutCar())
}

type registerCarBody struct {
	Model        string `json:"model"`
	LicensePlate string `json:"licensePlate"`
	Color        string `json:"color"`
}

// RegisterCar handles POST /api/cars/register
func (h *Handler) RegisterCar(c *gin.Context) {
	var body registerCarBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	car, err := h.store.RegisterCar(body.Model, body.LicensePlate, body.Color)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, car)
}

// Cars handles GET /api/cars
func (h *Handler) Cars(c *gin.Context) {
	respondJSON(c, http.StatusOK, h.store.Cars())
}

// AvailableCars handles GET /api/cars/available
func (h *Handler) AvailableCars(c *gin.Context) {
	respondJSON(c, http.StatusOK, h.store.AvailableCars())
}

// AssignCar handles POST /api/cars/assign?carId&driverId
func (h *Handler) AssignCar(c *gin.Context) {
	carID, ok := queryID(c, "carId")
	if !ok {
		return
	}
	driverID, ok := queryID(c, "driverId")
	if !ok {
		return
	}
	car, err := h.store.AssignCar(carID, driverID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, car)
}

// DeleteCar handles DELETE /api/cars/:carId
func (h *Handler) DeleteCar(c *gin.Context) {
	carID, ok := paramID(c, "carId")
	if !ok {
		return
	}
	if err := h.store.DeleteCar(carID); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"status": "deleted"})
}

type complaintBody struct {
	Message string `json:"message"`
}

// SendComplaint handles POST /api/complaints/send/complaint?customerId&tripId
func (h *Handler) SendComplaint(c *gin.Context) {
	customerID, ok := queryID(c, "customerId")
	if !ok {
		return
	}
	tripID, ok := queryID(c, "tripId")
	if !ok {
		return
	}
	var body complaintBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	complaint, err := h.store.SendComplaint(customerID, tripID, body.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, complaint)
}

// ComplaintsByStatus handles GET /api/complaints/status/:status
func (h *Handler) ComplaintsByStatus(c *gin.Context) {
	status := domain.ComplaintStatus(c.Param("status"))
	switch status {
	case domain.ComplaintStatusNew, domain.ComplaintStatusOpened, domain.ComplaintStatusClosed:
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid complaint status"})
		return
	}
	respondJSON(c, http.StatusOK, h.store.ComplaintsByStatus(status))
}

// OpenComplaint handles POST /api/complaints/open/complaint/:id
func (h *Handler) OpenComplaint(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	complaint, err := h.store.OpenComplaint(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, complaint)
}

// CloseComplaint handles POST /api/complaints/closed/complaint/:id
func (h *Handler) CloseComplaint(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	complaint, err := h.store.CloseComplaint(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, complaint)
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
		return 0, false
	}
	return id, true
}

func queryID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
		return 0, false
	}
	return id, true
}
