package server

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	Handler     *Handler
	Cache       ResponseCache
	NewRelicApp *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(IdempotencyMiddleware(deps.Cache))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	h := deps.Handler

	api := router.Group("/api")
	{
		customers := api.Group("/customers")
		{
			customers.POST("/login", h.CustomerLogin)
			customers.POST("/trip/send-email", h.SendAcceptanceEmail)
		}

		drivers := api.Group("/drivers")
		{
			drivers.POST("/login", h.DriverLogin)
			drivers.POST("/register", h.RegisterDriver)
			drivers.GET("/without-car", h.DriversWithoutCar)
			drivers.POST("/rate/:driverId", h.RateDriver)
		}

		employees := api.Group("/employees")
		{
			employees.POST("/login", h.EmployeeLogin)
		}

		trips := api.Group("/trips")
		{
			trips.POST("/book", h.BookTrip)
			trips.GET("/requested", h.RequestedTrips)
			trips.GET("/customer/trips/:customerId", h.CustomerTrips)
			trips.GET("/customer/previous-trips", h.CustomerPreviousTrips)
			trips.GET("/driver/trips/active/:driverId", h.DriverActiveTrips)
			trips.POST("/accept/:tripId", h.AcceptTrip)
			trips.POST("/start/:tripId", h.StartTrip)
			trips.POST("/end/:tripId", h.EndTrip)
			trips.POST("/cancel/customer/:tripId", h.CancelByCustomer)
			trips.POST("/cancel/driver/:tripId", h.CancelByDriver)
		}

		cars := api.Group("/cars")
		{
			cars.GET("", h.Cars)
			cars.GET("/available", h.AvailableCars)
			cars.POST("/register", h.RegisterCar)
			cars.POST("/assign", h.AssignCar)
			cars.DELETE("/:carId", h.DeleteCar)
		}

		complaints := api.Group("/complaints")
		{
			complaints.GET("/status/:status", h.ComplaintsByStatus)
			complaints.POST("/send/complaint", h.SendComplaint)
			complaints.POST("/open/complaint/:id", h.OpenComplaint)
			complaints.POST("/closed/complaint/:id", h.CloseComplaint)
		}
	}

	return router
}
