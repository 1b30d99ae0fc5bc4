package domain

// Car is a fleet vehicle. A car has at most one driver and a driver has at
// most one car; the assignment is the only invariant the record carries.
type Car struct {
	ID           int64   `json:"id"`
	Model        string  `json:"model"`
	LicensePlate string  `json:"licensePlate"`
	Color        string  `json:"color"`
	Driver       *Driver `json:"driver,omitempty"`
}

// Assigned reports whether the car currently has a driver.
func (c *Car) Assigned() bool {
	return c.Driver != nil
}
