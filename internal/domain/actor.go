package domain

// Role identifies the kind of authenticated actor performing an action.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleDriver   Role = "DRIVER"
	RoleEmployee Role = "EMPLOYEE"
)

// Customer is a rider account.
type Customer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

// Driver is a driver account. Rating is the running average of submitted
// star ratings.
type Driver struct {
	ID            int64   `json:"id"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone,omitempty"`
	LicenseNumber string  `json:"licenseNumber,omitempty"`
	Rating        float64 `json:"rating"`
	Available     bool    `json:"available"`
}

// Employee is a back-office account operating the employee portal.
type Employee struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Actor is the authenticated identity a portal session carries. The core
// components take it as an explicit parameter, never from ambient state.
type Actor struct {
	ID   int64
	Role Role
	Name string
}
