package booking

import (
	"errors"

	"swiftride/internal/client"
	"swiftride/internal/domain"
)

// ErrGateClosed is returned when a payment confirmation is attempted while
// no booking is deferred.
var ErrGateClosed = errors.New("payment gate is not open")

// GateState is the two-state payment gate: CLOSED or OPEN.
type GateState string

const (
	GateClosed GateState = "CLOSED"
	GateOpen   GateState = "OPEN"
)

// CredentialField names one payment credential input.
type CredentialField string

const (
	CredCardNumber CredentialField = "cardNumber"
	CredExpiry     CredentialField = "expiry"
	CredCVV        CredentialField = "cvv"
	CredName       CredentialField = "name"
	CredWalletID   CredentialField = "walletId"
	CredPIN        CredentialField = "pin"
)

// Credential holds the method-specific fields collected while the gate is
// open. It exists only for the single deferred submission and is zeroed as
// soon as the booking call resolves or the gate is cancelled.
type Credential struct {
	CardNumber string
	Expiry     string
	CVV        string
	Name       string
	WalletID   string
	PIN        string
}

func (c *Credential) zero() {
	*c = Credential{}
}

// deferredBooking is the booking request held back while credentials are
// being collected.
type deferredBooking struct {
	customerID int64
	method     domain.PaymentMethod
	request    client.BookTripRequest
}

// Gate defers a booking request behind a credential-collection step. It
// never talks to a payment processor; the only network effect it guards is
// the trip-booking call itself.
type Gate struct {
	state      GateState
	credential Credential
	deferred   *deferredBooking
}

func newGate() *Gate {
	return &Gate{state: GateClosed}
}

// State returns the gate state.
func (g *Gate) State() GateState {
	return g.state
}

// Method returns the payment method the gate was opened for, so the right
// credential form can be rendered. Empty while closed.
func (g *Gate) Method() domain.PaymentMethod {
	if g.deferred == nil {
		return ""
	}
	return g.deferred.method
}

// Credential returns a copy of the collected fields for rendering.
func (g *Gate) Credential() Credential {
	return g.credential
}

// SetField records one credential input, applying the cosmetic formatter
// for that field. No validation beyond formatting is performed.
func (g *Gate) SetField(field CredentialField, value string) {
	switch field {
	case CredCardNumber:
		g.credential.CardNumber = FormatCardNumber(value)
	case CredExpiry:
		g.credential.Expiry = FormatExpiry(value)
	case CredCVV:
		g.credential.CVV = DigitsOnly(value)
	case CredName:
		g.credential.Name = value
	case CredWalletID:
		g.credential.WalletID = value
	case CredPIN:
		g.credential.PIN = DigitsOnly(value)
	}
}

func (g *Gate) open(method domain.PaymentMethod, customerID int64, req client.BookTripRequest) {
	g.state = GateOpen
	g.credential.zero()
	g.deferred = &deferredBooking{
		customerID: customerID,
		method:     method,
		request:    req,
	}
}

func (g *Gate) pending() (*deferredBooking, error) {
	if g.state != GateOpen || g.deferred == nil {
		return nil, ErrGateClosed
	}
	return g.deferred, nil
}

func (g *Gate) close() {
	g.state = GateClosed
	g.credential.zero()
	g.deferred = nil
}
