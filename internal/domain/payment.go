package domain

// PaymentMethod represents the payment method selected for a trip.
type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "CASH"
	PaymentMethodWallet     PaymentMethod = "WALLET"
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
)

// Valid reports whether the method is one the backend accepts.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodWallet, PaymentMethodCreditCard:
		return true
	}
	return false
}

// RequiresCredential reports whether booking with this method must collect
// credentials before the booking request is dispatched.
func (m PaymentMethod) RequiresCredential() bool {
	return m == PaymentMethodWallet || m == PaymentMethodCreditCard
}
