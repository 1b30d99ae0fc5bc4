package booking

import (
	"context"
	"sync"

	"swiftride/internal/client"
	"swiftride/internal/domain"
	"swiftride/internal/geocode"
)

// Field names a BookingDraft input field.
type Field string

const (
	FieldPickup      Field = "pickup"
	FieldDestination Field = "destination"
	FieldDate        Field = "date"
)

// Draft is the transient, client-only booking input. It is never persisted;
// it lives from view mount until successful submission or explicit reset.
type Draft struct {
	Pickup       string
	Destination  string
	Date         string // "2006-01-02T15:04", seconds appended at submit
	Payment      domain.PaymentMethod
	IsPremium    bool
	HasChildSeat bool
}

// NewDraft returns an empty draft with the default payment method.
func NewDraft() Draft {
	return Draft{Payment: domain.PaymentMethodCash}
}

// Booker dispatches a normalized booking request to the backend.
type Booker interface {
	BookTrip(ctx context.Context, customerID int64, method domain.PaymentMethod, req client.BookTripRequest) (*domain.Trip, error)
}

// Suggester resolves free-text location queries to address suggestions.
type Suggester interface {
	Search(ctx context.Context, query string) ([]geocode.Suggestion, error)
}

// Builder accumulates booking input, validates it, and hands off to either
// the booking endpoint (CASH) or the payment gate (WALLET, CREDIT_CARD).
// A Builder is safe for concurrent use; suggestion lookups run off the UI
// goroutine and may overlap field edits.
type Builder struct {
	mu          sync.Mutex
	draft       Draft
	booker      Booker
	suggester   Suggester
	gate        *Gate
	suggestions map[Field][]geocode.Suggestion
}

// NewBuilder creates a Builder with an empty draft and a closed gate.
func NewBuilder(booker Booker, suggester Suggester) *Builder {
	return &Builder{
		draft:       NewDraft(),
		booker:      booker,
		suggester:   suggester,
		gate:        newGate(),
		suggestions: make(map[Field][]geocode.Suggestion),
	}
}

// Draft returns a copy of the current draft.
func (b *Builder) Draft() Draft {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.draft
}

// Gate exposes the payment gate for rendering its state.
func (b *Builder) Gate() *Gate {
	return b.gate
}

// UpdateField merges one field value into the draft. Values are accepted
// unconstrained; validation happens at submit time only.
func (b *Builder) UpdateField(field Field, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch field {
	case FieldPickup:
		b.draft.Pickup = value
	case FieldDestination:
		b.draft.Destination = value
	case FieldDate:
		b.draft.Date = value
	}
}

// SetPayment selects the payment method for the draft.
func (b *Builder) SetPayment(method domain.PaymentMethod) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draft.Payment = method
}

// SetAddOns sets the premium-service and child-seat flags.
func (b *Builder) SetAddOns(premium, childSeat bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draft.IsPremium = premium
	b.draft.HasChildSeat = childSeat
}

// Suggest looks up address suggestions for the field's current value.
// Queries under three characters clear the field's suggestion list without
// a lookup. Lookup failures clear the list too; suggestion is a
// convenience, never a blocker. The lock is dropped for the lookup itself
// so overlapping keystrokes never queue behind the geocoder.
func (b *Builder) Suggest(ctx context.Context, field Field) []geocode.Suggestion {
	if field != FieldPickup && field != FieldDestination {
		return nil
	}

	b.mu.Lock()
	query := b.draft.Pickup
	if field == FieldDestination {
		query = b.draft.Destination
	}
	if len(query) < geocode.MinQueryLength {
		delete(b.suggestions, field)
		b.mu.Unlock()
		return nil
	}
	b.mu.Unlock()

	results, err := b.suggester.Search(ctx, query)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		delete(b.suggestions, field)
		return nil
	}
	b.suggestions[field] = results
	return results
}

// Suggestions returns the current suggestion list for a field.
func (b *Builder) Suggestions(field Field) []geocode.Suggestion {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.suggestions[field]
}

// Select overwrites the field with the chosen suggestion and clears the
// suggestion list for that field only.
func (b *Builder) Select(field Field, s geocode.Suggestion) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch field {
	case FieldPickup:
		b.draft.Pickup = s.DisplayName
	case FieldDestination:
		b.draft.Destination = s.DisplayName
	default:
		return
	}
	delete(b.suggestions, field)
}

// Outcome reports what Submit or ConfirmPayment did.
type Outcome struct {
	// Trip is the created trip when a booking call was dispatched.
	Trip *domain.Trip
	// GateOpened is true when submission deferred to the payment gate
	// instead of dispatching; no network call was made.
	GateOpened bool
}

// Submit validates the draft and either dispatches the booking (CASH) or
// opens the payment gate (WALLET, CREDIT_CARD). On dispatch success the
// draft resets to empty defaults; on any failure the draft is preserved
// unchanged so the user loses nothing.
func (b *Builder) Submit(ctx context.Context, customerID int64) (Outcome, error) {
	b.mu.Lock()
	if err := b.validate(); err != nil {
		b.mu.Unlock()
		return Outcome{}, err
	}

	method := b.draft.Payment
	req := b.normalized()

	if method.RequiresCredential() {
		b.gate.open(method, customerID, req)
		b.mu.Unlock()
		return Outcome{GateOpened: true}, nil
	}
	b.mu.Unlock()

	trip, err := b.booker.BookTrip(ctx, customerID, method, req)
	if err != nil {
		return Outcome{}, err
	}

	b.Reset()
	return Outcome{Trip: trip}, nil
}

// ConfirmPayment dispatches the booking deferred by the open gate. Success
// closes the gate, zeroes the credential, and resets the draft; failure
// keeps the gate open with fields intact so the user can retry.
func (b *Builder) ConfirmPayment(ctx context.Context) (Outcome, error) {
	b.mu.Lock()
	deferred, err := b.gate.pending()
	b.mu.Unlock()
	if err != nil {
		return Outcome{}, err
	}

	trip, err := b.booker.BookTrip(ctx, deferred.customerID, deferred.method, deferred.request)
	if err != nil {
		return Outcome{}, err
	}

	b.mu.Lock()
	b.gate.close()
	b.reset()
	b.mu.Unlock()
	return Outcome{Trip: trip}, nil
}

// CancelPayment closes the gate and discards the credential. The draft is
// deliberately kept, payment method included; the user returns to the
// booking form unchanged.
func (b *Builder) CancelPayment() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gate.close()
}

// Reset clears the draft back to empty defaults and drops all suggestions.
func (b *Builder) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reset()
}

func (b *Builder) reset() {
	b.draft = NewDraft()
	b.suggestions = make(map[Field][]geocode.Suggestion)
}

func (b *Builder) validate() error {
	if b.draft.Date == "" {
		return domain.NewValidationError(string(FieldDate), "Please select a date and time")
	}
	if b.draft.Pickup == "" {
		return domain.NewValidationError(string(FieldPickup), "Please enter a pickup location")
	}
	if b.draft.Destination == "" {
		return domain.NewValidationError(string(FieldDestination), "Please enter a destination")
	}
	return nil
}

// normalized produces the request payload, coercing the date-time to the
// backend's fixed precision by appending a zero-seconds component.
func (b *Builder) normalized() client.BookTripRequest {
	return client.BookTripRequest{
		PickupLocation: b.draft.Pickup,
		Destination:    b.draft.Destination,
		TripDate:       b.draft.Date + ":00",
		IsPremium:      b.draft.IsPremium,
		HasChildSeat:   b.draft.HasChildSeat,
	}
}
