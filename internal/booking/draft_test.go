package booking

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"swiftride/internal/client"
	"swiftride/internal/domain"
	"swiftride/internal/geocode"
)

// mockBooker is a mock implementation of Booker.
type mockBooker struct {
	BookCallCount int32
	BookError     error

	lastCustomerID int64
	lastMethod     domain.PaymentMethod
	lastRequest    client.BookTripRequest

	nextTripID int64
}

func (m *mockBooker) BookTrip(ctx context.Context, customerID int64, method domain.PaymentMethod, req client.BookTripRequest) (*domain.Trip, error) {
	atomic.AddInt32(&m.BookCallCount, 1)
	if m.BookError != nil {
		return nil, m.BookError
	}
	m.lastCustomerID = customerID
	m.lastMethod = method
	m.lastRequest = req
	m.nextTripID++
	return &domain.Trip{
		ID:             m.nextTripID,
		PickupLocation: req.PickupLocation,
		Destination:    req.Destination,
		TripDate:       req.TripDate,
		Status:         domain.TripStatusRequested,
	}, nil
}

// mockSuggester is a mock implementation of Suggester.
type mockSuggester struct {
	SearchCallCount int32
	SearchError     error
	SearchDelay     time.Duration
	Results         []geocode.Suggestion
}

func (m *mockSuggester) Search(ctx context.Context, query string) ([]geocode.Suggestion, error) {
	atomic.AddInt32(&m.SearchCallCount, 1)
	if m.SearchDelay > 0 {
		time.Sleep(m.SearchDelay)
	}
	if m.SearchError != nil {
		return nil, m.SearchError
	}
	return m.Results, nil
}

func filledBuilder(booker Booker, suggester Suggester) *Builder {
	b := NewBuilder(booker, suggester)
	b.UpdateField(FieldPickup, "Tahrir Square")
	b.UpdateField(FieldDestination, "Cairo Airport")
	b.UpdateField(FieldDate, "2026-09-01T10:30")
	return b
}

func TestSubmit_ValidationOrder(t *testing.T) {
	t.Parallel()

	booker := &mockBooker{}
	b := NewBuilder(booker, &mockSuggester{})

	// Date is checked first, then pickup, then destination.
	cases := []struct {
		setup  func()
		reason string
	}{
		{func() {}, "Please select a date and time"},
		{func() { b.UpdateField(FieldDate, "2026-09-01T10:30") }, "Please enter a pickup location"},
		{func() { b.UpdateField(FieldPickup, "Tahrir Square") }, "Please enter a destination"},
	}
	for _, tc := range cases {
		tc.setup()
		_, err := b.Submit(context.Background(), 1)
		var vErr *domain.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if vErr.Reason != tc.reason {
			t.Errorf("expected reason %q, got %q", tc.reason, vErr.Reason)
		}
	}

	if booker.BookCallCount != 0 {
		t.Errorf("expected no booking calls on validation failure, got %d", booker.BookCallCount)
	}
}

func TestSubmit_CashBooksImmediatelyAndResets(t *testing.T) {
	t.Parallel()

	booker := &mockBooker{}
	b := filledBuilder(booker, &mockSuggester{})
	b.SetPayment(domain.PaymentMethodCash)
	b.SetAddOns(true, false)

	outcome, err := b.Submit(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.GateOpened {
		t.Error("cash booking must not open the payment gate")
	}
	if outcome.Trip == nil {
		t.Fatal("expected a booked trip")
	}

	if booker.lastCustomerID != 42 {
		t.Errorf("expected customer 42, got %d", booker.lastCustomerID)
	}
	if booker.lastMethod != domain.PaymentMethodCash {
		t.Errorf("expected CASH, got %s", booker.lastMethod)
	}
	// Seconds are appended at submit time.
	if booker.lastRequest.TripDate != "2026-09-01T10:30:00" {
		t.Errorf("expected normalized date, got %q", booker.lastRequest.TripDate)
	}
	if !booker.lastRequest.IsPremium || booker.lastRequest.HasChildSeat {
		t.Error("add-on flags not carried into the request")
	}

	// Success resets the draft to empty defaults.
	draft := b.Draft()
	if draft.Pickup != "" || draft.Destination != "" || draft.Date != "" {
		t.Errorf("draft not reset after booking: %+v", draft)
	}
	if draft.Payment != domain.PaymentMethodCash {
		t.Errorf("reset draft should default to CASH, got %s", draft.Payment)
	}
}

func TestSubmit_FailureKeepsDraft(t *testing.T) {
	t.Parallel()

	booker := &mockBooker{BookError: errors.New("boom")}
	b := filledBuilder(booker, &mockSuggester{})

	if _, err := b.Submit(context.Background(), 1); err == nil {
		t.Fatal("expected error")
	}

	draft := b.Draft()
	if draft.Pickup != "Tahrir Square" || draft.Destination != "Cairo Airport" {
		t.Errorf("draft must survive a failed submit: %+v", draft)
	}
}

func TestSubmit_CardDefersToGate(t *testing.T) {
	t.Parallel()

	booker := &mockBooker{}
	b := filledBuilder(booker, &mockSuggester{})
	b.SetPayment(domain.PaymentMethodCreditCard)

	outcome, err := b.Submit(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.GateOpened {
		t.Fatal("expected the gate to open")
	}
	if booker.BookCallCount != 0 {
		t.Errorf("deferred submit must not call the backend, got %d calls", booker.BookCallCount)
	}
	if b.Gate().State() != GateOpen {
		t.Errorf("expected gate OPEN, got %s", b.Gate().State())
	}
	if b.Gate().Method() != domain.PaymentMethodCreditCard {
		t.Errorf("gate opened for wrong method: %s", b.Gate().Method())
	}
}

func TestConfirmPayment_DispatchesDeferredBooking(t *testing.T) {
	t.Parallel()

	booker := &mockBooker{}
	b := filledBuilder(booker, &mockSuggester{})
	b.SetPayment(domain.PaymentMethodWallet)

	if _, err := b.Submit(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b.Gate().SetField(CredWalletID, "w-100")
	b.Gate().SetField(CredPIN, "12a4")

	outcome, err := b.ConfirmPayment(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Trip == nil {
		t.Fatal("expected a booked trip")
	}
	if booker.lastMethod != domain.PaymentMethodWallet {
		t.Errorf("expected WALLET, got %s", booker.lastMethod)
	}
	if booker.lastCustomerID != 7 {
		t.Errorf("expected customer 7, got %d", booker.lastCustomerID)
	}
	if booker.lastRequest.TripDate != "2026-09-01T10:30:00" {
		t.Errorf("deferred request lost normalization: %q", booker.lastRequest.TripDate)
	}

	// Success closes the gate and zeroes the credential.
	if b.Gate().State() != GateClosed {
		t.Errorf("expected gate CLOSED, got %s", b.Gate().State())
	}
	if cred := b.Gate().Credential(); cred != (Credential{}) {
		t.Errorf("credential not zeroed: %+v", cred)
	}
	if draft := b.Draft(); draft.Pickup != "" {
		t.Errorf("draft not reset: %+v", draft)
	}
}

func TestConfirmPayment_FailureKeepsGateOpen(t *testing.T) {
	t.Parallel()

	booker := &mockBooker{}
	b := filledBuilder(booker, &mockSuggester{})
	b.SetPayment(domain.PaymentMethodCreditCard)
	if _, err := b.Submit(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b.Gate().SetField(CredCardNumber, "1234567890123456")

	booker.BookError = errors.New("declined")
	if _, err := b.ConfirmPayment(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	if b.Gate().State() != GateOpen {
		t.Error("gate must stay open after a failed confirm")
	}
	if b.Gate().Credential().CardNumber != "1234 5678 9012 3456" {
		t.Errorf("credential lost on failure: %+v", b.Gate().Credential())
	}

	// Retry works without re-entering anything.
	booker.BookError = nil
	if _, err := b.ConfirmPayment(context.Background()); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
}

func TestCancelPayment_KeepsDraft(t *testing.T) {
	t.Parallel()

	b := filledBuilder(&mockBooker{}, &mockSuggester{})
	b.SetPayment(domain.PaymentMethodWallet)
	if _, err := b.Submit(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b.Gate().SetField(CredPIN, "1234")

	b.CancelPayment()

	if b.Gate().State() != GateClosed {
		t.Error("expected gate CLOSED after cancel")
	}
	if cred := b.Gate().Credential(); cred != (Credential{}) {
		t.Errorf("credential not discarded: %+v", cred)
	}

	// The draft, payment method included, survives for another attempt.
	draft := b.Draft()
	if draft.Pickup != "Tahrir Square" || draft.Payment != domain.PaymentMethodWallet {
		t.Errorf("draft changed by cancel: %+v", draft)
	}
}

func TestConfirmPayment_ClosedGate(t *testing.T) {
	t.Parallel()

	b := NewBuilder(&mockBooker{}, &mockSuggester{})
	if _, err := b.ConfirmPayment(context.Background()); !errors.Is(err, ErrGateClosed) {
		t.Errorf("expected ErrGateClosed, got %v", err)
	}
}

func TestSuggest_ShortQueryClearsWithoutLookup(t *testing.T) {
	t.Parallel()

	suggester := &mockSuggester{Results: []geocode.Suggestion{{DisplayName: "Old"}}}
	b := NewBuilder(&mockBooker{}, suggester)

	b.UpdateField(FieldPickup, "Tah")
	b.Suggest(context.Background(), FieldPickup)
	if len(b.Suggestions(FieldPickup)) != 1 {
		t.Fatal("expected one suggestion")
	}

	b.UpdateField(FieldPickup, "Ta")
	if got := b.Suggest(context.Background(), FieldPickup); got != nil {
		t.Errorf("short query must return nil, got %v", got)
	}
	if b.Suggestions(FieldPickup) != nil {
		t.Error("short query must clear stored suggestions")
	}
	if suggester.SearchCallCount != 1 {
		t.Errorf("short query must not hit the suggester, got %d calls", suggester.SearchCallCount)
	}
}

func TestSuggest_LookupFailureClearsSuggestions(t *testing.T) {
	t.Parallel()

	suggester := &mockSuggester{Results: []geocode.Suggestion{{DisplayName: "Tahrir Square, Cairo"}}}
	b := NewBuilder(&mockBooker{}, suggester)

	b.UpdateField(FieldDestination, "Tahrir")
	b.Suggest(context.Background(), FieldDestination)
	if len(b.Suggestions(FieldDestination)) != 1 {
		t.Fatal("expected one suggestion before the failure")
	}

	suggester.SearchError = errors.New("timeout")
	if got := b.Suggest(context.Background(), FieldDestination); got != nil {
		t.Errorf("failed lookup must return nil, got %v", got)
	}
	if b.Suggestions(FieldDestination) != nil {
		t.Error("failed lookup must clear stored suggestions")
	}
}

func TestSuggest_ConcurrentLookups(t *testing.T) {
	t.Parallel()

	suggester := &mockSuggester{
		SearchDelay: 5 * time.Millisecond,
		Results:     []geocode.Suggestion{{DisplayName: "Tahrir Square, Cairo"}},
	}
	b := NewBuilder(&mockBooker{}, suggester)
	b.UpdateField(FieldPickup, "Tahrir")
	b.UpdateField(FieldDestination, "Airport")

	// One lookup per keystroke is the portal's steady state: overlapping
	// Suggest calls race field edits and each other.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			field := FieldPickup
			if i%2 == 1 {
				field = FieldDestination
			}
			b.Suggest(context.Background(), field)
		}(i)
	}
	b.UpdateField(FieldPickup, "Ramses Station")
	b.Suggestions(FieldPickup)
	wg.Wait()

	if len(b.Suggestions(FieldPickup)) != 1 || len(b.Suggestions(FieldDestination)) != 1 {
		t.Error("all lookups resolved, both fields must hold suggestions")
	}
}

func TestSelect_OverwritesFieldAndClearsOnlyIt(t *testing.T) {
	t.Parallel()

	suggester := &mockSuggester{Results: []geocode.Suggestion{{DisplayName: "Cairo International Airport"}}}
	b := NewBuilder(&mockBooker{}, suggester)

	b.UpdateField(FieldPickup, "Tahrir")
	b.UpdateField(FieldDestination, "Airport")
	b.Suggest(context.Background(), FieldPickup)
	b.Suggest(context.Background(), FieldDestination)

	b.Select(FieldDestination, geocode.Suggestion{DisplayName: "Cairo International Airport"})

	if b.Draft().Destination != "Cairo International Airport" {
		t.Errorf("selection did not overwrite the field: %q", b.Draft().Destination)
	}
	if b.Suggestions(FieldDestination) != nil {
		t.Error("selected field's suggestions must be cleared")
	}
	if len(b.Suggestions(FieldPickup)) != 1 {
		t.Error("other field's suggestions must be untouched")
	}
}

func TestGateSetField_AppliesFormatters(t *testing.T) {
	t.Parallel()

	b := filledBuilder(&mockBooker{}, &mockSuggester{})
	b.SetPayment(domain.PaymentMethodCreditCard)
	if _, err := b.Submit(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gate := b.Gate()

	gate.SetField(CredCardNumber, "1234-5678-9012-3456-9999")
	gate.SetField(CredExpiry, "1229")
	gate.SetField(CredCVV, "12x3")

	cred := gate.Credential()
	if cred.CardNumber != "1234 5678 9012 3456" {
		t.Errorf("card number = %q", cred.CardNumber)
	}
	if cred.Expiry != "12/29" {
		t.Errorf("expiry = %q", cred.Expiry)
	}
	if cred.CVV != "123" {
		t.Errorf("cvv = %q", cred.CVV)
	}
}
