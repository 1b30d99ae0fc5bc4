package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"swiftride/internal/domain"
)

func TestDo_SetsIdempotencyKeyOnMutatingCalls(t *testing.T) {
	t.Parallel()

	var postKey, getKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			postKey = r.Header.Get("Idempotency-Key")
		case http.MethodGet:
			getKey = r.Header.Get("Idempotency-Key")
		}
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			w.Write([]byte("[]"))
		} else {
			w.Write([]byte("{}"))
		}
	}))
	defer server.Close()

	c := New(server.URL)
	ctx := context.Background()

	if _, err := c.RequestedTrips(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.AcceptTrip(ctx, 1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if getKey != "" {
		t.Errorf("GET must not carry an idempotency key, got %q", getKey)
	}
	if postKey == "" {
		t.Fatal("POST must carry an idempotency key")
	}
	if _, err := uuid.Parse(postKey); err != nil {
		t.Errorf("idempotency key is not a UUID: %q", postKey)
	}
}

func TestDo_TransportFailureIsRequestError(t *testing.T) {
	t.Parallel()

	// Nothing listens here.
	c := New("http://127.0.0.1:1")

	_, err := c.RequestedTrips(context.Background())
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %T: %v", err, err)
	}
	if got := Message(err); got != "No response from server. Please check your connection." {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestDo_NonSuccessStatusIsResponseError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"trip is no longer available"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.AcceptTrip(context.Background(), 1, 2)

	var resErr *ResponseError
	if !errors.As(err, &resErr) {
		t.Fatalf("expected *ResponseError, got %T: %v", err, err)
	}
	if resErr.StatusCode != http.StatusConflict {
		t.Errorf("expected 409, got %d", resErr.StatusCode)
	}
	if resErr.Message != "trip is no longer available" {
		t.Errorf("server message not extracted: %q", resErr.Message)
	}
}

func TestExtractServerMessage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		body string
		want string
	}{
		{`{"error":"not found"}`, "not found"},
		{`{"message":"try later"}`, "try later"},
		{`{"error":"a","message":"b"}`, "b"},
		{`"bare string"`, "bare string"},
		{``, ""},
		{`{"other":"field"}`, ""},
	}
	for _, tc := range cases {
		if got := extractServerMessage([]byte(tc.body)); got != tc.want {
			t.Errorf("extractServerMessage(%q) = %q, want %q", tc.body, got, tc.want)
		}
	}
}

func TestMessage_Derivation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"validation", domain.NewValidationError("rating", "Please select a rating"), "rating: Please select a rating"},
		{"server message wins", &ResponseError{StatusCode: 500, Message: "database down"}, "database down"},
		{"401", &ResponseError{StatusCode: http.StatusUnauthorized}, "You are not authorized to perform this action"},
		{"403", &ResponseError{StatusCode: http.StatusForbidden}, "You are not authorized to perform this action"},
		{"404", &ResponseError{StatusCode: http.StatusNotFound}, "The requested resource was not found"},
		{"other status", &ResponseError{StatusCode: http.StatusBadGateway}, "HTTP error 502"},
		{"transport", &RequestError{Err: errors.New("dial tcp: refused")}, "No response from server. Please check your connection."},
	}
	for _, tc := range cases {
		if got := Message(tc.err); got != tc.want {
			t.Errorf("%s: Message = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	if !IsNotFound(&ResponseError{StatusCode: http.StatusNotFound}) {
		t.Error("404 should be not-found")
	}
	if IsNotFound(&ResponseError{StatusCode: http.StatusConflict}) {
		t.Error("409 is not not-found")
	}
	if IsNotFound(errors.New("plain")) {
		t.Error("plain error is not not-found")
	}
}

func TestBookTrip_SendsQueryAndBody(t *testing.T) {
	t.Parallel()

	var gotQuery, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":9,"status":"REQUESTED"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	trip, err := c.BookTrip(context.Background(), 42, domain.PaymentMethodCash, BookTripRequest{
		PickupLocation: "Tahrir Square",
		Destination:    "Cairo Airport",
		TripDate:       "2026-09-01T10:30:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trip.ID != 9 {
		t.Errorf("expected trip 9, got %d", trip.ID)
	}
	if gotQuery != "customerId=42&paymentMethod=CASH" {
		t.Errorf("unexpected query: %q", gotQuery)
	}
	want := `{"pickupLocation":"Tahrir Square","destination":"Cairo Airport","tripDate":"2026-09-01T10:30:00","isPremium":false,"hasChildSeat":false}`
	if gotBody != want {
		t.Errorf("unexpected body:\n got %s\nwant %s", gotBody, want)
	}
}
