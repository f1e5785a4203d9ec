package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"go.uber.org/zap"
)

func newTestPaynow(baseURL string) *PaynowGateway {
	return NewPaynowGateway("12345", "secret-key", baseURL, zap.NewNop())
}

func TestPaynowCreateCharge(t *testing.T) {
	var gotForm url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/initiatetransaction" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotForm = r.PostForm
		w.Write([]byte("status=Ok&browserurl=" + url.QueryEscape("https://pay.example/tx/42") +
			"&pollurl=" + url.QueryEscape("https://pay.example/poll/42")))
	}))
	defer srv.Close()

	gw := newTestPaynow(srv.URL)
	session, err := gw.CreateCharge(context.Background(), ChargeRequest{
		Reference:  "booking-42",
		Amount:     123456,
		Currency:   "USD",
		ReturnURL:  "https://voyago.example/return",
		PayerEmail: "guest@example.com",
	})
	if err != nil {
		t.Fatalf("create charge: %v", err)
	}
	if session.RedirectURL != "https://pay.example/tx/42" {
		t.Fatalf("wrong redirect url: %s", session.RedirectURL)
	}
	if session.PollToken != "https://pay.example/poll/42" {
		t.Fatalf("wrong poll token: %s", session.PollToken)
	}

	if got := gotForm.Get("amount"); got != "1234.56" {
		t.Fatalf("minor units not converted at the wire: %s", got)
	}
	if gotForm.Get("id") != "12345" || gotForm.Get("reference") != "booking-42" {
		t.Fatalf("identity fields missing: %v", gotForm)
	}
	if gotForm.Get("hash") == "" {
		t.Fatalf("request must carry a hash")
	}
}

func TestPaynowCreateChargeRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("status=Error&error=" + url.QueryEscape("Invalid amount")))
	}))
	defer srv.Close()

	gw := newTestPaynow(srv.URL)
	_, err := gw.CreateCharge(context.Background(), ChargeRequest{Reference: "booking-1", Amount: 100})
	if err == nil {
		t.Fatalf("expected error for rejected charge")
	}
}

func TestPaynowCreateChargeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	gw := newTestPaynow(srv.URL)
	_, err := gw.CreateCharge(context.Background(), ChargeRequest{Reference: "booking-1", Amount: 100})
	if err == nil {
		t.Fatalf("expected error on HTTP 500")
	}
}

func TestPaynowCheckStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("reference=booking-42&status=Paid&amount=1234.56"))
	}))
	defer srv.Close()

	gw := newTestPaynow(srv.URL)
	status, err := gw.CheckStatus(context.Background(), srv.URL+"/poll")
	if err != nil {
		t.Fatalf("check status: %v", err)
	}
	if status != StatusPaid {
		t.Fatalf("expected paid, got %s", status)
	}
}

func TestPaynowCheckStatusUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	gw := newTestPaynow(srv.URL)
	if _, err := gw.CheckStatus(context.Background(), srv.URL+"/poll"); err == nil {
		t.Fatalf("expected error when provider is unreachable")
	}
}

func TestMapPaynowStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want Status
	}{
		{"Paid", StatusPaid},
		{"Awaiting Delivery", StatusPaid},
		{"Delivered", StatusPaid},
		{"Cancelled", StatusCancelled},
		{"Failed", StatusFailed},
		{"Disputed", StatusFailed},
		{"Refunded", StatusFailed},
		{"Created", StatusAwaiting},
		{"Sent", StatusAwaiting},
		{"", StatusAwaiting},
		{"something new", StatusAwaiting},
	}
	for _, c := range cases {
		if got := mapPaynowStatus(c.raw); got != c.want {
			t.Fatalf("mapPaynowStatus(%q) = %s, want %s", c.raw, got, c.want)
		}
	}
}

func TestRegistryUnknownProvider(t *testing.T) {
	reg := NewRegistry(newTestPaynow("https://paynow.example"))

	if _, err := reg.Get("paynow"); err != nil {
		t.Fatalf("registered gateway not found: %v", err)
	}
	if _, err := reg.Get("mpesa"); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}
