package booking

import (
	"context"
	"testing"
	"time"

	"voyago/models"
	"voyago/services/payment"
	"voyago/utils"
)

func TestInitiatePayment_MirrorsAttempt(t *testing.T) {
	gw := &fakeGateway{
		name:    "paynow",
		session: payment.ChargeSession{RedirectURL: "https://pay.test/checkout", PollToken: "https://pay.test/poll/abc"},
	}
	svc, _, _, _, _ := newTestService(gw)
	cache := newFakeTokenCache()
	svc.Cache = cache

	b := initiated(t, svc, "paynow")

	val, ok := cache.get(utils.PaymentCachePrefix + b.ID)
	if !ok {
		t.Fatalf("attempt not mirrored")
	}
	if val != "paynow https://pay.test/poll/abc" {
		t.Fatalf("unexpected mirror entry %q", val)
	}
}

func TestResolvePayment_ReadsMirror(t *testing.T) {
	gw := &fakeGateway{
		name:     "paynow",
		session:  payment.ChargeSession{RedirectURL: "u", PollToken: "p"},
		statuses: []payment.Status{payment.StatusPaid},
	}
	svc, repo, _, _, _ := newTestService(gw)
	cache := newFakeTokenCache()
	svc.Cache = cache

	b := initiated(t, svc, "paynow")

	// Blank the row's attempt: the resolve below can only succeed through
	// the mirrored provider and token.
	repo.bookings[b.ID].Payment = nil

	status, got, err := svc.ResolvePayment(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if status != payment.StatusPaid {
		t.Fatalf("expected paid, got %s", status)
	}
	if got.Status != models.BookingStatusConfirmed || got.PaymentStatus != models.PaymentStatusCompleted {
		t.Fatalf("expected confirmed/completed, got %s/%s", got.Status, got.PaymentStatus)
	}
	if _, ok := cache.get(utils.PaymentCachePrefix + b.ID); ok {
		t.Fatalf("mirror entry must be dropped after a terminal resolve")
	}
}

func TestResolvePayment_StaleMirrorDefersToRow(t *testing.T) {
	gw := &fakeGateway{
		name:     "paynow",
		session:  payment.ChargeSession{RedirectURL: "u", PollToken: "p"},
		statuses: []payment.Status{payment.StatusPaid},
	}
	svc, repo, _, _, _ := newTestService(gw)
	cache := newFakeTokenCache()
	svc.Cache = cache

	b := initiated(t, svc, "paynow")

	// Cancel behind the mirror's back, leaving the entry stale.
	if _, err := repo.Cancel(context.Background(), b.ID, time.Now(), "changed plans"); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	status, got, err := svc.ResolvePayment(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if status != payment.StatusCancelled {
		t.Fatalf("expected cancelled from the row, got %s", status)
	}
	if got.PaymentStatus != models.PaymentStatusPending {
		t.Fatalf("cancelled booking must not change payment status, got %s", got.PaymentStatus)
	}
}

func TestResolvePayment_FailureDropsMirror(t *testing.T) {
	gw := &fakeGateway{
		name:     "paynow",
		session:  payment.ChargeSession{RedirectURL: "u", PollToken: "p"},
		statuses: []payment.Status{payment.StatusFailed},
	}
	svc, _, _, _, _ := newTestService(gw)
	cache := newFakeTokenCache()
	svc.Cache = cache

	b := initiated(t, svc, "paynow")

	status, got, err := svc.ResolvePayment(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if status != payment.StatusFailed {
		t.Fatalf("expected failed, got %s", status)
	}
	if got.PaymentStatus != models.PaymentStatusFailed {
		t.Fatalf("expected failed payment status, got %s", got.PaymentStatus)
	}
	if _, ok := cache.get(utils.PaymentCachePrefix + b.ID); ok {
		t.Fatalf("spent attempt must be dropped from the mirror")
	}
}

func TestCancelBooking_DropsMirror(t *testing.T) {
	gw := &fakeGateway{
		name:    "paynow",
		session: payment.ChargeSession{RedirectURL: "u", PollToken: "p"},
	}
	svc, _, _, _, _ := newTestService(gw)
	cache := newFakeTokenCache()
	svc.Cache = cache

	b := initiated(t, svc, "paynow")

	if err := svc.CancelBooking(context.Background(), b.ID, "user-1", ""); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, ok := cache.get(utils.PaymentCachePrefix + b.ID); ok {
		t.Fatalf("mirror entry must be dropped on cancellation")
	}
}
