package booking

import (
	"context"
	"strings"
	"time"

	bookingRepo "voyago/database/repository/booking"
	"voyago/models"
	"voyago/services/payment"
	"voyago/utils"

	"go.uber.org/zap"
)

// InitiatePayment creates a charge with the chosen provider and persists the
// resulting attempt (poll token included) on the booking. The booking's own
// state does not change here: nothing has been collected yet.
func (svc *DefaultBookingService) InitiatePayment(ctx context.Context, bookingID, provider, returnURL string) (string, error) {
	b, err := svc.GetBooking(ctx, bookingID)
	if err != nil {
		return "", err
	}
	if b.Status != models.BookingStatusPending {
		return "", NewValidationError("status", "payment can only be initiated on a pending booking")
	}
	if b.PaymentStatus != models.PaymentStatusPending && b.PaymentStatus != models.PaymentStatusFailed {
		return "", NewValidationError("paymentStatus", "payment is already "+b.PaymentStatus)
	}

	gw, err := svc.Gateways.Get(provider)
	if err != nil {
		return "", NewValidationError("provider", err.Error())
	}

	session, err := gw.CreateCharge(ctx, payment.ChargeRequest{
		Amount:     b.TotalPrice,
		Currency:   b.Currency,
		Reference:  b.ID,
		PayerEmail: b.Contact.Email,
		PayerPhone: b.Contact.Phone,
		ReturnURL:  returnURL,
	})
	if err != nil {
		return "", &GatewayError{Provider: provider, Message: "charge creation failed", Err: err}
	}

	attempt := &models.PaymentAttempt{
		Provider:    provider,
		Reference:   b.ID,
		RedirectURL: session.RedirectURL,
		PollToken:   session.PollToken,
		SessionID:   session.SessionID,
		Amount:      b.TotalPrice,
		Currency:    b.Currency,
		CreatedAt:   time.Now(),
	}
	if err := svc.Repo.SetPaymentAttempt(ctx, b.ID, attempt); err != nil {
		return "", &StoreError{Op: "persist payment attempt", Err: err}
	}

	// Mirror the live attempt in the cache so resolves can skip the
	// booking-row read. The booking row keeps the authoritative copy.
	if svc.Cache != nil {
		if err := svc.Cache.Set(ctx, utils.PaymentCachePrefix+b.ID,
			provider+" "+session.Token(), utils.PaymentCacheTTL); err != nil {
			svc.Logger.Warn("payment mirror set failed",
				zap.String("booking", b.ID), zap.Error(err))
		}
	}

	svc.appendLog(ctx, b, provider, "initiated", "")

	svc.Logger.Info("payment initiated",
		zap.String("booking", b.ID),
		zap.String("provider", provider),
		zap.Int64("amount", b.TotalPrice))
	return session.RedirectURL, nil
}

// ResolvePayment queries the provider for the current status of the
// booking's active attempt and applies the matching state transition.
// Re-resolving a terminal result is a no-op: the guarded update only fires
// while the current payment status is non-terminal, and a booking already
// completed short-circuits before the provider is contacted. Provider
// communication failures leave booking state untouched. The cached mirror,
// when it holds the live attempt, stands in for the booking-row read; once
// the attempt ends the mirror entry is dropped.
func (svc *DefaultBookingService) ResolvePayment(ctx context.Context, bookingID string) (payment.Status, *models.Booking, error) {
	provider, token, cached := svc.cachedAttempt(ctx, bookingID)
	if !cached {
		b, err := svc.GetBooking(ctx, bookingID)
		if err != nil {
			return "", nil, err
		}
		if b.Status == models.BookingStatusCancelled {
			return payment.StatusCancelled, b, nil
		}
		if b.PaymentStatus == models.PaymentStatusCompleted {
			return payment.StatusPaid, b, nil
		}
		if b.Payment == nil {
			return "", nil, NewValidationError("payment", "no payment attempt to resolve")
		}
		provider = b.Payment.Provider
		token = b.Payment.PollToken
		if token == "" {
			token = b.Payment.SessionID
		}
	}

	gw, err := svc.Gateways.Get(provider)
	if err != nil {
		return "", nil, NewValidationError("provider", err.Error())
	}

	status, err := gw.CheckStatus(ctx, token)
	if err != nil {
		// Fail closed: the booking keeps its last known state.
		return "", nil, &GatewayError{Provider: provider, Message: "status check failed", Err: err}
	}

	var event string
	switch status {
	case payment.StatusPaid:
		now := time.Now()
		applied, err := svc.Repo.TransitionPayment(ctx, bookingID,
			[]string{models.PaymentStatusPending, models.PaymentStatusProcessing, models.PaymentStatusFailed},
			bookingRepo.PaymentTransition{
				PaymentStatus: models.PaymentStatusCompleted,
				Status:        models.BookingStatusConfirmed,
				ConfirmedAt:   &now,
			})
		if err != nil {
			return "", nil, &StoreError{Op: "confirm booking", Err: err}
		}
		if applied {
			event = "completed"
		}
	case payment.StatusCancelled, payment.StatusFailed:
		applied, err := svc.Repo.TransitionPayment(ctx, bookingID,
			[]string{models.PaymentStatusPending, models.PaymentStatusProcessing},
			bookingRepo.PaymentTransition{PaymentStatus: models.PaymentStatusFailed})
		if err != nil {
			return "", nil, &StoreError{Op: "record failed payment", Err: err}
		}
		if applied {
			event = string(status)
		}
	case payment.StatusAwaiting:
		// No change; the caller retries later.
	}

	updated, err := svc.GetBooking(ctx, bookingID)
	if err != nil {
		return status, nil, err
	}

	if event != "" {
		svc.dropMirror(ctx, bookingID)
		svc.appendLog(ctx, updated, provider, event, "")
		if event == "completed" {
			svc.Logger.Info("payment completed", zap.String("booking", bookingID))
		} else {
			svc.Logger.Info("payment did not complete",
				zap.String("booking", bookingID),
				zap.String("result", string(status)))
		}
	}

	// A stale mirror can race a cancellation or a concurrent resolve; the
	// stored row decides what the caller sees.
	if updated.Status == models.BookingStatusCancelled {
		return payment.StatusCancelled, updated, nil
	}
	if updated.PaymentStatus == models.PaymentStatusCompleted {
		return payment.StatusPaid, updated, nil
	}
	return status, updated, nil
}

// cachedAttempt reads the mirrored provider and token for a live attempt.
// Any cache failure falls back to the booking row.
func (svc *DefaultBookingService) cachedAttempt(ctx context.Context, bookingID string) (provider, token string, ok bool) {
	if svc.Cache == nil {
		return "", "", false
	}
	val, err := svc.Cache.Get(ctx, utils.PaymentCachePrefix+bookingID)
	if err != nil {
		return "", "", false
	}
	provider, token, found := strings.Cut(val, " ")
	if !found || provider == "" || token == "" {
		return "", "", false
	}
	return provider, token, true
}

// dropMirror removes the cached attempt once it can no longer be polled.
func (svc *DefaultBookingService) dropMirror(ctx context.Context, bookingID string) {
	if svc.Cache == nil {
		return
	}
	if err := svc.Cache.Del(ctx, utils.PaymentCachePrefix+bookingID); err != nil {
		svc.Logger.Warn("payment mirror delete failed",
			zap.String("booking", bookingID), zap.Error(err))
	}
}

// PollPolicy bounds the ResolvePayment retry loop.
type PollPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultPollPolicy matches the redirect flow: quick first checks, then
// backing off, giving up after roughly two minutes.
func DefaultPollPolicy() PollPolicy {
	return PollPolicy{
		MaxAttempts:    8,
		InitialBackoff: 2 * time.Second,
		MaxBackoff:     30 * time.Second,
	}
}

// AwaitPayment polls ResolvePayment with bounded exponential backoff until a
// terminal status or the attempt budget runs out. On exhaustion the booking
// is left pending and flagged for manual reconciliation rather than silently
// abandoned. Status-check communication errors consume an attempt and the
// loop keeps going; they never change booking state.
func (svc *DefaultBookingService) AwaitPayment(ctx context.Context, bookingID string, policy PollPolicy) (payment.Status, error) {
	if policy.MaxAttempts < 1 {
		policy = DefaultPollPolicy()
	}

	backoff := policy.InitialBackoff
	var lastErr error
	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return payment.StatusAwaiting, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > policy.MaxBackoff {
				backoff = policy.MaxBackoff
			}
		}

		status, _, err := svc.ResolvePayment(ctx, bookingID)
		if err != nil {
			if IsGateway(err) {
				lastErr = err
				continue
			}
			return "", err
		}
		if status.Terminal() {
			return status, nil
		}
	}

	// Budget exhausted: flag for manual review, state otherwise untouched.
	if _, err := svc.Repo.TransitionPayment(ctx, bookingID,
		[]string{models.PaymentStatusPending, models.PaymentStatusProcessing},
		bookingRepo.PaymentTransition{NeedsReview: true}); err != nil {
		svc.Logger.Warn("failed to flag booking for review",
			zap.String("booking", bookingID), zap.Error(err))
	}
	svc.Logger.Warn("payment unresolved after polling budget",
		zap.String("booking", bookingID), zap.Error(lastErr))
	return payment.StatusAwaiting, nil
}

// PaymentHistory returns the append-only payment log for a booking.
func (svc *DefaultBookingService) PaymentHistory(ctx context.Context, bookingID string) ([]models.PaymentRecord, error) {
	records, err := svc.PayLog.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, &StoreError{Op: "payment history", Err: err}
	}
	return records, nil
}

// appendLog writes a payments-log entry; log failures are reported but do
// not fail the surrounding operation.
func (svc *DefaultBookingService) appendLog(ctx context.Context, b *models.Booking, provider, event, message string) {
	if svc.PayLog == nil {
		return
	}
	_, err := svc.PayLog.Append(ctx, models.PaymentRecord{
		BookingID: b.ID,
		Provider:  provider,
		Reference: b.ID,
		Amount:    b.TotalPrice,
		Currency:  b.Currency,
		Event:     event,
		Message:   message,
	})
	if err != nil {
		svc.Logger.Warn("payments log append failed",
			zap.String("booking", b.ID), zap.Error(err))
	}
}
