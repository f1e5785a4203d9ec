package booking

import (
	"context"
	"fmt"
	"time"

	bookingRepo "voyago/database/repository/booking"
	"voyago/models"

	"go.uber.org/zap"
)

// MaxProofSize is the upload ceiling for payment-proof documents.
const MaxProofSize = 5 << 20 // 5 MB

var allowedProofTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// UploadPaymentProof stores a proof-of-payment document and moves the
// booking's payment status from pending to processing, signalling that it
// awaits manual verification. The proof and the status update stand or fall
// together: when the status update cannot be applied the uploaded object is
// removed again.
func (svc *DefaultBookingService) UploadPaymentProof(ctx context.Context, bookingID string, upload ProofUpload) (*models.PaymentProof, error) {
	if !allowedProofTypes[upload.ContentType] {
		return nil, NewValidationError("file", fmt.Sprintf("unsupported file type %q", upload.ContentType))
	}
	if upload.Size > MaxProofSize {
		return nil, NewValidationError("file", fmt.Sprintf("file exceeds %d byte limit", MaxProofSize))
	}

	b, err := svc.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status == models.BookingStatusCancelled {
		return nil, NewValidationError("status", "booking is cancelled")
	}
	if b.PaymentStatus != models.PaymentStatusPending {
		return nil, NewValidationError("paymentStatus", "payment is already "+b.PaymentStatus)
	}

	path, err := svc.Storage.UploadFile(ctx, upload.LocalPath, "proofs/"+bookingID)
	if err != nil {
		return nil, &StoreError{Op: "upload proof", Err: err}
	}

	proof := models.PaymentProof{Path: path, UploadedAt: time.Now()}
	applied, err := svc.Repo.SetProof(ctx, bookingID, proof)
	if err != nil || !applied {
		// Undo the upload so no proof dangles without a status change.
		if delErr := svc.Storage.DeleteFile(ctx, path); delErr != nil {
			svc.Logger.Warn("orphaned proof cleanup failed",
				zap.String("booking", bookingID), zap.Error(delErr))
		}
		if err != nil {
			return nil, &StoreError{Op: "attach proof", Err: err}
		}
		return nil, NewValidationError("paymentStatus", "booking state changed while uploading proof")
	}

	svc.Logger.Info("payment proof uploaded",
		zap.String("booking", bookingID),
		zap.String("path", path))
	return &proof, nil
}

// ProofDownloadTTL bounds how long a generated proof link stays valid.
const ProofDownloadTTL = 15 * time.Minute

// ProofDownloadURL returns a time-limited link to a booking's uploaded
// payment proof so an administrator can inspect it before approval.
func (svc *DefaultBookingService) ProofDownloadURL(ctx context.Context, bookingID string) (string, error) {
	b, err := svc.GetBooking(ctx, bookingID)
	if err != nil {
		return "", err
	}
	if b.Proof == nil {
		return "", NewValidationError("proof", "no payment proof uploaded")
	}

	url, err := svc.Storage.GetDownloadURL(ctx, "image", b.Proof.Path, ProofDownloadTTL)
	if err != nil {
		return "", &StoreError{Op: "proof download url", Err: err}
	}
	return url, nil
}

// ApproveProof is the only administrative confirmation path. It verifies an
// uploaded proof and atomically marks the payment completed and the booking
// confirmed; an admin can never set confirmed without completed.
func (svc *DefaultBookingService) ApproveProof(ctx context.Context, bookingID, adminID string) error {
	b, err := svc.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.Proof == nil {
		return NewValidationError("proof", "no payment proof to approve")
	}

	now := time.Now()
	applied, err := svc.Repo.TransitionPayment(ctx, bookingID,
		[]string{models.PaymentStatusProcessing},
		bookingRepo.PaymentTransition{
			PaymentStatus: models.PaymentStatusCompleted,
			Status:        models.BookingStatusConfirmed,
			ConfirmedAt:   &now,
		})
	if err != nil {
		return &StoreError{Op: "approve proof", Err: err}
	}
	if !applied {
		return NewValidationError("paymentStatus", "booking is not awaiting proof verification")
	}

	svc.dropMirror(ctx, bookingID)
	svc.appendLog(ctx, b, "manual", "completed", "proof approved by "+adminID)
	svc.Logger.Info("payment proof approved",
		zap.String("booking", bookingID),
		zap.String("admin", adminID))
	return nil
}
