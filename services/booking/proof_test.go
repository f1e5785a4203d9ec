package booking

import (
	"context"
	"testing"

	"voyago/models"
)

func TestUploadPaymentProof_Validation(t *testing.T) {
	svc, _, _, _, store := newTestService()
	b, _ := svc.CreateBooking(context.Background(), validRequest())

	// 6 MB file is over the limit.
	_, err := svc.UploadPaymentProof(context.Background(), b.ID, ProofUpload{
		LocalPath:   "/tmp/proof.pdf",
		ContentType: "application/pdf",
		Size:        6 << 20,
	})
	if !IsValidation(err) {
		t.Fatalf("expected ValidationError for oversize file, got %v", err)
	}

	// Executables are not proof documents.
	_, err = svc.UploadPaymentProof(context.Background(), b.ID, ProofUpload{
		LocalPath:   "/tmp/proof.exe",
		ContentType: "application/x-msdownload",
		Size:        1024,
	})
	if !IsValidation(err) {
		t.Fatalf("expected ValidationError for executable, got %v", err)
	}

	if len(store.uploads) != 0 {
		t.Fatalf("rejected files must never reach storage")
	}

	// A 4 MB PDF is accepted and moves the booking to processing.
	proof, err := svc.UploadPaymentProof(context.Background(), b.ID, ProofUpload{
		LocalPath:   "/tmp/receipt.pdf",
		ContentType: "application/pdf",
		Size:        4 << 20,
	})
	if err != nil {
		t.Fatalf("upload 4MB pdf: %v", err)
	}
	if proof.Path == "" {
		t.Fatalf("proof path missing")
	}

	got, _ := svc.GetBooking(context.Background(), b.ID)
	if got.PaymentStatus != models.PaymentStatusProcessing {
		t.Fatalf("expected processing after proof upload, got %s", got.PaymentStatus)
	}
	if got.Proof == nil || got.Proof.Path != proof.Path {
		t.Fatalf("proof not attached to booking")
	}
}

func TestUploadPaymentProof_NoPartialState(t *testing.T) {
	svc, repo, _, _, store := newTestService()
	b, _ := svc.CreateBooking(context.Background(), validRequest())

	// Simulate a concurrent transition between upload and attach: the
	// booking is no longer pending, so SetProof will not apply.
	repo.bookings[b.ID].PaymentStatus = models.PaymentStatusProcessing

	_, err := svc.UploadPaymentProof(context.Background(), b.ID, ProofUpload{
		LocalPath:   "/tmp/receipt.pdf",
		ContentType: "application/pdf",
		Size:        1024,
	})
	if !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(store.deleted) != 1 {
		t.Fatalf("orphaned upload not cleaned up: %v", store.deleted)
	}

	got, _ := svc.GetBooking(context.Background(), b.ID)
	if got.Proof != nil {
		t.Fatalf("proof attached despite failed transition")
	}
}

func TestUploadPaymentProof_RejectedStates(t *testing.T) {
	svc, repo, _, _, _ := newTestService()
	b, _ := svc.CreateBooking(context.Background(), validRequest())

	upload := ProofUpload{LocalPath: "/tmp/receipt.png", ContentType: "image/png", Size: 2048}

	repo.bookings[b.ID].Status = models.BookingStatusCancelled
	if _, err := svc.UploadPaymentProof(context.Background(), b.ID, upload); !IsValidation(err) {
		t.Fatalf("expected rejection on cancelled booking, got %v", err)
	}

	repo.bookings[b.ID].Status = models.BookingStatusPending
	repo.bookings[b.ID].PaymentStatus = models.PaymentStatusCompleted
	if _, err := svc.UploadPaymentProof(context.Background(), b.ID, upload); !IsValidation(err) {
		t.Fatalf("expected rejection on completed payment, got %v", err)
	}
}

func TestApproveProof(t *testing.T) {
	svc, _, _, payLog, _ := newTestService()
	b, _ := svc.CreateBooking(context.Background(), validRequest())

	// Approval without an uploaded proof is rejected.
	if err := svc.ApproveProof(context.Background(), b.ID, "admin-1"); !IsValidation(err) {
		t.Fatalf("expected ValidationError without proof, got %v", err)
	}

	if _, err := svc.UploadPaymentProof(context.Background(), b.ID, ProofUpload{
		LocalPath:   "/tmp/receipt.jpg",
		ContentType: "image/jpeg",
		Size:        2048,
	}); err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := svc.ApproveProof(context.Background(), b.ID, "admin-1"); err != nil {
		t.Fatalf("approve: %v", err)
	}

	got, _ := svc.GetBooking(context.Background(), b.ID)
	if got.Status != models.BookingStatusConfirmed || got.PaymentStatus != models.PaymentStatusCompleted {
		t.Fatalf("expected confirmed/completed, got %s/%s", got.Status, got.PaymentStatus)
	}
	if got.ConfirmedAt == nil {
		t.Fatalf("confirmation timestamp missing")
	}
	if payLog.countEvent("completed") != 1 {
		t.Fatalf("manual completion must be logged once")
	}

	// Approving twice is a no-op rejection, not a second transition.
	if err := svc.ApproveProof(context.Background(), b.ID, "admin-1"); !IsValidation(err) {
		t.Fatalf("expected ValidationError on re-approval, got %v", err)
	}
}

func TestProofDownloadURL(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	b, _ := svc.CreateBooking(context.Background(), validRequest())

	if _, err := svc.ProofDownloadURL(context.Background(), b.ID); !IsValidation(err) {
		t.Fatalf("expected ValidationError without proof, got %v", err)
	}

	proof, err := svc.UploadPaymentProof(context.Background(), b.ID, ProofUpload{
		LocalPath:   "/tmp/receipt.pdf",
		ContentType: "application/pdf",
		Size:        1024,
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	url, err := svc.ProofDownloadURL(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("download url: %v", err)
	}
	if url != "https://storage.test/"+proof.Path {
		t.Fatalf("unexpected url %q", url)
	}
}
