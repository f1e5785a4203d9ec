package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	bookingRepo "voyago/database/repository/booking"
	catalogRepo "voyago/database/repository/catalog"
	"voyago/models"
	"voyago/services/payment"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// fakeBookingRepo is an in-memory BookingRepository with the same guarded
// transition semantics as the Mongo implementation.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) GetByUserID(ctx context.Context, userID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) GetBySubject(ctx context.Context, subjectType, subjectID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.SubjectType == subjectType && b.SubjectID == subjectID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) GetAll(ctx context.Context) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBookingRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return bookingRepo.ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *fakeBookingRepo) SetPaymentAttempt(ctx context.Context, id string, attempt *models.PaymentAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.Payment = attempt
	b.UpdatedAt = time.Now()
	return nil
}

func (r *fakeBookingRepo) TransitionPayment(ctx context.Context, id string, from []string, t bookingRepo.PaymentTransition) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return false, nil
	}
	if b.Status == models.BookingStatusCancelled {
		return false, nil
	}
	matched := false
	for _, s := range from {
		if b.PaymentStatus == s {
			matched = true
			break
		}
	}
	if !matched {
		return false, nil
	}
	if t.PaymentStatus != "" {
		b.PaymentStatus = t.PaymentStatus
	}
	if t.Status != "" {
		b.Status = t.Status
	}
	if t.ConfirmedAt != nil {
		b.ConfirmedAt = t.ConfirmedAt
	}
	if t.NeedsReview {
		b.NeedsReview = true
	}
	b.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakeBookingRepo) Cancel(ctx context.Context, id string, at time.Time, reason string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status == models.BookingStatusCancelled {
		return false, nil
	}
	b.Status = models.BookingStatusCancelled
	b.CancelledAt = &at
	b.CancelReason = reason
	b.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakeBookingRepo) SetProof(ctx context.Context, id string, proof models.PaymentProof) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status == models.BookingStatusCancelled || b.PaymentStatus != models.PaymentStatusPending {
		return false, nil
	}
	b.Proof = &proof
	b.PaymentStatus = models.PaymentStatusProcessing
	b.UpdatedAt = time.Now()
	return true, nil
}

// fakeCatalogRepo serves scripted subjects.
type fakeCatalogRepo struct {
	subjects map[string]*models.Subject // key: type/id
}

func newFakeCatalogRepo(subjects ...*models.Subject) *fakeCatalogRepo {
	m := make(map[string]*models.Subject)
	for _, s := range subjects {
		m[s.Type+"/"+s.ID] = s
	}
	return &fakeCatalogRepo{subjects: m}
}

func (r *fakeCatalogRepo) GetSubject(ctx context.Context, subjectType, id string) (*models.Subject, error) {
	s, ok := r.subjects[subjectType+"/"+id]
	if !ok {
		return nil, catalogRepo.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeCatalogRepo) CreateDestination(ctx context.Context, d *models.Destination) error { return nil }
func (r *fakeCatalogRepo) CreateEvent(ctx context.Context, e *models.Event) error             { return nil }
func (r *fakeCatalogRepo) CreateAccommodation(ctx context.Context, a *models.Accommodation) error {
	return nil
}
func (r *fakeCatalogRepo) GetDestination(ctx context.Context, id string) (*models.Destination, error) {
	return nil, catalogRepo.ErrNotFound
}
func (r *fakeCatalogRepo) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	return nil, catalogRepo.ErrNotFound
}
func (r *fakeCatalogRepo) GetAccommodation(ctx context.Context, id string) (*models.Accommodation, error) {
	return nil, catalogRepo.ErrNotFound
}
func (r *fakeCatalogRepo) ListDestinations(ctx context.Context) ([]models.Destination, error) {
	return nil, nil
}
func (r *fakeCatalogRepo) ListEvents(ctx context.Context) ([]models.Event, error) { return nil, nil }
func (r *fakeCatalogRepo) ListAccommodations(ctx context.Context) ([]models.Accommodation, error) {
	return nil, nil
}
func (r *fakeCatalogRepo) UpdateDestination(ctx context.Context, id string, patch map[string]any) error {
	return nil
}
func (r *fakeCatalogRepo) UpdateEvent(ctx context.Context, id string, patch map[string]any) error {
	return nil
}
func (r *fakeCatalogRepo) UpdateAccommodation(ctx context.Context, id string, patch map[string]any) error {
	return nil
}
func (r *fakeCatalogRepo) DeleteDestination(ctx context.Context, id string) error { return nil }
func (r *fakeCatalogRepo) DeleteEvent(ctx context.Context, id string) error       { return nil }
func (r *fakeCatalogRepo) DeleteAccommodation(ctx context.Context, id string) error {
	return nil
}

// fakePayLog appends records in memory.
type fakePayLog struct {
	mu      sync.Mutex
	records []models.PaymentRecord
}

func (l *fakePayLog) Append(ctx context.Context, record models.PaymentRecord) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.CreatedAt = time.Now()
	l.records = append(l.records, record)
	return record.ID, nil
}

func (l *fakePayLog) GetByBookingID(ctx context.Context, bookingID string) ([]models.PaymentRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.PaymentRecord
	for _, r := range l.records {
		if r.BookingID == bookingID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (l *fakePayLog) countEvent(event string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, r := range l.records {
		if r.Event == event {
			n++
		}
	}
	return n
}

// fakeGateway returns a scripted session and a queue of statuses; the last
// status repeats once the queue is drained.
type fakeGateway struct {
	name      string
	session   payment.ChargeSession
	createErr error
	statuses  []payment.Status
	statusErr error

	mu      sync.Mutex
	creates int
	checks  int
}

func (g *fakeGateway) Name() string { return g.name }

func (g *fakeGateway) CreateCharge(ctx context.Context, req payment.ChargeRequest) (*payment.ChargeSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.creates++
	if g.createErr != nil {
		return nil, g.createErr
	}
	cp := g.session
	return &cp, nil
}

func (g *fakeGateway) CheckStatus(ctx context.Context, token string) (payment.Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.checks++
	if g.statusErr != nil {
		return "", g.statusErr
	}
	if len(g.statuses) == 0 {
		return payment.StatusAwaiting, nil
	}
	st := g.statuses[0]
	if len(g.statuses) > 1 {
		g.statuses = g.statuses[1:]
	}
	return st, nil
}

// fakeStorage records uploads and deletions.
type fakeStorage struct {
	mu        sync.Mutex
	uploads   []string
	deleted   []string
	uploadErr error
	nextID    int
}

func (s *fakeStorage) UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.nextID++
	id := fmt.Sprintf("%s/upload-%d", destFolder, s.nextID)
	s.uploads = append(s.uploads, id)
	return id, nil
}

func (s *fakeStorage) DeleteFile(ctx context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, publicID)
	return nil
}

func (s *fakeStorage) GetDownloadURL(ctx context.Context, resourceType, publicID string, expires time.Duration) (string, error) {
	return "https://storage.test/" + publicID, nil
}

// fakeTokenCache is an in-memory payment attempt mirror.
type fakeTokenCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func newFakeTokenCache() *fakeTokenCache {
	return &fakeTokenCache{entries: make(map[string]string)}
}

func (c *fakeTokenCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if !ok {
		return "", errors.New("cache miss")
	}
	return v, nil
}

func (c *fakeTokenCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *fakeTokenCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *fakeTokenCache) get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

var errProviderDown = errors.New("connection refused")

// newTestService wires a coordinator over fakes. The destination costs
// 100.00 per person, the event holds at most 3 tickets.
func newTestService(gateways ...payment.Gateway) (*DefaultBookingService, *fakeBookingRepo, *fakeCatalogRepo, *fakePayLog, *fakeStorage) {
	repo := newFakeBookingRepo()
	catalog := newFakeCatalogRepo(
		&models.Subject{Type: models.SubjectDestination, ID: "dest-1", UnitPrice: 10000, Currency: "USD"},
		&models.Subject{Type: models.SubjectEvent, ID: "event-1", UnitPrice: 2500, Currency: "USD", Capacity: 3},
		&models.Subject{Type: models.SubjectAccommodation, ID: "acc-1", UnitPrice: 7500, Currency: "USD", Capacity: 4},
	)
	payLog := &fakePayLog{}
	store := &fakeStorage{}

	svc := NewBookingService(repo, catalog, payLog, payment.NewRegistry(gateways...), store, nil, zap.NewNop())
	return svc, repo, catalog, payLog, store
}

func validRequest() CreateBookingRequest {
	return CreateBookingRequest{
		UserID:      "user-1",
		SubjectType: models.SubjectDestination,
		SubjectID:   "dest-1",
		Units:       2,
		Date:        "2026-10-01",
		Contact: models.ContactDetails{
			Name:  "Tinashe Moyo",
			Email: "tinashe@example.com",
			Phone: "+263771234567",
		},
	}
}
