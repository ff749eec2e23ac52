package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/internal/bookingref"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/internal/domain"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/internal/repository"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/pkg/pubsub"
)

type statusCall struct {
	number string
	userID string
	from   []domain.BookingStatus
	to     domain.BookingStatus
}

type paymentCall struct {
	number string
	from   domain.PaymentStatus
	to     domain.PaymentStatus
}

type fakeBookingRepo struct {
	mu         sync.Mutex
	attempts   []string // booking numbers passed to Create, including failed ones
	created    []domain.Booking
	createErrs []error // consumed in order; exhausted list means success

	booking *domain.Booking
	getErr  error

	listBookings []domain.Booking
	listTotal    int64
	listErr      error
	listSkip     int64
	listLimit    int64

	recentBookings []domain.Booking
	recentTotal    int64
	recentSkip     int64
	recentLimit    int64

	statusCalls  []statusCall
	statusErr    error
	paymentCalls []paymentCall
	paymentErr   error
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.attempts = append(f.attempts, b.BookingNumber)
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return err
		}
	}
	f.created = append(f.created, *b)
	return nil
}

func (f *fakeBookingRepo) GetByNumber(ctx context.Context, bookingNumber, userID string) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	cp := *f.booking
	return &cp, nil
}

func (f *fakeBookingRepo) ListByUser(ctx context.Context, userID string, skip, limit int64) ([]domain.Booking, int64, error) {
	f.mu.Lock()
	f.listSkip, f.listLimit = skip, limit
	f.mu.Unlock()
	return f.listBookings, f.listTotal, f.listErr
}

func (f *fakeBookingRepo) ListRecent(ctx context.Context, skip, limit int64) ([]domain.Booking, int64, error) {
	f.mu.Lock()
	f.recentSkip, f.recentLimit = skip, limit
	f.mu.Unlock()
	return f.recentBookings, f.recentTotal, f.listErr
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, bookingNumber, userID string, from []domain.BookingStatus, to domain.BookingStatus) error {
	f.mu.Lock()
	f.statusCalls = append(f.statusCalls, statusCall{bookingNumber, userID, from, to})
	f.mu.Unlock()
	return f.statusErr
}

func (f *fakeBookingRepo) UpdatePaymentStatus(ctx context.Context, bookingNumber, userID string, from domain.PaymentStatus, to domain.PaymentStatus) error {
	f.mu.Lock()
	f.paymentCalls = append(f.paymentCalls, paymentCall{bookingNumber, from, to})
	f.mu.Unlock()
	return f.paymentErr
}

type fakePublisher struct {
	mu         sync.Mutex
	channels   []string
	events     []*pubsub.Event
	publishErr error
}

func (f *fakePublisher) Publish(ctx context.Context, channel string, event *pubsub.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.channels = append(f.channels, channel)
	f.events = append(f.events, event)
	return f.publishErr
}

func (f *fakePublisher) Close() error { return nil }

func (f *fakePublisher) published() []*pubsub.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*pubsub.Event(nil), f.events...)
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func activeHomestay(pricePerNight float64) *domain.Homestay {
	return &domain.Homestay{
		ID:            primitive.NewObjectID(),
		Title:         "Pahari View Homestay",
		District:      "Ranchi",
		PricePerNight: pricePerNight,
		Status:        domain.HomestayStatusActive,
	}
}

func pendingBooking(number string) *domain.Booking {
	return &domain.Booking{
		BookingNumber: number,
		UserID:        "user-1",
		Listing:       domain.ListingRef{Type: domain.ListingTypeHomestay, ID: primitive.NewObjectID().Hex()},
		Status:        domain.BookingStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
	}
}

func newTestBookingService() (BookingService, *fakeBookingRepo, *fakeHomestayRepo, *fakeGuideRepo, *fakePublisher) {
	bookings := &fakeBookingRepo{}
	homestays := &fakeHomestayRepo{}
	guides := &fakeGuideRepo{}
	publisher := &fakePublisher{}
	svc := NewBookingService(bookings, homestays, guides, publisher)
	return svc, bookings, homestays, guides, publisher
}

func createRequest() *domain.CreateBookingRequest {
	return &domain.CreateBookingRequest{
		ListingType: domain.ListingTypeHomestay,
		ListingID:   primitive.NewObjectID().Hex(),
		CheckIn:     date("2024-01-01"),
		CheckOut:    date("2024-01-04"),
		Guests:      domain.Guests{Adults: 2},
		GuestDetails: domain.GuestDetails{
			Name:  "Asha Kumari",
			Email: "asha@example.com",
			Phone: "+91-9900112233",
		},
	}
}

func TestCreateBooking_Homestay(t *testing.T) {
	svc, bookings, homestays, _, publisher := newTestBookingService()
	homestays.homestay = activeHomestay(1000)

	resp, err := svc.Create(context.Background(), "user-1", createRequest())
	require.NoError(t, err)

	assert.True(t, bookingref.Valid(resp.BookingNumber), "booking number %q", resp.BookingNumber)
	assert.Equal(t, domain.BookingStatusPending, resp.Status)
	assert.Equal(t, domain.PaymentStatusPending, resp.PaymentStatus)
	assert.Equal(t, domain.ListingTypeHomestay, resp.Listing.Type)
	assert.Equal(t, 3, resp.Nights)
	assert.Equal(t, 2, resp.Guests.Total)

	assert.Equal(t, 3000.0, resp.Pricing.BasePrice)
	assert.Equal(t, 150.0, resp.Pricing.ServiceFee)
	assert.Equal(t, 150.0, resp.Pricing.Tax)
	assert.Equal(t, 3300.0, resp.Pricing.Total)

	require.Len(t, bookings.created, 1)
	persisted := bookings.created[0]
	assert.Equal(t, resp.BookingNumber, persisted.BookingNumber)
	assert.Equal(t, "user-1", persisted.UserID)
	assert.Equal(t, 3, persisted.Nights)

	events := publisher.published()
	require.Len(t, events, 1)
	assert.Equal(t, pubsub.EventBookingCreated, events[0].Type)
	assert.Equal(t, resp.BookingNumber, events[0].BookingNumber)

	var payload pubsub.BookingCreatedPayload
	require.NoError(t, events[0].UnmarshalPayload(&payload))
	assert.Equal(t, "2024-01-01", payload.CheckIn)
	assert.Equal(t, 3300.0, payload.TotalAmount)
}

func TestCreateBooking_GuideUsesPerDayPrice(t *testing.T) {
	svc, bookings, _, guides, _ := newTestBookingService()
	guides.guide = &domain.Guide{
		ID:          primitive.NewObjectID(),
		Name:        "Mangal Oraon",
		District:    "Latehar",
		PricePerDay: 2000,
	}

	req := createRequest()
	req.ListingType = domain.ListingTypeGuide
	req.CheckOut = date("2024-01-03") // 2 nights

	resp, err := svc.Create(context.Background(), "user-1", req)
	require.NoError(t, err)

	assert.Equal(t, domain.ListingTypeGuide, resp.Listing.Type)
	assert.Equal(t, 2, resp.Nights)
	assert.Equal(t, 4000.0, resp.Pricing.BasePrice)
	require.Len(t, bookings.created, 1)
}

func TestCreateBooking_SuppliedNightsPreserved(t *testing.T) {
	svc, _, homestays, _, _ := newTestBookingService()
	homestays.homestay = activeHomestay(500)

	req := createRequest()
	req.Nights = 10

	resp, err := svc.Create(context.Background(), "user-1", req)
	require.NoError(t, err)

	assert.Equal(t, 10, resp.Nights)
	assert.Equal(t, 5000.0, resp.Pricing.BasePrice)
}

func TestCreateBooking_ListingNotFound(t *testing.T) {
	svc, bookings, homestays, _, _ := newTestBookingService()
	homestays.getErr = repository.ErrListingNotFound

	_, err := svc.Create(context.Background(), "user-1", createRequest())
	assert.ErrorIs(t, err, ErrListingNotFound)
	assert.Empty(t, bookings.created)
}

func TestCreateBooking_InvalidListingID(t *testing.T) {
	svc, _, homestays, _, _ := newTestBookingService()
	homestays.getErr = repository.ErrInvalidListingID

	_, err := svc.Create(context.Background(), "user-1", createRequest())
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestCreateBooking_InvalidListingType(t *testing.T) {
	svc, bookings, _, _, _ := newTestBookingService()

	req := createRequest()
	req.ListingType = "product"

	_, err := svc.Create(context.Background(), "user-1", req)
	assert.ErrorIs(t, err, ErrInvalidListingType)
	assert.Empty(t, bookings.attempts)
}

func TestCreateBooking_InactiveHomestayNotBookable(t *testing.T) {
	svc, _, homestays, _, _ := newTestBookingService()
	h := activeHomestay(1000)
	h.Status = domain.HomestayStatusInactive
	homestays.homestay = h

	_, err := svc.Create(context.Background(), "user-1", createRequest())
	assert.ErrorIs(t, err, ErrListingNotBookable)
}

func TestCreateBooking_RetriesOnDuplicateNumber(t *testing.T) {
	svc, bookings, homestays, _, _ := newTestBookingService()
	homestays.homestay = activeHomestay(1000)
	bookings.createErrs = []error{repository.ErrDuplicateBookingNumber, nil}

	resp, err := svc.Create(context.Background(), "user-1", createRequest())
	require.NoError(t, err)

	require.Len(t, bookings.attempts, 2)
	assert.NotEqual(t, bookings.attempts[0], bookings.attempts[1], "retry must use a fresh number")
	assert.Equal(t, bookings.attempts[1], resp.BookingNumber)
}

func TestCreateBooking_GivesUpAfterRepeatedCollisions(t *testing.T) {
	svc, bookings, homestays, _, _ := newTestBookingService()
	homestays.homestay = activeHomestay(1000)
	bookings.createErrs = []error{
		repository.ErrDuplicateBookingNumber,
		repository.ErrDuplicateBookingNumber,
		repository.ErrDuplicateBookingNumber,
	}

	_, err := svc.Create(context.Background(), "user-1", createRequest())
	assert.ErrorIs(t, err, repository.ErrDuplicateBookingNumber)
	assert.Len(t, bookings.attempts, 3)
}

func TestConfirmBooking(t *testing.T) {
	svc, bookings, _, _, publisher := newTestBookingService()
	bookings.booking = pendingBooking("HTB-AAAAAAAAAA")

	resp, err := svc.Confirm(context.Background(), "user-1", "HTB-AAAAAAAAAA")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, resp.Status)

	require.Len(t, bookings.statusCalls, 1)
	call := bookings.statusCalls[0]
	assert.Equal(t, "HTB-AAAAAAAAAA", call.number)
	assert.Equal(t, "user-1", call.userID)
	assert.Equal(t, []domain.BookingStatus{domain.BookingStatusPending}, call.from)
	assert.Equal(t, domain.BookingStatusConfirmed, call.to)

	events := publisher.published()
	require.Len(t, events, 1)
	assert.Equal(t, pubsub.EventBookingStatusChanged, events[0].Type)

	var payload pubsub.BookingStatusChangedPayload
	require.NoError(t, events[0].UnmarshalPayload(&payload))
	assert.Equal(t, "pending", payload.FromStatus)
	assert.Equal(t, "confirmed", payload.ToStatus)
}

func TestConfirmBooking_AlreadyConfirmed(t *testing.T) {
	svc, bookings, _, _, _ := newTestBookingService()
	b := pendingBooking("HTB-AAAAAAAAAA")
	b.Status = domain.BookingStatusConfirmed
	bookings.booking = b

	_, err := svc.Confirm(context.Background(), "user-1", "HTB-AAAAAAAAAA")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	assert.Empty(t, bookings.statusCalls, "no guarded update on rejected transition")
}

func TestCancelBooking_FromConfirmed(t *testing.T) {
	svc, bookings, _, _, _ := newTestBookingService()
	b := pendingBooking("HTB-BBBBBBBBBB")
	b.Status = domain.BookingStatusConfirmed
	bookings.booking = b

	resp, err := svc.Cancel(context.Background(), "user-1", "HTB-BBBBBBBBBB")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, resp.Status)
}

func TestCompleteBooking_FromPendingRejected(t *testing.T) {
	svc, bookings, _, _, _ := newTestBookingService()
	bookings.booking = pendingBooking("HTB-CCCCCCCCCC")

	_, err := svc.Complete(context.Background(), "user-1", "HTB-CCCCCCCCCC")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestTransition_BookingNotFound(t *testing.T) {
	svc, bookings, _, _, _ := newTestBookingService()
	bookings.getErr = repository.ErrBookingNotFound

	_, err := svc.Confirm(context.Background(), "user-1", "HTB-MISSING000")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestTransition_ConcurrentConflict(t *testing.T) {
	svc, bookings, _, _, _ := newTestBookingService()
	bookings.booking = pendingBooking("HTB-DDDDDDDDDD")
	bookings.statusErr = repository.ErrBookingConflict

	_, err := svc.Confirm(context.Background(), "user-1", "HTB-DDDDDDDDDD")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestUpdatePayment(t *testing.T) {
	svc, bookings, _, _, publisher := newTestBookingService()
	bookings.booking = pendingBooking("HTB-EEEEEEEEEE")

	resp, err := svc.UpdatePayment(context.Background(), "user-1", "HTB-EEEEEEEEEE", domain.PaymentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusCompleted, resp.PaymentStatus)

	require.Len(t, bookings.paymentCalls, 1)
	assert.Equal(t, domain.PaymentStatusPending, bookings.paymentCalls[0].from)
	assert.Equal(t, domain.PaymentStatusCompleted, bookings.paymentCalls[0].to)

	events := publisher.published()
	require.Len(t, events, 1)
	assert.Equal(t, pubsub.EventBookingPaymentUpdated, events[0].Type)
}

func TestUpdatePayment_InvalidTransition(t *testing.T) {
	svc, bookings, _, _, _ := newTestBookingService()
	b := pendingBooking("HTB-FFFFFFFFFF")
	b.PaymentStatus = domain.PaymentStatusRefunded
	bookings.booking = b

	_, err := svc.UpdatePayment(context.Background(), "user-1", "HTB-FFFFFFFFFF", domain.PaymentStatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidPaymentTransition)
	assert.Empty(t, bookings.paymentCalls)
}

func TestGetByNumber(t *testing.T) {
	svc, bookings, _, _, _ := newTestBookingService()
	bookings.booking = pendingBooking("HTB-GGGGGGGGGG")

	resp, err := svc.GetByNumber(context.Background(), "user-1", "HTB-GGGGGGGGGG")
	require.NoError(t, err)
	assert.Equal(t, "HTB-GGGGGGGGGG", resp.BookingNumber)

	bookings.getErr = repository.ErrBookingNotFound
	_, err = svc.GetByNumber(context.Background(), "user-1", "HTB-GGGGGGGGGG")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListByUser_PaginationNormalized(t *testing.T) {
	svc, bookings, _, _, _ := newTestBookingService()
	bookings.listBookings = []domain.Booking{*pendingBooking("HTB-HHHHHHHHHH")}
	bookings.listTotal = 23

	resp, err := svc.ListByUser(context.Background(), "user-1", 3, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(20), bookings.listSkip, "skip = (page-1)*limit with default limit 10")
	assert.Equal(t, int64(10), bookings.listLimit)
	assert.Len(t, resp.Bookings, 1)
	assert.Equal(t, 3, resp.Pagination.Page)
	assert.Equal(t, 10, resp.Pagination.Limit)
	assert.Equal(t, int64(23), resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
}

func TestListByUser_HugePageClamped(t *testing.T) {
	svc, bookings, _, _, _ := newTestBookingService()
	bookings.listTotal = 5

	resp, err := svc.ListByUser(context.Background(), "user-1", math.MaxInt, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(99990), bookings.listSkip, "page is capped at 10000")
	assert.Equal(t, int64(10), bookings.listLimit)
	assert.Equal(t, 10000, resp.Pagination.Page)
}

func TestListRecent_PaginationNormalized(t *testing.T) {
	svc, bookings, _, _, _ := newTestBookingService()
	bookings.recentBookings = []domain.Booking{
		*pendingBooking("HTB-JJJJJJJJJJ"),
		*pendingBooking("HTB-KKKKKKKKKK"),
	}
	bookings.recentTotal = 42

	resp, err := svc.ListRecent(context.Background(), 2, 20)
	require.NoError(t, err)

	assert.Equal(t, int64(20), bookings.recentSkip)
	assert.Equal(t, int64(20), bookings.recentLimit)
	assert.Len(t, resp.Bookings, 2)
	assert.Equal(t, int64(42), resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
}

func TestCreateBooking_PublishFailureDoesNotFailRequest(t *testing.T) {
	svc, _, homestays, _, publisher := newTestBookingService()
	homestays.homestay = activeHomestay(1000)
	publisher.publishErr = errors.New("broker unavailable")

	resp, err := svc.Create(context.Background(), "user-1", createRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.BookingNumber)
}
