package service

import (
	"context"
	"errors"
	"math"

	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/internal/audit"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/internal/bookingref"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/internal/domain"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/internal/repository"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/pkg/log"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/pkg/pubsub"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/pkg/response"
)

var (
	ErrBookingNotFound          = errors.New("booking not found")
	ErrListingNotFound          = errors.New("listing not found")
	ErrInvalidListingType       = errors.New("invalid listing type")
	ErrListingNotBookable       = errors.New("listing is not bookable")
	ErrInvalidStatusTransition  = errors.New("invalid booking status transition")
	ErrInvalidPaymentTransition = errors.New("invalid payment status transition")
)

const (
	serviceFeeRate = 0.05
	taxRate        = 0.05

	// maxRefAttempts bounds retries when a generated booking number collides
	// with the unique index.
	maxRefAttempts = 3
)

type bookingServiceImpl struct {
	bookings  repository.BookingRepository
	homestays repository.HomestayRepository
	guides    repository.GuideRepository
	publisher pubsub.Publisher
}

// NewBookingService creates a new booking service. The homestay and guide
// repositories resolve the listing reference by its type tag.
func NewBookingService(
	bookings repository.BookingRepository,
	homestays repository.HomestayRepository,
	guides repository.GuideRepository,
	publisher pubsub.Publisher,
) BookingService {
	return &bookingServiceImpl{
		bookings:  bookings,
		homestays: homestays,
		guides:    guides,
		publisher: publisher,
	}
}

// Create validates the referenced listing, fills derived fields and pricing,
// and persists the booking in pending state.
func (s *bookingServiceImpl) Create(ctx context.Context, userID string, req *domain.CreateBookingRequest) (*domain.BookingResponse, error) {
	unitPrice, err := s.resolveListing(ctx, req.ListingType, req.ListingID)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		UserID: userID,
		Listing: domain.ListingRef{
			Type: req.ListingType,
			ID:   req.ListingID,
		},
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		Nights:        req.Nights,
		Guests:        req.Guests,
		GuestDetails:  req.GuestDetails,
		Status:        domain.BookingStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
	}

	booking.ApplyDerivedFields()
	booking.Pricing = computePricing(unitPrice, booking.Nights)

	if err := s.createWithFreshNumber(ctx, booking); err != nil {
		return nil, err
	}

	audit.Log(ctx, audit.ActionCreateBooking, userID, booking.BookingNumber, "booking created")
	s.publishEvent(ctx, pubsub.EventBookingCreated, booking.BookingNumber, pubsub.BookingCreatedPayload{
		BookingNumber: booking.BookingNumber,
		UserID:        userID,
		ListingType:   booking.Listing.Type,
		ListingID:     booking.Listing.ID,
		CheckIn:       booking.CheckIn.Format("2006-01-02"),
		CheckOut:      booking.CheckOut.Format("2006-01-02"),
		TotalAmount:   booking.Pricing.Total,
	})

	resp := booking.ToResponse()
	return &resp, nil
}

// resolveListing dispatches on the listing type tag and returns the unit
// price (per night for homestays, per day for guides).
func (s *bookingServiceImpl) resolveListing(ctx context.Context, listingType, listingID string) (float64, error) {
	switch listingType {
	case domain.ListingTypeHomestay:
		homestay, err := s.homestays.GetByID(ctx, listingID)
		if err != nil {
			if errors.Is(err, repository.ErrListingNotFound) || errors.Is(err, repository.ErrInvalidListingID) {
				return 0, ErrListingNotFound
			}
			return 0, err
		}
		if homestay.Status != domain.HomestayStatusActive {
			return 0, ErrListingNotBookable
		}
		return homestay.PricePerNight, nil

	case domain.ListingTypeGuide:
		guide, err := s.guides.GetByID(ctx, listingID)
		if err != nil {
			if errors.Is(err, repository.ErrListingNotFound) || errors.Is(err, repository.ErrInvalidListingID) {
				return 0, ErrListingNotFound
			}
			return 0, err
		}
		return guide.PricePerDay, nil

	default:
		return 0, ErrInvalidListingType
	}
}

// createWithFreshNumber inserts the booking, regenerating the booking number
// on duplicate-key collisions.
func (s *bookingServiceImpl) createWithFreshNumber(ctx context.Context, booking *domain.Booking) error {
	l := log.Ctx(ctx)

	for attempt := 0; attempt < maxRefAttempts; attempt++ {
		number, err := bookingref.New()
		if err != nil {
			return err
		}
		booking.BookingNumber = number

		err = s.bookings.Create(ctx, booking)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicateBookingNumber) {
			return err
		}
		l.Warn().Str(log.FieldBookingNumber, number).Msg("booking number collision, retrying")
	}
	return repository.ErrDuplicateBookingNumber
}

// GetByNumber retrieves one of the caller's bookings.
func (s *bookingServiceImpl) GetByNumber(ctx context.Context, userID, bookingNumber string) (*domain.BookingResponse, error) {
	booking, err := s.bookings.GetByNumber(ctx, bookingNumber, userID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	resp := booking.ToResponse()
	return &resp, nil
}

// ListByUser lists the caller's bookings with pagination.
func (s *bookingServiceImpl) ListByUser(ctx context.Context, userID string, page, limit int) (*domain.ListBookingsResponse, error) {
	page, limit = response.NormalizePageLimit(page, limit)
	skip := int64((page - 1) * limit)

	bookings, total, err := s.bookings.ListByUser(ctx, userID, skip, int64(limit))
	if err != nil {
		return nil, err
	}

	responses := make([]domain.BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = bookings[i].ToResponse()
	}

	return &domain.ListBookingsResponse{
		Bookings:   responses,
		Pagination: response.NewPagination(page, limit, total),
	}, nil
}

// ListRecent lists bookings across all users with pagination. Callers are
// expected to have passed an admin role check.
func (s *bookingServiceImpl) ListRecent(ctx context.Context, page, limit int) (*domain.ListBookingsResponse, error) {
	page, limit = response.NormalizePageLimit(page, limit)
	skip := int64((page - 1) * limit)

	bookings, total, err := s.bookings.ListRecent(ctx, skip, int64(limit))
	if err != nil {
		return nil, err
	}

	responses := make([]domain.BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = bookings[i].ToResponse()
	}

	return &domain.ListBookingsResponse{
		Bookings:   responses,
		Pagination: response.NewPagination(page, limit, total),
	}, nil
}

// Confirm moves a pending booking to confirmed.
func (s *bookingServiceImpl) Confirm(ctx context.Context, userID, bookingNumber string) (*domain.BookingResponse, error) {
	return s.transition(ctx, userID, bookingNumber, domain.BookingStatusConfirmed, audit.ActionConfirmBooking)
}

// Cancel moves a pending or confirmed booking to cancelled.
func (s *bookingServiceImpl) Cancel(ctx context.Context, userID, bookingNumber string) (*domain.BookingResponse, error) {
	return s.transition(ctx, userID, bookingNumber, domain.BookingStatusCancelled, audit.ActionCancelBooking)
}

// Complete moves a confirmed booking to completed.
func (s *bookingServiceImpl) Complete(ctx context.Context, userID, bookingNumber string) (*domain.BookingResponse, error) {
	return s.transition(ctx, userID, bookingNumber, domain.BookingStatusCompleted, audit.ActionCompleteBooking)
}

// transition applies a guarded status change. The repository update matches
// on the current status, so a concurrent transition surfaces as a conflict
// rather than a lost update.
func (s *bookingServiceImpl) transition(ctx context.Context, userID, bookingNumber string, to domain.BookingStatus, action string) (*domain.BookingResponse, error) {
	booking, err := s.bookings.GetByNumber(ctx, bookingNumber, userID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	from := booking.Status
	if !from.CanTransitionTo(to) {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.bookings.UpdateStatus(ctx, bookingNumber, userID, []domain.BookingStatus{from}, to); err != nil {
		if errors.Is(err, repository.ErrBookingConflict) {
			return nil, ErrInvalidStatusTransition
		}
		return nil, err
	}

	booking.Status = to
	audit.LogWithDetail(ctx, action, userID, bookingNumber, string(to), "booking status changed")
	s.publishEvent(ctx, pubsub.EventBookingStatusChanged, bookingNumber, pubsub.BookingStatusChangedPayload{
		BookingNumber: bookingNumber,
		UserID:        userID,
		FromStatus:    string(from),
		ToStatus:      string(to),
	})

	resp := booking.ToResponse()
	return &resp, nil
}

// UpdatePayment applies a guarded payment status change.
func (s *bookingServiceImpl) UpdatePayment(ctx context.Context, userID, bookingNumber string, to domain.PaymentStatus) (*domain.BookingResponse, error) {
	booking, err := s.bookings.GetByNumber(ctx, bookingNumber, userID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	from := booking.PaymentStatus
	if !from.CanTransitionTo(to) {
		return nil, ErrInvalidPaymentTransition
	}

	if err := s.bookings.UpdatePaymentStatus(ctx, bookingNumber, userID, from, to); err != nil {
		if errors.Is(err, repository.ErrBookingConflict) {
			return nil, ErrInvalidPaymentTransition
		}
		return nil, err
	}

	booking.PaymentStatus = to
	audit.LogWithDetail(ctx, audit.ActionUpdatePayment, userID, bookingNumber, string(to), "booking payment status changed")
	s.publishEvent(ctx, pubsub.EventBookingPaymentUpdated, bookingNumber, pubsub.BookingPaymentUpdatedPayload{
		BookingNumber: bookingNumber,
		UserID:        userID,
		FromStatus:    string(from),
		ToStatus:      string(to),
	})

	resp := booking.ToResponse()
	return &resp, nil
}

// publishEvent emits a booking lifecycle event. Publish failures are logged
// and never fail the request; the booking is already committed.
func (s *bookingServiceImpl) publishEvent(ctx context.Context, eventType, bookingNumber string, payload interface{}) {
	l := log.Ctx(ctx)

	event, err := pubsub.NewEvent(eventType, bookingNumber, payload)
	if err != nil {
		l.Warn().Err(err).Str(log.FieldBookingNumber, bookingNumber).Msg("failed to build booking event")
		return
	}
	if err := s.publisher.Publish(ctx, pubsub.ChannelBookingEvents, event); err != nil {
		l.Warn().Err(err).Str(log.FieldBookingNumber, bookingNumber).Msg("failed to publish booking event")
	}
}

// computePricing derives the price breakdown from the listing's unit price
// and the night count.
func computePricing(unitPrice float64, nights int) domain.Pricing {
	base := round2(unitPrice * float64(nights))
	fee := round2(base * serviceFeeRate)
	tax := round2(base * taxRate)
	return domain.Pricing{
		BasePrice:  base,
		ServiceFee: fee,
		Tax:        tax,
		Total:      round2(base + fee + tax),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
