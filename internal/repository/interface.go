package repository

import (
	"context"
	"errors"

	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/internal/domain"
)

var (
	ErrListingNotFound        = errors.New("listing not found")
	ErrInvalidListingID       = errors.New("invalid listing id")
	ErrBookingNotFound        = errors.New("booking not found")
	ErrBookingConflict        = errors.New("booking status conflict")
	ErrDuplicateBookingNumber = errors.New("duplicate booking number")
)

// HomestayRepository defines read access to the homestays collection.
type HomestayRepository interface {
	Search(ctx context.Context, term string, skip, limit int64) ([]domain.HomestayResult, error)
	Count(ctx context.Context, term string) (int64, error)
	SuggestTitles(ctx context.Context, term string, limit int64) ([]domain.Suggestion, error)
	DistrictCounts(ctx context.Context, term string, limit int64) ([]domain.DistrictCount, error)
	GetByID(ctx context.Context, id string) (*domain.Homestay, error)
}

// GuideRepository defines read access to the guides collection.
type GuideRepository interface {
	Search(ctx context.Context, term string, skip, limit int64) ([]domain.GuideResult, error)
	Count(ctx context.Context, term string) (int64, error)
	SuggestNames(ctx context.Context, term string, limit int64) ([]domain.Suggestion, error)
	GetByID(ctx context.Context, id string) (*domain.Guide, error)
}

// ProductRepository defines read access to the products collection.
type ProductRepository interface {
	Search(ctx context.Context, term string, skip, limit int64) ([]domain.ProductResult, error)
	Count(ctx context.Context, term string) (int64, error)
	SuggestTitles(ctx context.Context, term string, limit int64) ([]domain.Suggestion, error)
}

// BookingRepository defines persistence for booking records. Bookings are
// never deleted; lifecycle changes go through the guarded status updates.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByNumber(ctx context.Context, bookingNumber, userID string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string, skip, limit int64) ([]domain.Booking, int64, error)
	ListRecent(ctx context.Context, skip, limit int64) ([]domain.Booking, int64, error)
	UpdateStatus(ctx context.Context, bookingNumber, userID string, from []domain.BookingStatus, to domain.BookingStatus) error
	UpdatePaymentStatus(ctx context.Context, bookingNumber, userID string, from domain.PaymentStatus, to domain.PaymentStatus) error
}
