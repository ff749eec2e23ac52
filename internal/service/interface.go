package service

import (
	"context"

	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/internal/domain"
)

// SearchService defines the interface for unified search business logic.
type SearchService interface {
	Search(ctx context.Context, req *domain.SearchRequest) (*domain.SearchResponse, error)
	Autocomplete(ctx context.Context, term string) ([]domain.Suggestion, error)
}

// BookingService defines the interface for booking business logic.
type BookingService interface {
	Create(ctx context.Context, userID string, req *domain.CreateBookingRequest) (*domain.BookingResponse, error)
	GetByNumber(ctx context.Context, userID, bookingNumber string) (*domain.BookingResponse, error)
	ListByUser(ctx context.Context, userID string, page, limit int) (*domain.ListBookingsResponse, error)
	ListRecent(ctx context.Context, page, limit int) (*domain.ListBookingsResponse, error)
	Confirm(ctx context.Context, userID, bookingNumber string) (*domain.BookingResponse, error)
	Cancel(ctx context.Context, userID, bookingNumber string) (*domain.BookingResponse, error)
	Complete(ctx context.Context, userID, bookingNumber string) (*domain.BookingResponse, error)
	UpdatePayment(ctx context.Context, userID, bookingNumber string, to domain.PaymentStatus) (*domain.BookingResponse, error)
}
