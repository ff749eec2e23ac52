package domain

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/pkg/response"
)

// BookingStatus represents booking lifecycle status. Bookings are never
// physically deleted; the lifecycle is tracked via status only.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// CanTransitionTo reports whether a booking may move from s to target.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return target == BookingStatusConfirmed || target == BookingStatusCancelled
	case BookingStatusConfirmed:
		return target == BookingStatusCompleted || target == BookingStatusCancelled
	default:
		return false
	}
}

// PaymentStatus represents booking payment status.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// CanTransitionTo reports whether a payment may move from s to target.
func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	switch s {
	case PaymentStatusPending:
		return target == PaymentStatusCompleted || target == PaymentStatusFailed
	case PaymentStatusCompleted:
		return target == PaymentStatusRefunded
	case PaymentStatusFailed:
		return target == PaymentStatusCompleted
	default:
		return false
	}
}

// ListingRef is a tagged reference to the booked listing, resolved by
// explicit dispatch on Type. Only homestays and guides are bookable.
type ListingRef struct {
	Type string `bson:"type" json:"type"` // "homestay" | "guide"
	ID   string `bson:"id" json:"id"`
}

// Guests holds the party size. Total is derived from adults+children when
// not explicitly supplied.
type Guests struct {
	Adults   int `bson:"adults" json:"adults" binding:"required,min=1"`
	Children int `bson:"children" json:"children" binding:"min=0"`
	Total    int `bson:"total" json:"total" binding:"omitempty,min=1"`
}

// GuestDetails holds the contact information for the reservation.
type GuestDetails struct {
	Name  string `bson:"name" json:"name" binding:"required"`
	Email string `bson:"email" json:"email" binding:"required,email"`
	Phone string `bson:"phone" json:"phone" binding:"required"`
}

// Pricing holds the booking price breakdown.
type Pricing struct {
	BasePrice  float64 `bson:"base_price" json:"base_price"`
	ServiceFee float64 `bson:"service_fee" json:"service_fee"`
	Tax        float64 `bson:"tax" json:"tax"`
	Total      float64 `bson:"total" json:"total"`
}

// Booking is a reservation record.
type Booking struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BookingNumber string             `bson:"booking_number" json:"booking_number"`
	UserID        string             `bson:"user_id" json:"user_id"`
	Listing       ListingRef         `bson:"listing" json:"listing"`
	CheckIn       time.Time          `bson:"check_in" json:"check_in"`
	CheckOut      time.Time          `bson:"check_out" json:"check_out"`
	Nights        int                `bson:"nights" json:"nights"`
	Guests        Guests             `bson:"guests" json:"guests"`
	GuestDetails  GuestDetails       `bson:"guest_details" json:"guest_details"`
	Pricing       Pricing            `bson:"pricing" json:"pricing"`
	Status        BookingStatus      `bson:"status" json:"status"`
	PaymentStatus PaymentStatus      `bson:"payment_status" json:"payment_status"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// millisPerNight is one day in milliseconds, the divisor for night counts.
const millisPerNight = 24 * 60 * 60 * 1000

// ApplyDerivedFields fills nights and guests.total when absent. It runs once
// per write, immediately before the record is committed. Values supplied by
// the caller are never overwritten.
func (b *Booking) ApplyDerivedFields() {
	if b.Nights == 0 && !b.CheckIn.IsZero() && !b.CheckOut.IsZero() {
		ms := b.CheckOut.Sub(b.CheckIn).Milliseconds()
		b.Nights = int(math.Ceil(float64(ms) / float64(millisPerNight)))
	}
	if b.Guests.Total == 0 {
		b.Guests.Total = b.Guests.Adults + b.Guests.Children
	}
}

// CreateBookingRequest represents a create booking request.
type CreateBookingRequest struct {
	ListingType  string       `json:"listing_type" binding:"required,oneof=homestay guide"`
	ListingID    string       `json:"listing_id" binding:"required"`
	CheckIn      time.Time    `json:"check_in" binding:"required"`
	CheckOut     time.Time    `json:"check_out" binding:"required,gtfield=CheckIn"`
	Nights       int          `json:"nights" binding:"omitempty,min=1"`
	Guests       Guests       `json:"guests"`
	GuestDetails GuestDetails `json:"guest_details"`
}

// UpdatePaymentRequest represents a payment status update request.
type UpdatePaymentRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required,oneof=pending completed refunded failed"`
}

// BookingResponse represents a booking in API responses. The booking number
// is the public identifier; the storage ID is not exposed.
type BookingResponse struct {
	BookingNumber string        `json:"booking_number"`
	UserID        string        `json:"user_id"`
	Listing       ListingRef    `json:"listing"`
	CheckIn       time.Time     `json:"check_in"`
	CheckOut      time.Time     `json:"check_out"`
	Nights        int           `json:"nights"`
	Guests        Guests        `json:"guests"`
	GuestDetails  GuestDetails  `json:"guest_details"`
	Pricing       Pricing       `json:"pricing"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// ListBookingsResponse represents a paginated list response.
type ListBookingsResponse struct {
	Bookings   []BookingResponse   `json:"bookings"`
	Pagination response.Pagination `json:"pagination"`
}

// ToResponse converts a Booking to BookingResponse.
func (b *Booking) ToResponse() BookingResponse {
	return BookingResponse{
		BookingNumber: b.BookingNumber,
		UserID:        b.UserID,
		Listing:       b.Listing,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		Nights:        b.Nights,
		Guests:        b.Guests,
		GuestDetails:  b.GuestDetails,
		Pricing:       b.Pricing,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
