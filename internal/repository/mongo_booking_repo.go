package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/internal/domain"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/pkg/log"
)

type mongoBookingRepository struct {
	col *mongo.Collection
}

// NewMongoBookingRepository creates a MongoDB-backed booking repository.
func NewMongoBookingRepository(db *mongo.Database) BookingRepository {
	return &mongoBookingRepository{col: db.Collection("bookings")}
}

// Create inserts a new booking. The unique index on booking_number turns
// nanoid collisions into ErrDuplicateBookingNumber so the caller can retry
// with a fresh number.
func (r *mongoBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	l := log.Ctx(ctx)

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateBookingNumber
		}
		l.Error().Err(err).Msg("failed to create booking in db")
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid
	}
	l.Debug().Str(log.FieldBookingNumber, booking.BookingNumber).Msg("booking created in db")
	return nil
}

// GetByNumber retrieves a booking by its booking number, scoped to the owner.
func (r *mongoBookingRepository) GetByNumber(ctx context.Context, bookingNumber, userID string) (*domain.Booking, error) {
	l := log.Ctx(ctx)
	filter := bson.M{"booking_number": bookingNumber, "user_id": userID}

	var booking domain.Booking
	if err := r.col.FindOne(ctx, filter).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookingNotFound
		}
		l.Error().Err(err).Str(log.FieldBookingNumber, bookingNumber).Msg("failed to get booking by number")
		return nil, fmt.Errorf("failed to get booking by number: %w", err)
	}
	return &booking, nil
}

// ListByUser retrieves a user's bookings, newest first, with the total count.
func (r *mongoBookingRepository) ListByUser(ctx context.Context, userID string, skip, limit int64) ([]domain.Booking, int64, error) {
	l := log.Ctx(ctx)
	filter := bson.M{"user_id": userID}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to count bookings")
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.M{"created_at": -1})

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to list bookings")
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	var bookings []domain.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		l.Error().Err(err).Msg("failed to decode bookings")
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, total, nil
}

// ListRecent retrieves bookings across all users, newest first, with the
// total count. Used by the operations view.
func (r *mongoBookingRepository) ListRecent(ctx context.Context, skip, limit int64) ([]domain.Booking, int64, error) {
	l := log.Ctx(ctx)

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		l.Error().Err(err).Msg("failed to count bookings")
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.M{"created_at": -1})

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		l.Error().Err(err).Msg("failed to list recent bookings")
		return nil, 0, fmt.Errorf("failed to list recent bookings: %w", err)
	}

	var bookings []domain.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		l.Error().Err(err).Msg("failed to decode bookings")
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, total, nil
}

// UpdateStatus atomically moves a booking to a new status, matching only when
// the current status is one of from. A zero match count means the booking is
// missing or no longer in an allowed state.
func (r *mongoBookingRepository) UpdateStatus(ctx context.Context, bookingNumber, userID string, from []domain.BookingStatus, to domain.BookingStatus) error {
	l := log.Ctx(ctx)

	filter := bson.M{
		"booking_number": bookingNumber,
		"user_id":        userID,
		"status":         bson.M{"$in": from},
	}
	update := bson.M{"$set": bson.M{
		"status":     to,
		"updated_at": time.Now(),
	}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		l.Error().Err(err).Str(log.FieldBookingNumber, bookingNumber).Msg("failed to update booking status")
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrBookingConflict
	}
	l.Debug().Str(log.FieldBookingNumber, bookingNumber).Str("status", string(to)).Msg("booking status updated in db")
	return nil
}

// UpdatePaymentStatus atomically moves a booking's payment status, matching
// only when the current payment status equals from.
func (r *mongoBookingRepository) UpdatePaymentStatus(ctx context.Context, bookingNumber, userID string, from domain.PaymentStatus, to domain.PaymentStatus) error {
	l := log.Ctx(ctx)

	filter := bson.M{
		"booking_number": bookingNumber,
		"user_id":        userID,
		"payment_status": from,
	}
	update := bson.M{"$set": bson.M{
		"payment_status": to,
		"updated_at":     time.Now(),
	}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		l.Error().Err(err).Str(log.FieldBookingNumber, bookingNumber).Msg("failed to update payment status")
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrBookingConflict
	}
	l.Debug().Str(log.FieldBookingNumber, bookingNumber).Str("payment_status", string(to)).Msg("booking payment status updated in db")
	return nil
}
