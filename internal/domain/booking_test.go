package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestApplyDerivedFields_Nights(t *testing.T) {
	b := &Booking{
		CheckIn:  date("2024-01-01"),
		CheckOut: date("2024-01-04"),
		Guests:   Guests{Adults: 1},
	}

	b.ApplyDerivedFields()

	assert.Equal(t, 3, b.Nights)
}

func TestApplyDerivedFields_NightsRoundsUp(t *testing.T) {
	checkIn := time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 3, 11, 11, 0, 0, 0, time.UTC) // 21 hours

	b := &Booking{CheckIn: checkIn, CheckOut: checkOut, Guests: Guests{Adults: 2}}
	b.ApplyDerivedFields()

	assert.Equal(t, 1, b.Nights)

	b = &Booking{
		CheckIn:  time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2024, 3, 13, 18, 0, 0, 0, time.UTC), // 3 days 6 hours
		Guests:   Guests{Adults: 2},
	}
	b.ApplyDerivedFields()

	assert.Equal(t, 4, b.Nights)
}

func TestApplyDerivedFields_SuppliedNightsPreserved(t *testing.T) {
	b := &Booking{
		CheckIn:  date("2024-01-01"),
		CheckOut: date("2024-01-04"),
		Nights:   7,
		Guests:   Guests{Adults: 1},
	}

	b.ApplyDerivedFields()

	assert.Equal(t, 7, b.Nights)
}

func TestApplyDerivedFields_NightsSkippedWithoutDates(t *testing.T) {
	b := &Booking{CheckIn: date("2024-01-01"), Guests: Guests{Adults: 1}}
	b.ApplyDerivedFields()
	assert.Equal(t, 0, b.Nights)

	b = &Booking{CheckOut: date("2024-01-04"), Guests: Guests{Adults: 1}}
	b.ApplyDerivedFields()
	assert.Equal(t, 0, b.Nights)
}

func TestApplyDerivedFields_GuestTotal(t *testing.T) {
	b := &Booking{Guests: Guests{Adults: 2}}
	b.ApplyDerivedFields()
	assert.Equal(t, 2, b.Guests.Total)

	b = &Booking{Guests: Guests{Adults: 2, Children: 3}}
	b.ApplyDerivedFields()
	assert.Equal(t, 5, b.Guests.Total)
}

func TestApplyDerivedFields_SuppliedTotalPreserved(t *testing.T) {
	b := &Booking{Guests: Guests{Adults: 2, Children: 3, Total: 4}}
	b.ApplyDerivedFields()
	assert.Equal(t, 4, b.Guests.Total)
}

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusPending, BookingStatusCompleted, false},
		{BookingStatusConfirmed, BookingStatusCompleted, true},
		{BookingStatusConfirmed, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusPending, false},
		{BookingStatusCancelled, BookingStatusConfirmed, false},
		{BookingStatusCancelled, BookingStatusPending, false},
		{BookingStatusCompleted, BookingStatusCancelled, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestPaymentStatusTransitions(t *testing.T) {
	cases := []struct {
		from    PaymentStatus
		to      PaymentStatus
		allowed bool
	}{
		{PaymentStatusPending, PaymentStatusCompleted, true},
		{PaymentStatusPending, PaymentStatusFailed, true},
		{PaymentStatusPending, PaymentStatusRefunded, false},
		{PaymentStatusCompleted, PaymentStatusRefunded, true},
		{PaymentStatusCompleted, PaymentStatusPending, false},
		{PaymentStatusFailed, PaymentStatusCompleted, true},
		{PaymentStatusFailed, PaymentStatusRefunded, false},
		{PaymentStatusRefunded, PaymentStatusPending, false},
		{PaymentStatusRefunded, PaymentStatusCompleted, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}
