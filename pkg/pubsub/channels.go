package pubsub

// Channel naming conventions for the tourism backend.
const (
	// ChannelBookingEvents carries booking lifecycle events consumed by
	// notification and analytics workers.
	ChannelBookingEvents = "booking:events"
)

// Event types published on the booking events channel.
const (
	EventBookingCreated        = "booking.created"
	EventBookingStatusChanged  = "booking.status_changed"
	EventBookingPaymentUpdated = "booking.payment_updated"
)

// BookingCreatedPayload is sent when a booking is created.
type BookingCreatedPayload struct {
	BookingNumber string  `json:"booking_number"`
	UserID        string  `json:"user_id"`
	ListingType   string  `json:"listing_type"`
	ListingID     string  `json:"listing_id"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
	TotalAmount   float64 `json:"total_amount"`
}

// BookingStatusChangedPayload is sent when a booking transitions state.
type BookingStatusChangedPayload struct {
	BookingNumber string `json:"booking_number"`
	UserID        string `json:"user_id"`
	FromStatus    string `json:"from_status"`
	ToStatus      string `json:"to_status"`
}

// BookingPaymentUpdatedPayload is sent when the payment status changes.
type BookingPaymentUpdatedPayload struct {
	BookingNumber string `json:"booking_number"`
	UserID        string `json:"user_id"`
	FromStatus    string `json:"from_status"`
	ToStatus      string `json:"to_status"`
}
