package log

// Shared structured-log field names. Handlers, services, and repositories
// use these so the same concept is always queryable under one key.
const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Actor (set by the auth middleware)
	FieldUserID = "user_id"

	// Service
	FieldService = "service"

	// Domain
	FieldBookingNumber = "booking_number"
	FieldListingType   = "listing_type"
	FieldQuery         = "query"
	FieldTypeFilter    = "type_filter"

	// Log type (for audit entries)
	FieldLogType = "log_type"
	LogTypeAudit = "audit"
)
