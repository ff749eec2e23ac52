package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/internal/domain"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/internal/service"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/pkg/log"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/pkg/middleware"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/pkg/response"
)

// Handler handles HTTP requests for the tourism backend.
type Handler struct {
	searchService  service.SearchService
	bookingService service.BookingService
	authMiddleware *middleware.AuthMiddleware
}

// NewHandler creates a new HTTP handler.
func NewHandler(searchService service.SearchService, bookingService service.BookingService, authMiddleware *middleware.AuthMiddleware) *Handler {
	return &Handler{
		searchService:  searchService,
		bookingService: bookingService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/search", h.Search)
		api.GET("/search/autocomplete", h.Autocomplete)

		bookings := api.Group("/bookings", h.authMiddleware.RequireAuth())
		{
			bookings.POST("", h.CreateBooking)
			bookings.GET("", h.ListBookings)
			bookings.GET("/:number", h.GetBooking)
			bookings.POST("/:number/confirm", h.ConfirmBooking)
			bookings.POST("/:number/cancel", h.CancelBooking)
			bookings.POST("/:number/complete", h.CompleteBooking)
			bookings.PATCH("/:number/payment", h.UpdatePayment)
		}

		admin := api.Group("/admin", h.authMiddleware.RequireAuth(), h.authMiddleware.RequireRole(middleware.RoleAdmin))
		{
			admin.GET("/bookings", h.AdminListBookings)
		}
	}
}

// queryInt parses an integer query parameter. Missing or malformed values
// come back as zero so pagination falls through to its defaults.
func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}

// Search handles unified search across homestays, guides and products.
// Page and limit are parsed leniently: anything that is not a number means
// "use the default" rather than a rejected request.
func (h *Handler) Search(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	req := domain.SearchRequest{
		Query: c.Query("q"),
		Type:  c.Query("type"),
		Page:  queryInt(c, "page"),
		Limit: queryInt(c, "limit"),
	}

	result, err := h.searchService.Search(ctx, &req)
	if err != nil {
		if errors.Is(err, service.ErrQueryTooShort) {
			response.ValidationFailed(c, "invalid search query", map[string]string{
				"q": "must be at least 2 characters",
			})
			return
		}
		l.Error().Err(err).Str(log.FieldQuery, req.Query).Str(log.FieldTypeFilter, req.Type).Msg("search failed")
		response.InternalError(c, "search failed")
		return
	}

	response.Success(c, result)
}

// Autocomplete handles search suggestions.
func (h *Handler) Autocomplete(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	term := c.Query("q")

	suggestions, err := h.searchService.Autocomplete(ctx, term)
	if err != nil {
		if errors.Is(err, service.ErrQueryTooShort) {
			response.ValidationFailed(c, "invalid search query", map[string]string{
				"q": "must be at least 2 characters",
			})
			return
		}
		l.Error().Err(err).Str(log.FieldQuery, term).Msg("autocomplete failed")
		response.InternalError(c, "autocomplete failed")
		return
	}

	response.Success(c, domain.AutocompleteResponse{Suggestions: suggestions})
}

// CreateBooking creates a new booking for the authenticated user.
func (h *Handler) CreateBooking(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	if userID == "" {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req domain.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind create booking request")
		response.BadRequest(c, err.Error())
		return
	}

	booking, err := h.bookingService.Create(ctx, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListingNotFound):
			response.NotFound(c, "listing not found")
		case errors.Is(err, service.ErrInvalidListingType):
			response.BadRequest(c, "invalid listing type")
		case errors.Is(err, service.ErrListingNotBookable):
			response.Conflict(c, "listing is not bookable")
		default:
			l.Error().Err(err).Str(log.FieldListingType, req.ListingType).Msg("failed to create booking")
			response.InternalError(c, "failed to create booking")
		}
		return
	}

	response.Created(c, booking)
}

// GetBooking retrieves one of the user's bookings by booking number.
func (h *Handler) GetBooking(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	if userID == "" {
		response.Unauthorized(c, "unauthorized")
		return
	}

	bookingNumber := c.Param("number")

	booking, err := h.bookingService.GetByNumber(ctx, userID, bookingNumber)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			response.NotFound(c, "booking not found")
			return
		}
		l.Error().Err(err).Str(log.FieldBookingNumber, bookingNumber).Msg("failed to get booking")
		response.InternalError(c, "failed to get booking")
		return
	}

	response.Success(c, booking)
}

// ListBookings lists the user's bookings with pagination.
func (h *Handler) ListBookings(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	if userID == "" {
		response.Unauthorized(c, "unauthorized")
		return
	}

	result, err := h.bookingService.ListByUser(ctx, userID, queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		l.Error().Err(err).Msg("failed to list bookings")
		response.InternalError(c, "failed to list bookings")
		return
	}

	response.Success(c, result)
}

// AdminListBookings lists recent bookings across all users. Admin only.
func (h *Handler) AdminListBookings(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	result, err := h.bookingService.ListRecent(ctx, queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		l.Error().Err(err).Msg("failed to list recent bookings")
		response.InternalError(c, "failed to list recent bookings")
		return
	}

	response.Success(c, result)
}

// ConfirmBooking confirms a pending booking.
func (h *Handler) ConfirmBooking(c *gin.Context) {
	h.transition(c, h.bookingService.Confirm, "failed to confirm booking")
}

// CancelBooking cancels a pending or confirmed booking.
func (h *Handler) CancelBooking(c *gin.Context) {
	h.transition(c, h.bookingService.Cancel, "failed to cancel booking")
}

// CompleteBooking completes a confirmed booking.
func (h *Handler) CompleteBooking(c *gin.Context) {
	h.transition(c, h.bookingService.Complete, "failed to complete booking")
}

// transition runs a status-changing operation and maps its errors.
func (h *Handler) transition(c *gin.Context, op func(ctx context.Context, userID, bookingNumber string) (*domain.BookingResponse, error), failMsg string) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	if userID == "" {
		response.Unauthorized(c, "unauthorized")
		return
	}

	bookingNumber := c.Param("number")

	booking, err := op(ctx, userID, bookingNumber)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			response.NotFound(c, "booking not found")
		case errors.Is(err, service.ErrInvalidStatusTransition):
			response.Conflict(c, "invalid booking status transition")
		default:
			l.Error().Err(err).Str(log.FieldBookingNumber, bookingNumber).Msg(failMsg)
			response.InternalError(c, failMsg)
		}
		return
	}

	response.Success(c, booking)
}

// UpdatePayment updates the payment status of a booking.
func (h *Handler) UpdatePayment(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	if userID == "" {
		response.Unauthorized(c, "unauthorized")
		return
	}

	bookingNumber := c.Param("number")

	var req domain.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind payment update request")
		response.BadRequest(c, err.Error())
		return
	}

	booking, err := h.bookingService.UpdatePayment(ctx, userID, bookingNumber, domain.PaymentStatus(req.PaymentStatus))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			response.NotFound(c, "booking not found")
		case errors.Is(err, service.ErrInvalidPaymentTransition):
			response.Conflict(c, "invalid payment status transition")
		default:
			l.Error().Err(err).Str(log.FieldBookingNumber, bookingNumber).Msg("failed to update payment status")
			response.InternalError(c, "failed to update payment status")
		}
		return
	}

	response.Success(c, booking)
}
