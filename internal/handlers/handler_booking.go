package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/courier_ledger/internal/core/ports/services"
	"github.com/SscSPs/courier_ledger/internal/dto"
	"github.com/SscSPs/courier_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bookingHandler handles HTTP requests related to bookings and their payments.
type bookingHandler struct {
	bookingService portssvc.BookingSvcFacade
}

// newBookingHandler creates a new bookingHandler.
func newBookingHandler(bs portssvc.BookingSvcFacade) *bookingHandler {
	return &bookingHandler{
		bookingService: bs,
	}
}

// registerBookingRoutes registers routes related to bookings.
func registerBookingRoutes(rg *gin.RouterGroup, bookingService portssvc.BookingSvcFacade) {
	h := newBookingHandler(bookingService)

	bookings := rg.Group("/bookings")
	{
		bookings.POST("", h.createBooking)
		bookings.GET("", h.listBookings)
		bookings.GET("/:bookingID", h.getBooking)
		bookings.PUT("/:bookingID", h.updateBooking)
		bookings.DELETE("/:bookingID", h.deleteBooking)
		bookings.POST("/:bookingID/payments", h.addBookingPayment)
		bookings.DELETE("/:bookingID/payments/:paymentID", h.deleteBookingPayment)
		bookings.PATCH("/:bookingID/delivery-status", h.updateDeliveryStatus)
	}
}

// createBooking godoc
// @Summary Create a booking
// @Description Costs the package lines, assigns the booking and LLR numbers and records an optional up-front payment
// @Tags bookings
// @Accept  json
// @Produce  json
// @Param   booking body dto.CreateBookingRequest true "Booking details"
// @Success 201 {object} dto.BookingResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown reference"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Booking or LLR number already in use"
// @Failure 500 {object} map[string]string "Failed to create booking"
// @Security BearerAuth
// @Router /bookings [post]
func (h *bookingHandler) createBooking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBooking", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("creator_user_id", creatorUserID))

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create booking")
		return
	}

	logger.Info("Booking created successfully", slog.String("booking_id", booking.BookingID))
	c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

// getBooking godoc
// @Summary Get a booking
// @Description Retrieves a booking with its package lines and payments
// @Tags bookings
// @Produce  json
// @Param   bookingID path string true "Booking ID"
// @Param   includeInactive query bool false "Include soft deleted records"
// @Success 200 {object} dto.BookingResponse
// @Failure 404 {object} map[string]string "Booking not found"
// @Failure 500 {object} map[string]string "Failed to retrieve booking"
// @Security BearerAuth
// @Router /bookings/{bookingID} [get]
func (h *bookingHandler) getBooking(c *gin.Context) {
	bookingID := c.Param("bookingID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("booking_id", bookingID))

	booking, err := h.bookingService.GetBooking(c.Request.Context(), bookingID, c.Query("includeInactive") == "true")
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve booking")
		return
	}
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// listBookings godoc
// @Summary List bookings
// @Description Lists bookings newest first, using token based pagination
// @Tags bookings
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Param   deliveryStatus query string false "Filter by delivery status"
// @Param   customerCode query string false "Filter by customer"
// @Param   includeInactive query bool false "Include soft deleted bookings"
// @Success 200 {object} dto.ListBookingsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list bookings"
// @Security BearerAuth
// @Router /bookings [get]
func (h *bookingHandler) listBookings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListBookingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListBookings", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.bookingService.ListBookings(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list bookings")
		return
	}

	logger.Info("Bookings listed successfully", slog.Int("count", len(resp.Bookings)))
	c.JSON(http.StatusOK, resp)
}

// updateBooking godoc
// @Summary Update a booking
// @Description Updates descriptive fields of a booking. Amounts and payments are not changed here.
// @Tags bookings
// @Accept  json
// @Produce  json
// @Param   bookingID path string true "Booking ID"
// @Param   booking body dto.UpdateBookingRequest true "Fields to change"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Booking not found"
// @Failure 409 {object} map[string]string "LLR number already in use"
// @Failure 500 {object} map[string]string "Failed to update booking"
// @Security BearerAuth
// @Router /bookings/{bookingID} [put]
func (h *bookingHandler) updateBooking(c *gin.Context) {
	bookingID := c.Param("bookingID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("booking_id", bookingID))
	var req dto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBooking", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	booking, err := h.bookingService.UpdateBooking(c.Request.Context(), bookingID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update booking")
		return
	}

	logger.Info("Booking updated successfully")
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// deleteBooking godoc
// @Summary Delete a booking
// @Description Soft deletes a booking that has no active payments
// @Tags bookings
// @Param   bookingID path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Booking not found"
// @Failure 409 {object} map[string]string "Booking has active payments"
// @Failure 500 {object} map[string]string "Failed to delete booking"
// @Security BearerAuth
// @Router /bookings/{bookingID} [delete]
func (h *bookingHandler) deleteBooking(c *gin.Context) {
	bookingID := c.Param("bookingID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("booking_id", bookingID))

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.bookingService.DeleteBooking(c.Request.Context(), bookingID, userID); err != nil {
		respondWithError(c, logger, err, "Failed to delete booking")
		return
	}

	logger.Info("Booking deleted successfully")
	c.Status(http.StatusNoContent)
}

// addBookingPayment godoc
// @Summary Record a booking payment
// @Description Records a payment and recomputes the paid, due and payment status of the booking
// @Tags bookings
// @Accept  json
// @Produce  json
// @Param   bookingID path string true "Booking ID"
// @Param   payment body dto.AddBookingPaymentRequest true "Payment details"
// @Success 201 {object} dto.BookingResponse
// @Failure 400 {object} map[string]string "Invalid input or amount above the due amount"
// @Failure 404 {object} map[string]string "Booking not found"
// @Failure 409 {object} map[string]string "Booking is already fully paid"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Security BearerAuth
// @Router /bookings/{bookingID}/payments [post]
func (h *bookingHandler) addBookingPayment(c *gin.Context) {
	bookingID := c.Param("bookingID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("booking_id", bookingID))
	var req dto.AddBookingPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddBookingPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	booking, err := h.bookingService.AddBookingPayment(c.Request.Context(), bookingID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record payment")
		return
	}

	logger.Info("Booking payment recorded", slog.String("payment_status", string(booking.PaymentStatus)))
	c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

// deleteBookingPayment godoc
// @Summary Delete a booking payment
// @Description Soft deletes a payment and recomputes the booking totals
// @Tags bookings
// @Produce  json
// @Param   bookingID path string true "Booking ID"
// @Param   paymentID path string true "Payment ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 404 {object} map[string]string "Booking or payment not found"
// @Failure 500 {object} map[string]string "Failed to delete payment"
// @Security BearerAuth
// @Router /bookings/{bookingID}/payments/{paymentID} [delete]
func (h *bookingHandler) deleteBookingPayment(c *gin.Context) {
	bookingID := c.Param("bookingID")
	paymentID := c.Param("paymentID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
		slog.String("booking_id", bookingID),
		slog.String("payment_id", paymentID))

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	booking, err := h.bookingService.DeleteBookingPayment(c.Request.Context(), bookingID, paymentID, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to delete payment")
		return
	}

	logger.Info("Booking payment deleted")
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// updateDeliveryStatus godoc
// @Summary Update delivery status
// @Description Moves a booking along its delivery path
// @Tags bookings
// @Accept  json
// @Produce  json
// @Param   bookingID path string true "Booking ID"
// @Param   status body dto.UpdateDeliveryStatusRequest true "New delivery status"
// @Success 200 {object} dto.DeliveryStatusResponse
// @Failure 400 {object} map[string]string "Unknown status or transition not allowed"
// @Failure 404 {object} map[string]string "Booking not found"
// @Failure 500 {object} map[string]string "Failed to update delivery status"
// @Security BearerAuth
// @Router /bookings/{bookingID}/delivery-status [patch]
func (h *bookingHandler) updateDeliveryStatus(c *gin.Context) {
	bookingID := c.Param("bookingID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("booking_id", bookingID))
	var req dto.UpdateDeliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateDeliveryStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	resp, err := h.bookingService.UpdateDeliveryStatus(c.Request.Context(), bookingID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update delivery status")
		return
	}
	c.JSON(http.StatusOK, resp)
}
