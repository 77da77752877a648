package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
	"github.com/mentorhub/mentorship-api/internal/core/ports"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

type createBookingRequest struct {
	OfferingID string    `json:"offering_id" validate:"required"`
	SlotStart  time.Time `json:"slot_start" validate:"required"`
}

type bookingResponse struct {
	ID            string    `json:"id"`
	OfferingID    string    `json:"offering_id"`
	MentorID      string    `json:"mentor_id"`
	MenteeID      string    `json:"mentee_id"`
	SlotStart     time.Time `json:"slot_start"`
	SlotEnd       time.Time `json:"slot_end"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	PaymentID     string    `json:"payment_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type listBookingsResponse struct {
	Items      []*bookingResponse `json:"items"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

func toBookingResponse(b *domain.Booking) *bookingResponse {
	return &bookingResponse{
		ID:            b.ID,
		OfferingID:    b.OfferingID,
		MentorID:      b.MentorID,
		MenteeID:      b.MenteeID,
		SlotStart:     b.SlotStart,
		SlotEnd:       b.SlotEnd,
		Amount:        b.Amount,
		Currency:      b.Currency,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		PaymentID:     b.PaymentID,
		CreatedAt:     b.CreatedAt,
	}
}

// Create reserves a slot on an offering for the calling mentee.
//
// @Summary      Create a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookingRequest  true  "Booking details"
// @Success      201   {object}  bookingResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.service.Create(c.Request().Context(), ports.CreateBookingInput{
		OfferingID: req.OfferingID,
		MenteeID:   userID,
		SlotStart:  req.SlotStart,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toBookingResponse(booking))
}

// Get returns one booking. Only the booking's mentee, its mentor, or an
// admin may see it; others get 404.
//
// @Summary      Get a booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  bookingResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/bookings/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	booking, err := h.service.Get(c.Request().Context(), c.Param("id"), userID, ctxRole(c) == domain.RoleAdmin)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toBookingResponse(booking))
}

// Cancel cancels a pending or confirmed booking.
//
// @Summary      Cancel a booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      204  "canceled"
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/bookings/{id} [delete]
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Cancel(c.Request().Context(), c.Param("id"), userID, ctxRole(c) == domain.RoleAdmin); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// List returns the caller's bookings, scoped by effective role: mentees see
// bookings they placed, mentors see bookings against their offerings.
//
// @Summary      List bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by booking status"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  listBookingsResponse
// @Router       /v1/bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListBookingsInput{
		CallerID: userID,
		Role:     ctxRole(c),
		Status:   c.QueryParam("status"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	items := make([]*bookingResponse, 0, len(result.Items))
	for _, b := range result.Items {
		items = append(items, toBookingResponse(b))
	}
	return c.JSON(http.StatusOK, listBookingsResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}
