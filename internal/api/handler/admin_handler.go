package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
	"github.com/mentorhub/mentorship-api/internal/core/ports"
)

// AdminHandler exposes the administrator surface: the mentor approval
// workflow plus oversight listings for bookings and subscriptions.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type mentorApplicationResponse struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	MentorStatus string   `json:"mentor_status"`
	Headline     string   `json:"headline,omitempty"`
	Skills       []string `json:"skills,omitempty"`
}

type listApplicationsResponse struct {
	Items      []*mentorApplicationResponse `json:"items"`
	Total      int64                        `json:"total"`
	Page       int                          `json:"page"`
	Limit      int                          `json:"limit"`
	TotalPages int                          `json:"total_pages"`
}

type subscriptionResponse struct {
	ID            string    `json:"id"`
	MentorID      string    `json:"mentor_id"`
	Plan          string    `json:"plan"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
}

type listSubscriptionsResponse struct {
	Items      []*subscriptionResponse `json:"items"`
	Total      int64                   `json:"total"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
	TotalPages int                     `json:"total_pages"`
}

// ListApplications returns mentor applications, pending ones by default.
//
// @Summary      List mentor applications
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Mentor status filter (pending, approved, rejected)"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  listApplicationsResponse
// @Failure      403     {object}  map[string]string
// @Router       /v1/admin/mentors [get]
func (h *AdminHandler) ListApplications(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListMentorApplications(c.Request().Context(), ports.MentorFilter{
		Status: domain.MentorStatus(c.QueryParam("status")),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	items := make([]*mentorApplicationResponse, 0, len(result.Items))
	for _, u := range result.Items {
		items = append(items, &mentorApplicationResponse{
			ID:           u.ID,
			Email:        u.Email,
			Name:         u.Name,
			MentorStatus: string(u.MentorStatus),
			Headline:     u.Headline,
			Skills:       u.Skills,
		})
	}
	return c.JSON(http.StatusOK, listApplicationsResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// ApproveMentor approves a pending mentor application.
//
// @Summary      Approve a mentor application
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Mentor id"
// @Success      204  "approved"
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/mentors/{id}/approve [post]
func (h *AdminHandler) ApproveMentor(c echo.Context) error {
	if err := h.service.ApproveMentor(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RejectMentor rejects a pending mentor application.
//
// @Summary      Reject a mentor application
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Mentor id"
// @Success      204  "rejected"
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/mentors/{id}/reject [post]
func (h *AdminHandler) RejectMentor(c echo.Context) error {
	if err := h.service.RejectMentor(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListBookings returns bookings across the whole marketplace.
//
// @Summary      List all bookings
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        mentor_id  query     string  false  "Scope to one mentor"
// @Param        mentee_id  query     string  false  "Scope to one mentee"
// @Param        status     query     string  false  "Booking status filter"
// @Param        page       query     int     false  "Page (1-based)"
// @Param        limit      query     int     false  "Page size"
// @Success      200        {object}  listBookingsResponse
// @Failure      403        {object}  map[string]string
// @Router       /v1/admin/bookings [get]
func (h *AdminHandler) ListBookings(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListBookings(c.Request().Context(), ports.ListBookingsFilter{
		MentorID: c.QueryParam("mentor_id"),
		MenteeID: c.QueryParam("mentee_id"),
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

// ListSubscriptions returns mentor platform subscriptions.
//
// @Summary      List subscriptions
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        mentor_id  query     string  false  "Scope to one mentor"
// @Param        status     query     string  false  "Subscription status filter"
// @Param        page       query     int     false  "Page (1-based)"
// @Param        limit      query     int     false  "Page size"
// @Success      200        {object}  listSubscriptionsResponse
// @Failure      403        {object}  map[string]string
// @Router       /v1/admin/subscriptions [get]
func (h *AdminHandler) ListSubscriptions(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListSubscriptions(c.Request().Context(), ports.ListSubscriptionsFilter{
		MentorID: c.QueryParam("mentor_id"),
		Status:   c.QueryParam("status"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	items := make([]*subscriptionResponse, 0, len(result.Items))
	for _, s := range result.Items {
		items = append(items, &subscriptionResponse{
			ID:            s.ID,
			MentorID:      s.MentorID,
			Plan:          s.Plan,
			Status:        string(s.Status),
			PaymentStatus: string(s.PaymentStatus),
			CreatedAt:     s.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, listSubscriptionsResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}
