package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
	"github.com/mentorhub/mentorship-api/internal/core/ports"
)

// OfferingHandler handles HTTP requests for mentorship offerings.
type OfferingHandler struct {
	service ports.OfferingService
}

func NewOfferingHandler(service ports.OfferingService) *OfferingHandler {
	return &OfferingHandler{service: service}
}

type offeringRequest struct {
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description"`
	Skills          []string `json:"skills"`
	Price           float64  `json:"price" validate:"gt=0"`
	Currency        string   `json:"currency" validate:"required"`
	DurationMinutes int      `json:"duration_minutes" validate:"gt=0"`
	Capacity        int      `json:"capacity" validate:"gt=0"`
	Active          bool     `json:"active"`
}

type offeringResponse struct {
	ID              string   `json:"id"`
	MentorID        string   `json:"mentor_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	Price           float64  `json:"price"`
	Currency        string   `json:"currency"`
	DurationMinutes int      `json:"duration_minutes"`
	Capacity        int      `json:"capacity"`
	Active          bool     `json:"active"`
}

type listOfferingsResponse struct {
	Items      []*offeringResponse `json:"items"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
}

func toOfferingResponse(o *domain.Offering) *offeringResponse {
	return &offeringResponse{
		ID:              o.ID,
		MentorID:        o.MentorID,
		Title:           o.Title,
		Description:     o.Description,
		Skills:          o.Skills,
		Price:           o.Price,
		Currency:        o.Currency,
		DurationMinutes: o.DurationMinutes,
		Capacity:        o.Capacity,
		Active:          o.Active,
	}
}

func (h *OfferingHandler) toInput(req offeringRequest) ports.OfferingInput {
	return ports.OfferingInput{
		Title:           req.Title,
		Description:     req.Description,
		Skills:          req.Skills,
		Price:           req.Price,
		Currency:        req.Currency,
		DurationMinutes: req.DurationMinutes,
		Capacity:        req.Capacity,
		Active:          req.Active,
	}
}

// Create publishes a new offering for the calling approved mentor.
//
// @Summary      Create an offering
// @Tags         offerings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      offeringRequest  true  "Offering details"
// @Success      201   {object}  offeringResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/offerings [post]
func (h *OfferingHandler) Create(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req offeringRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	offering, err := h.service.Create(c.Request().Context(), userID, h.toInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toOfferingResponse(offering))
}

// Update edits one of the calling mentor's offerings.
//
// @Summary      Update an offering
// @Tags         offerings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Offering id"
// @Param        body  body      offeringRequest  true  "Offering details"
// @Success      200   {object}  offeringResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/offerings/{id} [put]
func (h *OfferingHandler) Update(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req offeringRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	offering, err := h.service.Update(c.Request().Context(), c.Param("id"), userID, h.toInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOfferingResponse(offering))
}

// Get returns one offering.
//
// @Summary      Get an offering
// @Tags         offerings
// @Produce      json
// @Param        id   path      string  true  "Offering id"
// @Success      200  {object}  offeringResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/offerings/{id} [get]
func (h *OfferingHandler) Get(c echo.Context) error {
	offering, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOfferingResponse(offering))
}

// List returns active offerings, optionally filtered by mentor or skill.
//
// @Summary      List offerings
// @Tags         offerings
// @Produce      json
// @Param        mentor_id  query     string  false  "Scope to one mentor"
// @Param        skill      query     string  false  "Exact skill match"
// @Param        page       query     int     false  "Page (1-based)"
// @Param        limit      query     int     false  "Page size"
// @Success      200        {object}  listOfferingsResponse
// @Router       /v1/offerings [get]
func (h *OfferingHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListOfferingsFilter{
		MentorID:   c.QueryParam("mentor_id"),
		Skill:      c.QueryParam("skill"),
		ActiveOnly: true,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return err
	}

	items := make([]*offeringResponse, 0, len(result.Items))
	for _, o := range result.Items {
		items = append(items, toOfferingResponse(o))
	}
	return c.JSON(http.StatusOK, listOfferingsResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}
