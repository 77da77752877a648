package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
	"github.com/mentorhub/mentorship-api/internal/core/ports"
)

// MentorHandler exposes the public mentor discovery surface. Only approved
// mentors are visible here.
type MentorHandler struct {
	directory ports.MentorDirectory
}

func NewMentorHandler(directory ports.MentorDirectory) *MentorHandler {
	return &MentorHandler{directory: directory}
}

type mentorResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Headline string   `json:"headline,omitempty"`
	Bio      string   `json:"bio,omitempty"`
	Skills   []string `json:"skills,omitempty"`
}

type listMentorsResponse struct {
	Items      []*mentorResponse `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

func toMentorResponse(u *domain.User) *mentorResponse {
	return &mentorResponse{
		ID:       u.ID,
		Name:     u.Name,
		Headline: u.Headline,
		Bio:      u.Bio,
		Skills:   u.Skills,
	}
}

// List returns approved mentors matching the given filters.
//
// @Summary      List mentors
// @Tags         mentors
// @Produce      json
// @Param        skill   query     string  false  "Exact skill match"
// @Param        search  query     string  false  "Partial match on name or headline"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  listMentorsResponse
// @Router       /v1/mentors [get]
func (h *MentorHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.directory.ListMentors(c.Request().Context(), ports.MentorFilter{
		Skill:  c.QueryParam("skill"),
		Search: c.QueryParam("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	items := make([]*mentorResponse, 0, len(result.Items))
	for _, m := range result.Items {
		items = append(items, toMentorResponse(m))
	}
	return c.JSON(http.StatusOK, listMentorsResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Get returns one approved mentor's public profile.
//
// @Summary      Get a mentor
// @Tags         mentors
// @Produce      json
// @Param        id   path      string  true  "Mentor id"
// @Success      200  {object}  mentorResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/mentors/{id} [get]
func (h *MentorHandler) Get(c echo.Context) error {
	mentor, err := h.directory.GetMentor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMentorResponse(mentor))
}
