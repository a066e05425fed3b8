package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"alumnihub/internal/domain/entity"
	"alumnihub/internal/usecase"
	"alumnihub/pkg/response"
)

type PostingHandler struct {
	postingUseCase *usecase.PostingUseCase
}

func NewPostingHandler(postingUseCase *usecase.PostingUseCase) *PostingHandler {
	return &PostingHandler{
		postingUseCase: postingUseCase,
	}
}

type createJobRequest struct {
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Description string `json:"description"`
}

type createEventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" validate:"required"`
}

type reviewRequest struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
}

func (h *PostingHandler) CreateJob(c echo.Context) error {
	var req createJobRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	job, err := h.postingUseCase.CreateJob(c.Request().Context(), userID, usecase.CreateJobInput{
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, job)
}

func (h *PostingHandler) ListJobs(c echo.Context) error {
	role := c.Get("role").(entity.Role)

	jobs, err := h.postingUseCase.ListJobs(c.Request().Context(), role)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, jobs)
}

func (h *PostingHandler) ReviewJob(c echo.Context) error {
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	job, err := h.postingUseCase.ReviewJob(c.Request().Context(), c.Param("id"), req.Action)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, job)
}

func (h *PostingHandler) CreateEvent(c echo.Context) error {
	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	event, err := h.postingUseCase.CreateEvent(c.Request().Context(), userID, usecase.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, event)
}

func (h *PostingHandler) ListEvents(c echo.Context) error {
	role := c.Get("role").(entity.Role)

	events, err := h.postingUseCase.ListEvents(c.Request().Context(), role)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, events)
}

func (h *PostingHandler) ReviewEvent(c echo.Context) error {
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	event, err := h.postingUseCase.ReviewEvent(c.Request().Context(), c.Param("id"), req.Action)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, event)
}
