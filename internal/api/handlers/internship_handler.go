package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	pgrepo "github.com/yoockh/internhub/internal/repositories/postgres"
	"github.com/yoockh/internhub/internal/services"
	"github.com/yoockh/internhub/internal/utils"
)

type InternshipHandler struct {
	svc services.InternshipService
}

func NewInternshipHandler(svc services.InternshipService) *InternshipHandler {
	return &InternshipHandler{svc: svc}
}

type CreateInternshipRequest struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Duration    string `json:"duration"`
	Department  string `json:"department"`
}

func (h *InternshipHandler) Create(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req CreateInternshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InternshipHandler.Create", "invalid request body", err))
		return
	}

	rec, err := h.svc.Create(c.Request.Context(), caller, services.CreateInternshipInput{
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
		Location:    req.Location,
		Duration:    req.Duration,
		Department:  req.Department,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rec)
}

func (h *InternshipHandler) List(c *gin.Context) {
	views, err := h.svc.List(c.Request.Context(), pgrepo.InternshipFilter{
		Department: c.Query("department"),
		Company:    c.Query("company"),
		Duration:   c.Query("duration"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

func (h *InternshipHandler) Get(c *gin.Context) {
	view, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

type UpdateInternshipRequest struct {
	Title       *string `json:"title,omitempty"`
	Company     *string `json:"company,omitempty"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
	Duration    *string `json:"duration,omitempty"`
	Department  *string `json:"department,omitempty"`
}

func (h *InternshipHandler) Update(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req UpdateInternshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InternshipHandler.Update", "invalid request body", err))
		return
	}

	rec, err := h.svc.Update(c.Request.Context(), caller, c.Param("id"), services.UpdateInternshipInput{
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
		Location:    req.Location,
		Duration:    req.Duration,
		Department:  req.Department,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *InternshipHandler) Delete(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), caller, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "internship removed"})
}
