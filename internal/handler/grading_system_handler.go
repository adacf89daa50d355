package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupoint/scoring-api/internal/models"
	"github.com/edupoint/scoring-api/internal/service"
	appErrors "github.com/edupoint/scoring-api/pkg/errors"
	"github.com/edupoint/scoring-api/pkg/response"
)

// GradingSystemHandler exposes grading catalog endpoints.
type GradingSystemHandler struct {
	systems *service.GradingSystemService
}

// NewGradingSystemHandler constructs handler.
func NewGradingSystemHandler(systems *service.GradingSystemService) *GradingSystemHandler {
	return &GradingSystemHandler{systems: systems}
}

// List godoc
// @Summary List grading systems
// @Tags Grading Systems
// @Produce json
// @Param active query bool false "Filter by active flag"
// @Success 200 {object} response.Envelope
// @Router /grading-systems [get]
func (h *GradingSystemHandler) List(c *gin.Context) {
	filter := models.GradingSystemFilter{}
	if raw, ok := c.GetQuery("active"); ok {
		active := raw == "true"
		filter.Active = &active
	}
	systems, err := h.systems.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, systems, nil)
}

// Get godoc
// @Summary Get grading system
// @Tags Grading Systems
// @Produce json
// @Param id path string true "Grading system ID"
// @Success 200 {object} response.Envelope
// @Router /grading-systems/{id} [get]
func (h *GradingSystemHandler) Get(c *gin.Context) {
	system, err := h.systems.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, system, nil)
}

// Create godoc
// @Summary Create grading system
// @Tags Grading Systems
// @Accept json
// @Produce json
// @Param payload body service.SaveGradingSystemRequest true "Grading system payload"
// @Success 201 {object} response.Envelope
// @Router /grading-systems [post]
func (h *GradingSystemHandler) Create(c *gin.Context) {
	var req service.SaveGradingSystemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	system, err := h.systems.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, system)
}

// Update godoc
// @Summary Update grading system
// @Tags Grading Systems
// @Accept json
// @Produce json
// @Param id path string true "Grading system ID"
// @Param payload body service.SaveGradingSystemRequest true "Grading system payload"
// @Success 200 {object} response.Envelope
// @Router /grading-systems/{id} [put]
func (h *GradingSystemHandler) Update(c *gin.Context) {
	var req service.SaveGradingSystemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	system, err := h.systems.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, system, nil)
}

// Deactivate godoc
// @Summary Deactivate grading system
// @Tags Grading Systems
// @Produce json
// @Param id path string true "Grading system ID"
// @Success 204
// @Router /grading-systems/{id} [delete]
func (h *GradingSystemHandler) Deactivate(c *gin.Context) {
	if err := h.systems.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	response.NoContent(c)
}
