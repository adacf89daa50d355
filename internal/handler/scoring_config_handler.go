package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupoint/scoring-api/internal/models"
	"github.com/edupoint/scoring-api/internal/service"
	appErrors "github.com/edupoint/scoring-api/pkg/errors"
	"github.com/edupoint/scoring-api/pkg/response"
)

// ScoringConfigHandler exposes scoring configuration endpoints.
type ScoringConfigHandler struct {
	configs *service.ScoringConfigService
}

// NewScoringConfigHandler constructs handler.
func NewScoringConfigHandler(configs *service.ScoringConfigService) *ScoringConfigHandler {
	return &ScoringConfigHandler{configs: configs}
}

// List godoc
// @Summary List scoring configurations
// @Tags Scoring Configs
// @Produce json
// @Param educationLevel query string false "Filter by education level"
// @Param resultType query string false "Filter by result type"
// @Param active query bool false "Filter by active flag"
// @Success 200 {object} response.Envelope
// @Router /scoring-configs [get]
func (h *ScoringConfigHandler) List(c *gin.Context) {
	filter := models.ScoringConfigFilter{
		EducationLevel: models.EducationLevel(c.Query("educationLevel")),
		ResultType:     models.ResultType(c.Query("resultType")),
	}
	if raw, ok := c.GetQuery("active"); ok {
		active := raw == "true"
		filter.Active = &active
	}
	configs, err := h.configs.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, configs, nil)
}

// Get godoc
// @Summary Get scoring configuration
// @Tags Scoring Configs
// @Produce json
// @Param id path string true "Configuration ID"
// @Success 200 {object} response.Envelope
// @Router /scoring-configs/{id} [get]
func (h *ScoringConfigHandler) Get(c *gin.Context) {
	config, err := h.configs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, config, nil)
}

// GetDefault godoc
// @Summary Get default scoring configuration for an education level
// @Tags Scoring Configs
// @Produce json
// @Param level path string true "Education level"
// @Success 200 {object} response.Envelope
// @Router /scoring-configs/default/{level} [get]
func (h *ScoringConfigHandler) GetDefault(c *gin.Context) {
	config, err := h.configs.GetDefault(c.Request.Context(), models.EducationLevel(c.Param("level")))
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, config, nil)
}

// Validate godoc
// @Summary Validate a scoring configuration without saving it
// @Tags Scoring Configs
// @Accept json
// @Produce json
// @Param payload body service.SaveScoringConfigRequest true "Configuration payload"
// @Success 200 {object} response.Envelope
// @Router /scoring-configs/validate [post]
func (h *ScoringConfigHandler) Validate(c *gin.Context) {
	var req service.SaveScoringConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.configs.Validate(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Create godoc
// @Summary Create scoring configuration
// @Tags Scoring Configs
// @Accept json
// @Produce json
// @Param payload body service.SaveScoringConfigRequest true "Configuration payload"
// @Success 201 {object} response.Envelope
// @Router /scoring-configs [post]
func (h *ScoringConfigHandler) Create(c *gin.Context) {
	var req service.SaveScoringConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	config, err := h.configs.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, config)
}

// Update godoc
// @Summary Update scoring configuration
// @Tags Scoring Configs
// @Accept json
// @Produce json
// @Param id path string true "Configuration ID"
// @Param payload body service.SaveScoringConfigRequest true "Configuration payload"
// @Success 200 {object} response.Envelope
// @Router /scoring-configs/{id} [put]
func (h *ScoringConfigHandler) Update(c *gin.Context) {
	var req service.SaveScoringConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	config, err := h.configs.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, config, nil)
}

// Delete godoc
// @Summary Deactivate scoring configuration
// @Tags Scoring Configs
// @Produce json
// @Param id path string true "Configuration ID"
// @Success 204
// @Router /scoring-configs/{id} [delete]
func (h *ScoringConfigHandler) Delete(c *gin.Context) {
	if err := h.configs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	response.NoContent(c)
}
