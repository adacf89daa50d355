package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupoint/scoring-api/internal/models"
	"github.com/edupoint/scoring-api/internal/service"
	appErrors "github.com/edupoint/scoring-api/pkg/errors"
	"github.com/edupoint/scoring-api/pkg/response"
)

// ResultHandler exposes score entry, workflow, ranking and session rollup
// endpoints.
type ResultHandler struct {
	results *service.ResultService
}

// NewResultHandler constructs handler.
func NewResultHandler(results *service.ResultService) *ResultHandler {
	return &ResultHandler{results: results}
}

type updateStatusRequest struct {
	Status models.ResultStatus `json:"status" binding:"required"`
}

type rankClassRequest struct {
	ClassID       string `json:"class_id" binding:"required"`
	SubjectID     string `json:"subject_id" binding:"required"`
	ExamSessionID string `json:"exam_session_id" binding:"required"`
}

type rankSessionRequest struct {
	ClassID           string `json:"class_id" binding:"required"`
	SubjectID         string `json:"subject_id" binding:"required"`
	AcademicSessionID string `json:"academic_session_id" binding:"required"`
}

// EnterScores godoc
// @Summary Enter raw scores and compute the result
// @Tags Results
// @Accept json
// @Produce json
// @Param payload body service.EnterScoresRequest true "Score entry payload"
// @Success 201 {object} response.Envelope
// @Router /results [post]
func (h *ResultHandler) EnterScores(c *gin.Context) {
	var req service.EnterScoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.results.EnterScores(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, result)
}

// Get godoc
// @Summary Get a termly result
// @Tags Results
// @Produce json
// @Param id path string true "Result ID"
// @Success 200 {object} response.Envelope
// @Router /results/{id} [get]
func (h *ResultHandler) Get(c *gin.Context) {
	result, err := h.results.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Recompute godoc
// @Summary Recompute the derived tuple from stored raw scores
// @Tags Results
// @Produce json
// @Param id path string true "Result ID"
// @Success 200 {object} response.Envelope
// @Router /results/{id}/recompute [post]
func (h *ResultHandler) Recompute(c *gin.Context) {
	result, err := h.results.Recompute(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// UpdateStatus godoc
// @Summary Move a result forward through the approval workflow
// @Tags Results
// @Accept json
// @Produce json
// @Param id path string true "Result ID"
// @Param payload body updateStatusRequest true "Target status"
// @Success 200 {object} response.Envelope
// @Router /results/{id}/status [patch]
func (h *ResultHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.results.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// RankClass godoc
// @Summary Rank a class scope and persist positions and statistics
// @Tags Results
// @Accept json
// @Produce json
// @Param payload body rankClassRequest true "Class scope"
// @Success 200 {object} response.Envelope
// @Router /results/rank [post]
func (h *ResultHandler) RankClass(c *gin.Context) {
	var req rankClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	results, err := h.results.RankClass(c.Request.Context(), req.ClassID, req.SubjectID, req.ExamSessionID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results, nil)
}

// AggregateSession godoc
// @Summary Aggregate three termly results into a session result
// @Tags Session Results
// @Accept json
// @Produce json
// @Param payload body service.AggregateSessionRequest true "Aggregation scope"
// @Success 201 {object} response.Envelope
// @Router /session-results/aggregate [post]
func (h *ResultHandler) AggregateSession(c *gin.Context) {
	var req service.AggregateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.results.AggregateSession(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, result)
}

// RankSessionResults godoc
// @Summary Rank session results across a class scope
// @Tags Session Results
// @Accept json
// @Produce json
// @Param payload body rankSessionRequest true "Class scope"
// @Success 200 {object} response.Envelope
// @Router /session-results/rank [post]
func (h *ResultHandler) RankSessionResults(c *gin.Context) {
	var req rankSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	results, err := h.results.RankSessionResults(c.Request.Context(), req.ClassID, req.SubjectID, req.AcademicSessionID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results, nil)
}
