package handlers

import (
	"net/http"
	"strconv"

	apperrors "roster-api/packages/core/errors"
	"roster-api/packages/core/models"
	"roster-api/packages/core/services"
	"roster-api/packages/core/utils"

	"github.com/gin-gonic/gin"
)

type StatisticHandler struct {
	statisticService *services.StatisticService
}

func NewStatisticHandler(statisticService *services.StatisticService) *StatisticHandler {
	return &StatisticHandler{
		statisticService: statisticService,
	}
}

// ListPlayerStatistics retrieves a player's game statistics
// @Summary List player statistics
// @Description List a player's games across all assignments, latest first. from and to restrict the range, both included, and must be given together.
// @Tags statistics
// @Produce json
// @Param id path int true "Player ID"
// @Param from query string false "First game date (YYYY-MM-DD)"
// @Param to query string false "Last game date (YYYY-MM-DD)"
// @Success 200 {array} models.PlayerStatistic
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /players/{id}/statistics [get]
func (h *StatisticHandler) ListPlayerStatistics(c *gin.Context) {
	playerID, ok := parseID(c, "id")
	if !ok {
		badRequest(c, "Invalid player ID")
		return
	}

	fromParam, toParam := c.Query("from"), c.Query("to")
	if fromParam == "" && toParam == "" {
		stats, err := h.statisticService.ListByPlayer(c.Request.Context(), playerID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
		return
	}
	if fromParam == "" || toParam == "" {
		badRequest(c, "from and to must be given together")
		return
	}

	from, err := utils.ParseDate(fromParam)
	if err != nil {
		invalidField(c, apperrors.EntityPlayerStatistic, "from", err)
		return
	}
	to, err := utils.ParseDate(toParam)
	if err != nil {
		invalidField(c, apperrors.EntityPlayerStatistic, "to", err)
		return
	}

	stats, err := h.statisticService.ListByDateRange(c.Request.Context(), playerID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetPlayerAggregates summarises a player's games
// @Summary Player aggregates
// @Description Games, totals and per-game averages, optionally for one assignment
// @Tags statistics
// @Produce json
// @Param id path int true "Player ID"
// @Param assignment_id query int false "Restrict to one team assignment"
// @Success 200 {object} models.StatisticAggregates
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /players/{id}/aggregates [get]
func (h *StatisticHandler) GetPlayerAggregates(c *gin.Context) {
	playerID, ok := parseID(c, "id")
	if !ok {
		badRequest(c, "Invalid player ID")
		return
	}

	var assignmentID *uint
	if raw := c.Query("assignment_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || parsed == 0 {
			badRequest(c, "Invalid assignment_id parameter")
			return
		}
		id := uint(parsed)
		assignmentID = &id
	}

	aggregates, err := h.statisticService.GetAggregates(c.Request.Context(), playerID, assignmentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, aggregates)
}

// ListAssignmentStatistics retrieves the games played under one assignment
// @Summary List assignment statistics
// @Tags statistics
// @Produce json
// @Param id path int true "Assignment ID"
// @Success 200 {array} models.PlayerStatistic
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /assignments/{id}/statistics [get]
func (h *StatisticHandler) ListAssignmentStatistics(c *gin.Context) {
	assignmentID, ok := parseID(c, "id")
	if !ok {
		badRequest(c, "Invalid assignment ID")
		return
	}

	stats, err := h.statisticService.ListByAssignment(c.Request.Context(), assignmentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetStatistic retrieves one game statistic
// @Summary Get statistic
// @Tags statistics
// @Produce json
// @Param id path int true "Statistic ID"
// @Success 200 {object} models.PlayerStatistic
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /statistics/{id} [get]
func (h *StatisticHandler) GetStatistic(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		badRequest(c, "Invalid statistic ID")
		return
	}

	stat, err := h.statisticService.GetStatistic(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stat)
}

// CreateStatistic records a game
// @Summary Create statistic
// @Tags statistics
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param statistic body models.PlayerStatisticRequest true "Statistic"
// @Success 201 {object} models.PlayerStatistic
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /statistics [post]
func (h *StatisticHandler) CreateStatistic(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}

	stat, ok := statisticFromRequest(c)
	if !ok {
		return
	}

	if err := h.statisticService.AddStatistic(c.Request.Context(), userID, stat); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stat)
}

// UpdateStatistic overwrites a game
// @Summary Update statistic
// @Tags statistics
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Statistic ID"
// @Param statistic body models.PlayerStatisticRequest true "Statistic"
// @Success 200 {object} models.PlayerStatistic
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /statistics/{id} [put]
func (h *StatisticHandler) UpdateStatistic(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		badRequest(c, "Invalid statistic ID")
		return
	}

	stat, ok := statisticFromRequest(c)
	if !ok {
		return
	}
	stat.ID = id

	if err := h.statisticService.UpdateStatistic(c.Request.Context(), userID, stat); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stat)
}

// DeleteStatistic removes a game
// @Summary Delete statistic
// @Tags statistics
// @Security BearerAuth
// @Param id path int true "Statistic ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /statistics/{id} [delete]
func (h *StatisticHandler) DeleteStatistic(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		badRequest(c, "Invalid statistic ID")
		return
	}

	if err := h.statisticService.DeleteStatistic(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func statisticFromRequest(c *gin.Context) (*models.PlayerStatistic, bool) {
	var req models.PlayerStatisticRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return nil, false
	}
	gameDate, err := utils.ParseDate(req.GameDate)
	if err != nil {
		invalidField(c, apperrors.EntityPlayerStatistic, "game_date", err)
		return nil, false
	}

	return &models.PlayerStatistic{
		TeamAssignmentID: req.TeamAssignmentID,
		GameDate:         gameDate,
		MinutesPlayed:    req.MinutesPlayed,
		Starter:          req.Starter,
		JerseyNumber:     req.JerseyNumber,
		Goals:            req.Goals,
		Assists:          req.Assists,
	}, true
}
