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

type TeamAssignmentHandler struct {
	assignmentService *services.TeamAssignmentService
}

func NewTeamAssignmentHandler(assignmentService *services.TeamAssignmentService) *TeamAssignmentHandler {
	return &TeamAssignmentHandler{
		assignmentService: assignmentService,
	}
}

func assignmentResponses(assignments []models.TeamAssignment) []models.TeamAssignmentResponse {
	response := make([]models.TeamAssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		response = append(response, models.NewTeamAssignmentResponse(a))
	}
	return response
}

// ListPlayerAssignments retrieves a player's team assignments
// @Summary List player assignments
// @Description List a player's team assignments, newest first
// @Tags assignments
// @Produce json
// @Param id path int true "Player ID"
// @Param active query bool false "Only assignments without a left date"
// @Success 200 {array} models.TeamAssignmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /players/{id}/assignments [get]
func (h *TeamAssignmentHandler) ListPlayerAssignments(c *gin.Context) {
	playerID, ok := parseID(c, "id")
	if !ok {
		badRequest(c, "Invalid player ID")
		return
	}
	activeOnly, err := strconv.ParseBool(c.DefaultQuery("active", "false"))
	if err != nil {
		badRequest(c, "Invalid active parameter")
		return
	}

	assignments, err := h.assignmentService.ListAssignments(c.Request.Context(), playerID, activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignmentResponses(assignments))
}

// GetAssignment retrieves a team assignment by ID
// @Summary Get assignment
// @Tags assignments
// @Produce json
// @Param id path int true "Assignment ID"
// @Success 200 {object} models.TeamAssignmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /assignments/{id} [get]
func (h *TeamAssignmentHandler) GetAssignment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		badRequest(c, "Invalid assignment ID")
		return
	}

	assignment, err := h.assignmentService.GetAssignment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewTeamAssignmentResponse(*assignment))
}

// CreateAssignment adds a player to a team for a championship
// @Summary Create assignment
// @Description A player may hold only one active assignment per team and championship
// @Tags assignments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param assignment body models.CreateTeamAssignmentRequest true "Assignment"
// @Success 201 {object} models.TeamAssignmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /assignments [post]
func (h *TeamAssignmentHandler) CreateAssignment(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}

	var req models.CreateTeamAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	assignment, ok := assignmentFromRequest(c, req.TeamName, req.ChampionshipName, req.JoinedDate, req.LeftDate)
	if !ok {
		return
	}
	assignment.PlayerID = req.PlayerID

	if err := h.assignmentService.AddAssignment(c.Request.Context(), userID, assignment); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.NewTeamAssignmentResponse(*assignment))
}

// UpdateAssignment overwrites team, championship and dates of an assignment
// @Summary Update assignment
// @Tags assignments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Assignment ID"
// @Param assignment body models.UpdateTeamAssignmentRequest true "Assignment"
// @Success 200 {object} models.TeamAssignmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /assignments/{id} [put]
func (h *TeamAssignmentHandler) UpdateAssignment(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		badRequest(c, "Invalid assignment ID")
		return
	}

	var req models.UpdateTeamAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	assignment, ok := assignmentFromRequest(c, req.TeamName, req.ChampionshipName, req.JoinedDate, req.LeftDate)
	if !ok {
		return
	}
	assignment.ID = id

	if err := h.assignmentService.UpdateAssignment(c.Request.Context(), userID, assignment); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewTeamAssignmentResponse(*assignment))
}

// CloseAssignment ends an assignment
// @Summary Close assignment
// @Description Set the date the player left the team
// @Tags assignments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Assignment ID"
// @Param body body models.CloseTeamAssignmentRequest true "Left date"
// @Success 200 {object} models.TeamAssignmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /assignments/{id}/close [patch]
func (h *TeamAssignmentHandler) CloseAssignment(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		badRequest(c, "Invalid assignment ID")
		return
	}

	var req models.CloseTeamAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	left, err := utils.ParseDate(req.LeftDate)
	if err != nil {
		invalidField(c, apperrors.EntityTeamAssignment, "left_date", err)
		return
	}

	assignment, err := h.assignmentService.CloseAssignment(c.Request.Context(), userID, id, left)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewTeamAssignmentResponse(*assignment))
}

// DeleteAssignment removes an assignment and its statistics
// @Summary Delete assignment
// @Tags assignments
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /assignments/{id} [delete]
func (h *TeamAssignmentHandler) DeleteAssignment(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		badRequest(c, "Invalid assignment ID")
		return
	}

	if err := h.assignmentService.DeleteAssignment(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func assignmentFromRequest(c *gin.Context, team, championship, joined string, left *string) (*models.TeamAssignment, bool) {
	joinedDate, err := utils.ParseDate(joined)
	if err != nil {
		invalidField(c, apperrors.EntityTeamAssignment, "joined_date", err)
		return nil, false
	}
	leftDate, err := utils.ParseOptionalDate(left)
	if err != nil {
		invalidField(c, apperrors.EntityTeamAssignment, "left_date", err)
		return nil, false
	}

	return &models.TeamAssignment{
		TeamName:         team,
		ChampionshipName: championship,
		JoinedDate:       joinedDate,
		LeftDate:         leftDate,
	}, true
}
