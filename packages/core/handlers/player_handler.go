package handlers

import (
	"net/http"

	apperrors "roster-api/packages/core/errors"
	"roster-api/packages/core/models"
	"roster-api/packages/core/services"
	"roster-api/packages/core/utils"

	"github.com/gin-gonic/gin"
)

type PlayerHandler struct {
	playerService *services.PlayerService
}

func NewPlayerHandler(playerService *services.PlayerService) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
	}
}

func (h *PlayerHandler) respond(c *gin.Context, status int, players []models.Player) {
	now := h.playerService.Now()
	response := make([]models.PlayerResponse, 0, len(players))
	for _, p := range players {
		response = append(response, models.NewPlayerResponse(p, now))
	}
	c.JSON(status, response)
}

// ListPlayers retrieves every player
// @Summary List players
// @Description List all players ordered by name, with their current age
// @Tags players
// @Produce json
// @Success 200 {array} models.PlayerResponse
// @Failure 500 {object} ErrorResponse
// @Router /players [get]
func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	players, err := h.playerService.ListPlayers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, players)
}

// ListMyPlayers retrieves the players owned by the authenticated user
// @Summary List my players
// @Tags players
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.PlayerResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /me/players [get]
func (h *PlayerHandler) ListMyPlayers(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}

	players, err := h.playerService.ListPlayersByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, players)
}

// GetPlayer retrieves a player by ID
// @Summary Get player by ID
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} models.PlayerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /players/{id} [get]
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		badRequest(c, "Invalid player ID")
		return
	}

	player, err := h.playerService.GetPlayer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewPlayerResponse(*player, h.playerService.Now()))
}

// CreatePlayer registers a new player
// @Summary Create player
// @Description Create a player. The owner defaults to the authenticated user.
// @Tags players
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param player body models.CreatePlayerRequest true "Player"
// @Success 201 {object} models.PlayerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /players [post]
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}

	var req models.CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	dob, err := utils.ParseDate(req.DateOfBirth)
	if err != nil {
		invalidField(c, apperrors.EntityPlayer, "date_of_birth", err)
		return
	}

	player := &models.Player{
		UserID:      req.UserID,
		Name:        req.Name,
		DateOfBirth: dob,
		Gender:      req.Gender,
		PhotoURL:    req.PhotoURL,
	}
	if player.UserID == "" {
		player.UserID = userID
	}

	if err := h.playerService.CreatePlayer(c.Request.Context(), userID, player); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.NewPlayerResponse(*player, h.playerService.Now()))
}

// UpdatePlayer overwrites a player's details
// @Summary Update player
// @Description Overwrite name, date of birth, gender, photo and owner. The owner is kept when omitted.
// @Tags players
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Player ID"
// @Param player body models.UpdatePlayerRequest true "Player"
// @Success 200 {object} models.PlayerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /players/{id} [put]
func (h *PlayerHandler) UpdatePlayer(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		badRequest(c, "Invalid player ID")
		return
	}

	var req models.UpdatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	dob, err := utils.ParseDate(req.DateOfBirth)
	if err != nil {
		invalidField(c, apperrors.EntityPlayer, "date_of_birth", err)
		return
	}

	owner := req.UserID
	if owner == "" {
		existing, err := h.playerService.GetPlayer(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		owner = existing.UserID
	}

	player := &models.Player{
		ID:          id,
		UserID:      owner,
		Name:        req.Name,
		DateOfBirth: dob,
		Gender:      req.Gender,
		PhotoURL:    req.PhotoURL,
	}
	if err := h.playerService.UpdatePlayer(c.Request.Context(), userID, player); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewPlayerResponse(*player, h.playerService.Now()))
}

// DeletePlayer removes a player with its assignments and statistics
// @Summary Delete player
// @Tags players
// @Security BearerAuth
// @Param id path int true "Player ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /players/{id} [delete]
func (h *PlayerHandler) DeletePlayer(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		badRequest(c, "Invalid player ID")
		return
	}

	if err := h.playerService.DeletePlayer(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
