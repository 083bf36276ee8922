package handlers

import (
	"net/http"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RaffleHandler handles raffle-related HTTP requests
type RaffleHandler struct {
	raffleService services.RaffleService
}

// NewRaffleHandler creates a new RaffleHandler
func NewRaffleHandler(raffleService services.RaffleService) *RaffleHandler {
	return &RaffleHandler{raffleService: raffleService}
}

// CreateRaffle handles POST /raffles
func (h *RaffleHandler) CreateRaffle(c *gin.Context) {
	var raffle models.Raffle
	if err := c.ShouldBindJSON(&raffle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.raffleService.CreateRaffle(c, &raffle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create raffle: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, raffle)
}

// GetRaffle handles GET /raffles/:id
func (h *RaffleHandler) GetRaffle(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	raffle, err := h.raffleService.GetRaffle(c, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Raffle not found"})
		return
	}

	c.JSON(http.StatusOK, raffle)
}

// GetRafflesByTenant handles GET /raffles?tenantId=...
func (h *RaffleHandler) GetRafflesByTenant(c *gin.Context) {
	tenantID, err := primitive.ObjectIDFromHex(c.Query("tenantId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tenantId"})
		return
	}

	raffles, err := h.raffleService.GetRafflesByTenant(c, tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get raffles: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, raffles)
}

// UpdateRaffle handles PUT /raffles/:id
func (h *RaffleHandler) UpdateRaffle(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var raffle models.Raffle
	if err := c.ShouldBindJSON(&raffle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	raffle.ID = id

	if err := h.raffleService.UpdateRaffle(c, &raffle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update raffle: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, raffle)
}

// UpdateStatus handles PATCH /raffles/:id/status
func (h *RaffleHandler) UpdateStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var body struct {
		Status models.RaffleStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	raffle, err := h.raffleService.UpdateStatus(c, id, body.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update status: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, raffle)
}

// DeleteRaffle handles DELETE /raffles/:id
func (h *RaffleHandler) DeleteRaffle(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.raffleService.DeleteRaffle(c, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete raffle: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Raffle deleted"})
}
