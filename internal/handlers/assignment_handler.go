package handlers

import (
	"errors"
	"net/http"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignmentHandler handles number assignment HTTP requests
type AssignmentHandler struct {
	assignmentService services.AssignmentService
}

// NewAssignmentHandler creates a new AssignmentHandler
func NewAssignmentHandler(assignmentService services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// Assign handles POST /assignments
func (h *AssignmentHandler) Assign(c *gin.Context) {
	var body struct {
		RaffleID   string `json:"raffleId" binding:"required"`
		ReferralID string `json:"referralId" binding:"required"`
		RangeStart int    `json:"rangeStart" binding:"required"`
		RangeEnd   int    `json:"rangeEnd" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	raffleID, err := primitive.ObjectIDFromHex(body.RaffleID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid raffleId"})
		return
	}
	referralID, err := primitive.ObjectIDFromHex(body.ReferralID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid referralId"})
		return
	}

	assignment, err := h.assignmentService.Assign(c, raffleID, referralID, body.RangeStart, body.RangeEnd)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrRangeOverlap):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign range: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

// Return handles POST /assignments/:id/return
func (h *AssignmentHandler) Return(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	assignment, err := h.assignmentService.Return(c, id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to return range: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// ListByReferral handles GET /assignments?referralId=...
func (h *AssignmentHandler) ListByReferral(c *gin.Context) {
	referralID, err := primitive.ObjectIDFromHex(c.Query("referralId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid referralId"})
		return
	}

	assignments, err := h.assignmentService.ListByReferral(c, referralID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get assignments: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, assignments)
}
