package handlers

import (
	"net/http"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReferralHandler handles referral HTTP requests
type ReferralHandler struct {
	referralService services.ReferralService
}

// NewReferralHandler creates a new ReferralHandler
func NewReferralHandler(referralService services.ReferralService) *ReferralHandler {
	return &ReferralHandler{referralService: referralService}
}

// CreateReferral handles POST /referrals
func (h *ReferralHandler) CreateReferral(c *gin.Context) {
	var referral models.Referral
	if err := c.ShouldBindJSON(&referral); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.referralService.CreateReferral(c, &referral); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create referral: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, referral)
}

// GetReferralsByTenant handles GET /referrals?tenantId=...
func (h *ReferralHandler) GetReferralsByTenant(c *gin.Context) {
	tenantID, err := primitive.ObjectIDFromHex(c.Query("tenantId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tenantId"})
		return
	}

	referrals, err := h.referralService.GetReferralsByTenant(c, tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get referrals: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, referrals)
}

// UpdateReferral handles PUT /referrals/:id
func (h *ReferralHandler) UpdateReferral(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var referral models.Referral
	if err := c.ShouldBindJSON(&referral); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	referral.ID = id

	if err := h.referralService.UpdateReferral(c, &referral); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update referral: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, referral)
}

// DeleteReferral handles DELETE /referrals/:id
func (h *ReferralHandler) DeleteReferral(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.referralService.DeleteReferral(c, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete referral: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Referral deleted"})
}

// GetStats handles GET /referrals/:id/stats
func (h *ReferralHandler) GetStats(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	stats, err := h.referralService.GetStats(c, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Referral not found"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
