package handlers

import (
	"net/http"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TicketPackageHandler handles ticket package HTTP requests
type TicketPackageHandler struct {
	packageService services.TicketPackageService
}

// NewTicketPackageHandler creates a new TicketPackageHandler
func NewTicketPackageHandler(packageService services.TicketPackageService) *TicketPackageHandler {
	return &TicketPackageHandler{packageService: packageService}
}

// GetOffers handles GET /raffles/:id/offers
func (h *TicketPackageHandler) GetOffers(c *gin.Context) {
	raffleID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	offers, err := h.packageService.GetOffers(c, raffleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get offers: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, offers)
}

// CreatePackage handles POST /packages
func (h *TicketPackageHandler) CreatePackage(c *gin.Context) {
	var pkg models.TicketPackage
	if err := c.ShouldBindJSON(&pkg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.packageService.CreatePackage(c, &pkg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create package: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, pkg)
}

// GetPackages handles GET /packages?raffleId=...
func (h *TicketPackageHandler) GetPackages(c *gin.Context) {
	raffleID, err := primitive.ObjectIDFromHex(c.Query("raffleId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid raffleId"})
		return
	}

	packages, err := h.packageService.GetPackages(c, raffleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get packages: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, packages)
}

// UpdatePackage handles PUT /packages/:id
func (h *TicketPackageHandler) UpdatePackage(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var pkg models.TicketPackage
	if err := c.ShouldBindJSON(&pkg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	pkg.ID = id

	if err := h.packageService.UpdatePackage(c, &pkg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update package: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, pkg)
}

// DeletePackage handles DELETE /packages/:id
func (h *TicketPackageHandler) DeletePackage(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.packageService.DeletePackage(c, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete package: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Package deleted"})
}
