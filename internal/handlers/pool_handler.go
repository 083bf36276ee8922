package handlers

import (
	"errors"
	"net/http"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PoolHandler handles number pool HTTP requests
type PoolHandler struct {
	poolService services.PoolService
}

// NewPoolHandler creates a new PoolHandler
func NewPoolHandler(poolService services.PoolService) *PoolHandler {
	return &PoolHandler{poolService: poolService}
}

// CreatePool handles POST /pools
func (h *PoolHandler) CreatePool(c *gin.Context) {
	var pool models.NumberPool
	if err := c.ShouldBindJSON(&pool); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.poolService.CreatePool(c, &pool); err != nil {
		if errors.Is(err, services.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create pool: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, pool)
}

// GetPool handles GET /pools/:id
func (h *PoolHandler) GetPool(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	pool, err := h.poolService.GetPool(c, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pool not found"})
		return
	}

	c.JSON(http.StatusOK, pool)
}

// GetPoolsByTenant handles GET /pools?tenantId=...
func (h *PoolHandler) GetPoolsByTenant(c *gin.Context) {
	tenantID, err := primitive.ObjectIDFromHex(c.Query("tenantId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tenantId"})
		return
	}

	pools, err := h.poolService.GetPoolsByTenant(c, tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get pools: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, pools)
}

// UpdateStatus handles PATCH /pools/:id/status
func (h *PoolHandler) UpdateStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var body struct {
		Status models.PoolStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	pool, err := h.poolService.UpdateStatus(c, id, body.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update status: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, pool)
}

// DeletePool handles DELETE /pools/:id
func (h *PoolHandler) DeletePool(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.poolService.DeletePool(c, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pool: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pool deleted"})
}

// ImportNumbers handles POST /pools/:id/import with a multipart file field
// named "file". The response always carries the full parse report so the
// admin UI can show invalid and duplicate samples.
func (h *PoolHandler) ImportNumbers(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open file: " + err.Error()})
		return
	}
	defer file.Close()

	result, err := h.poolService.ImportNumbers(c, id, fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, services.ErrPoolNotCustom) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Import failed: " + err.Error()})
		return
	}

	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusOK, result)
}
