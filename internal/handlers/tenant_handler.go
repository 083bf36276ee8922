package handlers

import (
	"errors"
	"net/http"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TenantHandler handles tenant-related HTTP requests
type TenantHandler struct {
	tenantService services.TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenantService services.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// CreateTenant handles POST /tenants
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	var tenant models.Tenant
	if err := c.ShouldBindJSON(&tenant); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.tenantService.CreateTenant(c, &tenant); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create tenant: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, tenant)
}

// GetTenants handles GET /tenants
func (h *TenantHandler) GetTenants(c *gin.Context) {
	tenants, err := h.tenantService.GetTenants(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get tenants: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, tenants)
}

// ResolveByDomain handles GET /tenants/resolve?domain=example.com
func (h *TenantHandler) ResolveByDomain(c *gin.Context) {
	domain := c.Query("domain")
	if domain == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "domain query parameter is required"})
		return
	}

	tenant, err := h.tenantService.GetByDomain(c, domain)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No tenant for domain"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve tenant: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, tenant)
}

// GetPaymentConfig handles GET /tenants/:id/payment-config
func (h *TenantHandler) GetPaymentConfig(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	cfg, err := h.tenantService.GetPaymentConfig(c, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment config not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get payment config: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, cfg)
}

// UpsertPaymentConfig handles PUT /tenants/:id/payment-config
func (h *TenantHandler) UpsertPaymentConfig(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var cfg models.TenantPaymentConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	cfg.TenantID = id

	if err := h.tenantService.UpsertPaymentConfig(c, &cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save payment config: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, cfg.PublicView())
}

// GetFeatures handles GET /features?role=admin
func (h *TenantHandler) GetFeatures(c *gin.Context) {
	role := c.DefaultQuery("role", "admin")

	features, err := h.tenantService.FeaturesForRole(c, role)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Role not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get features: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, features)
}
