package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InvoiceHandler handles invoice HTTP requests
type InvoiceHandler struct {
	invoiceService services.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// GetByOrderNumber handles GET /invoices/:orderNumber
func (h *InvoiceHandler) GetByOrderNumber(c *gin.Context) {
	invoice, err := h.invoiceService.GetByOrderNumber(c, c.Param("orderNumber"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// Complete handles POST /invoices/:orderNumber/complete. Used by operators
// to settle an order after verifying a bank transfer manually.
func (h *InvoiceHandler) Complete(c *gin.Context) {
	invoice, err := h.invoiceService.Complete(c, c.Param("orderNumber"))
	if err != nil {
		if errors.Is(err, services.ErrAlreadyCompleted) {
			c.JSON(http.StatusOK, invoice)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete invoice: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// ListByTenant handles GET /invoices?tenantId=...&page=1&limit=20
func (h *InvoiceHandler) ListByTenant(c *gin.Context) {
	tenantID, err := primitive.ObjectIDFromHex(c.Query("tenantId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tenantId"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	invoices, err := h.invoiceService.ListByTenant(c, tenantID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get invoices: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, invoices)
}
