package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avadra/storefront-service/internal/apperr"
	"github.com/avadra/storefront-service/internal/auth"
	"github.com/avadra/storefront-service/internal/inventory"
	"github.com/avadra/storefront-service/internal/inventory/dto"
	"github.com/avadra/storefront-service/pkg/logger"
)

type InventoryHandler struct {
	ledger inventory.Ledger
	logger logger.ZapLogger
}

func NewInventoryHandler(ledger inventory.Ledger, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, logger: log}
}

type adjustRequest struct {
	Product        string `json:"product" binding:"required"`
	Size           string `json:"size" binding:"required"`
	QuantityChange int    `json:"quantityChange" binding:"required"`
	Reason         string `json:"reason"`
}

// Adjust is the admin's manual stock correction endpoint.
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req adjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid adjustment payload"})
		return
	}

	variant, err := h.ledger.Adjust(c.Request.Context(), &dto.AdjustStockInput{
		ProductID:      req.Product,
		Size:           req.Size,
		QuantityChange: req.QuantityChange,
		Reason:         req.Reason,
		UserID:         auth.UserID(c),
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			h.logger.Error("stock adjust failed", zap.Error(err))
		}
		c.JSON(apperr.HTTPStatus(err), gin.H{"message": apperr.MessageOf(err)})
		return
	}

	c.JSON(http.StatusOK, variant)
}

func (h *InventoryHandler) Movements(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "50"))

	items, count, err := h.ledger.Movements(c.Request.Context(), &dto.MovementFilters{
		ProductID:    c.Query("product"),
		Size:         c.Query("size"),
		MovementType: c.Query("type"),
		Page:         page,
		PageSize:     pageSize,
	})
	if err != nil {
		h.logger.Error("failed to list stock movements", zap.Error(err))
		c.JSON(apperr.HTTPStatus(err), gin.H{"message": apperr.MessageOf(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"movements": items, "total": count})
}
