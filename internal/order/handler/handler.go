package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avadra/storefront-service/internal/apperr"
	"github.com/avadra/storefront-service/internal/auth"
	"github.com/avadra/storefront-service/internal/model"
	"github.com/avadra/storefront-service/internal/order"
	"github.com/avadra/storefront-service/internal/order/dto"
	"github.com/avadra/storefront-service/pkg/logger"
)

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: log}
}

func (h *OrderHandler) respondError(c *gin.Context, err error) {
	if apperr.KindOf(err) == apperr.KindInternal {
		h.logger.Error("order request failed", zap.Error(err))
	}
	c.JSON(apperr.HTTPStatus(err), gin.H{"message": apperr.MessageOf(err)})
}

type orderItemRequest struct {
	Product      string `json:"product"`
	SelectedSize string `json:"selectedSize"`
	Quantity     int    `json:"quantity"`
	Image        string `json:"image"`
}

type createOrderRequest struct {
	Items         []orderItemRequest `json:"items"`
	Subtotal      float64            `json:"subtotal"`
	GST           float64            `json:"gst"`
	Total         float64            `json:"total"`
	PaymentMethod string             `json:"paymentMethod"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order payload"})
		return
	}

	input := &dto.CreateOrderInput{
		UserID:        auth.UserID(c),
		Subtotal:      req.Subtotal,
		GST:           req.GST,
		Total:         req.Total,
		PaymentMethod: req.PaymentMethod,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, dto.OrderItemInput{
			ProductID:    item.Product,
			SelectedSize: item.SelectedSize,
			Quantity:     item.Quantity,
			Image:        item.Image,
		})
	}

	o, err := h.uc.CreateOrder(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, o)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status payload"})
		return
	}

	o, err := h.uc.UpdateStatus(c.Request.Context(), c.Param("id"), model.OrderStatus(req.Status))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.uc.ListOrders(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) ListMine(c *gin.Context) {
	orders, err := h.uc.ListUserOrders(c.Request.Context(), auth.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) CountPending(c *gin.Context) {
	count, err := h.uc.CountPending(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
