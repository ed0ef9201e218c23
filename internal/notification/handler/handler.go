package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avadra/storefront-service/internal/apperr"
	"github.com/avadra/storefront-service/internal/notification"
	"github.com/avadra/storefront-service/pkg/logger"
)

type NotificationHandler struct {
	uc     notification.UseCase
	logger logger.ZapLogger
}

func NewNotificationHandler(uc notification.UseCase, log logger.ZapLogger) *NotificationHandler {
	return &NotificationHandler{uc: uc, logger: log}
}

func (h *NotificationHandler) respondError(c *gin.Context, err error) {
	if apperr.KindOf(err) == apperr.KindInternal {
		h.logger.Error("notification request failed", zap.Error(err))
	}
	c.JSON(apperr.HTTPStatus(err), gin.H{"message": apperr.MessageOf(err)})
}

func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.uc.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.uc.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.uc.MarkAllRead(c.Request.Context()); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
