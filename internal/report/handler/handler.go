package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avadra/storefront-service/internal/apperr"
	"github.com/avadra/storefront-service/internal/report"
	"github.com/avadra/storefront-service/pkg/logger"
)

type ReportHandler struct {
	uc     report.UseCase
	logger logger.ZapLogger
}

func NewReportHandler(uc report.UseCase, log logger.ZapLogger) *ReportHandler {
	return &ReportHandler{uc: uc, logger: log}
}

func (h *ReportHandler) AdvancedStats(c *gin.Context) {
	stats, err := h.uc.AdvancedStats(c.Request.Context())
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			h.logger.Error("report request failed", zap.Error(err))
		}
		c.JSON(apperr.HTTPStatus(err), gin.H{"message": apperr.MessageOf(err)})
		return
	}
	c.JSON(http.StatusOK, stats)
}
