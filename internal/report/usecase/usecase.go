package usecase

import (
	"context"

	"github.com/avadra/storefront-service/internal/apperr"
	"github.com/avadra/storefront-service/internal/model"
	"github.com/avadra/storefront-service/internal/report"
	"github.com/avadra/storefront-service/internal/report/dto"
	"github.com/avadra/storefront-service/pkg/logger"
)

const topProductsLimit = 5

type reportUseCase struct {
	repo   report.Repository
	logger logger.ZapLogger
}

func NewReportUseCase(repo report.Repository, log logger.ZapLogger) report.UseCase {
	return &reportUseCase{repo: repo, logger: log}
}

func (uc *reportUseCase) AdvancedStats(ctx context.Context) (*dto.AdvancedStats, error) {
	stats := &dto.AdvancedStats{}

	totals, err := uc.repo.OrderTotals(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to aggregate orders", err)
	}
	stats.OrdersByStatus = totals
	for _, t := range totals {
		stats.TotalOrders += t.Orders
		// Revenue counts what was actually realized, not cancelled or still
		// pending totals.
		if t.Status == string(model.StatusCompleted) {
			stats.TotalRevenue += t.Revenue
		}
	}

	if stats.DailyRevenue, err = uc.repo.DailyRevenue(ctx); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to build daily revenue", err)
	}
	if stats.MonthlyRevenue, err = uc.repo.MonthlyRevenue(ctx); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to build monthly revenue", err)
	}
	if stats.TopProducts, err = uc.repo.TopProducts(ctx, topProductsLimit); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to rank products", err)
	}
	if stats.TotalUsers, err = uc.repo.CountUsers(ctx); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to count users", err)
	}
	if stats.TotalProducts, err = uc.repo.CountProducts(ctx); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to count products", err)
	}

	return stats, nil
}
