package report

import (
	"context"

	"github.com/avadra/storefront-service/internal/report/dto"
)

type UseCase interface {
	AdvancedStats(ctx context.Context) (*dto.AdvancedStats, error)
}

type Repository interface {
	OrderTotals(ctx context.Context) ([]dto.StatusTotal, error)

	// DailyRevenue covers completed orders in the current month, one bucket
	// per day.
	DailyRevenue(ctx context.Context) ([]dto.DatedTotal, error)

	// MonthlyRevenue covers completed orders, one bucket per calendar month.
	MonthlyRevenue(ctx context.Context) ([]dto.DatedTotal, error)

	// TopProducts ranks products by units sold across completed orders.
	TopProducts(ctx context.Context, limit int) ([]dto.ProductSales, error)

	CountUsers(ctx context.Context) (int, error)
	CountProducts(ctx context.Context) (int, error)
}
