package dto

// StatusTotal aggregates orders sharing one status.
type StatusTotal struct {
	Status  string  `db:"status" json:"status"`
	Orders  int     `db:"orders" json:"orders"`
	Revenue float64 `db:"revenue" json:"revenue"`
}

// DatedTotal is one bucket of a daily or monthly revenue series.
type DatedTotal struct {
	Period  string  `db:"period" json:"period"`
	Orders  int     `db:"orders" json:"orders"`
	Revenue float64 `db:"revenue" json:"revenue"`
}

// ProductSales ranks a product by units sold across non-cancelled orders.
type ProductSales struct {
	ProductID string  `db:"product_id" json:"productId"`
	Name      string  `db:"name" json:"name"`
	UnitsSold int     `db:"units_sold" json:"unitsSold"`
	Revenue   float64 `db:"revenue" json:"revenue"`
}

type AdvancedStats struct {
	TotalOrders    int            `json:"totalOrders"`
	TotalRevenue   float64        `json:"totalRevenue"`
	TotalUsers     int            `json:"totalUsers"`
	TotalProducts  int            `json:"totalProducts"`
	OrdersByStatus []StatusTotal  `json:"ordersByStatus"`
	DailyRevenue   []DatedTotal   `json:"dailyRevenue"`
	MonthlyRevenue []DatedTotal   `json:"monthlyRevenue"`
	TopProducts    []ProductSales `json:"topProducts"`
}
