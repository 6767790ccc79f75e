package orders

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-vault/pkg/enums"
	"github.com/angelmondragon/storefront-vault/pkg/models"
)

// LowStockThreshold is the stock level below which a variant counts as low.
const LowStockThreshold = 5

// DashboardStats is the staff console summary.
type DashboardStats struct {
	Revenue          decimal.Decimal  `json:"revenue"`
	ActiveOrders     int              `json:"activeOrders"`
	LowStock         int              `json:"lowStock"`
	LowStockProducts []models.Product `json:"lowStockProducts"`
	ActiveProducts   int              `json:"activeProducts"`
}

// Revenue sums the totals of every order that was not cancelled.
func Revenue(orders []models.Order) decimal.Decimal {
	sum := decimal.Zero
	for _, o := range orders {
		if o.Status == enums.OrderStatusCancelled {
			continue
		}
		sum = sum.Add(o.Total)
	}
	return sum
}

// ActiveCount counts orders that still need staff attention: Placed or Accepted.
func ActiveCount(orders []models.Order) int {
	n := 0
	for _, o := range orders {
		if o.Status == enums.OrderStatusPlaced || o.Status == enums.OrderStatusAccepted {
			n++
		}
	}
	return n
}

// LowStock returns products with any variant under LowStockThreshold.
func LowStock(products []models.Product) []models.Product {
	out := []models.Product{}
	for _, p := range products {
		for _, w := range p.Weights {
			if w.Stock < LowStockThreshold {
				out = append(out, p.Clone())
				break
			}
		}
	}
	return out
}

func ActiveProducts(products []models.Product) int {
	n := 0
	for _, p := range products {
		if p.IsPublished {
			n++
		}
	}
	return n
}

// Dashboard computes every console aggregate in one pass over the inputs.
func Dashboard(orders []models.Order, products []models.Product) DashboardStats {
	low := LowStock(products)
	return DashboardStats{
		Revenue:          Revenue(orders),
		ActiveOrders:     ActiveCount(orders),
		LowStock:         len(low),
		LowStockProducts: low,
		ActiveProducts:   ActiveProducts(products),
	}
}

// LoyaltyPoints is floor(total * pointsPerDollar).
func LoyaltyPoints(total decimal.Decimal, pointsPerDollar int) int {
	if pointsPerDollar <= 0 || !total.IsPositive() {
		return 0
	}
	return int(total.Mul(decimal.NewFromInt(int64(pointsPerDollar))).Floor().IntPart())
}
