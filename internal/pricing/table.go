package pricing

import (
	"seatmap/config"
	"seatmap/internal/model"
)

// Table 票價表：等級 -> 價格，建立後不可變更
type Table struct {
	prices map[model.PriceTier]float64
}

func NewTable(prices map[model.PriceTier]float64) Table {
	copied := make(map[model.PriceTier]float64, len(prices))
	for tier, price := range prices {
		if price < 0 {
			price = 0
		}
		copied[tier] = price
	}
	return Table{prices: copied}
}

// DefaultTable 預設票價
func DefaultTable() Table {
	return NewTable(map[model.PriceTier]float64{
		model.PriceTier1: 150,
		model.PriceTier2: 100,
		model.PriceTier3: 60,
	})
}

func FromConfig(cfg config.PricingConfig) Table {
	return NewTable(map[model.PriceTier]float64{
		model.PriceTier1: cfg.Tier1,
		model.PriceTier2: cfg.Tier2,
		model.PriceTier3: cfg.Tier3,
	})
}

// Lookup 查詢價格；未知等級回傳 0
func (t Table) Lookup(tier model.PriceTier) float64 {
	return t.prices[tier]
}

// Sum adds up the price of every seat's tier.
func (t Table) Sum(seats []model.Seat) float64 {
	total := 0.0
	for _, seat := range seats {
		total += t.Lookup(seat.PriceTier)
	}
	return total
}
