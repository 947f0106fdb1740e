package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is the net position in one asset derived from its transactions.
type Holding struct {
	Symbol            string
	Name              string
	Type              AssetType
	Platform          string
	CurrentPrice      decimal.Decimal
	TotalAmount       decimal.Decimal
	TotalInvested     decimal.Decimal
	CurrentValue      decimal.Decimal
	ProfitLoss        decimal.Decimal
	ProfitLossPercent decimal.Decimal
}

type PortfolioSummary struct {
	Holdings          []Holding
	TotalValue        decimal.Decimal
	TotalInvested     decimal.Decimal
	ProfitLoss        decimal.Decimal
	ProfitLossPercent decimal.Decimal
}

type WatchlistItem struct {
	ID      int64
	Symbol  string
	Notes   string
	AddedAt time.Time
}

// Report is everything an export contains.
type Report struct {
	GeneratedAt  time.Time
	Summary      PortfolioSummary
	Transactions []Transaction
	PriceHistory []PricePoint
}
