package dbModel

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID              int64           `db:"id"`
	AssetSymbol     string          `db:"asset_symbol"`
	TransactionType string          `db:"transaction_type"`
	Amount          decimal.Decimal `db:"amount"`
	PricePerUnit    decimal.Decimal `db:"price_per_unit"`
	TotalValue      decimal.Decimal `db:"total_value"`
	Fees            decimal.Decimal `db:"fees"`
	Platform        sql.NullString  `db:"platform"`
	TransactionDate time.Time       `db:"transaction_date"`
	Notes           sql.NullString  `db:"notes"`
}

type PricePoint struct {
	ID          int64           `db:"id"`
	AssetSymbol string          `db:"asset_symbol"`
	AssetName   sql.NullString  `db:"asset_name"`
	Price       decimal.Decimal `db:"price"`
	Date        time.Time       `db:"date"`
}

type WatchlistItem struct {
	ID      int64          `db:"id"`
	Symbol  string         `db:"symbol"`
	Notes   sql.NullString `db:"notes"`
	AddedAt time.Time      `db:"added_at"`
}
