package dbModel

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type Asset struct {
	ID           int64           `db:"id"`
	Symbol       string          `db:"symbol"`
	Name         string          `db:"name"`
	AssetType    string          `db:"asset_type"`
	Platform     sql.NullString  `db:"platform"`
	CurrentPrice decimal.Decimal `db:"current_price"`
	LastUpdated  time.Time       `db:"last_updated"`
}

// HoldingRow is one group of the portfolio aggregation query.
type HoldingRow struct {
	Symbol        string          `db:"symbol"`
	Name          string          `db:"name"`
	AssetType     string          `db:"asset_type"`
	Platform      sql.NullString  `db:"platform"`
	CurrentPrice  decimal.Decimal `db:"current_price"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	TotalInvested decimal.Decimal `db:"total_invested"`
}
