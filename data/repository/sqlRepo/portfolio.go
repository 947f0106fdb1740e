package sqlRepo

import (
	"context"
	"log/slog"

	"github.com/KotFed0t/portfolio_tracker/internal/converter/dbConverter"
	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/internal/model/dbModel"
	"github.com/KotFed0t/portfolio_tracker/utils"
)

// Sells remove total_value - fees from the invested capital.
const holdingsQuery = `
	SELECT
		a.symbol, a.name, a.asset_type, a.platform, a.current_price,
		COALESCE(SUM(CASE WHEN t.transaction_type = 'buy' THEN t.amount
		                  WHEN t.transaction_type = 'sell' THEN -t.amount
		                  ELSE 0 END), 0) AS total_amount,
		COALESCE(SUM(CASE WHEN t.transaction_type = 'buy' THEN t.total_value + t.fees
		                  WHEN t.transaction_type = 'sell' THEN -(t.total_value - t.fees)
		                  ELSE 0 END), 0) AS total_invested
	FROM assets a
	LEFT JOIN transactions t ON a.symbol = t.asset_symbol
	GROUP BY a.symbol, a.name, a.asset_type, a.platform, a.current_price
	HAVING COALESCE(SUM(CASE WHEN t.transaction_type = 'buy' THEN t.amount
	                         WHEN t.transaction_type = 'sell' THEN -t.amount
	                         ELSE 0 END), 0) > 0
	`

// GetHoldingRows aggregates the whole ledger per asset and keeps positive positions only.
// Derived figures are computed by the caller.
func (r *Repo) GetHoldingRows(ctx context.Context) (holdings []model.Holding, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)

	slog.Debug("GetHoldingRows start", slog.String("rqID", rqID), slog.String("query", holdingsQuery))
	defer func() {
		if err != nil {
			slog.Error("GetHoldingRows failed", slog.String("rqID", rqID), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetHoldingRows completed", slog.String("rqID", rqID), slog.Int("count", len(holdings)))
		}
	}()

	rows, err := r.txOrDb(ctx).QueryxContext(ctx, holdingsQuery)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	for rows.Next() {
		var row dbModel.HoldingRow
		err = rows.StructScan(&row)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, dbConverter.ConvertHoldingRow(row))
	}

	return holdings, rows.Err()
}
