package sqlRepo

import (
	"context"
	"log/slog"

	"github.com/KotFed0t/portfolio_tracker/internal/converter/dbConverter"
	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/internal/model/dbModel"
	"github.com/KotFed0t/portfolio_tracker/utils"
)

// GetPriceHistory returns price points oldest first. Without a symbol every asset's
// history is returned together with the asset name.
func (r *Repo) GetPriceHistory(ctx context.Context, symbol string) (points []model.PricePoint, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	var (
		query string
		args  []any
	)

	if symbol != "" {
		query = `
			SELECT id, asset_symbol, price, date
			FROM price_history
			WHERE asset_symbol = ?
			ORDER BY date ASC, id ASC
			`
		args = append(args, symbol)
	} else {
		query = `
			SELECT ph.id, ph.asset_symbol, a.name AS asset_name, ph.price, ph.date
			FROM price_history ph
			JOIN assets a ON ph.asset_symbol = a.symbol
			ORDER BY ph.date ASC, ph.id ASC
			`
	}

	slog.Debug("GetPriceHistory start", slog.String("rqID", rqID), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("GetPriceHistory failed", slog.String("rqID", rqID), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetPriceHistory completed", slog.String("rqID", rqID))
		}
	}()

	q := r.txOrDb(ctx)
	rows, err := q.QueryxContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	for rows.Next() {
		var dbPoint dbModel.PricePoint
		err = rows.StructScan(&dbPoint)
		if err != nil {
			return nil, err
		}
		points = append(points, dbConverter.ConvertPricePoint(dbPoint))
	}

	return points, rows.Err()
}
