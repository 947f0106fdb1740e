package sqlRepo

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/KotFed0t/portfolio_tracker/data/repository"
	"github.com/KotFed0t/portfolio_tracker/internal/converter/dbConverter"
	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/internal/model/dbModel"
	"github.com/KotFed0t/portfolio_tracker/utils"
	"github.com/shopspring/decimal"
)

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// UpsertAsset registers the asset or overwrites name, type and platform of an existing one.
// The stored current price is kept.
func (r *Repo) UpsertAsset(ctx context.Context, asset model.AssetInput, now time.Time) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	query := `
		INSERT INTO assets (symbol, name, asset_type, platform, current_price, last_updated)
		VALUES (?, ?, ?, ?, 0, ?)
		ON CONFLICT (symbol) DO UPDATE SET
			name = excluded.name,
			asset_type = excluded.asset_type,
			platform = excluded.platform
		`

	slog.Debug("UpsertAsset start", slog.String("rqID", rqID), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("UpsertAsset failed", slog.String("rqID", rqID), slog.String("err", err.Error()))
		} else {
			slog.Debug("UpsertAsset completed", slog.String("rqID", rqID))
		}
	}()

	q := r.txOrDb(ctx)
	_, err = q.ExecContext(ctx, q.Rebind(query), asset.Symbol, asset.Name, string(asset.Type), nullString(asset.Platform), now)
	return err
}

func (r *Repo) GetAsset(ctx context.Context, symbol string) (asset model.Asset, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	query := `
		SELECT id, symbol, name, asset_type, platform, current_price, last_updated
		FROM assets
		WHERE symbol = ?
		`

	slog.Debug("GetAsset start", slog.String("rqID", rqID), slog.String("query", query))
	defer func() {
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			slog.Error("GetAsset failed", slog.String("rqID", rqID), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetAsset completed", slog.String("rqID", rqID))
		}
	}()

	dbAsset := dbModel.Asset{}
	q := r.txOrDb(ctx)
	err = q.GetContext(ctx, &dbAsset, q.Rebind(query), symbol)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Asset{}, repository.ErrNotFound
		}
		return model.Asset{}, err
	}

	return dbConverter.ConvertAsset(dbAsset), nil
}

func (r *Repo) GetAssets(ctx context.Context) (assets []model.Asset, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	query := `
		SELECT id, symbol, name, asset_type, platform, current_price, last_updated
		FROM assets
		ORDER BY symbol
		`

	slog.Debug("GetAssets start", slog.String("rqID", rqID), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("GetAssets failed", slog.String("rqID", rqID), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetAssets completed", slog.String("rqID", rqID))
		}
	}()

	rows, err := r.txOrDb(ctx).QueryxContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	for rows.Next() {
		var dbAsset dbModel.Asset
		err = rows.StructScan(&dbAsset)
		if err != nil {
			return nil, err
		}
		assets = append(assets, dbConverter.ConvertAsset(dbAsset))
	}

	return assets, rows.Err()
}

// DeleteAssetCascade removes the asset together with its transactions and price history.
func (r *Repo) DeleteAssetCascade(ctx context.Context, symbol string) error {
	return r.WithinTransaction(ctx, func(ctx context.Context) (err error) {
		rqID := utils.GetRequestIDFromCtx(ctx)
		slog.Debug("DeleteAssetCascade start", slog.String("rqID", rqID), slog.String("symbol", symbol))
		defer func() {
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				slog.Error("DeleteAssetCascade failed", slog.String("rqID", rqID), slog.String("err", err.Error()))
			} else {
				slog.Debug("DeleteAssetCascade completed", slog.String("rqID", rqID))
			}
		}()

		q := r.txOrDb(ctx)

		// children first, the foreign keys point at assets.symbol
		if _, err = q.ExecContext(ctx, q.Rebind(`DELETE FROM transactions WHERE asset_symbol = ?`), symbol); err != nil {
			return err
		}

		if _, err = q.ExecContext(ctx, q.Rebind(`DELETE FROM price_history WHERE asset_symbol = ?`), symbol); err != nil {
			return err
		}

		res, err := q.ExecContext(ctx, q.Rebind(`DELETE FROM assets WHERE symbol = ?`), symbol)
		if err != nil {
			return err
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}

		if affected == 0 {
			return repository.ErrNotFound
		}

		return nil
	})
}

// UpdateAssetPrice sets the current price and appends one price history point atomically.
func (r *Repo) UpdateAssetPrice(ctx context.Context, symbol string, price decimal.Decimal, at time.Time) error {
	return r.WithinTransaction(ctx, func(ctx context.Context) (err error) {
		rqID := utils.GetRequestIDFromCtx(ctx)
		slog.Debug("UpdateAssetPrice start", slog.String("rqID", rqID), slog.String("symbol", symbol), slog.String("price", price.String()))
		defer func() {
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				slog.Error("UpdateAssetPrice failed", slog.String("rqID", rqID), slog.String("err", err.Error()))
			} else {
				slog.Debug("UpdateAssetPrice completed", slog.String("rqID", rqID))
			}
		}()

		q := r.txOrDb(ctx)

		res, err := q.ExecContext(ctx, q.Rebind(`UPDATE assets SET current_price = ?, last_updated = ? WHERE symbol = ?`), price, at, symbol)
		if err != nil {
			return err
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}

		if affected == 0 {
			return repository.ErrNotFound
		}

		_, err = q.ExecContext(ctx, q.Rebind(`INSERT INTO price_history (asset_symbol, price, date) VALUES (?, ?, ?)`), symbol, price, at)
		return err
	})
}
