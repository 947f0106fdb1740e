package sqlRepo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/KotFed0t/portfolio_tracker/data/repository"
	"github.com/KotFed0t/portfolio_tracker/internal/converter/dbConverter"
	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/internal/model/dbModel"
	"github.com/KotFed0t/portfolio_tracker/utils"
)

func (r *Repo) InsertTransaction(ctx context.Context, tx model.Transaction) (id int64, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	query := `
		INSERT INTO transactions
			(asset_symbol, transaction_type, amount, price_per_unit, total_value, fees, platform, transaction_date, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
		`

	slog.Debug("InsertTransaction start", slog.String("rqID", rqID), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("InsertTransaction failed", slog.String("rqID", rqID), slog.String("err", err.Error()))
		} else {
			slog.Debug("InsertTransaction completed", slog.String("rqID", rqID), slog.Int64("id", id))
		}
	}()

	q := r.txOrDb(ctx)
	err = q.QueryRowxContext(ctx, q.Rebind(query),
		tx.AssetSymbol,
		string(tx.Type),
		tx.Amount,
		tx.PricePerUnit,
		tx.TotalValue,
		tx.Fees,
		nullString(tx.Platform),
		tx.Date,
		nullString(tx.Notes),
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *Repo) DeleteTransaction(ctx context.Context, id int64) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	query := `DELETE FROM transactions WHERE id = ?`

	slog.Debug("DeleteTransaction start", slog.String("rqID", rqID), slog.String("query", query))
	defer func() {
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			slog.Error("DeleteTransaction failed", slog.String("rqID", rqID), slog.String("err", err.Error()))
		} else {
			slog.Debug("DeleteTransaction completed", slog.String("rqID", rqID))
		}
	}()

	q := r.txOrDb(ctx)
	res, err := q.ExecContext(ctx, q.Rebind(query), id)
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
}

// GetTransactions returns the ledger newest first, restricted to one asset when symbol is not empty.
func (r *Repo) GetTransactions(ctx context.Context, symbol string) (transactions []model.Transaction, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	query := `
		SELECT id, asset_symbol, transaction_type, amount, price_per_unit, total_value, fees, platform, transaction_date, notes
		FROM transactions
		`
	args := []any{}
	if symbol != "" {
		query += `WHERE asset_symbol = ?
		`
		args = append(args, symbol)
	}
	query += `ORDER BY transaction_date DESC, id DESC`

	slog.Debug("GetTransactions start", slog.String("rqID", rqID), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("GetTransactions failed", slog.String("rqID", rqID), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetTransactions completed", slog.String("rqID", rqID))
		}
	}()

	q := r.txOrDb(ctx)
	rows, err := q.QueryxContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	for rows.Next() {
		var dbTx dbModel.Transaction
		err = rows.StructScan(&dbTx)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, dbConverter.ConvertTransaction(dbTx))
	}

	return transactions, rows.Err()
}
