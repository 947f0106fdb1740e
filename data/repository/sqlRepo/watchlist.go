package sqlRepo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/KotFed0t/portfolio_tracker/data/repository"
	"github.com/KotFed0t/portfolio_tracker/internal/converter/dbConverter"
	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/internal/model/dbModel"
	"github.com/KotFed0t/portfolio_tracker/utils"
)

// UpsertWatchlistItem adds the symbol to the watchlist or replaces its notes.
func (r *Repo) UpsertWatchlistItem(ctx context.Context, symbol, notes string, at time.Time) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	query := `
		INSERT INTO watchlist (symbol, notes, added_at) VALUES (?, ?, ?)
		ON CONFLICT (symbol) DO UPDATE SET notes = excluded.notes
		`

	slog.Debug("UpsertWatchlistItem start", slog.String("rqID", rqID), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("UpsertWatchlistItem failed", slog.String("rqID", rqID), slog.String("err", err.Error()))
		} else {
			slog.Debug("UpsertWatchlistItem completed", slog.String("rqID", rqID))
		}
	}()

	q := r.txOrDb(ctx)
	_, err = q.ExecContext(ctx, q.Rebind(query), symbol, nullString(notes), at)
	return err
}

func (r *Repo) DeleteWatchlistItem(ctx context.Context, symbol string) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	query := `DELETE FROM watchlist WHERE symbol = ?`

	slog.Debug("DeleteWatchlistItem start", slog.String("rqID", rqID), slog.String("query", query))
	defer func() {
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			slog.Error("DeleteWatchlistItem failed", slog.String("rqID", rqID), slog.String("err", err.Error()))
		} else {
			slog.Debug("DeleteWatchlistItem completed", slog.String("rqID", rqID))
		}
	}()

	q := r.txOrDb(ctx)
	res, err := q.ExecContext(ctx, q.Rebind(query), symbol)
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

func (r *Repo) GetWatchlist(ctx context.Context) (items []model.WatchlistItem, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	query := `SELECT id, symbol, notes, added_at FROM watchlist ORDER BY added_at DESC, id DESC`

	slog.Debug("GetWatchlist start", slog.String("rqID", rqID), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("GetWatchlist failed", slog.String("rqID", rqID), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetWatchlist completed", slog.String("rqID", rqID))
		}
	}()

	var dbItems []dbModel.WatchlistItem
	err = r.txOrDb(ctx).SelectContext(ctx, &dbItems, query)
	if err != nil {
		return nil, err
	}

	items = make([]model.WatchlistItem, 0, len(dbItems))
	for _, item := range dbItems {
		items = append(items, dbConverter.ConvertWatchlistItem(item))
	}

	return items, nil
}
