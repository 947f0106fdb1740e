package portfolioService

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/KotFed0t/portfolio_tracker/data/repository"
	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/internal/service"
	"github.com/KotFed0t/portfolio_tracker/utils"
)

// AddToWatchlist tracks a symbol that isn't necessarily held. Adding it again replaces the notes.
func (s *PortfolioService) AddToWatchlist(ctx context.Context, symbol, notes string) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.AddToWatchlist"

	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return service.ErrInvalidSymbol
	}

	err := s.repo.UpsertWatchlistItem(ctx, symbol, strings.TrimSpace(notes), s.now())
	if err != nil {
		slog.Error("got error from repo.UpsertWatchlistItem", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	return nil
}

func (s *PortfolioService) RemoveFromWatchlist(ctx context.Context, symbol string) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.RemoveFromWatchlist"

	err := s.repo.DeleteWatchlistItem(ctx, normalizeSymbol(symbol))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return service.ErrNotFound
		}
		slog.Error("got error from repo.DeleteWatchlistItem", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	return nil
}

func (s *PortfolioService) GetWatchlist(ctx context.Context) ([]model.WatchlistItem, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.GetWatchlist"

	items, err := s.repo.GetWatchlist(ctx)
	if err != nil {
		slog.Error("got error from repo.GetWatchlist", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	return items, nil
}
