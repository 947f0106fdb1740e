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

// AddAsset registers an asset, or updates name, type and platform of an existing one,
// and tries to fetch its price right away.
func (s *PortfolioService) AddAsset(ctx context.Context, in model.AssetInput) (model.Asset, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.AddAsset"

	slog.Debug("AddAsset start", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", in.Symbol))
	defer func() {
		slog.Debug("AddAsset finished", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", in.Symbol))
	}()

	in.Symbol = normalizeSymbol(in.Symbol)
	if in.Symbol == "" {
		return model.Asset{}, service.ErrInvalidSymbol
	}

	in.Type = model.AssetType(strings.ToLower(strings.TrimSpace(string(in.Type))))
	if !in.Type.Valid() {
		return model.Asset{}, service.ErrInvalidAssetType
	}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		in.Name = in.Symbol
	}
	in.Platform = strings.TrimSpace(in.Platform)

	err := s.repo.UpsertAsset(ctx, in, s.now())
	if err != nil {
		slog.Error("got error from repo.UpsertAsset", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.Asset{}, err
	}

	_, err = s.RefreshPrice(ctx, in.Symbol)
	if err != nil {
		slog.Warn("initial price refresh failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", in.Symbol), slog.String("err", err.Error()))
	}

	return s.GetAsset(ctx, in.Symbol)
}

func (s *PortfolioService) GetAsset(ctx context.Context, symbol string) (model.Asset, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.GetAsset"

	asset, err := s.repo.GetAsset(ctx, normalizeSymbol(symbol))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Asset{}, service.ErrAssetNotFound
		}
		slog.Error("got error from repo.GetAsset", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.Asset{}, err
	}

	return asset, nil
}

func (s *PortfolioService) GetAssets(ctx context.Context) ([]model.Asset, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.GetAssets"

	assets, err := s.repo.GetAssets(ctx)
	if err != nil {
		slog.Error("got error from repo.GetAssets", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	return assets, nil
}

// DeleteAsset removes the asset together with its transactions and price history.
func (s *PortfolioService) DeleteAsset(ctx context.Context, symbol string) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.DeleteAsset"
	symbol = normalizeSymbol(symbol)

	slog.Debug("DeleteAsset start", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", symbol))
	defer func() {
		slog.Debug("DeleteAsset finished", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", symbol))
	}()

	err := s.repo.DeleteAssetCascade(ctx, symbol)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return service.ErrAssetNotFound
		}
		slog.Error("got error from repo.DeleteAssetCascade", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	return nil
}
