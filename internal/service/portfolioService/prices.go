package portfolioService

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KotFed0t/portfolio_tracker/data/repository"
	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/internal/service"
	"github.com/KotFed0t/portfolio_tracker/utils"
	"github.com/shopspring/decimal"
)

// RefreshPrice resolves the current EUR price of a registered asset and stores it.
func (s *PortfolioService) RefreshPrice(ctx context.Context, symbol string) (model.PriceQuote, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.RefreshPrice"

	slog.Debug("RefreshPrice start", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", symbol))
	defer func() {
		slog.Debug("RefreshPrice finished", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", symbol))
	}()

	asset, err := s.GetAsset(ctx, symbol)
	if err != nil {
		return model.PriceQuote{}, err
	}

	return s.refreshAsset(ctx, asset)
}

func (s *PortfolioService) refreshAsset(ctx context.Context, asset model.Asset) (model.PriceQuote, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.refreshAsset"

	quote, err := s.resolver.Resolve(ctx, asset.Symbol, asset.Type)
	if err != nil {
		return model.PriceQuote{}, fmt.Errorf("%w: %w", service.ErrPriceNotResolved, err)
	}

	if !quote.PriceEUR.IsPositive() {
		return model.PriceQuote{}, fmt.Errorf("%w: non-positive price %s", service.ErrPriceNotResolved, quote.PriceEUR)
	}

	err = s.repo.UpdateAssetPrice(ctx, asset.Symbol, quote.PriceEUR, s.now())
	if err != nil {
		slog.Error("got error from repo.UpdateAssetPrice", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		if errors.Is(err, repository.ErrNotFound) {
			return model.PriceQuote{}, service.ErrAssetNotFound
		}
		return model.PriceQuote{}, err
	}

	slog.Info("price refreshed",
		slog.String("rqID", rqID),
		slog.String("symbol", asset.Symbol),
		slog.String("priceEUR", quote.PriceEUR.String()),
		slog.String("source", string(quote.Source)),
		slog.String("conversion", string(quote.Conversion)),
	)

	return quote, nil
}

// RefreshAllPrices refreshes every asset one after another and reports per symbol whether it worked.
// Price failures never abort the batch, only a storage error listing the assets or a cancelled context do.
func (s *PortfolioService) RefreshAllPrices(ctx context.Context) (map[string]bool, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.RefreshAllPrices"

	slog.Debug("RefreshAllPrices start", slog.String("rqID", rqID), slog.String("op", op))
	defer func() {
		slog.Debug("RefreshAllPrices finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	assets, err := s.GetAssets(ctx)
	if err != nil {
		return nil, err
	}

	results := make(map[string]bool, len(assets))
	cryptoSeen := false

	for _, asset := range assets {
		if asset.Type == model.AssetTypeCrypto {
			if cryptoSeen {
				if err = utils.Sleep(ctx, s.clock, s.opts.CryptoBatchDelay); err != nil {
					return results, err
				}
			}
			cryptoSeen = true
		}

		_, err = s.refreshAsset(ctx, asset)
		if err != nil {
			slog.Warn("price refresh failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", asset.Symbol), slog.String("err", err.Error()))
		}
		results[asset.Symbol] = err == nil
	}

	return results, nil
}

// SetPrice stores a manually entered EUR price.
func (s *PortfolioService) SetPrice(ctx context.Context, symbol string, price decimal.Decimal) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.SetPrice"
	symbol = normalizeSymbol(symbol)

	slog.Debug("SetPrice start", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", symbol), slog.String("price", price.String()))

	if !price.IsPositive() {
		return service.ErrNonPositivePrice
	}

	err := s.repo.UpdateAssetPrice(ctx, symbol, price, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return service.ErrAssetNotFound
		}
		slog.Error("got error from repo.UpdateAssetPrice", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	return nil
}

// GetPriceHistory lists recorded prices oldest first, of one asset or of all when symbol is empty.
func (s *PortfolioService) GetPriceHistory(ctx context.Context, symbol string) ([]model.PricePoint, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.GetPriceHistory"

	points, err := s.repo.GetPriceHistory(ctx, normalizeSymbol(symbol))
	if err != nil {
		slog.Error("got error from repo.GetPriceHistory", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	return points, nil
}

// RefreshPricesJob is the scheduled variant of RefreshAllPrices.
func (s *PortfolioService) RefreshPricesJob(ctx context.Context) error {
	if utils.GetRequestIDFromCtx(ctx) == "" {
		ctx = utils.WithRequestID(ctx)
	}
	rqID := utils.GetRequestIDFromCtx(ctx)

	results, err := s.RefreshAllPrices(ctx)
	if err != nil {
		return err
	}

	failed := make([]string, 0)
	for symbol, ok := range results {
		if !ok {
			failed = append(failed, symbol)
		}
	}

	slog.Info("prices refresh job done",
		slog.String("rqID", rqID),
		slog.Int("total", len(results)),
		slog.Int("failed", len(failed)),
		slog.Any("failedSymbols", failed),
	)

	return nil
}
