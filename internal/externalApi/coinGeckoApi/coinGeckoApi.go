package coinGeckoApi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/KotFed0t/portfolio_tracker/config"
	"github.com/KotFed0t/portfolio_tracker/internal/externalApi"
	"github.com/KotFed0t/portfolio_tracker/internal/model/coinGeckoModel"
	"github.com/KotFed0t/portfolio_tracker/utils"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const vsCurrency = "eur"

type CoinGeckoApi struct {
	client *resty.Client
}

func New(cfg *config.Config) *CoinGeckoApi {
	client := resty.New().
		SetDebug(cfg.API.Debug).
		SetTimeout(cfg.API.Timeout).
		SetBaseURL(cfg.API.CoinGeckoApi.Url)
	return &CoinGeckoApi{client: client}
}

func checkStatus(resp *resty.Response) error {
	switch resp.StatusCode() {
	case http.StatusOK:
		return nil
	case http.StatusTooManyRequests:
		return externalApi.ErrRateLimited
	case http.StatusNotFound:
		return externalApi.ErrNotFound
	default:
		return fmt.Errorf("%w: %d", externalApi.ErrUnexpectedStatus, resp.StatusCode())
	}
}

// GetPriceEUR returns the spot price of a coin, identified by its CoinGecko id, in EUR.
func (a *CoinGeckoApi) GetPriceEUR(ctx context.Context, coinID string) (decimal.Decimal, error) {
	rqId := utils.GetRequestIDFromCtx(ctx)
	params := map[string]string{
		"ids":           coinID,
		"vs_currencies": vsCurrency,
	}

	slog.Debug("start CoinGeckoApi.GetPriceEUR request", slog.String("rqID", rqId), slog.String("coinID", coinID))

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(params).
		Get("/simple/price")

	if err != nil {
		slog.Error("error while dialing CoinGeckoApi", slog.String("err", err.Error()), slog.String("rqID", rqId))
		return decimal.Zero, err
	}

	if err = checkStatus(resp); err != nil {
		slog.Warn("CoinGeckoApi.GetPriceEUR bad status", slog.String("err", err.Error()), slog.String("rqID", rqId))
		return decimal.Zero, err
	}

	prices := coinGeckoModel.SimplePrice{}
	err = json.Unmarshal(resp.Body(), &prices)
	if err != nil {
		slog.Error("can't unmarshall response into coinGeckoModel.SimplePrice", slog.String("err", err.Error()), slog.String("rqID", rqId))
		return decimal.Zero, err
	}

	price, ok := prices[coinID][vsCurrency]
	if !ok {
		return decimal.Zero, externalApi.ErrNotFound
	}

	slog.Debug("CoinGeckoApi.GetPriceEUR request complete", slog.String("rqID", rqId))

	return decimal.NewFromFloat(price), nil
}

// GetCoinsList returns every coin the provider knows about.
func (a *CoinGeckoApi) GetCoinsList(ctx context.Context) ([]coinGeckoModel.Coin, error) {
	rqId := utils.GetRequestIDFromCtx(ctx)

	slog.Debug("start CoinGeckoApi.GetCoinsList request", slog.String("rqID", rqId))

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get("/coins/list")

	if err != nil {
		slog.Error("error while dialing CoinGeckoApi", slog.String("err", err.Error()), slog.String("rqID", rqId))
		return nil, err
	}

	if err = checkStatus(resp); err != nil {
		slog.Warn("CoinGeckoApi.GetCoinsList bad status", slog.String("err", err.Error()), slog.String("rqID", rqId))
		return nil, err
	}

	var coins []coinGeckoModel.Coin
	err = json.Unmarshal(resp.Body(), &coins)
	if err != nil {
		slog.Error("can't unmarshall response into []coinGeckoModel.Coin", slog.String("err", err.Error()), slog.String("rqID", rqId))
		return nil, err
	}

	slog.Debug("CoinGeckoApi.GetCoinsList request complete", slog.String("rqID", rqId), slog.Int("coins", len(coins)))

	return coins, nil
}
