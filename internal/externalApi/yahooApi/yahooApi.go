package yahooApi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/KotFed0t/portfolio_tracker/config"
	"github.com/KotFed0t/portfolio_tracker/internal/externalApi"
	"github.com/KotFed0t/portfolio_tracker/internal/model/yahooModel"
	"github.com/KotFed0t/portfolio_tracker/utils"
	"github.com/PaesslerAG/jsonpath"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

type YahooApi struct {
	client *resty.Client
}

func New(cfg *config.Config) *YahooApi {
	client := resty.New().
		SetDebug(cfg.API.Debug).
		SetTimeout(cfg.API.Timeout).
		SetBaseURL(cfg.API.YahooApi.Url).
		SetHeader("User-Agent", userAgent)
	return &YahooApi{client: client}
}

// GetQuote fetches the daily chart of a ticker: the most recent close, the trading
// currency and whatever instantaneous quote fields the provider included.
// Currency pairs use the provider's synthetic tickers, e.g. "EURUSD=X".
func (a *YahooApi) GetQuote(ctx context.Context, symbol string) (yahooModel.Quote, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "YahooApi.GetQuote"
	params := map[string]string{
		"range":    "5d",
		"interval": "1d",
	}

	slog.Debug("start YahooApi.GetQuote request", slog.String("rqID", rqID), slog.String("symbol", symbol))

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetPathParam("symbol", symbol).
		SetQueryParams(params).
		Get("/v8/finance/chart/{symbol}")

	if err != nil {
		slog.Error("error while dialing YahooApi", slog.String("err", err.Error()), slog.String("rqID", rqID), slog.String("op", op))
		return yahooModel.Quote{}, err
	}

	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusNotFound:
		return yahooModel.Quote{}, externalApi.ErrNotFound
	case http.StatusTooManyRequests:
		return yahooModel.Quote{}, externalApi.ErrRateLimited
	default:
		slog.Error("unexpected YahooApi status", slog.Int("status", resp.StatusCode()), slog.String("rqID", rqID), slog.String("op", op))
		return yahooModel.Quote{}, fmt.Errorf("%w: %d", externalApi.ErrUnexpectedStatus, resp.StatusCode())
	}

	var raw any
	err = json.Unmarshal(resp.Body(), &raw)
	if err != nil {
		slog.Error("can't unmarshall YahooApi response", slog.String("err", err.Error()), slog.String("rqID", rqID), slog.String("op", op))
		return yahooModel.Quote{}, err
	}

	quote, err := parseChart(symbol, raw)
	if err != nil {
		slog.Warn("can't parse YahooApi chart", slog.String("err", err.Error()), slog.String("rqID", rqID), slog.String("symbol", symbol))
		return yahooModel.Quote{}, err
	}

	slog.Debug("YahooApi.GetQuote request complete", slog.String("rqID", rqID), slog.String("symbol", symbol))

	return quote, nil
}

func parseChart(symbol string, raw any) (yahooModel.Quote, error) {
	meta, err := jsonpath.Get("$.chart.result[0].meta", raw)
	if err != nil {
		return yahooModel.Quote{}, fmt.Errorf("%w: no chart result for %s", externalApi.ErrNotFound, symbol)
	}

	metaMap, ok := meta.(map[string]any)
	if !ok {
		return yahooModel.Quote{}, fmt.Errorf("%w: malformed chart meta for %s", externalApi.ErrNotFound, symbol)
	}

	quote := yahooModel.Quote{
		Symbol:      symbol,
		QuoteFields: make(map[string]decimal.Decimal),
	}

	if currency, ok := metaMap["currency"].(string); ok {
		quote.Currency = currency
	}

	closes, err := jsonpath.Get("$.chart.result[0].indicators.quote[0].close", raw)
	if err == nil {
		if closeList, ok := closes.([]any); ok {
			quote.LastClose = lastPositive(closeList)
		}
	}

	for _, field := range yahooModel.QuoteFieldPriority {
		if v, ok := metaMap[field].(float64); ok && v > 0 {
			quote.QuoteFields[field] = decimal.NewFromFloat(v)
		}
	}

	if quote.LastClose.IsZero() && len(quote.QuoteFields) == 0 {
		return yahooModel.Quote{}, fmt.Errorf("%w: no price in chart for %s", externalApi.ErrNotFound, symbol)
	}

	return quote, nil
}

// lastPositive returns the latest non-null positive value, the chart pads missing sessions with nulls.
func lastPositive(values []any) decimal.Decimal {
	for i := len(values) - 1; i >= 0; i-- {
		if v, ok := values[i].(float64); ok && v > 0 {
			return decimal.NewFromFloat(v)
		}
	}
	return decimal.Zero
}
