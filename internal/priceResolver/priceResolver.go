package priceResolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KotFed0t/portfolio_tracker/internal/externalApi"
	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/internal/model/yahooModel"
	"github.com/KotFed0t/portfolio_tracker/utils"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("price not found")

const (
	currencyEUR = "EUR"
	currencyUSD = "USD"
	currencyGBP = "GBP"
	currencyCHF = "CHF"
	currencyJPY = "JPY"

	fieldClose = "close"
	fieldSpot  = "spot"
)

// fallbackRates are approximate EUR per unit of currency, used only when the live pair quote fails.
var fallbackRates = map[string]decimal.Decimal{
	currencyUSD: decimal.RequireFromString("0.92"),
	currencyGBP: decimal.RequireFromString("1.17"),
	currencyCHF: decimal.RequireFromString("1.04"),
	currencyJPY: decimal.RequireFromString("0.0062"),
}

var hundred = decimal.NewFromInt(100)

type QuoteProvider interface {
	GetQuote(ctx context.Context, symbol string) (yahooModel.Quote, error)
}

type CryptoPricer interface {
	GetPriceEUR(ctx context.Context, coinID string) (decimal.Decimal, error)
}

type CoinLookup interface {
	Lookup(ctx context.Context, symbol string) (string, bool)
}

type Options struct {
	// RequestDelay is waited before every crypto price request.
	RequestDelay time.Duration
	// RateLimitBackoff is waited before the single retry after a rate limited response.
	RateLimitBackoff time.Duration
}

type Resolver struct {
	quotes QuoteProvider
	crypto CryptoPricer
	coins  CoinLookup
	clock  clockwork.Clock
	opts   Options
}

func New(quotes QuoteProvider, crypto CryptoPricer, coins CoinLookup, clock clockwork.Clock, opts Options) *Resolver {
	return &Resolver{
		quotes: quotes,
		crypto: crypto,
		coins:  coins,
		clock:  clock,
		opts:   opts,
	}
}

// Resolve returns the current EUR price of symbol. Every failure wraps ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, symbol string, assetType model.AssetType) (model.PriceQuote, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Resolver.Resolve"

	slog.Debug("Resolve start", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", symbol), slog.String("type", string(assetType)))

	var (
		quote model.PriceQuote
		err   error
	)
	if assetType == model.AssetTypeCrypto {
		quote, err = r.resolveCrypto(ctx, symbol)
	} else {
		quote, err = r.resolveMarket(ctx, symbol)
	}
	if err != nil {
		slog.Warn("price not resolved", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", symbol), slog.String("err", err.Error()))
		return model.PriceQuote{}, fmt.Errorf("%w: %s: %w", ErrNotFound, symbol, err)
	}

	slog.Debug("Resolve finished", slog.String("rqID", rqID), slog.String("op", op),
		slog.String("symbol", symbol),
		slog.String("price", quote.PriceEUR.String()),
		slog.String("conversion", string(quote.Conversion)),
	)

	return quote, nil
}

func (r *Resolver) resolveCrypto(ctx context.Context, symbol string) (model.PriceQuote, error) {
	coinID, ok := r.coins.Lookup(ctx, symbol)
	if !ok {
		return model.PriceQuote{}, errors.New("unknown crypto symbol")
	}

	price, err := r.cryptoPrice(ctx, coinID)
	if err != nil {
		return model.PriceQuote{}, err
	}
	if !price.IsPositive() {
		return model.PriceQuote{}, errors.New("non-positive crypto price")
	}

	return model.PriceQuote{
		Symbol:         symbol,
		PriceEUR:       price,
		NativePrice:    price,
		NativeCurrency: currencyEUR,
		Source:         model.SourceCoinGecko,
		PriceField:     fieldSpot,
		Conversion:     model.ConversionNone,
	}, nil
}

func (r *Resolver) cryptoPrice(ctx context.Context, coinID string) (decimal.Decimal, error) {
	if err := utils.Sleep(ctx, r.clock, r.opts.RequestDelay); err != nil {
		return decimal.Zero, err
	}

	price, err := r.crypto.GetPriceEUR(ctx, coinID)
	if !errors.Is(err, externalApi.ErrRateLimited) {
		return price, err
	}

	slog.Info("crypto price rate limited, retrying once",
		slog.String("rqID", utils.GetRequestIDFromCtx(ctx)),
		slog.String("coinID", coinID),
		slog.Duration("backoff", r.opts.RateLimitBackoff),
	)

	if err = utils.Sleep(ctx, r.clock, r.opts.RateLimitBackoff); err != nil {
		return decimal.Zero, err
	}
	return r.crypto.GetPriceEUR(ctx, coinID)
}

func (r *Resolver) resolveMarket(ctx context.Context, symbol string) (model.PriceQuote, error) {
	q, err := r.quotes.GetQuote(ctx, symbol)
	if err != nil {
		return model.PriceQuote{}, err
	}

	native, field, ok := pickPrice(q)
	if !ok {
		return model.PriceQuote{}, errors.New("no usable price in quote")
	}

	currency := strings.TrimSpace(q.Currency)
	switch currency {
	case "GBp", "GBX":
		native = native.Div(hundred)
		currency = currencyGBP
	case "":
		currency = currencyUSD
	default:
		currency = strings.ToUpper(currency)
	}

	res := model.PriceQuote{
		Symbol:         symbol,
		NativePrice:    native,
		NativeCurrency: currency,
		Source:         model.SourceYahoo,
		PriceField:     field,
	}

	if currency == currencyEUR {
		res.PriceEUR = native
		res.Conversion = model.ConversionNone
		return res, nil
	}

	eur, rate, err := r.convertLive(ctx, native, currency)
	if err == nil {
		res.PriceEUR = eur
		res.Rate = rate
		res.Conversion = model.ConversionLiveRate
		return res, nil
	}

	slog.Warn("live fx rate unavailable, using fallback rate",
		slog.String("rqID", utils.GetRequestIDFromCtx(ctx)),
		slog.String("currency", currency),
		slog.String("err", err.Error()),
	)

	fallback, ok := fallbackRates[currency]
	if !ok {
		return model.PriceQuote{}, fmt.Errorf("no rate for %s: %w", currency, err)
	}
	res.PriceEUR = native.Mul(fallback)
	res.Rate = fallback
	res.Conversion = model.ConversionFallbackRate
	return res, nil
}

// convertLive converts native into EUR with the provider's currency pair quote.
// The pair direction differs per currency, so the arithmetic does too.
func (r *Resolver) convertLive(ctx context.Context, native decimal.Decimal, currency string) (decimal.Decimal, decimal.Decimal, error) {
	switch currency {
	case currencyUSD:
		rate, err := r.pairRate(ctx, "EURUSD=X")
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		return native.Div(rate), rate, nil
	case currencyCHF:
		rate, err := r.pairRate(ctx, "EURCHF=X")
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		return native.Div(rate), rate, nil
	case currencyGBP:
		// quoted as EUR per GBP
		rate, err := r.pairRate(ctx, "GBPEUR=X")
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		return native.Mul(rate), rate, nil
	case currencyJPY:
		rate, err := r.pairRate(ctx, "EURJPY=X")
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		return native.Div(rate), rate, nil
	default:
		rate, err := r.pairRate(ctx, "EUR"+currency+"=X")
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		return native.Div(rate), rate, nil
	}
}

func (r *Resolver) pairRate(ctx context.Context, ticker string) (decimal.Decimal, error) {
	q, err := r.quotes.GetQuote(ctx, ticker)
	if err != nil {
		return decimal.Zero, err
	}
	rate, _, ok := pickPrice(q)
	if !ok {
		return decimal.Zero, fmt.Errorf("no rate in %s quote", ticker)
	}
	return rate, nil
}

// pickPrice prefers the last close and falls back to the instantaneous quote fields.
func pickPrice(q yahooModel.Quote) (decimal.Decimal, string, bool) {
	if q.LastClose.IsPositive() {
		return q.LastClose, fieldClose, true
	}
	for _, field := range yahooModel.QuoteFieldPriority {
		if v, ok := q.QuoteFields[field]; ok && v.IsPositive() {
			return v, field, true
		}
	}
	return decimal.Zero, "", false
}
