package priceResolver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KotFed0t/portfolio_tracker/internal/externalApi"
	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/internal/model/yahooModel"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuotes struct {
	quotes map[string]yahooModel.Quote
	errs   map[string]error
	calls  []string
}

func (f *fakeQuotes) GetQuote(_ context.Context, symbol string) (yahooModel.Quote, error) {
	f.calls = append(f.calls, symbol)
	if err, ok := f.errs[symbol]; ok {
		return yahooModel.Quote{}, err
	}
	q, ok := f.quotes[symbol]
	if !ok {
		return yahooModel.Quote{}, externalApi.ErrNotFound
	}
	return q, nil
}

type cryptoResult struct {
	price decimal.Decimal
	err   error
}

type fakeCrypto struct {
	results []cryptoResult
	calls   int
}

func (f *fakeCrypto) GetPriceEUR(_ context.Context, _ string) (decimal.Decimal, error) {
	res := f.results[f.calls]
	f.calls++
	return res.price, res.err
}

type fakeCoins map[string]string

func (f fakeCoins) Lookup(_ context.Context, symbol string) (string, bool) {
	id, ok := f[symbol]
	return id, ok
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func closeQuote(currency, price string) yahooModel.Quote {
	return yahooModel.Quote{Currency: currency, LastClose: dec(price), QuoteFields: map[string]decimal.Decimal{}}
}

func newResolver(quotes *fakeQuotes, crypto *fakeCrypto) *Resolver {
	return New(quotes, crypto, fakeCoins{"BTC": "bitcoin"}, clockwork.NewFakeClock(), Options{})
}

func TestResolve_EURUnchanged(t *testing.T) {
	quotes := &fakeQuotes{quotes: map[string]yahooModel.Quote{"SAP.DE": closeQuote("EUR", "182.4")}}
	r := newResolver(quotes, nil)

	q, err := r.Resolve(context.Background(), "SAP.DE", model.AssetTypeStock)
	require.NoError(t, err)

	assert.True(t, q.PriceEUR.Equal(dec("182.4")))
	assert.Equal(t, model.ConversionNone, q.Conversion)
	assert.Equal(t, model.SourceYahoo, q.Source)
	assert.Equal(t, "close", q.PriceField)
	assert.Equal(t, []string{"SAP.DE"}, quotes.calls)
}

func TestResolve_USDDividesByEURUSD(t *testing.T) {
	quotes := &fakeQuotes{quotes: map[string]yahooModel.Quote{
		"AAPL":     closeQuote("USD", "189"),
		"EURUSD=X": closeQuote("USD", "1.08"),
	}}
	r := newResolver(quotes, nil)

	q, err := r.Resolve(context.Background(), "AAPL", model.AssetTypeStock)
	require.NoError(t, err)

	assert.InDelta(t, 175.0, q.PriceEUR.InexactFloat64(), 1e-9)
	assert.Equal(t, model.ConversionLiveRate, q.Conversion)
	assert.True(t, q.Rate.Equal(dec("1.08")))
	assert.Equal(t, "USD", q.NativeCurrency)
}

func TestResolve_CHFDividesByEURCHF(t *testing.T) {
	quotes := &fakeQuotes{quotes: map[string]yahooModel.Quote{
		"NESN.SW":  closeQuote("CHF", "94"),
		"EURCHF=X": closeQuote("CHF", "0.94"),
	}}
	r := newResolver(quotes, nil)

	q, err := r.Resolve(context.Background(), "NESN.SW", model.AssetTypeStock)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, q.PriceEUR.InexactFloat64(), 1e-9)
	assert.Contains(t, quotes.calls, "EURCHF=X")
}

func TestResolve_GBPMultipliesByGBPEUR(t *testing.T) {
	quotes := &fakeQuotes{quotes: map[string]yahooModel.Quote{
		"ULVR.L":   closeQuote("GBP", "40"),
		"GBPEUR=X": closeQuote("EUR", "1.2"),
	}}
	r := newResolver(quotes, nil)

	q, err := r.Resolve(context.Background(), "ULVR.L", model.AssetTypeStock)
	require.NoError(t, err)

	assert.True(t, q.PriceEUR.Equal(dec("48")), q.PriceEUR.String())
	assert.Equal(t, model.ConversionLiveRate, q.Conversion)
}

func TestResolve_PenceAreConvertedToPounds(t *testing.T) {
	quotes := &fakeQuotes{quotes: map[string]yahooModel.Quote{
		"VOD.L":    closeQuote("GBp", "7200"),
		"GBPEUR=X": closeQuote("EUR", "1.2"),
	}}
	r := newResolver(quotes, nil)

	q, err := r.Resolve(context.Background(), "VOD.L", model.AssetTypeStock)
	require.NoError(t, err)

	assert.Equal(t, "GBP", q.NativeCurrency)
	assert.True(t, q.NativePrice.Equal(dec("72")))
	assert.True(t, q.PriceEUR.Equal(dec("86.4")), q.PriceEUR.String())
}

func TestResolve_JPYDividesByEURJPY(t *testing.T) {
	quotes := &fakeQuotes{quotes: map[string]yahooModel.Quote{
		"7203.T":   closeQuote("JPY", "3200"),
		"EURJPY=X": closeQuote("JPY", "160"),
	}}
	r := newResolver(quotes, nil)

	q, err := r.Resolve(context.Background(), "7203.T", model.AssetTypeStock)
	require.NoError(t, err)

	assert.True(t, q.PriceEUR.Equal(dec("20")), q.PriceEUR.String())
}

func TestResolve_OtherCurrencyUsesEURPair(t *testing.T) {
	quotes := &fakeQuotes{quotes: map[string]yahooModel.Quote{
		"NOVO-B.CO": closeQuote("DKK", "746"),
		"EURDKK=X":  closeQuote("DKK", "7.46"),
	}}
	r := newResolver(quotes, nil)

	q, err := r.Resolve(context.Background(), "NOVO-B.CO", model.AssetTypeStock)
	require.NoError(t, err)

	assert.True(t, q.PriceEUR.Equal(dec("100")), q.PriceEUR.String())
	assert.Equal(t, model.ConversionLiveRate, q.Conversion)
}

func TestResolve_FallbackRateWhenPairFails(t *testing.T) {
	quotes := &fakeQuotes{
		quotes: map[string]yahooModel.Quote{"AAPL": closeQuote("USD", "100")},
		errs:   map[string]error{"EURUSD=X": errors.New("timeout")},
	}
	r := newResolver(quotes, nil)

	q, err := r.Resolve(context.Background(), "AAPL", model.AssetTypeStock)
	require.NoError(t, err)

	assert.Equal(t, model.ConversionFallbackRate, q.Conversion)
	assert.True(t, q.PriceEUR.Equal(dec("92")), q.PriceEUR.String())
	assert.True(t, q.Rate.Equal(dec("0.92")))
}

func TestResolve_FallbackGBPMultiplies(t *testing.T) {
	quotes := &fakeQuotes{quotes: map[string]yahooModel.Quote{"ULVR.L": closeQuote("GBP", "10")}}
	r := newResolver(quotes, nil)

	q, err := r.Resolve(context.Background(), "ULVR.L", model.AssetTypeStock)
	require.NoError(t, err)

	assert.Equal(t, model.ConversionFallbackRate, q.Conversion)
	assert.True(t, q.PriceEUR.Equal(dec("11.7")), q.PriceEUR.String())
}

func TestResolve_NoLiveAndNoFallbackRateFails(t *testing.T) {
	quotes := &fakeQuotes{quotes: map[string]yahooModel.Quote{"NOVO-B.CO": closeQuote("DKK", "746")}}
	r := newResolver(quotes, nil)

	_, err := r.Resolve(context.Background(), "NOVO-B.CO", model.AssetTypeStock)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolve_SecondaryQuoteFieldsInPriorityOrder(t *testing.T) {
	quotes := &fakeQuotes{quotes: map[string]yahooModel.Quote{
		"ASML.AS": {
			Currency: "EUR",
			QuoteFields: map[string]decimal.Decimal{
				"bid":                dec("600"),
				"regularMarketPrice": dec("610"),
			},
		},
	}}
	r := newResolver(quotes, nil)

	q, err := r.Resolve(context.Background(), "ASML.AS", model.AssetTypeETF)
	require.NoError(t, err)

	assert.Equal(t, "regularMarketPrice", q.PriceField)
	assert.True(t, q.PriceEUR.Equal(dec("610")))
}

func TestResolve_SecondaryFieldIsConverted(t *testing.T) {
	quotes := &fakeQuotes{quotes: map[string]yahooModel.Quote{
		"SPY":      {Currency: "USD", QuoteFields: map[string]decimal.Decimal{"currentPrice": dec("540")}},
		"EURUSD=X": closeQuote("USD", "1.08"),
	}}
	r := newResolver(quotes, nil)

	q, err := r.Resolve(context.Background(), "SPY", model.AssetTypeETF)
	require.NoError(t, err)

	assert.Equal(t, "currentPrice", q.PriceField)
	assert.True(t, q.PriceEUR.Equal(dec("500")), q.PriceEUR.String())
}

func TestResolve_ProviderErrorIsNotFound(t *testing.T) {
	quotes := &fakeQuotes{errs: map[string]error{"FAIL": externalApi.ErrUnexpectedStatus}}
	r := newResolver(quotes, nil)

	_, err := r.Resolve(context.Background(), "FAIL", model.AssetTypeStock)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, externalApi.ErrUnexpectedStatus)
}

func TestResolve_Crypto(t *testing.T) {
	crypto := &fakeCrypto{results: []cryptoResult{{price: dec("45000")}}}
	quotes := &fakeQuotes{}
	r := newResolver(quotes, crypto)

	q, err := r.Resolve(context.Background(), "BTC", model.AssetTypeCrypto)
	require.NoError(t, err)

	assert.True(t, q.PriceEUR.Equal(dec("45000")))
	assert.Equal(t, model.SourceCoinGecko, q.Source)
	assert.Equal(t, model.ConversionNone, q.Conversion)
	assert.Empty(t, quotes.calls)
}

func TestResolve_UnmappedCryptoFails(t *testing.T) {
	crypto := &fakeCrypto{}
	r := newResolver(&fakeQuotes{}, crypto)

	_, err := r.Resolve(context.Background(), "NOPE", model.AssetTypeCrypto)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, crypto.calls)
}

func TestResolve_CryptoRetriesOnceAfterRateLimit(t *testing.T) {
	crypto := &fakeCrypto{results: []cryptoResult{
		{err: externalApi.ErrRateLimited},
		{price: dec("2100")},
	}}
	clock := clockwork.NewFakeClock()
	r := New(&fakeQuotes{}, crypto, fakeCoins{"ETH": "ethereum"}, clock, Options{
		RequestDelay:     1200 * time.Millisecond,
		RateLimitBackoff: 5 * time.Second,
	})

	type result struct {
		q   model.PriceQuote
		err error
	}
	done := make(chan result, 1)
	go func() {
		q, err := r.Resolve(context.Background(), "ETH", model.AssetTypeCrypto)
		done <- result{q, err}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(1200 * time.Millisecond)
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(5 * time.Second)

	select {
	case res := <-done:
		require.NoError(t, res.err)
		assert.True(t, res.q.PriceEUR.Equal(dec("2100")))
	case <-ctx.Done():
		t.Fatal("resolve did not finish")
	}
	assert.Equal(t, 2, crypto.calls)
}

func TestResolve_CryptoGivesUpAfterSecondRateLimit(t *testing.T) {
	crypto := &fakeCrypto{results: []cryptoResult{
		{err: externalApi.ErrRateLimited},
		{err: externalApi.ErrRateLimited},
	}}
	r := newResolver(&fakeQuotes{}, crypto)

	_, err := r.Resolve(context.Background(), "BTC", model.AssetTypeCrypto)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, externalApi.ErrRateLimited)
	assert.Equal(t, 2, crypto.calls)
}

func TestResolve_CryptoDelayHonoursCancellation(t *testing.T) {
	crypto := &fakeCrypto{results: []cryptoResult{{price: dec("1")}}}
	r := New(&fakeQuotes{}, crypto, fakeCoins{"BTC": "bitcoin"}, clockwork.NewFakeClock(), Options{RequestDelay: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Resolve(ctx, "BTC", model.AssetTypeCrypto)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, crypto.calls)
}
