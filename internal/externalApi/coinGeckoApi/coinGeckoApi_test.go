package coinGeckoApi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KotFed0t/portfolio_tracker/config"
	"github.com/KotFed0t/portfolio_tracker/internal/externalApi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApi(t *testing.T, handler http.HandlerFunc) *CoinGeckoApi {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.API.Timeout = 5 * time.Second
	cfg.API.CoinGeckoApi.Url = srv.URL
	return New(cfg)
}

func TestGetPriceEUR(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "bitcoin", r.URL.Query().Get("ids"))
		assert.Equal(t, "eur", r.URL.Query().Get("vs_currencies"))
		_, _ = w.Write([]byte(`{"bitcoin":{"eur":45123.5}}`))
	})

	price, err := api.GetPriceEUR(context.Background(), "bitcoin")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromFloat(45123.5)))
}

func TestGetPriceEUR_UnknownCoin(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := api.GetPriceEUR(context.Background(), "nope")
	assert.ErrorIs(t, err, externalApi.ErrNotFound)
}

func TestGetPriceEUR_RateLimited(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := api.GetPriceEUR(context.Background(), "bitcoin")
	assert.ErrorIs(t, err, externalApi.ErrRateLimited)
}

func TestGetCoinsList(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/list", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"bitcoin","symbol":"btc","name":"Bitcoin"},{"id":"pepe","symbol":"pepe","name":"Pepe"}]`))
	})

	coins, err := api.GetCoinsList(context.Background())
	require.NoError(t, err)
	require.Len(t, coins, 2)
	assert.Equal(t, "pepe", coins[1].ID)
	assert.Equal(t, "btc", coins[0].Symbol)
}

func TestGetCoinsList_ServerError(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := api.GetCoinsList(context.Background())
	assert.ErrorIs(t, err, externalApi.ErrUnexpectedStatus)
}
