package yahooApi

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

func newTestApi(t *testing.T, handler http.HandlerFunc) *YahooApi {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.API.Timeout = 5 * time.Second
	cfg.API.YahooApi.Url = srv.URL
	return New(cfg)
}

func TestGetQuote_LastCloseAndCurrency(t *testing.T) {
	var gotPath string
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"chart":{"result":[{
			"meta":{"currency":"USD","symbol":"AAPL","regularMarketPrice":189.5},
			"indicators":{"quote":[{"close":[185.1,187.25,null]}]}
		}],"error":null}}`))
	})

	quote, err := api.GetQuote(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/AAPL", gotPath)
	assert.Equal(t, "USD", quote.Currency)
	assert.True(t, quote.LastClose.Equal(decimal.NewFromFloat(187.25)), quote.LastClose.String())
	assert.True(t, quote.QuoteFields["regularMarketPrice"].Equal(decimal.NewFromFloat(189.5)))
	assert.NotContains(t, quote.QuoteFields, "bid")
}

func TestGetQuote_OnlyQuoteFields(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":[{
			"meta":{"currency":"EUR","bid":12.5,"regularMarketPrice":0},
			"indicators":{"quote":[{}]}
		}],"error":null}}`))
	})

	quote, err := api.GetQuote(context.Background(), "SAP.DE")
	require.NoError(t, err)

	assert.True(t, quote.LastClose.IsZero())
	assert.Len(t, quote.QuoteFields, 1)
	assert.True(t, quote.QuoteFields["bid"].Equal(decimal.NewFromFloat(12.5)))
}

func TestGetQuote_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "not found status", status: http.StatusNotFound, body: `{"chart":{"result":null,"error":{"code":"Not Found"}}}`, wantErr: externalApi.ErrNotFound},
		{name: "null result", status: http.StatusOK, body: `{"chart":{"result":null,"error":null}}`, wantErr: externalApi.ErrNotFound},
		{name: "no price", status: http.StatusOK, body: `{"chart":{"result":[{"meta":{"currency":"USD"},"indicators":{"quote":[{"close":[null]}]}}]}}`, wantErr: externalApi.ErrNotFound},
		{name: "rate limited", status: http.StatusTooManyRequests, body: ``, wantErr: externalApi.ErrRateLimited},
		{name: "server error", status: http.StatusBadGateway, body: ``, wantErr: externalApi.ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := api.GetQuote(context.Background(), "XXX")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetQuote_MalformedBody(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := api.GetQuote(context.Background(), "AAPL")
	assert.Error(t, err)
}
