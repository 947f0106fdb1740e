package telebotConverter

import (
	"strings"
	"testing"
	"time"

	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryResponse(t *testing.T) {
	summary := model.PortfolioSummary{
		Holdings: []model.Holding{
			{Symbol: "AAPL", Name: "Apple", TotalAmount: decimal.NewFromInt(10), CurrentPrice: decimal.NewFromInt(180),
				CurrentValue: decimal.NewFromInt(1800), ProfitLoss: decimal.NewFromInt(295), ProfitLossPercent: decimal.RequireFromString("19.6")},
			{Symbol: "BTC", Name: "Bitcoin", TotalAmount: decimal.RequireFromString("0.8"), CurrentPrice: decimal.NewFromInt(50000),
				CurrentValue: decimal.NewFromInt(40000), ProfitLoss: decimal.NewFromInt(2455), ProfitLossPercent: decimal.RequireFromString("6.54")},
		},
		TotalValue:        decimal.NewFromInt(41800),
		TotalInvested:     decimal.NewFromInt(39050),
		ProfitLoss:        decimal.NewFromInt(2750),
		ProfitLossPercent: decimal.RequireFromString("7.04"),
	}

	text, markup := SummaryResponse(summary)

	assert.Contains(t, text, "€41,800.00")
	assert.Contains(t, text, "+7.04%")
	assert.Less(t, strings.Index(text, "BTC"), strings.Index(text, "AAPL"), "largest position first")
	require.NotNil(t, markup)
	assert.Len(t, markup.InlineKeyboard, 2)
}

func TestSummaryResponse_Empty(t *testing.T) {
	text, markup := SummaryResponse(model.PortfolioSummary{})

	assert.Contains(t, text, "No open positions")
	assert.Len(t, markup.InlineKeyboard, 1)
}

func TestRefreshResponse(t *testing.T) {
	text := RefreshResponse(map[string]bool{"ETH": false, "AAPL": true})

	assert.Contains(t, text, "Updated 1 of 2 prices")
	assert.Less(t, strings.Index(text, "AAPL"), strings.Index(text, "ETH"))
	assert.Equal(t, "No assets to refresh.", RefreshResponse(nil))
}

func TestQuoteResponse(t *testing.T) {
	text := QuoteResponse(model.PriceQuote{
		Symbol:         "AAPL",
		PriceEUR:       decimal.NewFromInt(175),
		NativePrice:    decimal.NewFromInt(189),
		NativeCurrency: "USD",
		Rate:           decimal.RequireFromString("1.08"),
		Conversion:     model.ConversionLiveRate,
	})

	assert.Contains(t, text, "€175.00")
	assert.Contains(t, text, "189 USD")
	assert.Contains(t, text, "live_rate")
}

func TestPriceHistoryResponse_KeepsNewest(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]model.PricePoint, 0, maxListed+5)
	for i := 0; i < maxListed+5; i++ {
		points = append(points, model.PricePoint{AssetSymbol: "AAPL", Price: decimal.NewFromInt(int64(100 + i)), Date: start.AddDate(0, 0, i)})
	}

	text := PriceHistoryResponse("AAPL", points)

	assert.Contains(t, text, "5 earlier points")
	assert.NotContains(t, text, "2025-01-01")
	assert.Contains(t, text, "€134.00")
	assert.Equal(t, "No price history for X.", PriceHistoryResponse("X", nil))
}

func TestTransactionsResponse(t *testing.T) {
	text := TransactionsResponse([]model.Transaction{{
		ID:           3,
		AssetSymbol:  "AAPL",
		Type:         model.TransactionBuy,
		Amount:       decimal.NewFromInt(10),
		PricePerUnit: decimal.NewFromInt(150),
		Fees:         decimal.NewFromInt(5),
		Date:         time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}})

	assert.Contains(t, text, "#3 2025-03-14 09:30 BUY AAPL 10 × €150.00 (fees €5.00)")
}
