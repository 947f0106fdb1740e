package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSummaryMarkdown(t *testing.T) {
	md := SummaryMarkdown(model.PortfolioSummary{
		Holdings: []model.Holding{
			{Symbol: "BTC", Name: "Bitcoin", Type: model.AssetTypeCrypto, TotalAmount: decimal.RequireFromString("0.8")},
			{Symbol: "AAPL", Name: "Apple | Inc", Type: model.AssetTypeStock, TotalAmount: decimal.NewFromInt(10)},
		},
		TotalInvested: decimal.NewFromInt(1505),
	})

	assert.Less(t, strings.Index(md, "| AAPL"), strings.Index(md, "| BTC"))
	assert.Contains(t, md, `Apple \| Inc`)
	assert.Contains(t, md, "| **Total** |")
}

func TestSummaryMarkdown_Empty(t *testing.T) {
	assert.Contains(t, SummaryMarkdown(model.PortfolioSummary{}), "No open positions.")
}

func TestHistoryMarkdown(t *testing.T) {
	at := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	points := []model.PricePoint{{AssetSymbol: "ETH", AssetName: "Ethereum", Price: decimal.NewFromInt(2100), Date: at}}

	single := HistoryMarkdown("ETH", points)
	assert.Contains(t, single, "# Price history of ETH")
	assert.Contains(t, single, "| 2025-03-14 12:00 |")
	assert.NotContains(t, single, "Ethereum")

	all := HistoryMarkdown("", points)
	assert.Contains(t, all, "| ETH | Ethereum |")

	assert.Equal(t, "No price history.\n", HistoryMarkdown("ETH", nil))
}

func TestRefreshMarkdown(t *testing.T) {
	md := RefreshMarkdown(map[string]bool{"SOL": false, "AAPL": true, "ETH": true})

	assert.Contains(t, md, "Updated **2** of **3** assets.")
	assert.Less(t, strings.Index(md, "- AAPL: updated"), strings.Index(md, "- SOL: failed"))
}

func TestQuoteMarkdown(t *testing.T) {
	native := QuoteMarkdown(model.PriceQuote{Symbol: "BTC", Source: model.SourceCoinGecko, PriceField: "spot", Conversion: model.ConversionNone})
	assert.NotContains(t, native, "rate:")

	converted := QuoteMarkdown(model.PriceQuote{
		Symbol:         "AAPL",
		Source:         model.SourceYahoo,
		PriceField:     "close",
		NativePrice:    decimal.NewFromInt(189),
		NativeCurrency: "USD",
		Conversion:     model.ConversionLiveRate,
		Rate:           decimal.RequireFromString("1.08"),
	})
	assert.Contains(t, converted, "- native: 189 USD")
	assert.Contains(t, converted, "- rate: 1.08 (live_rate)")
}

func TestSuggestionsMarkdown(t *testing.T) {
	assert.Equal(t, "Nothing found.\n", SuggestionsMarkdown(nil))
	assert.Contains(t, SuggestionsMarkdown([]model.AssetSuggestion{{Symbol: "GC=F", Name: "Gold", Type: model.AssetTypeCommodity}}), "| GC=F | Gold | commodity |")
}
