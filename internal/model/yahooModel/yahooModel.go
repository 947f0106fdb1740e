package yahooModel

import "github.com/shopspring/decimal"

// QuoteFieldPriority is the order in which instantaneous quote fields are tried
// when the chart has no close price.
var QuoteFieldPriority = []string{"currentPrice", "regularMarketPrice", "bid"}

// Quote is what the chart endpoint tells about one ticker.
type Quote struct {
	Symbol   string
	Currency string
	// LastClose is zero when the chart carried no close price.
	LastClose decimal.Decimal
	// QuoteFields holds the positive instantaneous quote fields found in the response, by name.
	QuoteFields map[string]decimal.Decimal
}
