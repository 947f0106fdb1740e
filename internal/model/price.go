package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PricePoint struct {
	ID          int64
	AssetSymbol string
	AssetName   string // only filled when listing history of every asset
	Price       decimal.Decimal
	Date        time.Time
}

type PriceSource string

const (
	SourceYahoo     PriceSource = "yahoo"
	SourceCoinGecko PriceSource = "coingecko"
)

// Conversion tells how a native price was turned into EUR.
type Conversion string

const (
	ConversionNone         Conversion = "none"
	ConversionLiveRate     Conversion = "live_rate"
	ConversionFallbackRate Conversion = "fallback_rate"
)

// PriceQuote is the outcome of a successful price resolution.
type PriceQuote struct {
	Symbol         string
	PriceEUR       decimal.Decimal
	NativePrice    decimal.Decimal
	NativeCurrency string
	Source         PriceSource
	PriceField     string
	Conversion     Conversion
	Rate           decimal.Decimal // zero when Conversion is none
}

type CryptoSymbol struct {
	Symbol string
	CoinID string
}
