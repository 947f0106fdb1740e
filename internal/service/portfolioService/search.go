package portfolioService

import (
	"context"
	"sort"
	"strings"

	"github.com/KotFed0t/portfolio_tracker/internal/model"
)

const searchLimit = 50

var popularAssets = []model.AssetSuggestion{
	{Symbol: "AAPL", Name: "Apple Inc.", Type: model.AssetTypeStock},
	{Symbol: "MSFT", Name: "Microsoft Corporation", Type: model.AssetTypeStock},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", Type: model.AssetTypeStock},
	{Symbol: "AMZN", Name: "Amazon.com Inc.", Type: model.AssetTypeStock},
	{Symbol: "NVDA", Name: "NVIDIA Corporation", Type: model.AssetTypeStock},
	{Symbol: "TSLA", Name: "Tesla Inc.", Type: model.AssetTypeStock},
	{Symbol: "SAP.DE", Name: "SAP SE", Type: model.AssetTypeStock},
	{Symbol: "ASML.AS", Name: "ASML Holding N.V.", Type: model.AssetTypeStock},
	{Symbol: "NESN.SW", Name: "Nestle S.A.", Type: model.AssetTypeStock},
	{Symbol: "ULVR.L", Name: "Unilever PLC", Type: model.AssetTypeStock},
	{Symbol: "VWCE.DE", Name: "Vanguard FTSE All-World UCITS ETF", Type: model.AssetTypeETF},
	{Symbol: "IWDA.AS", Name: "iShares Core MSCI World UCITS ETF", Type: model.AssetTypeETF},
	{Symbol: "SPY", Name: "SPDR S&P 500 ETF Trust", Type: model.AssetTypeETF},
	{Symbol: "QQQ", Name: "Invesco QQQ Trust", Type: model.AssetTypeETF},
	{Symbol: "VTI", Name: "Vanguard Total Stock Market ETF", Type: model.AssetTypeETF},
	{Symbol: "BTC", Name: "Bitcoin", Type: model.AssetTypeCrypto},
	{Symbol: "ETH", Name: "Ethereum", Type: model.AssetTypeCrypto},
	{Symbol: "SOL", Name: "Solana", Type: model.AssetTypeCrypto},
	{Symbol: "ADA", Name: "Cardano", Type: model.AssetTypeCrypto},
	{Symbol: "TLT", Name: "iShares 20+ Year Treasury Bond ETF", Type: model.AssetTypeBond},
	{Symbol: "IEF", Name: "iShares 7-10 Year Treasury Bond ETF", Type: model.AssetTypeBond},
	{Symbol: "GC=F", Name: "Gold Futures", Type: model.AssetTypeCommodity},
	{Symbol: "SI=F", Name: "Silver Futures", Type: model.AssetTypeCommodity},
	{Symbol: "CL=F", Name: "Crude Oil Futures", Type: model.AssetTypeCommodity},
}

// GetPopularAssets returns well known instruments for quick selection.
func (s *PortfolioService) GetPopularAssets() []model.AssetSuggestion {
	res := make([]model.AssetSuggestion, len(popularAssets))
	copy(res, popularAssets)
	return res
}

// GetCryptoSymbols returns every crypto symbol the price resolver can price, sorted by symbol.
func (s *PortfolioService) GetCryptoSymbols(ctx context.Context) []model.CryptoSymbol {
	coins := s.coins.Symbols(ctx)

	res := make([]model.CryptoSymbol, 0, len(coins))
	for symbol, id := range coins {
		res = append(res, model.CryptoSymbol{Symbol: symbol, CoinID: id})
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Symbol < res[j].Symbol
	})

	return res
}

// SearchAssets matches query case-insensitively against symbol and name of popular assets
// and known crypto symbols. An empty assetType searches all types, an empty query returns
// the popular assets of that type.
func (s *PortfolioService) SearchAssets(ctx context.Context, query string, assetType model.AssetType) []model.AssetSuggestion {
	query = strings.ToLower(strings.TrimSpace(query))

	res := make([]model.AssetSuggestion, 0)
	seen := make(map[string]struct{})

	for _, a := range popularAssets {
		if assetType != "" && a.Type != assetType {
			continue
		}
		if query != "" && !matches(query, a.Symbol, a.Name) {
			continue
		}
		res = append(res, a)
		seen[a.Symbol] = struct{}{}
	}

	if query == "" || (assetType != "" && assetType != model.AssetTypeCrypto) {
		return res
	}

	for _, c := range s.GetCryptoSymbols(ctx) {
		if len(res) >= searchLimit {
			break
		}
		if _, ok := seen[c.Symbol]; ok {
			continue
		}
		if !matches(query, c.Symbol, c.CoinID) {
			continue
		}
		res = append(res, model.AssetSuggestion{Symbol: c.Symbol, Name: c.CoinID, Type: model.AssetTypeCrypto})
	}

	return res
}

func matches(query string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}
