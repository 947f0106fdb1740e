package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/utils"
)

const dateFormat = "2006-01-02 15:04"

// cell escapes table separators.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func AssetsMarkdown(assets []model.Asset) string {
	if len(assets) == 0 {
		return "No assets registered.\n"
	}

	var sb strings.Builder
	sb.WriteString("# Assets\n\n")
	sb.WriteString("| Symbol | Name | Type | Platform | Price | Updated |\n")
	sb.WriteString("|---|---|---|---|---:|---|\n")
	for _, a := range assets {
		updated := ""
		if !a.LastUpdated.IsZero() {
			updated = a.LastUpdated.Format(dateFormat)
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s | %s |\n",
			cell(a.Symbol), cell(a.Name), a.Type, cell(a.Platform), utils.FormatEUR(a.CurrentPrice), updated)
	}
	return sb.String()
}

func SummaryMarkdown(summary model.PortfolioSummary) string {
	var sb strings.Builder
	sb.WriteString("# Portfolio\n\n")

	if len(summary.Holdings) == 0 {
		sb.WriteString("No open positions.\n")
		return sb.String()
	}

	holdings := make([]model.Holding, len(summary.Holdings))
	copy(holdings, summary.Holdings)
	sort.Slice(holdings, func(i, j int) bool {
		return holdings[i].Symbol < holdings[j].Symbol
	})

	sb.WriteString("| Symbol | Name | Type | Amount | Price | Invested | Value | P/L | P/L % |\n")
	sb.WriteString("|---|---|---|---:|---:|---:|---:|---:|---:|\n")
	for _, h := range holdings {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			cell(h.Symbol), cell(h.Name), h.Type, h.TotalAmount.String(),
			utils.FormatEUR(h.CurrentPrice), utils.FormatEUR(h.TotalInvested), utils.FormatEUR(h.CurrentValue),
			utils.FormatEUR(h.ProfitLoss), utils.FormatPercent(h.ProfitLossPercent))
	}
	fmt.Fprintf(&sb, "| **Total** | | | | | %s | %s | %s | %s |\n",
		utils.FormatEUR(summary.TotalInvested), utils.FormatEUR(summary.TotalValue),
		utils.FormatEUR(summary.ProfitLoss), utils.FormatPercent(summary.ProfitLossPercent))

	return sb.String()
}

func TransactionsMarkdown(txs []model.Transaction) string {
	if len(txs) == 0 {
		return "No transactions.\n"
	}

	var sb strings.Builder
	sb.WriteString("# Transactions\n\n")
	sb.WriteString("| ID | Date | Symbol | Type | Amount | Price | Total | Fees | Platform | Notes |\n")
	sb.WriteString("|---:|---|---|---|---:|---:|---:|---:|---|---|\n")
	for _, tx := range txs {
		fmt.Fprintf(&sb, "| %d | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			tx.ID, tx.Date.Format(dateFormat), cell(tx.AssetSymbol), tx.Type, tx.Amount.String(),
			utils.FormatEUR(tx.PricePerUnit), utils.FormatEUR(tx.TotalValue), utils.FormatEUR(tx.Fees),
			cell(tx.Platform), cell(tx.Notes))
	}
	return sb.String()
}

func HistoryMarkdown(symbol string, points []model.PricePoint) string {
	if len(points) == 0 {
		return "No price history.\n"
	}

	var sb strings.Builder
	if symbol == "" {
		sb.WriteString("# Price history\n\n")
		sb.WriteString("| Date | Symbol | Name | Price |\n|---|---|---|---:|\n")
		for _, p := range points {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", p.Date.Format(dateFormat), cell(p.AssetSymbol), cell(p.AssetName), utils.FormatEUR(p.Price))
		}
		return sb.String()
	}

	fmt.Fprintf(&sb, "# Price history of %s\n\n", symbol)
	sb.WriteString("| Date | Price |\n|---|---:|\n")
	for _, p := range points {
		fmt.Fprintf(&sb, "| %s | %s |\n", p.Date.Format(dateFormat), utils.FormatEUR(p.Price))
	}
	return sb.String()
}

func RefreshMarkdown(results map[string]bool) string {
	symbols := make([]string, 0, len(results))
	updated := 0
	for symbol, ok := range results {
		symbols = append(symbols, symbol)
		if ok {
			updated++
		}
	}
	sort.Strings(symbols)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Price refresh\n\nUpdated **%d** of **%d** assets.\n\n", updated, len(results))
	for _, symbol := range symbols {
		status := "failed"
		if results[symbol] {
			status = "updated"
		}
		fmt.Fprintf(&sb, "- %s: %s\n", symbol, status)
	}
	return sb.String()
}

func QuoteMarkdown(q model.PriceQuote) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s**: %s\n\n", q.Symbol, utils.FormatEUR(q.PriceEUR))
	fmt.Fprintf(&sb, "- source: %s (%s)\n", q.Source, q.PriceField)
	if q.Conversion != model.ConversionNone {
		fmt.Fprintf(&sb, "- native: %s %s\n- rate: %s (%s)\n", q.NativePrice.String(), q.NativeCurrency, q.Rate.String(), q.Conversion)
	}
	return sb.String()
}

func WatchlistMarkdown(items []model.WatchlistItem) string {
	if len(items) == 0 {
		return "Watchlist is empty.\n"
	}

	var sb strings.Builder
	sb.WriteString("# Watchlist\n\n| Symbol | Added | Notes |\n|---|---|---|\n")
	for _, it := range items {
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", cell(it.Symbol), it.AddedAt.Format(dateFormat), cell(it.Notes))
	}
	return sb.String()
}

func CryptoSymbolsMarkdown(symbols []model.CryptoSymbol) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Crypto symbols (%d)\n\n| Symbol | Coin id |\n|---|---|\n", len(symbols))
	for _, s := range symbols {
		fmt.Fprintf(&sb, "| %s | %s |\n", cell(s.Symbol), cell(s.CoinID))
	}
	return sb.String()
}

func SuggestionsMarkdown(suggestions []model.AssetSuggestion) string {
	if len(suggestions) == 0 {
		return "Nothing found.\n"
	}

	var sb strings.Builder
	sb.WriteString("| Symbol | Name | Type |\n|---|---|---|\n")
	for _, s := range suggestions {
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", cell(s.Symbol), cell(s.Name), s.Type)
	}
	return sb.String()
}
