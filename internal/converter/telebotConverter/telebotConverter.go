package telebotConverter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/internal/model/tg/tgCallback"
	"github.com/KotFed0t/portfolio_tracker/utils"
	tele "gopkg.in/telebot.v4"
)

const (
	dateFormat     = "2006-01-02 15:04"
	historyButtons = 3 // per row
	maxListed      = 30
)

func SummaryResponse(summary model.PortfolioSummary) (text string, markup *tele.ReplyMarkup) {
	markup = &tele.ReplyMarkup{}
	var sb strings.Builder

	if len(summary.Holdings) == 0 {
		sb.WriteString("📭 No open positions yet.\n")
	} else {
		holdings := make([]model.Holding, len(summary.Holdings))
		copy(holdings, summary.Holdings)
		sort.Slice(holdings, func(i, j int) bool {
			return holdings[i].CurrentValue.GreaterThan(holdings[j].CurrentValue)
		})

		sb.WriteString(fmt.Sprintf("📊 Portfolio value: %s\n", utils.FormatEUR(summary.TotalValue)))
		sb.WriteString(fmt.Sprintf("💰 Invested: %s\n", utils.FormatEUR(summary.TotalInvested)))
		sb.WriteString(fmt.Sprintf("%s P/L: %s (%s)\n\n", trendEmoji(summary.ProfitLoss.Sign()), utils.FormatEUR(summary.ProfitLoss), utils.FormatPercent(summary.ProfitLossPercent)))

		historyBtns := make([]tele.Btn, 0, len(holdings))
		for _, h := range holdings {
			sb.WriteString(fmt.Sprintf("%s %s (%s)\n", trendEmoji(h.ProfitLoss.Sign()), h.Symbol, h.Name))
			sb.WriteString(fmt.Sprintf("   ▸ Amount: %s\n", h.TotalAmount.String()))
			sb.WriteString(fmt.Sprintf("   ▸ Price: %s\n", utils.FormatEUR(h.CurrentPrice)))
			sb.WriteString(fmt.Sprintf("   ▸ Value: %s\n", utils.FormatEUR(h.CurrentValue)))
			sb.WriteString(fmt.Sprintf("   ▸ P/L: %s (%s)\n\n", utils.FormatEUR(h.ProfitLoss), utils.FormatPercent(h.ProfitLossPercent)))

			historyBtns = append(historyBtns, markup.Data("📈 "+h.Symbol, tgCallback.History, h.Symbol))
		}

		rows := markup.Split(historyButtons, historyBtns)
		rows = append(rows, markup.Row(
			markup.Data("🔄 Refresh prices", tgCallback.RefreshAll),
			markup.Data("📥 Export", tgCallback.Export),
		))
		markup.Inline(rows...)
		return sb.String(), markup
	}

	markup.Inline(markup.Row(markup.Data("🔄 Refresh prices", tgCallback.RefreshAll)))
	return sb.String(), markup
}

func RefreshResponse(results map[string]bool) string {
	if len(results) == 0 {
		return "No assets to refresh."
	}

	symbols := make([]string, 0, len(results))
	for symbol := range results {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	var sb strings.Builder
	updated := 0
	for _, symbol := range symbols {
		if results[symbol] {
			updated++
			sb.WriteString(fmt.Sprintf("✅ %s\n", symbol))
		} else {
			sb.WriteString(fmt.Sprintf("❌ %s\n", symbol))
		}
	}

	return fmt.Sprintf("Updated %d of %d prices\n\n%s", updated, len(results), sb.String())
}

func QuoteResponse(quote model.PriceQuote) string {
	text := fmt.Sprintf("✅ %s: %s", quote.Symbol, utils.FormatEUR(quote.PriceEUR))
	if quote.Conversion != model.ConversionNone && quote.Conversion != "" {
		text += fmt.Sprintf("\n   ▸ %s %s, rate %s (%s)", quote.NativePrice.String(), quote.NativeCurrency, quote.Rate.String(), quote.Conversion)
	}
	return text
}

func PriceHistoryResponse(symbol string, points []model.PricePoint) string {
	if len(points) == 0 {
		return fmt.Sprintf("No price history for %s.", symbol)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📈 Price history of %s\n\n", symbol))

	// newest last, keep the tail
	if len(points) > maxListed {
		sb.WriteString(fmt.Sprintf("… %d earlier points\n", len(points)-maxListed))
		points = points[len(points)-maxListed:]
	}
	for _, p := range points {
		sb.WriteString(fmt.Sprintf("%s  %s\n", p.Date.Format(dateFormat), utils.FormatEUR(p.Price)))
	}

	return sb.String()
}

func TransactionsResponse(txs []model.Transaction) string {
	if len(txs) == 0 {
		return "No transactions."
	}

	var sb strings.Builder
	sb.WriteString("🧾 Transactions\n\n")

	for i, tx := range txs {
		if i == maxListed {
			sb.WriteString(fmt.Sprintf("… %d more\n", len(txs)-maxListed))
			break
		}
		sb.WriteString(fmt.Sprintf("#%d %s %s %s %s × %s",
			tx.ID,
			tx.Date.Format(dateFormat),
			strings.ToUpper(string(tx.Type)),
			tx.AssetSymbol,
			tx.Amount.String(),
			utils.FormatEUR(tx.PricePerUnit),
		))
		if tx.Fees.IsPositive() {
			sb.WriteString(fmt.Sprintf(" (fees %s)", utils.FormatEUR(tx.Fees)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func trendEmoji(sign int) string {
	switch {
	case sign > 0:
		return "🟢"
	case sign < 0:
		return "🔴"
	default:
		return "⚪"
	}
}
