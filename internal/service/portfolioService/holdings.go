package portfolioService

import (
	"context"
	"log/slog"

	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/utils"
	"github.com/shopspring/decimal"
)

// amountPlaces absorbs float drift of database sums, e.g. 0.3 + 0.5 - 0.8.
const amountPlaces = 10

var hundred = decimal.NewFromInt(100)

// GetHoldings derives the open positions from the full transaction ledger.
// Positions with a net amount of zero or less are left out. Order is not guaranteed.
func (s *PortfolioService) GetHoldings(ctx context.Context) ([]model.Holding, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.GetHoldings"

	slog.Debug("GetHoldings start", slog.String("rqID", rqID), slog.String("op", op))
	defer func() {
		slog.Debug("GetHoldings finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	rows, err := s.repo.GetHoldingRows(ctx)
	if err != nil {
		slog.Error("got error from repo.GetHoldingRows", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	holdings := make([]model.Holding, 0, len(rows))
	for _, h := range rows {
		h.TotalAmount = h.TotalAmount.Round(amountPlaces)
		if !h.TotalAmount.IsPositive() {
			continue
		}
		h.TotalInvested = h.TotalInvested.Round(amountPlaces)
		h.CurrentValue = h.TotalAmount.Mul(h.CurrentPrice)
		h.ProfitLoss = h.CurrentValue.Sub(h.TotalInvested)
		h.ProfitLossPercent = percentOf(h.ProfitLoss, h.TotalInvested)
		holdings = append(holdings, h)
	}

	return holdings, nil
}

func (s *PortfolioService) GetPortfolioSummary(ctx context.Context) (model.PortfolioSummary, error) {
	holdings, err := s.GetHoldings(ctx)
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	summary := model.PortfolioSummary{Holdings: holdings}
	for _, h := range holdings {
		summary.TotalValue = summary.TotalValue.Add(h.CurrentValue)
		summary.TotalInvested = summary.TotalInvested.Add(h.TotalInvested)
	}
	summary.ProfitLoss = summary.TotalValue.Sub(summary.TotalInvested)
	summary.ProfitLossPercent = percentOf(summary.ProfitLoss, summary.TotalInvested)

	return summary, nil
}

// percentOf returns part/whole*100 rounded to 2 places, 0 when whole is 0.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}
