package portfolioService

import (
	"context"
	"errors"
	"log/slog"

	"github.com/KotFed0t/portfolio_tracker/data/repository"
	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/internal/service"
	"github.com/KotFed0t/portfolio_tracker/utils"
)

func validateTransaction(in model.TransactionInput) error {
	if in.AssetSymbol == "" {
		return service.ErrInvalidSymbol
	}
	if !in.Type.Valid() {
		return service.ErrInvalidTransactionType
	}
	if !in.Amount.IsPositive() {
		return service.ErrNonPositiveAmount
	}
	if !in.PricePerUnit.IsPositive() {
		return service.ErrNonPositivePrice
	}
	if in.Fees.IsNegative() {
		return service.ErrNegativeFees
	}
	return nil
}

// AddTransaction appends a ledger entry. The asset must already be registered.
func (s *PortfolioService) AddTransaction(ctx context.Context, in model.TransactionInput) (model.Transaction, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.AddTransaction"

	slog.Debug("AddTransaction start", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", in.AssetSymbol), slog.String("type", string(in.Type)))
	defer func() {
		slog.Debug("AddTransaction finished", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", in.AssetSymbol))
	}()

	in.AssetSymbol = normalizeSymbol(in.AssetSymbol)
	if err := validateTransaction(in); err != nil {
		slog.Info("transaction rejected", slog.String("rqID", rqID), slog.String("op", op), slog.String("reason", err.Error()))
		return model.Transaction{}, err
	}

	if _, err := s.GetAsset(ctx, in.AssetSymbol); err != nil {
		return model.Transaction{}, err
	}

	tx := model.Transaction{
		AssetSymbol:  in.AssetSymbol,
		Type:         in.Type,
		Amount:       in.Amount,
		PricePerUnit: in.PricePerUnit,
		TotalValue:   in.Amount.Mul(in.PricePerUnit),
		Fees:         in.Fees,
		Platform:     in.Platform,
		Notes:        in.Notes,
		Date:         s.now(),
	}
	if in.Date != nil {
		tx.Date = in.Date.UTC()
	}

	id, err := s.repo.InsertTransaction(ctx, tx)
	if err != nil {
		slog.Error("got error from repo.InsertTransaction", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.Transaction{}, err
	}
	tx.ID = id

	return tx, nil
}

func (s *PortfolioService) DeleteTransaction(ctx context.Context, id int64) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.DeleteTransaction"

	slog.Debug("DeleteTransaction start", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("id", id))

	err := s.repo.DeleteTransaction(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return service.ErrTransactionNotFound
		}
		slog.Error("got error from repo.DeleteTransaction", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	return nil
}

// GetTransactions lists transactions newest first, of one asset or of all when symbol is empty.
func (s *PortfolioService) GetTransactions(ctx context.Context, symbol string) ([]model.Transaction, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.GetTransactions"

	txs, err := s.repo.GetTransactions(ctx, normalizeSymbol(symbol))
	if err != nil {
		slog.Error("got error from repo.GetTransactions", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	return txs, nil
}
