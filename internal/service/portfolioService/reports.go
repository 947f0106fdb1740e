package portfolioService

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/internal/service"
	"github.com/KotFed0t/portfolio_tracker/utils"
)

// GenerateReport builds the export file with holdings, transactions and price history.
func (s *PortfolioService) GenerateReport(ctx context.Context) (fileBytes []byte, filename string, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.GenerateReport"

	slog.Debug("GenerateReport start", slog.String("rqID", rqID), slog.String("op", op))
	defer func() {
		slog.Debug("GenerateReport finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	summary, err := s.GetPortfolioSummary(ctx)
	if err != nil {
		return nil, "", err
	}

	txs, err := s.GetTransactions(ctx, "")
	if err != nil {
		return nil, "", err
	}

	history, err := s.GetPriceHistory(ctx, "")
	if err != nil {
		return nil, "", err
	}

	now := s.now()
	fileBytes, ext, err := s.reports.Generate(ctx, model.Report{
		GeneratedAt:  now,
		Summary:      summary,
		Transactions: txs,
		PriceHistory: history,
	})
	if err != nil {
		slog.Error("got error from reports.Generate", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	return fileBytes, fmt.Sprintf("portfolio_%s%s", now.Format("20060102_150405"), ext), nil
}

// UploadReport generates a report and returns a public download link to it.
func (s *PortfolioService) UploadReport(ctx context.Context) (downloadLink string, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.UploadReport"

	if s.storage == nil {
		return "", service.ErrCloudStorageDisabled
	}

	fileBytes, filename, err := s.GenerateReport(ctx)
	if err != nil {
		return "", err
	}

	downloadLink, err = s.storage.UploadFile(ctx, bytes.NewReader(fileBytes), filename)
	if err != nil {
		slog.Error("got error from storage.UploadFile", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return "", err
	}

	return downloadLink, nil
}

// CleanupReports removes uploaded reports past their retention.
func (s *PortfolioService) CleanupReports(ctx context.Context) error {
	if s.storage == nil {
		return service.ErrCloudStorageDisabled
	}
	return s.storage.DeleteOldFiles(ctx)
}
