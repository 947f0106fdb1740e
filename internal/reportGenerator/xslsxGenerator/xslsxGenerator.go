package xslsxGenerator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/utils"
	"github.com/xuri/excelize/v2"
)

const (
	holdingsSheet     = "Holdings"
	transactionsSheet = "Transactions"
	historySheet      = "Price history"

	dateFormat = "2006-01-02 15:04"
)

type XSLSXGenerator struct{}

func New() *XSLSXGenerator {
	return &XSLSXGenerator{}
}

func (g *XSLSXGenerator) Generate(ctx context.Context, report model.Report) (fileBytes []byte, fileExtension string, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "XSLSXGenerator.Generate"

	slog.Debug("Generate start", slog.String("rqID", rqID), slog.String("op", op))

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("got error while closing file", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		}
	}()

	fillers := []struct {
		sheet string
		fill  func(f *excelize.File, sheet string, report model.Report) error
	}{
		{holdingsSheet, g.fillHoldings},
		{transactionsSheet, g.fillTransactions},
		{historySheet, g.fillPriceHistory},
	}

	for _, filler := range fillers {
		if _, err = f.NewSheet(filler.sheet); err != nil {
			slog.Error("got error while creating NewSheet", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
			return nil, "", err
		}
		if err = filler.fill(f, filler.sheet, report); err != nil {
			slog.Error("got error while filling sheet", slog.String("rqID", rqID), slog.String("op", op), slog.String("sheet", filler.sheet), slog.String("err", err.Error()))
			return nil, "", err
		}
	}

	// drop the default sheet
	if err := f.DeleteSheet("Sheet1"); err != nil {
		slog.Error("got error while deleting Sheet1", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		slog.Error("got error while Saving file to bytes buffer", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	slog.Debug("Generate completed", slog.String("rqID", rqID), slog.String("op", op))

	return buf.Bytes(), ".xlsx", nil
}

// writeTitle writes a merged, filled title row over columns from..to.
func writeTitle(f *excelize.File, sheet, from, to, title, color string) error {
	if err := f.MergeCell(sheet, from, to); err != nil {
		return err
	}

	_ = f.SetCellStr(sheet, from, title)

	styleID, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{color},
		},
	})
	if err != nil {
		return err
	}

	if err := f.SetCellStyle(sheet, from, from, styleID); err != nil {
		return fmt.Errorf("apply title style: %w", err)
	}

	return nil
}

func writeHeader(f *excelize.File, sheet string, row int, columns ...string) {
	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellStr(sheet, cell, col)
	}
}

func (g *XSLSXGenerator) fillHoldings(f *excelize.File, sheet string, report model.Report) error {
	title := fmt.Sprintf("Portfolio on %s", report.GeneratedAt.Format(dateFormat))
	if err := writeTitle(f, sheet, "A1", "J1", title, "#cfe2f3"); err != nil { // light blue
		return err
	}

	writeHeader(f, sheet, 2, "symbol", "name", "type", "platform", "amount", "price, EUR", "invested, EUR", "value, EUR", "P/L, EUR", "P/L, %")

	row := 3
	for _, h := range report.Summary.Holdings {
		_ = f.SetCellStr(sheet, fmt.Sprintf("A%d", row), h.Symbol)
		_ = f.SetCellStr(sheet, fmt.Sprintf("B%d", row), h.Name)
		_ = f.SetCellStr(sheet, fmt.Sprintf("C%d", row), string(h.Type))
		_ = f.SetCellStr(sheet, fmt.Sprintf("D%d", row), h.Platform)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), h.TotalAmount.InexactFloat64())
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", row), h.CurrentPrice.InexactFloat64())
		_ = f.SetCellValue(sheet, fmt.Sprintf("G%d", row), h.TotalInvested.InexactFloat64())
		_ = f.SetCellValue(sheet, fmt.Sprintf("H%d", row), h.CurrentValue.InexactFloat64())
		_ = f.SetCellValue(sheet, fmt.Sprintf("I%d", row), h.ProfitLoss.InexactFloat64())
		_ = f.SetCellValue(sheet, fmt.Sprintf("J%d", row), h.ProfitLossPercent.InexactFloat64())
		row++
	}

	// totals
	row++
	if err := writeTitle(f, sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), "Total", "#d9ead3"); err != nil { // light green
		return err
	}
	_ = f.SetCellValue(sheet, fmt.Sprintf("G%d", row), report.Summary.TotalInvested.InexactFloat64())
	_ = f.SetCellValue(sheet, fmt.Sprintf("H%d", row), report.Summary.TotalValue.InexactFloat64())
	_ = f.SetCellValue(sheet, fmt.Sprintf("I%d", row), report.Summary.ProfitLoss.InexactFloat64())
	_ = f.SetCellValue(sheet, fmt.Sprintf("J%d", row), report.Summary.ProfitLossPercent.InexactFloat64())

	return nil
}

func (g *XSLSXGenerator) fillTransactions(f *excelize.File, sheet string, report model.Report) error {
	if err := writeTitle(f, sheet, "A1", "J1", "Transactions", "#f9cb9c"); err != nil { // light orange
		return err
	}

	writeHeader(f, sheet, 2, "id", "date", "symbol", "type", "amount", "price per unit", "total value", "fees", "platform", "notes")

	for i, tx := range report.Transactions {
		row := i + 3
		_ = f.SetCellInt(sheet, fmt.Sprintf("A%d", row), int(tx.ID))
		_ = f.SetCellStr(sheet, fmt.Sprintf("B%d", row), tx.Date.Format(dateFormat))
		_ = f.SetCellStr(sheet, fmt.Sprintf("C%d", row), tx.AssetSymbol)
		_ = f.SetCellStr(sheet, fmt.Sprintf("D%d", row), string(tx.Type))
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), tx.Amount.InexactFloat64())
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", row), tx.PricePerUnit.InexactFloat64())
		_ = f.SetCellValue(sheet, fmt.Sprintf("G%d", row), tx.TotalValue.InexactFloat64())
		_ = f.SetCellValue(sheet, fmt.Sprintf("H%d", row), tx.Fees.InexactFloat64())
		_ = f.SetCellStr(sheet, fmt.Sprintf("I%d", row), tx.Platform)
		_ = f.SetCellStr(sheet, fmt.Sprintf("J%d", row), tx.Notes)
	}

	return nil
}

func (g *XSLSXGenerator) fillPriceHistory(f *excelize.File, sheet string, report model.Report) error {
	if err := writeTitle(f, sheet, "A1", "D1", "Price history", "#cccccc"); err != nil { // grey
		return err
	}

	writeHeader(f, sheet, 2, "date", "symbol", "name", "price, EUR")

	for i, p := range report.PriceHistory {
		row := i + 3
		_ = f.SetCellStr(sheet, fmt.Sprintf("A%d", row), p.Date.Format(dateFormat))
		_ = f.SetCellStr(sheet, fmt.Sprintf("B%d", row), p.AssetSymbol)
		_ = f.SetCellStr(sheet, fmt.Sprintf("C%d", row), p.AssetName)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), p.Price.InexactFloat64())
	}

	return nil
}
