package xslsxGenerator

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGenerate(t *testing.T) {
	at := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	report := model.Report{
		GeneratedAt: at,
		Summary: model.PortfolioSummary{
			Holdings: []model.Holding{{
				Symbol:        "AAPL",
				Name:          "Apple Inc.",
				Type:          model.AssetTypeStock,
				TotalAmount:   decimal.NewFromInt(10),
				TotalInvested: decimal.NewFromInt(1505),
				CurrentPrice:  decimal.NewFromInt(180),
				CurrentValue:  decimal.NewFromInt(1800),
			}},
			TotalInvested: decimal.NewFromInt(1505),
			TotalValue:    decimal.NewFromInt(1800),
		},
		Transactions: []model.Transaction{
			{ID: 7, AssetSymbol: "AAPL", Type: model.TransactionBuy, Amount: decimal.NewFromInt(10), Date: at},
		},
		PriceHistory: []model.PricePoint{
			{AssetSymbol: "AAPL", AssetName: "Apple Inc.", Price: decimal.NewFromInt(180), Date: at},
		},
	}

	fileBytes, ext, err := New().Generate(context.Background(), report)
	require.NoError(t, err)
	assert.Equal(t, ".xlsx", ext)

	f, err := excelize.OpenReader(bytes.NewReader(fileBytes))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{holdingsSheet, transactionsSheet, historySheet}, f.GetSheetList())

	symbol, err := f.GetCellValue(holdingsSheet, "A3")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", symbol)

	invested, err := f.GetCellValue(holdingsSheet, "G3")
	require.NoError(t, err)
	assert.Equal(t, "1505", invested)

	id, err := f.GetCellValue(transactionsSheet, "A3")
	require.NoError(t, err)
	assert.Equal(t, "7", id)

	name, err := f.GetCellValue(historySheet, "C3")
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc.", name)
}
