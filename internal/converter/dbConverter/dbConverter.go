package dbConverter

import (
	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/internal/model/dbModel"
)

func ConvertAsset(dbAsset dbModel.Asset) model.Asset {
	return model.Asset{
		ID:           dbAsset.ID,
		Symbol:       dbAsset.Symbol,
		Name:         dbAsset.Name,
		Type:         model.AssetType(dbAsset.AssetType),
		Platform:     dbAsset.Platform.String,
		CurrentPrice: dbAsset.CurrentPrice,
		LastUpdated:  dbAsset.LastUpdated,
	}
}

func ConvertTransaction(dbTx dbModel.Transaction) model.Transaction {
	return model.Transaction{
		ID:           dbTx.ID,
		AssetSymbol:  dbTx.AssetSymbol,
		Type:         model.TransactionType(dbTx.TransactionType),
		Amount:       dbTx.Amount,
		PricePerUnit: dbTx.PricePerUnit,
		TotalValue:   dbTx.TotalValue,
		Fees:         dbTx.Fees,
		Platform:     dbTx.Platform.String,
		Date:         dbTx.TransactionDate,
		Notes:        dbTx.Notes.String,
	}
}

func ConvertPricePoint(dbPoint dbModel.PricePoint) model.PricePoint {
	return model.PricePoint{
		ID:          dbPoint.ID,
		AssetSymbol: dbPoint.AssetSymbol,
		AssetName:   dbPoint.AssetName.String,
		Price:       dbPoint.Price,
		Date:        dbPoint.Date,
	}
}

func ConvertWatchlistItem(dbItem dbModel.WatchlistItem) model.WatchlistItem {
	return model.WatchlistItem{
		ID:      dbItem.ID,
		Symbol:  dbItem.Symbol,
		Notes:   dbItem.Notes.String,
		AddedAt: dbItem.AddedAt,
	}
}

// ConvertHoldingRow copies the stored figures of a holding; derived values are left zero.
func ConvertHoldingRow(row dbModel.HoldingRow) model.Holding {
	return model.Holding{
		Symbol:        row.Symbol,
		Name:          row.Name,
		Type:          model.AssetType(row.AssetType),
		Platform:      row.Platform.String,
		CurrentPrice:  row.CurrentPrice,
		TotalAmount:   row.TotalAmount,
		TotalInvested: row.TotalInvested,
	}
}
