package sqlRepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KotFed0t/portfolio_tracker/data"
	"github.com/KotFed0t/portfolio_tracker/data/repository"
	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func setupRepo(t *testing.T) *Repo {
	t.Helper()

	db, err := data.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return New(db)
}

func addAsset(t *testing.T, r *Repo, symbol string, assetType model.AssetType) {
	t.Helper()
	err := r.UpsertAsset(context.Background(), model.AssetInput{Symbol: symbol, Name: symbol + " name", Type: assetType}, testNow)
	require.NoError(t, err)
}

func addTx(t *testing.T, r *Repo, symbol string, txType model.TransactionType, amount, price, fees float64, at time.Time) int64 {
	t.Helper()
	a := decimal.NewFromFloat(amount)
	p := decimal.NewFromFloat(price)
	id, err := r.InsertTransaction(context.Background(), model.Transaction{
		AssetSymbol:  symbol,
		Type:         txType,
		Amount:       a,
		PricePerUnit: p,
		TotalValue:   a.Mul(p),
		Fees:         decimal.NewFromFloat(fees),
		Date:         at,
	})
	require.NoError(t, err)
	return id
}

func TestMigrate_Idempotent(t *testing.T) {
	db, err := data.OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, data.Migrate(db, "sqlite"))
}

func TestUpsertAsset_KeepsPriceAndOverwritesMetadata(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	addAsset(t, r, "AAPL", model.AssetTypeStock)
	require.NoError(t, r.UpdateAssetPrice(ctx, "AAPL", decimal.NewFromFloat(170.5), testNow))

	err := r.UpsertAsset(ctx, model.AssetInput{Symbol: "AAPL", Name: "Apple Inc.", Type: model.AssetTypeStock, Platform: "Degiro"}, testNow.Add(time.Hour))
	require.NoError(t, err)

	asset, err := r.GetAsset(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc.", asset.Name)
	assert.Equal(t, "Degiro", asset.Platform)
	assert.True(t, asset.CurrentPrice.Equal(decimal.NewFromFloat(170.5)), asset.CurrentPrice.String())

	assets, err := r.GetAssets(ctx)
	require.NoError(t, err)
	assert.Len(t, assets, 1)
}

func TestGetAsset_NotFound(t *testing.T) {
	r := setupRepo(t)

	_, err := r.GetAsset(context.Background(), "NOPE")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateAssetPrice_AppendsOneHistoryPoint(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	addAsset(t, r, "BTC", model.AssetTypeCrypto)
	addTx(t, r, "BTC", model.TransactionBuy, 1, 40000, 0, testNow)

	require.NoError(t, r.UpdateAssetPrice(ctx, "BTC", decimal.NewFromInt(45000), testNow))

	points, err := r.GetPriceHistory(ctx, "BTC")
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.True(t, points[0].Price.Equal(decimal.NewFromInt(45000)))
	assert.True(t, points[0].Date.Equal(testNow), points[0].Date.String())

	txs, err := r.GetTransactions(ctx, "BTC")
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestUpdateAssetPrice_UnknownAssetLeavesNoHistory(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	err := r.UpdateAssetPrice(ctx, "GHOST", decimal.NewFromInt(1), testNow)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	points, err := r.GetPriceHistory(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestDeleteAssetCascade_RemovesEverything(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	addAsset(t, r, "ETH", model.AssetTypeCrypto)
	addAsset(t, r, "AAPL", model.AssetTypeStock)
	addTx(t, r, "ETH", model.TransactionBuy, 2, 2000, 1, testNow)
	addTx(t, r, "AAPL", model.TransactionBuy, 1, 150, 0, testNow)
	require.NoError(t, r.UpdateAssetPrice(ctx, "ETH", decimal.NewFromInt(2100), testNow))

	require.NoError(t, r.DeleteAssetCascade(ctx, "ETH"))

	_, err := r.GetAsset(ctx, "ETH")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	txs, err := r.GetTransactions(ctx, "ETH")
	require.NoError(t, err)
	assert.Empty(t, txs)

	points, err := r.GetPriceHistory(ctx, "ETH")
	require.NoError(t, err)
	assert.Empty(t, points)

	others, err := r.GetTransactions(ctx, "")
	require.NoError(t, err)
	assert.Len(t, others, 1)

	assert.ErrorIs(t, r.DeleteAssetCascade(ctx, "ETH"), repository.ErrNotFound)
}

func TestTransactions_OrderAndDelete(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	addAsset(t, r, "VWCE", model.AssetTypeETF)

	first := addTx(t, r, "VWCE", model.TransactionBuy, 3, 100, 1, testNow.Add(-48*time.Hour))
	second := addTx(t, r, "VWCE", model.TransactionDividend, 1, 2.5, 0, testNow)

	txs, err := r.GetTransactions(ctx, "VWCE")
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, second, txs[0].ID)
	assert.Equal(t, first, txs[1].ID)
	assert.Equal(t, model.TransactionDividend, txs[0].Type)
	assert.True(t, txs[1].TotalValue.Equal(decimal.NewFromInt(300)))

	require.NoError(t, r.DeleteTransaction(ctx, first))
	assert.ErrorIs(t, r.DeleteTransaction(ctx, first), repository.ErrNotFound)

	txs, err = r.GetTransactions(ctx, "")
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestGetHoldingRows_Aggregation(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	addAsset(t, r, "AAPL", model.AssetTypeStock)
	addAsset(t, r, "BTC", model.AssetTypeCrypto)
	addAsset(t, r, "SOLD", model.AssetTypeStock)
	addAsset(t, r, "EMPTY", model.AssetTypeStock)
	addAsset(t, r, "DIVS", model.AssetTypeStock)

	addTx(t, r, "AAPL", model.TransactionBuy, 10, 150, 5, testNow)
	addTx(t, r, "AAPL", model.TransactionDividend, 10, 0.5, 0, testNow)
	addTx(t, r, "AAPL", model.TransactionFee, 1, 2, 0, testNow)

	addTx(t, r, "BTC", model.TransactionBuy, 0.5, 45000, 25, testNow)
	addTx(t, r, "BTC", model.TransactionBuy, 0.3, 50000, 20, testNow)

	addTx(t, r, "SOLD", model.TransactionBuy, 5, 10, 0, testNow)
	addTx(t, r, "SOLD", model.TransactionSell, 5, 12, 1, testNow)

	addTx(t, r, "DIVS", model.TransactionDividend, 3, 1, 0, testNow)

	rows, err := r.GetHoldingRows(ctx)
	require.NoError(t, err)

	bySymbol := map[string]model.Holding{}
	for _, h := range rows {
		bySymbol[h.Symbol] = h
	}

	require.Len(t, bySymbol, 2)

	aapl := bySymbol["AAPL"]
	assert.True(t, aapl.TotalAmount.Equal(decimal.NewFromInt(10)), aapl.TotalAmount.String())
	assert.True(t, aapl.TotalInvested.Equal(decimal.NewFromInt(1505)), aapl.TotalInvested.String())
	assert.Equal(t, model.AssetTypeStock, aapl.Type)

	btc := bySymbol["BTC"]
	assert.InDelta(t, 0.8, btc.TotalAmount.InexactFloat64(), 1e-12)
	assert.True(t, btc.TotalInvested.Equal(decimal.NewFromInt(37545)), btc.TotalInvested.String())
}

func TestGetHoldingRows_SellFeesReduceRemovedCapital(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	addAsset(t, r, "MSFT", model.AssetTypeStock)

	addTx(t, r, "MSFT", model.TransactionBuy, 10, 100, 10, testNow)
	addTx(t, r, "MSFT", model.TransactionSell, 4, 120, 5, testNow)

	rows, err := r.GetHoldingRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// 1000 + 10 - (480 - 5)
	assert.True(t, rows[0].TotalInvested.Equal(decimal.NewFromInt(535)), rows[0].TotalInvested.String())
	assert.True(t, rows[0].TotalAmount.Equal(decimal.NewFromInt(6)))
}

func TestWithinTransaction_RollsBackOnError(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := r.UpsertAsset(ctx, model.AssetInput{Symbol: "TMP", Name: "tmp", Type: model.AssetTypeStock}, testNow); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = r.GetAsset(ctx, "TMP")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestWatchlist(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.UpsertWatchlistItem(ctx, "NVDA", "wait for dip", testNow))
	require.NoError(t, r.UpsertWatchlistItem(ctx, "SOL", "", testNow.Add(time.Minute)))
	require.NoError(t, r.UpsertWatchlistItem(ctx, "NVDA", "earnings", testNow.Add(2*time.Minute)))

	items, err := r.GetWatchlist(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "SOL", items[0].Symbol)
	assert.Equal(t, "NVDA", items[1].Symbol)
	assert.Equal(t, "earnings", items[1].Notes)

	require.NoError(t, r.DeleteWatchlistItem(ctx, "SOL"))
	assert.ErrorIs(t, r.DeleteWatchlistItem(ctx, "SOL"), repository.ErrNotFound)
}
