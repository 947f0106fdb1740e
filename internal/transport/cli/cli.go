// Package cli exposes the portfolio service as subcommands with markdown output.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type PortfolioService interface {
	AddAsset(ctx context.Context, in model.AssetInput) (model.Asset, error)
	GetAssets(ctx context.Context) ([]model.Asset, error)
	DeleteAsset(ctx context.Context, symbol string) error
	AddTransaction(ctx context.Context, in model.TransactionInput) (model.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
	GetTransactions(ctx context.Context, symbol string) ([]model.Transaction, error)
	RefreshPrice(ctx context.Context, symbol string) (model.PriceQuote, error)
	RefreshAllPrices(ctx context.Context) (map[string]bool, error)
	SetPrice(ctx context.Context, symbol string, price decimal.Decimal) error
	GetPortfolioSummary(ctx context.Context) (model.PortfolioSummary, error)
	GetPriceHistory(ctx context.Context, symbol string) ([]model.PricePoint, error)
	AddToWatchlist(ctx context.Context, symbol, notes string) error
	RemoveFromWatchlist(ctx context.Context, symbol string) error
	GetWatchlist(ctx context.Context) ([]model.WatchlistItem, error)
	GetCryptoSymbols(ctx context.Context) []model.CryptoSymbol
	SearchAssets(ctx context.Context, query string, assetType model.AssetType) []model.AssetSuggestion
	GenerateReport(ctx context.Context) (fileBytes []byte, filename string, err error)
	UploadReport(ctx context.Context) (downloadLink string, err error)
}

// RunFunc runs the long-lived server mode until ctx is done.
type RunFunc func(ctx context.Context) error

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Register adds every command to the commander.
func Register(c *subcommands.Commander, srv PortfolioService, serve RunFunc) {
	c.Register(&serveCmd{run: serve}, "server")

	c.Register(&addAssetCmd{srv: srv}, "assets")
	c.Register(&deleteAssetCmd{srv: srv}, "assets")
	c.Register(&assetsCmd{srv: srv}, "assets")

	c.Register(&addTxCmd{srv: srv}, "transactions")
	c.Register(&deleteTxCmd{srv: srv}, "transactions")
	c.Register(&txsCmd{srv: srv}, "transactions")

	c.Register(&refreshCmd{srv: srv}, "prices")
	c.Register(&setPriceCmd{srv: srv}, "prices")
	c.Register(&historyCmd{srv: srv}, "prices")

	c.Register(&summaryCmd{srv: srv}, "reports")
	c.Register(&exportCmd{srv: srv}, "reports")

	c.Register(&watchCmd{srv: srv}, "watchlist")
	c.Register(&unwatchCmd{srv: srv}, "watchlist")
	c.Register(&watchlistCmd{srv: srv}, "watchlist")

	c.Register(&cryptoSymbolsCmd{srv: srv}, "discovery")
	c.Register(&searchCmd{srv: srv}, "discovery")
}

func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	fmt.Fprint(stdout, md)
}

func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(stderr, format+"\n", args...)
	return subcommands.ExitFailure
}

func usage(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(stderr, format+"\n", args...)
	return subcommands.ExitUsageError
}
