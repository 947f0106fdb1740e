package cli

import (
	"context"
	"flag"
	"strings"

	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/google/subcommands"
)

type cryptoSymbolsCmd struct {
	srv PortfolioService
}

func (*cryptoSymbolsCmd) Name() string     { return "crypto-symbols" }
func (*cryptoSymbolsCmd) Synopsis() string { return "list supported crypto tickers" }
func (*cryptoSymbolsCmd) Usage() string {
	return `crypto-symbols
`
}

func (c *cryptoSymbolsCmd) SetFlags(_ *flag.FlagSet) {}

func (c *cryptoSymbolsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	printMarkdown(CryptoSymbolsMarkdown(c.srv.GetCryptoSymbols(ctx)))
	return subcommands.ExitSuccess
}

type searchCmd struct {
	srv       PortfolioService
	assetType string
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search popular assets and crypto tickers" }
func (*searchCmd) Usage() string {
	return `search [-type <type>] [QUERY]

  Without a query lists the popular assets.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.assetType, "type", "", "restrict crypto results, empty means any")
}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	query := strings.Join(f.Args(), " ")
	printMarkdown(SuggestionsMarkdown(c.srv.SearchAssets(ctx, query, model.AssetType(c.assetType))))
	return subcommands.ExitSuccess
}
