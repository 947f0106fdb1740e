package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type refreshCmd struct {
	srv PortfolioService
}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "fetch current prices" }
func (*refreshCmd) Usage() string {
	return `refresh [SYMBOL]

  Refreshes one asset, or every asset when no symbol is given.
`
}

func (c *refreshCmd) SetFlags(_ *flag.FlagSet) {}

func (c *refreshCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		results, err := c.srv.RefreshAllPrices(ctx)
		if err != nil {
			return fail("Error refreshing prices: %v", err)
		}
		printMarkdown(RefreshMarkdown(results))
		return subcommands.ExitSuccess
	}

	quote, err := c.srv.RefreshPrice(ctx, f.Arg(0))
	if err != nil {
		return fail("Error refreshing %s: %v", f.Arg(0), err)
	}

	printMarkdown(QuoteMarkdown(quote))
	return subcommands.ExitSuccess
}

type setPriceCmd struct {
	srv PortfolioService
}

func (*setPriceCmd) Name() string     { return "set-price" }
func (*setPriceCmd) Synopsis() string { return "set a price manually" }
func (*setPriceCmd) Usage() string {
	return `set-price <SYMBOL> <EUR>
`
}

func (c *setPriceCmd) SetFlags(_ *flag.FlagSet) {}

func (c *setPriceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usage("expected a symbol and a price")
	}

	price, err := decimal.NewFromString(f.Arg(1))
	if err != nil {
		return usage("invalid price %q", f.Arg(1))
	}

	if err = c.srv.SetPrice(ctx, f.Arg(0), price); err != nil {
		return fail("Error setting price: %v", err)
	}

	printMarkdown(fmt.Sprintf("**%s** set to %s EUR.\n", f.Arg(0), price.String()))
	return subcommands.ExitSuccess
}

type historyCmd struct {
	srv PortfolioService
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list recorded prices, oldest first" }
func (*historyCmd) Usage() string {
	return `history [SYMBOL]
`
}

func (c *historyCmd) SetFlags(_ *flag.FlagSet) {}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	points, err := c.srv.GetPriceHistory(ctx, f.Arg(0))
	if err != nil {
		return fail("Error listing price history: %v", err)
	}

	printMarkdown(HistoryMarkdown(f.Arg(0), points))
	return subcommands.ExitSuccess
}
