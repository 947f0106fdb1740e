package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type watchCmd struct {
	srv   PortfolioService
	notes string
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "add a symbol to the watchlist" }
func (*watchCmd) Usage() string {
	return `watch [-notes <text>] <SYMBOL>
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.notes, "notes", "", "free text")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("expected exactly one symbol")
	}

	if err := c.srv.AddToWatchlist(ctx, f.Arg(0), c.notes); err != nil {
		return fail("Error adding to watchlist: %v", err)
	}

	printMarkdown("Watching **" + f.Arg(0) + "**.\n")
	return subcommands.ExitSuccess
}

type unwatchCmd struct {
	srv PortfolioService
}

func (*unwatchCmd) Name() string     { return "unwatch" }
func (*unwatchCmd) Synopsis() string { return "remove a symbol from the watchlist" }
func (*unwatchCmd) Usage() string {
	return `unwatch <SYMBOL>
`
}

func (c *unwatchCmd) SetFlags(_ *flag.FlagSet) {}

func (c *unwatchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("expected exactly one symbol")
	}

	if err := c.srv.RemoveFromWatchlist(ctx, f.Arg(0)); err != nil {
		return fail("Error removing from watchlist: %v", err)
	}

	printMarkdown("Stopped watching **" + f.Arg(0) + "**.\n")
	return subcommands.ExitSuccess
}

type watchlistCmd struct {
	srv PortfolioService
}

func (*watchlistCmd) Name() string     { return "watchlist" }
func (*watchlistCmd) Synopsis() string { return "list watched symbols" }
func (*watchlistCmd) Usage() string {
	return `watchlist
`
}

func (c *watchlistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *watchlistCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	items, err := c.srv.GetWatchlist(ctx)
	if err != nil {
		return fail("Error listing watchlist: %v", err)
	}

	printMarkdown(WatchlistMarkdown(items))
	return subcommands.ExitSuccess
}
