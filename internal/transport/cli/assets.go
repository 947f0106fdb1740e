package cli

import (
	"context"
	"flag"

	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/google/subcommands"
)

type addAssetCmd struct {
	srv       PortfolioService
	name      string
	assetType string
	platform  string
}

func (*addAssetCmd) Name() string     { return "add-asset" }
func (*addAssetCmd) Synopsis() string { return "register an asset or update its details" }
func (*addAssetCmd) Usage() string {
	return `add-asset -type <stock|etf|crypto|bond|commodity> [-name <name>] [-platform <platform>] <SYMBOL>

  Registers an asset and fetches its current price.
`
}

func (c *addAssetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "display name, defaults to the symbol")
	f.StringVar(&c.assetType, "type", string(model.AssetTypeStock), "asset type")
	f.StringVar(&c.platform, "platform", "", "custodian or exchange")
}

func (c *addAssetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("expected exactly one symbol")
	}

	asset, err := c.srv.AddAsset(ctx, model.AssetInput{
		Symbol:   f.Arg(0),
		Name:     c.name,
		Type:     model.AssetType(c.assetType),
		Platform: c.platform,
	})
	if err != nil {
		return fail("Error adding asset: %v", err)
	}

	printMarkdown(AssetsMarkdown([]model.Asset{asset}))
	return subcommands.ExitSuccess
}

type deleteAssetCmd struct {
	srv PortfolioService
}

func (*deleteAssetCmd) Name() string     { return "delete-asset" }
func (*deleteAssetCmd) Synopsis() string { return "delete an asset with its transactions and price history" }
func (*deleteAssetCmd) Usage() string {
	return `delete-asset <SYMBOL>
`
}

func (c *deleteAssetCmd) SetFlags(_ *flag.FlagSet) {}

func (c *deleteAssetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("expected exactly one symbol")
	}

	if err := c.srv.DeleteAsset(ctx, f.Arg(0)); err != nil {
		return fail("Error deleting asset: %v", err)
	}

	printMarkdown("Deleted **" + f.Arg(0) + "**.\n")
	return subcommands.ExitSuccess
}

type assetsCmd struct {
	srv PortfolioService
}

func (*assetsCmd) Name() string     { return "assets" }
func (*assetsCmd) Synopsis() string { return "list registered assets" }
func (*assetsCmd) Usage() string {
	return `assets
`
}

func (c *assetsCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assetsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	assets, err := c.srv.GetAssets(ctx)
	if err != nil {
		return fail("Error listing assets: %v", err)
	}

	printMarkdown(AssetsMarkdown(assets))
	return subcommands.ExitSuccess
}
