package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type serveCmd struct {
	run RunFunc
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the scheduler and the telegram bot" }
func (*serveCmd) Usage() string {
	return `serve

  Refreshes prices on a schedule and serves the telegram bot until interrupted.
`
}

func (c *serveCmd) SetFlags(_ *flag.FlagSet) {}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(ctx); err != nil {
		return fail("Error: %v", err)
	}
	return subcommands.ExitSuccess
}
