package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
)

type summaryCmd struct {
	srv PortfolioService
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show holdings valued at stored prices" }
func (*summaryCmd) Usage() string {
	return `summary
`
}

func (c *summaryCmd) SetFlags(_ *flag.FlagSet) {}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	summary, err := c.srv.GetPortfolioSummary(ctx)
	if err != nil {
		return fail("Error building summary: %v", err)
	}

	printMarkdown(SummaryMarkdown(summary))
	return subcommands.ExitSuccess
}

type exportCmd struct {
	srv    PortfolioService
	dir    string
	upload bool
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the portfolio to an xlsx report" }
func (*exportCmd) Usage() string {
	return `export [-o <dir>] [-upload]

  Writes the report into a directory, or uploads it to cloud storage and prints the link.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dir, "o", ".", "output directory")
	f.BoolVar(&c.upload, "upload", false, "upload to cloud storage instead of writing a file")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.upload {
		link, err := c.srv.UploadReport(ctx)
		if err != nil {
			return fail("Error uploading report: %v", err)
		}
		printMarkdown(fmt.Sprintf("Report uploaded: %s\n", link))
		return subcommands.ExitSuccess
	}

	fileBytes, filename, err := c.srv.GenerateReport(ctx)
	if err != nil {
		return fail("Error generating report: %v", err)
	}

	path := filepath.Join(c.dir, filename)
	if err = os.WriteFile(path, fileBytes, 0o644); err != nil {
		return fail("Error writing report: %v", err)
	}

	printMarkdown(fmt.Sprintf("Report written to `%s`.\n", path))
	return subcommands.ExitSuccess
}
