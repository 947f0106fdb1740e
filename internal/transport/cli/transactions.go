package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"time"

	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type addTxCmd struct {
	srv      PortfolioService
	txType   string
	amount   string
	price    string
	fees     string
	platform string
	date     string
	notes    string
}

func (*addTxCmd) Name() string     { return "add-tx" }
func (*addTxCmd) Synopsis() string { return "record a buy, sell, dividend or fee" }
func (*addTxCmd) Usage() string {
	return `add-tx -type <buy|sell|dividend|fee> -amount <n> -price <eur> [-fees <eur>] [-date <YYYY-MM-DD>] [-platform <p>] [-notes <text>] <SYMBOL>

  Appends a transaction to the ledger. The asset must be registered first.
`
}

func (c *addTxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.txType, "type", string(model.TransactionBuy), "transaction type")
	f.StringVar(&c.amount, "amount", "", "number of units")
	f.StringVar(&c.price, "price", "", "price per unit in EUR")
	f.StringVar(&c.fees, "fees", "0", "fees in EUR")
	f.StringVar(&c.platform, "platform", "", "custodian or exchange")
	f.StringVar(&c.date, "date", "", "transaction date, YYYY-MM-DD or RFC3339, defaults to now")
	f.StringVar(&c.notes, "notes", "", "free text")
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q", s)
}

func (c *addTxCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("expected exactly one symbol")
	}

	amount, err := decimal.NewFromString(c.amount)
	if err != nil {
		return usage("invalid -amount %q", c.amount)
	}
	price, err := decimal.NewFromString(c.price)
	if err != nil {
		return usage("invalid -price %q", c.price)
	}
	fees, err := decimal.NewFromString(c.fees)
	if err != nil {
		return usage("invalid -fees %q", c.fees)
	}
	date, err := parseDate(c.date)
	if err != nil {
		return usage("%v", err)
	}

	tx, err := c.srv.AddTransaction(ctx, model.TransactionInput{
		AssetSymbol:  f.Arg(0),
		Type:         model.TransactionType(c.txType),
		Amount:       amount,
		PricePerUnit: price,
		Fees:         fees,
		Platform:     c.platform,
		Date:         date,
		Notes:        c.notes,
	})
	if err != nil {
		return fail("Error adding transaction: %v", err)
	}

	printMarkdown(TransactionsMarkdown([]model.Transaction{tx}))
	return subcommands.ExitSuccess
}

type deleteTxCmd struct {
	srv PortfolioService
}

func (*deleteTxCmd) Name() string     { return "delete-tx" }
func (*deleteTxCmd) Synopsis() string { return "delete a transaction by id" }
func (*deleteTxCmd) Usage() string {
	return `delete-tx <ID>
`
}

func (c *deleteTxCmd) SetFlags(_ *flag.FlagSet) {}

func (c *deleteTxCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("expected exactly one transaction id")
	}

	id, err := strconv.ParseInt(f.Arg(0), 10, 64)
	if err != nil {
		return usage("invalid id %q", f.Arg(0))
	}

	if err = c.srv.DeleteTransaction(ctx, id); err != nil {
		return fail("Error deleting transaction: %v", err)
	}

	printMarkdown(fmt.Sprintf("Deleted transaction **%d**.\n", id))
	return subcommands.ExitSuccess
}

type txsCmd struct {
	srv PortfolioService
}

func (*txsCmd) Name() string     { return "txs" }
func (*txsCmd) Synopsis() string { return "list transactions, newest first" }
func (*txsCmd) Usage() string {
	return `txs [SYMBOL]
`
}

func (c *txsCmd) SetFlags(_ *flag.FlagSet) {}

func (c *txsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, err := c.srv.GetTransactions(ctx, f.Arg(0))
	if err != nil {
		return fail("Error listing transactions: %v", err)
	}

	printMarkdown(TransactionsMarkdown(txs))
	return subcommands.ExitSuccess
}
