package telegram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KotFed0t/portfolio_tracker/config"
	"github.com/KotFed0t/portfolio_tracker/internal/converter/telebotConverter"
	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/KotFed0t/portfolio_tracker/internal/service"
	"github.com/KotFed0t/portfolio_tracker/utils"
	"github.com/shopspring/decimal"
	tele "gopkg.in/telebot.v4"
)

const (
	internalErrMsg = "something went wrong..."
	helpMsg        = `Commands:
/summary - portfolio overview
/refresh [SYMBOL] - refresh one or all prices
/price SYMBOL VALUE - set a price manually, EUR
/history SYMBOL - recorded prices
/transactions [SYMBOL] - latest transactions
/export - xlsx report`
)

var errUsage = errors.New("bad arguments")

type PortfolioService interface {
	GetPortfolioSummary(ctx context.Context) (model.PortfolioSummary, error)
	RefreshAllPrices(ctx context.Context) (map[string]bool, error)
	RefreshPrice(ctx context.Context, symbol string) (model.PriceQuote, error)
	SetPrice(ctx context.Context, symbol string, price decimal.Decimal) error
	GetPriceHistory(ctx context.Context, symbol string) ([]model.PricePoint, error)
	GetTransactions(ctx context.Context, symbol string) ([]model.Transaction, error)
	GenerateReport(ctx context.Context) (fileBytes []byte, filename string, err error)
	UploadReport(ctx context.Context) (downloadLink string, err error)
}

type Controller struct {
	cfg              *config.Config
	portfolioService PortfolioService
}

func NewController(cfg *config.Config, portfolioService PortfolioService) *Controller {
	return &Controller{
		cfg:              cfg,
		portfolioService: portfolioService,
	}
}

func (ctrl *Controller) Start(c tele.Context) error {
	return c.Send("Hello! I track your portfolio in EUR.\n\n" + helpMsg)
}

func (ctrl *Controller) Summary(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)

	summary, err := ctrl.portfolioService.GetPortfolioSummary(ctx)
	if err != nil {
		slog.Error("got error from portfolioService.GetPortfolioSummary", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return c.Send(internalErrMsg)
	}

	return c.Send(telebotConverter.SummaryResponse(summary))
}

func (ctrl *Controller) Refresh(c tele.Context) error {
	args := c.Args()
	if len(args) == 0 {
		return ctrl.refreshAll(c)
	}

	ctx := utils.CreateCtxWithRqID(c)
	quote, err := ctrl.portfolioService.RefreshPrice(ctx, args[0])
	if err != nil {
		return c.Send(errorMessage(err))
	}

	return c.Send(telebotConverter.QuoteResponse(quote))
}

func (ctrl *Controller) RefreshAllCallback(c tele.Context) error {
	_ = c.Respond(&tele.CallbackResponse{Text: "Refreshing prices..."})
	return ctrl.refreshAll(c)
}

func (ctrl *Controller) refreshAll(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)

	_ = c.Notify(tele.Typing)

	results, err := ctrl.portfolioService.RefreshAllPrices(ctx)
	if err != nil {
		slog.Error("got error from portfolioService.RefreshAllPrices", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return c.Send(internalErrMsg)
	}

	return c.Send(telebotConverter.RefreshResponse(results))
}

func (ctrl *Controller) SetPrice(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)

	symbol, price, err := parsePriceArgs(c.Args())
	if err != nil {
		return c.Send("Usage: /price SYMBOL VALUE, e.g. /price AAPL 172.5")
	}

	err = ctrl.portfolioService.SetPrice(ctx, symbol, price)
	if err != nil {
		return c.Send(errorMessage(err))
	}

	return c.Send(fmt.Sprintf("✅ %s set to %s", strings.ToUpper(symbol), utils.FormatEUR(price)))
}

func (ctrl *Controller) History(c tele.Context) error {
	args := c.Args()
	if len(args) != 1 {
		return c.Send("Usage: /history SYMBOL")
	}
	return ctrl.sendHistory(c, args[0])
}

func (ctrl *Controller) HistoryCallback(c tele.Context) error {
	_ = c.Respond()
	return ctrl.sendHistory(c, c.Callback().Data)
}

func (ctrl *Controller) sendHistory(c tele.Context, symbol string) error {
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	points, err := ctrl.portfolioService.GetPriceHistory(ctx, symbol)
	if err != nil {
		slog.Error("got error from portfolioService.GetPriceHistory", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return c.Send(internalErrMsg)
	}

	return c.Send(telebotConverter.PriceHistoryResponse(symbol, points))
}

func (ctrl *Controller) Transactions(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)

	symbol := ""
	if args := c.Args(); len(args) > 0 {
		symbol = args[0]
	}

	txs, err := ctrl.portfolioService.GetTransactions(ctx, symbol)
	if err != nil {
		slog.Error("got error from portfolioService.GetTransactions", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return c.Send(internalErrMsg)
	}

	return c.Send(telebotConverter.TransactionsResponse(txs))
}

func (ctrl *Controller) ExportCallback(c tele.Context) error {
	_ = c.Respond(&tele.CallbackResponse{Text: "Preparing report..."})
	return ctrl.Export(c)
}

// Export sends the report as a document, or as a cloud link when it exceeds the bot file limit.
func (ctrl *Controller) Export(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)

	_ = c.Notify(tele.UploadingDocument)

	fileBytes, filename, err := ctrl.portfolioService.GenerateReport(ctx)
	if err != nil {
		slog.Error("got error from portfolioService.GenerateReport", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return c.Send(internalErrMsg)
	}

	if len(fileBytes) <= ctrl.cfg.Telegram.FileLimitInBytes {
		return c.Send(&tele.Document{
			File:     tele.FromReader(bytes.NewReader(fileBytes)),
			FileName: filename,
		})
	}

	slog.Info("report exceeds telegram file limit, uploading to cloud", slog.String("rqID", rqID), slog.Int("size", len(fileBytes)))

	link, err := ctrl.portfolioService.UploadReport(ctx)
	if err != nil {
		if errors.Is(err, service.ErrCloudStorageDisabled) {
			return c.Send("The report is too large to send and cloud storage is not configured.")
		}
		slog.Error("got error from portfolioService.UploadReport", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return c.Send(internalErrMsg)
	}

	return c.Send(fmt.Sprintf("📥 Report is ready: %s", link))
}

func parsePriceArgs(args []string) (string, decimal.Decimal, error) {
	if len(args) != 2 {
		return "", decimal.Zero, errUsage
	}

	price, err := decimal.NewFromString(strings.ReplaceAll(args[1], ",", "."))
	if err != nil {
		return "", decimal.Zero, errUsage
	}

	return args[0], price, nil
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrAssetNotFound):
		return "Asset not found."
	case errors.Is(err, service.ErrNonPositivePrice):
		return "Price must be greater than zero."
	case errors.Is(err, service.ErrPriceNotResolved):
		return "Couldn't fetch the price right now."
	default:
		return internalErrMsg
	}
}
