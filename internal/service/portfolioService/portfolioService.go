package portfolioService

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/KotFed0t/portfolio_tracker/internal/model"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
)

type Repository interface {
	WithinTransaction(ctx context.Context, tFunc func(ctx context.Context) error) error
	UpsertAsset(ctx context.Context, asset model.AssetInput, now time.Time) error
	GetAsset(ctx context.Context, symbol string) (model.Asset, error)
	GetAssets(ctx context.Context) ([]model.Asset, error)
	DeleteAssetCascade(ctx context.Context, symbol string) error
	UpdateAssetPrice(ctx context.Context, symbol string, price decimal.Decimal, at time.Time) error
	InsertTransaction(ctx context.Context, tx model.Transaction) (int64, error)
	DeleteTransaction(ctx context.Context, id int64) error
	GetTransactions(ctx context.Context, symbol string) ([]model.Transaction, error)
	GetPriceHistory(ctx context.Context, symbol string) ([]model.PricePoint, error)
	GetHoldingRows(ctx context.Context) ([]model.Holding, error)
	UpsertWatchlistItem(ctx context.Context, symbol, notes string, at time.Time) error
	DeleteWatchlistItem(ctx context.Context, symbol string) error
	GetWatchlist(ctx context.Context) ([]model.WatchlistItem, error)
}

type PriceResolver interface {
	Resolve(ctx context.Context, symbol string, assetType model.AssetType) (model.PriceQuote, error)
}

type CoinRegistry interface {
	Symbols(ctx context.Context) map[string]string
}

type ReportGenerator interface {
	Generate(ctx context.Context, report model.Report) (fileBytes []byte, fileExtension string, err error)
}

type CloudStorage interface {
	UploadFile(ctx context.Context, reader io.Reader, filename string) (downloadLink string, err error)
	DeleteOldFiles(ctx context.Context) error
}

type Options struct {
	// CryptoBatchDelay is waited before every crypto asset of a batch refresh except the first one.
	CryptoBatchDelay time.Duration
}

type PortfolioService struct {
	repo     Repository
	resolver PriceResolver
	coins    CoinRegistry
	reports  ReportGenerator
	storage  CloudStorage
	clock    clockwork.Clock
	opts     Options
}

// New creates the service. storage may be nil, uploads then fail with ErrCloudStorageDisabled.
func New(
	repo Repository,
	resolver PriceResolver,
	coins CoinRegistry,
	reports ReportGenerator,
	storage CloudStorage,
	clock clockwork.Clock,
	opts Options,
) *PortfolioService {
	return &PortfolioService{
		repo:     repo,
		resolver: resolver,
		coins:    coins,
		reports:  reports,
		storage:  storage,
		clock:    clock,
		opts:     opts,
	}
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func (s *PortfolioService) now() time.Time {
	return s.clock.Now().UTC()
}
