package coinRegistry

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/KotFed0t/portfolio_tracker/internal/model/coinGeckoModel"
	"github.com/KotFed0t/portfolio_tracker/utils"
	"github.com/jonboulle/clockwork"
)

const maxSymbolLen = 10

// priorityCoins resolves symbol collisions in the bulk listing, e.g. several tokens calling themselves ETH.
var priorityCoins = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"USDT":  "tether",
	"BNB":   "binancecoin",
	"SOL":   "solana",
	"XRP":   "ripple",
	"USDC":  "usd-coin",
	"ADA":   "cardano",
	"DOGE":  "dogecoin",
	"TRX":   "tron",
	"AVAX":  "avalanche-2",
	"DOT":   "polkadot",
	"LINK":  "chainlink",
	"MATIC": "matic-network",
	"LTC":   "litecoin",
	"SHIB":  "shiba-inu",
	"BCH":   "bitcoin-cash",
	"UNI":   "uniswap",
	"XLM":   "stellar",
	"ATOM":  "cosmos",
	"XMR":   "monero",
}

// fallbackCoins is installed when the listing can't be loaded.
var fallbackCoins = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"ADA":  "cardano",
	"DOT":  "polkadot",
	"LTC":  "litecoin",
	"XRP":  "ripple",
	"DOGE": "dogecoin",
}

type CoinLister interface {
	GetCoinsList(ctx context.Context) ([]coinGeckoModel.Coin, error)
}

// Store keeps the filtered listing between processes.
type Store interface {
	GetCoinIDs(ctx context.Context) (map[string]string, error)
	SetCoinIDs(ctx context.Context, coinIDs map[string]string) error
}

// Registry maps crypto symbols to CoinGecko coin ids. The mapping is reloaded
// at most once per ttl, the priority table always wins over the listing.
type Registry struct {
	lister CoinLister
	store  Store
	clock  clockwork.Clock
	ttl    time.Duration

	mu       sync.Mutex
	coins    map[string]string
	loadedAt time.Time
	loaded   bool
}

// New creates a registry. store may be nil.
func New(lister CoinLister, store Store, clock clockwork.Clock, ttl time.Duration) *Registry {
	return &Registry{
		lister: lister,
		store:  store,
		clock:  clock,
		ttl:    ttl,
	}
}

// Lookup returns the coin id for symbol.
func (r *Registry) Lookup(ctx context.Context, symbol string) (string, bool) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	r.mu.Lock()
	defer r.mu.Unlock()

	r.refreshIfStale(ctx)
	id, ok := r.coins[symbol]
	return id, ok
}

// Symbols returns a copy of the whole mapping.
func (r *Registry) Symbols(ctx context.Context) map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.refreshIfStale(ctx)
	res := make(map[string]string, len(r.coins))
	for symbol, id := range r.coins {
		res[symbol] = id
	}
	return res
}

func (r *Registry) refreshIfStale(ctx context.Context) {
	now := r.clock.Now()
	if r.loaded && now.Sub(r.loadedAt) < r.ttl {
		return
	}

	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug("coin registry refresh start", slog.String("rqID", rqID))

	r.coins = mergePriority(r.load(ctx))
	r.loadedAt = now
	r.loaded = true

	slog.Debug("coin registry refresh finished", slog.String("rqID", rqID), slog.Int("coins", len(r.coins)))
}

func (r *Registry) load(ctx context.Context) map[string]string {
	rqID := utils.GetRequestIDFromCtx(ctx)

	if r.store != nil {
		cached, err := r.store.GetCoinIDs(ctx)
		if err == nil && len(cached) > 0 {
			return cached
		}
	}

	coins, err := r.lister.GetCoinsList(ctx)
	if err != nil || len(coins) == 0 {
		slog.Warn("can't load coin listing, using fallback table", slog.String("rqID", rqID), slog.Any("err", err))
		return copyMap(fallbackCoins)
	}

	listing := filterListing(coins)

	if r.store != nil {
		if err = r.store.SetCoinIDs(ctx, listing); err != nil {
			slog.Warn("can't store coin listing", slog.String("rqID", rqID), slog.String("err", err.Error()))
		}
	}

	return listing
}

// filterListing keeps the first coin seen for every usable symbol.
func filterListing(coins []coinGeckoModel.Coin) map[string]string {
	res := make(map[string]string, len(coins))
	for _, c := range coins {
		symbol := strings.ToUpper(c.Symbol)
		if c.ID == "" || !validSymbol(symbol) {
			continue
		}
		if _, exists := res[symbol]; exists {
			continue
		}
		res[symbol] = c.ID
	}
	return res
}

func validSymbol(symbol string) bool {
	if symbol == "" || len(symbol) > maxSymbolLen {
		return false
	}
	for _, ch := range symbol {
		if (ch < 'A' || ch > 'Z') && (ch < '0' || ch > '9') {
			return false
		}
	}
	return true
}

func mergePriority(coins map[string]string) map[string]string {
	res := copyMap(coins)
	for symbol, id := range priorityCoins {
		res[symbol] = id
	}
	return res
}

func copyMap(m map[string]string) map[string]string {
	res := make(map[string]string, len(m)+len(priorityCoins))
	for k, v := range m {
		res[k] = v
	}
	return res
}
