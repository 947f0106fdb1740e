package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	DB          DB
	Postgres    Postgres
	Redis       Redis
	API         API
	Resolver    Resolver
	Cache       Cache
	Jobs        Jobs
	Telegram    Telegram
	GoogleDrive GoogleDrive
}

type DB struct {
	Driver     string `env:"DB_DRIVER" envDefault:"sqlite"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"my_assets.db"`
}

type Postgres struct {
	Host            string `env:"PG_HOST" envDefault:"localhost"`
	Port            int    `env:"PG_PORT" envDefault:"5432"`
	DbName          string `env:"PG_DB_NAME" envDefault:"portfolio"`
	Password        string `env:"PG_PASSWORD" envDefault:""`
	User            string `env:"PG_USER" envDefault:"postgres"`
	MaxOpenConns    int    `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
	ConnMaxLifetime int    `env:"PG_CONN_MAX_LIFETIME" envDefault:"300"`
	MaxIdleConns    int    `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxIdleTime int    `env:"PG_CONN_MAX_IDLE_TIME" envDefault:"60"`
}

type Redis struct {
	Enabled  bool   `env:"REDIS_ENABLED" envDefault:"false"`
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type API struct {
	Debug        bool          `env:"API_DEBUG" envDefault:"false"`
	Timeout      time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	YahooApi     YahooApi
	CoinGeckoApi CoinGeckoApi
}

type YahooApi struct {
	Url string `env:"YAHOO_API_URL" envDefault:"https://query1.finance.yahoo.com"`
}

type CoinGeckoApi struct {
	Url string `env:"COINGECKO_API_URL" envDefault:"https://api.coingecko.com/api/v3"`
}

type Resolver struct {
	CryptoRequestDelay     time.Duration `env:"CRYPTO_REQUEST_DELAY" envDefault:"1200ms"`
	CryptoRateLimitBackoff time.Duration `env:"CRYPTO_RATE_LIMIT_BACKOFF" envDefault:"5s"`
	CryptoBatchDelay       time.Duration `env:"CRYPTO_BATCH_DELAY" envDefault:"2s"`
	CoinListTTL            time.Duration `env:"COIN_LIST_TTL" envDefault:"1h"`
}

type Cache struct {
	CoinListExpiration time.Duration `env:"CACHE_COIN_LIST_EXPIRATION" envDefault:"1h"`
}

type Jobs struct {
	PriceRefreshInterval  time.Duration `env:"PRICE_REFRESH_JOB_INTERVAL" envDefault:"30m"`
	ReportCleanupInterval time.Duration `env:"REPORT_CLEANUP_JOB_INTERVAL" envDefault:"1h"`
}

type Telegram struct {
	Token            string        `env:"TELEGRAM_TOKEN" envDefault:""`
	UpdTimeout       time.Duration `env:"TELEGRAM_UPD_TIMEOUT" envDefault:"10s"`
	FileLimitInBytes int           `env:"TELEGRAM_FILE_LIMIT_IN_BYTES" envDefault:"20971520"`
	AllowedChatIDs   []int64       `env:"TELEGRAM_ALLOWED_CHAT_IDS" envSeparator:","`
}

type GoogleDrive struct {
	CredentialsFile string        `env:"GOOGLE_DRIVE_CREDENTIALS_FILE" envDefault:""`
	FileTTL         time.Duration `env:"GOOGLE_DRIVE_FILE_TTL" envDefault:"24h"`
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("parse config error: %s", err)
	}

	return cfg
}

func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
