// Package configs parses the application configuration from environment
// variables. All variables use the "KYC_" prefix.
package configs

import (
	"time"

	"github.com/caarlos0/env/v6"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	// -- Server --

	Host                 string        `env:"HOST"`
	Port                 int           `env:"PORT" envDefault:"3000"`
	ServerRequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" envDefault:"60s"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`

	// -- Ledger --

	// JSON-RPC endpoint of the node the contract is deployed on.
	RPCURL string `env:"RPC_URL,notEmpty"`

	// Address of the KYC registry contract.
	ContractAddress string `env:"CONTRACT_ADDRESS,notEmpty"`

	// Chain the contract address and ABI are valid for. A network change
	// away from this chain invalidates the session.
	ChainID int64 `env:"CHAIN_ID" envDefault:"11155111"`

	// How long to wait for a write to be confirmed before giving up.
	ReceiptPollTimeout time.Duration `env:"RECEIPT_POLL_TIMEOUT" envDefault:"5m"`

	// How often the session controller re-checks the node's chain identity.
	NetworkWatchInterval time.Duration `env:"NETWORK_WATCH_INTERVAL" envDefault:"10s"`

	// Maximum rate of state-changing calls to the ledger, per second.
	WriteMaxSendRate int `env:"WRITE_MAX_SEND_RATE" envDefault:"10"`

	// -- Wallet --

	KeystorePath       string `env:"KEYSTORE_PATH" envDefault:"./keystore"`
	KeystorePassphrase string `env:"KEYSTORE_PASSPHRASE"`

	// Account to connect as. Empty means the first keystore account.
	WalletAddress string `env:"WALLET_ADDRESS"`

	// -- KYC workflow --

	// Run the idempotent expiry check opportunistically when a record is
	// read over HTTP. The ledger never expires records on its own.
	CheckExpiryOnRead bool `env:"CHECK_EXPIRY_ON_READ" envDefault:"true"`

	// Base URL for retrieving documents by content address.
	DocumentGatewayURL string `env:"DOCUMENT_GATEWAY_URL" envDefault:"https://gateway.ipfscdn.io/ipfs/"`

	// -- Workers --

	WorkerQueueCapacity uint `env:"WORKER_QUEUE_CAPACITY" envDefault:"1000"`
	WorkerCount         uint `env:"WORKER_COUNT" envDefault:"100"`

	// -- Idempotency middleware --

	DisableIdempotencyMiddleware      bool   `env:"DISABLE_IDEMPOTENCY_MIDDLEWARE" envDefault:"false"`
	IdempotencyMiddlewareDatabaseType string `env:"IDEMPOTENCY_MIDDLEWARE_DATABASE_TYPE" envDefault:"local"`
	IdempotencyMiddlewareRedisURL     string `env:"IDEMPOTENCY_MIDDLEWARE_REDIS_URL"`
}

// Parse parses environment variables into a Config.
func Parse(opts ...env.Options) (*Config, error) {
	opts = append(opts, env.Options{Prefix: "KYC_"})

	cfg := Config{}
	err := env.Parse(&cfg, opts...)

	return &cfg, err
}

func ConfigureLogger(logLevel string) {
	log.SetFormatter(&log.JSONFormatter{})

	lvl, err := log.ParseLevel(logLevel)
	if err != nil {
		lvl = log.InfoLevel
	}

	log.SetLevel(lvl)
}
