package main

import (
	"context"
	"flag"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gomodule/redigo/redis"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"

	"github.com/php369/kyc-blockchain-system/chain"
	"github.com/php369/kyc-blockchain-system/configs"
	"github.com/php369/kyc-blockchain-system/datastore/gorm"
	"github.com/php369/kyc-blockchain-system/documents"
	"github.com/php369/kyc-blockchain-system/handlers"
	"github.com/php369/kyc-blockchain-system/jobs"
	"github.com/php369/kyc-blockchain-system/kyc"
	"github.com/php369/kyc-blockchain-system/roles"
	"github.com/php369/kyc-blockchain-system/session"
	"github.com/php369/kyc-blockchain-system/transactions"
	"github.com/php369/kyc-blockchain-system/wallet"
)

const version = "1.0.0"

var (
	sha1ver   string // sha1 revision used to build the program
	buildTime string // when the executable was built
)

func main() {
	var printVersion bool

	flag.BoolVar(&printVersion, "version", false, "if true, print version and exit")
	flag.Parse()

	if printVersion {
		fmt.Printf("v%s build on %s from sha1 %s\n", version, buildTime, sha1ver)
		os.Exit(0)
	}

	cfg, err := configs.Parse()
	if err != nil {
		panic(err)
	}

	runServer(cfg)

	os.Exit(0)
}

func runServer(cfg *configs.Config) {
	configs.ConfigureLogger(cfg.LogLevel)

	log.Info("Starting server")

	// Wallet identity
	provider := wallet.NewKeystoreProvider(cfg.KeystorePath, cfg.KeystorePassphrase, cfg.WalletAddress)
	defer provider.Close()

	writeLimiter := ratelimit.New(cfg.WriteMaxSendRate, ratelimit.WithoutSlack)

	// Ledger gateway
	gw, err := chain.NewEthereumGateway(
		context.Background(),
		cfg.RPCURL,
		common.HexToAddress(cfg.ContractAddress),
		provider,
		chain.WithReceiptTimeout(cfg.ReceiptPollTimeout),
		chain.WithWriteRatelimiter(writeLimiter),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		gw.Close()
		log.Info("Closed ledger gateway")
	}()

	// Database
	db, err := gorm.New()
	if err != nil {
		log.Fatal(err)
	}
	defer gorm.Close(db)

	// Worker pool for ledger writes
	wp := jobs.NewWorkerPool(jobs.NewGormStore(db), cfg.WorkerQueueCapacity, cfg.WorkerCount)
	defer func() {
		wp.Stop()
		log.Info("Stopped workerpool")
	}()

	// Services
	jobsService := jobs.NewService(jobs.NewGormStore(db))
	transactionService := transactions.NewService(transactions.NewGormStore(db))
	roleService := roles.NewService(gw, transactionService)
	documentService := documents.NewService(cfg.DocumentGatewayURL)

	kycOpts := []kyc.ServiceOption{kyc.WithSigningAccount(provider.Account)}
	if cfg.CheckExpiryOnRead {
		kycOpts = append(kycOpts, kyc.WithExpiryCheckOnRead())
	}
	kycService := kyc.NewService(gw, roleService, transactionService, wp, kycOpts...)

	// Session controller and network watcher
	controller := session.NewController(provider, roleService)
	defer controller.Close()

	watcher := chain.NewNetworkWatcher(
		gw.ChainID,
		big.NewInt(cfg.ChainID),
		cfg.NetworkWatchInterval,
		controller.HandleNetworkChange,
	).Start()
	defer watcher.Stop()

	// HTTP handling
	sessionHandler := handlers.NewSession(controller)
	roleHandler := handlers.NewRoles(roleService, controller)
	kycHandler := handlers.NewKYC(kycService, documentService, controller)
	transactionHandler := handlers.NewTransactions(transactionService)
	jobsHandler := handlers.NewJobs(jobsService)

	r := mux.NewRouter()

	// Catch the api version
	rv := r.PathPrefix("/{apiVersion}").Subrouter()

	// Debug
	rv.Handle("/debug", handlers.Debug("https://github.com/php369/kyc-blockchain-system", sha1ver, buildTime)).Methods(http.MethodGet)

	// Health
	rv.HandleFunc("/health/ready", handlers.HandleHealthReady).Methods(http.MethodGet)
	rv.Handle("/health/liveness", handlers.Liveness(func() (interface{}, error) {
		chainID, err := gw.ChainID(context.Background())
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"chainId": chainID.String()}, nil
	})).Methods(http.MethodGet)

	// Session
	rv.Handle("/session", sessionHandler.Status()).Methods(http.MethodGet)
	rv.Handle("/session", sessionHandler.Connect()).Methods(http.MethodPost)
	rv.Handle("/session", sessionHandler.Disconnect()).Methods(http.MethodDelete)
	rv.Handle("/session/refresh", sessionHandler.Refresh()).Methods(http.MethodPost)

	// Roles
	rv.Handle("/roles/{address}", roleHandler.Details()).Methods(http.MethodGet)
	rv.Handle("/roles/customer", roleHandler.GrantCustomer()).Methods(http.MethodPost)
	rv.Handle("/roles/employee", handlers.UseRole(controller, roles.Admin)(roleHandler.GrantEmployee())).Methods(http.MethodPost)
	rv.Handle("/roles/admin", handlers.UseRole(controller, roles.Admin)(roleHandler.GrantAdmin())).Methods(http.MethodPost)

	// KYC workflow
	rv.Handle("/kyc", handlers.UseRole(controller, roles.Customer)(kycHandler.Submit())).Methods(http.MethodPost)
	rv.Handle("/kyc", handlers.UseRole(controller, roles.Customer)(kycHandler.Delete())).Methods(http.MethodDelete)
	rv.Handle("/kyc/{address}", kycHandler.Details()).Methods(http.MethodGet)
	rv.Handle("/kyc/{address}/verify", handlers.UseRole(controller, roles.BankEmployee)(kycHandler.Verify())).Methods(http.MethodPost)
	rv.Handle("/kyc/{address}/approve", handlers.UseRole(controller, roles.Admin)(kycHandler.Approve())).Methods(http.MethodPost)
	rv.Handle("/kyc/{address}/reject", handlers.UseRole(controller, roles.BankEmployee, roles.Admin)(kycHandler.Reject())).Methods(http.MethodPost)
	rv.Handle("/kyc/{address}/check-expiry", kycHandler.CheckExpiry()).Methods(http.MethodPost)

	// Transactions
	rv.Handle("/transactions", transactionHandler.List()).Methods(http.MethodGet)
	rv.Handle("/transactions/{transactionId}", transactionHandler.Details()).Methods(http.MethodGet)

	// Jobs
	rv.Handle("/jobs", jobsHandler.List()).Methods(http.MethodGet)
	rv.Handle("/jobs/{jobId}", jobsHandler.Details()).Methods(http.MethodGet)

	h := http.TimeoutHandler(r, cfg.ServerRequestTimeout, "request timed out")
	h = handlers.UseCors(h)
	h = handlers.UseLogging(h)
	h = handlers.UseCompress(h)

	// Idempotency key middleware, if enabled
	if !cfg.DisableIdempotencyMiddleware {
		var is handlers.IdempotencyStore
		switch cfg.IdempotencyMiddlewareDatabaseType {
		// Shared SQL/Gorm store (same as for main app)
		case handlers.IdempotencyStoreTypeShared.String():
			is = handlers.NewIdempotencyStoreGorm(db)
		// Redis, separate from app db
		case handlers.IdempotencyStoreTypeRedis.String():
			if cfg.IdempotencyMiddlewareRedisURL == "" {
				log.Fatal("idempotency middleware db set to redis but Redis URL is empty")
			}
			pool := &redis.Pool{
				MaxIdle:   80,
				MaxActive: 12000,
				Dial: func() (redis.Conn, error) {
					c, err := redis.DialURL(cfg.IdempotencyMiddlewareRedisURL)
					if err != nil {
						panic(err.Error())
					}
					return c, err
				},
			}

			client := pool.Get()

			defer func() {
				log.Info("Closing Redis client..")
				if err := client.Close(); err != nil {
					log.Warn(err)
				}
			}()

			is = handlers.NewIdempotencyStoreRedis(client)
		case handlers.IdempotencyStoreTypeLocal.String():
			is = handlers.NewIdempotencyStoreLocal()
		}

		h = handlers.UseIdempotency(h, handlers.IdempotencyHandlerOptions{
			Expiry: 1 * time.Hour,
			// Session connects are retried freely.
			IgnorePaths: []string{"/v1/session"},
		}, is)
	}

	// Server boilerplate
	srv := &http.Server{
		Handler:      h,
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		WriteTimeout: 0, // Disabled, set cfg.ServerRequestTimeout instead
		ReadTimeout:  0, // Disabled, set cfg.ServerRequestTimeout instead
	}

	// Run our server in a goroutine so that it doesn't block.
	go func() {
		log.
			WithFields(log.Fields{
				"host": cfg.Host,
				"port": cfg.Port,
			}).
			Info("Server listening")
		if err := srv.ListenAndServe(); err != nil {
			log.Warn(err)
		}
	}()

	// Trap interrupt and gracefully shut down.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Warn(err)
	}

	log.Info("Server shut down")
}
