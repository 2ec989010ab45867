package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go-orderdesk/internal/orderdesk"
	"go-orderdesk/internal/orderdesk/data/database"
	"go-orderdesk/internal/orderdesk/export"
	"go-orderdesk/internal/orderdesk/orderlist"
)

const (
	serverAddressFlag         = "a"
	serverAddressEnv          = "RUN_ADDRESS"
	serverAddressDefault      = "localhost:8080"
	dbConnectionStringFlag    = "d"
	dbConnectionStringEnv     = "DATABASE_URI"
	dbConnectionStringDefault = ""
	orgNameFlag               = "n"
	orgNameEnv                = "ORG_NAME"
	orgAddressFlag            = "l"
	orgAddressEnv             = "ORG_ADDRESS"
	currencySymbolFlag        = "c"
	currencySymbolEnv         = "CURRENCY_SYMBOL"
	seedFileFlag              = "s"
	seedFileEnv               = "SEED_FILE"
)

var (
	ErrNoDatabase = errors.New("database connection string is required")
)

type Config struct {
	Server          orderdesk.Config
	DB              database.Config
	Table           orderlist.Config
	Export          export.Config
	SeedFile        string
	ShutdownTimeout time.Duration
}

func Load() (*Config, error) {
	return parse(flag.CommandLine, os.Args[1:], os.LookupEnv)
}

func parse(fs *flag.FlagSet, args []string, lookupEnv func(string) (string, bool)) (*Config, error) {
	serverAddress := fs.String(
		serverAddressFlag,
		serverAddressDefault,
		"Server address host:port",
	)

	dbConnectionString := fs.String(
		dbConnectionStringFlag,
		dbConnectionStringDefault,
		"PostgreSQL connection string",
	)

	orgName := fs.String(
		orgNameFlag,
		export.DefaultOrganizationName,
		"Organization name printed on exports",
	)

	orgAddress := fs.String(
		orgAddressFlag,
		export.DefaultAddressLine,
		"Organization address printed on exports",
	)

	currencySymbol := fs.String(
		currencySymbolFlag,
		orderlist.DefaultCurrencySymbol,
		"Currency symbol prefixed to amounts",
	)

	seedFile := fs.String(
		seedFileFlag,
		"",
		"JSON file with orders imported on start",
	)

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if valStr, ok := lookupEnv(serverAddressEnv); ok {
		*serverAddress = valStr
	}

	if valStr, ok := lookupEnv(dbConnectionStringEnv); ok {
		*dbConnectionString = valStr
	}

	if valStr, ok := lookupEnv(orgNameEnv); ok {
		*orgName = valStr
	}

	if valStr, ok := lookupEnv(orgAddressEnv); ok {
		*orgAddress = valStr
	}

	if valStr, ok := lookupEnv(currencySymbolEnv); ok {
		*currencySymbol = valStr
	}

	if valStr, ok := lookupEnv(seedFileEnv); ok {
		*seedFile = valStr
	}

	if *dbConnectionString == "" {
		return nil, ErrNoDatabase
	}

	return &Config{
		Server: orderdesk.Config{
			ServerAddress:   *serverAddress,
			ShutdownTimeout: time.Second * 5,
		},
		DB: database.Config{
			ConnectionString: *dbConnectionString,
			RetryAttemptDelays: []time.Duration{
				time.Second,
				time.Second * 3,
				time.Second * 5,
			},
		},
		Table: orderlist.Config{
			CurrencySymbol: *currencySymbol,
		},
		Export: export.Config{
			OrganizationName: *orgName,
			AddressLine:      *orgAddress,
		},
		SeedFile:        *seedFile,
		ShutdownTimeout: time.Second * 5,
	}, nil
}
