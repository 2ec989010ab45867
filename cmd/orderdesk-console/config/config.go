package config

import (
	"flag"
	"fmt"
	"os"

	"go-orderdesk/internal/orderdesk/console"
	"go-orderdesk/internal/orderdesk/export"
	"go-orderdesk/internal/orderdesk/orderlist"
	"go-orderdesk/internal/orderdesk/orderstore"
)

const (
	serverAddressFlag    = "s"
	serverAddressEnv     = "ORDERDESK_ADDRESS"
	serverAddressDefault = "http://localhost:8080"
	downloadsDirFlag     = "o"
	downloadsDirEnv      = "DOWNLOADS_DIR"
	downloadsDirDefault  = "./"
	orgNameFlag          = "n"
	orgNameEnv           = "ORG_NAME"
	orgAddressFlag       = "l"
	orgAddressEnv        = "ORG_ADDRESS"
	currencySymbolFlag   = "c"
	currencySymbolEnv    = "CURRENCY_SYMBOL"
)

type Config struct {
	Store   orderstore.Config
	Console console.Config
	Table   orderlist.Config
	Export  export.Config
}

func Load() (*Config, error) {
	return parse(flag.CommandLine, os.Args[1:], os.LookupEnv)
}

func parse(fs *flag.FlagSet, args []string, lookupEnv func(string) (string, bool)) (*Config, error) {
	serverAddress := fs.String(serverAddressFlag, serverAddressDefault, "Order desk service base URL")
	downloadsDir := fs.String(downloadsDirFlag, downloadsDirDefault, "Directory exports are saved into")
	orgName := fs.String(orgNameFlag, export.DefaultOrganizationName, "Organization name printed on exports")
	orgAddress := fs.String(orgAddressFlag, export.DefaultAddressLine, "Organization address printed on exports")
	currencySymbol := fs.String(currencySymbolFlag, orderlist.DefaultCurrencySymbol, "Currency symbol prefixed to amounts")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	overrides := map[string]*string{
		serverAddressEnv:  serverAddress,
		downloadsDirEnv:   downloadsDir,
		orgNameEnv:        orgName,
		orgAddressEnv:     orgAddress,
		currencySymbolEnv: currencySymbol,
	}
	for env, dest := range overrides {
		if valStr, ok := lookupEnv(env); ok {
			*dest = valStr
		}
	}

	return &Config{
		Store: orderstore.Config{
			ServerAddress: *serverAddress,
		},
		Console: console.Config{
			DownloadsDir: *downloadsDir,
		},
		Table: orderlist.Config{
			CurrencySymbol: *currencySymbol,
		},
		Export: export.Config{
			OrganizationName: *orgName,
			AddressLine:      *orgAddress,
		},
	}, nil
}
