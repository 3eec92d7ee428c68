package config

import (
	"flag"
	"os"

	"github.com/mkorchagin/passwallet/internal/flagx"
)

// parseFlags overlays selected Config fields from command-line flags:
//
//	-a string   base URL of the identity backend
//	-d string   path to the client database
//	-k string   path to the device keyfile
//
// Arguments are filtered with flagx.Keep so other stages' flags (like
// -config) do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.Keep(os.Args[1:], []string{"-a", "-d", "-k"})

	fs := flag.NewFlagSet("wallet", flag.ContinueOnError)
	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "identity backend base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "client database path")
	fs.StringVar(&cfg.KeyfilePath, "k", cfg.KeyfilePath, "device keyfile path")
	_ = fs.Parse(args)
}
