package config

import (
	"flag"
	"os"
	"time"

	"github.com/mgouveia/userdb/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   database DSN (sqlite file path or postgres:// URL)
//	-t int      store query timeout, seconds
//	-l string   log level (debug|info|warn|error)
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	queryTimeout := fs.Int("t", int(config.QueryTimeout.Seconds()), "store query timeout (in seconds)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.QueryTimeout = time.Duration(*queryTimeout) * time.Second
}
