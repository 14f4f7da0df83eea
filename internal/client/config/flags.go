package config

import (
	"flag"
	"os"
	"time"

	"github.com/sangamlabs/sangam/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-e string   environment name: development or production
//	-t int      request timeout in seconds
//	-d string   path to the local store database
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-e", "-t", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	env := fs.String("e", string(cfg.Environment), "server environment (development|production)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StoreDSN, "d", cfg.StoreDSN, "path to local store database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.Environment = Environment(*env)
	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
