package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/melodydiary/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// os.Args is filtered with flagx.FilterArgs first so the -c/-config flags
// handled by parseJson do not trip this flag set. Errors panic.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-k", "-p", "-l", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the diary database file")
	fs.StringVar(&cfg.InviteLink, "k", cfg.InviteLink, "invite link carrying the access key")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	policy := fs.String("p", string(cfg.InvitePolicy), "group invite policy (owner, member)")
	timeout := fs.Int("t", int(cfg.EnhanceTimeout.Seconds()), "enhancer timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	p, err := ParseInvitePolicy(*policy)
	if err != nil {
		panic(err)
	}
	cfg.InvitePolicy = p

	// -t only has whole seconds; leave a finer JSON value alone unless given.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.EnhanceTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
