// Package randomix parses engine CLI flags and dispatches commands.
package randomix

import (
	"flag"
	"io"

	entrypoint "github.com/louisbranch/randomix/internal/platform/cmd"
)

// Config holds randomix command configuration.
type Config struct {
	// Secure routes commands to the cryptographically secure tier.
	Secure bool
	// Repeat generates the result this many times.
	Repeat int
	// FastSeed seeds the fast tier; 0 selects a clock-based seed.
	FastSeed uint64 `env:"RANDOMIX_FAST_SEED"`
	// SecureSeed seeds the secure tier; 0 selects an entropy-based seed.
	SecureSeed uint64 `env:"RANDOMIX_SECURE_SEED"`
	// ReseedBytes overrides the secure tier's reseed threshold.
	ReseedBytes uint64 `env:"RANDOMIX_RESEED_BYTES"`

	// Args holds the command and its parameters after flag parsing.
	Args []string
	// Out receives command output; nil selects stdout.
	Out io.Writer
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.BoolVar(&cfg.Secure, "secure", false, "Use the cryptographically secure tier")
	fs.IntVar(&cfg.Repeat, "n", 1, "Number of results to generate")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Args = fs.Args()
	return cfg, nil
}
