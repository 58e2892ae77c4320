package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/okian/resumedash/internal/gendata"
	"github.com/okian/resumedash/pkg/logger"
)

// Default configuration constants.
const (
	defaultRows    = 5000
	defaultOutput  = "data/resumes.csv"
	defaultSeed    = 42
	defaultTimeout = 30 * time.Second
	runTimeout     = 5 * time.Minute
)

func parseFlags(args []string) (*gendata.Config, error) {
	cfg := &gendata.Config{}
	fs := pflag.NewFlagSet("gen-resumes", pflag.ContinueOnError)
	fs.IntVarP(&cfg.Rows, "rows", "n", defaultRows, "Number of resumes to generate")
	fs.StringVarP(&cfg.Output, "output", "o", defaultOutput, "Output file; .xlsx writes a workbook, anything else CSV")
	fs.Uint64Var(&cfg.Seed, "seed", defaultSeed, "Random seed")
	fs.BoolVar(&cfg.Localized, "localized", false, "Write the localized region header")
	fs.StringVar(&cfg.VerifyURL, "verify", "", "Dashboard base URL to compare top region counts against")
	fs.DurationVar(&cfg.Timeout, "timeout", defaultTimeout, "HTTP timeout for --verify")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		os.Stderr.WriteString("invalid arguments: " + err.Error() + "\n")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if _, err := gendata.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "generation failed", logger.Error(err))
		os.Exit(1)
	}
}
