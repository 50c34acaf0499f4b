package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashforge/internal/cli"
	dferrors "github.com/matzehuels/dashforge/pkg/errors"
)

// Exit codes.
const (
	exitError     = 1
	exitInput     = 2   // the input dashboard or flags were rejected
	exitInterrupt = 130 // standard shell convention for SIGINT
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		os.Exit(report(err))
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// The level must be set before the command's own pre-run loads config,
	// so config problems are logged at the requested verbosity.
	loadConfig := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if loadConfig != nil {
			return loadConfig(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}

// report prints err and returns the process exit code for it.
func report(err error) int {
	if errors.Is(err, context.Canceled) {
		return exitInterrupt
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	switch dferrors.GetCode(err) {
	case dferrors.ErrCodeInvalidInput, dferrors.ErrCodeInvalidFormat, dferrors.ErrCodeInvalidTree,
		dferrors.ErrCodeInvalidPath, dferrors.ErrCodeInvalidColor, dferrors.ErrCodeDecode,
		dferrors.ErrCodeUnknownType, dferrors.ErrCodeNotFound:
		return exitInput
	}
	return exitError
}
