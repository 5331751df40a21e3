// Package main is the entry point for the vending-sim CLI.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"vending-sim/internal/app"
	"vending-sim/internal/catalog"
	"vending-sim/internal/config"
	"vending-sim/internal/logging"
	"vending-sim/internal/service"
	"vending-sim/internal/ui"
)

func main() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutdown requested, exiting...")
		os.Exit(0)
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		catalogPath string
		logLevel    string
		logFormat   string
		noColor     bool
		dumpCatalog bool
	)

	cmd := &cobra.Command{
		Use:   "vending-sim [script]",
		Short: "Coin-operated vending machine simulator",
		Long: `Runs vending machine commands from a script file, or interactively from stdin.

Commands: INSERT <coin>, SELECT <id>, CANCEL, RESET, STATUS, STOCK <id>,
LIST, LOG [clear], HISTORY, HELP, EXIT.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("catalog") {
				cfg.Catalog = catalogPath
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("log-format") {
				cfg.LogFormat = logging.Format(logFormat)
			}
			if noColor {
				cfg.Color = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if dumpCatalog {
				return dump(cfg.Catalog, cmd.OutOrStdout())
			}
			return run(cfg, args, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "YAML catalog file (default: built-in catalog)")
	cmd.Flags().StringVar(&logLevel, "log-level", logging.LevelWarn, "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&logFormat, "log-format", string(logging.FormatText), "Log format: text, json")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&dumpCatalog, "dump-catalog", false, "Print the effective catalog as YAML and exit")

	return cmd
}

func run(cfg config.Config, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	logger, err := logging.Configure(cfg.LogLevel, cfg.LogFormat, stderr)
	if err != nil {
		return err
	}
	if !cfg.Color {
		ui.DisableColor()
	}

	items, err := catalog.LoadFile(cfg.Catalog)
	if err != nil {
		return err
	}
	machine, err := service.NewMachine(items, service.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	logger.Info("machine ready", "items", len(items), "catalog", cfg.Catalog)

	var (
		input io.Reader
		opts  []app.RunnerOption
	)
	if len(args) > 0 {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("cannot open file: %w", err)
		}
		defer file.Close()
		input = file
	} else {
		input = stdin
		opts = append(opts, app.WithPrompt("> "))
		fmt.Fprintln(stdout, ui.Catalog(machine.Available(), len(machine.Items()) > 0))
	}

	processor := service.NewProcessor(machine)
	return app.NewRunner(processor, input, stdout, opts...).Run()
}

// dump writes the effective catalog in the format --catalog accepts.
func dump(path string, w io.Writer) error {
	items, err := catalog.LoadFile(path)
	if err != nil {
		return err
	}
	data, err := catalog.Marshal(items)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
