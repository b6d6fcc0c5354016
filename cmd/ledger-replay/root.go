package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"unicode"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sheikh-saqib/payments-ledger-replay/internal/app"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/config"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/logging"
)

// Execute runs the CLI and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	errPrinter := pterm.Error.WithWriter(stderr)
	errPrinter.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	rootCmd := newRootCmd(viper.New(), stdout, stderr)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stderr)
	rootCmd.SetErr(stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		errPrinter.Println(capitalize(err.Error()))
		return 1
	}
	return 0
}

func newRootCmd(v *viper.Viper, stdout, stderr io.Writer) *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "ledger-replay [transactions.csv]",
		Short: "Replay a transaction log and print final client balances",
		Long: `ledger-replay applies deposits, withdrawals, disputes, resolves and chargebacks
in order and prints one CSV row per client with available, held and total funds.

Transactions come from a CSV file (type,client,tx,amount) or, with --input-driver,
from a PostgreSQL or SQLite table.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}

			inputPath := ""
			if len(args) == 1 {
				inputPath = args[0]
			}
			if cfg.Input.Driver != "csv" && inputPath != "" {
				return fmt.Errorf("input driver %q does not take a file argument", cfg.Input.Driver)
			}

			logger := logging.New(cfg.Log, stderr)
			application, cleanup := app.NewApp(cfg, logger, stdout)
			defer cleanup()

			return application.Run(cmd.Context(), inputPath)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfgFile, "config", "c", "", "set the config file path")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("input-driver", "", "transaction source: csv, postgres or sqlite3")
	flags.String("dsn", "", "database connection string for sql input drivers")
	flags.StringSlice("kafka-brokers", nil, "publish final snapshots to these kafka brokers")

	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("input.driver", flags.Lookup("input-driver"))
	_ = v.BindPFlag("input.dsn", flags.Lookup("dsn"))
	_ = v.BindPFlag("kafka.brokers", flags.Lookup("kafka-brokers"))

	return cmd
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
