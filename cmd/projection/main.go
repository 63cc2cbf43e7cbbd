package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/moneyflow/projection/internal/config"
	"github.com/moneyflow/projection/internal/fire"
	"github.com/moneyflow/projection/internal/history"
	"github.com/moneyflow/projection/internal/output"
	"github.com/moneyflow/projection/internal/simulation"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements simulation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "projection %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(os.Stdout, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "projection",
	Short: "Monte Carlo net worth projection CLI",
	Long:  "Bootstrap-resampled net worth projections and FIRE planning from historical market returns.",
}

func newSimulator(cmd *cobra.Command) *simulation.Simulator {
	sim := simulation.New(history.Default())
	if seed, _ := cmd.Flags().GetInt64("seed"); seed != 0 {
		sim.BaseSeed = seed
	}
	if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
		sim.Workers = workers
	}
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		sim.Logger = simpleCLILogger{}
	}
	return sim
}

func runContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout > 0 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}

func writeFormatted(cmd *cobra.Command, render func(output.Formatter) ([]byte, error)) error {
	format, _ := cmd.Flags().GetString("format")
	formatter, err := output.NewFormatter(format)
	if err != nil {
		return err
	}
	data, err := render(formatter)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [input-file]",
	Short: "Run a Monte Carlo net worth projection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		cfg, err := parser.LoadFromFile(args[0])
		if err != nil {
			return err
		}

		ctx, cancel := runContext(cmd)
		defer cancel()

		sim := newSimulator(cmd)
		result, err := sim.Run(ctx, cfg.Accounts, cfg.Simulation)
		if err != nil {
			return err
		}

		return writeFormatted(cmd, func(f output.Formatter) ([]byte, error) {
			return f.FormatSimulation(result)
		})
	},
}

var fireCmd = &cobra.Command{
	Use:   "fire [input-file]",
	Short: "Run a FIRE plan analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		cfg, err := parser.LoadFromFile(args[0])
		if err != nil {
			return err
		}
		if cfg.FIRE == nil {
			return fmt.Errorf("input file %s has no fire section", args[0])
		}

		ctx, cancel := runContext(cmd)
		defer cancel()

		planner := fire.NewPlanner(newSimulator(cmd))
		if trials, _ := cmd.Flags().GetInt("trials"); trials > 0 {
			planner.NumSimulations = trials
		}
		if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
			planner.Logger = simpleCLILogger{}
		}

		plan, err := planner.Plan(ctx, cfg.Accounts, *cfg.FIRE)
		if err != nil {
			return err
		}

		return writeFormatted(cmd, func(f output.Formatter) ([]byte, error) {
			return f.FormatPlan(plan)
		})
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a configuration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		if _, err := parser.LoadFromFile(args[0]); err != nil {
			return err
		}
		fmt.Printf("Configuration file %s is valid\n", args[0])
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show rolling-window statistics of the historical return dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		period, _ := cmd.Flags().GetInt("period")
		series := history.Default()

		fmt.Printf("HISTORICAL ROLLING STATISTICS (%d-year windows, %d years of data)\n", period, series.Len())
		fmt.Println("================================================================")

		classes := []struct {
			name    string
			returns []decimal.Decimal
		}{
			{"Stocks", series.StockReturns()},
			{"Bonds", series.BondReturns()},
			{"Cash", series.CashReturns()},
		}
		for _, c := range classes {
			stats := history.RollingStatistics(c.returns, period)
			fmt.Printf("%s:\n", c.name)
			fmt.Printf("  Mean CAGR: %s%%\n", stats.Mean.Mul(decimal.NewFromInt(100)).StringFixed(2))
			fmt.Printf("  Std Dev:   %s%%\n", stats.Std.Mul(decimal.NewFromInt(100)).StringFixed(2))
			fmt.Printf("  Min CAGR:  %s%%\n", stats.Min.Mul(decimal.NewFromInt(100)).StringFixed(2))
			fmt.Printf("  Max CAGR:  %s%%\n", stats.Max.Mul(decimal.NewFromInt(100)).StringFixed(2))
			fmt.Printf("  Windows:   %d\n", len(stats.RollingCAGRs))
			fmt.Println()
		}
		return nil
	},
}

func init() {
	simulateCmd.Flags().StringP("format", "f", "json", "Output format (json, console, csv)")
	simulateCmd.Flags().Int64("seed", 0, "Base random seed (0 uses the current time)")
	simulateCmd.Flags().Int("workers", 0, "Worker goroutines (0 uses all CPUs)")
	simulateCmd.Flags().Duration("timeout", 0, "Abort the run after this duration")
	simulateCmd.Flags().Bool("debug", false, "Enable debug logging")

	fireCmd.Flags().StringP("format", "f", "json", "Output format (json, console, csv)")
	fireCmd.Flags().Int64("seed", 0, "Base random seed (0 uses the current time)")
	fireCmd.Flags().Int("workers", 0, "Worker goroutines (0 uses all CPUs)")
	fireCmd.Flags().Int("trials", 0, "Number of plan trials (0 uses the default)")
	fireCmd.Flags().Duration("timeout", 0, "Abort the run after this duration")
	fireCmd.Flags().Bool("debug", false, "Enable debug logging")

	historyCmd.Flags().IntP("period", "p", 30, "Rolling window length in years")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(fireCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
