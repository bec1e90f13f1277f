package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/whiskerlabs/catstonks/config"
	"github.com/whiskerlabs/catstonks/internal/analysis"
	"github.com/whiskerlabs/catstonks/internal/export"
	"github.com/whiskerlabs/catstonks/internal/pipeline"
)

// NewRootCmd creates the root command. Configuration comes from the managed
// config file, seeded from the environment on first run and watched so
// external edits apply between interactive runs.
func NewRootCmd() *cobra.Command {
	var debug bool
	mgr, mgrErr := config.NewManager(config.WithInitialConfig(config.DefaultConfig()))

	// Snapshot for one run; runtime flags never touch the stored config.
	current := func() config.Config {
		cfg := mgr.Get()
		if debug {
			cfg.Debug = true
		}
		return cfg
	}

	rootCmd := &cobra.Command{
		Use:   "catstonks",
		Short: "catstonks - Finance-Inspired Cat Names vs the Stock Market",
		Long: `catstonks correlates the popularity of finance-inspired cat names with
daily stock closing prices and reports whether the cats know something.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if mgrErr != nil {
				return fmt.Errorf("failed to load configuration: %w", mgrErr)
			}
			if err := mgr.Watch(cmd.Context(), func(cfg config.Config) {
				log.Printf("configuration reloaded: symbol=%s days_back=%d name_sample_size=%d",
					cfg.Symbol, cfg.DaysBack, cfg.NameSampleSize)
			}); err != nil {
				return fmt.Errorf("failed to watch configuration: %w", err)
			}
			cfg := mgr.Get()
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("failed to create directories: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractiveMode(cmd.Context(), mgr, current)
		},
	}

	rootCmd.AddCommand(newRunCmd(current))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(mgr, current))

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug mode")

	return rootCmd
}

// newRunCmd creates the run command
func newRunCmd(current func() config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the cat name vs stock correlation analysis",
		Long: `Fetch cat names and price history, align them by date, compute the
Pearson correlation and write the chart, Excel and CSV reports.
Example: catstonks run --symbol ^GSPC --days 30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := current()
			if symbol, _ := cmd.Flags().GetString("symbol"); symbol != "" {
				cfg.Symbol = symbol
			}
			if days, _ := cmd.Flags().GetInt("days"); days > 0 {
				cfg.DaysBack = days
			}
			if names, _ := cmd.Flags().GetInt("names"); names > 0 {
				cfg.NameSampleSize = names
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return runAnalysis(cmd.Context(), &cfg)
		},
	}

	cmd.Flags().String("symbol", "", "Ticker symbol (default from config, ^GSPC)")
	cmd.Flags().Int("days", 0, "Price history window in days")
	cmd.Flags().Int("names", 0, "Number of cat names to sample")

	return cmd
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("catstonks v1.0.0")
			fmt.Println("Finance-Inspired Cat Names vs the Stock Market")
		},
	}
}

// newConfigCmd creates the config command
func newConfigCmd(mgr *config.Manager, current func() config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := current()
			showConfig(&cfg, mgr.Path())
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := current()
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}
			fmt.Println("✅ Configuration is valid.")
			return nil
		},
	})

	return configCmd
}

// runAnalysis executes the pipeline and, on success, writes all reports.
// Pipeline failures skip every export; there is no degraded null result.
func runAnalysis(ctx context.Context, cfg *config.Config) error {
	fmt.Printf("🐱 Analyzing %d cat names against %s over the last %d days...\n",
		cfg.NameSampleSize, cfg.Symbol, cfg.DaysBack)

	report, err := pipeline.New(cfg).Run(ctx, time.Now())
	if err != nil {
		var verr *analysis.ValidationError
		var uerr *analysis.UpstreamError
		switch {
		case errors.As(err, &verr):
			return fmt.Errorf("input validation failed, no result produced: %w", err)
		case errors.As(err, &uerr):
			return fmt.Errorf("data source failed, no result produced: %w", err)
		default:
			return fmt.Errorf("analysis failed, no result produced: %w", err)
		}
	}

	DisplayReport(report)

	var exportErrs []error

	if path, err := export.NewChartRenderer(cfg.ResultsDir).Render(report); err != nil {
		exportErrs = append(exportErrs, fmt.Errorf("chart: %w", err))
	} else {
		fmt.Printf("✅ Chart saved as '%s'\n", path)
	}

	if path, err := export.NewExcelReporter(cfg.ResultsDir).WriteReport(report); err != nil {
		exportErrs = append(exportErrs, fmt.Errorf("excel: %w", err))
	} else {
		fmt.Printf("✅ Excel report saved as '%s'\n", path)
	}

	if path, err := export.NewCSVManager(cfg.ResultsDir).WriteReportCSV(report); err != nil {
		exportErrs = append(exportErrs, fmt.Errorf("csv: %w", err))
	} else {
		fmt.Printf("✅ CSV report saved as '%s'\n", path)
	}

	if len(exportErrs) > 0 {
		return fmt.Errorf("analysis succeeded but %d export(s) failed: %w",
			len(exportErrs), errors.Join(exportErrs...))
	}
	return nil
}

// showConfig displays the current configuration
func showConfig(cfg *config.Config, configPath string) {
	fmt.Println("📋 Current catstonks Configuration:")
	fmt.Println("═══════════════════════════════════")
	fmt.Printf("Config File:          %s\n", configPath)
	fmt.Printf("Project Directory:    %s\n", cfg.ProjectDir)
	fmt.Printf("Results Directory:    %s\n", cfg.ResultsDir)
	fmt.Printf("Data Directory:       %s\n", cfg.DataDir)
	fmt.Printf("Cache Directory:      %s\n", cfg.DataCacheDir)
	fmt.Println()
	fmt.Printf("Symbol:               %s\n", cfg.Symbol)
	fmt.Printf("Days Back:            %d\n", cfg.DaysBack)
	fmt.Printf("Name Sample Size:     %d\n", cfg.NameSampleSize)
	if cfg.NamesURL != "" {
		fmt.Printf("Names URL:            %s\n", cfg.NamesURL)
	} else {
		fmt.Println("Names URL:            (built-in list)")
	}
	fmt.Println()
	fmt.Printf("Online Tools:         %t\n", cfg.OnlineTools)
	fmt.Printf("Cache Enabled:        %t\n", cfg.CacheEnabled)
	fmt.Printf("Debug Mode:           %t\n", cfg.Debug)
}

// runInteractiveMode prompts for the analysis inputs and runs the pipeline.
// Each loop iteration starts from the managed config, so edits to the
// config file made while the session is open apply to the next run. Prompt
// answers are saved back as the new defaults.
func runInteractiveMode(ctx context.Context, mgr *config.Manager, current func() config.Config) error {
	DisplayWelcomeBanner()

	for {
		cfg := current()

		symbol, err := PromptForSymbol(cfg.Symbol)
		if err != nil {
			return err
		}
		cfg.Symbol = symbol

		days, err := PromptForDaysBack(cfg.DaysBack)
		if err != nil {
			return err
		}
		cfg.DaysBack = days

		saved := mgr.Get()
		saved.Symbol = symbol
		saved.DaysBack = days
		if err := mgr.Update(saved); err != nil {
			fmt.Printf("⚠️  Could not save configuration: %v\n", err)
		}

		confirmed, err := PromptForConfirmation(&cfg)
		if err != nil {
			return err
		}
		if confirmed {
			if err := runAnalysis(ctx, &cfg); err != nil {
				fmt.Printf("❌ %v\n", err)
			}
		}

		again, err := PromptForRestartOrExit()
		if err != nil {
			return err
		}
		if !again {
			fmt.Println("👋 Thank you for using catstonks!")
			return nil
		}
	}
}
