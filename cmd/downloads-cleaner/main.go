package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/elise-bgn/DownloadsCleaner/internal/config"
	"github.com/elise-bgn/DownloadsCleaner/internal/logging"
	"github.com/elise-bgn/DownloadsCleaner/internal/organizer"
	"github.com/elise-bgn/DownloadsCleaner/internal/reporter"
	"github.com/elise-bgn/DownloadsCleaner/internal/trash"
	"github.com/elise-bgn/DownloadsCleaner/internal/ui"
)

var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	configPath string
	verbose    bool
	targetDir  string
	months     int
	simulate   bool
	keepAll    bool
	deleteAll  bool
	noUI       bool
	excludes   []string
	outputFmt  string
	outputFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "downloads-cleaner",
	Short: "Keep the downloads folder organized",
	Long: `DownloadsCleaner files everything in your downloads folder into
"Downloaded <Category>" folders, asks what to do with files you have not
touched in months, and sends the ones you give up to the trash, where
they can still be recovered.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
}

var organizeCmd = &cobra.Command{
	Use:   "organize",
	Short: "Run one organization pass over the downloads folder",
	Long: `Runs a single pass: every file is filed into its category folder,
subfolders move to "Downloaded Folders", and stale files are resolved
one question at a time. A timestamped run log is written into the
folder itself.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPass(cmd, false)
	},
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Preview an organization pass without changing anything",
	Long: `Walks through a full pass in simulate mode: the same classification,
staleness questions, and collision handling as a real run, but nothing
on disk moves and nothing is deleted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPass(cmd, true)
	},
}

func runPass(cmd *cobra.Command, forceSimulate bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Flags override the file
	if cmd.Flags().Changed("target") {
		cfg.TargetDir = targetDir
	}
	if cmd.Flags().Changed("months") {
		cfg.AgeThresholdMonths = months
	}
	if cmd.Flags().Changed("exclude") {
		cfg.ExcludePatterns = excludes
	}
	if cmd.Flags().Changed("simulate") {
		cfg.Simulate = simulate
	}
	if forceSimulate {
		cfg.Simulate = true
		// plan is about the individual actions, so show them unless the
		// user picked a format.
		if !cmd.Flags().Changed("output") {
			outputFmt = "table"
		}
	}

	if keepAll && deleteAll {
		return fmt.Errorf("--keep-all and --delete-all are mutually exclusive")
	}
	if keepAll {
		cfg.Decision = config.DecisionKeep
	}
	if deleteAll {
		cfg.Decision = config.DecisionDelete
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logging.Init(logging.Options{Level: level, Format: cfg.LogFormat})

	o, err := organizer.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if useInteractive() {
		// The interface shows its own summary.
		if _, err := ui.Execute(ctx, o, cfg.Simulate); err != nil {
			if errors.Is(err, context.Canceled) {
				fmt.Fprintln(os.Stderr, "Organization cancelled.")
				return nil
			}
			return err
		}
		return nil
	}

	o.SetLogger(*logging.Named("organizer"))

	result, err := runPlain(ctx, o, cfg)
	if err != nil {
		if errors.Is(err, context.Canceled) && result != nil {
			fmt.Fprintln(os.Stderr, "\nOrganization cancelled.")
		} else {
			return err
		}
	}

	return report(result)
}

// runPlain runs the pass without the full-screen interface, with a
// lightweight progress line when the terminal allows it.
func runPlain(ctx context.Context, o *organizer.Organizer, cfg *config.Config) (*organizer.Result, error) {
	lp := ui.NewLiveProgress()
	// Prompts own the terminal in ask mode; progress repainting would
	// garble them.
	promptMode := cfg.Decision == config.DecisionAsk
	lp.SetEnabled(!promptMode && isatty.IsTerminal(os.Stderr.Fd()))

	updates := o.GetProgressReporter().Subscribe()
	defer o.GetProgressReporter().Unsubscribe(updates)
	go func() {
		for u := range updates {
			lp.Apply(u)
		}
	}()

	lp.Start()
	result, err := o.Run(ctx)
	lp.Finish()

	return result, err
}

// useInteractive decides whether the full-screen interface should run.
func useInteractive() bool {
	if noUI {
		return false
	}
	if outputFmt != "summary" || outputFile != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func report(result *organizer.Result) error {
	format := parseFormat(outputFmt)

	if outputFile != "" {
		if err := reporter.SaveToFile(result, outputFile, format); err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		fmt.Printf("Report saved to: %s\n", outputFile)
		return nil
	}

	return reporter.New(os.Stdout, format).Report(result)
}

func parseFormat(name string) reporter.OutputFormat {
	switch name {
	case "json":
		return reporter.FormatJSON
	case "yaml":
		return reporter.FormatYAML
	case "table":
		return reporter.FormatTable
	default:
		return reporter.FormatSummary
	}
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display current configuration",
	Long:  `Shows the configuration file location and the effective settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath := configPath
		if cfgPath == "" {
			var err error
			cfgPath, err = config.GetConfigPath()
			if err != nil {
				return err
			}
		}

		fmt.Printf("Config file: %s\n", cfgPath)
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			fmt.Println("Config file does not exist. Using default configuration.")
			fmt.Println("\nRun 'downloads-cleaner config init' to create one.")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		target := cfg.TargetDir
		if target == "" {
			target = "(platform downloads folder)"
		}
		fmt.Printf("\nTarget: %s\n", target)
		fmt.Printf("Age threshold: %d months\n", cfg.AgeThresholdMonths)
		fmt.Printf("Simulate: %v\n", cfg.Simulate)
		fmt.Printf("Decision mode: %s\n", cfg.Decision)
		if len(cfg.ExcludePatterns) > 0 {
			fmt.Printf("Exclude patterns: %v\n", cfg.ExcludePatterns)
		}
		fmt.Printf("Log level: %s\n", cfg.LogLevel)

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.EnsureConfigExists()
		if err != nil {
			return fmt.Errorf("failed to create config: %w", err)
		}
		fmt.Printf("Config file ready: %s\n", path)
		return nil
	},
}

var configExampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print a fully commented example configuration",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(config.GetExampleConfig())
	},
}

var trashCmd = &cobra.Command{
	Use:   "trash",
	Short: "Inspect and restore trashed files",
}

var trashListCmd = &cobra.Command{
	Use:   "list",
	Short: "List files the organizer sent to the trash",
	RunE: func(cmd *cobra.Command, args []string) error {
		bin, err := trash.NewBin()
		if err != nil {
			return err
		}

		records, err := bin.List()
		if err != nil {
			return fmt.Errorf("failed to read trash: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("Trash is empty.")
			return nil
		}

		tw := table.NewWriter()
		tw.SetStyle(table.StyleRounded)
		tw.AppendHeader(table.Row{"Name", "Deleted", "Size", "Original Path"})
		for _, rec := range records {
			deleted := "-"
			if !rec.DeletedAt.IsZero() {
				deleted = humanize.Time(rec.DeletedAt)
			}
			tw.AppendRow(table.Row{rec.Name, deleted, humanize.Bytes(uint64(rec.Size)), rec.OriginalPath})
		}
		fmt.Println(tw.Render())

		if !bin.CanRestore() {
			fmt.Println("\nRestore metadata is not available on this platform.")
		}
		return nil
	},
}

var trashRestoreCmd = &cobra.Command{
	Use:   "restore <name>",
	Short: "Restore a trashed file to its original location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bin, err := trash.NewBin()
		if err != nil {
			return err
		}

		rec, err := bin.Restore(args[0])
		if err != nil {
			if errors.Is(err, trash.ErrNoMetadata) {
				return fmt.Errorf("restore is not supported on this platform")
			}
			return fmt.Errorf("failed to restore: %w", err)
		}

		fmt.Printf("Restored: %s\n", rec.OriginalPath)
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose diagnostic output")

	for _, cmd := range []*cobra.Command{organizeCmd, planCmd} {
		cmd.Flags().StringVar(&targetDir, "target", "", "directory to organize (default: platform downloads folder)")
		cmd.Flags().IntVar(&months, "months", 3, "age threshold in months (30-day months)")
		cmd.Flags().BoolVar(&keepAll, "keep-all", false, "keep every stale file without asking")
		cmd.Flags().BoolVar(&deleteAll, "delete-all", false, "trash every stale file without asking")
		cmd.Flags().StringSliceVar(&excludes, "exclude", nil, "glob patterns to leave untouched")
		cmd.Flags().BoolVar(&noUI, "no-ui", false, "disable the full-screen interface")
		cmd.Flags().StringVar(&outputFmt, "output", "summary", "report format (summary, table, json, yaml)")
		cmd.Flags().StringVar(&outputFile, "file", "", "save the report to a file")
	}
	organizeCmd.Flags().BoolVar(&simulate, "simulate", false, "plan the pass without touching the filesystem")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configExampleCmd)
	trashCmd.AddCommand(trashListCmd)
	trashCmd.AddCommand(trashRestoreCmd)

	rootCmd.AddCommand(organizeCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(trashCmd)
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}

	cfgPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	return config.Load(cfgPath)
}
