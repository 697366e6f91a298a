package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xqrs/properlist"
	"github.com/xqrs/properlist/internal/config"
	"github.com/xqrs/properlist/internal/logger"
)

var flags struct {
	envDir       string
	fade         bool
	items        int
	sectionEvery int
	logLevel     string
	logFile      string
}

// RootCmd runs the demo.
var RootCmd = &cobra.Command{
	Use:   "properlist-demo",
	Short: "Scrollable list with sticky section headers",
	Long: `properlist-demo fills a terminal list with text items and sticky section
headers. Keys: f toggles fading headers, s shuffles, r removes every third
item, R restores all items, ? lists all keys, q quits.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	RootCmd.Flags().StringVar(&flags.envDir, "env-dir", ".", "directory holding an optional .env file")
	RootCmd.Flags().BoolVar(&flags.fade, "fade", false, "cross-fade sticky headers instead of pushing them")
	RootCmd.Flags().IntVar(&flags.items, "items", 0, "number of text items")
	RootCmd.Flags().IntVar(&flags.sectionEvery, "section-every", 0, "insert a sticky header before every n-th item")
	RootCmd.Flags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	RootCmd.Flags().StringVar(&flags.logFile, "log-file", "", "log file path")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console", OutputPath: "stderr"})
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(flags.envDir)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	app := properlist.NewApplication().SetLogger(log)
	d := newDemo(app, cfg.Demo, log)
	app.SetRoot(d.view())
	d.start()

	log.Info("demo started",
		zap.Int("items", cfg.Demo.ItemCount),
		zap.Bool("fade", cfg.Demo.Fade))
	return app.Run()
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	fs := cmd.Flags()
	if fs.Changed("fade") {
		cfg.Demo.Fade = flags.fade
	}
	if fs.Changed("items") {
		cfg.Demo.ItemCount = flags.items
	}
	if fs.Changed("section-every") {
		cfg.Demo.SectionEvery = flags.sectionEvery
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if fs.Changed("log-file") {
		cfg.Log.OutputPath = flags.logFile
	}
}
