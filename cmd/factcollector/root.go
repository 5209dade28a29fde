package main

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeanpaul/factcollector/internal/archive"
	"github.com/jeanpaul/factcollector/internal/collector"
	"github.com/jeanpaul/factcollector/internal/config"
	"github.com/jeanpaul/factcollector/internal/console"
	"github.com/jeanpaul/factcollector/internal/fetcher"
	"github.com/jeanpaul/factcollector/internal/logging"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// skipLoad marks commands that run without a valid configuration.
const skipLoad = "skip-load"

// app holds what every subcommand needs once flags are parsed.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
	printer *console.Printer
	store   *archive.File
	client  *http.Client
	stdout  io.Writer
	stderr  io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "factcollector",
		Short: "Collect unique random facts into a JSON archive",
		Long: `factcollector polls a fact endpoint, extracts the fact text and
appends it to a JSON archive unless an identical fact is already stored.

Run "factcollector collect" for a single cycle or "factcollector watch" to
keep collecting every 30 seconds until interrupted.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipLoad] == "true" {
				return nil
			}
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is ./config.yaml or "+config.Path()+")")
	pf.String("archive", "", "archive file path")
	pf.String("endpoint", "", "fact endpoint URL")
	pf.String("kind", "", "endpoint kind (json, feed, html)")
	pf.Duration("timeout", 0, "per-request timeout")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("log-file", "", "write diagnostic logs to this file instead of stderr")

	root.AddCommand(
		newCollectCmd(a),
		newWatchCmd(a),
		newAddCmd(a),
		newListCmd(a),
		newExportCmd(a),
		newVerifyCmd(a),
		newDoctorCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if abs, err := filepath.Abs(cfg.Archive.Path); err == nil {
		cfg.Archive.Path = abs
	}

	a.cfg = cfg
	a.logger = logger
	a.printer = console.NewPrinter(a.stdout)
	a.client = &http.Client{}
	a.store = archive.NewFile(cfg.Archive.Path,
		archive.WithCorruptPolicy(archive.CorruptPolicy(cfg.Archive.CorruptPolicy)),
		archive.WithLogger(logger.Named("archive")))

	logger.Debug("configuration loaded",
		zap.String("endpoint", cfg.Fetch.Endpoint),
		zap.String("kind", cfg.Fetch.Kind),
		zap.String("archive", cfg.Archive.Path))
	return nil
}

func (a *app) collector() (*collector.Collector, error) {
	f, err := fetcher.New(a.cfg.Fetch, fetcher.WithHTTPClient(a.client))
	if err != nil {
		return nil, err
	}
	return collector.New(f, a.store, collector.Options{
		Interval:      a.cfg.Watch.Interval,
		MaxIterations: a.cfg.Watch.MaxIterations,
		Printer:       a.printer,
		Logger:        a.logger.Named("collector"),
	}), nil
}
