// Package cli wires configuration, logging and storage into the cobra
// command tree. The bare command starts the terminal UI.
package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"taskdash/internal/config"
	"taskdash/internal/logging"
	"taskdash/internal/notify"
	"taskdash/internal/report"
	"taskdash/internal/storage"
	"taskdash/internal/task"
	"taskdash/internal/ui"
)

// CLI holds what every command needs once the persistent pre-run has
// opened it.
type CLI struct {
	RootCmd *cobra.Command

	configPath string
	clock      func() time.Time
	notifier   notify.Notifier
	runUI      func(*task.Repository, config.Config, logrus.FieldLogger) error

	cfg     config.Config
	log     *logrus.Logger
	store   *storage.Store
	repo    *task.Repository
	now     time.Time
	closers []io.Closer
}

// New builds the command tree. clock is read once per invocation.
func New(clock func() time.Time) *CLI {
	if clock == nil {
		clock = time.Now
	}
	c := &CLI{
		clock:    clock,
		notifier: notify.Desktop{AppName: config.AppName},
		runUI:    ui.Run,
	}
	c.RootCmd = c.createRootCommand()
	return c
}

// Execute runs the command line. Resources opened by the pre-run are
// released even when the command fails.
func (c *CLI) Execute() error {
	err := c.RootCmd.Execute()
	if cerr := c.close(); err == nil {
		err = cerr
	}
	return err
}

func (c *CLI) createRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   config.AppName,
		Short: "Task list with a productivity dashboard",
		Long: `taskdash keeps a small task list in a local SQLite file and shows
completion, productivity and category analytics for a day, week, month or
custom date range.`,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.open()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runUI(c.repo, c.cfg, c.log)
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $"+config.EnvConfigPath+" or the user config dir)")

	root.AddCommand(
		c.createUICommand(),
		c.createAddCommand(),
		c.createListCommand(),
		c.createDoneCommand(),
		c.createRemoveCommand(),
		c.createReportCommand(),
		c.createImportCommand(),
		c.createRemindCommand(),
	)
	return root
}

func (c *CLI) createUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the terminal interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runUI(c.repo, c.cfg, c.log)
		},
	}
}

func (c *CLI) open() error {
	c.now = c.clock()

	path := c.configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c.cfg = cfg

	log, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	c.log = log
	c.closers = append(c.closers, closer)

	store, err := storage.Open(cfg.DBPath, log)
	if err != nil {
		_ = c.close()
		return fmt.Errorf("failed to open database: %w", err)
	}
	c.store = store
	c.closers = append(c.closers, store)

	repo, err := task.OpenRepository(store, cfg.SeedSampleTasks, log)
	if err != nil {
		_ = c.close()
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	c.repo = repo
	log.WithFields(logrus.Fields{"config": path, "db": cfg.DBPath}).Debug("opened")
	return nil
}

// close releases in reverse order of opening.
func (c *CLI) close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *CLI) renderer(cmd *cobra.Command, format string) (*report.Renderer, error) {
	f, err := report.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return report.New(cmd.OutOrStdout(), f), nil
}
