// Package cli implements the pegboard command-line interface.
//
// Running pegboard with no subcommand opens the editor. The catalog and
// config subcommands print the tool catalog and the effective settings.
//
// All commands accept --config to point at a settings file other than
// ~/.pegboard.toml and --verbose for debug logging. The editor owns the
// terminal while it runs, so its logs go to --log-file or nowhere.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"pegboard/internal/catalog"
	"pegboard/internal/config"
	"pegboard/internal/tui"
)

var version = "dev"

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	version = v
}

// CLI holds the flags and output streams shared by all commands.
type CLI struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	logFile    string
	verbose    bool

	logCloser io.Closer
}

// New creates a CLI writing command output to stdout and logs to stderr.
func New(stdout, stderr io.Writer) *CLI {
	return &CLI{stdout: stdout, stderr: stderr}
}

// RootCommand builds the command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "pegboard",
		Short:        "Lay out tools on a pegboard in the terminal",
		Long:         `Pegboard is a terminal editor for arranging tool outlines on a pegboard grid. Drag tools from the palette with the mouse or place them from the keyboard, then export the layout as PNG or text.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.logOutput(cmd)
			if err != nil {
				return err
			}
			level := log.InfoLevel
			if c.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(w, level)))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logCloser != nil {
				c.logCloser.Close()
				c.logCloser = nil
			}
		},
		RunE: c.runEditor,
	}

	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "settings file (default ~/"+config.FileName+")")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.logFile, "log-file", "", "append logs to this file")

	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.configCommand())

	return root
}

// logOutput picks where logs go: the log file when given, stderr for the
// print commands, and nowhere for the full-screen editor.
func (c *CLI) logOutput(cmd *cobra.Command) (io.Writer, error) {
	if c.logFile != "" {
		f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		c.logCloser = f
		return f, nil
	}
	if !cmd.HasParent() {
		return io.Discard, nil
	}
	return c.stderr, nil
}

// loadConfig reads --config, or ~/.pegboard.toml when the flag is unset.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.configPath != "" {
		return config.Load(c.configPath)
	}
	return config.LoadDefault()
}

// loadCatalog returns the catalog named by the settings, or the built-in one.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(cfg.Catalog)
}

func (c *CLI) runEditor(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	logger.Info("starting editor",
		"grid", fmt.Sprintf("%dx%d", cfg.GridWidth, cfg.GridHeight),
		"tools", cat.Len(),
		"save_directory", cfg.SaveDirectory)

	m := tui.New(tui.Options{
		Config:  cfg,
		Catalog: cat,
		Logger:  logger,
	})
	if err := tui.Run(ctx, m); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("editor: %w", err)
	}
	logger.Info("editor closed")
	return nil
}
