// # cmd/indexer/root.go
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"sherlock/internal/client"
	"sherlock/internal/core/app"
	"sherlock/internal/core/config"
	"sherlock/internal/shared/observability"

	"github.com/spf13/cobra"
)

// cli holds state shared by every subcommand after PersistentPreRunE.
type cli struct {
	configPath string
	verbose    bool
	jsonOut    bool
	remote     string
	timeout    time.Duration

	cfg      *config.Config
	logLevel *slog.LevelVar
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "indexer",
		Short:         "sherlock-indexer: symbol extraction and chunk hashing",
		Long:          "Extract declared symbols from source files with tree-sitter and hash line ranges, as a CLI or an HTTP service.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVarP(&c.configPath, "config", "c", "indexer.toml", "Path to config file (defaults are used if it does not exist)")
	f.BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")
	f.BoolVar(&c.jsonOut, "json", false, "Print wire-format JSON instead of styled output")
	f.StringVar(&c.remote, "remote", "", "Base URL of a running indexer; when set, requests go over HTTP")
	f.DurationVar(&c.timeout, "timeout", 30*time.Second, "HTTP timeout for --remote requests")

	root.AddCommand(
		newServeCmd(c),
		newExtractCmd(c),
		newDepsCmd(c),
		newHashCmd(c),
		newLanguagesCmd(c),
		newWatchCmd(c),
		newVersionCmd(c),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadOrDefault(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.cfg = cfg

	level := cfg.Log.SlogLevel()
	if c.verbose {
		level = slog.LevelDebug
	}
	c.logLevel = observability.ConfigureLogging(cmd.ErrOrStderr(), cfg.Log.Format, level)
	return nil
}

// newApp builds a local App rooted at the working directory.
func (c *cli) newApp() (*app.App, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return app.New(c.cfg, cwd)
}

func (c *cli) client() *client.Client {
	return client.New(c.remote).WithHTTPClient(&http.Client{Timeout: c.timeout})
}

// configFileExists reports whether the --config path points at a file, which
// is what the serve command watches.
func (c *cli) configFileExists() bool {
	info, err := os.Stat(filepath.Clean(c.configPath))
	return err == nil && !info.IsDir()
}
