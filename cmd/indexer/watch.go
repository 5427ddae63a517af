// # cmd/indexer/watch.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"sherlock/internal/core/app"
	"sherlock/internal/core/watcher"
	"sherlock/internal/engine/parser"
	"sherlock/internal/shared/util"

	"github.com/spf13/cobra"
)

func newWatchCmd(c *cli) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch [dir...]",
		Short: "Re-extract source files as they change",
		Long:  "Watch directories (default: the working directory) and print the symbols of every supported file that is created or modified.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.watch(ctx, cmd, args, debounce)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "Quiet period before a batch of changes is processed")
	return cmd
}

func (c *cli) watch(ctx context.Context, cmd *cobra.Command, dirs []string, debounce time.Duration) error {
	a, err := c.newApp()
	if err != nil {
		return err
	}
	roots, err := absDirs(dirs)
	if err != nil {
		return err
	}

	w, err := watcher.New(debounce, watcher.DefaultSkipDirs, watchFilter(a, roots), func(paths []string) {
		c.reextract(ctx, cmd, a.Service, paths)
	})
	if err != nil {
		return err
	}
	if err := w.Add(roots...); err != nil {
		w.Close()
		return err
	}

	slog.Info("watching for changes", "dirs", roots, "languages", len(a.Service.Registry().Languages()))
	return w.Run(ctx)
}

func absDirs(dirs []string) ([]string, error) {
	out := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		out = append(out, abs)
	}
	return out, nil
}

// watchFilter accepts files with a supported extension whose path relative
// to the watched root containing it is not denied. roots must be absolute.
func watchFilter(a *app.App, roots []string) func(string) bool {
	return func(path string) bool {
		if _, ok := a.Service.Registry().DetectLanguage(path); !ok {
			return false
		}
		for _, root := range roots {
			if !util.HasPathPrefix(path, root) {
				continue
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				continue
			}
			if a.Denied(filepath.ToSlash(rel)) {
				return false
			}
		}
		return true
	}
}

func (c *cli) reextract(ctx context.Context, cmd *cobra.Command, svc *parser.Service, paths []string) {
	out := cmd.OutOrStdout()
	for _, path := range paths {
		symbols, err := svc.ExtractSymbols(ctx, path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				printRemoved(out, path)
				continue
			}
			slog.Warn("extraction failed", "path", path, "error", err)
			continue
		}
		if err := c.printSymbols(cmd, path, symbols); err != nil {
			slog.Warn("failed to write output", "error", err)
		}
	}
}

func printRemoved(w io.Writer, path string) {
	fmt.Fprintln(w, dimStyle.Render(path+" removed"))
}
