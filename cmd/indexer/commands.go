// # cmd/indexer/commands.go
package main

import (
	"context"
	"fmt"
	"strings"

	"sherlock/internal/engine/parser"
	"sherlock/internal/shared/version"

	"github.com/spf13/cobra"
)

func newExtractCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <path>",
		Short: "Extract symbols from a source file",
		Long:  "Extract symbols from a local file, or from <repo>/<file> on the --remote indexer.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbols, err := c.extract(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.printSymbols(cmd, args[0], symbols)
		},
	}
}

func newDepsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "deps <path>",
		Short: "Extract dependencies from a source file (currently always empty)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := c.deps(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.printSymbols(cmd, args[0], deps)
		},
	}
}

func newHashCmd(c *cli) *cobra.Command {
	var start, end int
	cmd := &cobra.Command{
		Use:   "hash <path>",
		Short: "Hash a 1-based inclusive line range of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var startLine, endLine *int
			if cmd.Flags().Changed("start") {
				startLine = &start
			}
			if cmd.Flags().Changed("end") {
				endLine = &end
			}
			hash, err := c.hash(cmd.Context(), args[0], startLine, endLine)
			if err != nil {
				return err
			}
			return c.printHash(cmd, args[0], hash)
		},
	}
	cmd.Flags().IntVar(&start, "start", 1, "First line (1-based)")
	cmd.Flags().IntVar(&end, "end", 0, "Last line, inclusive (default: last line of the file)")
	return cmd
}

func newLanguagesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List enabled languages and their file extensions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp()
			if err != nil {
				return err
			}
			return c.printLanguages(cmd, a.Service.Registry())
		},
	}
}

func newVersionCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]string{
					"service": version.ServiceName,
					"version": version.Version,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n", version.ServiceName, version.Version)
			return nil
		},
	}
}

func (c *cli) extract(ctx context.Context, path string) ([]parser.CodeSymbol, error) {
	if c.remote != "" {
		repo, file, err := splitRepoPath(path)
		if err != nil {
			return nil, err
		}
		return c.client().ExtractSymbols(ctx, repo, file)
	}
	a, err := c.newApp()
	if err != nil {
		return nil, err
	}
	return a.Service.ExtractSymbols(ctx, path)
}

func (c *cli) deps(ctx context.Context, path string) ([]parser.CodeSymbol, error) {
	if c.remote != "" {
		repo, file, err := splitRepoPath(path)
		if err != nil {
			return nil, err
		}
		return c.client().ExtractDependencies(ctx, repo, file)
	}
	a, err := c.newApp()
	if err != nil {
		return nil, err
	}
	return a.Service.ExtractDependencies(ctx, path)
}

func (c *cli) hash(ctx context.Context, path string, startLine, endLine *int) (string, error) {
	if c.remote != "" {
		repo, file, err := splitRepoPath(path)
		if err != nil {
			return "", err
		}
		return c.client().GetChunkHash(ctx, repo, file, startLine, endLine)
	}
	a, err := c.newApp()
	if err != nil {
		return "", err
	}
	return a.Service.ChunkHash(ctx, path, startLine, endLine)
}

// splitRepoPath splits "repo/dir/file.go" into the repo and file parts the
// HTTP routes expect.
func splitRepoPath(path string) (string, string, error) {
	repo, file, ok := strings.Cut(strings.TrimLeft(path, "/"), "/")
	if !ok || repo == "" || file == "" {
		return "", "", fmt.Errorf("remote paths must look like <repo>/<file>, got %q", path)
	}
	return repo, file, nil
}
