// # cmd/indexer/render.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sherlock/internal/engine/parser"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Width(10)

	exportedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) printSymbols(cmd *cobra.Command, path string, symbols []parser.CodeSymbol) error {
	if symbols == nil {
		symbols = []parser.CodeSymbol{}
	}
	if c.jsonOut {
		return writeJSON(cmd.OutOrStdout(), parser.ExtractResponse{Symbols: symbols, Success: true})
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatSymbols(path, symbols))
	return nil
}

func (c *cli) printHash(cmd *cobra.Command, path, hash string) error {
	if c.jsonOut {
		return writeJSON(cmd.OutOrStdout(), parser.HashResponse{Hash: hash, Success: true})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", hash, path)
	return nil
}

func (c *cli) printLanguages(cmd *cobra.Command, registry *parser.Registry) error {
	if c.jsonOut {
		out := make(map[string][]string)
		for _, lang := range registry.Languages() {
			spec, _ := registry.Spec(lang)
			out[string(lang)] = spec.Extensions
		}
		return writeJSON(cmd.OutOrStdout(), out)
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatLanguages(registry))
	return nil
}

// formatSymbols renders one line per symbol: kind, name, line range and an
// exported marker.
func formatSymbols(path string, symbols []parser.CodeSymbol) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d symbols)", path, len(symbols))))
	if len(symbols) == 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  no symbols found"))
		return b.String()
	}
	for _, sym := range symbols {
		b.WriteString("\n  ")
		b.WriteString(kindStyle.Render(string(sym.SymbolType)))
		b.WriteString(" ")
		if sym.Exported {
			b.WriteString(exportedStyle.Render(sym.SymbolName))
		} else {
			b.WriteString(sym.SymbolName)
		}
		b.WriteString(" ")
		b.WriteString(dimStyle.Render(fmt.Sprintf("L%d-%d", sym.LineStart, sym.LineEnd)))
	}
	return b.String()
}

func formatLanguages(registry *parser.Registry) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Languages"))
	for _, lang := range registry.Languages() {
		spec, _ := registry.Spec(lang)
		b.WriteString("\n  ")
		b.WriteString(kindStyle.Render(string(lang)))
		b.WriteString(" ")
		b.WriteString(dimStyle.Render(strings.Join(spec.Extensions, " ")))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d extensions", len(registry.SupportedExtensions()))))
	return b.String()
}
