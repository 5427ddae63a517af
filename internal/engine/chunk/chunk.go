// # internal/engine/chunk/chunk.go
// Package chunk hashes contiguous line ranges of a file so downstream
// indexers can detect changed or duplicated chunks without re-parsing.
package chunk

import (
	"fmt"
	"strconv"
	"strings"

	"sherlock/internal/core/errors"

	"github.com/cespare/xxhash/v2"
)

// SplitLines splits content on "\n", dropping one trailing "\r" from each
// terminated line. A final newline does not produce an extra empty line.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	last := len(lines) - 1
	if lines[last] == "" {
		lines = lines[:last]
	}
	for i := range lines {
		if i == last {
			break
		}
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	return lines
}

// Range resolves optional 1-based inclusive bounds against total lines and
// returns the half-open 0-based slice bounds. start defaults to 1 and is
// raised to 1; end defaults to total and is lowered to total.
func Range(total int, startLine, endLine *int) (int, int, error) {
	start := 1
	if startLine != nil {
		start = *startLine
	}
	if start < 1 {
		start = 1
	}
	start--

	end := total
	if endLine != nil && *endLine < total {
		end = *endLine
	}

	if start >= total || end > total || start >= end {
		return 0, 0, errors.New(
			errors.CodeInvalidRange,
			fmt.Sprintf("invalid line range: start=%d end=%d total=%d", start+1, end, total),
		)
	}
	return start, end, nil
}

// Hash returns the lowercase hex xxhash64 of the selected lines joined by
// "\n". Equal content at equal bounds always yields the same hash.
func Hash(content []byte, startLine, endLine *int) (string, error) {
	lines := SplitLines(string(content))
	start, end, err := Range(len(lines), startLine, endLine)
	if err != nil {
		return "", err
	}
	sum := xxhash.Sum64String(strings.Join(lines[start:end], "\n"))
	return strconv.FormatUint(sum, 16), nil
}
