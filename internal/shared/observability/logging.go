// # internal/shared/observability/logging.go
package observability

import (
	"io"
	"log/slog"
	"strings"
)

// ConfigureLogging installs the default slog logger. format is "json" or
// "text"; level may be changed later through the returned LevelVar.
func ConfigureLogging(w io.Writer, format string, level slog.Level) *slog.LevelVar {
	lv := new(slog.LevelVar)
	lv.Set(level)

	opts := &slog.HandlerOptions{Level: lv}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
	return lv
}
