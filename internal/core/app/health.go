// # internal/core/app/health.go
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"sherlock/internal/shared/util"
	"sherlock/internal/shared/version"
)

type HealthStatus struct {
	Status     string            `json:"status"`
	Service    string            `json:"service"`
	Version    string            `json:"version"`
	Timestamp  time.Time         `json:"timestamp"`
	Components map[string]string `json:"components"`
}

type HealthService struct {
	app *App
}

func NewHealthService(app *App) *HealthService {
	return &HealthService{app: app}
}

// Check reports "ok" when every component is usable and "degraded"
// otherwise. It never fails; problems are listed per component.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:     "ok",
		Service:    version.ServiceName,
		Version:    version.Version,
		Timestamp:  time.Now().UTC(),
		Components: make(map[string]string),
	}

	// Check grammars
	if s.app == nil || s.app.Service == nil {
		status.Status = "degraded"
		status.Components["parser"] = "missing"
		return status
	}
	registry := s.app.Service.Registry()
	loaded := s.app.Service.Grammars().Count()
	enabled := len(registry.Languages())
	if loaded < enabled {
		status.Status = "degraded"
	}
	status.Components["grammars"] = fmt.Sprintf("%d/%d loaded", loaded, enabled)
	status.Components["parser"] = "ok"

	// Check repository root
	if root := s.app.Root(); root != "" {
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			status.Status = "degraded"
			status.Components["root"] = "unavailable"
		} else {
			status.Components["root"] = "ok"
		}
	}

	status.Components["memory"] = fmt.Sprintf("%d MB heap", util.GetHeapAllocMB())
	return status
}
