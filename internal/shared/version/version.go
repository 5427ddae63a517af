// # internal/shared/version/version.go
package version

const (
	Version     = "0.1.0"
	ServiceName = "sherlock-indexer"
)
