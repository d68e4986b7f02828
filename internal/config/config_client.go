package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the task-keeper server.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientConfig is the top-level taskctl configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains the client transport address and timeout.
	Adapter ClientAdapter
	// StateFile is the path where the session token is persisted between
	// taskctl invocations.
	StateFile string
}

// GetClientConfig builds a client-specific config view from the merged
// structured configuration.
//
// Unlike [GetStructuredConfig] it skips command-line flags: taskctl owns its
// own argument syntax (subcommands), so only environment variables and the
// optional JSON file participate.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withJSON().
		buildClient()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	address := cfg.Client.ServerURL
	if address == "" {
		address = cfg.Server.HTTPAddress
	}
	if address == "" {
		address = DefaultHTTPAddress
	}

	stateFile := cfg.Client.StateFile
	if stateFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve state file location: %w", err)
		}
		stateFile = filepath.Join(home, ".taskctl", "session")
	}

	return &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    address,
			RequestTimeout: cfg.Server.RequestTimeout,
		},
		StateFile: stateFile,
	}, nil
}
