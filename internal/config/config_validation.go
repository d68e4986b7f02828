// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup, applying defaults
// for fields no source populated.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}

	if cfg.App.SessionTTL < 0 {
		return ErrInvalidAppConfigs
	}
	if cfg.App.SessionTTL == 0 {
		cfg.App.SessionTTL = DefaultSessionTTL
	}

	if cfg.App.BCryptCost < 0 || cfg.App.BCryptCost > 31 {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Workers.SweepInterval < 0 {
		return ErrInvalidWorkerConfigs
	}
	if cfg.Workers.SweepInterval == 0 {
		cfg.Workers.SweepInterval = DefaultSweepInterval
	}

	return nil
}
