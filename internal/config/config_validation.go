// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

var supportedAlgorithms = map[string]struct{}{
	"HS256": {},
	"HS384": {},
	"HS512": {},
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// ErrInvalid* sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.SecretKey == "" {
		return fmt.Errorf("%w: secret key is required", ErrInvalidAppConfigs)
	}

	if _, ok := supportedAlgorithms[cfg.App.Algorithm]; !ok {
		return fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidAppConfigs, cfg.App.Algorithm)
	}

	if cfg.App.AccessTokenExpireMinutes <= 0 {
		return fmt.Errorf("%w: access token expiry must be positive", ErrInvalidAppConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Server.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout", ErrInvalidServerConfigs)
	}

	return nil
}
