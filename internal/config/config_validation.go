// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Yusuf Karimov

package config

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/ykarimov/authgate/models"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Auth.TokenSignKey == "" {
		return ErrInvalidAuthConfigs
	}

	if cfg.Auth.BcryptCost < bcrypt.MinCost || cfg.Auth.BcryptCost > bcrypt.MaxCost {
		return ErrInvalidAuthConfigs
	}

	if cfg.Auth.MinPasswordLength < 1 || cfg.Auth.CookieName == "" {
		return ErrInvalidAuthConfigs
	}

	if !models.Role(cfg.Auth.DefaultRole).Valid() {
		return ErrInvalidAuthConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}
