// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

package config

import (
	"errors"
	"fmt"

	"github.com/tomtom215/zetta-collector/internal/validation"
)

// ErrInvalidConfig is returned for every configuration that cannot be used.
// Missing Zetta credentials are the common case.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks every section of the configuration.
func (c *Config) Validate() error {
	if err := c.Zetta.Validate(); err != nil {
		return err
	}
	if err := c.Poll.Validate(); err != nil {
		return err
	}
	if c.Server.Enabled {
		if err := validateSection("server", &c.Server); err != nil {
			return err
		}
	}
	return validateSection("logging", &c.Logging)
}

// Validate checks the Zetta connection settings.
func (z *ZettaConfig) Validate() error {
	return validateSection("zetta", z)
}

// Validate checks the poll settings.
func (p *PollConfig) Validate() error {
	return validateSection("poll", p)
}

func validateSection(section string, s interface{}) error {
	if err := validation.ValidateStruct(s); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, section, err)
	}
	return nil
}
