// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

// Package config provides strongly-typed configuration for the collector.
//
// Configuration is layered with koanf v2, lowest priority first:
//
//  1. Struct defaults (defaultConfig)
//  2. YAML file: the -config flag, CONFIG_PATH, or the first of DefaultConfigPaths
//  3. Environment variables, mapped explicitly (ZETTA_API_KEY -> zetta.api_key)
//
// Example config.yaml:
//
//	zetta:
//	  host: 10.20.0.15
//	  api_key: 6f1c...
//	  username: monitor
//	  password: hunter2
//	poll:
//	  batch_size: 25
//	  interval: 60s
//
// Validation runs through internal/validation. Every failure wraps
// ErrInvalidConfig, and missing Zetta credentials are always fatal.
package config
