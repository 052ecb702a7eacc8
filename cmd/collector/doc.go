// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

/*
Package main is the entry point of the Zetta station status collector.

The collector reads the station roster and organisation groups of an RCS
Zetta server through its Simple API, polls every station's on-air status
in parallel batches, and emits one Document per station.

# Modes

One-shot (-once) polls a single cycle and writes the batch to stdout, as a
JSON array or a table. This is the contract the indexing harness invokes:
stdout carries only the batch, logs go to stderr, exit status is 0 unless
the configuration is invalid.

	zetta-collector -once -host zetta01
	zetta-collector -once -format table

Service mode (the default) runs a supervisor tree:

	zetta-collector (root)
	├── collection-layer
	│   └── zetta-poller   periodic poll, latest snapshot in memory
	└── api-layer
	    └── http-server    /api/v1/documents, /api/v1/poll, /metrics, ...

and shuts down gracefully on SIGINT or SIGTERM.

# Configuration

Settings are layered (highest priority wins):
  - Environment variables (ZETTA_HOST, ZETTA_API_KEY, POLL_BATCH_SIZE, ...)
  - A .env file in the working directory, loaded into the environment
  - Config file (-config, CONFIG_PATH, or ./config.yaml)
  - Built-in defaults

ZETTA_API_KEY, ZETTA_USERNAME and ZETTA_PASSWORD are required.

# Flags

	-config string   config file path
	-once            poll once and print the batch
	-format string   json or table (with -once, default json)
	-host string     Zetta host, overrides ZETTA_HOST and the config file
*/
package main
