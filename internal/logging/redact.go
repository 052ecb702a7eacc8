// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

package logging

// RedactSecret masks a credential for logging, showing only the first and
// last 4 characters of long values.
// Example: "0123456789abcdef" -> "0123...cdef"
func RedactSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 12 {
		return "***"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

// RedactUsername keeps the first 2 characters of a username.
// Example: "zetta-admin" -> "ze***"
func RedactUsername(username string) string {
	if username == "" {
		return ""
	}
	if len(username) <= 2 {
		return "***"
	}
	return username[:2] + "***"
}
