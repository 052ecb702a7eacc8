// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

package collector

import "github.com/tomtom215/zetta-collector/internal/config"

// partition splits ids into consecutive batches of size, preserving order.
// The last batch may be shorter. size <= 0 uses config.DefaultBatchSize.
func partition(ids []string, size int) [][]string {
	if size <= 0 {
		size = config.DefaultBatchSize
	}
	if len(ids) == 0 {
		return nil
	}

	batches := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		batches = append(batches, ids[start:end:end])
	}
	return batches
}
