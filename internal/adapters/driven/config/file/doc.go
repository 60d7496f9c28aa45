// Package file provides the file-based implementation of driven.ConfigStore.
// Configuration is read from a TOML document whose tables map onto
// dot-notation keys, e.g.
//
//	[catalog]
//	org_id = "og_123"
//
// is read as "catalog.org_id".
package file
