// Package extractor provides metadata extraction hooks.
//
// A Chain starts from a base driven.MetadataExtractor (normally Default)
// and runs Enrichers over its output in order. Enrichers fill in device
// ids, dataset names, tags and metadata from the object key, from the
// object's own stored metadata, or from configuration.
//
// Whatever an extractor derives must be stable for logically equivalent
// files. Grouping keys datasets on these values, so a non-deterministic
// name or device id creates a new dataset per file.
package extractor
