package domain

import (
	"fmt"
	"maps"
	"slices"
)

// DatasetCreationArgs describes the dataset a file should belong to,
// without committing to whether that dataset is new or reused.
// Empty strings mean "not provided".
type DatasetCreationArgs struct {
	// Description is shown to users browsing the catalog.
	Description string

	// DeviceID attributes the dataset to a device.
	DeviceID string

	// Metadata holds arbitrary key-value pairs attached on creation.
	Metadata map[string]any

	// Name is a caller-supplied identifier (mission id, drive id, ...).
	// When set it fully controls grouping.
	Name string

	// Tags are attached on creation. Order is preserved.
	Tags []string
}

// Clone returns a deep copy so the receiver is never shared with callers
// that might mutate metadata or tags.
func (a DatasetCreationArgs) Clone() DatasetCreationArgs {
	a.Metadata = CloneMetadata(a.Metadata)
	a.Tags = CloneTags(a.Tags)
	return a
}

// HasName reports whether a dataset name was provided.
func (a DatasetCreationArgs) HasName() bool {
	return a.Name != ""
}

// HasDevice reports whether a device id was provided.
func (a DatasetCreationArgs) HasDevice() bool {
	return a.DeviceID != ""
}

// FileImportArgs describes how a single file is attached to its dataset.
type FileImportArgs struct {
	// Description is shown alongside the file.
	Description string

	// DeviceID attributes the file to a device.
	DeviceID string

	// Metadata holds arbitrary key-value pairs attached to the file.
	Metadata map[string]any

	// RelativePath is the logical path of the file within its dataset.
	RelativePath string

	// Tags are attached to the file. Order is preserved.
	Tags []string
}

// Clone returns a deep copy of the args.
func (a FileImportArgs) Clone() FileImportArgs {
	a.Metadata = CloneMetadata(a.Metadata)
	a.Tags = CloneTags(a.Tags)
	return a
}

// Validate checks the args carry everything an import needs.
func (a FileImportArgs) Validate() error {
	if a.RelativePath == "" {
		return fmt.Errorf("%w: relative path is required", ErrInvalidInput)
	}
	return nil
}

// CloneMetadata copies a metadata map one level deep. Nil stays nil.
func CloneMetadata(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	return maps.Clone(m)
}

// CloneTags copies a tag list. Nil stays nil.
func CloneTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	return slices.Clone(tags)
}

// MergeTags appends tags not already present, keeping first-seen order.
func MergeTags(base []string, extra ...string) []string {
	if len(extra) == 0 {
		return CloneTags(base)
	}
	out := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]struct{}, len(base)+len(extra))
	for _, t := range append(slices.Clone(base), extra...) {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
