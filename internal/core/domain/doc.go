// Package domain defines the core business entities for the S3 importer.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ObjectRecord: A single storage "object created" notification
//   - InvocationContext: Per-invocation identity supplied by the trigger
//   - DatasetCreationArgs: Intent for the dataset a file should land in
//   - FileImportArgs: Intent for attaching one file to that dataset
//   - Dataset: The handle the catalog returns for an ensured dataset
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
