// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the importer to function:
//
//   - CatalogService: Ensures datasets and imports files (Roboto)
//   - MetadataExtractor: Turns a notification into argument bundles
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the importer degrades gracefully:
//
//   - ObjectMetadataSource: Reads object user metadata. Without it,
//     extraction relies on the notification alone.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
