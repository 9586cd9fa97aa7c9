// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - StateStore: Persists the keyword collection entry (SQLite, Redis or memory)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - SearchProvider: Web search API. Without it, searches fail with domain.ErrNotConfigured.
//   - ChangeWatcher: External change notifications. Without it, edits from other processes are picked up on restart.
//   - SearchRecorder: Metrics. Without it, nothing is recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
