// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
//   - KeywordService: owns the keyword taxonomy and its persistence
//   - SearchService: query building, provider call and result filtering
//   - SettingsService: typed access to the configuration store
package services
