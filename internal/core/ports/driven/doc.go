// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
//   - ContactStore: Reads contacts from an address book
//   - StoreFactory: Creates contact stores from configuration
//   - FieldNormaliser: Flattens native field values
//   - TokenProvider: Supplies access tokens to remote stores
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
