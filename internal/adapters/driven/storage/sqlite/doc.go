// Package sqlite provides a SQLite-backed address book.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. It has two halves sharing one schema:
//
//   - ContactStore: a read-only driven.ContactStore over an existing database
//   - Writer: creates a database and replaces a container's contacts, used
//     to snapshot another store for offline reading
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Each contact field is stored as one row per value in
// contact_fields; the kind column says how to rebuild the native value.
//
// # Data Location
//
// By default, the database is stored at ~/.addrbook/contacts.db
package sqlite
