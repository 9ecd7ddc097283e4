// Package memory provides in-memory implementations of driven port interfaces.
// They hold no persistent state and are used in tests and as the "memory"
// store type.
package memory
