// Package normalisers provides implementations of the FieldNormaliser
// interface. A normaliser turns the native value of a contact field into a
// plain value that survives serialisation.
//
// The field normaliser is injected into the contact service at startup.
package normalisers
