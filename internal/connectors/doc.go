// Package connectors holds the contact stores that read an external address
// book: Google Contacts through the People API and directories of vCard
// files. Each store implements driven.ContactStore and is created by the
// store factory from a domain.Source.
package connectors
