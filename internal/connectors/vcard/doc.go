// Package vcard reads and writes address books kept as vCard files.
//
// A vCard store is a directory of .vcf files; each file may hold any number
// of cards. Cards are parsed with github.com/emersion/go-vcard and mapped to
// native contact field values. Writer produces a single .vcf file, so any
// other store can be snapshotted into a portable address book.
package vcard
