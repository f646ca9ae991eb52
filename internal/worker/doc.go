// Package worker defines the personnel records kept by the registry.
//
// A Worker is the flat, joined view of a row in the workers table together
// with the title of the lookup entry it references. LookupEntry is the
// normalized row that deduplicates repeated names.
//
// Values are stored and returned byte-for-byte as given; names are matched
// to lookup entries by exact string comparison.
package worker
