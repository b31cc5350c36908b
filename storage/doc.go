// Package storage defines the persistence contracts consumed by the
// relevance engine: corpus CRUD, vocabulary snapshot save/load, and
// append-only upload history. Implementations live in subpackages; the
// badger subpackage provides the embedded default.
package storage
