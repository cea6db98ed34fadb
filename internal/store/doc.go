// Package store defines the persistence interfaces consumed by the
// service layer, the DBTX abstraction over connections and transactions,
// and the shared error taxonomy store implementations translate into.
package store
