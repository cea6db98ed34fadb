// Package postgres provides PostgreSQL implementations of the store
// interfaces defined in the store package. All implementations accept a
// store.DBTX, so they run identically over a plain connection pool or
// inside a caller-managed transaction.
package postgres
