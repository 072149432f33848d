// Package history persists a record of every finished pack build in SQLite.
//
// The store is optional: the CLI opens it when history is enabled and hands
// it to the builder as a recorder. Concurrent CLI invocations share the
// database file, so writes retry while SQLite reports the database as busy.
package history
