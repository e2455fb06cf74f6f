// Package database manages the SQLite connection for the POS back office.
//
// It provides a thin wrapper over database/sql with WAL configuration,
// embedded schema migrations, and health checks. All entity repositories
// take the underlying *sql.DB; this package owns only connection lifecycle
// and schema versioning.
package database
