// Package postgres implements the store interfaces on top of a PostgreSQL
// database accessed through the pgx stdlib driver.
//
// Unique and foreign-key constraint violations are translated into the
// store package's error taxonomy so callers never depend on driver errors.
// Schema migrations are embedded in this package and applied with goose.
package postgres
