// Package database archives exploration results in SQLite so past
// runs can be listed and compared.
package database
