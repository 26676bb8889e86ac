// Package pgstorage is the PostgreSQL implementation of twofactor.Storage
// built on pgx. Credentials live in nullable columns of the users table and
// every write is guarded by the row version.
package pgstorage
