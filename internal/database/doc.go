// Package database provides SQLite connectivity and repositories.
//
// Uses the modernc.org/sqlite driver through database/sql. Migrations run
// in-process at startup. Repositories implement the domain interfaces:
// CategoryRepository and SessionRepository. The single-running-session
// invariant is enforced here with a partial unique index so it holds even
// against writers that bypass the ledger.
package database
