// ABOUTME: SQL schema for the kv table in SQLite and PostgreSQL.
// ABOUTME: Created on open; there are no versioned migrations.
package storage

import "context"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at DATETIME NOT NULL
);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
`

// initSchema creates the kv table when missing.
func (d *DB) initSchema(ctx context.Context) error {
	schema := sqliteSchema
	if d.dialect == DialectPostgres {
		schema = postgresSchema
	}
	_, err := d.db.ExecContext(ctx, schema)
	return err
}
