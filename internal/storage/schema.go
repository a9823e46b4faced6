// ABOUTME: SQL schema for the threat_actors vector index collection
// ABOUTME: Metadata column names mirror the persisted chunk contract
package storage

// Schema creates the index tables. Column names for chunk metadata
// (source_field, chunk_type, chunk_index, item_count, actor_id) are a
// stable contract that index migrations must preserve.
const Schema = `
CREATE TABLE IF NOT EXISTS threat_actors (
	chunk_id     TEXT PRIMARY KEY,
	actor_id     TEXT NOT NULL,
	source_field TEXT NOT NULL,
	chunk_type   TEXT NOT NULL,
	chunk_index  INTEGER NOT NULL DEFAULT 0,
	item_count   INTEGER NOT NULL DEFAULT 0,
	document     TEXT NOT NULL,
	vector       BLOB NOT NULL,
	created_at   TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_threat_actors_actor ON threat_actors(actor_id);
CREATE INDEX IF NOT EXISTS idx_threat_actors_field ON threat_actors(source_field);
`
