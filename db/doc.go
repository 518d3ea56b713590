// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and keeps its schema current.

# Connecting

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Two backends are supported: sqlite (modernc.org/sqlite, pure Go) and
postgres (lib/pq). SQLite connections are limited to a single open
connection.

# Migrations

Migrate applies the embedded SQL migrations for the chosen backend with
golang-migrate:

	if err := db.Migrate(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call on every start; an up-to-date schema is left untouched.

# Tables

  - participants: id, name, title
  - scores: one rubric sheet per (participant_id, judge, section)

scores.participant_id has no foreign key. Records of deleted participants
remain in the table and are reported as "Unknown" on export.

# Indexes

  - scores.(participant_id, judge, section) (unique)
  - scores.created_at
*/
package db
