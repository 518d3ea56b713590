// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the judgeboard API server.

judgeboard collects rubric score sheets from conference judges, ranks
participants per award section by the mean of their judges' totals, flags
ties, and exports the raw sheets as CSV or an Excel-readable HTML table.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=judgeboard.db ADMIN_PASSWORD=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -admin-password ...

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite file or PostgreSQL connection string
  - ADMIN_PASSWORD (-admin-password): guards destructive operations

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - EVENT_FILE (-event): event YAML; the ICCIET 2025 event is built in
  - LOG_LEVEL (-log-level), EXPORT_TIMEZONE (-tz)

See package cliparse for the .env and YAML layers.

# Architecture

  - handlers: HTTP request handlers (scores, participants, results, export, rubric)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, admin gate, JSON helpers
  - scoring: validation, aggregation, tie detection
  - export: CSV and spreadsheet rendering
  - store: score and participant persistence
  - db: connections and migrations
  - rubric: event definition
  - models: request, response and domain types
  - auth, cliparse, logging, metrics: supporting infrastructure

See package documentation for each component.
*/
package main
