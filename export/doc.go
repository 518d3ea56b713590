// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package export renders score records for download.

Two formats share one column layout:

	Participant ID, Participant Name, Paper Title, Judge, Section,
	<every criterion of every rubric>, Total Score, Remarks, Submitted At

Criterion cells that belong to the other section stay empty. Records whose
participant no longer exists are labelled "Unknown".

  - WriteCSV: every cell quoted, lines joined with "\n"
  - WriteSpreadsheet: an HTML table that Excel opens as a sheet, optionally
    preceded by per-section ranking tables

Output is deterministic for a given input.
*/
package export
