// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/judgeboard/models"
	"github.com/danielhkuo/judgeboard/rubric"
)

// TimestampLayout is the layout of the Submitted At column.
const TimestampLayout = "2006-01-02 15:04:05"

// unknownLabel fills name and title cells of records whose participant is gone.
const unknownLabel = "Unknown"

// Input is everything an export reads.
type Input struct {
	Snapshot models.Snapshot
	Event    *rubric.Event
	Location *time.Location // nil means UTC
}

// FileName returns the download name for an export created at now.
func FileName(prefix string, now time.Time, ext string) string {
	return fmt.Sprintf("%s_Scores_%s.%s", prefix, now.Format("2006-01-02"), ext)
}

type column struct {
	section models.Section
	id      string
}

// Header returns the column titles shared by both formats.
func Header(ev *rubric.Event) []string {
	h := []string{"Participant ID", "Participant Name", "Paper Title", "Judge", "Section"}
	for _, c := range criteriaColumns(ev) {
		r, _ := ev.Rubric(c.section)
		crit, _ := r.Criterion(c.id)
		h = append(h, crit.Label)
	}
	return append(h, "Total Score", "Remarks", "Submitted At")
}

func criteriaColumns(ev *rubric.Event) []column {
	var cols []column
	for _, r := range ev.Rubrics() {
		for _, c := range r.Criteria {
			cols = append(cols, column{section: r.Section, id: c.ID})
		}
	}
	return cols
}

// Rows renders every score record of the snapshot, in snapshot order.
func Rows(in Input) [][]string {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}

	participants := make(map[string]models.Participant, len(in.Snapshot.Participants))
	for _, p := range in.Snapshot.Participants {
		participants[p.ID] = p
	}
	cols := criteriaColumns(in.Event)

	rows := make([][]string, 0, len(in.Snapshot.Scores))
	for _, rec := range in.Snapshot.Scores {
		name, title := unknownLabel, unknownLabel
		if p, ok := participants[rec.ParticipantID]; ok {
			name, title = p.Name, p.Title
		}

		row := []string{rec.ParticipantID, name, title, rec.Judge, string(rec.Section)}
		for _, c := range cols {
			if c.section != rec.Section {
				row = append(row, "")
				continue
			}
			row = append(row, humanize.Ftoa(rec.Scores[c.id]))
		}
		row = append(row,
			humanize.Ftoa(rec.Total),
			rec.Remark,
			rec.CreatedAt.In(loc).Format(TimestampLayout),
		)
		rows = append(rows, row)
	}
	return rows
}

func quoteCSV(cell string) string {
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}

// WriteCSV writes the header and one line per score record. Every cell is
// quoted and lines are separated by a bare "\n" with no trailing newline.
func WriteCSV(w io.Writer, in Input) error {
	bw := bufio.NewWriter(w)
	lines := append([][]string{Header(in.Event)}, Rows(in)...)
	for i, line := range lines {
		if i > 0 {
			bw.WriteByte('\n')
		}
		for j, cell := range line {
			if j > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(quoteCSV(cell))
		}
	}
	return bw.Flush()
}

const spreadsheetOpen = `<html xmlns:o="urn:schemas-microsoft-com:office:office" xmlns:x="urn:schemas-microsoft-com:office:excel" xmlns="http://www.w3.org/TR/REC-html40">` +
	`<head><meta charset="utf-8"/></head><body>`

// WriteSpreadsheet writes an HTML document that spreadsheet applications open
// as a workbook. When standings is non-empty a ranking table per section
// precedes the records table.
func WriteSpreadsheet(w io.Writer, in Input, standings []models.SectionResults) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(spreadsheetOpen)

	for _, res := range standings {
		bw.WriteString(`<h2>` + html.EscapeString(string(res.Section)+" Rankings") + `</h2>`)
		writeTable(bw, "rankings-"+res.Section.Slug(),
			[]string{"Rank", "Participant ID", "Participant Name", "Average Score", "Judges"},
			rankingRows(res))
	}

	writeTable(bw, "scores", Header(in.Event), Rows(in))
	bw.WriteString(`</body></html>`)
	return bw.Flush()
}

func rankingRows(res models.SectionResults) [][]string {
	rows := make([][]string, 0, len(res.Rankings))
	for _, r := range res.Rankings {
		rows = append(rows, []string{
			humanize.Ordinal(r.Rank),
			r.Participant.ID,
			r.Participant.Name,
			fmt.Sprintf("%.2f", r.AvgScore),
			humanize.Comma(int64(r.JudgeCount)),
		})
	}
	return rows
}

func writeTable(bw *bufio.Writer, id string, header []string, rows [][]string) {
	bw.WriteString(`<table id="` + id + `">`)
	writeRow(bw, "th", header)
	for _, row := range rows {
		writeRow(bw, "td", row)
	}
	bw.WriteString(`</table>`)
}

func writeRow(bw *bufio.Writer, tag string, cells []string) {
	bw.WriteString(`<tr>`)
	for _, c := range cells {
		bw.WriteString(`<` + tag + `>` + html.EscapeString(c) + `</` + tag + `>`)
	}
	bw.WriteString(`</tr>`)
}
