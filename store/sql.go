// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/judgeboard/db"
	"github.com/danielhkuo/judgeboard/models"
)

// SQLStore implements Store on top of database/sql for sqlite and postgres.
type SQLStore struct {
	db  *sql.DB
	sb  sq.StatementBuilderType
	now func() time.Time
}

var _ Store = (*SQLStore)(nil)

// NewSQLStore wraps an open, migrated connection.
func NewSQLStore(conn *sql.DB, dbType string) *SQLStore {
	var ph sq.PlaceholderFormat = sq.Question
	if dbType == db.TypePostgres {
		ph = sq.Dollar
	}
	return &SQLStore{
		db:  conn,
		sb:  sq.StatementBuilder.PlaceholderFormat(ph),
		now: time.Now,
	}
}

var scoreColumns = []string{"id", "participant_id", "judge", "section", "scores", "total", "remark", "created_at"}

// prepare fills in the id and timestamp and encodes the criterion scores.
func (s *SQLStore) prepare(rec models.ScoreRecord) (models.ScoreRecord, []byte, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	// postgres keeps microseconds
	rec.CreatedAt = rec.CreatedAt.UTC().Truncate(time.Microsecond)
	if rec.Scores == nil {
		rec.Scores = map[string]float64{}
	}

	scores, err := json.Marshal(rec.Scores)
	if err != nil {
		return rec, nil, fmt.Errorf("encode scores: %w", err)
	}
	return rec, scores, nil
}

func (s *SQLStore) InsertScore(ctx context.Context, rec models.ScoreRecord) (models.ScoreRecord, error) {
	rec, scores, err := s.prepare(rec)
	if err != nil {
		return models.ScoreRecord{}, err
	}

	_, err = s.sb.Insert("scores").
		Columns(scoreColumns...).
		Values(rec.ID, rec.ParticipantID, rec.Judge, string(rec.Section), string(scores), rec.Total, rec.Remark, rec.CreatedAt).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ScoreRecord{}, ErrDuplicate
		}
		return models.ScoreRecord{}, fmt.Errorf("insert score: %w", err)
	}
	return rec, nil
}

func (s *SQLStore) ReplaceScore(ctx context.Context, rec models.ScoreRecord) (models.ScoreRecord, error) {
	rec, scores, err := s.prepare(rec)
	if err != nil {
		return models.ScoreRecord{}, err
	}

	// The existing row keeps its id; everything else is the new sheet.
	query, args, err := s.sb.Insert("scores").
		Columns(scoreColumns...).
		Values(rec.ID, rec.ParticipantID, rec.Judge, string(rec.Section), string(scores), rec.Total, rec.Remark, rec.CreatedAt).
		Suffix(`ON CONFLICT (participant_id, judge, section) DO UPDATE
			SET scores = EXCLUDED.scores,
			    total = EXCLUDED.total,
			    remark = EXCLUDED.remark,
			    created_at = EXCLUDED.created_at
			RETURNING id`).
		ToSql()
	if err != nil {
		return models.ScoreRecord{}, fmt.Errorf("build upsert: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&rec.ID); err != nil {
		return models.ScoreRecord{}, fmt.Errorf("upsert score: %w", err)
	}
	return rec, nil
}

func (s *SQLStore) ListScores(ctx context.Context) ([]models.ScoreRecord, error) {
	rows, err := s.sb.Select(scoreColumns...).
		From("scores").
		OrderBy("created_at DESC", "id DESC").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	records := make([]models.ScoreRecord, 0)
	for rows.Next() {
		var (
			rec     models.ScoreRecord
			section string
			scores  []byte
		)
		if err := rows.Scan(&rec.ID, &rec.ParticipantID, &rec.Judge, &section, &scores, &rec.Total, &rec.Remark, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		rec.Section = models.Section(section)
		if err := json.Unmarshal(scores, &rec.Scores); err != nil {
			return nil, fmt.Errorf("decode scores of %s: %w", rec.ID, err)
		}
		rec.CreatedAt = rec.CreatedAt.UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return records, nil
}

func (s *SQLStore) DeleteScores(ctx context.Context, f ScoreFilter) (int64, error) {
	if f.Empty() {
		return 0, ErrEmptyFilter
	}

	where := sq.Eq{}
	if f.ParticipantID != "" {
		where["participant_id"] = f.ParticipantID
	}
	if f.Judge != "" {
		where["judge"] = f.Judge
	}
	if f.Section != "" {
		where["section"] = string(f.Section)
	}

	res, err := s.sb.Delete("scores").Where(where).RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete scores: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLStore) DeleteAllScores(ctx context.Context) (int64, error) {
	res, err := s.sb.Delete("scores").RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete all scores: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLStore) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	rows, err := s.sb.Select("id", "name", "title").
		From("participants").
		OrderBy("id").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query participants: %w", err)
	}
	defer rows.Close()

	participants := make([]models.Participant, 0)
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.Name, &p.Title); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return participants, nil
}

func (s *SQLStore) getParticipant(ctx context.Context, id string) (models.Participant, error) {
	var p models.Participant
	err := s.sb.Select("id", "name", "title").
		From("participants").
		Where(sq.Eq{"id": id}).
		RunWith(s.db).
		QueryRowContext(ctx).
		Scan(&p.ID, &p.Name, &p.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Participant{}, ErrNotFound
	}
	if err != nil {
		return models.Participant{}, fmt.Errorf("get participant: %w", err)
	}
	return p, nil
}

func (s *SQLStore) InsertParticipant(ctx context.Context, p models.Participant) error {
	_, err := s.sb.Insert("participants").
		Columns("id", "name", "title").
		Values(p.ID, p.Name, p.Title).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert participant: %w", err)
	}
	return nil
}

func (s *SQLStore) UpdateParticipant(ctx context.Context, id string, u ParticipantUpdate) (models.Participant, error) {
	if u.Name == nil && u.Title == nil {
		return s.getParticipant(ctx, id)
	}

	q := s.sb.Update("participants").Where(sq.Eq{"id": id})
	if u.Name != nil {
		q = q.Set("name", *u.Name)
	}
	if u.Title != nil {
		q = q.Set("title", *u.Title)
	}

	res, err := q.RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return models.Participant{}, fmt.Errorf("update participant: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Participant{}, fmt.Errorf("update participant: %w", err)
	}
	if n == 0 {
		return models.Participant{}, ErrNotFound
	}
	return s.getParticipant(ctx, id)
}

func (s *SQLStore) DeleteParticipant(ctx context.Context, id string) error {
	res, err := s.sb.Delete("participants").Where(sq.Eq{"id": id}).RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) SeedParticipants(ctx context.Context, ps []models.Participant) (int64, error) {
	if len(ps) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	var inserted int64
	for _, p := range ps {
		res, err := s.sb.Insert("participants").
			Columns("id", "name", "title").
			Values(p.ID, p.Name, p.Title).
			Suffix("ON CONFLICT (id) DO NOTHING").
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return 0, fmt.Errorf("seed participant %s: %w", p.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("seed participant %s: %w", p.ID, err)
		}
		inserted += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return inserted, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
