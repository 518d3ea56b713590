// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/judgeboard/db"
)

func TestNewSQLStore_Placeholders(t *testing.T) {
	tests := []struct {
		dbType string
		want   string
	}{
		{db.TypeSQLite, "SELECT id FROM scores WHERE judge = ? AND section = ?"},
		{db.TypePostgres, "SELECT id FROM scores WHERE judge = $1 AND section = $2"},
	}

	for _, tt := range tests {
		t.Run(tt.dbType, func(t *testing.T) {
			s := NewSQLStore(nil, tt.dbType)
			query, args, err := s.sb.Select("id").From("scores").
				Where(sq.Eq{"judge": "Judge A"}).
				Where(sq.Eq{"section": "Best Paper"}).
				ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.want, query)
			assert.Equal(t, []any{"Judge A", "Best Paper"}, args)
		})
	}
}
