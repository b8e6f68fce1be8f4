package db

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeNoRows(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		noRows bool
	}{
		{"nil", nil, false},
		{"sentinel", ErrNoRows, true},
		{"database/sql", sql.ErrNoRows, true},
		{"pgx", pgx.ErrNoRows, true},
		{"wrapped pgx", fmt.Errorf("getting lookup: %w", pgx.ErrNoRows), true},
		{"other", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeNoRows(tt.err)
			assert.Equal(t, tt.noRows, errors.Is(got, ErrNoRows))
			assert.Equal(t, tt.noRows, IsNoRows(tt.err))
			if tt.err == nil {
				assert.NoError(t, got)
			} else {
				assert.ErrorIs(t, got, tt.err)
			}
		})
	}
}
