package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnection_RunInTransaction(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name        string
		setup       func(mock sqlmock.Sqlmock)
		fn          func(tx *sql.Tx) error
		expectedErr error
		expectPanic bool
	}{
		{
			name: "Commit quando a função termina sem erro",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE ad_accounts_cache").WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectCommit()
			},
			fn: func(tx *sql.Tx) error {
				_, err := tx.Exec("UPDATE ad_accounts_cache SET is_active = false")
				return err
			},
		},
		{
			name: "Rollback quando a função retorna erro",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			fn:          func(tx *sql.Tx) error { return errBoom },
			expectedErr: errBoom,
		},
		{
			name: "Rollback e panic propagado",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			fn:          func(tx *sql.Tx) error { panic("boom") },
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.setup(mock)
			conn := &Connection{DB: db}

			if tt.expectPanic {
				assert.Panics(t, func() {
					_ = conn.RunInTransaction(context.Background(), tt.fn)
				})
			} else {
				err = conn.RunInTransaction(context.Background(), tt.fn)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				} else {
					assert.NoError(t, err)
				}
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
