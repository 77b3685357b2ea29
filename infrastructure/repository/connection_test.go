package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-insights-api/internal/domain"
)

type prefixSealer struct{}

func (prefixSealer) Seal(plaintext string) (string, error) { return "sealed:" + plaintext, nil }

func (prefixSealer) Open(sealed string) (string, error) {
	if len(sealed) < 7 || sealed[:7] != "sealed:" {
		return "", errors.New("not sealed")
	}
	return sealed[7:], nil
}

func newMockConnection(t *testing.T) (*postgres.Connection, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &postgres.Connection{DB: db}, mock
}

func TestConnectionRepository_Upsert(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewConnectionRepository(conn, prefixSealer{})

	createdAt := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO meta_connections .* ON CONFLICT \(user_id, meta_user_id\) DO UPDATE SET access_token = EXCLUDED.access_token, token_expires_at = EXCLUDED.token_expires_at, updated_at = EXCLUDED.updated_at RETURNING id, created_at`).
		WithArgs(sqlmock.AnyArg(), "owner-1", "meta-1", "sealed:token-2", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("conn01", createdAt))

	saved, err := repo.Upsert(context.Background(), &domain.MetaConnection{
		UserID:      "owner-1",
		MetaUserID:  "meta-1",
		AccessToken: "token-2",
	})

	require.NoError(t, err)
	assert.Equal(t, "conn01", saved.ID)
	assert.Equal(t, createdAt, saved.CreatedAt)
	assert.Equal(t, "token-2", saved.AccessToken)
	assert.False(t, saved.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectionRepository_Upsert_RequiresIdentity(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewConnectionRepository(conn, prefixSealer{})

	_, err := repo.Upsert(context.Background(), &domain.MetaConnection{UserID: "owner-1", AccessToken: "token"})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectionRepository_GetByOwnerID(t *testing.T) {
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	expiresAt := now.Add(60 * 24 * time.Hour)

	tests := []struct {
		name     string
		setup    func(mock sqlmock.Sqlmock)
		validate func(t *testing.T, connection *domain.MetaConnection, err error)
	}{
		{
			name: "Retorna a conexão mais recente com o token aberto",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM meta_connections WHERE user_id = \$1 ORDER BY updated_at DESC LIMIT 1`).
					WithArgs("owner-1").
					WillReturnRows(sqlmock.NewRows(connectionColumns).
						AddRow("conn01", "owner-1", "meta-1", "sealed:token", expiresAt, now, now))
			},
			validate: func(t *testing.T, connection *domain.MetaConnection, err error) {
				require.NoError(t, err)
				require.NotNil(t, connection)
				assert.Equal(t, "conn01", connection.ID)
				assert.Equal(t, "token", connection.AccessToken)
				require.NotNil(t, connection.TokenExpiresAt)
				assert.Equal(t, expiresAt, *connection.TokenExpiresAt)
			},
		},
		{
			name: "Sem conexão retorna nil sem erro",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM meta_connections`).
					WithArgs("owner-1").
					WillReturnRows(sqlmock.NewRows(connectionColumns))
			},
			validate: func(t *testing.T, connection *domain.MetaConnection, err error) {
				assert.NoError(t, err)
				assert.Nil(t, connection)
			},
		},
		{
			name: "Token que não abre é erro",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM meta_connections`).
					WithArgs("owner-1").
					WillReturnRows(sqlmock.NewRows(connectionColumns).
						AddRow("conn01", "owner-1", "meta-1", "plain-token", nil, now, now))
			},
			validate: func(t *testing.T, connection *domain.MetaConnection, err error) {
				assert.Error(t, err)
				assert.Nil(t, connection)
			},
		},
		{
			name: "Erro de banco é propagado",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM meta_connections`).
					WithArgs("owner-1").
					WillReturnError(errors.New("connection reset"))
			},
			validate: func(t *testing.T, connection *domain.MetaConnection, err error) {
				assert.ErrorContains(t, err, "connection reset")
				assert.Nil(t, connection)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMockConnection(t)
			repo := NewConnectionRepository(conn, prefixSealer{})

			tt.setup(mock)

			connection, err := repo.GetByOwnerID(context.Background(), "owner-1")

			tt.validate(t, connection, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestConnectionRepository_ListConnections(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewConnectionRepository(conn, prefixSealer{})

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT .* FROM meta_connections ORDER BY updated_at DESC`).
		WillReturnRows(sqlmock.NewRows(connectionColumns).
			AddRow("conn01", "owner-1", "meta-1", "sealed:a", nil, now, now).
			AddRow("conn02", "owner-2", "meta-2", "sealed:b", nil, now, now))

	connections, err := repo.ListConnections(context.Background())

	require.NoError(t, err)
	require.Len(t, connections, 2)
	assert.Equal(t, "a", connections[0].AccessToken)
	assert.Equal(t, "owner-2", connections[1].UserID)
	assert.Nil(t, connections[1].TokenExpiresAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
