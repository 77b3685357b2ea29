package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/ads-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-insights-api/internal/domain"
	"github.com/vfg2006/ads-insights-api/pkg/utils"
)

//go:generate mockgen -source=connection.go -destination=mocks/connection.go -package=mocks

const connectionsTable = "meta_connections"

var connectionColumns = []string{
	"id", "user_id", "meta_user_id", "access_token", "token_expires_at", "created_at", "updated_at",
}

type ConnectionRepository interface {
	// GetByOwnerID retorna a conexão atualizada mais recentemente do dono, ou nil
	GetByOwnerID(ctx context.Context, ownerID string) (*domain.MetaConnection, error)
	// Upsert insere ou atualiza a conexão por (user_id, meta_user_id)
	Upsert(ctx context.Context, connection *domain.MetaConnection) (*domain.MetaConnection, error)
	ListConnections(ctx context.Context) ([]*domain.MetaConnection, error)
}

// TokenSealer protege o access token gravado no banco
type TokenSealer interface {
	Seal(plaintext string) (string, error)
	Open(sealed string) (string, error)
}

type connectionRepository struct {
	conn   postgres.Conn
	sealer TokenSealer
}

func NewConnectionRepository(conn postgres.Conn, sealer TokenSealer) ConnectionRepository {
	return &connectionRepository{
		conn:   conn,
		sealer: sealer,
	}
}

func (r *connectionRepository) GetByOwnerID(ctx context.Context, ownerID string) (*domain.MetaConnection, error) {
	query, args, err := squirrel.
		Select(connectionColumns...).
		From(connectionsTable).
		Where(squirrel.Eq{"user_id": ownerID}).
		OrderBy("updated_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	connection, err := r.deserializeConnection(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDatabaseError(err)
	}

	return connection, nil
}

func (r *connectionRepository) Upsert(ctx context.Context, connection *domain.MetaConnection) (*domain.MetaConnection, error) {
	if connection.UserID == "" || connection.MetaUserID == "" {
		return nil, errors.New("user_id and meta_user_id are required")
	}

	sealedToken, err := r.sealer.Seal(connection.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to seal access token: %w", err)
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate id: %w", err)
	}

	now := time.Now().UTC()

	// Em conflito mantém o id e o created_at originais
	query, args, err := squirrel.
		Insert(connectionsTable).
		Columns(connectionColumns...).
		Values(id, connection.UserID, connection.MetaUserID, sealedToken, connection.TokenExpiresAt, now, now).
		Suffix(`
			ON CONFLICT (user_id, meta_user_id) DO UPDATE SET
				access_token = EXCLUDED.access_token,
				token_expires_at = EXCLUDED.token_expires_at,
				updated_at = EXCLUDED.updated_at
			RETURNING id, created_at
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	saved := *connection
	saved.UpdatedAt = now

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&saved.ID, &saved.CreatedAt); err != nil {
		return nil, wrapDatabaseError(err)
	}

	return &saved, nil
}

func (r *connectionRepository) ListConnections(ctx context.Context) ([]*domain.MetaConnection, error) {
	query, args, err := squirrel.
		Select(connectionColumns...).
		From(connectionsTable).
		OrderBy("updated_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDatabaseError(err)
	}
	defer rows.Close()

	connections := make([]*domain.MetaConnection, 0)
	for rows.Next() {
		connection, err := r.deserializeConnection(rows)
		if err != nil {
			return nil, err
		}
		connections = append(connections, connection)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return connections, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *connectionRepository) deserializeConnection(row scanner) (*domain.MetaConnection, error) {
	connection := &domain.MetaConnection{}

	var sealedToken string
	var expiresAt sql.NullTime

	if err := row.Scan(
		&connection.ID,
		&connection.UserID,
		&connection.MetaUserID,
		&sealedToken,
		&expiresAt,
		&connection.CreatedAt,
		&connection.UpdatedAt,
	); err != nil {
		return nil, err
	}

	token, err := r.sealer.Open(sealedToken)
	if err != nil {
		return nil, fmt.Errorf("failed to open access token of connection %s: %w", connection.ID, err)
	}
	connection.AccessToken = token

	if expiresAt.Valid {
		connection.TokenExpiresAt = &expiresAt.Time
	}

	return connection, nil
}

func wrapDatabaseError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
	}
	return fmt.Errorf("failed to execute query: %w", err)
}
