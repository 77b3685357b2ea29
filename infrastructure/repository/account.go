package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-insights-api/internal/domain"
	"github.com/vfg2006/ads-insights-api/pkg/utils"
)

//go:generate mockgen -source=account.go -destination=mocks/account.go -package=mocks

const accountsCacheTable = "ad_accounts_cache"

var accountCacheColumns = []string{
	"id", "connection_id", "meta_ad_account_id", "name", "currency", "is_active", "created_at", "updated_at",
}

type AccountCacheRepository interface {
	// ReplaceActiveAccounts desativa todas as contas da conexão e reativa as informadas, numa única transação
	ReplaceActiveAccounts(ctx context.Context, connectionID string, accounts []domain.MetaAdAccount) ([]*domain.CachedAdAccount, error)
	GetActiveAccount(ctx context.Context, connectionID, metaAdAccountID string) (*domain.CachedAdAccount, error)
	ListActiveAccounts(ctx context.Context, connectionID string) ([]*domain.CachedAdAccount, error)
}

type accountCacheRepository struct {
	conn postgres.Conn
}

func NewAccountCacheRepository(conn postgres.Conn) AccountCacheRepository {
	return &accountCacheRepository{
		conn: conn,
	}
}

func (r *accountCacheRepository) ReplaceActiveAccounts(
	ctx context.Context,
	connectionID string,
	accounts []domain.MetaAdAccount,
) ([]*domain.CachedAdAccount, error) {
	now := time.Now().UTC()
	cached := make([]*domain.CachedAdAccount, 0, len(accounts))

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := r.deactivateAll(ctx, tx, connectionID, now); err != nil {
			return err
		}

		if len(accounts) == 0 {
			return nil
		}

		rows, err := r.upsertActive(ctx, tx, connectionID, accounts, now)
		if err != nil {
			return err
		}

		cached = append(cached, rows...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return cached, nil
}

func (r *accountCacheRepository) deactivateAll(ctx context.Context, q postgres.Queryer, connectionID string, now time.Time) error {
	query, args, err := squirrel.
		Update(accountsCacheTable).
		Set("is_active", false).
		Set("updated_at", now).
		Where(squirrel.Eq{"connection_id": connectionID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return wrapDatabaseError(err)
	}

	return nil
}

func (r *accountCacheRepository) upsertActive(
	ctx context.Context,
	q postgres.Queryer,
	connectionID string,
	accounts []domain.MetaAdAccount,
	now time.Time,
) ([]*domain.CachedAdAccount, error) {
	builder := squirrel.
		Insert(accountsCacheTable).
		Columns(accountCacheColumns...).
		PlaceholderFormat(squirrel.Dollar)

	// O mesmo id duas vezes no lote quebra o ON CONFLICT do Postgres
	seen := make(map[string]struct{}, len(accounts))
	for _, account := range accounts {
		if _, ok := seen[account.ID]; ok {
			logrus.WithField("meta_ad_account_id", account.ID).Warn("Conta duplicada na listagem do Meta, ignorando")
			continue
		}
		seen[account.ID] = struct{}{}

		id, err := utils.GenerateID()
		if err != nil {
			return nil, fmt.Errorf("failed to generate id: %w", err)
		}

		currency := account.Currency
		if currency == "" {
			currency = domain.DefaultCurrency
		}

		builder = builder.Values(id, connectionID, account.ID, account.Name, currency, true, now, now)
	}

	query, args, err := builder.
		Suffix(`
			ON CONFLICT (connection_id, meta_ad_account_id) DO UPDATE SET
				name = EXCLUDED.name,
				currency = EXCLUDED.currency,
				is_active = true,
				updated_at = EXCLUDED.updated_at
			RETURNING ` + strings.Join(accountCacheColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDatabaseError(err)
	}
	defer rows.Close()

	cached := make([]*domain.CachedAdAccount, 0, len(seen))
	for rows.Next() {
		account, err := deserializeCachedAccount(rows)
		if err != nil {
			return nil, err
		}
		cached = append(cached, account)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDatabaseError(err)
	}

	return cached, nil
}

func (r *accountCacheRepository) GetActiveAccount(ctx context.Context, connectionID, metaAdAccountID string) (*domain.CachedAdAccount, error) {
	query, args, err := squirrel.
		Select(accountCacheColumns...).
		From(accountsCacheTable).
		Where(squirrel.Eq{
			"connection_id":      connectionID,
			"meta_ad_account_id": metaAdAccountID,
			"is_active":          true,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	account, err := deserializeCachedAccount(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDatabaseError(err)
	}

	return account, nil
}

func (r *accountCacheRepository) ListActiveAccounts(ctx context.Context, connectionID string) ([]*domain.CachedAdAccount, error) {
	query, args, err := squirrel.
		Select(accountCacheColumns...).
		From(accountsCacheTable).
		Where(squirrel.Eq{"connection_id": connectionID, "is_active": true}).
		OrderBy("name ASC").
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

	accounts := make([]*domain.CachedAdAccount, 0)
	for rows.Next() {
		account, err := deserializeCachedAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return accounts, nil
}

func deserializeCachedAccount(row scanner) (*domain.CachedAdAccount, error) {
	account := &domain.CachedAdAccount{}

	if err := row.Scan(
		&account.ID,
		&account.ConnectionID,
		&account.MetaAdAccountID,
		&account.Name,
		&account.Currency,
		&account.IsActive,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return account, nil
}
