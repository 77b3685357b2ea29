package account

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-insights-api/infrastructure/integrator/meta"
	"github.com/vfg2006/ads-insights-api/infrastructure/repository"
	"github.com/vfg2006/ads-insights-api/internal/domain"
	"github.com/vfg2006/ads-insights-api/pkg/apiErrors"
	"github.com/vfg2006/ads-insights-api/pkg/metrics"
)

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

type AccountService interface {
	SyncAdAccounts(ctx context.Context, ownerID string) ([]*domain.AdAccountResponse, error)
	ListCachedAdAccounts(ctx context.Context, ownerID string) ([]*domain.AdAccountResponse, error)
	RefreshConnection(ctx context.Context, connection *domain.MetaConnection) ([]*domain.CachedAdAccount, error)
}

type Service struct {
	connectionRepository repository.ConnectionRepository
	accountRepository    repository.AccountCacheRepository
	metaService          meta.Integrator
}

func NewService(
	connectionRepository repository.ConnectionRepository,
	accountRepository repository.AccountCacheRepository,
	metaService meta.Integrator,
) AccountService {
	return &Service{
		connectionRepository: connectionRepository,
		accountRepository:    accountRepository,
		metaService:          metaService,
	}
}

// SyncAdAccounts busca as contas ativas no Meta e substitui o cache da conexão do dono
func (s *Service) SyncAdAccounts(ctx context.Context, ownerID string) ([]*domain.AdAccountResponse, error) {
	connection, err := s.getConnection(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	cached, err := s.RefreshConnection(ctx, connection)
	if err != nil {
		return nil, err
	}

	return toResponse(cached), nil
}

// ListCachedAdAccounts lista o cache sem consultar o Meta
func (s *Service) ListCachedAdAccounts(ctx context.Context, ownerID string) ([]*domain.AdAccountResponse, error) {
	connection, err := s.getConnection(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	cached, err := s.accountRepository.ListActiveAccounts(ctx, connection.ID)
	if err != nil {
		logrus.WithError(err).WithField("connection_id", connection.ID).Error("Erro ao listar contas em cache")
		return nil, domain.NewIntegrationError(domain.ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar contas no banco de dados")
	}

	return toResponse(cached), nil
}

// RefreshConnection atualiza o cache de uma conexão. Contas que deixaram de ser ativas ficam com is_active=false.
func (s *Service) RefreshConnection(ctx context.Context, connection *domain.MetaConnection) ([]*domain.CachedAdAccount, error) {
	logger := logrus.WithFields(logrus.Fields{
		"connection_id": connection.ID,
		"user_id":       connection.UserID,
	})

	accounts, err := s.metaService.ListActiveAdAccounts(ctx, connection.AccessToken)
	if err != nil {
		metrics.AccountCacheSyncs.WithLabelValues("meta_error").Inc()
		logger.WithError(err).Error("Erro ao obter contas de anúncios do Meta")

		if errors.Is(err, domain.ErrCredentialExpired) {
			return nil, domain.NewIntegrationError(domain.ErrCredentialExpired, apiErrors.ErrCredentialExpired, "Token do Meta expirado, reconecte a conta")
		}
		return nil, domain.NewIntegrationError(domain.ErrAccountListFailure, apiErrors.ErrMetaAccountsFailure, "Falha ao obter contas da API do Meta")
	}

	cached, err := s.accountRepository.ReplaceActiveAccounts(ctx, connection.ID, accounts)
	if err != nil {
		metrics.AccountCacheSyncs.WithLabelValues("database_error").Inc()
		logger.WithError(err).Error("Erro ao salvar contas de anúncios em cache")
		return nil, domain.NewIntegrationError(domain.ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao salvar contas no banco de dados")
	}

	metrics.AccountCacheSyncs.WithLabelValues("success").Inc()
	logger.Infof("%d contas ativas sincronizadas", len(cached))

	return cached, nil
}

func (s *Service) getConnection(ctx context.Context, ownerID string) (*domain.MetaConnection, error) {
	connection, err := s.connectionRepository.GetByOwnerID(ctx, ownerID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", ownerID).Error("Erro ao buscar conexão com o Meta")
		return nil, domain.NewIntegrationError(domain.ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar conexão no banco de dados")
	}

	if connection == nil {
		return nil, domain.NewIntegrationError(domain.ErrCredentialNotFound, apiErrors.ErrCredentialNotFound, "Conta do Meta não conectada")
	}

	return connection, nil
}

func toResponse(accounts []*domain.CachedAdAccount) []*domain.AdAccountResponse {
	response := make([]*domain.AdAccountResponse, 0, len(accounts))
	for _, account := range accounts {
		response = append(response, &domain.AdAccountResponse{
			ID:              account.MetaAdAccountID,
			Name:            account.Name,
			Currency:        account.Currency,
			MetaAdAccountID: account.MetaAdAccountID,
		})
	}

	return response
}
