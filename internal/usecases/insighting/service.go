package insighting

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-insights-api/infrastructure/integrator/meta"
	"github.com/vfg2006/ads-insights-api/infrastructure/repository"
	"github.com/vfg2006/ads-insights-api/internal/domain"
	"github.com/vfg2006/ads-insights-api/pkg/apiErrors"
)

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

type Insighter interface {
	GetDashboardInsights(ctx context.Context, ownerID string, request *domain.InsightsRequest) (*domain.DashboardInsights, error)
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
) Insighter {
	return &Service{
		connectionRepository: connectionRepository,
		accountRepository:    accountRepository,
		metaService:          metaService,
	}
}

// GetDashboardInsights valida a consulta, confirma que a conta está no cache do dono e agrega os insights do período
func (s *Service) GetDashboardInsights(ctx context.Context, ownerID string, request *domain.InsightsRequest) (*domain.DashboardInsights, error) {
	if err := validateRequest(request); err != nil {
		return nil, err
	}

	logger := logrus.WithFields(logrus.Fields{
		"user_id":       ownerID,
		"ad_account_id": request.AdAccountID,
		"start_date":    request.StartDate,
		"end_date":      request.EndDate,
		"level":         request.InsightLevel(),
	})

	connection, err := s.connectionRepository.GetByOwnerID(ctx, ownerID)
	if err != nil {
		logger.WithError(err).Error("Erro ao buscar conexão com o Meta")
		return nil, domain.NewIntegrationError(domain.ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar conexão no banco de dados")
	}

	if connection == nil {
		return nil, domain.NewIntegrationError(domain.ErrCredentialNotFound, apiErrors.ErrCredentialNotFound, "Conta do Meta não conectada")
	}

	account, err := s.accountRepository.GetActiveAccount(ctx, connection.ID, request.AdAccountID)
	if err != nil {
		logger.WithError(err).Error("Erro ao buscar conta de anúncios em cache")
		return nil, domain.NewIntegrationError(domain.ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar conta no banco de dados")
	}

	if account == nil {
		logger.Warn("Conta de anúncios fora do cache do usuário")
		return nil, domain.NewIntegrationError(domain.ErrAdAccountNotAuthorized, apiErrors.ErrAccountForbidden, "Conta de anúncios não encontrada ou não autorizada")
	}

	records, err := s.metaService.FetchInsights(ctx, connection.AccessToken, domain.InsightQuery{
		AdAccountID: request.AdAccountID,
		StartDate:   request.StartDate,
		EndDate:     request.EndDate,
		Level:       request.InsightLevel(),
		Breakdowns:  request.Breakdown,
	})
	if err != nil {
		logger.WithError(err).Error("Erro ao buscar insights no Meta")

		if errors.Is(err, domain.ErrCredentialExpired) {
			return nil, domain.NewIntegrationError(domain.ErrCredentialExpired, apiErrors.ErrCredentialExpired, "Token do Meta expirado, reconecte a conta")
		}
		return nil, domain.NewIntegrationError(domain.ErrInsightsFetchFailure, apiErrors.ErrMetaInsightsFailure, "Falha ao buscar insights da API do Meta")
	}

	report := Aggregate(records, request.InsightLevel())

	logger.WithField("records", len(records)).Debug("Insights agregados com sucesso")

	return &domain.DashboardInsights{
		InsightsReport: report,
		Account: domain.InsightsAccount{
			ID:   account.MetaAdAccountID,
			Name: account.Name,
		},
		Period: domain.InsightsPeriod{
			StartDate: request.StartDate,
			EndDate:   request.EndDate,
		},
		TotalRecords: len(records),
	}, nil
}
