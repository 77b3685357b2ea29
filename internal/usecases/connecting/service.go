package connecting

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

type Connector interface {
	AuthorizationURL(state string) string
	ConnectMeta(ctx context.Context, ownerID, code, state string) (*domain.MetaUser, error)
}

type Service struct {
	connectionRepository repository.ConnectionRepository
	metaService          meta.Integrator
}

func NewService(connectionRepository repository.ConnectionRepository, metaService meta.Integrator) Connector {
	return &Service{
		connectionRepository: connectionRepository,
		metaService:          metaService,
	}
}

func (s *Service) AuthorizationURL(state string) string {
	return s.metaService.AuthorizationURL(state)
}

// ConnectMeta troca o código de autorização, identifica o usuário no Meta e grava a conexão do dono.
// Nada é gravado se a troca ou a identificação falharem.
func (s *Service) ConnectMeta(ctx context.Context, ownerID, code, state string) (*domain.MetaUser, error) {
	if ownerID == "" {
		return nil, domain.NewIntegrationError(domain.ErrUnauthorized, apiErrors.ErrInvalidToken, "Sessão sem identificação do usuário")
	}

	if code == "" {
		return nil, domain.NewIntegrationError(domain.ErrMissingRequiredParameter, apiErrors.ErrMissingRequiredData, "Código de autorização é obrigatório")
	}

	logger := logrus.WithFields(logrus.Fields{
		"user_id": ownerID,
		"state":   state,
	})

	token, err := s.metaService.ExchangeCode(ctx, code)
	if err != nil {
		logger.WithError(err).Error("Erro ao trocar código de autorização do Meta")

		if errors.Is(err, domain.ErrMalformedTokenResponse) {
			return nil, domain.NewIntegrationError(domain.ErrMalformedTokenResponse, apiErrors.ErrMetaMalformedToken, "Resposta do Meta sem token de acesso")
		}
		return nil, domain.NewIntegrationError(domain.ErrExternalAuthFailure, apiErrors.ErrMetaAuthFailure, "Falha ao trocar código de autorização com o Meta")
	}

	metaUser, err := s.metaService.GetMe(ctx, token.AccessToken)
	if err != nil {
		logger.WithError(err).Error("Erro ao obter usuário do Meta")
		return nil, domain.NewIntegrationError(domain.ErrExternalIdentityLookupFailure, apiErrors.ErrMetaIdentityFailure, "Falha ao obter dados do usuário no Meta")
	}

	connection, err := s.connectionRepository.Upsert(ctx, &domain.MetaConnection{
		UserID:         ownerID,
		MetaUserID:     metaUser.ID,
		AccessToken:    token.AccessToken,
		TokenExpiresAt: token.ExpiresAt,
	})
	if err != nil {
		logger.WithError(err).Error("Erro ao salvar conexão com o Meta")
		return nil, domain.NewIntegrationError(domain.ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao salvar conexão com o Meta")
	}

	logger.WithFields(logrus.Fields{
		"connection_id": connection.ID,
		"meta_user_id":  metaUser.ID,
	}).Info("Conexão com o Meta salva com sucesso")

	return metaUser, nil
}
