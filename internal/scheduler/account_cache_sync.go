package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-insights-api/infrastructure/repository"
	"github.com/vfg2006/ads-insights-api/internal/config"
	"github.com/vfg2006/ads-insights-api/internal/domain"
	"github.com/vfg2006/ads-insights-api/internal/usecases/account"
)

// AccountCacheSyncConfig representa a configuração do agendador do cache de contas
type AccountCacheSyncConfig struct {
	CronSchedule        string
	RequestDelaySeconds int
	SyncEnabled         bool
}

// SyncResult resume uma rodada de atualização do cache
type SyncResult struct {
	Connections int `json:"connections"`
	Refreshed   int `json:"refreshed"`
	Expired     int `json:"expired"`
	Failed      int `json:"failed"`
	Accounts    int `json:"accounts"`
}

// AccountCacheSyncService atualiza periodicamente o cache de contas de todas as conexões
type AccountCacheSyncService struct {
	scheduler           *gocron.Scheduler
	config              AccountCacheSyncConfig
	connectionRepo      repository.ConnectionRepository
	accountService      account.AccountService
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResult          SyncResult
}

func NewAccountCacheSyncService(
	connectionRepo repository.ConnectionRepository,
	accountService account.AccountService,
	appConfig *config.Config,
) *AccountCacheSyncService {
	syncConfig := AccountCacheSyncConfig{
		CronSchedule:        appConfig.AccountCacheSync.CronSchedule,
		RequestDelaySeconds: appConfig.AccountCacheSync.RequestDelaySeconds,
		SyncEnabled:         appConfig.AccountCacheSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("Configuração do agendador do cache de contas carregada")

	return &AccountCacheSyncService{
		scheduler:      gocron.NewScheduler(time.Local),
		config:         syncConfig,
		connectionRepo: connectionRepo,
		accountService: accountService,
	}
}

// Start agenda a atualização do cache. Não faz nada quando desabilitado por configuração.
func (s *AccountCacheSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização do cache de contas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador do cache de contas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.SyncAll(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização do cache de contas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador do cache de contas")
		s.scheduler.Stop()
	}()

	return nil
}

// SyncAll atualiza o cache de cada conexão, uma por vez.
// Retorna false quando já existe uma rodada em andamento.
func (s *AccountCacheSyncService) SyncAll(ctx context.Context) (SyncResult, bool) {
	if !s.begin() {
		logrus.Info("Sincronização do cache de contas já em andamento, ignorando")
		return SyncResult{}, false
	}

	result := s.syncConnections(ctx)
	s.finish(result)

	return result, true
}

// begin marca a rodada como em andamento; false quando outra já está rodando
func (s *AccountCacheSyncService) begin() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()

	return true
}

func (s *AccountCacheSyncService) finish(result SyncResult) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastResult = result
}

func (s *AccountCacheSyncService) syncConnections(ctx context.Context) SyncResult {
	result := SyncResult{}
	startTime := time.Now()

	connections, err := s.connectionRepo.ListConnections(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar conexões para sincronização do cache de contas")
		return result
	}

	result.Connections = len(connections)
	if len(connections) == 0 {
		logrus.Info("Nenhuma conexão encontrada para sincronização do cache de contas")
		return result
	}

	for i, connection := range connections {
		if i > 0 && !s.wait(ctx) {
			logrus.Info("Sincronização do cache de contas interrompida")
			break
		}

		accounts, err := s.accountService.RefreshConnection(ctx, connection)
		if err != nil {
			entry := logrus.WithFields(logrus.Fields{
				"connection_id": connection.ID,
				"user_id":       connection.UserID,
			}).WithError(err)

			if errors.Is(err, domain.ErrCredentialExpired) {
				result.Expired++
				entry.Warn("Token do Meta expirado, conexão precisa ser reautorizada")
				continue
			}

			result.Failed++
			entry.Error("Erro ao atualizar cache de contas da conexão")
			continue
		}

		result.Refreshed++
		result.Accounts += len(accounts)
	}

	logrus.WithFields(logrus.Fields{
		"duration":    time.Since(startTime).String(),
		"connections": result.Connections,
		"refreshed":   result.Refreshed,
		"expired":     result.Expired,
		"failed":      result.Failed,
		"accounts":    result.Accounts,
	}).Info("Sincronização do cache de contas concluída")

	return result
}

// wait respeita o intervalo entre conexões; false quando o contexto foi cancelado
func (s *AccountCacheSyncService) wait(ctx context.Context) bool {
	if s.config.RequestDelaySeconds <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(time.Duration(s.config.RequestDelaySeconds) * time.Second)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// TriggerManualSync dispara uma rodada em background.
// A rodada já está marcada como em andamento quando retorna true.
func (s *AccountCacheSyncService) TriggerManualSync() bool {
	if !s.begin() {
		logrus.Info("Sincronização do cache de contas já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando sincronização manual do cache de contas")
	go func() {
		s.finish(s.syncConnections(context.Background()))
	}()

	return true
}

// GetStatus retorna o status atual do agendador
func (s *AccountCacheSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_request_delay_s":   s.config.RequestDelaySeconds,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_result":       s.lastResult,
	}
}
