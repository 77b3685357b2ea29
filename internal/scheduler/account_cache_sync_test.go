package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ads-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ads-insights-api/internal/domain"
	accountmocks "github.com/vfg2006/ads-insights-api/internal/usecases/account/mocks"
	"github.com/vfg2006/ads-insights-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func TestAccountCacheSyncService_SyncAll(t *testing.T) {
	connections := []*domain.MetaConnection{
		{ID: "conn-1", UserID: "owner-1", AccessToken: "token-1"},
		{ID: "conn-2", UserID: "owner-2", AccessToken: "token-2"},
		{ID: "conn-3", UserID: "owner-3", AccessToken: "token-3"},
	}

	tests := []struct {
		name     string
		setup    func(connRepo *mocks.MockConnectionRepository, accountService *accountmocks.MockAccountService)
		expected SyncResult
	}{
		{
			name: "Sem conexões cadastradas",
			setup: func(connRepo *mocks.MockConnectionRepository, accountService *accountmocks.MockAccountService) {
				connRepo.EXPECT().ListConnections(gomock.Any()).Return([]*domain.MetaConnection{}, nil)
			},
			expected: SyncResult{},
		},
		{
			name: "Erro ao listar conexões",
			setup: func(connRepo *mocks.MockConnectionRepository, accountService *accountmocks.MockAccountService) {
				connRepo.EXPECT().ListConnections(gomock.Any()).Return(nil, errors.New("connection refused"))
			},
			expected: SyncResult{},
		},
		{
			name: "Uma conexão expirada não interrompe as demais",
			setup: func(connRepo *mocks.MockConnectionRepository, accountService *accountmocks.MockAccountService) {
				connRepo.EXPECT().ListConnections(gomock.Any()).Return(connections, nil)

				gomock.InOrder(
					accountService.EXPECT().
						RefreshConnection(gomock.Any(), connections[0]).
						Return([]*domain.CachedAdAccount{{ID: "a"}, {ID: "b"}}, nil),
					accountService.EXPECT().
						RefreshConnection(gomock.Any(), connections[1]).
						Return(nil, domain.NewIntegrationError(domain.ErrCredentialExpired, apiErrors.ErrCredentialExpired, "")),
					accountService.EXPECT().
						RefreshConnection(gomock.Any(), connections[2]).
						Return(nil, domain.NewIntegrationError(domain.ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "")),
				)
			},
			expected: SyncResult{Connections: 3, Refreshed: 1, Expired: 1, Failed: 1, Accounts: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			connRepo := mocks.NewMockConnectionRepository(ctrl)
			accountService := accountmocks.NewMockAccountService(ctrl)
			tt.setup(connRepo, accountService)

			service := &AccountCacheSyncService{
				connectionRepo: connRepo,
				accountService: accountService,
			}

			result, ran := service.SyncAll(context.Background())

			assert.True(t, ran)
			assert.Equal(t, tt.expected, result)

			status := service.GetStatus()
			assert.Equal(t, false, status["sync_running"])
			assert.Equal(t, tt.expected, status["last_sync_result"])
		})
	}
}

func TestAccountCacheSyncService_SyncAllIgnoresConcurrentRun(t *testing.T) {
	service := &AccountCacheSyncService{syncRunning: true}

	result, ran := service.SyncAll(context.Background())

	assert.False(t, ran)
	assert.Equal(t, SyncResult{}, result)
	assert.False(t, service.TriggerManualSync())
}

func TestAccountCacheSyncService_TriggerManualSyncMarksRunningBeforeReturning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	connRepo := mocks.NewMockConnectionRepository(ctrl)
	accountService := accountmocks.NewMockAccountService(ctrl)

	release := make(chan struct{})
	connRepo.EXPECT().
		ListConnections(gomock.Any()).
		DoAndReturn(func(context.Context) ([]*domain.MetaConnection, error) {
			<-release
			return []*domain.MetaConnection{}, nil
		}).
		Times(2)

	service := &AccountCacheSyncService{
		connectionRepo: connRepo,
		accountService: accountService,
	}

	assert.True(t, service.TriggerManualSync())
	assert.Equal(t, true, service.GetStatus()["sync_running"])
	assert.False(t, service.TriggerManualSync())

	close(release)

	assert.Eventually(t, func() bool {
		return service.GetStatus()["sync_running"] == false
	}, time.Second, 10*time.Millisecond)
	assert.True(t, service.TriggerManualSync())
	assert.Eventually(t, func() bool {
		return service.GetStatus()["sync_running"] == false
	}, time.Second, 10*time.Millisecond)
}

func TestAccountCacheSyncService_StopsWhenContextIsCanceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	connRepo := mocks.NewMockConnectionRepository(ctrl)
	accountService := accountmocks.NewMockAccountService(ctrl)

	ctx, cancel := context.WithCancel(context.Background())

	connRepo.EXPECT().ListConnections(gomock.Any()).Return([]*domain.MetaConnection{
		{ID: "conn-1", AccessToken: "token-1"},
		{ID: "conn-2", AccessToken: "token-2"},
	}, nil)
	accountService.EXPECT().
		RefreshConnection(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *domain.MetaConnection) ([]*domain.CachedAdAccount, error) {
			cancel()
			return []*domain.CachedAdAccount{}, nil
		}).
		Times(1)

	service := &AccountCacheSyncService{
		config:         AccountCacheSyncConfig{RequestDelaySeconds: 60},
		connectionRepo: connRepo,
		accountService: accountService,
	}

	result, ran := service.SyncAll(ctx)

	assert.True(t, ran)
	assert.Equal(t, 2, result.Connections)
	assert.Equal(t, 1, result.Refreshed)
}

func TestAccountCacheSyncService_StartDisabled(t *testing.T) {
	service := &AccountCacheSyncService{config: AccountCacheSyncConfig{SyncEnabled: false}}

	assert.NoError(t, service.Start(context.Background()))
}
