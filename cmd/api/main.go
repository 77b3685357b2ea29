package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-insights-api/infrastructure/integrator/meta"
	"github.com/vfg2006/ads-insights-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-insights-api/infrastructure/repository"
	"github.com/vfg2006/ads-insights-api/internal/api"
	"github.com/vfg2006/ads-insights-api/internal/config"
	"github.com/vfg2006/ads-insights-api/internal/scheduler"
	"github.com/vfg2006/ads-insights-api/internal/usecases/account"
	"github.com/vfg2006/ads-insights-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-insights-api/internal/usecases/connecting"
	"github.com/vfg2006/ads-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/ads-insights-api/pkg/log"
	"github.com/vfg2006/ads-insights-api/pkg/tokencipher"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	if err := cfg.Validate(); err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	cipher, err := tokencipher.New(cfg.SecretKey)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar a cifra dos tokens")
	}

	connectionRepo := repository.NewConnectionRepository(pgConn, cipher)
	accountCacheRepo := repository.NewAccountCacheRepository(pgConn)

	metaClient := metaclient.NewClient(cfg)
	metaIntegrator := meta.New(cfg, metaClient)

	authenticator := authenticating.NewService(cfg)
	connector := connecting.NewService(connectionRepo, metaIntegrator)
	accountService := account.NewService(connectionRepo, accountCacheRepo, metaIntegrator)
	insighter := insighting.NewService(connectionRepo, accountCacheRepo, metaIntegrator)

	accountCacheSyncService := scheduler.NewAccountCacheSyncService(connectionRepo, accountService, cfg)
	if err := accountCacheSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do cache de contas")
	}

	server, err := api.New(cfg, api.Services{
		Connector:        connector,
		AccountService:   accountService,
		Insighter:        insighter,
		Authenticator:    authenticator,
		AccountCacheSync: accountCacheSyncService,
		Database:         pgConn,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato dos logs e remove tokens de qualquer saída
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.AddHook(log.RedactHook{})
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
