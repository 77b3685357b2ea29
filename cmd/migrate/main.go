package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-insights-api/infrastructure/migration"
	"github.com/vfg2006/ads-insights-api/internal/config"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	m, err := migration.New(conn.DB)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar as migrações")
	}

	switch command {
	case "up":
		err := m.Up()
		switch {
		case errors.Is(err, migrate.ErrNoChange):
			logrus.Info("Nenhuma alteração: banco de dados já está atualizado")
		case err != nil:
			logrus.WithError(err).Fatal("Erro ao executar as migrações")
		default:
			logrus.Info("Migrações executadas com sucesso")
		}

	case "down":
		if err := m.Steps(-1); err != nil {
			logrus.WithError(err).Fatal("Erro ao reverter a última migração")
		}
		logrus.Info("Última migração revertida com sucesso")

	case "goto":
		if len(os.Args) < 3 {
			logrus.Fatal("Informe o número da versão")
		}
		version, err := strconv.ParseUint(os.Args[2], 10, 64)
		if err != nil {
			logrus.WithError(err).Fatal("Número de versão inválido")
		}

		if err := m.Migrate(uint(version)); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logrus.WithError(err).Fatalf("Erro ao migrar para a versão %d", version)
		}
		logrus.Infof("Banco de dados na versão %d", version)

	case "status":
		version, dirty, err := m.Version()
		switch {
		case errors.Is(err, migrate.ErrNilVersion):
			logrus.Info("Nenhuma migração executada até agora")
		case err != nil:
			logrus.WithError(err).Fatal("Erro ao obter a versão das migrações")
		default:
			logrus.WithFields(logrus.Fields{
				"version": version,
				"dirty":   dirty,
			}).Info("Versão atual das migrações")
		}

	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Uso: go run cmd/migrate/main.go [comando]")
	fmt.Println("Comandos disponíveis:")
	fmt.Println("  up     - Executa todas as migrações pendentes")
	fmt.Println("  down   - Reverte a última migração")
	fmt.Println("  goto N - Migra para a versão N")
	fmt.Println("  status - Mostra a versão atual")
}
