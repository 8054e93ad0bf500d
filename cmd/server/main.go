package main

import (
	"CryptoVault/internal/auth"
	"CryptoVault/internal/config/serverConfig"
	"CryptoVault/internal/config/storageConfig"
	"CryptoVault/internal/infrastructure/kafka"
	natsjs "CryptoVault/internal/infrastructure/nats"
	"CryptoVault/internal/infrastructure/postgres"
	"CryptoVault/internal/repository"
	"CryptoVault/internal/service"
	httptransport "CryptoVault/internal/transport/http"
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

func init() {
	err := godotenv.Load(".env")
	if err != nil {
		slog.Warn("no .env file loaded", "error", err)
	}
}

func main() {

	storageCfg, err := storageConfig.MustLoadStorageConfig()
	if err != nil {
		log.Fatal(err)
	}

	config, err := serverConfig.MustLoadServerConfig()
	if err != nil {
		log.Fatal(err)
	}

	dataBase, err := postgres.NewStorage(storageCfg)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	defer dataBase.Close()

	repos := repository.NewRepository(dataBase)

	audit := kafka.NewProducer(config.Kafka.Broker, config.Kafka.AuditTopic)
	defer audit.Close()

	auditLog := kafka.NewConsumer(config.Kafka.Broker, config.Kafka.AuditTopic, config.Kafka.GroupID,
		func(msg kafka.AuditMessage) {
			slog.Info("audit",
				"action", msg.Action,
				"user", msg.UserID,
				"entry", msg.EntryID,
				"object", msg.ObjectID,
			)
		})
	auditLog.Start(context.Background())

	broker, err := natsjs.NewJSClient(config.Nats.URL)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	defer broker.Conn.Close()

	authenticator := auth.NewAuthenticator(config.Auth.Secret, config.Auth.TokenTTL)

	vaultService := service.NewService(repos, authenticator, audit, broker)

	gateway := httptransport.NewServer(config.Server, vaultService, authenticator)
	if err := gateway.Run(); err != nil {
		log.Fatalf("cannot start gateway: %v", err)
	}
}
