// Package main é o ponto de entrada da API de pagamentos e.Rede
package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/magnani/erede-go/internal/config"
	"github.com/magnani/erede-go/internal/handlers"
)

func main() {
	// Carrega configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erro ao carregar configurações: %v", err)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		log.Fatalf("Erro ao criar logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("iniciando e.Rede API",
		zap.String("env", cfg.Env),
		zap.Bool("sandbox", cfg.Rede.Sandbox),
	)

	client, err := cfg.Rede.NewClient(logger.Named("rede"))
	if err != nil {
		logger.Fatal("erro ao inicializar cliente e.Rede", zap.Error(err))
	}

	// Configura o router
	r := mux.NewRouter()
	r.HandleFunc("/health", handlers.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/api/health", handlers.HealthCheck).Methods(http.MethodGet)
	handlers.NewTransactionHandler(client, logger).Register(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      2 * cfg.Rede.Timeout,
	}

	logger.Info("servidor rodando", zap.String("addr", srv.Addr))

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("erro ao iniciar servidor", zap.Error(err))
	}
}
