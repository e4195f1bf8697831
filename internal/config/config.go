// Package config gerencia as configurações do aplicativo
// carregando variáveis de ambiente do arquivo .env
package config

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"github.com/magnani/erede-go/rede"
)

// Config armazena todas as configurações da aplicação
type Config struct {
	// Servidor
	Port string `envconfig:"PORT" default:"8080"`
	Env  string `envconfig:"ENV" default:"development"`

	// e.Rede
	Rede RedeConfig `envconfig:"REDE"`
}

// RedeConfig armazena configurações específicas da e.Rede (prefixo REDE_)
type RedeConfig struct {
	Filiation           string        `envconfig:"FILIATION" required:"true"`
	Token               string        `envconfig:"TOKEN" required:"true"`
	Sandbox             bool          `envconfig:"SANDBOX" default:"true"`
	BaseURL             string        `envconfig:"BASE_URL"`
	APIVersion          string        `envconfig:"API_VERSION" default:"v1"`
	OAuthTokenURL       string        `envconfig:"OAUTH_TOKEN_URL"`
	CertificatePath     string        `envconfig:"CERTIFICATE_PATH"`
	CertificatePassword string        `envconfig:"CERTIFICATE_PASSWORD"`
	Platform            string        `envconfig:"PLATFORM"`
	PlatformVersion     string        `envconfig:"PLATFORM_VERSION"`
	ConsumerIP          string        `envconfig:"CONSUMER_IP"`
	SessionID           string        `envconfig:"SESSION_ID"`
	Timeout             time.Duration `envconfig:"TIMEOUT" default:"30s"`
	Debug               bool          `envconfig:"DEBUG"`
}

// Load carrega as configurações do arquivo .env e variáveis de ambiente
// O arquivo .env é opcional - variáveis de ambiente têm prioridade
func Load() (*Config, error) {
	// Tenta carregar .env (ignora erro se não existir)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("erro ao carregar configurações: %w", err)
	}

	return &cfg, nil
}

// Environment monta o ambiente e.Rede: URL base explícita, sandbox ou produção
func (c *RedeConfig) Environment() *rede.Environment {
	var env *rede.Environment
	switch {
	case c.BaseURL != "":
		env = rede.NewEnvironment(c.BaseURL, c.APIVersion)
	case c.Sandbox:
		env = rede.NewEnvironment(rede.SandboxURL, c.APIVersion)
	default:
		env = rede.NewEnvironment(rede.ProductionURL, c.APIVersion)
	}

	if c.OAuthTokenURL != "" {
		env.SetOAuthTokenURL(c.OAuthTokenURL)
	}
	if c.ConsumerIP != "" {
		env.SetIP(c.ConsumerIP)
	}
	if c.SessionID != "" {
		env.SetSessionID(c.SessionID)
	}
	return env
}

// IsDevelopment retorna true se estiver em ambiente de desenvolvimento
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction retorna true se estiver em ambiente de produção
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// NewClient cria o cliente e.Rede a partir da configuração.
// Se CertificatePath estiver definido, o certificado .p12 é usado para mTLS.
func (c *RedeConfig) NewClient(logger *zap.Logger) (*rede.Client, error) {
	var tlsConfig *tls.Config
	if c.CertificatePath != "" {
		var err error
		tlsConfig, err = rede.LoadClientCertificate(c.CertificatePath, c.CertificatePassword)
		if err != nil {
			return nil, fmt.Errorf("erro ao carregar certificado: %w", err)
		}
	}

	store := rede.NewStore(c.Filiation, c.Token, c.Environment())

	opts := []rede.Option{
		rede.WithHTTPClient(rede.NewHTTPClient(tlsConfig, c.Timeout)),
		rede.WithLogger(logger),
	}
	if c.Platform != "" {
		opts = append(opts, rede.WithPlatform(c.Platform, c.PlatformVersion))
	}

	return rede.NewClient(store, opts...), nil
}

// NewLogger cria o logger da aplicação: development com Debug habilitado
// quando REDE_DEBUG=true ou fora de produção, production caso contrário
func (c *Config) NewLogger() (*zap.Logger, error) {
	if c.Rede.Debug || !c.IsProduction() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
