package rede

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Environment define a URL base, a versão da API e o endpoint OAuth2 usados
// pelo SDK. IP e SessionID são metadados opcionais de antifraude.
type Environment struct {
	baseURL       string
	version       string
	endpoint      string
	oauthTokenURL string

	IP        string
	SessionID string
}

// Consumer agrupa os metadados de antifraude enviados junto com a transação
type Consumer struct {
	IP        string `json:"ip,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

// NewEnvironment cria um ambiente com URL base e versão arbitrárias.
// O endpoint OAuth2 é derivado da URL base.
func NewEnvironment(baseURL, version string) *Environment {
	if version == "" {
		version = VersionV1
	}

	env := &Environment{
		baseURL:  baseURL,
		version:  version,
		endpoint: fmt.Sprintf("%s/%s/", baseURL, version),
	}

	switch baseURL {
	case ProductionURL:
		env.oauthTokenURL = OAuthTokenProduction
	case SandboxURL:
		env.oauthTokenURL = OAuthTokenSandbox
	default:
		env.oauthTokenURL = strings.TrimRight(baseURL, "/") + "/oauth2/token"
	}

	return env
}

// Production retorna um ambiente de produção pré-configurado
func Production() *Environment {
	return NewEnvironment(ProductionURL, VersionV1)
}

// Sandbox retorna um ambiente de sandbox pré-configurado
func Sandbox() *Environment {
	return NewEnvironment(SandboxURL, VersionV1)
}

// Endpoint monta a URL completa de um serviço: base/versão/serviço
func (e *Environment) Endpoint(service string) string {
	return e.endpoint + service
}

func (e *Environment) BaseURL() string { return e.baseURL }

func (e *Environment) Version() string { return e.version }

// OAuthTokenURL retorna o endpoint de emissão de token OAuth2
func (e *Environment) OAuthTokenURL() string {
	return e.oauthTokenURL
}

// SetOAuthTokenURL sobrescreve o endpoint OAuth2 derivado da URL base
func (e *Environment) SetOAuthTokenURL(url string) *Environment {
	e.oauthTokenURL = url
	return e
}

func (e *Environment) SetIP(ip string) *Environment {
	e.IP = ip
	return e
}

func (e *Environment) SetSessionID(sessionID string) *Environment {
	e.SessionID = sessionID
	return e
}

// Consumer retorna os metadados de antifraude, ou nil se nenhum foi informado
func (e *Environment) Consumer() *Consumer {
	if e.IP == "" && e.SessionID == "" {
		return nil
	}
	return &Consumer{IP: e.IP, SessionID: e.SessionID}
}

// MarshalJSON serializa o ambiente como {"consumer": {...}}
func (e *Environment) MarshalJSON() ([]byte, error) {
	consumer := e.Consumer()
	if consumer == nil {
		consumer = &Consumer{}
	}
	return json.Marshal(map[string]*Consumer{"consumer": consumer})
}

// NewSessionID gera um identificador de sessão para o device fingerprint
func NewSessionID() string {
	return uuid.NewString()
}
