package rede

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// userAgentFormat: versão do SDK, versão do Go, filiação, SO, arquitetura
const userAgentFormat = "eRede/%s (Go %s; Store %s; %s %s)"

// Service é uma operação da API e.Rede executada por Client.Execute
type Service interface {
	// Path retorna o caminho do serviço relativo ao endpoint do ambiente
	Path() string
	Method() string
	// Body retorna o JSON da requisição; vazio para requisições sem corpo
	Body() ([]byte, error)
	// ParseResponse converte a resposta HTTP em uma transação ou em um erro da API
	ParseResponse(body []byte, statusCode int) (*Transaction, error)
}

// Client assina, envia e interpreta as requisições para a API e.Rede em nome de um Store
type Client struct {
	store      *Store
	httpClient *http.Client
	logger     *zap.Logger

	platform        string
	platformVersion string
	legacyAuth      bool

	now func() time.Time
}

// Option configura um Client
type Option func(*Client)

// WithHTTPClient injeta o cliente HTTP (pool de conexões, proxy, mTLS)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger injeta o logger; requisições e respostas são logadas em Debug com dados do cartão mascarados
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPlatform adiciona "plataforma/versão" ao User-Agent
func WithPlatform(platform, version string) Option {
	return func(c *Client) {
		c.platform = platform
		c.platformVersion = version
	}
}

// WithLegacyAuth desliga o OAuth2: as requisições usam Basic Auth com filiação e chave
func WithLegacyAuth() Option {
	return func(c *Client) {
		c.legacyAuth = true
	}
}

// NewClient cria um cliente para o Store informado
func NewClient(store *Store, opts ...Option) *Client {
	c := &Client{
		store:  store,
		logger: zap.NewNop(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = NewHTTPClient(nil, DefaultTimeout)
	}

	return c
}

func (c *Client) Store() *Store { return c.store }

// Execute monta o body do serviço, envia a requisição e interpreta a resposta
func (c *Client) Execute(ctx context.Context, svc Service) (*Transaction, error) {
	body, err := svc.Body()
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar body: %w", err)
	}

	respBody, statusCode, err := c.sendRequest(ctx, svc.Path(), svc.Method(), body)
	if err != nil {
		return nil, err
	}

	return svc.ParseResponse(respBody, statusCode)
}

// sendRequest executa uma requisição autenticada e retorna o body bruto e o status HTTP
func (c *Client) sendRequest(ctx context.Context, service, method string, body []byte) ([]byte, int, error) {
	if method == "" {
		method = MethodGet
	}

	if err := checkTLS(c.httpClient); err != nil {
		return nil, 0, err
	}

	bearer, err := c.ensureBearerToken(ctx)
	if err != nil {
		return nil, 0, err
	}

	endpoint := c.store.Environment().Endpoint(service)

	reqBody := io.Reader(http.NoBody)
	if len(body) > 0 {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao criar requisição: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Transaction-Response", "brand-return-opened")

	switch {
	case bearer != "":
		req.Header.Set("Authorization", "Bearer "+bearer)
	case c.legacyAuth:
		req.SetBasicAuth(c.store.Filiation(), c.store.Token())
	}

	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json; charset=utf8")
	} else {
		// net/http só escreve Content-Length: 0 para métodos com corpo
		req.ContentLength = 0
	}

	c.logger.Debug("requisição Rede",
		zap.String("method", method),
		zap.String("url", endpoint),
		zap.Strings("headers", logHeaders(req.Header, len(body) == 0)),
		zap.String("body", Redact(string(body))),
	)

	start := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &TransportError{Method: method, URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &TransportError{Method: method, URL: endpoint, Err: fmt.Errorf("erro ao ler resposta: %w", err)}
	}

	c.logger.Debug("resposta Rede",
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("elapsed", c.now().Sub(start)),
		zap.String("body", Redact(string(respBody))),
	)

	// Token recusado: a próxima chamada busca um novo
	if resp.StatusCode == http.StatusUnauthorized && bearer != "" {
		c.store.invalidateBearerToken(bearer)
	}

	return respBody, resp.StatusCode, nil
}

// userAgent monta o User-Agent com versão do SDK, filiação, SO e plataforma opcional
func (c *Client) userAgent() string {
	ua := fmt.Sprintf(userAgentFormat,
		Version,
		strings.TrimPrefix(runtime.Version(), "go"),
		c.store.Filiation(),
		runtime.GOOS,
		runtime.GOARCH,
	)

	if c.platform != "" && c.platformVersion != "" {
		ua += fmt.Sprintf(" %s/%s", c.platform, c.platformVersion)
	}

	ua += " net/http TLSv1.2"

	return strings.ReplaceAll(ua, "  ", " ")
}

// logHeaders lista os headers da requisição para o log, sem o valor da credencial
func logHeaders(h http.Header, emptyBody bool) []string {
	lines := make([]string, 0, len(h)+1)
	for name, values := range h {
		value := strings.Join(values, ", ")
		if name == "Authorization" {
			if scheme, _, found := strings.Cut(value, " "); found {
				value = scheme + " ***"
			}
		}
		lines = append(lines, name+": "+value)
	}
	sort.Strings(lines)
	if emptyBody {
		lines = append(lines, "Content-Length: 0")
	}
	return lines
}
