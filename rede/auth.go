package rede

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// tokenResponse representa a resposta do endpoint de autenticação OAuth2.
// expires_in pode vir como número ou string numérica.
type tokenResponse struct {
	AccessToken      string      `json:"access_token"`
	TokenType        string      `json:"token_type"`
	ExpiresIn        json.Number `json:"expires_in"`
	Scope            string      `json:"scope"`
	Error            string      `json:"error"`
	ErrorDescription string      `json:"error_description"`
}

// ensureBearerToken retorna um token válido, obtendo um novo via OAuth2 quando
// o cache está vazio ou vence em menos de 60 segundos.
// No modo legado não há token e a string vazia é retornada.
func (c *Client) ensureBearerToken(ctx context.Context) (string, error) {
	if c.legacyAuth {
		return "", nil
	}

	if token, ok := c.store.validBearerToken(c.now().Unix()); ok {
		return token, nil
	}

	c.store.refreshMu.Lock()
	defer c.store.refreshMu.Unlock()

	// Double-check: outra goroutine pode ter renovado enquanto esperávamos o lock
	if token, ok := c.store.validBearerToken(c.now().Unix()); ok {
		return token, nil
	}

	return c.requestBearerToken(ctx)
}

// requestBearerToken solicita um novo token (client_credentials) e o grava no Store
func (c *Client) requestBearerToken(ctx context.Context) (string, error) {
	tokenURL := c.store.Environment().OAuthTokenURL()

	c.logger.Debug("solicitando token OAuth2", zap.String("url", tokenURL))

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &OAuthError{Description: "erro ao criar requisição de token", Err: err}
	}

	// Basic Auth com filiação:chave de integração
	req.SetBasicAuth(c.store.Filiation(), c.store.Token())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &OAuthError{Description: "erro na requisição de token", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &OAuthError{Status: resp.StatusCode, Description: "erro ao ler resposta de token", Err: err}
	}

	c.logger.Debug("resposta do token OAuth2",
		zap.Int("status_code", resp.StatusCode),
		zap.String("body", string(respBody)),
	)

	var tokenResp tokenResponse
	if err := json.Unmarshal(respBody, &tokenResp); err != nil {
		return "", &OAuthError{Status: resp.StatusCode, Description: "não foi possível interpretar a resposta de token", Err: err}
	}

	if tokenResp.AccessToken == "" {
		description := tokenResp.ErrorDescription
		if description == "" {
			description = tokenResp.Error
		}
		if description == "" {
			description = "erro desconhecido ao obter access token"
		}
		return "", &OAuthError{Status: resp.StatusCode, Code: tokenResp.Error, Description: description}
	}

	expiresIn, err := parseExpiresIn(tokenResp.ExpiresIn)
	if err != nil {
		return "", &OAuthError{Status: resp.StatusCode, Description: fmt.Sprintf("expires_in inválido: %q", tokenResp.ExpiresIn), Err: err}
	}

	expiresAt := c.now().Unix() + expiresIn - tokenSafetyMargin
	c.store.SetBearerToken(tokenResp.AccessToken, expiresAt)

	return tokenResp.AccessToken, nil
}

func parseExpiresIn(n json.Number) (int64, error) {
	if n == "" {
		return 0, nil
	}
	if v, err := n.Int64(); err == nil {
		return v, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}
