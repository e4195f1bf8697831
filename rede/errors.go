package rede

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Códigos de retorno comuns da API e.Rede
const (
	ReturnCodeSuccess                = "00"
	ReturnCodeAuthenticationRequired = "220" // redirecionar o portador para o desafio 3DS
	ReturnCodeNotFound               = "78"
)

// Erros sentinela para condições comuns
var (
	// ErrTLSUnsupported indica que o transporte HTTP não suporta TLS 1.2
	ErrTLSUnsupported = errors.New("rede: o transporte HTTP não suporta TLS 1.2 e precisa ser atualizado")

	// ErrNotFound indica que a transação não foi encontrada
	ErrNotFound = errors.New("rede: transação não encontrada")

	// ErrUnauthorized indica falha de autenticação
	ErrUnauthorized = errors.New("rede: não autorizado")

	// ErrRateLimited indica rate limiting
	ErrRateLimited = errors.New("rede: rate limit atingido")

	// ErrServerError indica erro interno do servidor Rede
	ErrServerError = errors.New("rede: erro do servidor")

	// ErrThreeDSv1Deprecated acompanha o aviso de uso do 3DS 1 antes do cutoff
	ErrThreeDSv1Deprecated = errors.New("rede: 3DS 1 está depreciado")

	// ErrThreeDSv1Discontinued indica uso do 3DS 1 depois do cutoff
	ErrThreeDSv1Discontinued = errors.New("rede: a partir de 15 de outubro de 2022 o suporte ao 3DS 1 foi descontinuado")
)

// APIError representa um erro retornado pela API e.Rede (status >= 400)
type APIError struct {
	Status        int    `json:"-"`
	ReturnCode    string `json:"returnCode"`
	ReturnMessage string `json:"returnMessage"`
}

// Error implementa a interface error
func (e *APIError) Error() string {
	if e.ReturnCode != "" {
		return fmt.Sprintf("rede: %s (código %s, status %d)", e.ReturnMessage, e.ReturnCode, e.Status)
	}
	return fmt.Sprintf("rede: %s (status %d)", e.ReturnMessage, e.Status)
}

// TransportError representa uma falha de conectividade ou TLS
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("erro na requisição HTTP %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// OAuthError representa uma falha ao obter o bearer token
type OAuthError struct {
	Status      int
	Code        string
	Description string
	Err         error
}

func (e *OAuthError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("erro de autenticação OAuth: %s: %v", e.Description, e.Err)
	case e.Code != "" && e.Code != e.Description:
		return fmt.Sprintf("erro de autenticação OAuth: %s (%s)", e.Description, e.Code)
	}
	return fmt.Sprintf("erro de autenticação OAuth: %s", e.Description)
}

func (e *OAuthError) Unwrap() error { return e.Err }

// DeprecationWarning é retornado ao definir threeDIndicator "1" antes do cutoff.
// Não é fatal: o valor foi aceito.
type DeprecationWarning struct {
	Indicator string
	Cutoff    time.Time
}

func (w *DeprecationWarning) Error() string {
	return fmt.Sprintf("threeDIndicator %q: a partir de %s o suporte ao 3DS 1 será descontinuado",
		w.Indicator, w.Cutoff.Format("2006-01-02"))
}

func (w *DeprecationWarning) Unwrap() error { return ErrThreeDSv1Deprecated }

// IsDeprecationWarning retorna true se err é apenas um aviso de depreciação
func IsDeprecationWarning(err error) bool {
	var w *DeprecationWarning
	return errors.As(err, &w)
}

// IsTransportError retorna true se o erro veio do transporte HTTP
func IsTransportError(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}

// IsOAuthError retorna true se o erro ocorreu na obtenção do token
func IsOAuthError(err error) bool {
	var oErr *OAuthError
	return errors.As(err, &oErr)
}

// IsNotFound retorna true se o erro indica que a transação não foi encontrada
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusNotFound || apiErr.ReturnCode == ReturnCodeNotFound
	}
	return false
}

// IsUnauthorized retorna true se o erro indica falha de autenticação
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrUnauthorized) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
	}
	return false
}

// IsServerError retorna true se o erro é do servidor (5xx)
func IsServerError(err error) bool {
	if errors.Is(err, ErrServerError) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500
	}
	return false
}

// ClassifyError converte um erro da API para um erro sentinela quando apropriado
func ClassifyError(err error) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	switch apiErr.Status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, apiErr.Error())
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Error())
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, apiErr.Error())
	}

	if apiErr.Status >= 500 {
		return fmt.Errorf("%w: %s", ErrServerError, apiErr.Error())
	}

	return err
}
