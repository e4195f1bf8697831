package rede

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"ErrNotFound sentinel", ErrNotFound, true},
		{"API error with 404", &APIError{Status: 404, ReturnMessage: "Not found"}, true},
		{"API error with return code 78", &APIError{Status: 400, ReturnCode: "78"}, true},
		{"API error with 400", &APIError{Status: 400, ReturnMessage: "Bad request"}, false},
		{"wrapped API error", fmt.Errorf("consulta: %w", &APIError{Status: 404}), true},
		{"other error", ErrUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNotFound(tt.err))
		})
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"404", &APIError{Status: 404}, ErrNotFound},
		{"401", &APIError{Status: 401}, ErrUnauthorized},
		{"429", &APIError{Status: 429}, ErrRateLimited},
		{"503", &APIError{Status: 503}, ErrServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, ClassifyError(tt.err), tt.want)
		})
	}

	plain := errors.New("boom")
	assert.Equal(t, plain, ClassifyError(plain))

	badRequest := &APIError{Status: 400}
	assert.Equal(t, error(badRequest), ClassifyError(badRequest))
}

func TestErrorMessages(t *testing.T) {
	apiErr := &APIError{Status: 400, ReturnCode: "37", ReturnMessage: "CardNumber: Invalid parameter format."}
	assert.Equal(t, "rede: CardNumber: Invalid parameter format. (código 37, status 400)", apiErr.Error())

	oErr := &OAuthError{Code: "invalid_client", Description: "Bad credentials"}
	assert.Equal(t, "erro de autenticação OAuth: Bad credentials (invalid_client)", oErr.Error())

	cause := errors.New("connection refused")
	tErr := &TransportError{Method: "GET", URL: "https://x/v1/transactions", Err: cause}
	assert.ErrorIs(t, tErr, cause)
	assert.True(t, IsServerError(&APIError{Status: 502}))
}
