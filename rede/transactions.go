package rede

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const servicePath = "transactions"

// defaultErrorMessage é usado quando a resposta de erro não traz returnMessage
const defaultErrorMessage = "erro ao obter o conteúdo da API"

// parseTransactionResponse trata a resposta comum a todos os serviços de transação
func parseTransactionResponse(body []byte, statusCode int) (*Transaction, error) {
	var tx Transaction
	decodeErr := json.Unmarshal(body, &tx)

	if statusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: statusCode, ReturnMessage: defaultErrorMessage}
		if decodeErr == nil {
			apiErr.ReturnCode = tx.ReturnCode
			if tx.ReturnMessage != "" {
				apiErr.ReturnMessage = tx.ReturnMessage
			}
		}
		return nil, apiErr
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta (status %d): %w", statusCode, decodeErr)
	}

	return &tx, nil
}

// CreateTransactionService cria (autoriza e opcionalmente captura) uma transação
type CreateTransactionService struct {
	Transaction *Transaction
	Consumer    *Consumer
}

func (s *CreateTransactionService) Path() string   { return servicePath }
func (s *CreateTransactionService) Method() string { return MethodPost }

func (s *CreateTransactionService) Body() ([]byte, error) {
	if s.Transaction == nil {
		return nil, fmt.Errorf("transação é obrigatória")
	}

	payload := *s.Transaction
	if payload.Consumer == nil {
		payload.Consumer = s.Consumer
	}
	return json.Marshal(&payload)
}

func (s *CreateTransactionService) ParseResponse(body []byte, statusCode int) (*Transaction, error) {
	return parseTransactionResponse(body, statusCode)
}

// CaptureTransactionService captura uma transação autorizada (total ou parcial)
type CaptureTransactionService struct {
	Tid    string
	Amount int64
}

func (s *CaptureTransactionService) Path() string   { return servicePath + "/" + url.PathEscape(s.Tid) }
func (s *CaptureTransactionService) Method() string { return MethodPut }

func (s *CaptureTransactionService) Body() ([]byte, error) {
	if s.Tid == "" {
		return nil, fmt.Errorf("tid é obrigatório")
	}
	return json.Marshal(map[string]int64{"amount": s.Amount})
}

func (s *CaptureTransactionService) ParseResponse(body []byte, statusCode int) (*Transaction, error) {
	return parseTransactionResponse(body, statusCode)
}

// GetTransactionService consulta uma transação por tid, por referência ou
// lista os cancelamentos de um tid
type GetTransactionService struct {
	Tid       string
	Reference string
	Refunds   bool
}

func (s *GetTransactionService) Path() string {
	switch {
	case s.Reference != "":
		return servicePath + "?reference=" + url.QueryEscape(s.Reference)
	case s.Refunds:
		return servicePath + "/" + url.PathEscape(s.Tid) + "/refunds"
	}
	return servicePath + "/" + url.PathEscape(s.Tid)
}

func (s *GetTransactionService) Method() string { return MethodGet }

func (s *GetTransactionService) Body() ([]byte, error) {
	if s.Tid == "" && s.Reference == "" {
		return nil, fmt.Errorf("tid ou referência é obrigatório")
	}
	return nil, nil
}

func (s *GetTransactionService) ParseResponse(body []byte, statusCode int) (*Transaction, error) {
	return parseTransactionResponse(body, statusCode)
}

// CancelTransactionService cancela (estorna) uma transação, total ou parcialmente
type CancelTransactionService struct {
	Tid    string
	Amount int64
}

func (s *CancelTransactionService) Path() string {
	return servicePath + "/" + url.PathEscape(s.Tid) + "/refunds"
}

func (s *CancelTransactionService) Method() string { return MethodPost }

func (s *CancelTransactionService) Body() ([]byte, error) {
	if s.Tid == "" {
		return nil, fmt.Errorf("tid é obrigatório")
	}
	return json.Marshal(map[string]int64{"amount": s.Amount})
}

func (s *CancelTransactionService) ParseResponse(body []byte, statusCode int) (*Transaction, error) {
	return parseTransactionResponse(body, statusCode)
}

// Create envia a transação como está (captura conforme tx.Capture)
func (c *Client) Create(ctx context.Context, tx *Transaction) (*Transaction, error) {
	return c.Execute(ctx, &CreateTransactionService{
		Transaction: tx,
		Consumer:    c.store.Environment().Consumer(),
	})
}

// Authorize cria uma transação apenas autorizada, a ser capturada depois
func (c *Client) Authorize(ctx context.Context, tx *Transaction) (*Transaction, error) {
	if tx == nil {
		return nil, fmt.Errorf("transação é obrigatória")
	}
	payload := *tx
	payload.SetCapture(false)
	return c.Create(ctx, &payload)
}

// Zero faz uma verificação de cartão com valor zero (zero dollar)
func (c *Client) Zero(ctx context.Context, tx *Transaction) (*Transaction, error) {
	if tx == nil {
		return nil, fmt.Errorf("transação é obrigatória")
	}
	payload := *tx
	payload.Amount = 0
	payload.SetCapture(false)
	return c.Create(ctx, &payload)
}

// Capture captura amount centavos de uma transação autorizada
func (c *Client) Capture(ctx context.Context, tid string, amount int64) (*Transaction, error) {
	return c.Execute(ctx, &CaptureTransactionService{Tid: tid, Amount: amount})
}

// Cancel cancela amount centavos de uma transação
func (c *Client) Cancel(ctx context.Context, tid string, amount int64) (*Transaction, error) {
	return c.Execute(ctx, &CancelTransactionService{Tid: tid, Amount: amount})
}

// Get consulta uma transação pelo tid
func (c *Client) Get(ctx context.Context, tid string) (*Transaction, error) {
	return c.Execute(ctx, &GetTransactionService{Tid: tid})
}

// GetByReference consulta uma transação pela referência do pedido
func (c *Client) GetByReference(ctx context.Context, reference string) (*Transaction, error) {
	return c.Execute(ctx, &GetTransactionService{Reference: reference})
}

// GetRefunds lista os cancelamentos de uma transação
func (c *Client) GetRefunds(ctx context.Context, tid string) (*Transaction, error) {
	return c.Execute(ctx, &GetTransactionService{Tid: tid, Refunds: true})
}

// Token garante um bearer token válido no Store e o retorna
func (c *Client) Token(ctx context.Context) (string, error) {
	return c.ensureBearerToken(ctx)
}
